package errors

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Exit codes for different error types
const (
	ExitCodeSuccess          = 0
	ExitCodeGenericError     = 1
	ExitCodeValidationError  = 2
	ExitCodeAPIError         = 3
	ExitCodeNotFoundError    = 4
	ExitCodePermissionError  = 5
	ExitCodeConfigError      = 6
	ExitCodeAuthError        = 7
	ExitCodeInternalError    = 8
	ExitCodeNetworkError     = 9
	ExitCodeUntrustedError   = 10
	ExitCodeDeserializeError = 11
	ExitCodeUserAbortedError = 130 // Same as Ctrl+C in bash
)

type categoryInfo struct {
	category error
	prefix   string
	exitCode int
}

// categories is ordered: the first match wins when an error carries
// more than one category in its chain.
var categories = []categoryInfo{
	{ErrUserAborted, "Aborted:", ExitCodeUserAbortedError},
	{ErrServerTrust, "Untrusted Server:", ExitCodeUntrustedError},
	{ErrAuthorizationExpired, "Authorization Expired:", ExitCodeAuthError},
	{ErrUnsupportedAuth, "Unsupported Authentication:", ExitCodeAuthError},
	{ErrTokenRejected, "Token Rejected:", ExitCodeAuthError},
	{ErrAuthentication, "Authentication Error:", ExitCodeAuthError},
	{ErrValidation, "Validation Error:", ExitCodeValidationError},
	{ErrResourceNotFound, "Not Found:", ExitCodeNotFoundError},
	{ErrPermissionDenied, "Permission Denied:", ExitCodePermissionError},
	{ErrDeserialization, "Unexpected Response:", ExitCodeDeserializeError},
	{ErrAPI, "API Error:", ExitCodeAPIError},
	{ErrNetwork, "Network Error:", ExitCodeNetworkError},
	{ErrConfiguration, "Configuration Error:", ExitCodeConfigError},
	{ErrInternal, "Internal Error:", ExitCodeInternalError},
}

// Handler processes errors from commands and formats them appropriately
type Handler struct {
	// Writer is where error messages will be written
	Writer io.Writer
	// ExitFunc is the function called to exit the program with a specific code
	ExitFunc func(int)
	// Verbose enables more detailed error messages
	Verbose bool
}

// NewHandler creates a new Handler with default settings
func NewHandler() *Handler {
	return &Handler{
		Writer:   os.Stderr,
		ExitFunc: os.Exit,
	}
}

// WithWriter sets the writer for error output
func (h *Handler) WithWriter(w io.Writer) *Handler {
	h.Writer = w
	return h
}

// WithExitFunc sets the exit function
func (h *Handler) WithExitFunc(f func(int)) *Handler {
	h.ExitFunc = f
	return h
}

// WithVerbose sets the verbose flag
func (h *Handler) WithVerbose(v bool) *Handler {
	h.Verbose = v
	return h
}

// Handle writes the error and exits with the code for its category
func (h *Handler) Handle(err error) {
	if err == nil {
		return
	}

	fmt.Fprintln(h.Writer, h.formatError(err))

	if h.ExitFunc != nil {
		h.ExitFunc(exitCode(err))
	}
}

func lookupCategory(err error) (categoryInfo, bool) {
	for _, info := range categories {
		if errors.Is(err, info.category) {
			return info, true
		}
	}
	return categoryInfo{}, false
}

func exitCode(err error) int {
	if info, ok := lookupCategory(err); ok {
		return info.exitCode
	}
	return ExitCodeGenericError
}

func (h *Handler) formatError(err error) string {
	prefix := "Error:"
	if info, ok := lookupCategory(err); ok {
		prefix = info.prefix
	}

	var cliErr *Error
	if !errors.As(err, &cliErr) {
		return fmt.Sprintf("%s %s", prefix, err.Error())
	}

	var message string
	if h.Verbose {
		message = cliErr.FormattedError()
	} else {
		// the main message and the first suggestion only
		message = cliErr.Error()
		if len(cliErr.Suggestions) > 0 {
			message = fmt.Sprintf("%s\nTip: %s", message, cliErr.Suggestions[0])
		}
	}

	return fmt.Sprintf("%s %s", prefix, message)
}

// HandleWithDetails processes an error with the operation it happened during
func (h *Handler) HandleWithDetails(err error, operation string) {
	if err == nil {
		return
	}

	if operation == "" {
		h.Handle(err)
		return
	}

	cliErr, ok := err.(*Error)
	if !ok {
		h.Handle(NewError(err, nil, fmt.Sprintf("failed during: %s", operation)))
		return
	}

	// copy so the caller's error is left untouched
	contextual := &Error{
		Original:    cliErr.Original,
		Category:    cliErr.Category,
		Details:     cliErr.Details,
		Suggestions: append([]string(nil), cliErr.Suggestions...),
	}
	if contextual.Details == "" {
		contextual.Details = fmt.Sprintf("failed during: %s", operation)
	} else {
		contextual.Details = fmt.Sprintf("%s (during: %s)", contextual.Details, operation)
	}

	h.Handle(contextual)
}

// GetExitCodeForError returns the exit code for a given error
func GetExitCodeForError(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}
	return exitCode(err)
}
