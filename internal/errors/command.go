package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// CommandErrorHandler provides error handling functionality for cobra commands
type CommandErrorHandler struct {
	handler *Handler
}

// NewCommandErrorHandler creates a new CommandErrorHandler. It only reports
// errors; the exit code is left to the caller.
func NewCommandErrorHandler() *CommandErrorHandler {
	return &CommandErrorHandler{
		handler: NewHandler().WithExitFunc(nil),
	}
}

// WithVerbose sets the verbose flag
func (c *CommandErrorHandler) WithVerbose(verbose bool) *CommandErrorHandler {
	c.handler.WithVerbose(verbose)
	return c
}

// HandleCommandError handles an error from a command
func (c *CommandErrorHandler) HandleCommandError(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}

	// Override writer to use command's error output
	c.handler.WithWriter(cmd.ErrOrStderr())

	// Get the command path for context
	cmdPath := getCommandPath(cmd)

	// Handle the error with command path as context
	c.handler.HandleWithDetails(err, cmdPath)
}

// getCommandPath returns the full path of a command (e.g., "ciw builds")
func getCommandPath(cmd *cobra.Command) string {
	if cmd == nil {
		return ""
	}

	names := []string{cmd.Name()}
	parent := cmd.Parent()

	for parent != nil {
		names = append([]string{parent.Name()}, names...)
		parent = parent.Parent()
	}

	return strings.Join(names, " ")
}

// ExecuteWithErrorHandling runs a cobra command with standardized error
// handling and returns the process exit code. verbose is asked once the
// command has run, when its flags are known.
func ExecuteWithErrorHandling(ctx context.Context, cmd *cobra.Command, verbose func() bool) int {
	// Silence Cobra's error printing
	cmd.SilenceErrors = true

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitCodeSuccess
	}

	if errors.Is(err, context.Canceled) && !IsUserAborted(err) {
		err = NewUserAbortedError(err, "interrupted")
	}
	NewCommandErrorHandler().WithVerbose(verbose()).HandleCommandError(cmd, err)
	return GetExitCodeForError(err)
}

// WrapRunE wraps a RunE function with standard error handling
func WrapRunE(fn func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		// Call the original function
		err := fn(cmd, args)
		if err != nil {
			// For not found errors, add a suggestion to use --help
			if IsNotFound(err) {
				err = WithSuggestions(err, fmt.Sprintf("Try '%s --help' for more information", cmd.CommandPath()))
			}

			// For validation errors, add context about the command
			if IsValidationError(err) {
				err = WithDetails(err, fmt.Sprintf("When executing %s", cmd.CommandPath()))
			}

			// An expired token can only be replaced by logging in again
			if IsAuthorizationExpired(err) {
				err = WithSuggestions(err, fmt.Sprintf("Run '%s login' to refresh your token", cmd.Root().Name()))
			}
		}
		return err
	}
}
