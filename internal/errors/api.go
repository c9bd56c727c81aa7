package errors

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	httpClient "github.com/ciwatch/cli/internal/http"
)

// APIErrorResponse is the JSON error body some CI server endpoints return
type APIErrorResponse struct {
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// WrapAPIError wraps an API or transport error with appropriate context and suggestions
func WrapAPIError(err error, operation string) error {
	if err == nil {
		return nil
	}

	// If it's already a CLI error, add context but preserve the category
	if cliErr, ok := err.(*Error); ok {
		if operation != "" {
			cliErr.Details = fmt.Sprintf("%s: %s", operation, cliErr.Details)
		}
		return cliErr
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var httpErr *httpClient.ErrorResponse
	if errors.As(err, &httpErr) {
		return handleHTTPError(httpErr, operation)
	}

	return WrapTransportError(err, operation)
}

// WrapTransportError classifies an error raised before any response arrived.
// Certificate verification failures are reported separately from other
// connection problems so the user can be offered to trust the server.
func WrapTransportError(err error, operation string) error {
	if err == nil {
		return nil
	}

	if IsCertificateError(err) {
		return NewServerTrustError(err, MessageUntrusted,
			"Pass --insecure to skip certificate verification for this target")
	}

	return NewNetworkError(err, fmt.Sprintf("%s: could not reach the server", operation),
		"Check the server URL and your network connection")
}

// IsCertificateError reports whether err comes from TLS certificate verification
func IsCertificateError(err error) bool {
	var unknownAuthority x509.UnknownAuthorityError
	var hostname x509.HostnameError
	var invalid x509.CertificateInvalidError
	var verification *tls.CertificateVerificationError
	var recordHeader tls.RecordHeaderError

	return errors.As(err, &unknownAuthority) ||
		errors.As(err, &hostname) ||
		errors.As(err, &invalid) ||
		errors.As(err, &verification) ||
		errors.As(err, &recordHeader)
}

// ServerMessage extracts the human readable text from an error response body
func ServerMessage(httpErr *httpClient.ErrorResponse) string {
	var apiErr APIErrorResponse
	if len(httpErr.Body) > 0 && json.Unmarshal(httpErr.Body, &apiErr) == nil {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		if len(apiErr.Errors) > 0 {
			return strings.Join(apiErr.Errors, "; ")
		}
	}

	msg := httpErr.Message()
	if len(msg) > 200 {
		msg = msg[:200] + "..."
	}
	return msg
}

// handleHTTPError processes an HTTP error and creates an appropriate CLI error
func handleHTTPError(httpErr *httpClient.ErrorResponse, operation string) error {
	statusCode := httpErr.StatusCode
	details := fmt.Sprintf("%s failed with status %d: %s", operation, statusCode, ServerMessage(httpErr))

	var err error
	switch {
	case statusCode == http.StatusNotFound:
		err = NewResourceNotFoundError(httpErr, details, suggestForNotFound(httpErr.URL)...)
	case statusCode == http.StatusUnauthorized:
		err = NewAuthenticationError(httpErr, details,
			"Check the credentials for this target",
			"Run 'ciw login' to log in again")
	case statusCode == http.StatusForbidden:
		err = NewPermissionDeniedError(httpErr, details,
			"Verify that you are a member of the team you are accessing")
	case statusCode == http.StatusBadRequest:
		err = NewValidationError(httpErr, details, "Check the request parameters for invalid values")
	case statusCode >= 500:
		err = NewAPIError(httpErr, details,
			"This appears to be a server-side error",
			"Try again later")
	default:
		err = NewAPIError(httpErr, details)
	}

	return err
}

// suggestForNotFound generates suggestions for a 404 Not Found error
func suggestForNotFound(url string) []string {
	suggestions := []string{
		"Check that the resource exists and you have access to it",
	}

	switch {
	case strings.Contains(url, "/jobs/"):
		suggestions = append(suggestions, "Verify the job name is correct")
	case strings.Contains(url, "/pipelines/"):
		suggestions = append(suggestions, "Verify the pipeline name is correct")
	case strings.Contains(url, "/builds/"):
		suggestions = append(suggestions, "Verify the build ID is correct")
	case strings.Contains(url, "/teams/"):
		suggestions = append(suggestions, "Verify the team name is correct")
	}

	return suggestions
}
