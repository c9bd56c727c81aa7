package errors

import (
	"context"
	"crypto/x509"
	"fmt"
	"net/url"
	"testing"

	httpClient "github.com/ciwatch/cli/internal/http"
)

func TestWrapAPIError(t *testing.T) {
	t.Parallel()

	t.Run("handles nil error", func(t *testing.T) {
		t.Parallel()
		result := WrapAPIError(nil, "test operation")
		if result != nil {
			t.Errorf("Expected nil, got %v", result)
		}
	})

	t.Run("preserves CLI error category", func(t *testing.T) {
		t.Parallel()
		original := NewValidationError(nil, "Invalid input")
		result := WrapAPIError(original, "test operation")

		if !IsValidationError(result) {
			t.Error("Expected validation error category to be preserved")
		}
	})

	t.Run("adds operation context to CLI error", func(t *testing.T) {
		t.Parallel()
		original := NewValidationError(nil, "Invalid input")
		result := WrapAPIError(original, "test operation")

		cliErr, ok := result.(*Error)
		if !ok {
			t.Fatal("Expected result to be a *Error")
		}

		if cliErr.Details != "test operation: Invalid input" {
			t.Errorf("Expected details to include operation, got: %q", cliErr.Details)
		}
	})

	t.Run("wraps generic transport error as network error", func(t *testing.T) {
		t.Parallel()
		original := &simpleError{message: "connection refused"}
		result := WrapAPIError(original, "test operation")

		if !IsNetworkError(result) {
			t.Error("Expected generic error to be wrapped as network error")
		}
		if IsServerTrustError(result) {
			t.Error("A refused connection is not a trust failure")
		}
	})

	t.Run("classifies certificate failures as untrusted server", func(t *testing.T) {
		t.Parallel()
		original := &url.Error{
			Op:  "Get",
			URL: "https://ci.example.com/api/v1/info",
			Err: fmt.Errorf("tls: %w", x509.UnknownAuthorityError{}),
		}
		result := WrapAPIError(original, "fetch info")

		if !IsServerTrustError(result) {
			t.Fatalf("Expected an untrusted server error, got %v", result)
		}
		if IsNetworkError(result) {
			t.Error("A trust failure should not also be a network error")
		}

		cliErr, ok := result.(*Error)
		if !ok {
			t.Fatal("Expected result to be a *Error")
		}
		if cliErr.Details != MessageUntrusted {
			t.Errorf("Expected the fixed untrusted message, got %q", cliErr.Details)
		}
	})

	t.Run("passes context cancellation through", func(t *testing.T) {
		t.Parallel()
		result := WrapAPIError(context.Canceled, "test operation")
		if result != context.Canceled {
			t.Errorf("Expected context.Canceled, got %v", result)
		}
	})
}

func TestHandleHTTPError(t *testing.T) {
	t.Parallel()

	t.Run("handles 404 not found", func(t *testing.T) {
		t.Parallel()
		httpErr := &httpClient.ErrorResponse{
			StatusCode: 404,
			Status:     "Not Found",
			URL:        "https://ci.example.com/api/v1/teams/main/pipelines/missing/jobs",
		}

		result := handleHTTPError(httpErr, "list jobs")

		if !IsNotFound(result) {
			t.Error("Expected result to be a not found error")
		}

		cliErr, ok := result.(*Error)
		if !ok {
			t.Fatal("Expected result to be a *Error")
		}

		foundSuggestion := false
		for _, suggestion := range cliErr.Suggestions {
			if suggestion == "Verify the pipeline name is correct" {
				foundSuggestion = true
				break
			}
		}

		if !foundSuggestion {
			t.Error("Expected pipeline-specific suggestion for not found error")
		}
	})

	t.Run("handles 401 unauthorized with server message", func(t *testing.T) {
		t.Parallel()
		httpErr := &httpClient.ErrorResponse{
			StatusCode: 401,
			Status:     "Unauthorized",
			URL:        "https://ci.example.com/api/v1/teams/main/auth/token",
			Body:       []byte("invalid username or password\n"),
		}

		result := handleHTTPError(httpErr, "log in")

		if !IsAuthenticationError(result) {
			t.Error("Expected result to be an authentication error")
		}

		cliErr, ok := result.(*Error)
		if !ok {
			t.Fatal("Expected result to be a *Error")
		}
		if cliErr.Details != "log in failed with status 401: invalid username or password" {
			t.Errorf("Unexpected details %q", cliErr.Details)
		}
	})

	t.Run("handles 403 forbidden", func(t *testing.T) {
		t.Parallel()
		httpErr := &httpClient.ErrorResponse{
			StatusCode: 403,
			Status:     "Forbidden",
			URL:        "https://ci.example.com/api/v1/builds",
		}

		result := handleHTTPError(httpErr, "list builds")

		if !IsPermissionDeniedError(result) {
			t.Error("Expected result to be a permission denied error")
		}
	})

	t.Run("handles 500 server error", func(t *testing.T) {
		t.Parallel()
		httpErr := &httpClient.ErrorResponse{
			StatusCode: 500,
			Status:     "Internal Server Error",
			URL:        "https://ci.example.com/api/v1/builds",
			Body:       []byte(`{"errors":["database unavailable"]}`),
		}

		result := handleHTTPError(httpErr, "list builds")

		if !IsAPIError(result) {
			t.Error("Expected result to be an API error")
		}

		cliErr, ok := result.(*Error)
		if !ok {
			t.Fatal("Expected result to be a *Error")
		}
		if cliErr.Details != "list builds failed with status 500: database unavailable" {
			t.Errorf("Unexpected details %q", cliErr.Details)
		}
	})
}

// simpleError is a simple implementation of the error interface for testing
type simpleError struct {
	message string
}

func (e *simpleError) Error() string {
	return e.message
}
