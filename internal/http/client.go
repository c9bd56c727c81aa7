// Package http provides a common HTTP client with standardized headers and error handling
package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// ErrorResponse represents a non-success response from the API
type ErrorResponse struct {
	StatusCode int
	Status     string
	URL        string
	Body       []byte
}

// Error implements the error interface
func (e *ErrorResponse) Error() string {
	msg := fmt.Sprintf("HTTP request failed: %d %s (%s)", e.StatusCode, e.Status, e.URL)
	if len(e.Body) > 0 {
		bodyStr := string(e.Body)
		if len(bodyStr) > 200 {
			bodyStr = bodyStr[:200] + "..."
		}
		msg += fmt.Sprintf(": %s", bodyStr)
	}
	return msg
}

// Message returns the text the server sent with the error, falling back to the status line
func (e *ErrorResponse) Message() string {
	if msg := strings.TrimSpace(string(e.Body)); msg != "" {
		return msg
	}
	if e.Status != "" {
		return e.Status
	}
	return http.StatusText(e.StatusCode)
}

// IsNotFound returns true if the error is a 404 Not Found
func (e *ErrorResponse) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized returns true if the error is a 401 Unauthorized
func (e *ErrorResponse) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsForbidden returns true if the error is a 403 Forbidden
func (e *ErrorResponse) IsForbidden() bool {
	return e.StatusCode == http.StatusForbidden
}

// IsBadRequest returns true if the error is a 400 Bad Request
func (e *ErrorResponse) IsBadRequest() bool {
	return e.StatusCode == http.StatusBadRequest
}

// IsServerError returns true if the error is a 5xx Server Error
func (e *ErrorResponse) IsServerError() bool {
	return e.StatusCode >= 500
}

// Response is the status and body of a completed request
type Response struct {
	StatusCode int
	Status     string
	URL        string
	Body       []byte
}

// Success reports whether the response carries a 2xx status
func (r *Response) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Err returns an *ErrorResponse for non-2xx responses and nil otherwise
func (r *Response) Err() error {
	if r.Success() {
		return nil
	}
	return &ErrorResponse{
		StatusCode: r.StatusCode,
		Status:     r.Status,
		URL:        r.URL,
		Body:       r.Body,
	}
}

// Client performs requests against a single CI server
type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
	logger    *slog.Logger
}

// ClientOption is a function that modifies a Client
type ClientOption func(*Client)

// WithUserAgent sets the User-Agent header for requests
func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithHTTPClient sets the underlying HTTP client
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// WithInsecureSkipVerify disables TLS certificate verification. It replaces
// the underlying HTTP client, so it should come after WithHTTPClient.
func WithInsecureSkipVerify(skip bool) ClientOption {
	return func(c *Client) {
		if !skip {
			return
		}
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // user opted in for this target
		c.client = &http.Client{Transport: transport}
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the server at baseURL. Endpoint paths are
// appended to baseURL as given.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:   baseURL,
		userAgent: "ciw",
		client:    http.DefaultClient,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the server URL requests are made against
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs a GET request to the specified endpoint
func (c *Client) Get(ctx context.Context, endpoint string, header http.Header) (*Response, error) {
	return c.Do(ctx, http.MethodGet, endpoint, header, nil)
}

// Post performs a POST request to the specified endpoint with the given body
func (c *Client) Post(ctx context.Context, endpoint string, header http.Header, body []byte) (*Response, error) {
	return c.Do(ctx, http.MethodPost, endpoint, header, body)
}

// Do performs an HTTP request and returns the response whatever its status.
// An error is only returned when no response was received.
func (c *Client) Do(ctx context.Context, method, endpoint string, header http.Header, body []byte) (*Response, error) {
	reqURL := c.baseURL + endpoint

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.setHeaders(req, header)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug("http request", "method", method, "url", reqURL, "status", resp.StatusCode, "headers", loggableHeaders(req.Header))

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		URL:        reqURL,
		Body:       respBody,
	}, nil
}

// Open starts a long-lived GET request and returns its body for streaming.
// Non-2xx responses are read in full and returned as *ErrorResponse.
func (c *Client) Open(ctx context.Context, endpoint string, header http.Header) (io.ReadCloser, error) {
	reqURL := c.baseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.setHeaders(req, header)
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to open stream: %w", err)
	}

	c.logger.Debug("http stream", "url", reqURL, "status", resp.StatusCode, "headers", loggableHeaders(req.Header))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		respBody, _ := io.ReadAll(resp.Body)
		return nil, &ErrorResponse{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			URL:        reqURL,
			Body:       respBody,
		}
	}

	return resp.Body, nil
}

func (c *Client) setHeaders(req *http.Request, header http.Header) {
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Content-Type", "application/json")
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
}
