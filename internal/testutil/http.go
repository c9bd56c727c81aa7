package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Route answers one method and path on a mock server
type Route struct {
	Method string
	Path   string
	Status int
	Body   string
}

// MockServer is an httptest server answering fixed routes and recording requests
type MockServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []*http.Request
}

// NewMockServer starts a server answering routes; unknown routes get a 404.
// It is closed when the test ends.
func NewMockServer(t *testing.T, routes ...Route) *MockServer {
	t.Helper()

	m := &MockServer{}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		m.requests = append(m.requests, r.Clone(r.Context()))
		m.mu.Unlock()

		for _, route := range routes {
			method := route.Method
			if method == "" {
				method = http.MethodGet
			}
			if r.Method != method || r.URL.EscapedPath() != route.Path {
				continue
			}
			status := route.Status
			if status == 0 {
				status = http.StatusOK
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_, _ = w.Write([]byte(route.Body))
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(m.Close)
	return m
}

// Requests returns the requests received so far
func (m *MockServer) Requests() []*http.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*http.Request(nil), m.requests...)
}

// MockHTTPServerWithHandler creates a test HTTP server with a custom handler,
// closed when the test ends
func MockHTTPServerWithHandler(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}
