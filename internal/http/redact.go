package http

import (
	"net/http"
	"strings"
)

var sensitiveHeaders = []string{"Authorization", "Cookie", "Set-Cookie"}

// redactHeaders replaces credentials in header values, keeping an
// authorization scheme such as "Bearer" so logs still show which one was used.
func redactHeaders(header http.Header) {
	for _, name := range sensitiveHeaders {
		values := header.Values(name)
		if len(values) == 0 {
			continue
		}
		redacted := make([]string, len(values))
		for i, v := range values {
			if scheme, _, ok := strings.Cut(v, " "); ok {
				redacted[i] = scheme + " [REDACTED]"
			} else {
				redacted[i] = "[REDACTED]"
			}
		}
		header[http.CanonicalHeaderKey(name)] = redacted
	}
}

func loggableHeaders(header http.Header) http.Header {
	clone := header.Clone()
	redactHeaders(clone)
	return clone
}
