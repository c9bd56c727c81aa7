package models

import "strings"

const bearerPrefix = "Bearer "

// Token is a bearer credential used to authorize API calls
type Token struct {
	Value string `json:"value" yaml:"value"`
}

// AuthValue returns the Authorization header value for the token. Values that
// already carry the "Bearer " prefix are returned unchanged.
func (t Token) AuthValue() string {
	if strings.HasPrefix(t.Value, bearerPrefix) {
		return t.Value
	}
	return bearerPrefix + t.Value
}

// IsZero reports whether the token has no value
func (t Token) IsZero() bool {
	return t.Value == ""
}
