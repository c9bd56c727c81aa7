package models

import "strings"

// AuthType identifies a login mechanism supported by a team
type AuthType string

const (
	AuthTypeBasic  AuthType = "basic"
	AuthTypeGitHub AuthType = "github"
	AuthTypeUAA    AuthType = "uaa"
)

var authTypes = []AuthType{AuthTypeBasic, AuthTypeGitHub, AuthTypeUAA}

// ParseAuthType matches s against the known auth types after trimming
// whitespace and lowercasing it.
func ParseAuthType(s string) (AuthType, bool) {
	normalized := AuthType(strings.ToLower(strings.TrimSpace(s)))
	for _, t := range authTypes {
		if t == normalized {
			return t, true
		}
	}
	return "", false
}

// DisplayName is the label shown when asking the user to pick a method
func (t AuthType) DisplayName() string {
	switch t {
	case AuthTypeBasic:
		return "Username and password"
	case AuthTypeGitHub:
		return "GitHub"
	case AuthTypeUAA:
		return "UAA"
	default:
		return string(t)
	}
}

// AuthMethod is one login mechanism a team accepts
type AuthMethod struct {
	Type        AuthType `json:"type" yaml:"type"`
	URL         string   `json:"url,omitempty" yaml:"url,omitempty"`
	DisplayName string   `json:"display_name,omitempty" yaml:"display_name,omitempty"`
}

// Label is the name shown for the method, preferring the one the server sent
func (m AuthMethod) Label() string {
	if m.DisplayName != "" {
		return m.DisplayName
	}
	return m.Type.DisplayName()
}

// External reports whether the method hands out tokens outside of this client,
// which the user then pastes back in.
func (m AuthMethod) External() bool {
	return m.Type == AuthTypeGitHub
}
