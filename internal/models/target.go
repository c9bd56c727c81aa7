package models

// Target is a named, persisted connection to a team on a CI server
type Target struct {
	Name     string `json:"name" yaml:"name"`
	API      string `json:"api" yaml:"api"`
	Team     string `json:"team" yaml:"team"`
	Token    Token  `json:"-" yaml:"-"`
	Insecure bool   `json:"insecure,omitempty" yaml:"insecure,omitempty"`
}

// LoggedIn reports whether the target carries a token
func (t Target) LoggedIn() bool {
	return !t.Token.IsZero()
}
