package models

// Team is a Concourse team the user can log in to
type Team struct {
	Name string `json:"name" yaml:"name"`
}
