package models

// Pipeline represents a Concourse pipeline
type Pipeline struct {
	Name   string `json:"name" yaml:"name"`
	Paused bool   `json:"paused,omitempty" yaml:"paused,omitempty"`
	Public bool   `json:"public,omitempty" yaml:"public,omitempty"`
}
