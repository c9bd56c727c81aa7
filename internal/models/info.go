package models

// Info describes the CI server
type Info struct {
	Version       string `json:"version" yaml:"version"`
	WorkerVersion string `json:"worker_version,omitempty" yaml:"worker_version,omitempty"`
}
