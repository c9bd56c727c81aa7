package models

// LogEvent is one chunk of build output. The payload may still contain
// terminal styling sequences.
type LogEvent struct {
	Payload string `json:"payload" yaml:"payload"`
}
