// Package decode turns Concourse API payloads into domain models. Every
// parser validates the document shape explicitly and reports failures as
// *Error with one of three kinds.
package decode

import (
	"fmt"

	cierrors "github.com/ciwatch/cli/internal/errors"
)

// Kind classifies a decoding failure
type Kind int

const (
	// MissingRequiredField means a field the model needs was absent or null
	MissingRequiredField Kind = iota + 1
	// InvalidInputFormat means the payload was not JSON or had the wrong top-level shape
	InvalidInputFormat
	// TypeMismatch means a field was present with the wrong JSON type or an unknown value
	TypeMismatch
)

func (k Kind) String() string {
	switch k {
	case MissingRequiredField:
		return "missing required field"
	case InvalidInputFormat:
		return "invalid input format"
	case TypeMismatch:
		return "type mismatch"
	default:
		return "unknown"
	}
}

// Error is a typed decoding failure
type Error struct {
	Kind Kind
	// Field is the path to the offending field, e.g. "[2].status" or
	// "finished_build.start_time". Empty for whole-document failures.
	Field   string
	Details string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Details)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Details)
}

// Is matches the CLI deserialization category so callers can test with
// errors.Is(err, errors.ErrDeserialization).
func (e *Error) Is(target error) bool {
	return target == cierrors.ErrDeserialization
}

func missing(field string) *Error {
	return &Error{Kind: MissingRequiredField, Field: field, Details: "field is required"}
}

func mismatch(field, expected, got string) *Error {
	return &Error{Kind: TypeMismatch, Field: field, Details: fmt.Sprintf("expected %s, got %s", expected, got)}
}

func invalidFormat(format string, args ...any) *Error {
	return &Error{Kind: InvalidInputFormat, Details: fmt.Sprintf(format, args...)}
}

// within returns a copy of e with its field path nested under prefix
func (e *Error) within(prefix string) *Error {
	nested := *e
	switch {
	case e.Field == "":
		nested.Field = prefix
	case e.Field[0] == '[':
		nested.Field = prefix + e.Field
	default:
		nested.Field = prefix + "." + e.Field
	}
	return &nested
}

func index(i int) string {
	return fmt.Sprintf("[%d]", i)
}
