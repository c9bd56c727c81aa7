package testutil

import (
	"errors"
	"strings"
	"testing"
)

// AssertErrorContains checks that err is set and its message contains expected
func AssertErrorContains(t *testing.T, err error, expected string) {
	t.Helper()

	if err == nil {
		t.Errorf("expected an error containing %q, got nil", expected)
		return
	}
	if !strings.Contains(err.Error(), expected) {
		t.Errorf("expected error to contain %q, got %q", expected, err.Error())
	}
}

// AssertErrorIs checks that err matches target, usually one of the
// internal/errors category sentinels
func AssertErrorIs(t *testing.T, err error, target error) {
	t.Helper()

	if !errors.Is(err, target) {
		t.Errorf("expected a %v, got %v", target, err)
	}
}

// AssertEqual compares a value a command produced with the expected one
func AssertEqual[T comparable](t *testing.T, got, want T, what string) {
	t.Helper()

	if got != want {
		t.Errorf("unexpected %s: got %#v, want %#v", what, got, want)
	}
}

// RequireNoError stops the test when err is set
func RequireNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
