package io

import (
	"github.com/charmbracelet/huh/spinner"
)

// SpinWhile shows a spinner titled name while action runs. Without a terminal,
// or when quiet is set, the action just runs.
func SpinWhile(quiet bool, name string, action func()) error {
	if quiet || !IsTerminal() {
		action()
		return nil
	}

	return spinner.New().
		Title(name).
		Action(action).
		Run()
}
