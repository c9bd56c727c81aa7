package io

import (
	"errors"

	"github.com/charmbracelet/huh"
)

// ErrNoTTY is returned when input is needed but there is no terminal to ask on
var ErrNoTTY = errors.New("no TTY available")

// PromptForOne will show the list of options to the user, allowing them to select one to return.
func PromptForOne(title string, options []string) (string, error) {
	if !IsInteractive() {
		return "", ErrNoTTY
	}

	opts := huh.NewOptions(options...)
	if len(opts) == 1 {
		opts[0] = opts[0].Selected(true)
	}

	var choice string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(opts...).
				Value(&choice),
		),
	).
		WithShowHelp(false).
		Run()

	return choice, err
}
