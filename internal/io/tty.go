package io

import (
	"os"

	"github.com/mattn/go-isatty"
)

// IsTerminal returns true if stdout is a terminal
func IsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// IsInteractive returns true if both stdin and stdout are terminals, so forms can be shown
func IsInteractive() bool {
	stdin := os.Stdin.Fd()
	return IsTerminal() && (isatty.IsTerminal(stdin) || isatty.IsCygwinTerminal(stdin))
}
