package io

import (
	"fmt"
	"io"
	"strings"
)

// Confirm asks a yes/no question on out and reads the answer from in. A
// confirmed value that is already true, as set by a --yes flag, skips the question.
func Confirm(in io.Reader, out io.Writer, confirmed *bool, title string) error {
	if *confirmed {
		return nil
	}

	fmt.Fprintf(out, "%s [y/N]: ", title)
	var response string
	_, _ = fmt.Fscanln(in, &response)

	response = strings.ToLower(strings.TrimSpace(response))
	*confirmed = response == "y" || response == "yes"

	return nil
}
