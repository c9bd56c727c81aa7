package testutil

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ciwatch/cli/pkg/cmd/factory"
	"github.com/spf13/cobra"
)

// CommandInput contains the configuration for a test command
type CommandInput struct {
	Factory *factory.Factory
	NewCmd  func(*factory.Factory) *cobra.Command
	Args    []string
	Stdin   string
}

// CommandOutput holds what a command wrote
type CommandOutput struct {
	Stdout string
	Stderr string
}

// RunCommand builds the command, runs it with the given args and captures its output
func RunCommand(t *testing.T, input CommandInput) (CommandOutput, error) {
	t.Helper()

	cmd := input.NewCmd(input.Factory)

	var stdout, stderr bytes.Buffer
	cmd.SetArgs(append([]string{}, input.Args...))
	cmd.SetIn(strings.NewReader(input.Stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.Execute()
	return CommandOutput{Stdout: stdout.String(), Stderr: stderr.String()}, err
}
