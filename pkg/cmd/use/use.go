package use

import (
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/ciwatch/cli/internal/config"
	cierrors "github.com/ciwatch/cli/internal/errors"
	"github.com/ciwatch/cli/internal/io"
	"github.com/ciwatch/cli/pkg/cmd/factory"
	"github.com/spf13/cobra"
)

func NewCmdUse(f *factory.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:                   "use [<target>]",
		Args:                  cobra.MaximumNArgs(1),
		DisableFlagsInUseLine: true,
		Short:                 "Select a target",
		Long: heredoc.Doc(`
			Select the saved target later commands run against.

			Without an argument the target is picked from a list.
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			var selected string
			if len(args) > 0 {
				selected = args[0]
			}
			return useRun(cmd, selected, f.Config)
		},
	}

	return cmd
}

func useRun(cmd *cobra.Command, selected string, conf *config.Config) error {
	if selected == "" {
		targets, err := conf.Targets()
		if err != nil {
			return err
		}
		if len(targets) == 0 {
			return cierrors.NewConfigurationError(nil, "no targets saved", "Run 'ciw login' to add one")
		}

		names := make([]string, 0, len(targets))
		for _, t := range targets {
			names = append(names, t.Name)
		}
		selected, err = io.PromptForOne("Select a target", names)
		if errors.Is(err, io.ErrNoTTY) {
			return cierrors.NewValidationError(err, "no target given", "Pass the name of the target, e.g. 'ciw use prod'")
		}
		if err != nil {
			return err
		}
	}

	// if already selected, do nothing
	if conf.SelectedTarget() != selected {
		if err := conf.SelectTarget(selected); err != nil {
			return err
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Using target %s\n", selected)
	return nil
}
