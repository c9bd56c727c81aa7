package build

import (
	"fmt"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/ciwatch/cli/internal/io"
	"github.com/ciwatch/cli/internal/models"
	"github.com/ciwatch/cli/internal/ui"
	"github.com/ciwatch/cli/pkg/cmd/factory"
	"github.com/spf13/cobra"
)

type triggerOptions struct {
	watch bool
	raw   bool
}

func NewCmdTrigger(f *factory.Factory) *cobra.Command {
	var opts triggerOptions

	cmd := &cobra.Command{
		Use:   "trigger <pipeline>/<job>",
		Args:  cobra.ExactArgs(1),
		Short: "Start a new build of a job",
		Long: heredoc.Doc(`
			Start a new build of a job. With --watch its output is followed until
			the build finishes.
		`),
		Example: heredoc.Doc(`
			$ ciw trigger website/deploy
			$ ciw trigger website/deploy --watch
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := parseJobRef(args[0])
			if err != nil {
				return err
			}

			client, target, err := f.LoggedInClient()
			if err != nil {
				return err
			}

			var build models.Build
			var triggerErr error
			err = io.SpinWhile(f.Quiet(), "Starting build of "+ref.String(), func() {
				build, triggerErr = client.TriggerBuild(cmd.Context(), target.Team, ref.pipeline, ref.job)
			})
			if err != nil {
				return err
			}
			if triggerErr != nil {
				return triggerErr
			}

			fmt.Fprintln(cmd.ErrOrStderr(), ui.RenderBuildSummary(build, time.Now()))
			if !opts.watch {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\n", build.ID)
				return nil
			}
			return followBuild(cmd.Context(), client, build.ID, cmd.OutOrStdout(), opts.raw)
		},
	}

	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Follow the output of the new build")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "With --watch, keep terminal styling sequences in the output")

	return cmd
}
