package pipeline

import (
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/ciwatch/cli/internal/io"
	"github.com/ciwatch/cli/internal/models"
	"github.com/ciwatch/cli/internal/ui"
	"github.com/ciwatch/cli/pkg/cmd/factory"
	"github.com/ciwatch/cli/pkg/output"
	"github.com/spf13/cobra"
)

func NewCmdPipelines(f *factory.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pipelines",
		Aliases: []string{"ps"},
		Args:    cobra.NoArgs,
		Short:   "List the pipelines of the team",
		Long: heredoc.Doc(`
			List the pipelines of the current target's team.
		`),
		Example: heredoc.Doc(`
			$ ciw pipelines
			$ ciw pipelines -t prod -o json
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.GetFormat(cmd.Flags())
			if err != nil {
				return err
			}

			client, target, err := f.LoggedInClient()
			if err != nil {
				return err
			}

			var pipelines []models.Pipeline
			var listErr error
			err = io.SpinWhile(f.Quiet(), "Loading pipelines", func() {
				pipelines, listErr = client.Pipelines(cmd.Context(), target.Team)
			})
			if err != nil {
				return err
			}
			if listErr != nil {
				return listErr
			}

			if len(pipelines) == 0 && format == output.FormatText {
				fmt.Fprintf(cmd.OutOrStdout(), "No pipelines in team %s.\n", target.Team)
				return nil
			}

			return output.Write(cmd.OutOrStdout(), output.Viewable[[]models.Pipeline]{
				Data:   pipelines,
				Render: renderPipelines,
			}, format)
		},
	}

	output.AddFlags(cmd.Flags())

	return cmd
}

func renderPipelines(pipelines []models.Pipeline) string {
	rows := make([][]string, 0, len(pipelines))
	for _, p := range pipelines {
		state := "active"
		if p.Paused {
			state = ui.IconPaused + " paused"
		}
		visibility := "private"
		if p.Public {
			visibility = "public"
		}
		rows = append(rows, []string{p.Name, state, visibility})
	}
	return output.Table([]string{"Name", "State", "Visibility"}, rows, map[string]string{"name": "bold"})
}
