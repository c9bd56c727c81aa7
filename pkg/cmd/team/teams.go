package team

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/ciwatch/cli/internal/io"
	"github.com/ciwatch/cli/internal/models"
	"github.com/ciwatch/cli/internal/ui"
	"github.com/ciwatch/cli/pkg/cmd/factory"
	"github.com/ciwatch/cli/pkg/output"
	"github.com/spf13/cobra"
)

func NewCmdTeams(f *factory.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teams",
		Args:  cobra.NoArgs,
		Short: "List the teams on the server",
		Long: heredoc.Doc(`
			List the teams visible on the server of the current target. The
			target's own team is marked with *.
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.GetFormat(cmd.Flags())
			if err != nil {
				return err
			}

			target, err := f.Target()
			if err != nil {
				return err
			}

			var teams []models.Team
			var listErr error
			err = io.SpinWhile(f.Quiet(), "Loading teams", func() {
				teams, listErr = f.Client(target).Teams(cmd.Context())
			})
			if err != nil {
				return err
			}
			if listErr != nil {
				return listErr
			}

			if len(teams) == 0 && format == output.FormatText {
				fmt.Fprintln(cmd.OutOrStdout(), "No teams found.")
				return nil
			}

			return output.Write(cmd.OutOrStdout(), output.Viewable[[]models.Team]{
				Data: teams,
				Render: func(teams []models.Team) string {
					return renderTeams(teams, target.Team)
				},
			}, format)
		},
	}

	output.AddFlags(cmd.Flags())

	return cmd
}

func renderTeams(teams []models.Team, current string) string {
	lines := make([]string, 0, len(teams))
	for _, t := range teams {
		marker := " "
		if t.Name == current {
			marker = ui.IconSelected
		}
		lines = append(lines, marker+" "+t.Name)
	}
	return strings.Join(lines, "\n")
}
