package targets

import (
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/ciwatch/cli/internal/models"
	"github.com/ciwatch/cli/internal/ui"
	"github.com/ciwatch/cli/pkg/cmd/factory"
	"github.com/ciwatch/cli/pkg/output"
	"github.com/spf13/cobra"
)

// targetView is how a target is printed as json or yaml; tokens are never shown
type targetView struct {
	models.Target `yaml:",inline"`
	Selected      bool `json:"selected" yaml:"selected"`
	LoggedIn      bool `json:"logged_in" yaml:"logged_in"`
}

func NewCmdTargets(f *factory.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "targets",
		Aliases: []string{"ts"},
		Args:    cobra.NoArgs,
		Short:   "List saved targets",
		Long: heredoc.Doc(`
			List the saved targets. The selected target is marked with *.
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.GetFormat(cmd.Flags())
			if err != nil {
				return err
			}

			targets, err := f.Config.Targets()
			if err != nil {
				return err
			}

			if len(targets) == 0 && format == output.FormatText {
				fmt.Fprintln(cmd.OutOrStdout(), "No targets saved. Run 'ciw login' to add one.")
				return nil
			}

			selected := f.Config.SelectedTarget()
			views := make([]targetView, 0, len(targets))
			for _, t := range targets {
				views = append(views, targetView{Target: t, Selected: t.Name == selected, LoggedIn: t.LoggedIn()})
			}

			return output.Write(cmd.OutOrStdout(), output.Viewable[[]targetView]{
				Data:   views,
				Render: renderTargets,
			}, format)
		},
	}

	output.AddFlags(cmd.Flags())

	return cmd
}

func renderTargets(views []targetView) string {
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		rows = append(rows, ui.RenderTarget(v.Target, v.Selected))
	}
	return output.Table([]string{"", "Name", "API", "Team", "Status"}, rows, map[string]string{"api": "dim"})
}
