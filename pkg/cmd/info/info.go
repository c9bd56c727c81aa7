package info

import (
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/ciwatch/cli/internal/async"
	"github.com/ciwatch/cli/internal/io"
	"github.com/ciwatch/cli/internal/models"
	"github.com/ciwatch/cli/internal/ui"
	"github.com/ciwatch/cli/pkg/cmd/factory"
	"github.com/ciwatch/cli/pkg/output"
	"github.com/spf13/cobra"
)

type infoView struct {
	Target        string `json:"target" yaml:"target"`
	API           string `json:"api" yaml:"api"`
	Team          string `json:"team" yaml:"team"`
	LoggedIn      bool   `json:"logged_in" yaml:"logged_in"`
	Version       string `json:"version" yaml:"version"`
	WorkerVersion string `json:"worker_version,omitempty" yaml:"worker_version,omitempty"`
}

func NewCmdInfo(f *factory.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Args:  cobra.NoArgs,
		Short: "Show the server behind the current target",
		Long: heredoc.Doc(`
			Show the current target and the version of the server it points at.
			No login is needed.
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

			fetch := async.Map(async.Producer[models.Info](f.Client(target).Info), func(info models.Info) (infoView, error) {
				return infoView{
					Target:        target.Name,
					API:           target.API,
					Team:          target.Team,
					LoggedIn:      target.LoggedIn(),
					Version:       info.Version,
					WorkerVersion: info.WorkerVersion,
				}, nil
			})

			pending := fetch.Start(cmd.Context())
			err = io.SpinWhile(f.Quiet(), "Loading server info", func() {
				<-pending.Done()
			})
			if err != nil {
				return err
			}
			view, err := pending.Await(cmd.Context())
			if err != nil {
				return err
			}

			return output.Write(cmd.OutOrStdout(), output.Viewable[infoView]{Data: view, Render: renderInfo}, format)
		},
	}

	output.AddFlags(cmd.Flags())

	return cmd
}

func renderInfo(v infoView) string {
	loggedIn := "no"
	if v.LoggedIn {
		loggedIn = "yes"
	}
	return strings.Join([]string{
		ui.LabeledValue("Target", v.Target),
		ui.LabeledValue("API", v.API),
		ui.LabeledValue("Team", v.Team),
		ui.LabeledValue("Logged in", loggedIn),
		ui.LabeledValue("Version", v.Version),
		ui.LabeledValue("Worker version", output.ValueOrDash(v.WorkerVersion)),
	}, "\n")
}
