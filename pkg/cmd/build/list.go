package build

import (
	"fmt"
	"time"

	"github.com/MakeNowJust/heredoc"
	cierrors "github.com/ciwatch/cli/internal/errors"
	"github.com/ciwatch/cli/internal/io"
	"github.com/ciwatch/cli/internal/models"
	"github.com/ciwatch/cli/internal/ui"
	"github.com/ciwatch/cli/pkg/cmd/factory"
	"github.com/ciwatch/cli/pkg/output"
	"github.com/spf13/cobra"
)

type buildListOptions struct {
	job   string
	limit int
}

func NewCmdBuilds(f *factory.Factory) *cobra.Command {
	var opts buildListOptions

	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use:                   "builds [flags]",
		Args:                  cobra.NoArgs,
		Short:                 "List builds",
		Long: heredoc.Doc(`
			List recent builds visible to you, or the builds of one job.
		`),
		Example: heredoc.Doc(`
			# List recent builds
			$ ciw builds

			# List the last 5 builds of a job
			$ ciw builds --job website/deploy --limit 5
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.GetFormat(cmd.Flags())
			if err != nil {
				return err
			}
			if opts.limit < 0 {
				return cierrors.NewValidationError(nil, "--limit cannot be negative")
			}

			var ref jobRef
			if opts.job != "" {
				if ref, err = parseJobRef(opts.job); err != nil {
					return err
				}
			}

			client, target, err := f.LoggedInClient()
			if err != nil {
				return err
			}

			var builds []models.Build
			var listErr error
			err = io.SpinWhile(f.Quiet(), "Loading builds", func() {
				if opts.job != "" {
					builds, listErr = client.JobBuilds(cmd.Context(), target.Team, ref.pipeline, ref.job)
					return
				}
				builds, listErr = client.Builds(cmd.Context())
			})
			if err != nil {
				return err
			}
			if listErr != nil {
				return listErr
			}

			if opts.limit > 0 && len(builds) > opts.limit {
				builds = builds[:opts.limit]
			}

			if len(builds) == 0 && format == output.FormatText {
				fmt.Fprintln(cmd.OutOrStdout(), "No builds found.")
				return nil
			}

			now := time.Now()
			return output.Write(cmd.OutOrStdout(), output.Viewable[[]models.Build]{
				Data: builds,
				Render: func(builds []models.Build) string {
					return ui.RenderBuilds(builds, now)
				},
			}, format)
		},
	}

	cmd.Flags().StringVarP(&opts.job, "job", "j", "", "Only list builds of this job, as <pipeline>/<job>")
	cmd.Flags().IntVar(&opts.limit, "limit", 20, "Maximum number of builds to show, 0 for all")
	output.AddFlags(cmd.Flags())
	cmd.Flags().SortFlags = false

	return cmd
}
