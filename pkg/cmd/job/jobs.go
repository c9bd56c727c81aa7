package job

import (
	"context"

	"github.com/MakeNowJust/heredoc"
	"github.com/ciwatch/cli/internal/concourse"
	cierrors "github.com/ciwatch/cli/internal/errors"
	"github.com/ciwatch/cli/internal/io"
	"github.com/ciwatch/cli/internal/models"
	"github.com/ciwatch/cli/internal/ui"
	"github.com/ciwatch/cli/pkg/cmd/factory"
	"github.com/ciwatch/cli/pkg/output"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentPipelines bounds the job requests --all makes at once
const maxConcurrentPipelines = 4

// PipelineJobs are the jobs of one pipeline
type PipelineJobs struct {
	Pipeline string       `json:"pipeline" yaml:"pipeline"`
	Jobs     []models.Job `json:"jobs" yaml:"jobs"`
}

type jobsOptions struct {
	all bool
}

func NewCmdJobs(f *factory.Factory) *cobra.Command {
	var opts jobsOptions

	cmd := &cobra.Command{
		Use:   "jobs [<pipeline>]",
		Short: "List the jobs of a pipeline",
		Long: heredoc.Doc(`
			List the jobs of a pipeline, grouped the way the pipeline groups them.
			Jobs outside any group are listed last under "ungrouped".

			With --all the jobs of every pipeline in the team are listed.
		`),
		Example: heredoc.Doc(`
			$ ciw jobs website
			$ ciw jobs --all -o json
		`),
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.all {
				return cobra.NoArgs(cmd, args)
			}
			if len(args) != 1 {
				return cierrors.NewValidationError(nil, "a pipeline name is required", "Pass a pipeline, or --all for every pipeline")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.GetFormat(cmd.Flags())
			if err != nil {
				return err
			}

			client, target, err := f.LoggedInClient()
			if err != nil {
				return err
			}

			var result []PipelineJobs
			var listErr error
			err = io.SpinWhile(f.Quiet(), "Loading jobs", func() {
				if opts.all {
					result, listErr = allJobs(cmd.Context(), client, target.Team)
					return
				}
				var jobs []models.Job
				jobs, listErr = client.Jobs(cmd.Context(), target.Team, args[0])
				result = []PipelineJobs{{Pipeline: args[0], Jobs: jobs}}
			})
			if err != nil {
				return err
			}
			if listErr != nil {
				return listErr
			}

			if !opts.all {
				return output.Write(cmd.OutOrStdout(), output.Viewable[[]models.Job]{
					Data:   result[0].Jobs,
					Render: renderJobs,
				}, format)
			}
			return output.Write(cmd.OutOrStdout(), output.Viewable[[]PipelineJobs]{
				Data:   result,
				Render: renderPipelineJobs,
			}, format)
		},
	}

	cmd.Flags().BoolVarP(&opts.all, "all", "a", false, "List the jobs of every pipeline in the team")
	output.AddFlags(cmd.Flags())

	return cmd
}

// allJobs fetches the jobs of every pipeline of a team concurrently. The
// result keeps the order of the pipeline list; the first failure cancels
// the remaining requests.
func allJobs(ctx context.Context, client *concourse.Client, team string) ([]PipelineJobs, error) {
	pipelines, err := client.Pipelines(ctx, team)
	if err != nil {
		return nil, err
	}

	result := make([]PipelineJobs, len(pipelines))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentPipelines)

	for i, p := range pipelines {
		i, name := i, p.Name
		g.Go(func() error {
			jobs, err := client.Jobs(ctx, team, name)
			if err != nil {
				return err
			}
			result[i] = PipelineJobs{Pipeline: name, Jobs: jobs}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

func renderJobs(jobs []models.Job) string {
	if len(jobs) == 0 {
		return "No jobs."
	}
	return ui.RenderGroupedJobs(jobs)
}

func renderPipelineJobs(all []PipelineJobs) string {
	if len(all) == 0 {
		return "No pipelines."
	}
	sections := make([]string, 0, len(all))
	for _, p := range all {
		sections = append(sections, ui.Section(p.Pipeline, renderJobs(p.Jobs)))
	}
	return ui.SpacedVertical(sections...)
}
