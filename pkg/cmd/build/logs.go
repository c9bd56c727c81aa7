package build

import (
	"context"
	"errors"
	goio "io"
	"strconv"

	"github.com/MakeNowJust/heredoc"
	"github.com/ciwatch/cli/internal/ansi"
	"github.com/ciwatch/cli/internal/concourse"
	cierrors "github.com/ciwatch/cli/internal/errors"
	"github.com/ciwatch/cli/internal/logs"
	"github.com/ciwatch/cli/internal/models"
	"github.com/ciwatch/cli/pkg/cmd/factory"
	"github.com/spf13/cobra"
)

type logsOptions struct {
	raw bool
}

func NewCmdLogs(f *factory.Factory) *cobra.Command {
	var opts logsOptions

	cmd := &cobra.Command{
		Use:   "logs <build-id>",
		Args:  cobra.ExactArgs(1),
		Short: "Follow the output of a build",
		Long: heredoc.Doc(`
			Print the output of a build, following it until the build finishes.

			Terminal styling sequences are removed unless --raw is given.
		`),
		Example: heredoc.Doc(`
			$ ciw logs 4312
			$ ciw logs 4312 --raw | less -R
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return cierrors.NewValidationError(err, "the build ID must be a positive number")
			}

			client, _, err := f.LoggedInClient()
			if err != nil {
				return err
			}
			return followBuild(cmd.Context(), client, id, cmd.OutOrStdout(), opts.raw)
		},
	}

	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Keep terminal styling sequences in the output")

	return cmd
}

// followBuild writes the output of a build to w until the server ends the
// stream. Unless raw is set, styling sequences are stripped on the way.
func followBuild(ctx context.Context, client *concourse.Client, buildID int, w goio.Writer, raw bool) error {
	out := w
	var stripper *ansi.Writer
	if !raw {
		stripper = ansi.NewWriter(w)
		out = stripper
	}

	// handler callbacks run one at a time on the stream goroutine
	var streamErr, writeErr error
	stream := client.WatchBuild(ctx, buildID, logs.Handler{
		OnLogs: func(events []models.LogEvent) {
			for _, e := range events {
				if writeErr != nil {
					return
				}
				_, writeErr = goio.WriteString(out, e.Payload)
			}
		},
		OnError: func(err error) {
			streamErr = err
		},
	})
	<-stream.Done()

	if stripper != nil && writeErr == nil {
		writeErr = stripper.Close()
	}

	switch {
	case streamErr == nil && writeErr == nil:
		return nil
	case errors.Is(streamErr, context.Canceled), errors.Is(streamErr, context.DeadlineExceeded):
		return streamErr
	case errors.Is(streamErr, goio.ErrUnexpectedEOF):
		return cierrors.NewNetworkError(streamErr, "the log stream closed before the build finished",
			"Run the command again to follow the build from the start")
	case streamErr != nil:
		return cierrors.WrapAPIError(streamErr, "follow build output")
	default:
		return cierrors.NewInternalError(writeErr, "could not write the build output")
	}
}
