package root

import (
	"github.com/MakeNowJust/heredoc"
	cierrors "github.com/ciwatch/cli/internal/errors"
	buildCmd "github.com/ciwatch/cli/pkg/cmd/build"
	"github.com/ciwatch/cli/pkg/cmd/factory"
	infoCmd "github.com/ciwatch/cli/pkg/cmd/info"
	jobCmd "github.com/ciwatch/cli/pkg/cmd/job"
	loginCmd "github.com/ciwatch/cli/pkg/cmd/login"
	logoutCmd "github.com/ciwatch/cli/pkg/cmd/logout"
	pipelineCmd "github.com/ciwatch/cli/pkg/cmd/pipeline"
	targetsCmd "github.com/ciwatch/cli/pkg/cmd/targets"
	teamCmd "github.com/ciwatch/cli/pkg/cmd/team"
	useCmd "github.com/ciwatch/cli/pkg/cmd/use"
	versionCmd "github.com/ciwatch/cli/pkg/cmd/version"
	"github.com/spf13/cobra"
)

func NewCmdRoot(f *factory.Factory) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "ciw <command> [flags]",
		Short: "Concourse CI watcher",
		Long:  "Follow Concourse pipelines, jobs and builds from the command line.",
		Example: heredoc.Doc(`
			$ ciw login -t prod --api https://ci.example.com
			$ ciw jobs website
			$ ciw logs 4312
		`),
		Annotations: map[string]string{
			"versionInfo": versionCmd.Format(f.Version),
		},
		Version:      f.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return f.BindFlags(cmd.Flags())
		},
	}
	cmd.SetVersionTemplate(versionCmd.Format(f.Version))

	cmd.PersistentFlags().StringP(factory.KeyTarget, "t", "", "Target to run against instead of the selected one (CIW_TARGET)")
	cmd.PersistentFlags().Bool(factory.KeyDebug, false, "Log HTTP requests and stream events to stderr (CIW_DEBUG)")
	cmd.PersistentFlags().BoolP(factory.KeyQuiet, "q", false, "Hide progress spinners (CIW_QUIET)")
	cmd.Flags().BoolP("version", "v", false, "Print the version number")

	cmd.AddCommand(loginCmd.NewCmdLogin(f))
	cmd.AddCommand(logoutCmd.NewCmdLogout(f))
	cmd.AddCommand(targetsCmd.NewCmdTargets(f))
	cmd.AddCommand(useCmd.NewCmdUse(f))
	cmd.AddCommand(infoCmd.NewCmdInfo(f))
	cmd.AddCommand(teamCmd.NewCmdTeams(f))
	cmd.AddCommand(pipelineCmd.NewCmdPipelines(f))
	cmd.AddCommand(jobCmd.NewCmdJobs(f))
	cmd.AddCommand(buildCmd.NewCmdBuilds(f))
	cmd.AddCommand(buildCmd.NewCmdTrigger(f))
	cmd.AddCommand(buildCmd.NewCmdLogs(f))
	cmd.AddCommand(versionCmd.NewCmdVersion(f))

	for _, sub := range cmd.Commands() {
		if sub.RunE != nil {
			sub.RunE = cierrors.WrapRunE(sub.RunE)
		}
	}

	return cmd, nil
}
