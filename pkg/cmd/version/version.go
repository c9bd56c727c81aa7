package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/ciwatch/cli/pkg/cmd/factory"
	"github.com/spf13/cobra"
)

func NewCmdVersion(f *factory.Factory) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Args:  cobra.NoArgs,
		Short: "Print the version of ciw",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), Format(f.Version))
		},
	}
}

// Format renders the version line shown by 'ciw version' and 'ciw --version'
func Format(version string) string {
	version = strings.TrimPrefix(version, "v")
	if version == "" {
		version = "dev"
	}
	return fmt.Sprintf("ciw version %s (%s/%s)\n", version, runtime.GOOS, runtime.GOARCH)
}
