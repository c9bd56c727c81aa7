package logout

import (
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/ciwatch/cli/internal/io"
	"github.com/ciwatch/cli/pkg/cmd/factory"
	"github.com/spf13/cobra"
)

type logoutOptions struct {
	delete bool
	yes    bool
}

func NewCmdLogout(f *factory.Factory) *cobra.Command {
	var opts logoutOptions

	cmd := &cobra.Command{
		Use:   "logout",
		Args:  cobra.NoArgs,
		Short: "Forget the token of a target",
		Long: heredoc.Doc(`
			Forget the token saved for the current target, or the one named with --target.

			With --delete the target itself is removed from the configuration.
		`),
		Example: heredoc.Doc(`
			# Log out of the selected target
			$ ciw logout

			# Remove a target without asking
			$ ciw logout -t staging --delete -y
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := f.Target()
			if err != nil {
				return err
			}

			if !opts.delete {
				if err := f.Config.Logout(target.Name); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Logged out of target %s\n", target.Name)
				return nil
			}

			confirmed := opts.yes
			if !confirmed {
				title := fmt.Sprintf("Delete target %s (%s)?", target.Name, target.API)
				if err := io.Confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), &confirmed, title); err != nil {
					return err
				}
			}
			if !confirmed {
				fmt.Fprintln(cmd.OutOrStdout(), "Target kept")
				return nil
			}

			if err := f.Config.DeleteTarget(target.Name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted target %s\n", target.Name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.delete, "delete", false, "Remove the target from the configuration")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}
