package login

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/ciwatch/cli/internal/auth"
	"github.com/ciwatch/cli/internal/concourse"
	cierrors "github.com/ciwatch/cli/internal/errors"
	"github.com/ciwatch/cli/internal/io"
	"github.com/ciwatch/cli/internal/models"
	"github.com/ciwatch/cli/pkg/cmd/factory"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

// DefaultTeam is the team logged in to when none is given
const DefaultTeam = "main"

type loginOptions struct {
	api      string
	team     string
	method   string
	username string
	password string
	token    string
	insecure bool
}

func NewCmdLogin(f *factory.Factory) *cobra.Command {
	var opts loginOptions

	cmd := &cobra.Command{
		Use:   "login",
		Args:  cobra.NoArgs,
		Short: "Log in to a team and save it as a target",
		Long: heredoc.Doc(`
			Log in to a team on a Concourse server and save the connection as a target.

			The login methods the team accepts are looked up first. Teams without
			authentication get a token straight away; otherwise you pick a method,
			or the only one available is used.
		`),
		Example: heredoc.Doc(`
			# Add a target and log in interactively
			$ ciw login -t prod --api https://ci.example.com --team main

			# Log in again to a saved target
			$ ciw login -t prod

			# Log in with a username and password, without prompts
			$ ciw login -t prod -u admin -p secret

			# Use a token copied from the web UI
			$ ciw login -t prod --token "$CI_TOKEN"
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, f, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.api, "api", "a", "", "URL of the Concourse server")
	cmd.Flags().StringVarP(&opts.team, "team", "n", "", fmt.Sprintf("Team to log in to (default %q)", DefaultTeam))
	cmd.Flags().StringVar(&opts.method, "method", "", "Login method to use: basic or github")
	cmd.Flags().StringVarP(&opts.username, "username", "u", "", "Username for basic auth")
	cmd.Flags().StringVarP(&opts.password, "password", "p", "", "Password for basic auth")
	cmd.Flags().StringVar(&opts.token, "token", "", "Token obtained in the browser, checked before it is saved")
	cmd.Flags().BoolVarP(&opts.insecure, "insecure", "k", false, "Skip TLS certificate verification for this target")
	cmd.MarkFlagsMutuallyExclusive("token", "username")
	cmd.MarkFlagsMutuallyExclusive("token", "method")

	return cmd
}

func runLogin(cmd *cobra.Command, f *factory.Factory, opts loginOptions) error {
	target, err := loginTarget(f, cmd, opts)
	if err != nil {
		return err
	}

	client := concourse.New(f.HTTPClient(target.API, target.Insecure), concourse.WithLogger(f.Logger))
	resolver := auth.NewResolver(client, target.Team)

	token, err := resolveToken(cmd, f, resolver, opts)
	if err != nil {
		return err
	}

	target.Token = token
	if err := f.Config.PutTarget(target); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Logged in to team %s on %s, saved as target %s\n", target.Team, target.API, target.Name)
	return nil
}

// loginTarget merges the flags with any saved target of the same name
func loginTarget(f *factory.Factory, cmd *cobra.Command, opts loginOptions) (models.Target, error) {
	name := f.TargetName()
	if name == "" {
		name = f.Config.SelectedTarget()
	}
	if name == "" {
		return models.Target{}, cierrors.NewValidationError(nil, "no target given",
			"Pass --target to name the target to save, e.g. 'ciw login -t prod --api https://ci.example.com'")
	}

	target := models.Target{Name: name}
	if saved, err := f.Config.Target(name); err == nil {
		target = saved
	} else if !cierrors.IsNotFound(err) {
		return models.Target{}, err
	}

	if opts.api != "" {
		target.API = opts.api
	}
	if opts.team != "" {
		target.Team = opts.team
	}
	if target.Team == "" {
		target.Team = DefaultTeam
	}
	if cmd.Flags().Changed("insecure") {
		target.Insecure = opts.insecure
	}

	api, err := normalizeAPI(target.API)
	if err != nil {
		return models.Target{}, err
	}
	target.API = api
	return target, nil
}

// normalizeAPI checks the server URL and drops any trailing slash, since
// endpoint paths are appended to it as they are
func normalizeAPI(api string) (string, error) {
	if api == "" {
		return "", cierrors.NewValidationError(nil, "no server URL given", "Pass --api with the URL of the Concourse server")
	}

	u, err := url.Parse(api)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", cierrors.NewValidationError(err, fmt.Sprintf("%q is not an http(s) URL", api))
	}
	return strings.TrimRight(api, "/"), nil
}

func resolveToken(cmd *cobra.Command, f *factory.Factory, resolver *auth.Resolver, opts loginOptions) (models.Token, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.token != "" {
		return resolver.External(ctx, opts.token)
	}

	var method models.AuthType
	if opts.method != "" {
		parsed, ok := models.ParseAuthType(opts.method)
		if !ok || parsed == models.AuthTypeUAA {
			return models.Token{}, cierrors.NewValidationError(nil, fmt.Sprintf("unknown login method %q", opts.method), "Use basic or github")
		}
		method = parsed
	}

	// the lookup is shared, so Resolve below reuses this result
	var lookupErr error
	err := io.SpinWhile(f.Quiet(), "Looking up login methods", func() {
		_, lookupErr = resolver.Methods(ctx)
	})
	if err != nil {
		return models.Token{}, err
	}
	if lookupErr != nil {
		return models.Token{}, lookupErr
	}

	prompter := &io.LoginPrompter{
		In:          cmd.InOrStdin(),
		Out:         cmd.ErrOrStderr(),
		Interactive: io.IsInteractive(),
		Method:      method,
		Username:    opts.username,
		Password:    opts.password,
		OpenBrowser: browser.OpenURL,
	}
	return resolver.Resolve(ctx, prompter)
}
