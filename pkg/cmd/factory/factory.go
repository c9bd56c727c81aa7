package factory

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/ciwatch/cli/internal/concourse"
	"github.com/ciwatch/cli/internal/config"
	cierrors "github.com/ciwatch/cli/internal/errors"
	httpClient "github.com/ciwatch/cli/internal/http"
	"github.com/ciwatch/cli/internal/models"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is prepended to the environment variables read through viper, e.g. CIW_TARGET
	EnvPrefix = "ciw"

	KeyTarget = "target"
	KeyDebug  = "debug"
	KeyQuiet  = "quiet"
)

// Factory holds what commands share: configuration, logging and the means
// to build API clients for a target.
type Factory struct {
	Config  *config.Config
	Viper   *viper.Viper
	Logger  *slog.Logger
	Level   *slog.LevelVar
	Version string
}

// New loads .env, the environment and the user config file
func New(version string) *Factory {
	// a missing .env is normal
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	return &Factory{
		Config:  config.New(afero.NewOsFs()),
		Viper:   v,
		Logger:  logger,
		Level:   level,
		Version: version,
	}
}

// BindFlags lets flags override the matching CIW_ environment variables
func (f *Factory) BindFlags(flags *pflag.FlagSet) error {
	for _, key := range []string{KeyTarget, KeyDebug, KeyQuiet} {
		if flag := flags.Lookup(key); flag != nil {
			if err := f.Viper.BindPFlag(key, flag); err != nil {
				return err
			}
		}
	}
	if f.Viper.GetBool(KeyDebug) && f.Level != nil {
		f.Level.Set(slog.LevelDebug)
	}
	return nil
}

// Quiet reports whether progress output should be suppressed
func (f *Factory) Quiet() bool {
	return f.Viper.GetBool(KeyQuiet)
}

// TargetName is the target picked with --target or CIW_TARGET, empty for the selected one
func (f *Factory) TargetName() string {
	return f.Viper.GetString(KeyTarget)
}

// Target returns the target commands operate on
func (f *Factory) Target() (models.Target, error) {
	return f.Config.CurrentTarget(f.TargetName())
}

// UserAgent identifies this CLI to the server
func (f *Factory) UserAgent() string {
	return fmt.Sprintf("ciw/%s (%s/%s)", f.Version, runtime.GOOS, runtime.GOARCH)
}

// HTTPClient creates a transport for a server, optionally skipping TLS verification
func (f *Factory) HTTPClient(api string, insecure bool) *httpClient.Client {
	return httpClient.NewClient(api,
		httpClient.WithUserAgent(f.UserAgent()),
		httpClient.WithInsecureSkipVerify(insecure),
		httpClient.WithLogger(f.Logger),
	)
}

// Client creates an API client for target, authenticated with its token
func (f *Factory) Client(target models.Target) *concourse.Client {
	return concourse.New(f.HTTPClient(target.API, target.Insecure),
		concourse.WithToken(target.Token),
		concourse.WithLogger(f.Logger),
	)
}

// LoggedInClient returns the current target and a client for it. The target
// must hold a token.
func (f *Factory) LoggedInClient() (*concourse.Client, models.Target, error) {
	target, err := f.Target()
	if err != nil {
		return nil, models.Target{}, err
	}
	if !target.LoggedIn() {
		return nil, target, cierrors.NewAuthenticationError(nil,
			fmt.Sprintf("not logged in to target %q", target.Name),
			fmt.Sprintf("Run 'ciw login -t %s' to log in", target.Name))
	}
	return f.Client(target), target, nil
}
