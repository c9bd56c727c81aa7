// Package testutil provides reusable test helpers for the CLI
package testutil

import (
	"io"
	"log/slog"
	"testing"

	"github.com/ciwatch/cli/internal/config"
	"github.com/ciwatch/cli/internal/models"
	"github.com/ciwatch/cli/pkg/cmd/factory"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// TestToken is the token of the target CreateFactory saves
const TestToken = "test-token"

// CreateFactory creates a Factory with an in-memory config holding one
// selected target "test" for team "main" on serverURL. An empty token leaves
// the target logged out.
func CreateFactory(t *testing.T, serverURL, token string) *factory.Factory {
	t.Helper()

	conf, err := config.Open(afero.NewMemMapFs(), "/home/test/.config/ciw.yaml", false)
	if err != nil {
		t.Fatalf("Error opening config: %s", err)
	}

	if serverURL != "" {
		err = conf.PutTarget(models.Target{
			Name:  "test",
			API:   serverURL,
			Team:  "main",
			Token: models.Token{Value: token},
		})
		if err != nil {
			t.Fatalf("Error saving target: %s", err)
		}
	}

	level := new(slog.LevelVar)
	return &factory.Factory{
		Config:  conf,
		Viper:   viper.New(),
		Logger:  slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: level})),
		Level:   level,
		Version: "test",
	}
}
