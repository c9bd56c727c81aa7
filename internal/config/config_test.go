package config

import (
	"strings"
	"testing"

	cierrors "github.com/ciwatch/cli/internal/errors"
	"github.com/ciwatch/cli/internal/models"
	"github.com/spf13/afero"
)

const testPath = "/home/ci/.config/ciw.yaml"

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("missing file starts empty", func(t *testing.T) {
		t.Parallel()

		conf, err := Open(afero.NewMemMapFs(), testPath, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if conf.SelectedTarget() != "" {
			t.Errorf("expected no selected target, got %q", conf.SelectedTarget())
		}
		targets, err := conf.Targets()
		if err != nil || len(targets) != 0 {
			t.Errorf("expected no targets, got %v (%v)", targets, err)
		}
	})

	t.Run("reads targets from yaml", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		content := `selected_target: prod
targets:
  prod:
    api: https://ci.example.com
    team: main
    token: abc123
  lab:
    api: https://lab.internal:8080
    team: platform
    insecure: true
`
		if err := afero.WriteFile(fs, testPath, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}

		conf, err := Open(fs, testPath, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		current, err := conf.CurrentTarget("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if current.Name != "prod" || current.API != "https://ci.example.com" || current.Team != "main" {
			t.Errorf("unexpected target %+v", current)
		}
		if current.Token.AuthValue() != "Bearer abc123" {
			t.Errorf("unexpected token %q", current.Token.Value)
		}

		lab, err := conf.CurrentTarget("lab")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !lab.Insecure || lab.LoggedIn() {
			t.Errorf("expected an insecure logged out target, got %+v", lab)
		}

		targets, _ := conf.Targets()
		if len(targets) != 2 || targets[0].Name != "lab" || targets[1].Name != "prod" {
			t.Errorf("expected targets ordered by name, got %+v", targets)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		if err := afero.WriteFile(fs, testPath, []byte("targets: [oops"), 0o600); err != nil {
			t.Fatal(err)
		}

		conf, err := Open(fs, testPath, false)
		if err == nil {
			t.Fatal("expected an error")
		}
		if err := conf.PutTarget(models.Target{Name: "x", API: "https://x"}); err != nil {
			t.Errorf("expected the config to stay usable, got %v", err)
		}
	})
}

func TestCurrentTargetErrors(t *testing.T) {
	t.Parallel()

	conf, _ := Open(afero.NewMemMapFs(), testPath, false)

	_, err := conf.CurrentTarget("")
	if !cierrors.IsConfigurationError(err) {
		t.Errorf("expected a configuration error, got %v", err)
	}

	_, err = conf.CurrentTarget("nope")
	if !cierrors.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestTargetsFileStorage(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	conf, _ := Open(fs, testPath, false)

	err := conf.PutTarget(models.Target{
		Name:  "prod",
		API:   "https://ci.example.com",
		Team:  "main",
		Token: models.Token{Value: "abc123"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conf.SelectedTarget() != "prod" {
		t.Errorf("expected the first target to be selected, got %q", conf.SelectedTarget())
	}

	if err := conf.PutTarget(models.Target{Name: "lab", API: "https://lab", Team: "platform"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conf.SelectedTarget() != "prod" {
		t.Errorf("expected selection to stay, got %q", conf.SelectedTarget())
	}

	written, err := afero.ReadFile(fs, testPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(written), "token: abc123") {
		t.Errorf("expected the token in the file, got:\n%s", written)
	}

	reloaded, err := Open(fs, testPath, false)
	if err != nil {
		t.Fatal(err)
	}
	prod, err := reloaded.Target("prod")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prod.Token.Value != "abc123" {
		t.Errorf("expected the token to survive a reload, got %+v", prod)
	}

	if err := reloaded.SelectTarget("lab"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := reloaded.SelectTarget("missing"); !cierrors.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}

	if err := reloaded.Logout("prod"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	prod, _ = reloaded.Target("prod")
	if prod.LoggedIn() {
		t.Error("expected the token to be gone after logout")
	}

	if err := reloaded.DeleteTarget("lab"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reloaded.SelectedTarget() != "" {
		t.Errorf("expected the selection to be cleared, got %q", reloaded.SelectedTarget())
	}
	if _, err := reloaded.Target("lab"); !cierrors.IsNotFound(err) {
		t.Errorf("expected lab to be gone, got %v", err)
	}
}

func TestPutTargetValidation(t *testing.T) {
	t.Parallel()

	conf, _ := Open(afero.NewMemMapFs(), testPath, false)

	testCases := []struct {
		name   string
		target models.Target
	}{
		{name: "missing name", target: models.Target{API: "https://ci"}},
		{name: "blank name", target: models.Target{Name: "  ", API: "https://ci"}},
		{name: "missing api", target: models.Target{Name: "prod"}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if err := conf.PutTarget(tc.target); !cierrors.IsValidationError(err) {
				t.Errorf("expected a validation error, got %v", err)
			}
		})
	}
}
