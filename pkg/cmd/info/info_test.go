package info

import (
	"strings"
	"testing"

	cierrors "github.com/ciwatch/cli/internal/errors"
	"github.com/ciwatch/cli/internal/testutil"
)

func TestInfo(t *testing.T) {
	t.Parallel()

	t.Run("shows the server version without a token", func(t *testing.T) {
		t.Parallel()

		server := testutil.NewMockServer(t,
			testutil.Route{Path: "/api/v1/info", Body: `{"version":"7.11.0","worker_version":"2.5"}`},
		)
		f := testutil.CreateFactory(t, server.URL, "")

		out, err := testutil.RunCommand(t, testutil.CommandInput{Factory: f, NewCmd: NewCmdInfo})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"7.11.0", "2.5", server.URL, "main"} {
			if !strings.Contains(out.Stdout, want) {
				t.Errorf("expected %q in output %q", want, out.Stdout)
			}
		}
		if auth := server.Requests()[0].Header.Get("Authorization"); auth != "" {
			t.Errorf("expected no credentials, got %q", auth)
		}
	})

	t.Run("yaml output", func(t *testing.T) {
		t.Parallel()

		server := testutil.NewMockServer(t,
			testutil.Route{Path: "/api/v1/info", Body: `{"version":"7.11.0"}`},
		)
		f := testutil.CreateFactory(t, server.URL, testutil.TestToken)

		out, err := testutil.RunCommand(t, testutil.CommandInput{Factory: f, NewCmd: NewCmdInfo, Args: []string{"-o", "yaml"}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out.Stdout, "version: 7.11.0") || !strings.Contains(out.Stdout, "logged_in: true") {
			t.Errorf("unexpected yaml %q", out.Stdout)
		}
		if strings.Contains(out.Stdout, "worker_version") {
			t.Errorf("empty worker version should be omitted: %q", out.Stdout)
		}
	})

	t.Run("malformed info", func(t *testing.T) {
		t.Parallel()

		server := testutil.NewMockServer(t,
			testutil.Route{Path: "/api/v1/info", Body: `{"worker_version":"2.5"}`},
		)
		f := testutil.CreateFactory(t, server.URL, "")

		_, err := testutil.RunCommand(t, testutil.CommandInput{Factory: f, NewCmd: NewCmdInfo})
		if !cierrors.IsDeserializationError(err) {
			t.Errorf("expected a deserialization error, got %v", err)
		}
	})

	t.Run("no target", func(t *testing.T) {
		t.Parallel()

		_, err := testutil.RunCommand(t, testutil.CommandInput{Factory: testutil.CreateFactory(t, "", ""), NewCmd: NewCmdInfo})
		if !cierrors.IsConfigurationError(err) {
			t.Errorf("expected a configuration error, got %v", err)
		}
	})
}
