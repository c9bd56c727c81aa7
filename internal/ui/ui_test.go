package ui

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/ciwatch/cli/internal/models"
)

// stripANSI removes ANSI escape sequences from a string
// This is used to remove styling from lipgloss-styled strings for testing
func stripANSI(str string) string {
	re := regexp.MustCompile(`\x1b\[[0-9;]*m`)
	return re.ReplaceAllString(str, "")
}

func seconds(v uint64) *uint64 {
	return &v
}

func TestStatusRendering(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		status   models.BuildStatus
		contains string
	}{
		{status: models.BuildStatusSucceeded, contains: IconSuccess},
		{status: models.BuildStatusFailed, contains: IconError},
		{status: models.BuildStatusErrored, contains: IconWarning},
		{status: models.BuildStatusStarted, contains: IconRunning},
		{status: models.BuildStatusPending, contains: IconPending},
		{status: models.BuildStatusPaused, contains: IconPaused},
		{status: models.BuildStatusAborted, contains: IconCanceled},
		{status: models.BuildStatus("mystery"), contains: IconDefault},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(string(tc.status), func(t *testing.T) {
			t.Parallel()

			if icon := StatusIcon(tc.status); icon != tc.contains {
				t.Errorf("Expected icon %q, got %q", tc.contains, icon)
			}

			rendered := stripANSI(RenderStatus(tc.status))
			if !strings.Contains(rendered, tc.contains) || !strings.Contains(rendered, string(tc.status)) {
				t.Errorf("Expected rendered status to contain %q and %q, got %q", tc.contains, tc.status, rendered)
			}
		})
	}

	if got := stripANSI(RenderStatus("")); got != "n/a" {
		t.Errorf("Expected n/a for a missing status, got %q", got)
	}
}

func TestTextFormatting(t *testing.T) {
	t.Parallel()

	t.Run("truncate text", func(t *testing.T) {
		t.Parallel()

		if got := TruncateText("pipeline/very-long-job", 8); got != "pipeline"+IconEllipsis {
			t.Errorf("unexpected truncation %q", got)
		}
		if got := TruncateText("short", 8); got != "short" {
			t.Errorf("expected short text untouched, got %q", got)
		}
	})

	t.Run("format duration", func(t *testing.T) {
		t.Parallel()

		if got := FormatDuration(90*time.Second + 400*time.Millisecond); got != "1m30s" {
			t.Errorf("unexpected duration %q", got)
		}
		if got := FormatDuration(-time.Second); got != "0s" {
			t.Errorf("expected 0s for negative durations, got %q", got)
		}
	})
}

func TestBuildLabel(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		build models.Build
		want  string
	}{
		{
			name:  "pipeline job build",
			build: models.Build{ID: 42, Name: "7", JobName: "unit", PipelineName: "app"},
			want:  "app/unit #7",
		},
		{
			name:  "uses the build name, not the id",
			build: models.Build{ID: 4312, Name: "8", JobName: "deploy", PipelineName: "website"},
			want:  "website/deploy #8",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := BuildLabel(tc.build); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestBuildTiming(t *testing.T) {
	t.Parallel()

	now := time.Unix(1700000600, 0)

	testCases := []struct {
		name     string
		build    models.Build
		contains string
	}{
		{name: "not started", build: models.Build{}, contains: "not started"},
		{name: "running", build: models.Build{StartTime: seconds(1700000000)}, contains: "running for 10m0s"},
		{name: "finished", build: models.Build{StartTime: seconds(1700000000), EndTime: seconds(1700000065)}, contains: "took 1m5s"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := BuildTiming(tc.build, now); !strings.Contains(got, tc.contains) {
				t.Errorf("expected %q in %q", tc.contains, got)
			}
		})
	}
}

func TestRenderGroupedJobs(t *testing.T) {
	t.Parallel()

	jobs := []models.Job{
		{Name: "unit", Groups: []string{"test"}, FinishedBuild: &models.Build{Name: "3", Status: models.BuildStatusSucceeded}},
		{Name: "deploy", NextBuild: &models.Build{Name: "9", Status: models.BuildStatusStarted}},
		{Name: "lint", Groups: []string{"test"}},
	}

	out := stripANSI(RenderGroupedJobs(jobs))

	testIdx := strings.Index(out, "test")
	ungroupedIdx := strings.Index(out, models.UngroupedName)
	if testIdx < 0 || ungroupedIdx < 0 || ungroupedIdx < testIdx {
		t.Fatalf("expected the test group before ungrouped, got:\n%s", out)
	}
	for _, want := range []string{"unit", "#3", "deploy", "#9", "lint", "n/a"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}

func TestRenderBuilds(t *testing.T) {
	t.Parallel()

	now := time.Unix(1700000100, 0)
	builds := []models.Build{
		{ID: 12, Name: "4", JobName: "unit", PipelineName: "app", Status: models.BuildStatusFailed, StartTime: seconds(1700000000), EndTime: seconds(1700000030)},
		{ID: 13, Name: "2", JobName: "deploy", PipelineName: "website", Status: models.BuildStatusPending},
	}

	out := stripANSI(RenderBuilds(builds, now))
	for _, want := range []string{"ID", "STATUS", "app/unit #4", "30s", "website/deploy #2", "pending"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}

func TestRenderTarget(t *testing.T) {
	t.Parallel()

	row := RenderTarget(models.Target{Name: "prod", API: "https://ci", Team: "main", Token: models.Token{Value: "x"}}, true)
	if row[0] != IconSelected || row[1] != "prod" || stripANSI(row[4]) != "logged in" {
		t.Errorf("unexpected row %q", row)
	}

	row = RenderTarget(models.Target{Name: "lab"}, false)
	if row[0] != " " || stripANSI(row[4]) != "logged out" {
		t.Errorf("unexpected row %q", row)
	}
}
