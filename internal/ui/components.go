package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/ciwatch/cli/internal/models"
	"github.com/ciwatch/cli/pkg/output"
)

// BuildLabel names a build the way Concourse does: pipeline/job #name
func BuildLabel(b models.Build) string {
	return fmt.Sprintf("%s/%s #%s", b.PipelineName, b.JobName, b.Name)
}

// BuildTiming describes when a build started and how long it ran
func BuildTiming(b models.Build, now time.Time) string {
	start, ok := b.Started()
	if !ok {
		return "not started"
	}
	d, _ := b.Duration(now)
	if _, ended := b.Ended(); !ended {
		return fmt.Sprintf("started %s, running for %s", FormatDate(start), FormatDuration(d))
	}
	return fmt.Sprintf("started %s, took %s", FormatDate(start), FormatDuration(d))
}

// RenderBuildSummary renders a summary of a build
func RenderBuildSummary(b models.Build, now time.Time) string {
	return lipgloss.JoinVertical(lipgloss.Top,
		Bold.Copy().Padding(0, 1).Render(fmt.Sprintf("%s %s", StatusStyle(b.Status).Render(BuildLabel(b)), RenderStatus(b.Status))),
		Padding.Render(fmt.Sprintf("Build %d in team %s", b.ID, b.TeamName)),
		Padding.Render(Faint.Render(BuildTiming(b, now))),
	)
}

// BuildRow is the table row used when listing builds
func BuildRow(b models.Build, now time.Time) []string {
	duration := ""
	if d, ok := b.Duration(now); ok {
		duration = FormatDuration(d)
	}
	return []string{
		fmt.Sprint(b.ID),
		TruncateText(BuildLabel(b), MaxPreviewLength),
		RenderStatus(b.Status),
		duration,
	}
}

// RenderBuilds renders builds as a table
func RenderBuilds(builds []models.Build, now time.Time) string {
	rows := make([][]string, 0, len(builds))
	for _, b := range builds {
		rows = append(rows, BuildRow(b, now))
	}
	return output.Table([]string{"ID", "Build", "Status", "Duration"}, rows, map[string]string{"id": "dim"})
}

// RenderJobSummary renders a job with its current build
func RenderJobSummary(job models.Job) string {
	current := job.CurrentBuild()
	if current == nil {
		return Row(RenderStatus(""), job.Name)
	}
	return Row(RenderStatus(current.Status), job.Name, Faint.Render("#"+current.Name))
}

// RenderGroupedJobs renders jobs under a heading per group, ungrouped jobs last
func RenderGroupedJobs(jobs []models.Job) string {
	names, groups := models.GroupJobs(jobs)

	sections := make([]string, 0, len(names))
	for _, name := range names {
		lines := make([]string, 0, len(groups[name]))
		for _, job := range groups[name] {
			lines = append(lines, RenderJobSummary(job))
		}
		sections = append(sections, Section(name, strings.Join(lines, "\n")))
	}
	return SpacedVertical(sections...)
}

// RenderTarget renders a saved target, marking the selected one
func RenderTarget(t models.Target, selected bool) []string {
	marker := " "
	if selected {
		marker = IconSelected
	}
	state := Faint.Render("logged out")
	if t.LoggedIn() {
		state = lipgloss.NewStyle().Foreground(ColorSuccess).Render("logged in")
	}
	return []string{marker, t.Name, t.API, t.Team, state}
}
