package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/ciwatch/cli/internal/models"
)

// StatusStyle returns the styling for a build status
func StatusStyle(status models.BuildStatus) lipgloss.Style {
	switch status {
	case models.BuildStatusSucceeded:
		return lipgloss.NewStyle().Foreground(ColorSuccess)
	case models.BuildStatusStarted:
		return lipgloss.NewStyle().Foreground(ColorRunning)
	case models.BuildStatusFailed:
		return lipgloss.NewStyle().Foreground(ColorError)
	case models.BuildStatusErrored:
		return lipgloss.NewStyle().Foreground(ColorWarning)
	case models.BuildStatusAborted:
		return lipgloss.NewStyle().Foreground(ColorAborted)
	case models.BuildStatusPaused:
		return lipgloss.NewStyle().Foreground(ColorInfo)
	default:
		return lipgloss.NewStyle().Foreground(ColorPending)
	}
}

// StatusIcon returns the icon for a build status
func StatusIcon(status models.BuildStatus) string {
	switch status {
	case models.BuildStatusSucceeded:
		return IconSuccess
	case models.BuildStatusFailed:
		return IconError
	case models.BuildStatusErrored:
		return IconWarning
	case models.BuildStatusStarted:
		return IconRunning
	case models.BuildStatusPending:
		return IconPending
	case models.BuildStatusPaused:
		return IconPaused
	case models.BuildStatusAborted:
		return IconCanceled
	default:
		return IconDefault
	}
}

// RenderStatus renders a status icon followed by the status name
func RenderStatus(status models.BuildStatus) string {
	if status == "" {
		return Faint.Render("n/a")
	}
	return StatusStyle(status).Render(StatusIcon(status) + " " + status.String())
}
