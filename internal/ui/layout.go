package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Section creates a titled section with content underneath
func Section(title string, content string) string {
	titleText := Header.Render(title)
	return lipgloss.JoinVertical(lipgloss.Top, titleText, content)
}

// Row creates a horizontal row of columns with consistent padding
func Row(columns ...string) string {
	var renderedColumns []string
	for _, col := range columns {
		renderedColumns = append(renderedColumns, Padding.Render(col))
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, renderedColumns...)
}

// LabeledValue creates a "Label: Value" formatted string
func LabeledValue(label string, value string) string {
	labelStyle := lipgloss.NewStyle().Width(15).Bold(true)
	return lipgloss.JoinHorizontal(
		lipgloss.Left,
		labelStyle.Render(label+":"),
		Padding.Render(value),
	)
}

// SpacedVertical joins strings vertically with a blank line between them
func SpacedVertical(strings ...string) string {
	if len(strings) == 0 {
		return ""
	}

	result := []string{strings[0]}
	for _, s := range strings[1:] {
		result = append(result, "", s)
	}

	return lipgloss.JoinVertical(lipgloss.Top, result...)
}
