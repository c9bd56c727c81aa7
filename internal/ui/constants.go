package ui

import "github.com/charmbracelet/lipgloss"

// Semantic colors
const (
	ColorSuccess = lipgloss.Color("#2ECC40") // Green
	ColorError   = lipgloss.Color("#F45756") // Red
	ColorWarning = lipgloss.Color("#FF841C") // Orange
	ColorInfo    = lipgloss.Color("#337AB7") // Blue
	ColorRunning = lipgloss.Color("#F5C21B") // Yellow
	ColorPending = lipgloss.Color("#5A5A5A") // Grey
	ColorAborted = lipgloss.Color("#8F4B2D") // Brown
)

// Icon constants for consistent status representation
const (
	IconSuccess  = "✓"
	IconError    = "✖"
	IconWarning  = "⚠"
	IconRunning  = "▶"
	IconPending  = "⏰"
	IconPaused   = "⏸"
	IconCanceled = "🚫"
	IconDefault  = "❔"
	IconEllipsis = "…"
	IconSelected = "*"
)

// Standard style variants
var (
	Bold  = lipgloss.NewStyle().Bold(true)
	Faint = lipgloss.NewStyle().Faint(true)

	Padding = lipgloss.NewStyle().Padding(0, 1)
	Header  = Bold.Copy().Padding(0, 1).Underline(true)
)

// MaxPreviewLength is the maximum length for content previews
const MaxPreviewLength = 120
