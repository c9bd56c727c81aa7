package ui

import (
	"time"
)

// TruncateText truncates text to the specified number of runes and adds an ellipsis
func TruncateText(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	return string(runes[:maxLength]) + IconEllipsis
}

// FormatDuration formats a duration rounded to the second
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	return d.Round(time.Second).String()
}

// FormatDate formats a time in RFC3339 format
func FormatDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
