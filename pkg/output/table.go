package output

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const (
	ansiReset         = "\033[0m"
	ansiBold          = "\033[1m"
	ansiDim           = "\033[2m"
	ansiDimUnder      = "\033[2;4m"
	colSeparator      = "  "
	minColumnWidth    = 3
	ellipsis          = "..."
	defaultTableWidth = 120

	// EnvTableMaxWidth overrides the detected terminal width
	EnvTableMaxWidth = "CIW_TABLE_MAX_WIDTH"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)

// Table lays rows out in columns that fit the terminal. Cells may carry ANSI
// styling; widths are measured on the visible text. columnStyles maps a
// lowercased header to "bold" or "dim".
func Table(headers []string, rows [][]string, columnStyles map[string]string) string {
	if len(headers) == 0 {
		return ""
	}

	useColor := ColorEnabled()

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = displayWidth(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], displayWidth(row[i]))
		}
	}
	widths = fitColumns(widths, detectedTableWidth()-(len(headers)-1)*len(colSeparator))

	var b strings.Builder
	writeRow := func(cells []string, style func(i int) string) {
		for i := range headers {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			cell = truncateToWidth(cell, widths[i])

			prefix := style(i)
			b.WriteString(prefix)
			b.WriteString(cell)
			if prefix != "" {
				b.WriteString(ansiReset)
			}
			if i < len(headers)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-displayWidth(cell)))
				b.WriteString(colSeparator)
			}
		}
		b.WriteString("\n")
	}

	upper := make([]string, len(headers))
	for i, h := range headers {
		upper[i] = strings.ToUpper(h)
	}
	writeRow(upper, func(int) string {
		if useColor {
			return ansiDimUnder
		}
		return ""
	})

	for _, row := range rows {
		writeRow(row, func(i int) string {
			if !useColor {
				return ""
			}
			switch columnStyles[strings.ToLower(headers[i])] {
			case "bold":
				return ansiBold
			case "dim":
				return ansiDim
			}
			return ""
		})
	}

	return b.String()
}

// fitColumns narrows the widest column one cell at a time until the columns
// fit in available or every column is down to its minimum.
func fitColumns(widths []int, available int) []int {
	fitted := append([]int(nil), widths...)
	total := 0
	for _, w := range fitted {
		total += w
	}

	for total > available {
		widest := -1
		for i, w := range fitted {
			if w > minColumnWidth && (widest < 0 || w > fitted[widest]) {
				widest = i
			}
		}
		if widest < 0 {
			break
		}
		fitted[widest]--
		total--
	}
	return fitted
}

func displayWidth(s string) int {
	return runewidth.StringWidth(ansiPattern.ReplaceAllString(s, ""))
}

// truncateToWidth shortens s to width visible cells, ending in an ellipsis.
// Styling is dropped from truncated cells.
func truncateToWidth(s string, width int) string {
	if displayWidth(s) <= width {
		return s
	}
	plain := ansiPattern.ReplaceAllString(s, "")
	if width <= len(ellipsis) {
		return runewidth.Truncate(plain, width, "")
	}
	return runewidth.Truncate(plain, width, ellipsis)
}

func detectedTableWidth() int {
	if override := os.Getenv(EnvTableMaxWidth); override != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(override)); err == nil && parsed > 0 {
			return parsed
		}
	}

	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return defaultTableWidth
	}

	width, _, err := term.GetSize(int(fd))
	if err != nil || width <= 0 {
		return defaultTableWidth
	}

	return width
}
