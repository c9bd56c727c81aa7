package output

import (
	"strings"
	"testing"
)

func tableLines(table string) []string {
	return strings.Split(strings.TrimSuffix(table, "\n"), "\n")
}

func TestTableTruncatesWhenWidthExceeded(t *testing.T) {
	t.Setenv(EnvTableMaxWidth, "20")

	table := Table([]string{"Name", "API"}, [][]string{{"prod", "https://ci.example.com/very/long/path"}}, nil)

	for i, line := range tableLines(table) {
		if displayWidth(line) > 20 {
			t.Fatalf("line %d exceeds max width: %d > 20 (%q)", i, displayWidth(line), line)
		}
	}
	if !strings.Contains(table, "prod") {
		t.Errorf("short column should not be truncated:\n%s", table)
	}
	if !strings.Contains(table, "...") {
		t.Errorf("expected truncated output to contain ellipsis:\n%s", table)
	}
}

func TestTableKeepsValuesWhenWidthIsLarge(t *testing.T) {
	t.Setenv(EnvTableMaxWidth, "200")

	table := Table([]string{"Team"}, [][]string{{"main"}, {"platform"}}, map[string]string{"team": "bold"})

	lines := tableLines(table)
	if len(lines) != 3 {
		t.Fatalf("expected a header and two rows, got %q", lines)
	}
	if lines[0] != "TEAM" {
		t.Errorf("expected an upper-case header, got %q", lines[0])
	}
	if lines[2] != "platform" {
		t.Errorf("unexpected row %q", lines[2])
	}
}

func TestTableAlignsStyledCells(t *testing.T) {
	t.Setenv(EnvTableMaxWidth, "200")

	styled := "\x1b[32m✓ succeeded\x1b[0m"
	table := Table([]string{"Status", "Job"}, [][]string{{styled, "unit"}, {"pending", "lint"}}, nil)

	lines := tableLines(table)
	first := strings.Index(ansiPattern.ReplaceAllString(lines[1], ""), "unit")
	second := strings.Index(lines[2], "lint")
	if displayWidth(ansiPattern.ReplaceAllString(lines[1], "")[:first]) != displayWidth(lines[2][:second]) {
		t.Errorf("columns are not aligned:\n%s", table)
	}
}

func TestFitColumns(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		widths    []int
		available int
		want      []int
	}{
		{name: "already fits", widths: []int{4, 10}, available: 20, want: []int{4, 10}},
		{name: "widest shrinks first", widths: []int{4, 30}, available: 20, want: []int{4, 16}},
		{name: "shrinks evenly once equal", widths: []int{10, 10}, available: 16, want: []int{8, 8}},
		{name: "stops at minimum", widths: []int{10, 10}, available: 2, want: []int{minColumnWidth, minColumnWidth}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := fitColumns(tc.widths, tc.available)
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Fatalf("expected %v, got %v", tc.want, got)
				}
			}
		})
	}
}
