package report

import "strings"

// NormalizeLines splits raw text into trimmed candidate lines. Runs of
// internal whitespace collapse to a single space and empty lines are
// dropped. The function is total; any input yields a (possibly empty)
// line slice.
func NormalizeLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		fields := strings.Fields(l)
		if len(fields) == 0 {
			continue
		}
		lines = append(lines, strings.Join(fields, " "))
	}
	return lines
}

// rowContent joins a grid row's cells with single spaces, trimming each
// cell, for marker matching against the whole row.
func rowContent(row []string) string {
	parts := make([]string, 0, len(row))
	for _, c := range row {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		parts = append(parts, c)
	}
	return strings.Join(parts, " ")
}

// isBlankRow reports whether every cell in the row is absent or blank.
func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
