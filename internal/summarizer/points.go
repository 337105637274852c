package summarizer

import (
	"regexp"
	"strings"
)

var reNumbered = regexp.MustCompile(`^\d+[.)]?\s*(.*)$`)

// Points splits a summary into its non-empty lines, trimmed.
func Points(summary string) []string {
	var points []string
	for _, line := range strings.Split(summary, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			points = append(points, line)
		}
	}
	return points
}

// IsNumbered reports whether a summary line starts with a numeral.
func IsNumbered(line string) bool {
	return reNumbered.MatchString(strings.TrimSpace(line))
}
