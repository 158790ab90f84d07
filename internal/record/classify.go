package record

import "strings"

const contextMarker = `"context"`

// IsStructured reports whether line plausibly holds a structured log record.
func IsStructured(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(trimmed, "{") {
		return false
	}
	return strings.Contains(trimmed, contextMarker)
}
