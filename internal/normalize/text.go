package normalize

import "strings"

// CleanDescription trims and collapses runs of whitespace to single spaces.
func CleanDescription(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate hard-truncates to max runes, no ellipsis. The canonical record
// always keeps full text; truncation belongs to the serialization boundary.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
