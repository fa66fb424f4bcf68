package common

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateUUID returns a fresh request identifier.
func GenerateUUID() string {
	return uuid.New().String()
}

// SplitIngredients splits a free-text ingredient entry on commas and
// newlines, trimming blanks, preserving order.
func SplitIngredients(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// NormalizeWhitespace trims and collapses runs of whitespace to single
// spaces so equivalent prompts share a cache key.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(strings.TrimSpace(s)), " ")
}
