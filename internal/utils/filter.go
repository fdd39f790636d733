package utils

import (
	"strings"
	"unicode/utf8"
)

// NormalizeQuery trims surrounding whitespace from raw field input.
func NormalizeQuery(raw string) string {
	return strings.TrimSpace(raw)
}

// QueryLength counts characters, not bytes.
func QueryLength(query string) int {
	return utf8.RuneCountInString(query)
}

// IsSearchable reports whether a normalized query is long enough to look up.
func IsSearchable(query string, minLength int) bool {
	return QueryLength(query) >= minLength
}

// ClampLimit returns limit bounded to [1, max], or def when limit is unset.
func ClampLimit(limit, def, max int) int {
	if limit < 1 {
		limit = def
	}
	if max > 0 && limit > max {
		limit = max
	}
	return limit
}
