package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var reSpaces = regexp.MustCompile(`\s+`)

// StripDiacritics removes combining marks from a string (é → e, ç → c).
func StripDiacritics(s string) string {
	var buf []rune
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) { // mark nonspacing
			continue
		}
		buf = append(buf, r)
	}
	return string(buf)
}

// NormalizeKey folds a free-text label into a lookup key: diacritics stripped,
// uppercased, interior whitespace collapsed to single spaces, ends trimmed.
// Catalog title lookups and raw token matching both go through this.
func NormalizeKey(s string) string {
	s = StripDiacritics(s)
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.ToUpper(strings.TrimSpace(s))
}

// CollapseSpaces rewrites runs of whitespace (including newlines the extractor
// leaves behind) as single spaces and trims the ends.
func CollapseSpaces(s string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}

// ContainsString checks if a string slice contains a specific string.
func ContainsString(slice []string, item string) bool {
	for _, a := range slice {
		if a == item {
			return true
		}
	}
	return false
}

// Float64Ptr returns a pointer to the given float64.
func Float64Ptr(f float64) *float64 {
	return &f
}

// IntPtr returns a pointer to the given int.
func IntPtr(i int) *int {
	return &i
}
