package utils

import (
	"strings"
	"unicode"
)

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// CompactUpper removes all whitespace and upper-cases s, so "tn 37 ab 1234"
// and "TN37AB1234" compare equal.
func CompactUpper(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, s)
}

// SameText compares two strings ignoring case and surrounding/repeated
// whitespace.
func SameText(a, b string) bool {
	return strings.EqualFold(NormalizeSpace(a), NormalizeSpace(b))
}
