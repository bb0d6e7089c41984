// Package textnorm provides the accent- and case-insensitive comparison
// keys used by location search.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize decomposes s (NFD), drops combining marks and lowercases the
// result, so "São Paulo" and "sao paulo" produce the same key.
func Normalize(s string) string {
	// transform.Chain is stateful, so each call builds its own.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// Contains reports whether needle occurs in haystack after normalizing both.
func Contains(haystack, needle string) bool {
	return strings.Contains(Normalize(haystack), Normalize(needle))
}

// Len counts runes of the normalized form.
func Len(s string) int {
	return len([]rune(Normalize(s)))
}
