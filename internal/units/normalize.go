package units

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeToken lowercases s, strips diacritics, replaces every run of
// non-alphanumeric characters with a single space and trims the result.
// It is the basis of all fuzzy column and club matching.
func NormalizeToken(s string) string {
	if s == "" {
		return ""
	}
	// transform.Chain keeps state, so build one per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		folded = strings.ToLower(s)
	}
	return strings.TrimSpace(nonAlphanumeric.ReplaceAllString(folded, " "))
}
