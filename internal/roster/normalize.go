package roster

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// nameNormalizer strips diacritical marks: NFD decomposition followed
// by removal of combining marks.
var nameNormalizer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName folds a person name for matching: accents removed,
// lower-cased, runs of whitespace collapsed to single spaces. Report
// display names and roster full names are compared through this so
// that "Ángel  Fernández" and "angel fernandez" meet.
func NormalizeName(s string) string {
	folded, _, err := transform.String(nameNormalizer, s)
	if err != nil {
		// Best effort: fall back to the raw string.
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// NormalizeEmail folds an email address for keying: trimmed and
// lower-cased.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
