// Package text provides Unicode-aware normalization and tokenization of
// person names and search queries. The same processing is applied to both
// indexed name fields and incoming query strings so that comparisons are
// always made in a single canonical form.
package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize converts a string to its canonical search form: uppercase,
// accents stripped, apostrophes deleted, every other non-letter replaced
// with a single space.
//
// The transformation is idempotent and locale-independent:
// Normalize(Normalize(s)) == Normalize(s) for every s.
func Normalize(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))

	var b strings.Builder
	b.Grow(len(s))
	for _, ch := range norm.NFD.String(s) {
		switch {
		case unicode.IsLetter(ch):
			b.WriteRune(ch)
		case unicode.Is(unicode.Mn, ch):
			// Combining marks left over from NFD decomposition.
		case ch == '\'':
			// Treat O'Hearn as OHEARN.
		default:
			b.WriteRune(' ')
		}
	}
	// Replacement can leave spaces at the edges ("a-" becomes "A ");
	// trim again so the result is a fixed point of Normalize.
	return strings.TrimSpace(b.String())
}

// isCJK reports whether r is a CJK ideograph: the unified range
// (U+4E00-U+9FFF) or Extension A (U+3400-U+4DFF).
func isCJK(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) || (r >= 0x3400 && r <= 0x4DFF)
}

// IsolateCJK inserts a space boundary around every CJK ideograph so that
// consecutive ideographs become distinct tokens while Latin-script
// sequences remain whole words.
func IsolateCJK(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/2)
	for _, r := range s {
		if isCJK(r) {
			b.WriteRune(' ')
			b.WriteRune(r)
			b.WriteRune(' ')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
