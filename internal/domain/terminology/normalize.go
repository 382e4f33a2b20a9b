package terminology

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// latinAccents is the Combining Diacritical Marks block. Indic vowel signs
// and viramas are also nonspacing marks but spell the word, so they stay.
var latinAccents = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x0300, Hi: 0x036f, Stride: 1}},
}

// Normalize folds case and strips Latin accents after canonical
// decomposition, so "Āmavāta", "amavata" and "AMAVATA" compare equal.
// Devanagari text is left intact apart from canonical ordering.
// Surrounding whitespace is trimmed.
func Normalize(s string) string {
	// Transformers carry state; build a fresh chain per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(latinAccents)), cases.Fold(), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return strings.TrimSpace(out)
}
