// Package slug derives storage-safe names from user-typed profile names.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLen bounds the slug so key prefixes stay short.
const MaxLen = 32

var foldMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make folds accents, lowercases and joins alphanumeric runs with dashes.
// An empty result becomes "default".
func Make(input string) string {
	folded, _, err := transform.String(foldMarks, input)
	if err != nil {
		folded = input
	}
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
			continue
		}
		dash = true
	}
	s := b.String()
	if len(s) > MaxLen {
		s = strings.TrimRight(s[:MaxLen], "-")
	}
	if s == "" {
		return "default"
	}
	return s
}
