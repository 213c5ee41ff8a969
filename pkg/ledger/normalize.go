package ledger

import (
	"strings"
	"unicode"
)

// NormalizeToken canonicalizes a raw OCR token before vocabulary lookup:
// trim, fold to lower case, drop internal whitespace so marks split by OCR
// re-join ("9 1 1" -> "911"), and fold the pipe glyph to 'l' since Tesseract
// uses both for the same stroke. Digits inside an explicit arithmetic line
// never pass through here; arithmetic detection runs on the raw line before
// tokenization, so "70" cannot be corrupted into "l0" or the reverse.
func NormalizeToken(tok string) string {
	tok = strings.ToLower(strings.TrimSpace(tok))
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r):
			return -1
		case r == '|':
			return 'l'
		}
		return r
	}, tok)
}
