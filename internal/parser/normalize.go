package parser

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

var symbolReplacer = strings.NewReplacer(
	"·", ".",
	"•", ".",
	"・", ".",
	"→", "=",
	"⟶", "=",
)

// Normalize folds full-width forms to ASCII, applies NFC, maps hydrate dots
// and reaction arrows to "." and "=", and drops all whitespace.
//
// Parse error positions refer to the normalized text.
func Normalize(expr string) string {
	s := norm.NFC.String(width.Fold.String(expr))
	s = symbolReplacer.Replace(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
