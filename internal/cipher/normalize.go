package cipher

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Normalize composes text to NFC and upper-cases it with Ukrainian rules.
// Without composition a decomposed Й would lose its breve to Filter.
func Normalize(text string) string {
	return cases.Upper(language.Ukrainian).String(norm.NFC.String(text))
}
