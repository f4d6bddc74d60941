package licensecrypto

import (
	"strings"
	"unicode"
)

// NormalizeKey uppercases s and drops separators and whitespace so that
// retyped serials compare equal to issued ones.
func NormalizeKey(s string) string {
	return strings.Map(func(r rune) rune {
		if r == separator || unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, s)
}
