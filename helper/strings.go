package helper

import (
	"strings"
	"unicode"
)

// Underscore converts a Go field name to snake_case ("OriginalLanguageID" -> "original_language_id").
func Underscore(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeCode lowercases and trims a language code.
func NormalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
