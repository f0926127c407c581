package helper

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s, transliterates it to ASCII and replaces every run of
// non-alphanumeric characters with a single hyphen.
func Slugify(s string) string {
	result := strings.ToLower(unidecode.Unidecode(s))
	result = nonSlugChars.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// IsValidSlug checks that s is already in Slugify form.
func IsValidSlug(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}
	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	return !strings.Contains(s, "--")
}
