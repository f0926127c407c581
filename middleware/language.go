package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"galatide/models"
)

const (
	ContextLanguage    = "language"
	LanguageCookieName = "galatide_lang"
)

// LanguageLister is satisfied by services.LanguageService.
type LanguageLister interface {
	ListPublicLanguages(ctx context.Context) ([]models.Language, bool)
}

// PreferredLanguage picks the reader's language from the lang query
// parameter, the language cookie, then Accept-Language, and stores its code
// under ContextLanguage. The first listed language, the default, is the
// fallback.
func PreferredLanguage(languages LanguageLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		langs, _ := languages.ListPublicLanguages(c.Request.Context())
		if len(langs) == 0 {
			c.Next()
			return
		}

		codes := make(map[string]bool, len(langs))
		for _, l := range langs {
			codes[strings.ToLower(l.Code)] = true
		}

		if code := strings.ToLower(c.Query("lang")); codes[code] {
			c.Set(ContextLanguage, code)
			c.Next()
			return
		}
		if cookie, err := c.Cookie(LanguageCookieName); err == nil && codes[strings.ToLower(cookie)] {
			c.Set(ContextLanguage, strings.ToLower(cookie))
			c.Next()
			return
		}

		c.Set(ContextLanguage, MatchAcceptLanguage(c.GetHeader("Accept-Language"), langs))
		c.Next()
	}
}

// MatchAcceptLanguage returns the code of the best match for header among
// langs, or the first language when nothing matches.
func MatchAcceptLanguage(header string, langs []models.Language) string {
	if len(langs) == 0 {
		return ""
	}
	fallback := strings.ToLower(langs[0].Code)
	if header == "" {
		return fallback
	}

	prefs, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(prefs) == 0 {
		return fallback
	}

	tags := make([]language.Tag, 0, len(langs))
	for _, l := range langs {
		tags = append(tags, language.Make(l.Code))
	}
	_, index, confidence := language.NewMatcher(tags).Match(prefs...)
	if confidence == language.No {
		return fallback
	}
	return strings.ToLower(langs[index].Code)
}
