package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"galatide/models"
)

type staticLanguages []models.Language

func (s staticLanguages) ListPublicLanguages(context.Context) ([]models.Language, bool) {
	return s, false
}

var testLanguages = staticLanguages{
	{Code: "en", IsDefault: true},
	{Code: "fr"},
	{Code: "ar", IsRTL: true},
	{Code: "pt-BR"},
}

func TestMatchAcceptLanguage(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", "en"},
		{"fr-CA,fr;q=0.9,en;q=0.5", "fr"},
		{"ar-EG", "ar"},
		{"pt-BR", "pt-br"},
		{"ja,ko;q=0.8", "en"},
		{"not a header;;;", "en"},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchAcceptLanguage(tt.header, testLanguages))
		})
	}
}

func TestPreferredLanguage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", PreferredLanguage(testLanguages), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextLanguage))
	})

	tests := []struct {
		name   string
		query  string
		cookie string
		accept string
		want   string
	}{
		{"query wins", "?lang=AR", "fr", "fr", "ar"},
		{"unknown query falls through to cookie", "?lang=xx", "fr", "ar", "fr"},
		{"accept language", "", "", "ar,en;q=0.5", "ar"},
		{"default", "", "", "", "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: LanguageCookieName, Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}
