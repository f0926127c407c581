package services

import (
	"context"
	"strings"

	"galatide/helper"
	"galatide/models"
)

// ContentResolver maps a (slug, language) pair to the content a reader sees.
type ContentResolver interface {
	Resolve(ctx context.Context, slug, languageCode string) (*models.ResolvedContent, error)
	DefaultLanguageCode(ctx context.Context) (string, error)
}

type contentResolver struct {
	languages    LanguageStore
	articles     ArticleStore
	translations TranslationStore
	fallbackCode string
}

// NewContentResolver builds a resolver. fallbackCode is used as the default
// language when none is flagged in the store.
func NewContentResolver(languages LanguageStore, articles ArticleStore, translations TranslationStore, fallbackCode string) ContentResolver {
	return &contentResolver{
		languages:    languages,
		articles:     articles,
		translations: translations,
		fallbackCode: helper.NormalizeCode(fallbackCode),
	}
}

// Resolve serves a published translation in a non-default language when one
// matches by its own slug or its article's slug, and otherwise a published
// original. Outside the default language only originals written in that
// language are served; there is no cross-language fallback.
func (r *contentResolver) Resolve(ctx context.Context, slug, languageCode string) (*models.ResolvedContent, error) {
	slug = strings.TrimSpace(slug)
	code := helper.NormalizeCode(languageCode)
	if slug == "" || code == "" {
		return nil, models.NewNotFound("content")
	}

	defaultCode, err := r.DefaultLanguageCode(ctx)
	if err != nil {
		return nil, err
	}

	originalLanguage := ""
	if code != defaultCode {
		translation, err := r.translations.FindPublishedBySlug(ctx, slug, code)
		switch {
		case err == nil:
			article, err := r.articles.GetByID(ctx, translation.ArticleID)
			if err != nil {
				return nil, err
			}
			return &models.ResolvedContent{Article: *article, Translation: translation}, nil
		case !models.IsNotFound(err):
			return nil, err
		}
		originalLanguage = code
	}

	article, err := r.articles.FindPublishedBySlug(ctx, slug, originalLanguage)
	if err != nil {
		if models.IsNotFound(err) {
			return nil, models.NewNotFound("content")
		}
		return nil, err
	}
	return &models.ResolvedContent{Article: *article}, nil
}

func (r *contentResolver) DefaultLanguageCode(ctx context.Context) (string, error) {
	lang, err := r.languages.GetDefault(ctx)
	if err != nil {
		if models.IsNotFound(err) {
			return r.fallbackCode, nil
		}
		return "", err
	}
	return helper.NormalizeCode(lang.Code), nil
}
