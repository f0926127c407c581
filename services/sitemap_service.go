package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"galatide/cache"
	"galatide/config"
	"galatide/helper"
	"galatide/models"
	"galatide/seo"
)

const (
	sitemapKeyPrefix = "sitemap:"
	sitemapIndexKey  = sitemapKeyPrefix + "index"

	contentChangeFrequency = models.ChangeWeekly
	contentPriority        = 0.7
)

type SitemapService interface {
	// GenerateLanguageSitemap never fails: when the store cannot be read it
	// returns only the static pages and reports degraded.
	GenerateLanguageSitemap(ctx context.Context, languageCode string) (entries []models.SitemapEntry, degraded bool)
	SitemapXML(ctx context.Context, languageCode string) ([]byte, error)
	SitemapIndexXML(ctx context.Context) ([]byte, error)
}

type sitemapService struct {
	languages    LanguageStore
	articles     ArticleStore
	translations TranslationStore
	cache        Cache
	site         config.SiteConfig
	logger       *slog.Logger
}

// NewSitemapService builds the service. cache may be nil.
func NewSitemapService(
	languages LanguageStore,
	articles ArticleStore,
	translations TranslationStore,
	cache Cache,
	site config.SiteConfig,
	logger *slog.Logger,
) SitemapService {
	return &sitemapService{
		languages:    languages,
		articles:     articles,
		translations: translations,
		cache:        cache,
		site:         site,
		logger:       logger,
	}
}

func (s *sitemapService) GenerateLanguageSitemap(ctx context.Context, languageCode string) ([]models.SitemapEntry, bool) {
	entries, _, degraded := s.generate(ctx, helper.NormalizeCode(languageCode))
	return entries, degraded
}

// generate also reports whether the result may be cached: only complete
// sitemaps of registered languages are.
func (s *sitemapService) generate(ctx context.Context, code string) ([]models.SitemapEntry, bool, bool) {
	entries := s.staticEntries(code)

	lang, err := s.languages.GetByCode(ctx, code)
	if err != nil {
		if models.IsNotFound(err) {
			return entries, false, false
		}
		s.logger.Warn("sitemap degraded to static pages", "language", code, "error", err)
		return entries, false, true
	}
	if !lang.IsActive {
		return entries, true, false
	}

	articles, err := s.articles.ListPublishedByLanguage(ctx, lang.ID, 0)
	if err != nil {
		s.logger.Warn("sitemap degraded to static pages", "language", code, "error", err)
		return entries, false, true
	}
	// Readers of the default language are served originals only, so
	// translations into it have no resolvable URL.
	var translations []models.Translation
	if !lang.IsDefault {
		translations, err = s.translations.ListPublishedByLanguage(ctx, lang.ID, 0)
		if err != nil {
			s.logger.Warn("sitemap degraded to static pages", "language", code, "error", err)
			return entries, false, true
		}
	}

	for _, a := range articles {
		entries = append(entries, s.contentEntry(code, a.Slug, a.UpdatedAt))
	}
	for _, t := range translations {
		slug := t.Slug
		if slug == "" && t.Article != nil {
			slug = t.Article.Slug
		}
		entries = append(entries, s.contentEntry(code, slug, t.UpdatedAt))
	}
	return entries, true, false
}

func (s *sitemapService) SitemapXML(ctx context.Context, languageCode string) ([]byte, error) {
	code := helper.NormalizeCode(languageCode)
	key := sitemapKeyPrefix + code

	if body, ok := s.cached(ctx, key); ok {
		return body, nil
	}

	entries, cacheable, _ := s.generate(ctx, code)
	body, err := seo.BuildURLSet(entries)
	if err != nil {
		return nil, err
	}
	if cacheable {
		s.store(ctx, key, body)
	}
	return body, nil
}

func (s *sitemapService) SitemapIndexXML(ctx context.Context) ([]byte, error) {
	if body, ok := s.cached(ctx, sitemapIndexKey); ok {
		return body, nil
	}

	degraded := false
	codes := []string{}
	languages, err := s.languages.List(ctx, true)
	if err != nil {
		s.logger.Warn("sitemap index degraded to default language", "error", err)
		degraded = true
		codes = append(codes, helper.NormalizeCode(s.site.DefaultLanguage))
	}
	for _, lang := range languages {
		codes = append(codes, lang.Code)
	}

	locs := make([]string, 0, len(codes))
	for _, code := range codes {
		locs = append(locs, s.site.URL+"/sitemaps/"+code+".xml")
	}

	body, err := seo.BuildIndex(locs)
	if err != nil {
		return nil, err
	}
	if !degraded {
		s.store(ctx, sitemapIndexKey, body)
	}
	return body, nil
}

func (s *sitemapService) staticEntries(code string) []models.SitemapEntry {
	base := s.site.URL + "/" + code
	return []models.SitemapEntry{
		{URL: base, ChangeFrequency: models.ChangeDaily, Priority: 1.0},
		{URL: base + "/articles", ChangeFrequency: models.ChangeDaily, Priority: 0.9},
		{URL: base + "/newsletter", ChangeFrequency: models.ChangeMonthly, Priority: 0.5},
	}
}

func (s *sitemapService) contentEntry(code, slug string, updatedAt time.Time) models.SitemapEntry {
	modified := updatedAt
	return models.SitemapEntry{
		URL:             s.site.URL + "/" + code + "/articles/" + slug,
		LastModified:    &modified,
		ChangeFrequency: contentChangeFrequency,
		Priority:        contentPriority,
	}
}

func (s *sitemapService) cached(ctx context.Context, key string) ([]byte, bool) {
	if s.cache == nil {
		return nil, false
	}
	body, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("sitemap cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	return body, true
}

func (s *sitemapService) store(ctx context.Context, key string, body []byte) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, body, 0); err != nil {
		s.logger.Warn("sitemap cache write failed", "key", key, "error", err)
	}
}

// SitemapInvalidator drops cached sitemaps affected by a content event.
// Deleting an article also removes its translations, so it clears every
// language.
type SitemapInvalidator struct {
	cache Cache
}

func NewSitemapInvalidator(cache Cache) *SitemapInvalidator {
	return &SitemapInvalidator{cache: cache}
}

func (i *SitemapInvalidator) Publish(ctx context.Context, event models.ContentEvent) error {
	if i.cache == nil {
		return nil
	}
	code := helper.NormalizeCode(event.LanguageCode)
	if code == "" || event.Type == models.EventArticleDeleted {
		return i.cache.DeleteByPrefix(ctx, sitemapKeyPrefix)
	}
	return errors.Join(
		i.cache.Delete(ctx, sitemapKeyPrefix+code),
		i.cache.Delete(ctx, sitemapIndexKey),
	)
}
