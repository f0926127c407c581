package services

import (
	"context"
	"log/slog"

	"galatide/config"
	"galatide/helper"
	"galatide/models"
	"galatide/seo"
)

type MetadataService interface {
	// ArticleMeta returns head metadata for a reader page. When the store is
	// unavailable it returns the site defaults flagged as degraded.
	ArticleMeta(ctx context.Context, languageCode, slug string) (*seo.Meta, error)
}

type metadataService struct {
	resolver     ContentResolver
	translations TranslationStore
	site         config.SiteConfig
	logger       *slog.Logger
}

func NewMetadataService(resolver ContentResolver, translations TranslationStore, site config.SiteConfig, logger *slog.Logger) MetadataService {
	return &metadataService{
		resolver:     resolver,
		translations: translations,
		site:         site,
		logger:       logger,
	}
}

func (s *metadataService) ArticleMeta(ctx context.Context, languageCode, slug string) (*seo.Meta, error) {
	code := helper.NormalizeCode(languageCode)
	site := seo.Site{
		Name:           s.site.Name,
		URL:            s.site.URL,
		Description:    s.site.Description,
		DefaultOGImage: s.site.DefaultOGImage,
	}

	content, err := s.resolver.Resolve(ctx, slug, code)
	if err != nil {
		if models.IsStoreUnavailable(err) {
			s.logger.Warn("serving site default metadata", "language", code, "slug", slug, "error", err)
			meta := seo.SiteMeta(site, code)
			meta.Degraded = true
			return &meta, nil
		}
		return nil, err
	}

	article := content.Article
	page := seo.Page{
		Title:           article.Title,
		Excerpt:         article.Excerpt,
		Body:            article.Content,
		MetaTitle:       article.MetaTitle,
		MetaDescription: article.MetaDescription,
		Keywords:        article.Keywords,
		Image:           article.CoverURL,
		Canonical:       s.articleURL(code, content.Slug()),
		Locale:          code,
	}
	if article.OriginalLanguage != nil {
		page.Direction = article.OriginalLanguage.Direction()
	}
	if t := content.Translation; t != nil {
		page.Title = t.Title
		page.Excerpt = t.Excerpt
		page.Body = t.Content
		page.MetaTitle = t.MetaTitle
		page.MetaDescription = t.MetaDescription
		page.Keywords = firstNonEmpty(t.Keywords, article.Keywords)
		if t.Language != nil {
			page.Direction = t.Language.Direction()
		}
	}
	page.Alternates = s.alternates(ctx, article)

	meta := seo.BuildMeta(page, site)
	return &meta, nil
}

// alternates lists the original and every published translation. A store
// failure here drops the alternates rather than the page metadata.
func (s *metadataService) alternates(ctx context.Context, article models.Article) []seo.Alternate {
	alternates := []seo.Alternate{}
	if article.OriginalLanguage != nil {
		original := s.articleURL(article.OriginalLanguage.Code, article.Slug)
		alternates = append(alternates,
			seo.Alternate{Hreflang: article.OriginalLanguage.Code, URL: original},
			seo.Alternate{Hreflang: "x-default", URL: original},
		)
	}

	translations, err := s.translations.ListByArticle(ctx, article.ID)
	if err != nil {
		s.logger.Warn("skipping hreflang alternates", "article_id", article.ID, "error", err)
		return alternates
	}
	for _, t := range translations {
		if !t.IsPublished() || t.Language == nil {
			continue
		}
		slug := firstNonEmpty(t.Slug, article.Slug)
		alternates = append(alternates, seo.Alternate{
			Hreflang: t.Language.Code,
			URL:      s.articleURL(t.Language.Code, slug),
		})
	}
	return alternates
}

func (s *metadataService) articleURL(code, slug string) string {
	return s.site.URL + "/" + code + "/articles/" + slug
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
