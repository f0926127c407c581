package models

import "time"

// ResolvedContent is what the reader site renders for a (slug, language) pair.
// Translation is nil when the original article is served.
type ResolvedContent struct {
	Article     Article      `json:"article"`
	Translation *Translation `json:"translation"`
}

// Title returns the title to display, preferring the translation.
func (r ResolvedContent) Title() string {
	if r.Translation != nil {
		return r.Translation.Title
	}
	return r.Article.Title
}

// Slug returns the slug the content is addressed by in its language.
func (r ResolvedContent) Slug() string {
	if r.Translation != nil && r.Translation.Slug != "" {
		return r.Translation.Slug
	}
	return r.Article.Slug
}

// ContentSummary is one row of a reader listing.
type ContentSummary struct {
	ArticleID     uint       `json:"article_id"`
	TranslationID *uint      `json:"translation_id,omitempty"`
	LanguageCode  string     `json:"language_code"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Excerpt       string     `json:"excerpt"`
	CoverURL      string     `json:"cover_url"`
	PublishedAt   *time.Time `json:"published_at"`
	Tags          []Tag      `json:"tags"`
}

type EventType string

const (
	EventArticlePublished       EventType = "article.published"
	EventArticleUnpublished     EventType = "article.unpublished"
	EventArticleDeleted         EventType = "article.deleted"
	EventTranslationPublished   EventType = "translation.published"
	EventTranslationUnpublished EventType = "translation.unpublished"
	EventTranslationDeleted     EventType = "translation.deleted"
	EventLanguageChanged        EventType = "language.changed"
)

// ContentEvent announces a change in publicly visible content.
type ContentEvent struct {
	Type          EventType `json:"type"`
	ArticleID     uint      `json:"article_id"`
	TranslationID uint      `json:"translation_id,omitempty"`
	LanguageCode  string    `json:"language_code"`
	Slug          string    `json:"slug"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type ChangeFrequency string

const (
	ChangeDaily   ChangeFrequency = "daily"
	ChangeWeekly  ChangeFrequency = "weekly"
	ChangeMonthly ChangeFrequency = "monthly"
)

// SitemapEntry is one URL of a language sitemap.
type SitemapEntry struct {
	URL             string          `json:"url"`
	LastModified    *time.Time      `json:"last_modified,omitempty"`
	ChangeFrequency ChangeFrequency `json:"change_frequency"`
	Priority        float64         `json:"priority"`
}
