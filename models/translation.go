package models

import "time"

// Translation is a per-language rendition of an Article, published independently.
type Translation struct {
	ID              uint          `json:"id"`
	ArticleID       uint          `json:"article_id"`
	Article         *Article      `json:"article,omitempty"`
	LanguageID      uint          `json:"language_id"`
	Language        *Language     `json:"language,omitempty"`
	Title           string        `json:"title"`
	Slug            string        `json:"slug"`
	Excerpt         string        `json:"excerpt"`
	Content         string        `json:"content"`
	Status          ContentStatus `json:"status"`
	PublishedAt     *time.Time    `json:"published_at"`
	TranslatorID    *uint         `json:"translator_id"`
	MetaTitle       string        `json:"meta_title"`
	MetaDescription string        `json:"meta_description"`
	Keywords        string        `json:"keywords"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

func (t Translation) IsPublished() bool {
	return t.Status == StatusPublished
}

// ApplyStatus sets the status and keeps PublishedAt consistent with it:
// publishing stamps now, unless already published; drafting clears it.
func (t *Translation) ApplyStatus(status ContentStatus, now time.Time) {
	if status == StatusPublished && t.Status == StatusPublished && t.PublishedAt != nil {
		return
	}
	t.Status = status
	t.PublishedAt = publishedAtFor(status, now)
}
