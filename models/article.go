package models

import "time"

type ContentStatus string

const (
	StatusDraft     ContentStatus = "DRAFT"
	StatusPublished ContentStatus = "PUBLISHED"
)

// Valid reports whether s is a known status.
func (s ContentStatus) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// Article is the canonical record, authored in its original language.
type Article struct {
	ID                 uint          `json:"id"`
	Title              string        `json:"title"`
	Slug               string        `json:"slug"`
	Excerpt            string        `json:"excerpt"`
	Content            string        `json:"content"`
	CoverURL           string        `json:"cover_url"`
	Status             ContentStatus `json:"status"`
	PublishedAt        *time.Time    `json:"published_at"`
	AuthorID           uint          `json:"author_id"`
	Author             *User         `json:"author,omitempty"`
	OriginalLanguageID uint          `json:"original_language_id"`
	OriginalLanguage   *Language     `json:"original_language,omitempty"`
	MetaTitle          string        `json:"meta_title"`
	MetaDescription    string        `json:"meta_description"`
	Keywords           string        `json:"keywords"`
	Tags               []Tag         `json:"tags"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

func (a Article) IsPublished() bool {
	return a.Status == StatusPublished
}

// ApplyStatus sets the status and keeps PublishedAt consistent with it:
// publishing stamps now, unless already published; drafting clears it.
func (a *Article) ApplyStatus(status ContentStatus, now time.Time) {
	if status == StatusPublished && a.Status == StatusPublished && a.PublishedAt != nil {
		return
	}
	a.Status = status
	a.PublishedAt = publishedAtFor(status, now)
}

func publishedAtFor(status ContentStatus, now time.Time) *time.Time {
	if status != StatusPublished {
		return nil
	}
	t := now
	return &t
}
