package models

import "time"

const DefaultTagColor = "#6b7280"

type Tag struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TagTranslation overrides a tag's display name for one language.
type TagTranslation struct {
	ID           uint   `json:"id"`
	TagID        uint   `json:"tag_id"`
	LanguageCode string `json:"language_code"`
	Name         string `json:"name"`
}

// LocalizedTag is a tag as displayed in a given language.
type LocalizedTag struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	OriginalName   string `json:"original_name"`
	Slug           string `json:"slug"`
	Color          string `json:"color"`
	HasTranslation bool   `json:"has_translation"`
}
