package models

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticle_ApplyStatus(t *testing.T) {
	first := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	later := first.Add(48 * time.Hour)

	var a Article
	a.ApplyStatus(StatusDraft, first)
	assert.Equal(t, StatusDraft, a.Status)
	assert.Nil(t, a.PublishedAt)

	a.ApplyStatus(StatusPublished, first)
	require.NotNil(t, a.PublishedAt)
	assert.Equal(t, first, *a.PublishedAt)

	a.ApplyStatus(StatusPublished, later)
	assert.Equal(t, first, *a.PublishedAt, "republishing keeps the original date")

	a.ApplyStatus(StatusDraft, later)
	assert.Nil(t, a.PublishedAt)

	a.ApplyStatus(StatusPublished, later)
	assert.Equal(t, later, *a.PublishedAt)
}

func TestTranslation_ApplyStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	tr := Translation{Status: StatusDraft}
	tr.ApplyStatus(StatusPublished, now)
	assert.True(t, tr.IsPublished())
	require.NotNil(t, tr.PublishedAt)

	tr.ApplyStatus(StatusDraft, now)
	assert.False(t, tr.IsPublished())
	assert.Nil(t, tr.PublishedAt)
}

func TestContentStatus_Valid(t *testing.T) {
	assert.True(t, StatusDraft.Valid())
	assert.True(t, StatusPublished.Valid())
	assert.False(t, ContentStatus("ARCHIVED").Valid())
	assert.False(t, ContentStatus("published").Valid())
}

func TestResolvedContent(t *testing.T) {
	original := ResolvedContent{Article: Article{Title: "Abyssal Station", Slug: "abyssal-station"}}
	assert.Equal(t, "Abyssal Station", original.Title())
	assert.Equal(t, "abyssal-station", original.Slug())

	translated := original
	translated.Translation = &Translation{Title: "Station abyssale", Slug: "station-abyssale"}
	assert.Equal(t, "Station abyssale", translated.Title())
	assert.Equal(t, "station-abyssale", translated.Slug())

	translated.Translation.Slug = ""
	assert.Equal(t, "abyssal-station", translated.Slug())
}

func TestLanguage_Direction(t *testing.T) {
	assert.Equal(t, "rtl", Language{IsRTL: true}.Direction())
	assert.Equal(t, "ltr", Language{}.Direction())
}

func TestErrors(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	wrapped := fmt.Errorf("list languages: %w", ErrorStoreUnavailable{Cause: cause})

	assert.True(t, IsStoreUnavailable(wrapped))
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, "store unavailable", ErrorStoreUnavailable{}.Error())

	assert.True(t, IsNotFound(fmt.Errorf("resolve: %w", NewNotFound("content"))))
	assert.Equal(t, "content not found", NewNotFound("content").Error())
	assert.Equal(t, "not found", ErrorNotFound{}.Error())

	assert.True(t, IsConflict(NewConflict("translation", "")))
	assert.Equal(t, "translation already exists", NewConflict("translation", "").Error())
	assert.Equal(t, "language conflict: code en is already registered", NewConflict("language", "code en is already registered").Error())

	assert.True(t, IsValidation(NewValidation("title", "is required")))
	assert.Equal(t, "title: is required", NewValidation("title", "is required").Error())
	assert.False(t, IsNotFound(cause))
}
