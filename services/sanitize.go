package services

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"galatide/helper"
	"galatide/models"
)

// contentPolicy allows the formatting an editor produces and strips scripts,
// event handlers and other active content.
var contentPolicy = bluemonday.UGCPolicy()

func sanitizeContent(html string) string {
	return contentPolicy.Sanitize(html)
}

// resolveSlug returns the slug form of explicit, or of title when explicit is
// empty.
func resolveSlug(explicit, title string) (string, error) {
	source := strings.TrimSpace(explicit)
	if source == "" {
		source = title
	}
	slug := helper.Slugify(source)
	if slug == "" {
		return "", models.NewValidation("slug", "cannot be derived from the title")
	}
	return slug, nil
}

func requireTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", models.NewValidation("title", "is required")
	}
	return title, nil
}

func statusOrDraft(status models.ContentStatus) (models.ContentStatus, error) {
	if status == "" {
		return models.StatusDraft, nil
	}
	if !status.Valid() {
		return "", models.NewValidation("status", "must be DRAFT or PUBLISHED")
	}
	return status, nil
}
