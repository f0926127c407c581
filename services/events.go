package services

import (
	"context"
	"log/slog"
	"time"

	"galatide/models"
)

// eventSink publishes content events after a successful write. Failures are
// logged and never returned to the writer.
type eventSink struct {
	publisher EventPublisher
	logger    *slog.Logger
}

func (s eventSink) emit(ctx context.Context, event models.ContentEvent) {
	if s.publisher == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish content event",
			"type", event.Type,
			"article_id", event.ArticleID,
			"translation_id", event.TranslationID,
			"error", err,
		)
	}
}

// statusEvent returns published for any write that leaves the row published,
// including edits of already published content, unpublished when it leaves
// the published state, and "" for drafts that stay drafts.
func statusEvent(before, after models.ContentStatus, published, unpublished models.EventType) models.EventType {
	switch {
	case after == models.StatusPublished:
		return published
	case before == models.StatusPublished && after != models.StatusPublished:
		return unpublished
	default:
		return ""
	}
}
