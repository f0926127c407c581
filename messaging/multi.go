package messaging

import (
	"context"
	"errors"

	"galatide/models"
)

// Publisher receives content events.
type Publisher interface {
	Publish(ctx context.Context, event models.ContentEvent) error
}

// Multi fans an event out to every publisher. All publishers are tried; the
// returned error joins the individual failures.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, event models.ContentEvent) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Noop discards events.
type Noop struct{}

func (Noop) Publish(context.Context, models.ContentEvent) error { return nil }

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(ctx context.Context, event models.ContentEvent) error

func (f PublisherFunc) Publish(ctx context.Context, event models.ContentEvent) error {
	return f(ctx, event)
}
