package messaging

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"galatide/models"
)

func TestMulti_PublishesToAll(t *testing.T) {
	var got []string
	first := PublisherFunc(func(_ context.Context, e models.ContentEvent) error {
		got = append(got, "first:"+string(e.Type))
		return errors.New("broker down")
	})
	second := PublisherFunc(func(_ context.Context, e models.ContentEvent) error {
		got = append(got, "second:"+string(e.Type))
		return nil
	})

	err := Multi{first, nil, second}.Publish(context.Background(), models.ContentEvent{Type: models.EventArticlePublished})

	assert.EqualError(t, err, "broker down")
	assert.Equal(t, []string{"first:article.published", "second:article.published"}, got)
}

func TestMulti_NoErrors(t *testing.T) {
	err := Multi{Noop{}, Noop{}}.Publish(context.Background(), models.ContentEvent{})
	assert.NoError(t, err)
}

func TestRabbitMQ_RoutingKey(t *testing.T) {
	r := &RabbitMQ{routingKey: "content"}
	key := r.RoutingKeyFor(models.ContentEvent{Type: models.EventTranslationDeleted})
	assert.Equal(t, "content.translation.deleted", key)
}
