package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func redisURL(t *testing.T) string {
	url := os.Getenv("GALATIDE_TEST_REDIS_URL")
	if url == "" {
		t.Skip("GALATIDE_TEST_REDIS_URL not set")
	}
	return url
}

func TestRedisCache_RoundTrip(t *testing.T) {
	url := redisURL(t)
	ctx := context.Background()

	c, err := NewRedisCache(ctx, RedisOptions{URL: url, Prefix: "galatide-test:", DefaultTTL: time.Minute})
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	require.NoError(t, c.Set(ctx, "sitemap:en", []byte("<urlset/>"), 0))
	got, err := c.Get(ctx, "sitemap:en")
	require.NoError(t, err)
	assert.Equal(t, "<urlset/>", string(got))

	require.NoError(t, c.DeleteByPrefix(ctx, "sitemap:"))
	_, err = c.Get(ctx, "sitemap:en")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestNewRedisCache_RequiresURL(t *testing.T) {
	_, err := NewRedisCache(context.Background(), RedisOptions{})
	assert.Error(t, err)
}
