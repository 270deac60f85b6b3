package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/document_tracking_app/internal/core/domain"
)

func newTestCache(t *testing.T) (*DocumentCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewDocumentCache(client, time.Minute), mr
}

func TestDocumentCache_SetGetInvalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	doc := domain.Document{DocumentID: "doc-1", Title: "Budget", Status: domain.StatusInProcess}

	_, ok := c.Get(ctx, "doc-1")
	assert.False(t, ok)

	c.Set(ctx, doc)
	got, ok := c.Get(ctx, "doc-1")
	require.True(t, ok)
	assert.Equal(t, doc.Title, got.Title)
	assert.Equal(t, domain.StatusInProcess, got.Status)

	c.Invalidate(ctx, "doc-1")
	_, ok = c.Get(ctx, "doc-1")
	assert.False(t, ok)

	doc.Status = domain.StatusOnHold
	c.Set(ctx, doc)
	got, ok = c.Get(ctx, "doc-1")
	require.True(t, ok)
	assert.Equal(t, domain.StatusOnHold, got.Status)
}

func TestDocumentCache_EntriesExpire(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, domain.Document{DocumentID: "doc-1"})
	mr.FastForward(2 * time.Minute)

	_, ok := c.Get(ctx, "doc-1")
	assert.False(t, ok)
}

func TestDocumentCache_FailuresAreMisses(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	c.Set(ctx, domain.Document{DocumentID: "doc-1"})
	mr.Close()

	assert.NotPanics(t, func() {
		_, ok := c.Get(ctx, "doc-1")
		assert.False(t, ok)
		c.Invalidate(ctx, "doc-1")
	})
}

func TestDocumentCache_NilClient(t *testing.T) {
	c := NewDocumentCache(nil, 0)
	ctx := context.Background()

	c.Set(ctx, domain.Document{DocumentID: "doc-1"})
	_, ok := c.Get(ctx, "doc-1")
	assert.False(t, ok)
	c.Invalidate(ctx, "doc-1")
}
