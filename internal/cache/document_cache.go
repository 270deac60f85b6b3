package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SscSPs/document_tracking_app/internal/core/domain"
	portssvc "github.com/SscSPs/document_tracking_app/internal/core/ports/services"
	"github.com/SscSPs/document_tracking_app/internal/middleware"
)

const defaultTTL = 10 * time.Minute

// Connect returns a client for addr, or nil when Redis is not reachable so
// the application runs without a cache.
func Connect(ctx context.Context, addr string) *redis.Client {
	logger := middleware.GetLoggerFromCtx(ctx)
	if addr == "" {
		logger.Info("REDIS_ADDR not set, running without document cache")
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis not available, running without document cache", slog.String("addr", addr), slog.String("error", err.Error()))
		client.Close()
		return nil
	}
	logger.Info("Redis connected", slog.String("addr", addr))
	return client
}

// DocumentCache caches documents under a per-document version key. Invalidate
// bumps the version so stale entries are never read again and expire on
// their own. A nil client turns every call into a miss.
type DocumentCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDocumentCache creates a cache on client. A non-positive ttl uses the default.
func NewDocumentCache(client *redis.Client, ttl time.Duration) *DocumentCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &DocumentCache{client: client, ttl: ttl}
}

var _ portssvc.DocumentCache = (*DocumentCache)(nil)

func versionKey(documentID string) string {
	return fmt.Sprintf("doc:%s:version", documentID)
}

func (c *DocumentCache) dataKey(ctx context.Context, documentID string) (string, error) {
	v, err := c.client.Get(ctx, versionKey(documentID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	return fmt.Sprintf("doc:%s:v:%d", documentID, v), nil
}

func (c *DocumentCache) Get(ctx context.Context, documentID string) (*domain.Document, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	key, err := c.dataKey(ctx, documentID)
	if err != nil {
		c.warn(ctx, "get version", documentID, err)
		return nil, false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.warn(ctx, "get", documentID, err)
		}
		return nil, false
	}
	var doc domain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		c.warn(ctx, "decode", documentID, err)
		return nil, false
	}
	return &doc, true
}

func (c *DocumentCache) Set(ctx context.Context, document domain.Document) {
	if c == nil || c.client == nil {
		return
	}
	key, err := c.dataKey(ctx, document.DocumentID)
	if err != nil {
		c.warn(ctx, "get version", document.DocumentID, err)
		return
	}
	data, err := json.Marshal(document)
	if err != nil {
		c.warn(ctx, "encode", document.DocumentID, err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.warn(ctx, "set", document.DocumentID, err)
	}
}

func (c *DocumentCache) Invalidate(ctx context.Context, documentID string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Incr(ctx, versionKey(documentID)).Err(); err != nil {
		c.warn(ctx, "invalidate", documentID, err)
	}
}

func (c *DocumentCache) warn(ctx context.Context, op, documentID string, err error) {
	middleware.GetLoggerFromCtx(ctx).Warn("Document cache "+op+" failed",
		slog.String("document_id", documentID), slog.String("error", err.Error()))
}
