// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// content.go caches resolved content responses in Valkey, keyed by tenant,
// resource, language, and page or item id. A nil *ContentCache is a valid
// cache that never hits, so callers need no Valkey when caching is off.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"

	"sitecontent/internal/i18n"
	"sitecontent/internal/models"
)

const (
	// contentKeyPrefix is the Valkey key prefix for cached content.
	contentKeyPrefix = "content:"

	// DefaultContentTTL is how long a resolved response stays cached.
	DefaultContentTTL = 5 * time.Minute
)

// ContentCache stores resolved content JSON in Valkey.
type ContentCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewContentCache creates a content cache backed by the given Valkey client.
func NewContentCache(client *redis.Client, ttl time.Duration) *ContentCache {
	if ttl == 0 {
		ttl = DefaultContentTTL
	}
	return &ContentCache{client: client, ttl: ttl}
}

// ListKey returns the key of one page of a listing.
func ListKey(tenant string, resource models.Resource, lang i18n.Language, page, limit int) string {
	return fmt.Sprintf("%s:%s:%s:p%d:l%d", tenantSegment(tenant), resource, lang.OrDefault(), page, limit)
}

// ItemKey returns the key of one item lookup. An empty language is kept
// distinct from the default one since it matches any variant.
func ItemKey(tenant string, resource models.Resource, lang i18n.Language, id string) string {
	l := lang.String()
	if l == "" {
		l = "any"
	}
	return fmt.Sprintf("%s:%s:%s:id:%s", tenantSegment(tenant), resource, l, id)
}

// tenantSegment escapes tenant so it holds no ':' separator and no SCAN
// glob characters. Invalidating one tenant then never matches another.
func tenantSegment(tenant string) string {
	return url.QueryEscape(tenant)
}

// Get returns the cached body for key. Errors count as misses.
func (c *ContentCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	val, err := c.client.Get(ctx, contentKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("content cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("content cache hit", "key", key)
	return val, true
}

// Set stores body under key with the configured TTL, replacing any
// previous entry.
func (c *ContentCache) Set(ctx context.Context, key string, body []byte) {
	if c == nil {
		return
	}
	if err := c.client.Set(ctx, contentKeyPrefix+key, body, c.ttl).Err(); err != nil {
		slog.Warn("content cache set error", "key", key, "error", err)
	}
}

// InvalidateTenant removes every cached entry of tenant.
func (c *ContentCache) InvalidateTenant(ctx context.Context, tenant string) int {
	return c.deleteMatching(ctx, contentKeyPrefix+tenantSegment(tenant)+":*")
}

// InvalidateAll removes all cached content by scanning for the prefix.
func (c *ContentCache) InvalidateAll(ctx context.Context) int {
	return c.deleteMatching(ctx, contentKeyPrefix+"*")
}

func (c *ContentCache) deleteMatching(ctx context.Context, pattern string) int {
	if c == nil {
		return 0
	}
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			slog.Warn("content cache scan error", "pattern", pattern, "error", err)
			return deleted
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("content cache bulk delete error", "error", err)
			} else {
				deleted += len(keys)
			}
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("content cache cleared", "pattern", pattern, "deleted", deleted)
	}
	return deleted
}
