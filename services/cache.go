package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"scheduler-backend/monitoring"
)

const cacheKeyPrefix = "scheduler:events:"

// EventCache is an optional Redis read cache for ranged event queries.
// Every event mutation and calendar delete invalidates it wholesale; the
// store stays the source of truth. A nil *EventCache disables caching.
type EventCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewEventCache(client *redis.Client, ttl time.Duration) *EventCache {
	if client == nil {
		return nil
	}
	return &EventCache{redis: client, ttl: ttl}
}

func (c *EventCache) Get(ctx context.Context, from, to string) ([]map[string]any, bool) {
	if c == nil {
		return nil, false
	}

	data, err := c.redis.Get(ctx, rangeKey(from, to)).Bytes()
	if err != nil {
		monitoring.TrackCacheMiss()
		return nil, false
	}

	var events []map[string]any
	if err := json.Unmarshal(data, &events); err != nil {
		monitoring.TrackCacheMiss()
		return nil, false
	}

	monitoring.TrackCacheHit()
	return events, true
}

func (c *EventCache) Set(ctx context.Context, from, to string, events []map[string]any) {
	if c == nil {
		return
	}

	data, err := json.Marshal(events)
	if err != nil {
		return
	}

	if err := c.redis.Set(ctx, rangeKey(from, to), data, c.ttl).Err(); err != nil {
		slog.Warn("cache: set failed", "error", err)
	}
}

// Invalidate drops every cached range. Keys are walked with SCAN so a
// large keyspace never blocks the server.
func (c *EventCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}

	var cursor uint64
	for {
		keys, next, err := c.redis.Scan(ctx, cursor, cacheKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("cache: invalidate failed", "error", err)
			return
		}

		if len(keys) > 0 {
			if err := c.redis.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("cache: invalidate failed", "error", err)
				return
			}
		}

		cursor = next
		if cursor == 0 {
			return
		}
	}
}

func rangeKey(from, to string) string {
	return fmt.Sprintf("%s%s|%s", cacheKeyPrefix, from, to)
}
