// Copyright (c) 2026 Profolio Bookstore. All rights reserved.
// Author: Abdulrahman Sweilam

package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/abdelrahman21-arch/book-store-demo/internal/platform/constants"
)

// cacheTTL bounds how long a rendered document may live. Keys are dated, so
// the TTL only reclaims memory; staleness within a day is handled by
// invalidation after each committed import.
const cacheTTL = 24 * time.Hour

// Cache stores rendered report documents in Redis.
//
// It implements [DocumentCache] for the report service and the import
// pipeline's invalidation port. All failures are logged and absorbed: Redis
// being down degrades report latency, never report availability.
type Cache struct {
	client *redis.Client
	logger *slog.Logger
}

// NewCache constructs a Redis backed document cache.
func NewCache(client *redis.Client, logger *slog.Logger) *Cache {
	return &Cache{client: client, logger: logger}
}

// key builds the dated cache key: report:pdf:<storeID>:<YYYY-MM-DD>.
func (cache *Cache) key(storeID string, day time.Time) string {
	return fmt.Sprintf("%s%s:%s", constants.RedisPrefixReport, storeID, day.Format("2006-01-02"))
}

// Get returns the cached document for the store and day, if present.
func (cache *Cache) Get(context context.Context, storeID string, day time.Time) ([]byte, bool) {
	body, err := cache.client.Get(context, cache.key(storeID, day)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			cache.logger.WarnContext(context, "report_cache_get_failed",
				slog.String("store_id", storeID),
				slog.String("error", err.Error()),
			)
		}
		return nil, false
	}
	return body, true
}

// Set caches the rendered document for the store and day.
func (cache *Cache) Set(context context.Context, storeID string, day time.Time, body []byte) error {
	if err := cache.client.Set(context, cache.key(storeID, day), body, cacheTTL).Err(); err != nil {
		return fmt.Errorf("redis: failed to cache report: %w", err)
	}
	return nil
}

// Invalidate removes every cached document for the store, regardless of day.
//
// Called after a committed import batch for each store the batch touched.
func (cache *Cache) Invalidate(context context.Context, storeID string) error {
	pattern := constants.RedisPrefixReport + storeID + ":*"

	iter := cache.client.Scan(context, 0, pattern, 0).Iterator()
	for iter.Next(context) {
		if err := cache.client.Del(context, iter.Val()).Err(); err != nil {
			return fmt.Errorf("redis: failed to delete cached report %q: %w", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis: report cache scan failed: %w", err)
	}

	return nil
}
