// utils/cache.go
package utils

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache keys for taxonomy list payloads. Admin writes invalidate these so
// public reads can be served from Redis.
const (
	CacheKeyCategories = "cache:categories"
	CacheKeyLocations  = "cache:locations"
)

const taxonomyCacheTTL = 10 * time.Minute

// CacheJSON stores a JSON-encoded value. A nil client or encode failure is
// ignored; caching is best-effort.
func CacheJSON(ctx context.Context, client *redis.Client, key string, value interface{}) {
	if client == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	client.Set(ctx, key, data, taxonomyCacheTTL)
}

// GetCachedJSON loads a cached value into dest. Returns false on miss,
// decode failure, or nil client.
func GetCachedJSON(ctx context.Context, client *redis.Client, key string, dest interface{}) bool {
	if client == nil {
		return false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

// InvalidateCache drops the given keys.
func InvalidateCache(ctx context.Context, client *redis.Client, keys ...string) {
	if client == nil {
		return
	}
	client.Del(ctx, keys...)
}
