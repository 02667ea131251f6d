package core

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"storefront-backend-go/internal/cache"
)

// cacheGetJSON loads and decodes a cached value. A nil cache or any cache
// failure is treated as a miss.
func cacheGetJSON(c cache.Cache, logger *zap.Logger, key string, out interface{}) bool {
	if c == nil {
		return false
	}
	raw, err := c.Get(key)
	if err != nil || raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		logger.Warn("failed to decode cached value", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// cacheSetJSON encodes and stores a value. Failures are logged and ignored.
func cacheSetJSON(c cache.Cache, logger *zap.Logger, key string, value interface{}, ttl time.Duration) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.Set(key, string(raw), ttl); err != nil {
		logger.Warn("failed to cache value", zap.String("key", key), zap.Error(err))
	}
}
