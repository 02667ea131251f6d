package cache

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisCache backs the Cache interface with a Redis server.
type RedisCache struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisCacheConfig holds the connection options for NewRedisCache.
type NewRedisCacheConfig struct {
	Address  string
	Password string
	DB       int
}

// NewRedisCache connects to Redis and verifies the connection with a ping.
// Callers fall back to running without a cache when this fails.
func NewRedisCache(cfg NewRedisCacheConfig) (Cache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx := context.Background()
	_, err := rdb.Ping(ctx).Result()
	if err != nil {
		log.Printf("redis ping failed for %s: %v", cfg.Address, err)
		return nil, err
	}

	log.Printf("redis cache connected at %s", cfg.Address)
	return &RedisCache{client: rdb, ctx: ctx}, nil
}

// Get returns the cached value for key. A missing key is not an error and
// returns "".
func (r *RedisCache) Get(key string) (string, error) {
	val, err := r.client.Get(r.ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	} else if err != nil {
		log.Printf("redis get %s: %v", key, err)
		return "", err
	}
	return val, nil
}

// Set writes a value with the given TTL.
func (r *RedisCache) Set(key string, value interface{}, expiration time.Duration) error {
	if err := r.client.Set(r.ctx, key, value, expiration).Err(); err != nil {
		log.Printf("redis set %s: %v", key, err)
		return err
	}
	return nil
}

// Delete evicts a key.
func (r *RedisCache) Delete(key string) error {
	if err := r.client.Del(r.ctx, key).Err(); err != nil {
		log.Printf("redis del %s: %v", key, err)
		return err
	}
	return nil
}
