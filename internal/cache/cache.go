package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"iwork_backend/internal/logger"

	"github.com/redis/go-redis/v9"
)

// Cache is the typed caching port used by the read path. Implementations
// must treat every failure as a miss on reads and a no-op on writes so a
// cache outage never breaks a request.
type Cache interface {
	// Get unmarshals the cached value into dest. The bool reports a hit.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// DeletePrefix removes every key starting with prefix. Idempotent.
	DeletePrefix(ctx context.Context, prefix string) error
	Ping(ctx context.Context) error
}

type redisCache struct {
	client *redis.Client
}

// NewRedisCache wraps client as a Cache. A nil client yields a degraded
// cache: every Get misses and every write is a no-op, logged at WARN once
// per call site via the logger package.
func NewRedisCache(client *redis.Client) Cache {
	return &redisCache{client: client}
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if c.client == nil {
		return false, nil
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		logger.CtxWarn(ctx, "cache get failed, treating as miss", "key", key, "error", err)
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		// A corrupt entry behaves like a miss; drop it so it cannot keep
		// poisoning reads.
		logger.CtxWarn(ctx, "cache entry unmarshal failed, evicting", "key", key, "error", err)
		c.client.Del(ctx, key)
		return false, nil
	}
	return true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		logger.CtxWarn(ctx, "cache set failed", "key", key, "error", err)
	}
	return nil
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil || len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.CtxWarn(ctx, "cache delete failed", "keys", keys, "error", err)
	}
	return nil
}

func (c *redisCache) DeletePrefix(ctx context.Context, prefix string) error {
	if c.client == nil || prefix == "" {
		return nil
	}
	iter := c.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) >= 100 {
			if err := c.client.Del(ctx, batch...).Err(); err != nil {
				logger.CtxWarn(ctx, "cache prefix delete failed", "prefix", prefix, "error", err)
				return nil
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		logger.CtxWarn(ctx, "cache scan failed", "prefix", prefix, "error", err)
		return nil
	}
	if len(batch) > 0 {
		if err := c.client.Del(ctx, batch...).Err(); err != nil {
			logger.CtxWarn(ctx, "cache prefix delete failed", "prefix", prefix, "error", err)
		}
	}
	return nil
}

func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return errors.New("redis client not configured")
	}
	return c.client.Ping(ctx).Err()
}
