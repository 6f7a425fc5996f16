package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/redis/go-redis/v9"

	"insight-specs/internal/ports"
)

const redisKeyPrefix = "insight-specs:"

// RedisSpecCache shares compiled documents between hosts.
type RedisSpecCache struct {
	client *redis.Client
}

// NewRedisSpecCache connects to addr and verifies the server answers.
func NewRedisSpecCache(ctx context.Context, addr string) (*RedisSpecCache, error) {
	if addr == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("redis address is empty")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("redis is unreachable").
			WithCause(err)
	}
	return &RedisSpecCache{client: client}, nil
}

func (c *RedisSpecCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read cache entry").
			WithCause(err)
	}
	return data, true, nil
}

func (c *RedisSpecCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, redisKeyPrefix+key, data, ttl).Err(); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write cache entry").
			WithCause(err)
	}
	return nil
}

func (c *RedisSpecCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to delete cache entry").
			WithCause(err)
	}
	return nil
}

func (c *RedisSpecCache) Close() error {
	return c.client.Close()
}

var _ ports.CachePort = (*RedisSpecCache)(nil)
