package cache

import (
	"context"
	"fmt"
	"shareit/infras/otel"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName         = "cache"
	otelCacheKeyAttribute = "cache.key"
)

// RedisCache keeps fixed-window counters in Redis.
type RedisCache interface {
	// Increment bumps the counter under key and returns the new count with the time left in the
	// window. The window opens on the first increment and the key expires when it closes.
	Increment(ctx context.Context, key string, windowSeconds int) (count int64, ttl time.Duration, err error)
}

type redisCache struct {
	client *redis.Client
	otel   otel.Otel
}

func NewRedisCache(client *redis.Client, ot otel.Otel) RedisCache {
	return &redisCache{
		client: client,
		otel:   ot,
	}
}

func (cache *redisCache) Increment(ctx context.Context, key string, windowSeconds int) (count int64, ttl time.Duration, err error) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Increment")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelCacheKeyAttribute, key)

	window := time.Duration(windowSeconds) * time.Second

	count, err = cache.client.Incr(ctx, key).Result()
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to increment counter")

		return 0, 0, fmt.Errorf("failed to increment counter: %w", err)
	}

	if count == 1 {
		if err = cache.client.Expire(ctx, key, window).Err(); err != nil {
			return count, 0, fmt.Errorf("failed to open counter window: %w", err)
		}

		return count, window, nil
	}

	ttl, err = cache.client.TTL(ctx, key).Result()
	if err != nil {
		return count, 0, fmt.Errorf("failed to read counter window: %w", err)
	}

	// A counter left without expiry by an earlier failed Expire would never reset.
	if ttl < 0 {
		if err = cache.client.Expire(ctx, key, window).Err(); err != nil {
			return count, 0, fmt.Errorf("failed to open counter window: %w", err)
		}

		ttl = window
	}

	scope.SetAttribute("cache.count", count)

	return count, ttl, nil
}
