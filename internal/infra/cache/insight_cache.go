// Package cache provides the Redis-backed cache for insight results.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"storefront/config"
	"storefront/internal/domain/lifecycle"
	"storefront/internal/domain/service"
	"storefront/internal/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// ClientParams defines the required parameters for the Redis client.
type ClientParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
}

// NewRedisClient creates the Redis client. Returns nil when Redis is not
// configured; the insight cache degrades to pass-through in that case.
func NewRedisClient(params ClientParams) (*redis.Client, error) {
	if params.Config.Redis == nil || params.Config.Redis.Addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     params.Config.Redis.Addr,
		Password: params.Config.Redis.Password,
		DB:       params.Config.Redis.DB,
	})

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx).Err(); err != nil {
				return errors.Wrap(err, "failed to ping Redis")
			}

			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return client, nil
}

// InsightCache caches computed insight results. The heuristics scan every
// product's trailing sales, so serving a slightly stale copy is a deliberate
// trade the read contract already allows.
type InsightCache struct {
	logger *slog.Logger
	client *redis.Client
	ttl    time.Duration
}

// NewInsightCache creates the insight cache.
func NewInsightCache(logger *slog.Logger, client *redis.Client, cfg *config.Config) service.InsightCache {
	return &InsightCache{
		logger: logger,
		client: client,
		ttl:    cfg.Insight.CacheTTL,
	}
}

// Get loads a cached value into dest. A miss, a disabled cache and a broken
// payload all report false; callers recompute.
func (c *InsightCache) Get(ctx context.Context, key string, dest any) bool {
	if c.client == nil {
		return false
	}

	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WarnContext(ctx, "insight cache read failed",
				slog.String("key", key), slog.String("error", err.Error()))
		}

		return false
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		c.logger.WarnContext(ctx, "insight cache payload corrupt",
			slog.String("key", key), slog.String("error", err.Error()))

		return false
	}

	return true
}

// Set stores a value best-effort. Cache failures never fail the request.
func (c *InsightCache) Set(ctx context.Context, key string, value any) {
	if c.client == nil {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		c.logger.WarnContext(ctx, "insight cache marshal failed",
			slog.String("key", key), slog.String("error", err.Error()))

		return
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "insight cache write failed",
			slog.String("key", key), slog.String("error", err.Error()))
	}
}
