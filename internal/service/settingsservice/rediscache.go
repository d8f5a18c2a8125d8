package settingsservice

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nbataa/agentmart/internal/domain"
	"go.uber.org/zap"
)

const (
	cacheKey = "agentmart:admin_settings"
	cacheTTL = 5 * time.Minute
)

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context) (*domain.AdminSettings, bool) {
	raw, err := c.client.Get(ctx, cacheKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			zap.L().Warn("settings cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var settings domain.AdminSettings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		zap.L().Warn("settings cache entry corrupted", zap.Error(err))
		return nil, false
	}
	return &settings, true
}

func (c *RedisCache) Store(ctx context.Context, s *domain.AdminSettings) {
	raw, err := json.Marshal(s)
	if err != nil {
		zap.L().Warn("can't marshal settings for cache", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, cacheKey, raw, cacheTTL).Err(); err != nil {
		zap.L().Warn("settings cache write failed", zap.Error(err))
	}
}

func (c *RedisCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, cacheKey).Err(); err != nil {
		zap.L().Warn("settings cache invalidation failed", zap.Error(err))
	}
}

// NoopCache disables caching; every read goes to the database.
type NoopCache struct{}

func (NoopCache) Get(ctx context.Context) (*domain.AdminSettings, bool) { return nil, false }
func (NoopCache) Store(ctx context.Context, s *domain.AdminSettings)    {}
func (NoopCache) Invalidate(ctx context.Context)                        {}
