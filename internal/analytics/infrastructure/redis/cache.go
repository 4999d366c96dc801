package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AI-guru11/Mo7/internal/analytics/domain"
)

const statsKey = "m7:dashboard:stats"

// Cache keeps the latest dashboard snapshot in Redis for a short TTL so
// repeated dashboard loads do not re-run the whole aggregation.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

func (c *Cache) Get(ctx context.Context) (*domain.DashboardStats, error) {
	raw, err := c.rdb.Get(ctx, statsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var stats domain.DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Cache) Set(ctx context.Context, stats domain.DashboardStats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, statsKey, raw, c.ttl).Err()
}
