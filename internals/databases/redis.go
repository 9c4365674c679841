package database

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"nyumbasmart_backend/internals/configs"
)

// NewRedisClient returns nil when no address is configured; callers then
// fall back to process-local state.
func NewRedisClient(ctx context.Context, cfg configs.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}
