// internal/common/database/redis.go
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"rental-investment-workers/internal/common/config"
)

// RedisClient wraps the rent estimate cache connection.
type RedisClient struct {
	Client *redis.Client
}

func NewRedis(cfg config.RedisConfig) *RedisClient {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	return &RedisClient{Client: rdb}
}

// ConnectRedis creates the client and pings it with backoff.
func ConnectRedis(ctx context.Context, cfg config.RedisConfig, policy RetryPolicy) (*RedisClient, error) {
	rc := NewRedis(cfg)
	if err := policy.Do(ctx, "redis connection", rc.Ping); err != nil {
		_ = rc.Close()
		return nil, err
	}
	return rc, nil
}

func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (c *RedisClient) Close() error {
	if c.Client != nil {
		return c.Client.Close()
	}
	return nil
}
