package redis

import (
	"VaultMind/backend/go/internal/config"
	"context"
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"
)

var (
	client  *redis.Client
	once    sync.Once
	initErr error
)

// GetClient initializes and returns a Redis client using the singleton
// pattern, so the connection is established once per process.
func GetClient(cfg *config.RedisConfig) (*redis.Client, error) {
	once.Do(func() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		})

		if err := rdb.Ping(context.Background()).Err(); err != nil {
			initErr = fmt.Errorf("failed to connect to redis: %w", err)
			return
		}

		client = rdb
	})

	return client, initErr
}

// Close safely closes the singleton Redis connection.
func Close() error {
	if client != nil {
		return client.Close()
	}
	return nil
}

// HealthCheck verifies the Redis connection is alive.
func HealthCheck(ctx context.Context) error {
	if client == nil {
		return fmt.Errorf("redis client is not initialized")
	}
	return client.Ping(ctx).Err()
}
