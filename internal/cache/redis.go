package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lingo-quiz/internal/config"

	"github.com/redis/go-redis/v9"
)

const (
	connectTimeout = 3 * time.Second
	ioTimeout      = 2 * time.Second
)

// NewRedisClient connects to cfg.Address and verifies the connection with a PING.
// Cache calls are short, so reads and writes get a tight timeout and the pool is kept small.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Address == "" {
		return nil, errors.New("redis address is empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		ClientName:   "lingo-quiz",
		DialTimeout:  connectTimeout,
		ReadTimeout:  ioTimeout,
		WriteTimeout: ioTimeout,
		PoolSize:     10,
		MinIdleConns: 1,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Address, err)
	}
	return client, nil
}
