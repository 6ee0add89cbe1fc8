// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis provides the managed client behind the render cache.

The frontend owns no persistent data. Redis only keeps rendered post bodies
for a while, so a missing or unreachable Redis degrades performance, never
correctness: [Connect] returns nil when no URL is configured.
*/
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	dialTimeout  = 2 * time.Second
	readTimeout  = 500 * time.Millisecond
	writeTimeout = 500 * time.Millisecond
	pingTimeout  = 2 * time.Second
)

/*
Connect parses a Redis URL and returns a ready-to-use client.

Parameters:
  - ctx: Context for the initial ping
  - redisURL: Redis connection URL; empty disables Redis
  - logger: Structured logger for connection events

Returns:
  - *redis.Client: nil when redisURL is empty
  - error: Invalid URL or failed ping
*/
func Connect(ctx context.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	if redisURL == "" {
		logger.Info("redis_disabled", slog.String("reason", "REDIS_URL not set"))
		return nil, nil
	}

	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	// Cache lookups sit on the page path, so fail fast instead of retrying
	options.PoolSize = 10
	options.MinIdleConns = 1
	options.MaxRetries = 1
	options.DialTimeout = dialTimeout
	options.ReadTimeout = readTimeout
	options.WriteTimeout = writeTimeout

	client := redis.NewClient(options)

	if err := Ping(ctx, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_connected",
		slog.String("addr", options.Addr),
		slog.Int("pool_size", options.PoolSize),
	)

	return client, nil
}

// Ping verifies that the Redis client is healthy.
func Ping(ctx context.Context, client *redis.Client) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}

	return nil
}
