// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package render

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache implements [Cache] using Redis.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a new Redis-backed [Cache]. Entries expire after ttl.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

/*
Get retrieves a rendered fragment.

Parameters:
  - ctx: context.Context
  - key: string (see [Key])

Returns:
  - string: The fragment
  - bool: false when the key is absent or expired
  - error: Connectivity errors
*/
func (cache *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	fragment, err := cache.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis_render_get_failed: %w", err)
	}

	return fragment, true, nil
}

/*
Set stores a rendered fragment with the configured TTL.

Parameters:
  - ctx: context.Context
  - key: string
  - fragment: string

Returns:
  - error: Execution errors
*/
func (cache *RedisCache) Set(ctx context.Context, key, fragment string) error {
	if err := cache.client.Set(ctx, key, fragment, cache.ttl).Err(); err != nil {
		return fmt.Errorf("redis_render_set_failed: %w", err)
	}
	return nil
}
