// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis provides a managed client for volatile data storage.

It backs the read-through cache placed in front of course lookups.

Core Responsibilities:

  - Volatility: Handles data with TTL (Time-To-Live).
  - Speed: Low-latency access compared to persistent SQL storage.
  - Safety: Manages connection pooling and retry logic automatically.
*/
package redis

import (
	stdctx "context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Opiniated default timeouts for Redis operations.
const (
	dialTimeout  = 3 * time.Second
	readTimeout  = 2 * time.Second
	writeTimeout = 2 * time.Second
	pingTimeout  = 2 * time.Second
)

// NewClient parses a Redis URL and returns a ready-to-use client.
//
// # Parameters
//   - context: Context for the initial ping.
//   - redisURL: Redis connection URL.
//   - logger: Structured logger for connection events.
func NewClient(context stdctx.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	options.PoolSize = 10
	options.MinIdleConns = 2
	options.MaxIdleConns = 5

	options.DialTimeout = dialTimeout
	options.ReadTimeout = readTimeout
	options.WriteTimeout = writeTimeout

	client := redis.NewClient(options)

	// Validate connectivity immediately at startup.
	if err := Ping(context, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis client connected",
		slog.String("addr", options.Addr),
		slog.Int("pool_size", options.PoolSize),
	)

	return client, nil
}

// Ping verifies that the Redis client is healthy.
func Ping(context stdctx.Context, client *redis.Client) error {
	pingCtx, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}

	return nil
}

// # Cache

// Cache exposes byte-level get/set/delete on top of a Redis client.
type Cache struct {
	client redis.Cmdable
}

// NewCache wraps client.
func NewCache(client redis.Cmdable) *Cache {
	return &Cache{client: client}
}

// Get returns the value under key. A missing key is reported as hit=false.
func (cache *Cache) Get(context stdctx.Context, key string) ([]byte, bool, error) {
	payload, err := cache.client.Get(context, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis: get %s: %w", key, err)
	}
	return payload, true, nil
}

// Set stores value under key for ttl. A zero ttl keeps the key until evicted.
func (cache *Cache) Set(context stdctx.Context, key string, value []byte, ttl time.Duration) error {
	if err := cache.client.Set(context, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis: set %s: %w", key, err)
	}
	return nil
}

// SetIfAbsent stores value under key for ttl only when key does not exist.
// It reports whether the value was stored.
func (cache *Cache) SetIfAbsent(context stdctx.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	stored, err := cache.client.SetNX(context, key, value, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis: setnx %s: %w", key, err)
	}
	return stored, nil
}
