// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisstore "github.com/taibuivan/lmscatalog/internal/platform/redis"
)

// stubClient answers the string commands the cache issues from a map.
// Any other command panics through the nil embedded interface.
type stubClient struct {
	redis.Cmdable
	values map[string]string
	ttls   map[string]time.Duration
	err    error
}

func newStubClient() *stubClient {
	return &stubClient{values: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (stub *stubClient) Get(_ context.Context, key string) *redis.StringCmd {
	if stub.err != nil {
		return redis.NewStringResult("", stub.err)
	}
	value, ok := stub.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

func (stub *stubClient) Set(_ context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	if stub.err != nil {
		return redis.NewStatusResult("", stub.err)
	}
	stub.values[key] = string(value.([]byte))
	stub.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func (stub *stubClient) SetNX(_ context.Context, key string, value any, ttl time.Duration) *redis.BoolCmd {
	if stub.err != nil {
		return redis.NewBoolResult(false, stub.err)
	}
	if _, ok := stub.values[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	stub.values[key] = string(value.([]byte))
	stub.ttls[key] = ttl
	return redis.NewBoolResult(true, nil)
}

/*
TestCache_GetSet verifies hits, misses and the ttl handed to Redis.
*/
func TestCache_GetSet(t *testing.T) {
	ctx := context.Background()
	client := newStubClient()
	cache := redisstore.NewCache(client)

	// 1. A missing key is a miss, not an error
	value, hit, err := cache.Get(ctx, "catalog:course:1")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, value)

	// 2. Set then Get round-trips the bytes
	require.NoError(t, cache.Set(ctx, "catalog:course:1", []byte(`{"id":1}`), time.Minute))
	assert.Equal(t, time.Minute, client.ttls["catalog:course:1"])

	value, hit, err = cache.Get(ctx, "catalog:course:1")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []byte(`{"id":1}`), value)
}

func TestCache_SetIfAbsent(t *testing.T) {
	ctx := context.Background()
	cache := redisstore.NewCache(newStubClient())

	stored, err := cache.SetIfAbsent(ctx, "k", []byte("first"), time.Minute)
	require.NoError(t, err)
	assert.True(t, stored)

	stored, err = cache.SetIfAbsent(ctx, "k", []byte("second"), time.Minute)
	require.NoError(t, err)
	assert.False(t, stored)

	value, _, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), value)
}

func TestCache_Errors(t *testing.T) {
	ctx := context.Background()
	down := errors.New("connection refused")
	client := newStubClient()
	client.err = down
	cache := redisstore.NewCache(client)

	_, hit, err := cache.Get(ctx, "k")
	assert.ErrorIs(t, err, down)
	assert.False(t, hit)

	assert.ErrorIs(t, cache.Set(ctx, "k", []byte("v"), 0), down)

	stored, err := cache.SetIfAbsent(ctx, "k", []byte("v"), 0)
	assert.ErrorIs(t, err, down)
	assert.False(t, stored)
}
