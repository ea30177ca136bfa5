package infra

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisClient(client), server
}

func TestRedisClient_SetGetDelete(t *testing.T) {
	cache, _ := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []string{"a", "b"}, time.Minute))

	var got []string
	require.NoError(t, cache.Get(ctx, "k", &got))
	assert.Equal(t, []string{"a", "b"}, got)

	exists, err := cache.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, cache.Delete(ctx, "k"))
	assert.ErrorIs(t, cache.Get(ctx, "k", &got), ErrCacheMiss)
}

func TestRedisClient_Expiry(t *testing.T) {
	cache, server := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", 1, time.Second))
	server.FastForward(2 * time.Second)

	var got int
	assert.ErrorIs(t, cache.Get(ctx, "k", &got), ErrCacheMiss)
}
