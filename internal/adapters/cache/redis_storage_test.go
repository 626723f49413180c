package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fiber's limiter only needs the Storage contract
var _ fiber.Storage = (*RedisStorage)(nil)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	require.NoError(t, err)
	return mr, client
}

func TestRedisStorage_GetSetDelete(t *testing.T) {
	_, client := setupTestRedis(t)
	store := NewRedisStorage(client)
	defer store.Close()

	val, err := store.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, store.Set("10.0.0.1", []byte("3"), time.Minute))

	val, err = store.Get("10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, []byte("3"), val)

	require.NoError(t, store.Delete("10.0.0.1"))
	val, err = store.Get("10.0.0.1")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestRedisStorage_Expiry(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewRedisStorage(client)

	require.NoError(t, store.Set("k", []byte("v"), time.Minute))
	mr.FastForward(2 * time.Minute)

	val, err := store.Get("k")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestRedisStorage_ResetOnlyTouchesOwnKeys(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewRedisStorage(client)

	require.NoError(t, mr.Set("unrelated", "keep"))
	require.NoError(t, store.Set("a", []byte("1"), 0))
	require.NoError(t, store.Set("b", []byte("2"), 0))

	require.NoError(t, store.Reset())

	assert.False(t, mr.Exists(keyPrefix+"a"))
	assert.False(t, mr.Exists(keyPrefix+"b"))
	assert.True(t, mr.Exists("unrelated"))
}

func TestConnect_Unreachable(t *testing.T) {
	_, err := Connect(context.Background(), Config{Addr: "127.0.0.1:1", Timeout: 200 * time.Millisecond})
	assert.Error(t, err)
}
