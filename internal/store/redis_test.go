package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStore(client, "tablemap:")
	t.Cleanup(func() { s.Close() })
	return mr, s
}

func TestRedisStore_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	mr, s := newTestRedis(t)

	_, ok, err := s.Get(ctx, "restaurant_list_cache_v1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "restaurant_list_cache_v1", "payload"))
	assert.True(t, mr.Exists("tablemap:restaurant_list_cache_v1"))

	v, ok, err := s.Get(ctx, "restaurant_list_cache_v1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "payload", v)

	require.NoError(t, s.Delete(ctx, "restaurant_list_cache_v1"))
	assert.False(t, mr.Exists("tablemap:restaurant_list_cache_v1"))
}

func TestRedisStore_ServerDown(t *testing.T) {
	ctx := context.Background()
	mr, s := newTestRedis(t)
	mr.Close()

	_, ok, err := s.Get(ctx, "k")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Error(t, s.Set(ctx, "k", "v"))
}

func TestDialRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	s, err := DialRedis(mr.Addr(), "", 0, "")
	require.NoError(t, err)
	defer s.Close()

	_, err = DialRedis("", "", 0, "")
	assert.Error(t, err)
}
