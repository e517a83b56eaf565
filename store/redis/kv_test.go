package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/wage-engine/store"
	redisstore "github.com/warp/wage-engine/store/redis"
)

func setupTestRedis(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, *redisstore.KV) {
	mr := miniredis.RunT(t)
	client := redisstore.NewClient(redisstore.Config{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, redisstore.NewKV(client, ttl)
}

func TestKV_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	mr, kv := setupTestRedis(t, 0)

	env, err := store.Seal(map[string]float64{"salary": 240000})
	require.NoError(t, err)
	require.NoError(t, kv.Put(ctx, "form", env))

	assert.True(t, mr.Exists(redisstore.DefaultPrefix+"form"))

	got, err := kv.Get(ctx, "form")
	require.NoError(t, err)
	assert.Equal(t, store.CurrentVersion, got.Version)
	assert.True(t, got.Enabled)
	assert.JSONEq(t, `{"salary":240000}`, string(got.Data))

	require.NoError(t, kv.Delete(ctx, "form"))
	_, err = kv.Get(ctx, "form")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, kv.Delete(ctx, "form"), store.ErrNotFound)
}

func TestKV_KeysStripPrefix(t *testing.T) {
	ctx := context.Background()
	mr, kv := setupTestRedis(t, 0)
	require.NoError(t, mr.Set("unrelated", "x"))

	env, err := store.Seal(1)
	require.NoError(t, err)
	require.NoError(t, kv.Put(ctx, "b", env))
	require.NoError(t, kv.Put(ctx, "a", env))

	keys, err := kv.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestKV_TTL(t *testing.T) {
	ctx := context.Background()
	mr, kv := setupTestRedis(t, time.Hour)

	env, err := store.Seal(1)
	require.NoError(t, err)
	require.NoError(t, kv.Put(ctx, "form", env))

	assert.Equal(t, time.Hour, mr.TTL(redisstore.DefaultPrefix+"form"))

	mr.FastForward(2 * time.Hour)
	_, err = kv.Get(ctx, "form")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestKV_CorruptValue(t *testing.T) {
	mr, kv := setupTestRedis(t, 0)
	require.NoError(t, mr.Set(redisstore.DefaultPrefix+"form", "{not json"))

	_, err := kv.Get(context.Background(), "form")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrNotFound)
}

func TestKV_RedisDown(t *testing.T) {
	mr, kv := setupTestRedis(t, 0)
	mr.Close()

	_, err := kv.Get(context.Background(), "form")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrNotFound)
}
