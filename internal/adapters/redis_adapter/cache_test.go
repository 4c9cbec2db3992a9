package redis_a_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redis_a "github.com/fruimex/fruimex-be/internal/adapters/redis_adapter"
	"github.com/fruimex/fruimex-be/internal/core/ports"
	"github.com/fruimex/fruimex-be/test/helpers"
)

func newTestCache(t *testing.T) (ports.CacheRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return redis_a.NewCache(client, 5*time.Minute, helpers.TestLogger()), mr
}

func TestCache_SetAndGet(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t)

	t.Run("round_trips_a_string", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, "greeting", "hello"))

		var got string
		require.NoError(t, cache.Get(ctx, "greeting", &got))
		assert.Equal(t, "hello", got)
	})

	t.Run("round_trips_a_struct", func(t *testing.T) {
		type entry struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		}
		want := entry{ID: "123", Name: "Valencia Orange"}
		require.NoError(t, cache.Set(ctx, "catalog:entry", want))

		var got entry
		require.NoError(t, cache.Get(ctx, "catalog:entry", &got))
		assert.Equal(t, want, got)
	})

	t.Run("round_trips_a_map_as_json", func(t *testing.T) {
		want := map[string]interface{}{"count": 3, "fresh": true}
		require.NoError(t, cache.Set(ctx, "dash:counts", want))

		var raw json.RawMessage
		require.NoError(t, cache.Get(ctx, "dash:counts", &raw))

		wantJSON, err := json.Marshal(want)
		require.NoError(t, err)
		assert.JSONEq(t, string(wantJSON), string(raw))
	})

	t.Run("misses_unknown_keys", func(t *testing.T) {
		var got string
		err := cache.Get(ctx, "never:set", &got)
		assert.ErrorIs(t, err, redis_a.ErrCacheMiss)
	})
}

func TestCache_SetWithTTL(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)

	require.NoError(t, cache.SetWithTTL(ctx, "ttl:test", "value", 100*time.Millisecond))

	var got string
	require.NoError(t, cache.Get(ctx, "ttl:test", &got))
	assert.Equal(t, "value", got)

	mr.FastForward(200 * time.Millisecond)

	err := cache.Get(ctx, "ttl:test", &got)
	assert.ErrorIs(t, err, redis_a.ErrCacheMiss)
}

func TestCache_Expire(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)

	require.NoError(t, cache.SetWithTTL(ctx, "sliding", "value", time.Minute))

	// Pushing the expiry out keeps the key alive past its original TTL
	require.NoError(t, cache.Expire(ctx, "sliding", time.Hour))
	mr.FastForward(30 * time.Minute)

	var got string
	require.NoError(t, cache.Get(ctx, "sliding", &got))

	ttl, err := cache.TTL(ctx, "sliding")
	require.NoError(t, err)
	assert.LessOrEqual(t, ttl, 30*time.Minute)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestCache_Delete(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t)

	keys := []string{"del:1", "del:2", "del:3"}
	for _, key := range keys {
		require.NoError(t, cache.Set(ctx, key, "value"))
	}

	require.NoError(t, cache.Delete(ctx, keys...))

	for _, key := range keys {
		var got string
		assert.ErrorIs(t, cache.Get(ctx, key, &got), redis_a.ErrCacheMiss)
	}

	// Deleting nothing is fine
	require.NoError(t, cache.Delete(ctx))
}

func TestCache_DeletePattern(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t)

	doomed := []string{"dash:main", "dash:analytics:30d"}
	kept := []string{"catalog:entries", "session:abc"}
	for _, key := range append(append([]string{}, doomed...), kept...) {
		require.NoError(t, cache.Set(ctx, key, "value"))
	}

	require.NoError(t, cache.DeletePattern(ctx, "dash:*"))

	for _, key := range doomed {
		var got string
		assert.ErrorIs(t, cache.Get(ctx, key, &got), redis_a.ErrCacheMiss, "expected %s gone", key)
	}
	for _, key := range kept {
		var got string
		require.NoError(t, cache.Get(ctx, key, &got), "expected %s kept", key)
	}
}

func TestCache_Exists(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t)

	require.NoError(t, cache.Set(ctx, "present", "value"))

	ok, err := cache.Exists(ctx, "present")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = cache.Exists(ctx, "present", "absent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_GetOrSet(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t)

	fetchCount := 0
	fetch := func() (interface{}, error) {
		fetchCount++
		return "fetched value", nil
	}

	var first string
	require.NoError(t, cache.GetOrSet(ctx, "readthrough", &first, fetch, time.Minute))
	assert.Equal(t, "fetched value", first)
	assert.Equal(t, 1, fetchCount)

	var second string
	require.NoError(t, cache.GetOrSet(ctx, "readthrough", &second, fetch, time.Minute))
	assert.Equal(t, "fetched value", second)
	assert.Equal(t, 1, fetchCount, "second read should come from cache")

	t.Run("propagates_fetch_errors", func(t *testing.T) {
		boom := errors.New("upstream down")
		var dest string
		err := cache.GetOrSet(ctx, "readthrough:err", &dest, func() (interface{}, error) {
			return nil, boom
		}, time.Minute)
		assert.ErrorIs(t, err, boom)
	})
}

func TestCache_Counters(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t)

	val, err := cache.Increment(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, int64(1), val)

	val, err = cache.Increment(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, int64(2), val)

	val, err = cache.IncrementBy(ctx, "counter", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(7), val)

	val, err = cache.IncrementBy(ctx, "counter", -2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), val)
}

func TestCache_SetNX(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t)

	ok, err := cache.SetNX(ctx, "lock", "first", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = cache.SetNX(ctx, "lock", "second", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	var got string
	require.NoError(t, cache.Get(ctx, "lock", &got))
	assert.Equal(t, "first", got)
}

func TestCache_Flush(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t)

	require.NoError(t, cache.Set(ctx, "a", "1"))
	require.NoError(t, cache.Set(ctx, "b", "2"))

	require.NoError(t, cache.Flush(ctx))

	var got string
	assert.ErrorIs(t, cache.Get(ctx, "a", &got), redis_a.ErrCacheMiss)
	assert.ErrorIs(t, cache.Get(ctx, "b", &got), redis_a.ErrCacheMiss)
}

func TestBuildKey(t *testing.T) {
	assert.Equal(t, "inv:42:details",
		redis_a.BuildKey(redis_a.PrefixInventory, "42", "details"))
	assert.Equal(t, "catalog:entries",
		redis_a.BuildKey(redis_a.PrefixCatalog, "entries"))
	assert.Equal(t, "session",
		redis_a.BuildKey(redis_a.PrefixSession))
}
