package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryCacheSetGet(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	in := payload{Name: "snapshot", Count: 3}
	require.NoError(t, mc.Set(ctx, "k", in, time.Minute))

	var out payload
	require.NoError(t, mc.Get(ctx, "k", &out))
	assert.Equal(t, in, out)
}

func TestMemoryCacheMiss(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()

	var out payload
	err := mc.Get(context.Background(), "absent", &out)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheExpiration(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "k", payload{Name: "x"}, 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	var out payload
	assert.ErrorIs(t, mc.Get(ctx, "k", &out), ErrCacheMiss)
}

func TestMemoryCacheDelete(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "a", payload{}, time.Minute))
	require.NoError(t, mc.Set(ctx, "b", payload{}, time.Minute))
	require.NoError(t, mc.Delete(ctx, "a", "b"))

	ok, err := mc.Exists(ctx, "a", "b")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCacheExists(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "a", payload{}, time.Minute))

	ok, err := mc.Exists(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = mc.Exists(ctx, "zzz")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCacheLRUEviction(t *testing.T) {
	mc := NewMemoryCache(WithMemoryMaxSize(2))
	defer mc.Close()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "first", payload{Count: 1}, time.Minute))
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, mc.Set(ctx, "second", payload{Count: 2}, time.Minute))
	time.Sleep(2 * time.Millisecond)

	// Touch "first" so "second" becomes least recently used.
	var out payload
	require.NoError(t, mc.Get(ctx, "first", &out))
	time.Sleep(2 * time.Millisecond)

	require.NoError(t, mc.Set(ctx, "third", payload{Count: 3}, time.Minute))

	assert.NoError(t, mc.Get(ctx, "first", &out))
	assert.ErrorIs(t, mc.Get(ctx, "second", &out), ErrCacheMiss)
}

func TestMemoryCacheOverwrite(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "k", payload{Count: 1}, time.Minute))
	require.NoError(t, mc.Set(ctx, "k", payload{Count: 2}, time.Minute))

	var out payload
	require.NoError(t, mc.Get(ctx, "k", &out))
	assert.Equal(t, 2, out.Count)
}
