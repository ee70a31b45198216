package cachemanager

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type lineKey string

func TestInMemoryCacheManager_GetSet(t *testing.T) {
	c := NewInMemoryCacheManager[lineKey, string]("test", DefaultExpiration, DefaultCleanupInterval)

	_, ok := c.Get("a")
	require.False(t, ok)

	c.Set("a", "alpha", 0)
	got, ok := c.Get("a")
	require.True(t, ok)
	require.Equal(t, "alpha", got)
	require.Equal(t, 1, c.Len())

	c.Delete("a", "missing")
	_, ok = c.Get("a")
	require.False(t, ok)
}

func TestInMemoryCacheManager_Expiry(t *testing.T) {
	c := NewInMemoryCacheManager[lineKey, int]("test", DefaultExpiration, DefaultCleanupInterval)

	c.Set("short", 1, time.Millisecond)
	require.Eventually(t, func() bool {
		_, ok := c.Get("short")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestInMemoryCacheManager_Flush(t *testing.T) {
	c := NewInMemoryCacheManager[lineKey, int]("test", DefaultExpiration, DefaultCleanupInterval)
	c.Set("a", 1, 0)
	c.Set("b", 2, 0)

	c.Flush()
	require.Zero(t, c.Len())
}

func TestReadThroughCache(t *testing.T) {
	calls := 0
	r := NewReadThroughCache[lineKey, int, string](
		NewInMemoryCacheManager[lineKey, int]("test", DefaultExpiration, DefaultCleanupInterval),
		func(s string) int {
			calls++
			return len(s)
		},
		0,
	)

	require.Equal(t, 5, r.Get("k", "hello"))
	require.Equal(t, 5, r.Get("k", "ignored on a hit"))
	require.Equal(t, 1, calls)

	r.Flush()
	require.Equal(t, 7, r.Get("k", "goodbye"))
	require.Equal(t, 2, calls)
}
