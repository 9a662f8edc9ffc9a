package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRUCacheGetSet(t *testing.T) {
	c := NewLRUCache[string](4, 0)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("netflix", "entertainment")
	got, ok := c.Get("netflix")
	require.True(t, ok)
	assert.Equal(t, "entertainment", got)

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.Size)
}

func TestLRUCacheEvictsOldest(t *testing.T) {
	c := NewLRUCache[int](2, 0)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	_, ok := c.Get("a")
	assert.False(t, ok, "oldest entry should have been evicted")

	_, ok = c.Get("b")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Evictions)
	assert.Equal(t, 2, stats.Size)
}

func TestLRUCacheGetRefreshesRecency(t *testing.T) {
	c := NewLRUCache[int](2, 0)

	c.Set("a", 1)
	c.Set("b", 2)

	// Touching a makes b the eviction candidate.
	_, ok := c.Get("a")
	require.True(t, ok)

	c.Set("c", 3)

	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestLRUCacheSetExistingKeyUpdatesWithoutEviction(t *testing.T) {
	c := NewLRUCache[int](2, 0)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("a", 10)

	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 10, got)

	_, ok = c.Get("b")
	assert.True(t, ok)
	assert.Equal(t, int64(0), c.Stats().Evictions)
}

func TestLRUCacheTTLExpiry(t *testing.T) {
	c := NewLRUCache[string](4, 10*time.Millisecond)

	c.Set("a", "x")
	time.Sleep(25 * time.Millisecond)

	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, int64(1), c.Stats().Misses)
}

func TestLRUCacheZeroTTLNeverExpires(t *testing.T) {
	c := NewLRUCache[string](4, 0)

	c.Set("a", "x")
	time.Sleep(15 * time.Millisecond)

	_, ok := c.Get("a")
	assert.True(t, ok)
	assert.Zero(t, c.CleanExpired())
}

func TestLRUCacheCleanExpired(t *testing.T) {
	c := NewLRUCache[int](8, 10*time.Millisecond)

	c.Set("a", 1)
	c.Set("b", 2)
	time.Sleep(25 * time.Millisecond)
	c.Set("c", 3)

	removed := c.CleanExpired()
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, c.Size())
}

func TestLRUCacheDelete(t *testing.T) {
	c := NewLRUCache[int](4, 0)

	c.Set("a", 1)
	c.Delete("a")
	c.Delete("never-existed")

	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Zero(t, c.Size())
}
