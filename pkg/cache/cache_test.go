package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetGet(t *testing.T) {
	c := New[string](time.Minute)
	c.Set("model", "mt6000")

	got, ok := c.Get("model")
	require.True(t, ok)
	assert.Equal(t, "mt6000", got)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestCache_Expiry(t *testing.T) {
	now := time.Now()
	c := New[int](time.Minute)
	c.now = func() time.Time { return now }

	c.Set("uptime", 42)

	got, ok := c.Get("uptime")
	require.True(t, ok)
	assert.Equal(t, 42, got)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("uptime")
	assert.False(t, ok)
}

func TestCache_ZeroTTLNeverExpires(t *testing.T) {
	now := time.Now()
	c := New[int](0)
	c.now = func() time.Time { return now }

	c.Set("uptime", 42)
	now = now.Add(24 * time.Hour)

	got, ok := c.Get("uptime")
	require.True(t, ok)
	assert.Equal(t, 42, got)
}

func TestCache_DeleteAndClear(t *testing.T) {
	c := New[int](time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Clear()
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestCache_Cleanup(t *testing.T) {
	now := time.Now()
	c := New[int](time.Minute)
	c.now = func() time.Time { return now }

	c.Set("stale", 1)
	now = now.Add(2 * time.Minute)
	c.Set("fresh", 2)

	c.Cleanup()

	c.mu.RLock()
	_, staleKept := c.items["stale"]
	_, freshKept := c.items["fresh"]
	c.mu.RUnlock()
	assert.False(t, staleKept)
	assert.True(t, freshKept)
}

func TestCache_Stats(t *testing.T) {
	c := New[int](time.Minute)
	c.Set("a", 1)

	c.Get("a")
	c.Get("a")
	c.Get("missing")

	stats := c.Stats()
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.Size)
}

func TestCache_JanitorStop(t *testing.T) {
	c := NewWithJanitor[int](time.Minute)
	require.NotNil(t, c.janitor)
	c.Stop()
	c.Stop()
}
