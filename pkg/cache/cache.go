// Package cache provides a small in-memory TTL cache used to reuse
// router responses between scrapes.
package cache

import (
	"sync"
	"time"
)

type item[T any] struct {
	value      T
	expiration time.Time
}

func (it item[T]) expired(now time.Time) bool {
	return !it.expiration.IsZero() && now.After(it.expiration)
}

// Stats reports cache effectiveness counters.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

// Cache is an in-memory key/value store whose entries expire after the
// configured TTL. A zero TTL disables expiration.
type Cache[T any] struct {
	mu     sync.RWMutex
	items  map[string]item[T]
	ttl    time.Duration
	hits   int64
	misses int64
	now    func() time.Time

	janitor *time.Ticker
	stop    chan struct{}
}

// New creates a cache whose entries live for ttl.
func New[T any](ttl time.Duration) *Cache[T] {
	return &Cache[T]{
		items: make(map[string]item[T]),
		ttl:   ttl,
		now:   time.Now,
	}
}

// NewWithJanitor creates a cache that evicts expired entries in the
// background. Stop releases the janitor.
func NewWithJanitor[T any](ttl time.Duration) *Cache[T] {
	c := New[T](ttl)
	if ttl <= 0 {
		return c
	}
	c.janitor = time.NewTicker(ttl / 2)
	c.stop = make(chan struct{})
	go func() {
		for {
			select {
			case <-c.janitor.C:
				c.Cleanup()
			case <-c.stop:
				return
			}
		}
	}()
	return c
}

// Get retrieves a live value.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	it, found := c.items[key]
	if !found || it.expired(c.now()) {
		c.misses++
		var zero T
		return zero, false
	}
	c.hits++
	return it.value, true
}

// Set stores a value under key with the cache TTL.
func (c *Cache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expiration time.Time
	if c.ttl > 0 {
		expiration = c.now().Add(c.ttl)
	}
	c.items[key] = item[T]{value: value, expiration: expiration}
}

// Delete removes key from the cache.
func (c *Cache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}

// Clear removes every entry.
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]item[T])
}

// Cleanup removes expired entries.
func (c *Cache[T]) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, it := range c.items {
		if it.expired(now) {
			delete(c.items, key)
		}
	}
}

// Stats returns hit and miss counters together with the live size.
func (c *Cache[T]) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Stats{Hits: c.hits, Misses: c.misses, Size: len(c.items)}
}

// Stop shuts down the background janitor if one is running.
func (c *Cache[T]) Stop() {
	if c.stop != nil {
		close(c.stop)
		c.janitor.Stop()
		c.stop = nil
	}
}
