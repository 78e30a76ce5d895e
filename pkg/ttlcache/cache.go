// Package ttlcache provides a size-bounded, TTL-expiring in-memory cache.
// It is instantiated once per concern (catalog lookups, catalog searches,
// validation verdicts) rather than duplicating cache logic per caller.
package ttlcache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value      V
	insertedAt time.Time
}

// Cache is a concurrency-safe map with TTL expiry checked lazily on read and
// oldest-insertion eviction once the size bound is reached. Writes that race
// on the same key are last-writer-wins.
type Cache[K comparable, V any] struct {
	mu         sync.Mutex
	entries    map[K]entry[V]
	order      []K // insertion order, oldest first
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// New creates a cache holding at most maxEntries values, each expiring ttl
// after insertion.
func New[K comparable, V any](ttl time.Duration, maxEntries int) *Cache[K, V] {
	return &Cache[K, V]{
		entries:    make(map[K]entry[V]),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get returns the cached value for key if it exists and has not expired.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V

		return zero, false
	}

	if c.now().Sub(e.insertedAt) > c.ttl {
		delete(c.entries, key)
		c.removeFromOrder(key)

		var zero V

		return zero, false
	}

	return e.value, true
}

// Set stores value under key, overwriting any previous entry and evicting the
// oldest insertion when the cache is full.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.removeFromOrder(key)
	} else if len(c.entries) >= c.maxEntries {
		c.evictOldest()
	}

	c.entries[key] = entry[V]{value: value, insertedAt: c.now()}
	c.order = append(c.order, key)
}

// Delete removes key from the cache if present.
func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		delete(c.entries, key)
		c.removeFromOrder(key)
	}
}

// Len returns the number of entries currently held, expired or not.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Purge drops every entry.
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]entry[V])
	c.order = nil
}

func (c *Cache[K, V]) evictOldest() {
	if len(c.order) == 0 {
		return
	}

	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.entries, oldest)
}

func (c *Cache[K, V]) removeFromOrder(key K) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)

			return
		}
	}
}
