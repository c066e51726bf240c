// Package cache is a small get-or-compute lookup cache. Invalidation is the
// caller's job and must run synchronously inside the same path that mutates
// the underlying row.
package cache

import "sync"

type Cache[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]V
}

func New[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{entries: make(map[K]V)}
}

// GetOrCompute returns the cached value or computes and stores it. Two
// concurrent misses may both compute; the second write wins, which is fine
// for read-through caching of immutable-until-invalidated rows.
func (c *Cache[K, V]) GetOrCompute(key K, compute func() (V, error)) (V, error) {
	c.mu.RLock()
	value, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return value, nil
	}

	value, err := compute()
	if err != nil {
		var zero V
		return zero, err
	}

	c.mu.Lock()
	c.entries[key] = value
	c.mu.Unlock()

	return value, nil
}

func (c *Cache[K, V]) Invalidate(key K) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
