// Package mem provides a bounded in-process cache with per-entry expiry.
package mem

import (
	"sync"
	"time"

	"github.com/golang/groupcache/lru"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache is an LRU bounded to a fixed number of entries. Expired entries are
// dropped lazily on read; no timers or goroutines are involved.
type TTLCache[V any] struct {
	mu  sync.Mutex
	lru *lru.Cache
	ttl time.Duration
	now func() time.Time
}

func NewTTLCache[V any](maxEntries int, ttl time.Duration) *TTLCache[V] {
	if maxEntries <= 0 {
		maxEntries = 1
	}
	return &TTLCache[V]{
		lru: lru.New(maxEntries),
		ttl: ttl,
		now: time.Now,
	}
}

func (c *TTLCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	raw, ok := c.lru.Get(key)
	if !ok {
		return zero, false
	}
	e := raw.(entry[V])
	if c.ttl > 0 && c.now().After(e.expiresAt) {
		c.lru.Remove(key)
		return zero, false
	}
	return e.value, true
}

func (c *TTLCache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(key, entry[V]{value: value, expiresAt: c.now().Add(c.ttl)})
}

func (c *TTLCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}
