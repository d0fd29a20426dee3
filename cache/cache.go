package cache

import (
	"sync"
	"time"
)

type item[V any] struct {
	value     V
	expiresAt int64 // UnixNano, 0 means no expiration
}

func (it item[V]) expired(now int64) bool {
	return it.expiresAt != 0 && now > it.expiresAt
}

// Cache is a thread-safe generic key/value store with optional TTL support.
// The matrix runtime uses it to share state between steps (resolved plugin
// directory, artifact archive path) within a single run.
type Cache[K comparable, V any] struct {
	mu         sync.RWMutex
	items      map[K]item[V]
	defaultTTL time.Duration

	janitorOnce sync.Once
	janitor     *time.Ticker
	stopJanitor chan struct{}
}

// Option configures a Cache.
type Option[K comparable, V any] func(*Cache[K, V])

// WithDefaultTTL sets the TTL applied by Set.
func WithDefaultTTL[K comparable, V any](ttl time.Duration) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.defaultTTL = ttl
	}
}

// WithJanitorInterval enables periodic cleanup of expired items.
func WithJanitorInterval[K comparable, V any](interval time.Duration) Option[K, V] {
	return func(c *Cache[K, V]) {
		if interval > 0 {
			c.janitor = time.NewTicker(interval)
			c.stopJanitor = make(chan struct{})
		}
	}
}

// New creates a Cache with the given options.
func New[K comparable, V any](opts ...Option[K, V]) *Cache[K, V] {
	c := &Cache[K, V]{
		items: make(map[K]item[V]),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache[K, V]) startJanitor() {
	c.janitorOnce.Do(func() {
		if c.janitor == nil {
			return
		}
		go func() {
			for {
				select {
				case <-c.janitor.C:
					c.DeleteExpired()
				case <-c.stopJanitor:
					c.janitor.Stop()
					return
				}
			}
		}()
	})
}

// Set stores a value with the default TTL (no expiration if unset).
func (c *Cache[K, V]) Set(k K, v V) {
	c.SetWithTTL(k, v, c.defaultTTL)
}

// SetWithTTL stores a value expiring after ttl. Zero ttl means no expiration;
// a negative ttl deletes the key.
func (c *Cache[K, V]) SetWithTTL(k K, v V, ttl time.Duration) {
	if ttl < 0 {
		c.Delete(k)
		return
	}
	var expiresAt int64
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl).UnixNano()
		c.startJanitor()
	}
	c.mu.Lock()
	c.items[k] = item[V]{value: v, expiresAt: expiresAt}
	c.mu.Unlock()
}

// Get returns the value for k if present and not expired.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	var zero V
	c.mu.RLock()
	it, ok := c.items[k]
	c.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if it.expired(time.Now().UnixNano()) {
		c.Delete(k)
		return zero, false
	}
	return it.value, true
}

// GetOrSet returns the existing unexpired value for k, or stores v with the
// default TTL. The second result is true when the value was loaded.
func (c *Cache[K, V]) GetOrSet(k K, v V) (V, bool) {
	if existing, ok := c.Get(k); ok {
		return existing, true
	}
	c.Set(k, v)
	return v, false
}

// Delete removes k from the cache.
func (c *Cache[K, V]) Delete(k K) {
	c.mu.Lock()
	delete(c.items, k)
	c.mu.Unlock()
}

// DeleteExpired removes every expired item.
func (c *Cache[K, V]) DeleteExpired() {
	now := time.Now().UnixNano()
	c.mu.Lock()
	for k, it := range c.items {
		if it.expired(now) {
			delete(c.items, k)
		}
	}
	c.mu.Unlock()
}

// Range calls f for each unexpired key/value pair until f returns false.
// Iteration order is not defined.
func (c *Cache[K, V]) Range(f func(key K, value V) bool) {
	now := time.Now().UnixNano()
	c.mu.RLock()
	snapshot := make(map[K]V, len(c.items))
	for k, it := range c.items {
		if !it.expired(now) {
			snapshot[k] = it.value
		}
	}
	c.mu.RUnlock()
	for k, v := range snapshot {
		if !f(k, v) {
			return
		}
	}
}

// Clean removes all items.
func (c *Cache[K, V]) Clean() {
	c.mu.Lock()
	c.items = make(map[K]item[V])
	c.mu.Unlock()
}

// Len returns the number of stored items, expired ones included until collected.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Close stops the janitor goroutine if one is running.
func (c *Cache[K, V]) Close() {
	if c.stopJanitor != nil {
		select {
		case c.stopJanitor <- struct{}{}:
		default:
		}
	}
}
