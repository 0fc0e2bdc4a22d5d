package cache

import (
	"sync"
	"time"
)

// Cache is a thread-safe key-value store with per-key expiry.
type Cache struct {
	m sync.Map
}

// NewCache creates a new Cache instance.
func NewCache() *Cache {
	return &Cache{}
}

// cacheItem holds a value and its expiration time.
type cacheItem struct {
	Value     interface{}
	ExpiresAt int64 // Unix timestamp in nanoseconds; 0 means no expiration
}

// Set stores a value for a key. A zero ttl never expires.
func (c *Cache) Set(key string, value interface{}, ttl time.Duration) {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl).UnixNano()
	}
	c.m.Store(key, cacheItem{Value: value, ExpiresAt: expiresAt})
}

// Get returns (value, true) if found and not expired, (nil, false) otherwise.
func (c *Cache) Get(key string) (interface{}, bool) {
	v, ok := c.m.Load(key)
	if !ok {
		return nil, false
	}
	item := v.(cacheItem)
	if item.ExpiresAt > 0 && time.Now().UnixNano() > item.ExpiresAt {
		c.m.Delete(key)
		return nil, false
	}
	return item.Value, true
}

// GetOrDefault returns the stored value or def when absent.
func (c *Cache) GetOrDefault(key string, def interface{}) interface{} {
	if v, ok := c.Get(key); ok {
		return v
	}
	return def
}

// Pop returns and removes a value.
func (c *Cache) Pop(key string) (interface{}, bool) {
	v, ok := c.Get(key)
	if ok {
		c.m.Delete(key)
	}
	return v, ok
}

// Delete removes a key from the cache.
func (c *Cache) Delete(key string) {
	c.m.Delete(key)
}

// Purge drops expired entries and returns how many were removed.
func (c *Cache) Purge() int {
	now := time.Now().UnixNano()
	n := 0
	c.m.Range(func(key, value interface{}) bool {
		if item := value.(cacheItem); item.ExpiresAt > 0 && now > item.ExpiresAt {
			c.m.Delete(key)
			n++
		}
		return true
	})
	return n
}
