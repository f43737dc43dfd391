package data

import (
	"sync"
	"time"

	"solar-saver/internal/model"
)

type cacheEntry struct {
	series    model.Series
	expiresAt time.Time
}

// ResponseCache is an in-memory TTL cache for fetched price series, so that
// repeat simulations of the same day and region skip the network. It is
// constructed explicitly and handed to the clients that want it; a nil
// *ResponseCache is valid and disables caching.
type ResponseCache struct {
	mu    sync.RWMutex
	store map[string]cacheEntry
	ttl   time.Duration
}

// NewResponseCache creates a cache with the given TTL and starts a
// background sweep of expired entries.
func NewResponseCache(ttl time.Duration) *ResponseCache {
	c := &ResponseCache{
		store: make(map[string]cacheEntry),
		ttl:   ttl,
	}
	go c.cleanup()
	return c
}

// Get retrieves a cached series if present and not expired.
func (c *ResponseCache) Get(key string) (model.Series, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.store[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.series, true
}

// Set stores a series under key.
func (c *ResponseCache) Set(key string, s model.Series) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = cacheEntry{
		series:    s,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Clear removes all entries.
func (c *ResponseCache) Clear() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = make(map[string]cacheEntry)
}

func (c *ResponseCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for key, entry := range c.store {
			if now.After(entry.expiresAt) {
				delete(c.store, key)
			}
		}
		c.mu.Unlock()
	}
}
