package rates

import (
	"context"
	"sync"
	"time"
)

// Cache serves the last fetched rate table until it expires, refreshing at
// most once per TTL window. Fetch never fails, so readers always get a
// usable table; a stale table during a concurrent refresh is acceptable.
type Cache struct {
	mu      sync.RWMutex
	client  *Client
	table   Table
	expires time.Time
	ttl     time.Duration
}

// NewCache creates a rate cache with the given TTL.
func NewCache(client *Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Table returns the current rate table, refreshing it if expired.
func (c *Cache) Table(ctx context.Context) Table {
	c.mu.RLock()
	if c.table != nil && time.Now().Before(c.expires) {
		table := c.table
		c.mu.RUnlock()
		return table
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	// Another caller may have refreshed while we waited for the lock.
	if c.table != nil && time.Now().Before(c.expires) {
		return c.table
	}
	c.table = c.client.Fetch(ctx)
	c.expires = time.Now().Add(c.ttl)
	return c.table
}

// Clear drops the cached table so the next read refreshes.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.table = nil
}
