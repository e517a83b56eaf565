package holiday

import (
	"fmt"
	"sync"
)

// Cache holds resolved calendars keyed by "year-mode". Entries live until
// Clear is called. It is owned by a Resolver instance rather than being
// process-wide, so tests and callers control its lifetime.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*Calendar
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*Calendar)}
}

// CacheKey returns the cache key for (year, mode), e.g. "2025-fiscal".
func CacheKey(year int, mode Mode) string {
	return fmt.Sprintf("%d-%s", year, mode)
}

func (c *Cache) Get(key string) (*Calendar, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cal, ok := c.entries[key]
	return cal, ok
}

func (c *Cache) Put(key string, cal *Calendar) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cal
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*Calendar)
}

// Len returns the number of cached calendars.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
