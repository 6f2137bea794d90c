package icon

import (
	"sync"
	"sync/atomic"

	"github.com/yourusername/niri-mirror/internal/logging"
)

// Resolver finds the icon path for an application id
type Resolver interface {
	Find(appID string) string
}

// Cache memoizes appID -> icon path lookups, including misses.
// It is safe for concurrent use.
type Cache struct {
	resolver Resolver

	mu         sync.RWMutex
	entries    map[string]string
	generation atomic.Uint64
}

// NewCache creates an empty cache backed by resolver
func NewCache(resolver Resolver) *Cache {
	return &Cache{
		resolver: resolver,
		entries:  make(map[string]string),
	}
}

// Lookup returns the icon path for appID, or "" if none was found
func (c *Cache) Lookup(appID string) string {
	if appID == "" {
		return ""
	}

	c.mu.RLock()
	path, ok := c.entries[appID]
	c.mu.RUnlock()
	if ok {
		return path
	}

	path = c.resolver.Find(appID)
	if path == "" {
		logging.Debug().Str("app_id", appID).Msg("no icon found")
	} else {
		logging.Debug().Str("app_id", appID).Str("path", path).Msg("resolved icon")
	}

	c.mu.Lock()
	c.entries[appID] = path
	c.mu.Unlock()
	return path
}

// Invalidate drops every cached entry and bumps the generation
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[string]string)
	c.mu.Unlock()
	c.generation.Add(1)
}

// Generation counts Invalidate calls. Holders of earlier answers compare it
// to decide whether to look them up again.
func (c *Cache) Generation() uint64 {
	return c.generation.Load()
}

// Len returns the number of cached entries
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
