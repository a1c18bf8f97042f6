package service

import (
	"strings"
	"sync"
	"time"
)

/*
	========================================================
	  Cache TTL en memoria
========================================================
*/

const DefaultCacheTTL = 10 * time.Minute

type cacheEntry struct {
	items   []OAItem
	expires time.Time
}

// OACache: map con chequeo de TTL por lectura. Una instancia por proceso;
// el flush del admin lo vacía entero.
type OACache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry
}

func NewOACache(ttl time.Duration) *OACache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &OACache{ttl: ttl, entries: make(map[string]cacheEntry)}
}

// CacheKey normaliza la consulta para que "Matematica"/"matematica " peguen
// en la misma entrada.
func CacheKey(subject, level, unit string) string {
	norm := func(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
	return norm(subject) + "|" + norm(level) + "|" + norm(unit)
}

func (c *OACache) Get(key string) ([]OAItem, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expires) {
		return nil, false
	}
	return entry.items, true
}

func (c *OACache) Set(key string, items []OAItem) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{items: items, expires: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

func (c *OACache) Flush() int {
	c.mu.Lock()
	n := len(c.entries)
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
	return n
}
