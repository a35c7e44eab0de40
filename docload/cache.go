package docload

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goodluckxu-go/apidoc/openapi"
)

// Cache stores parsed documents between loads.
type Cache interface {
	Get(source string) (*openapi.OpenAPI, bool)
	Put(source string, doc *openapi.OpenAPI)
}

// MemoryCache is a TTL document cache keyed by source digest, safe for
// concurrent use.
type MemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry
	hits    atomic.Uint64
	misses  atomic.Uint64
}

type cacheEntry struct {
	doc      *openapi.OpenAPI
	storedAt time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &MemoryCache{
		ttl:     ttl,
		entries: map[string]cacheEntry{},
	}
}

func cacheKey(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

func (c *MemoryCache) Get(source string) (*openapi.OpenAPI, bool) {
	key := cacheKey(source)
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && time.Since(entry.storedAt) <= c.ttl {
		c.hits.Add(1)
		return entry.doc, true
	}
	if ok {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
	}
	c.misses.Add(1)
	return nil, false
}

func (c *MemoryCache) Put(source string, doc *openapi.OpenAPI) {
	c.mu.Lock()
	c.entries[cacheKey(source)] = cacheEntry{doc: doc, storedAt: time.Now()}
	c.mu.Unlock()
}

// Purge drops every entry, leaving the counters alone.
func (c *MemoryCache) Purge() {
	c.mu.Lock()
	c.entries = map[string]cacheEntry{}
	c.mu.Unlock()
}

type CacheStats struct {
	Entries int    `json:"entries"`
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
}

func (c *MemoryCache) Stats() CacheStats {
	c.mu.RLock()
	entries := len(c.entries)
	c.mu.RUnlock()
	return CacheStats{
		Entries: entries,
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}
}
