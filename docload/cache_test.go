package docload

import (
	"testing"
	"time"

	"github.com/goodluckxu-go/apidoc/openapi"
	"github.com/stretchr/testify/assert"
)

func cacheDoc(title string) *openapi.OpenAPI {
	return &openapi.OpenAPI{
		OpenAPI: "3.1.0",
		Info:    &openapi.Info{Title: title, Version: "1.0.0"},
	}
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	cache := NewMemoryCache(time.Minute)
	cache.Put("https://example.com/doc", cacheDoc("Pets"))

	doc, ok := cache.Get("https://example.com/doc")
	assert.True(t, ok)
	assert.Equal(t, "Pets", doc.Info.Title)

	_, ok = cache.Get("https://example.com/other")
	assert.False(t, ok)
}

func TestMemoryCacheExpiry(t *testing.T) {
	cache := NewMemoryCache(30 * time.Millisecond)
	cache.Put("source", cacheDoc("Stale"))

	_, ok := cache.Get("source")
	assert.True(t, ok)

	time.Sleep(60 * time.Millisecond)
	_, ok = cache.Get("source")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Stats().Entries)
}

func TestMemoryCacheStats(t *testing.T) {
	cache := NewMemoryCache(time.Minute)
	cache.Put("a", cacheDoc("A"))

	cache.Get("a")
	cache.Get("a")
	cache.Get("missing")

	stats := cache.Stats()
	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, uint64(2), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
}

func TestMemoryCachePurge(t *testing.T) {
	cache := NewMemoryCache(time.Minute)
	cache.Put("a", cacheDoc("A"))
	cache.Put("b", cacheDoc("B"))
	cache.Purge()

	assert.Equal(t, 0, cache.Stats().Entries)
	_, ok := cache.Get("a")
	assert.False(t, ok)
}
