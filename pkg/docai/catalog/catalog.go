// Package catalog holds a process-wide read-through cache of provider
// metadata. The cache is an explicit struct constructed once at process
// start and injected where needed; populate-on-miss, no eviction beyond
// TTL expiry.
package catalog

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// ProviderInfo describes one configured backend as exposed by the
// providers endpoint.
type ProviderInfo struct {
	ID      string `json:"id"`
	Type    string `json:"type"` // "vision", "llm", "embedding"
	Model   string `json:"model"`
	Enabled bool   `json:"enabled"`
}

const cacheKey = "providers"

type Catalog struct {
	cache *cache.Cache
	load  func() []ProviderInfo
}

// New builds a catalog over a loader callback. The loader runs on cache
// miss only.
func New(load func() []ProviderInfo) *Catalog {
	return &Catalog{
		cache: cache.New(1*time.Hour, 10*time.Minute),
		load:  load,
	}
}

// List returns the cached provider snapshot, loading it on first use.
func (c *Catalog) List() []ProviderInfo {
	if x, found := c.cache.Get(cacheKey); found {
		return x.([]ProviderInfo)
	}
	infos := c.load()
	c.cache.Set(cacheKey, infos, cache.DefaultExpiration)
	return infos
}

// Invalidate drops the cached snapshot, forcing a reload on next List.
func (c *Catalog) Invalidate() {
	c.cache.Delete(cacheKey)
}
