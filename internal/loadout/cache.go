package loadout

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

// cachedLoadoutEntry wraps a loadout summary with version metadata for cache invalidation
type cachedLoadoutEntry struct {
	Version  string          `json:"version"`
	Loadouts []WeaponLoadout `json:"loadouts"`
	CachedAt time.Time       `json:"cached_at"`
}

// summaryCache provides an in-memory LRU cache for per-owner loadout
// summaries with time-based expiration and version-based invalidation.
type summaryCache struct {
	lru *expirable.LRU[string, *cachedLoadoutEntry]
}

// newSummaryCache creates a new summary cache with the specified size and TTL.
func newSummaryCache(size int, ttl time.Duration) *summaryCache {
	return &summaryCache{
		lru: expirable.NewLRU[string, *cachedLoadoutEntry](size, nil, ttl),
	}
}

// Get retrieves a loadout summary from the cache.
// Returns (summary, true) if found and version matches.
// Automatically invalidates entries with mismatched versions.
func (c *summaryCache) Get(ownerID string) ([]WeaponLoadout, bool) {
	entry, found := c.lru.Get(ownerID)
	if !found {
		return nil, false
	}

	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(ownerID)
		return nil, false
	}

	return entry.Loadouts, true
}

// Set stores a loadout summary in the cache with current schema version.
func (c *summaryCache) Set(ownerID string, loadouts []WeaponLoadout) {
	c.lru.Add(ownerID, &cachedLoadoutEntry{
		Version:  CacheSchemaVersion,
		Loadouts: loadouts,
		CachedAt: time.Now(),
	})
}

// Invalidate removes an owner's summary from the cache.
// Called after any mutation of that owner's armory.
func (c *summaryCache) Invalidate(ownerID string) {
	c.lru.Remove(ownerID)
}

// Clear removes all entries from the cache.
func (c *summaryCache) Clear() {
	c.lru.Purge()
}

// Len returns the number of cached summaries.
func (c *summaryCache) Len() int {
	return c.lru.Len()
}
