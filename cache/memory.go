package cache

import (
	"sync"
	"time"
)

// memoryEntry records a translation result together with the time it was
// stored, so TTL checks can tell a fresh video URL from a stale one.
type memoryEntry struct {
	url      string
	storedAt time.Time
}

// InMemoryCache keeps translation results in a map guarded by a
// read-write mutex. Entries older than the TTL are dropped lazily on the
// next lookup. The cache is unbounded; prefer LRUCache when the set of
// translated texts grows without limit.
type InMemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

// NewInMemoryCache creates an in-memory cache whose entries expire after
// ttlSeconds. A zero or negative TTL keeps entries forever, which suits
// translation results since a text maps to the same video for the life
// of the avatar model.
func NewInMemoryCache(ttlSeconds int) *InMemoryCache {
	var ttl time.Duration
	if ttlSeconds > 0 {
		ttl = time.Duration(ttlSeconds) * time.Second
	}
	return &InMemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

// Get returns the cached video URL for key. Expired entries are removed
// and reported as a miss.
func (c *InMemoryCache) Get(key string) (string, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return "", false
	}
	if c.expired(entry, time.Now()) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return "", false
	}
	return entry.url, true
}

// Set stores the video URL for key, resetting its TTL clock.
func (c *InMemoryCache) Set(key string, value string) error {
	c.mu.Lock()
	c.entries[key] = memoryEntry{url: value, storedAt: time.Now()}
	c.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (c *InMemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear removes all entries from the cache.
func (c *InMemoryCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
}

// Entries returns the non-expired entries as key-value pairs, for cache
// export.
func (c *InMemoryCache) Entries() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := time.Now()
	result := make(map[string]string, len(c.entries))
	for key, entry := range c.entries {
		if c.expired(entry, now) {
			continue
		}
		result[key] = entry.url
	}
	return result
}

func (c *InMemoryCache) expired(entry memoryEntry, now time.Time) bool {
	return c.ttl > 0 && now.Sub(entry.storedAt) > c.ttl
}

// Verify InMemoryCache implements ResultCache
var _ ResultCache = (*InMemoryCache)(nil)
