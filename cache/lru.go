package cache

import (
	"container/list"
	"sync"
)

// LRUCache is a thread-safe bounded cache with least-recently-used
// eviction. Video URLs are small, so a few thousand entries cost little;
// the bound exists to keep long-running processes from growing without
// limit.
type LRUCache struct {
	capacity int
	mu       sync.Mutex
	order    *list.List // Front is most recently used
	items    map[string]*list.Element
}

// lruEntry is the element payload stored in the eviction list.
type lruEntry struct {
	key   string
	value string
}

// DefaultLRUCapacity is used when NewLRUCache gets a non-positive capacity.
const DefaultLRUCapacity = 1024

// NewLRUCache creates a bounded cache holding at most capacity entries.
func NewLRUCache(capacity int) *LRUCache {
	if capacity <= 0 {
		capacity = DefaultLRUCapacity
	}
	return &LRUCache{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[string]*list.Element),
	}
}

// Get retrieves a value and marks it as recently used.
func (c *LRUCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return "", false
	}

	c.order.MoveToFront(elem)
	return elem.Value.(*lruEntry).value, true
}

// Set stores a value, evicting the least-recently-used entry when full.
func (c *LRUCache) Set(key string, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		elem.Value.(*lruEntry).value = value
		c.order.MoveToFront(elem)
		return nil
	}

	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*lruEntry).key)
		}
	}

	c.items[key] = c.order.PushFront(&lruEntry{key: key, value: value})
	return nil
}

// Len returns the number of entries in the cache.
func (c *LRUCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Clear removes all entries from the cache.
func (c *LRUCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.items = make(map[string]*list.Element)
}

// Entries returns all entries as key-value pairs, for cache export.
func (c *LRUCache) Entries() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := make(map[string]string, len(c.items))
	for key, elem := range c.items {
		result[key] = elem.Value.(*lruEntry).value
	}
	return result
}

// Verify LRUCache implements ResultCache
var _ ResultCache = (*LRUCache)(nil)
