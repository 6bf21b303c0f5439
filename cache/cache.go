// Package cache provides result caching implementations for gosign.
package cache

// ResultCache is the interface for caching translation results.
type ResultCache interface {
	// Get retrieves a cached value. Returns empty string and false if not found or expired.
	Get(key string) (string, bool)

	// Set stores a value in the cache.
	Set(key string, value string) error
}
