package cache

import "time"

// Store is the TTL key/value contract the caching middleware consumes.
// It has no notion of patterns, KeyRegistry supplies that on top.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the value for key and whether an unexpired entry was found.
	Get(key string) (any, bool)
	// Set stores value under key with an absolute expiry of now + ttl.
	Set(key string, value any, ttl time.Duration)
	// Remove drops key. Removing an absent key is a no-op.
	Remove(key string)
}

// Lookup is a type-safe wrapper around Store.Get. A value stored under key
// with a different type is reported as a miss.
func Lookup[T any](store Store, key string) (T, bool) {
	var zero T

	value, ok := store.Get(key)
	if !ok {
		return zero, false
	}

	// a stored nil satisfies interface and pointer types as their zero value
	if value == nil {
		return zero, true
	}

	typed, ok := value.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
