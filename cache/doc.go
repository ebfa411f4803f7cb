// Package cache provides the storage side of the pipeline cache: a TTL
// key/value Store, the pattern KeyRegistry and hit/miss Metrics.
//
// # Overview
//
// This package exports the building blocks the querycache middleware is
// wired from:
//
//   - Store: an in-memory TTL key/value contract (Get, Set, Remove)
//   - KeyRegistry: pattern to key-set bookkeeping for bulk invalidation
//   - Metrics: process-wide hit/miss counters with a Statistics snapshot
//   - KeySerializer: builds keys in the "{resource}:{id}:{subresource}" form
//
// # Basic Usage
//
//	store, err := cache.NewStore(cache.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	registry := cache.NewKeyRegistry()
//
//	key := cache.Key("checklists", id, "items") // "checklists:<id>:items"
//	store.Set(key, items, 5*time.Minute)
//	registry.Register(key, cache.ExtractPattern(key)) // "checklists:"
//
//	for _, k := range registry.GetKeysMatchingPattern("checklists:") {
//		store.Remove(k)
//	}
//
// # Patterns
//
// A pattern is the key up to and including its first ":". It is the only
// grouping the registry understands; there is no glob matching. Keys that
// must be invalidated together therefore share their first segment.
//
// # Expiry
//
// The default Store is backed by sturdyc. sturdyc applies one lifetime to
// the whole client, so Config.MaxTTL caps every entry while the duration
// passed to Set is enforced per entry on read.
//
// # Registry growth
//
// KeyRegistry never forgets a key. Memory grows with the number of distinct
// keys ever cached, which is bounded for the key shapes used by this module
// (one key per resource id) but is worth watching for high-cardinality keys.
package cache
