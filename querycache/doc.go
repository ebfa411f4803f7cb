// Package querycache provides the caching behavior for the pipeline
// mediator: reads are served from cache and writes invalidate what they
// touch, without caching code in the handlers.
//
// # Declaring a policy
//
// A request opts in by implementing PolicyProvider and returning one of the
// two Policy variants:
//
//	type GetChecklistItems struct{ ChecklistID string }
//
//	func (q GetChecklistItems) CachePolicy() querycache.Policy {
//		return querycache.Cacheable{Key: cache.Key("checklists", q.ChecklistID, "items")}
//	}
//
//	type DeleteChecklist struct{ ID string }
//
//	func (c DeleteChecklist) CachePolicy() querycache.Policy {
//		return querycache.Evict(
//			cache.Key("checklists", c.ID),
//			cache.Key("checklists", c.ID, "items"),
//			"checklists:all",
//		)
//	}
//
// # Cacheable requests
//
//  1. Look up Key in the store
//  2. On a hit, record it and return the cached value; the handler does not run
//  3. On a miss, record it and run the handler
//  4. If the handler succeeded, store its result for TTL() and register Key
//     under its pattern (the key up to its first ":")
//
// Any successful result is cached, nil included; a handler error is returned
// unchanged and nothing is stored. Two concurrent misses for the same key
// both run the handler and the last write wins.
//
// # Invalidate requests
//
// The handler runs first. Only when it succeeds are the targets processed,
// in order: an exact key is removed from the store, a target ending in "*"
// removes every key registered under the pattern before the "*". Handlers
// can add targets they discover at run time with InvalidateLater.
//
// Pattern targets only see keys the registry knows about. The registry is
// never pruned, so a key cached again after an invalidation is found again
// by the next pass over its pattern.
package querycache
