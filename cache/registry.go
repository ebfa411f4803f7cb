package cache

import (
	"github.com/puzpuzpuz/xsync/v3"
)

// KeyRegistry tracks, per pattern, the set of concrete keys cached under it
// so a whole pattern can be invalidated on a Store that cannot enumerate by
// prefix.
//
// Keys are never pruned. A key stays listed under its pattern for the life
// of the registry, even after its entry expired or was invalidated; removing
// it again from the store is harmless.
type KeyRegistry struct {
	patterns *xsync.MapOf[string, *xsync.MapOf[string, struct{}]]
}

// NewKeyRegistry returns an empty registry.
func NewKeyRegistry() *KeyRegistry {
	return &KeyRegistry{
		patterns: xsync.NewMapOf[string, *xsync.MapOf[string, struct{}]](),
	}
}

// Register adds key to the set held for pattern, creating the set on first
// use. Registering the same pair twice is a no-op. Safe for concurrent use.
func (r *KeyRegistry) Register(key, pattern string) {
	keys, _ := r.patterns.LoadOrCompute(pattern, func() *xsync.MapOf[string, struct{}] {
		return xsync.NewMapOf[string, struct{}]()
	})
	keys.Store(key, struct{}{})
}

// GetKeysMatchingPattern returns a point-in-time copy of the keys registered
// under the exact pattern string. It is not a glob: callers pass the same
// prefix used at registration. Unknown patterns yield an empty slice.
func (r *KeyRegistry) GetKeysMatchingPattern(pattern string) []string {
	keys, ok := r.patterns.Load(pattern)
	if !ok {
		return []string{}
	}

	out := make([]string, 0, keys.Size())
	keys.Range(func(key string, _ struct{}) bool {
		out = append(out, key)
		return true
	})
	return out
}

// Patterns returns the patterns that have at least one registration.
func (r *KeyRegistry) Patterns() []string {
	out := make([]string, 0, r.patterns.Size())
	r.patterns.Range(func(pattern string, _ *xsync.MapOf[string, struct{}]) bool {
		out = append(out, pattern)
		return true
	})
	return out
}
