package querycache

import (
	"strings"
	"time"
)

// DefaultCacheDuration applies to Cacheable policies that leave Duration unset.
const DefaultCacheDuration = 5 * time.Minute

// Wildcard marks an invalidation target as a pattern when it is the
// target's last character.
const Wildcard = "*"

// Policy is the caching capability a request declares. The set of variants
// is closed: Cacheable and Invalidate.
type Policy interface {
	isPolicy()
}

// PolicyProvider is implemented by requests that take part in caching.
// Requests that do not implement it pass through the middleware untouched.
type PolicyProvider interface {
	CachePolicy() Policy
}

// Cacheable marks a read request whose response is cached under Key.
type Cacheable struct {
	Key      string
	Duration time.Duration
}

func (Cacheable) isPolicy() {}

// TTL returns Duration, or DefaultCacheDuration when Duration is not positive.
func (c Cacheable) TTL() time.Duration {
	if c.Duration <= 0 {
		return DefaultCacheDuration
	}
	return c.Duration
}

// Invalidate marks a write request that evicts Targets after it succeeds.
// A target is either an exact key or a pattern followed by Wildcard, as in
// "checklists:*".
type Invalidate struct {
	Targets []string
}

func (Invalidate) isPolicy() {}

// CacheFor is shorthand for a Cacheable policy.
func CacheFor(key string, duration time.Duration) Policy {
	return Cacheable{Key: key, Duration: duration}
}

// Evict is shorthand for an Invalidate policy.
func Evict(targets ...string) Policy {
	return Invalidate{Targets: targets}
}

// PatternTarget turns a pattern into a wildcard target: "checklists:" ->
// "checklists:*".
func PatternTarget(pattern string) string {
	return pattern + Wildcard
}

// splitTarget reports whether target is a wildcard and returns the literal
// pattern with exactly one trailing Wildcard removed.
func splitTarget(target string) (string, bool) {
	if strings.HasSuffix(target, Wildcard) {
		return strings.TrimSuffix(target, Wildcard), true
	}
	return target, false
}
