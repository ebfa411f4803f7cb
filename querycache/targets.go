package querycache

import (
	"context"
	"sync"
)

type targetsContextKey struct{}

// targetCollector gathers invalidation targets a handler discovers while it
// runs. Handlers may fan out, so appends are locked.
type targetCollector struct {
	mu      sync.Mutex
	targets []string
}

func (c *targetCollector) add(targets ...string) {
	c.mu.Lock()
	c.targets = append(c.targets, targets...)
	c.mu.Unlock()
}

func (c *targetCollector) snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.targets...)
}

func withTargetCollector(ctx context.Context) (context.Context, *targetCollector) {
	c := &targetCollector{}
	return context.WithValue(ctx, targetsContextKey{}, c), c
}

// InvalidateLater queues extra invalidation targets from inside the handler
// of an Invalidate request, for keys only known once the handler has loaded
// its data (e.g. the parent checklist of an item). Targets use the same
// syntax as Invalidate.Targets and are processed after the declared ones,
// only if the handler succeeds.
//
// It reports false, and does nothing, when ctx does not belong to an
// Invalidate request.
func InvalidateLater(ctx context.Context, targets ...string) bool {
	if ctx == nil {
		return false
	}
	c, ok := ctx.Value(targetsContextKey{}).(*targetCollector)
	if !ok {
		return false
	}
	if len(targets) > 0 {
		c.add(targets...)
	}
	return true
}
