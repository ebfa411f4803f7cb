package testsupport

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// LoadFixture loads test data from a fixture file.
// The path is relative to the test package directory.
func LoadFixture(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to load fixture from %s: %v", path, err)
	}

	return data
}

// TempFile creates a temporary file with the given content for testing.
// The file is removed when the test finishes.
func TempFile(t *testing.T, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to write temp file %s: %v", path, err)
	}

	return path
}

// FixturePath constructs a path to a fixture file relative to the testdata directory.
func FixturePath(filename string) string {
	return filepath.Join("testdata", filename)
}

// FakeClock is a manually advanced time source.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock returns a clock frozen at start.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// CountingHandler wraps a handler function and counts its invocations.
// Its Handle method matches the pipeline handler signature.
type CountingHandler struct {
	calls atomic.Int64
	fn    func(ctx context.Context, req any) (any, error)
}

// NewCountingHandler returns a CountingHandler delegating to fn.
// A nil fn makes Handle return (nil, nil).
func NewCountingHandler(fn func(ctx context.Context, req any) (any, error)) *CountingHandler {
	return &CountingHandler{fn: fn}
}

// Handle records the call and delegates.
func (h *CountingHandler) Handle(ctx context.Context, req any) (any, error) {
	h.calls.Add(1)
	if h.fn == nil {
		return nil, nil
	}
	return h.fn(ctx, req)
}

// Calls reports how many times Handle ran.
func (h *CountingHandler) Calls() int {
	return int(h.calls.Load())
}
