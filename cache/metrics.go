package cache

import (
	"fmt"
	"sync/atomic"
)

// Statistics is a snapshot of hit/miss counters.
type Statistics struct {
	TotalHits   int64   `json:"totalHits"`
	TotalMisses int64   `json:"totalMisses"`
	HitRate     float64 `json:"hitRate"`
}

// HitRatePercent formats HitRate for display, e.g. "66.67%".
func (s Statistics) HitRatePercent() string {
	return fmt.Sprintf("%.2f%%", s.HitRate*100)
}

// Metrics counts cache hits and misses for the process lifetime.
// The zero value is ready to use.
type Metrics struct {
	hits   atomic.Int64
	misses atomic.Int64
}

// NewMetrics returns a collector with both counters at zero.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordHit increments the hit counter.
func (m *Metrics) RecordHit() {
	m.hits.Add(1)
}

// RecordMiss increments the miss counter.
func (m *Metrics) RecordMiss() {
	m.misses.Add(1)
}

// GetStatistics reads both counters and derives the hit rate. The two reads
// are not taken together, a concurrent update may land between them.
func (m *Metrics) GetStatistics() Statistics {
	hits := m.hits.Load()
	misses := m.misses.Load()

	var rate float64
	if total := hits + misses; total > 0 {
		rate = float64(hits) / float64(total)
	}

	return Statistics{
		TotalHits:   hits,
		TotalMisses: misses,
		HitRate:     rate,
	}
}
