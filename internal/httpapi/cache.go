package httpapi

import (
	"net/http"

	"github.com/goliatone/go-pipeline-cache/internal/checklists"
)

// StatsResponse is the operator view of the cache counters. HitRate is a
// percentage with two decimals, e.g. "66.67%".
type StatsResponse struct {
	TotalHits   int64  `json:"totalHits"`
	TotalMisses int64  `json:"totalMisses"`
	HitRate     string `json:"hitRate"`
}

// GET /api/cache/stats
func (rt *Router) cacheStats(w http.ResponseWriter, r *http.Request) {
	stats := rt.stats.GetStatistics()
	writeJSON(w, http.StatusOK, StatsResponse{
		TotalHits:   stats.TotalHits,
		TotalMisses: stats.TotalMisses,
		HitRate:     stats.HitRatePercent(),
	})
}

// POST /api/cache/flush
func (rt *Router) flushCache(w http.ResponseWriter, r *http.Request) {
	if _, err := rt.sender.Send(r.Context(), checklists.FlushChecklists{}); err != nil {
		rt.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
