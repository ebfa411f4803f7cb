// Package httpapi exposes the checklist requests and the cache statistics
// over HTTP.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/goliatone/go-pipeline-cache/cache"
	"github.com/goliatone/go-pipeline-cache/internal/observability"
	"github.com/goliatone/go-pipeline-cache/pipeline"
)

// StatsSource provides the counters shown by the statistics endpoint.
type StatsSource interface {
	GetStatistics() cache.Statistics
}

// Router builds the HTTP handler tree.
type Router struct {
	sender    pipeline.Sender
	stats     StatsSource
	collector *observability.Collector
	logger    *zap.Logger
}

// NewRouter creates a router. collector may be nil, in which case neither
// /metrics nor HTTP metrics are served.
func NewRouter(sender pipeline.Sender, stats StatsSource, collector *observability.Collector, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		sender:    sender,
		stats:     stats,
		collector: collector,
		logger:    logger,
	}
}

// Setup configures all routes and middleware.
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(rt.requestLogger)

	router.NotFound(rt.notFound)
	router.Get("/health", rt.health)
	if rt.collector != nil {
		router.Method(http.MethodGet, "/metrics", rt.collector.Handler())
	}

	router.Route("/api", func(r chi.Router) {
		r.Route("/checklists", func(r chi.Router) {
			r.Get("/", rt.listChecklists)
			r.Post("/", rt.createChecklist)
			r.Get("/{id}", rt.getChecklist)
			r.Put("/{id}", rt.updateChecklist)
			r.Delete("/{id}", rt.deleteChecklist)
			r.Get("/{id}/items", rt.listItems)
			r.Post("/{id}/items", rt.createItem)
			r.Patch("/{id}/reset", rt.resetItems)
		})

		r.Route("/items", func(r chi.Router) {
			r.Put("/{id}", rt.updateItem)
			r.Patch("/{id}/toggle", rt.toggleItem)
			r.Delete("/{id}", rt.deleteItem)
		})

		r.Route("/cache", func(r chi.Router) {
			r.Get("/stats", rt.cacheStats)
			r.Post("/flush", rt.flushCache)
		})
	})

	return router
}

func (rt *Router) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// requestLogger logs each request and feeds the HTTP metrics.
func (rt *Router) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		rt.logger.Info("http request",
			zap.String("method", r.Method),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("duration", elapsed),
			zap.String("request_id", chimiddleware.GetReqID(r.Context())))

		if rt.collector != nil {
			rt.collector.ObserveHTTP(r.Method, route, status, elapsed)
		}
	})
}
