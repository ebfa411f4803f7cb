package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-pipeline-cache/cache"
)

// Namespace prefixes every exported metric.
const Namespace = "quicklists"

// StatsSource provides the cache counters to export.
type StatsSource interface {
	GetStatistics() cache.Statistics
}

// Sizer is implemented by stores that can report their entry count.
type Sizer interface {
	Size() int
}

// Collector owns a private Prometheus registry. Cache figures are read from
// the StatsSource at scrape time, so the counters are never recorded twice.
type Collector struct {
	registry *prometheus.Registry

	CacheHits     prometheus.CounterFunc
	CacheMisses   prometheus.CounterFunc
	CacheHitRatio prometheus.GaugeFunc

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// NewCollector registers the cache and HTTP metrics. store is optional; when
// it reports a size, an entry gauge is exported too.
func NewCollector(stats StatsSource, store any) *Collector {
	registry := prometheus.NewRegistry()

	cacheHits := prometheus.NewCounterFunc(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "cache_hits_total",
			Help:      "Total number of cache hits",
		},
		func() float64 { return float64(stats.GetStatistics().TotalHits) },
	)

	cacheMisses := prometheus.NewCounterFunc(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "cache_misses_total",
			Help:      "Total number of cache misses",
		},
		func() float64 { return float64(stats.GetStatistics().TotalMisses) },
	)

	hitRatio := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "cache_hit_ratio",
			Help:      "Cache hits divided by lookups, 0 before the first lookup",
		},
		func() float64 { return stats.GetStatistics().HitRate },
	)

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	registry.MustRegister(cacheHits, cacheMisses, hitRatio, httpRequests, httpDuration)

	if sizer, ok := store.(Sizer); ok {
		registry.MustRegister(prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      "cache_entries",
				Help:      "Number of entries held by the cache store",
			},
			func() float64 { return float64(sizer.Size()) },
		))
	}

	return &Collector{
		registry:      registry,
		CacheHits:     cacheHits,
		CacheMisses:   cacheMisses,
		CacheHitRatio: hitRatio,
		HTTPRequests:  httpRequests,
		HTTPDuration:  httpDuration,
	}
}

// Registry exposes the underlying registry, mostly for tests.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ObserveHTTP records one served request.
func (c *Collector) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
