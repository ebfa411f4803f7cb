package querycache

import (
	"context"

	"github.com/goliatone/go-pipeline-cache/cache"
	"github.com/goliatone/go-pipeline-cache/pipeline"
	"go.uber.org/zap"
)

// Registry is the subset of cache.KeyRegistry the behavior needs.
type Registry interface {
	Register(key, pattern string)
	GetKeysMatchingPattern(pattern string) []string
}

// Recorder is the subset of cache.Metrics the behavior needs.
type Recorder interface {
	RecordHit()
	RecordMiss()
}

// Interface assertion to ensure Behavior plugs into the mediator pipeline
var _ pipeline.Behavior = (*Behavior)(nil)

// Behavior is the caching stage of the pipeline. It serves Cacheable
// requests from the store, fills the store on misses and evicts Invalidate
// targets after successful writes. Requests without a policy pass through.
//
// Behavior keeps no per-request state and is safe for concurrent use; the
// store, registry and metrics it is built with are shared by all requests.
type Behavior struct {
	store    cache.Store
	registry Registry
	metrics  Recorder
	logger   *zap.Logger
}

// New creates the caching behavior. A nil registry or metrics gets a fresh
// private instance, a nil logger discards output.
func New(store cache.Store, registry Registry, metrics Recorder, logger *zap.Logger) *Behavior {
	if registry == nil {
		registry = cache.NewKeyRegistry()
	}
	if metrics == nil {
		metrics = cache.NewMetrics()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Behavior{
		store:    store,
		registry: registry,
		metrics:  metrics,
		logger:   logger,
	}
}

// Handle applies the request's cache policy around next.
func (b *Behavior) Handle(ctx context.Context, req pipeline.Request, next pipeline.Next) (any, error) {
	provider, ok := req.(PolicyProvider)
	if !ok {
		return next(ctx)
	}

	switch policy := provider.CachePolicy().(type) {
	case Cacheable:
		return b.handleCacheable(ctx, req, policy, next)
	case Invalidate:
		return b.handleInvalidate(ctx, req, policy, next)
	default:
		return next(ctx)
	}
}

func (b *Behavior) handleCacheable(ctx context.Context, req pipeline.Request, policy Cacheable, next pipeline.Next) (any, error) {
	name := pipeline.RequestName(req)

	if cached, ok := b.store.Get(policy.Key); ok {
		b.metrics.RecordHit()
		b.logger.Info("cache hit",
			zap.String("request", name),
			zap.String("cache_key", policy.Key))
		return cached, nil
	}

	b.metrics.RecordMiss()
	b.logger.Info("cache miss",
		zap.String("request", name),
		zap.String("cache_key", policy.Key))

	result, err := next(ctx)
	if err != nil {
		return result, err
	}

	ttl := policy.TTL()
	b.store.Set(policy.Key, result, ttl)
	b.registry.Register(policy.Key, cache.ExtractPattern(policy.Key))

	b.logger.Info("cached response",
		zap.String("request", name),
		zap.String("cache_key", policy.Key),
		zap.Duration("duration", ttl))

	return result, nil
}

func (b *Behavior) handleInvalidate(ctx context.Context, req pipeline.Request, policy Invalidate, next pipeline.Next) (any, error) {
	ctx, collected := withTargetCollector(ctx)

	result, err := next(ctx)
	if err != nil {
		return result, err
	}

	name := pipeline.RequestName(req)
	for _, target := range policy.Targets {
		b.invalidate(name, target)
	}
	for _, target := range collected.snapshot() {
		b.invalidate(name, target)
	}

	return result, nil
}

func (b *Behavior) invalidate(requestName, target string) {
	pattern, wildcard := splitTarget(target)
	if !wildcard {
		b.store.Remove(target)
		b.logger.Info("invalidated cache key",
			zap.String("request", requestName),
			zap.String("cache_key", target))
		return
	}

	keys := b.registry.GetKeysMatchingPattern(pattern)
	for _, key := range keys {
		b.store.Remove(key)
		b.logger.Info("invalidated cache key matching pattern",
			zap.String("request", requestName),
			zap.String("cache_key", key),
			zap.String("pattern", target))
	}

	if len(keys) == 0 {
		b.logger.Debug("no cache keys found matching pattern",
			zap.String("request", requestName),
			zap.String("pattern", target))
	}
}
