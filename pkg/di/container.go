package di

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-pipeline-cache/cache"
	"github.com/goliatone/go-pipeline-cache/internal/cacheinfra"
	"github.com/goliatone/go-pipeline-cache/pipeline"
	"github.com/goliatone/go-pipeline-cache/querycache"
)

// Container provides dependency injection for the caching pipeline.
// It owns one store, key registry and metrics collector for the process and
// a mediator whose behaviors run in this order: logging, validation, caching.
type Container struct {
	store         *cacheinfra.SturdycStore
	registry      *cache.KeyRegistry
	metrics       *cache.Metrics
	keySerializer cache.KeySerializer
	logger        *zap.Logger
	mediator      *pipeline.Mediator
	config        cache.Config
}

// Option customizes a Container.
type Option func(*options)

type options struct {
	logger *zap.Logger
	now    func() time.Time
}

// WithLogger sets the logger shared by the mediator and its behaviors.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithClock sets the time source the store uses for entry expiry.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// NewContainer creates a new DI container with the provided cache configuration.
func NewContainer(config cache.Config, opts ...Option) (*Container, error) {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	var storeOpts []cacheinfra.Option
	if o.now != nil {
		storeOpts = append(storeOpts, cacheinfra.WithClock(o.now))
	}

	store, err := cacheinfra.NewSturdycStore(toInfraConfig(config), storeOpts...)
	if err != nil {
		return nil, err
	}

	registry := cache.NewKeyRegistry()
	metrics := cache.NewMetrics()

	mediator := pipeline.NewMediator(o.logger,
		pipeline.NewLoggingBehavior(o.logger),
		pipeline.NewValidationBehavior(o.logger),
		querycache.New(store, registry, metrics, o.logger),
	)

	return &Container{
		store:         store,
		registry:      registry,
		metrics:       metrics,
		keySerializer: cache.NewDefaultKeySerializer(),
		logger:        o.logger,
		mediator:      mediator,
		config:        config,
	}, nil
}

// NewContainerWithDefaults creates a new DI container using default configuration.
func NewContainerWithDefaults(opts ...Option) (*Container, error) {
	return NewContainer(cache.DefaultConfig(), opts...)
}

func toInfraConfig(c cache.Config) cacheinfra.Config {
	return cacheinfra.Config{
		Capacity:           c.Capacity,
		NumShards:          c.NumShards,
		MaxTTL:             c.MaxTTL,
		EvictionPercentage: c.EvictionPercentage,
		EvictionInterval:   c.EvictionInterval,
	}
}

// Store returns the singleton cache store.
func (c *Container) Store() cache.Store {
	return c.store
}

// StoreSize reports how many entries the store holds.
func (c *Container) StoreSize() int {
	return c.store.Size()
}

// Registry returns the singleton key registry.
func (c *Container) Registry() *cache.KeyRegistry {
	return c.registry
}

// Metrics returns the singleton hit/miss collector.
func (c *Container) Metrics() *cache.Metrics {
	return c.metrics
}

// Statistics is shorthand for Metrics().GetStatistics().
func (c *Container) Statistics() cache.Statistics {
	return c.metrics.GetStatistics()
}

// KeySerializer returns the key serializer for building cache keys.
func (c *Container) KeySerializer() cache.KeySerializer {
	return c.keySerializer
}

// Logger returns the shared logger.
func (c *Container) Logger() *zap.Logger {
	return c.logger
}

// Mediator returns the dispatcher with the caching pipeline installed.
func (c *Container) Mediator() *pipeline.Mediator {
	return c.mediator
}

// Config returns a copy of the cache configuration used by this container.
func (c *Container) Config() cache.Config {
	return c.config
}

// Send dispatches req through the container's pipeline.
func (c *Container) Send(ctx context.Context, req pipeline.Request) (any, error) {
	return c.mediator.Send(ctx, req)
}

// RegisterHandler binds a typed handler on the container's mediator.
//
// Since Go methods cannot have type parameters, this is provided as a package-level function.
// Example: RegisterHandler(container, handlers.GetChecklistItems)
func RegisterHandler[R any, T any](container *Container, fn func(ctx context.Context, req R) (T, error)) {
	pipeline.RegisterHandler(container.mediator, fn)
}
