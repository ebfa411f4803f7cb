package cacheinfra

import (
	"time"

	"github.com/viccon/sturdyc"
)

// Config holds the configuration for the sturdyc store adapter.
type Config struct {
	// Capacity defines the maximum number of entries that the store can hold.
	// Must be greater than 0.
	Capacity int

	// NumShards determines the number of cache shards for concurrent access.
	// Higher values improve concurrency but increase memory overhead.
	// Must be greater than 0. Default: 256
	NumShards int

	// MaxTTL is the lifetime sturdyc gives every entry. Per-entry durations
	// passed to Set are honored on top of it, so MaxTTL caps how long any
	// single entry can live. Must be greater than 0.
	MaxTTL time.Duration

	// EvictionPercentage specifies what percentage of entries to evict
	// when the store reaches its capacity. Must be between 1-100.
	// Default: 10 (evict 10% of entries)
	EvictionPercentage int

	// EvictionInterval sets how often sturdyc sweeps expired entries.
	// Zero value uses the default interval.
	EvictionInterval time.Duration
}

// DefaultConfig returns a Config with sensible defaults for most use cases.
func DefaultConfig() Config {
	return Config{
		Capacity:           10000,
		NumShards:          256,
		MaxTTL:             time.Hour,
		EvictionPercentage: 10,
		EvictionInterval:   0, // Use default
	}
}

// ToSturdycOptions converts the Config to sturdyc.Option slice.
// Capacity, NumShards, MaxTTL and EvictionPercentage are passed directly
// to sturdyc.New() and are not included in the options.
func (c Config) ToSturdycOptions() []sturdyc.Option {
	var options []sturdyc.Option

	if c.EvictionInterval > 0 {
		options = append(options, sturdyc.WithEvictionInterval(c.EvictionInterval))
	}

	return options
}

// Validate checks if the configuration values are valid.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}

	if c.NumShards <= 0 {
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	}

	if c.MaxTTL <= 0 {
		return &ConfigError{Field: "MaxTTL", Message: "must be greater than 0"}
	}

	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	}

	if c.EvictionInterval < 0 {
		return &ConfigError{Field: "EvictionInterval", Message: "must be non-negative"}
	}

	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}

// entry wraps a stored value with its absolute expiry. sturdyc only knows a
// client-wide TTL, the per-entry deadline lives here.
type entry struct {
	value     any
	expiresAt time.Time
}

// Option customizes a SturdycStore.
type Option func(*SturdycStore)

// WithClock replaces the time source used to stamp and check entry expiry.
func WithClock(now func() time.Time) Option {
	return func(s *SturdycStore) {
		if now != nil {
			s.now = now
		}
	}
}

// SturdycStore is a TTL key/value store backed by a sturdyc client.
// It is safe for concurrent use.
type SturdycStore struct {
	client *sturdyc.Client[entry]
	maxTTL time.Duration
	now    func() time.Time
}

// NewSturdycStore validates the configuration and initializes a sturdyc
// client with the provided settings.
func NewSturdycStore(cfg Config, opts ...Option) (*SturdycStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := sturdyc.New[entry](
		cfg.Capacity,
		cfg.NumShards,
		cfg.MaxTTL,
		cfg.EvictionPercentage,
		cfg.ToSturdycOptions()...,
	)

	s := &SturdycStore{
		client: client,
		maxTTL: cfg.MaxTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Get returns the value stored under key if it exists and has not expired.
// An expired entry is dropped on the way out.
func (s *SturdycStore) Get(key string) (any, bool) {
	e, ok := s.client.Get(key)
	if !ok {
		return nil, false
	}

	if !s.now().Before(e.expiresAt) {
		s.client.Delete(key)
		return nil, false
	}

	return e.value, true
}

// Set stores value under key with an absolute expiry of now + ttl.
// A ttl above MaxTTL is clamped, a non-positive ttl stores nothing.
func (s *SturdycStore) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	if ttl > s.maxTTL {
		ttl = s.maxTTL
	}

	s.client.Set(key, entry{value: value, expiresAt: s.now().Add(ttl)})
}

// Remove deletes key from the store. Removing an absent key is a no-op.
func (s *SturdycStore) Remove(key string) {
	s.client.Delete(key)
}

// Size reports the number of entries sturdyc currently holds, including
// entries whose per-entry deadline passed but were not read since.
func (s *SturdycStore) Size() int {
	return s.client.Size()
}

// Keys returns a snapshot of the keys currently held by the store.
func (s *SturdycStore) Keys() []string {
	return s.client.ScanKeys()
}
