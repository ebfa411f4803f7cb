package cache

import (
	"time"

	"github.com/goliatone/go-pipeline-cache/internal/cacheinfra"
)

// Config exposes store configuration options for consumers of the cache package.
type Config struct {
	Capacity           int
	NumShards          int
	MaxTTL             time.Duration
	EvictionPercentage int
	EvictionInterval   time.Duration
}

// ConfigError is returned by Config.Validate for an invalid field.
type ConfigError = cacheinfra.ConfigError

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() Config {
	return convertFromInternal(cacheinfra.DefaultConfig())
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	return c.toInternal().Validate()
}

// NewStore constructs the default Store implementation using the provided configuration.
func NewStore(cfg Config) (Store, error) {
	store, err := cacheinfra.NewSturdycStore(cfg.toInternal())
	if err != nil {
		return nil, err
	}
	return store, nil
}

func (c Config) toInternal() cacheinfra.Config {
	return cacheinfra.Config{
		Capacity:           c.Capacity,
		NumShards:          c.NumShards,
		MaxTTL:             c.MaxTTL,
		EvictionPercentage: c.EvictionPercentage,
		EvictionInterval:   c.EvictionInterval,
	}
}

func convertFromInternal(cfg cacheinfra.Config) Config {
	return Config{
		Capacity:           cfg.Capacity,
		NumShards:          cfg.NumShards,
		MaxTTL:             cfg.MaxTTL,
		EvictionPercentage: cfg.EvictionPercentage,
		EvictionInterval:   cfg.EvictionInterval,
	}
}
