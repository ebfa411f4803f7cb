// Package config loads the quicklists application configuration.
package config

import (
	"fmt"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-pipeline-cache/cache"
)

// EnvConfigPath names the environment variable that points at a config file
// when no path is given explicitly.
const EnvConfigPath = "QUICKLISTS_CONFIG"

const CodeInvalidConfig = "INVALID_CONFIG"

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Cache    CacheConfig    `yaml:"cache"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type CacheConfig struct {
	Capacity           int           `yaml:"capacity"`
	Shards             int           `yaml:"shards"`
	MaxTTL             time.Duration `yaml:"max_ttl"`
	EvictionPercentage int           `yaml:"eviction_percentage"`
	EvictionInterval   time.Duration `yaml:"eviction_interval"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used for every field a file leaves out.
func Default() Config {
	c := cache.DefaultConfig()
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			DSN: "file:quicklists.db?cache=shared&_foreign_keys=on",
		},
		Cache: CacheConfig{
			Capacity:           c.Capacity,
			Shards:             c.NumShards,
			MaxTTL:             c.MaxTTL,
			EvictionPercentage: c.EvictionPercentage,
			EvictionInterval:   c.EvictionInterval,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads path on top of the defaults. An empty path falls back to
// EnvConfigPath, and to the defaults alone when that is unset too.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, goerrors.Wrap(err, goerrors.CategoryInternal, fmt.Sprintf("failed to read config file: %s", path)).
			WithTextCode(CodeInvalidConfig)
	}

	return Parse(data, cfg)
}

// Parse decodes YAML over base and validates the result.
func Parse(data []byte, base Config) (Config, error) {
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, goerrors.Wrap(err, goerrors.CategoryValidation, "failed to parse config").
			WithTextCode(CodeInvalidConfig)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, goerrors.Wrap(err, goerrors.CategoryValidation, "config validation failed").
			WithTextCode(CodeInvalidConfig)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	return validation.Errors{
		"server":   c.Server.Validate(),
		"database": c.Database.Validate(),
		"cache":    c.Cache.Validate(),
		"log":      c.Log.Validate(),
	}.Filter()
}

func (s ServerConfig) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Addr, validation.Required),
		validation.Field(&s.ShutdownTimeout, validation.Min(time.Duration(0))),
	)
}

func (d DatabaseConfig) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.DSN, validation.Required),
	)
}

// Validate runs the store's own checks so both layers agree on limits.
func (c CacheConfig) Validate() error {
	return c.ToCacheConfig().Validate()
}

func (l LogConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.In("debug", "info", "warn", "error")),
		validation.Field(&l.Format, validation.In("json", "console")),
	)
}

// ToCacheConfig converts the section to the store configuration.
func (c CacheConfig) ToCacheConfig() cache.Config {
	return cache.Config{
		Capacity:           c.Capacity,
		NumShards:          c.Shards,
		MaxTTL:             c.MaxTTL,
		EvictionPercentage: c.EvictionPercentage,
		EvictionInterval:   c.EvictionInterval,
	}
}
