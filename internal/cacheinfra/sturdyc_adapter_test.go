package cacheinfra

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-pipeline-cache/pkg/testsupport"
)

func testConfig() Config {
	return Config{
		Capacity:           1000,
		NumShards:          16,
		MaxTTL:             time.Hour,
		EvictionPercentage: 10,
	}
}

func newTestStore(t *testing.T, clock *testsupport.FakeClock) *SturdycStore {
	t.Helper()

	store, err := NewSturdycStore(testConfig(), WithClock(clock.Now))
	if err != nil {
		t.Fatalf("NewSturdycStore() failed: %v", err)
	}
	return store
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Capacity != 10000 {
		t.Errorf("expected Capacity to be 10000, got %d", cfg.Capacity)
	}

	if cfg.NumShards != 256 {
		t.Errorf("expected NumShards to be 256, got %d", cfg.NumShards)
	}

	if cfg.MaxTTL != time.Hour {
		t.Errorf("expected MaxTTL to be 1 hour, got %v", cfg.MaxTTL)
	}

	if cfg.EvictionPercentage != 10 {
		t.Errorf("expected EvictionPercentage to be 10, got %d", cfg.EvictionPercentage)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected default config to be valid, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
		errorMsg  string
	}{
		{
			name:      "invalid capacity - zero",
			mutate:    func(c *Config) { c.Capacity = 0 },
			wantField: "Capacity",
			errorMsg:  "must be greater than 0",
		},
		{
			name:      "invalid num shards - negative",
			mutate:    func(c *Config) { c.NumShards = -1 },
			wantField: "NumShards",
			errorMsg:  "must be greater than 0",
		},
		{
			name:      "invalid max ttl - zero",
			mutate:    func(c *Config) { c.MaxTTL = 0 },
			wantField: "MaxTTL",
			errorMsg:  "must be greater than 0",
		},
		{
			name:      "invalid eviction percentage - too low",
			mutate:    func(c *Config) { c.EvictionPercentage = 0 },
			wantField: "EvictionPercentage",
			errorMsg:  "must be between 1 and 100",
		},
		{
			name:      "invalid eviction percentage - too high",
			mutate:    func(c *Config) { c.EvictionPercentage = 101 },
			wantField: "EvictionPercentage",
			errorMsg:  "must be between 1 and 100",
		},
		{
			name:      "invalid eviction interval - negative",
			mutate:    func(c *Config) { c.EvictionInterval = -time.Second },
			wantField: "EvictionInterval",
			errorMsg:  "must be non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error but got none")
			}

			configErr, ok := err.(*ConfigError)
			if !ok {
				t.Fatalf("expected *ConfigError, got %T", err)
			}
			if configErr.Field != tt.wantField {
				t.Errorf("expected field %s, got %s", tt.wantField, configErr.Field)
			}
			if !strings.Contains(err.Error(), tt.errorMsg) {
				t.Errorf("expected error message to contain %q, got %q", tt.errorMsg, err.Error())
			}
		})
	}
}

func TestNewSturdycStore_InvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Capacity = 0

	store, err := NewSturdycStore(cfg)
	if err == nil {
		t.Fatal("expected error for invalid config")
	}
	if store != nil {
		t.Error("expected nil store for invalid config")
	}
}

func TestSturdycStore_SetGetRemove(t *testing.T) {
	clock := testsupport.NewFakeClock(time.Now())
	store := newTestStore(t, clock)

	if _, ok := store.Get("checklists:all"); ok {
		t.Fatal("expected miss on empty store")
	}

	store.Set("checklists:all", []string{"a", "b"}, time.Minute)

	got, ok := store.Get("checklists:all")
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if values, _ := got.([]string); len(values) != 2 {
		t.Errorf("expected stored slice of 2, got %v", got)
	}

	store.Remove("checklists:all")
	if _, ok := store.Get("checklists:all"); ok {
		t.Error("expected miss after Remove")
	}

	// removing an absent key is harmless
	store.Remove("checklists:missing")
}

func TestSturdycStore_StoresNilValues(t *testing.T) {
	clock := testsupport.NewFakeClock(time.Now())
	store := newTestStore(t, clock)

	store.Set("checklists:missing", nil, time.Minute)

	got, ok := store.Get("checklists:missing")
	if !ok {
		t.Fatal("expected nil value to be stored as a hit")
	}
	if got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestSturdycStore_PerEntryExpiry(t *testing.T) {
	clock := testsupport.NewFakeClock(time.Now())
	store := newTestStore(t, clock)

	store.Set("short", "s", time.Second)
	store.Set("long", "l", 10*time.Minute)

	clock.Advance(999 * time.Millisecond)
	if _, ok := store.Get("short"); !ok {
		t.Fatal("expected short entry to be present before its deadline")
	}

	clock.Advance(time.Millisecond)
	if _, ok := store.Get("short"); ok {
		t.Error("expected short entry to be absent once its duration elapsed")
	}
	if _, ok := store.Get("long"); !ok {
		t.Error("expected long entry to survive")
	}

	clock.Advance(10 * time.Minute)
	if _, ok := store.Get("long"); ok {
		t.Error("expected long entry to be absent after 10 minutes")
	}
}

func TestSturdycStore_ClampsToMaxTTL(t *testing.T) {
	clock := testsupport.NewFakeClock(time.Now())
	store := newTestStore(t, clock)

	store.Set("key", "v", 48*time.Hour)

	clock.Advance(time.Hour)
	if _, ok := store.Get("key"); ok {
		t.Error("expected entry to be clamped to MaxTTL")
	}
}

func TestSturdycStore_NonPositiveTTLStoresNothing(t *testing.T) {
	clock := testsupport.NewFakeClock(time.Now())
	store := newTestStore(t, clock)

	store.Set("zero", "v", 0)
	store.Set("negative", "v", -time.Second)

	if _, ok := store.Get("zero"); ok {
		t.Error("expected zero ttl to store nothing")
	}
	if _, ok := store.Get("negative"); ok {
		t.Error("expected negative ttl to store nothing")
	}
}

func TestSturdycStore_OverwriteResetsExpiry(t *testing.T) {
	clock := testsupport.NewFakeClock(time.Now())
	store := newTestStore(t, clock)

	store.Set("key", "first", time.Minute)
	clock.Advance(50 * time.Second)
	store.Set("key", "second", time.Minute)
	clock.Advance(50 * time.Second)

	got, ok := store.Get("key")
	if !ok {
		t.Fatal("expected overwritten entry to carry a fresh deadline")
	}
	if got != "second" {
		t.Errorf("expected last write to win, got %v", got)
	}
}

func TestSturdycStore_KeysAndSize(t *testing.T) {
	clock := testsupport.NewFakeClock(time.Now())
	store := newTestStore(t, clock)

	store.Set("checklists:a", 1, time.Minute)
	store.Set("checklists:b", 2, time.Minute)

	if store.Size() != 2 {
		t.Errorf("expected size 2, got %d", store.Size())
	}

	keys := store.Keys()
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %v", keys)
	}
}

func TestSturdycStore_ConcurrentAccess(t *testing.T) {
	store, err := NewSturdycStore(testConfig())
	if err != nil {
		t.Fatalf("NewSturdycStore() failed: %v", err)
	}

	const workers = 32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("checklists:%d", j%10)
				store.Set(key, id, time.Minute)
				store.Get(key)
				if j%7 == 0 {
					store.Remove(key)
				}
			}
		}(i)
	}
	wg.Wait()

	for j := 0; j < 10; j++ {
		key := fmt.Sprintf("checklists:%d", j)
		if v, ok := store.Get(key); ok {
			if _, isInt := v.(int); !isInt {
				t.Errorf("expected int value for %s, got %T", key, v)
			}
		}
	}
}
