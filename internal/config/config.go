// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

package config

import "time"

// Backend names for the catalog and history stores.
const (
	BackendDuckDB = "duckdb"
	BackendMemory = "memory"
	BackendBadger = "badger"
	BackendRedis  = "redis"
)

// Config holds all service configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Database  DatabaseConfig  `koanf:"database"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	History   HistoryConfig   `koanf:"history"`
	Recommend RecommendConfig `koanf:"recommend"`
	Index     IndexConfig     `koanf:"index"`
	Security  SecurityConfig  `koanf:"security"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // development, staging, production
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes file and line in log lines.
	Caller bool `koanf:"caller"`
}

// DatabaseConfig holds DuckDB settings
type DatabaseConfig struct {
	Path      string `koanf:"path"` // ":memory:" for an ephemeral database
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = runtime.NumCPU()
}

// CatalogConfig selects and tunes the listing catalog.
type CatalogConfig struct {
	Backend   string        `koanf:"backend"` // duckdb or memory
	CacheSize int           `koanf:"cache_size"`
	CacheTTL  time.Duration `koanf:"cache_ttl"`
	SeedFile  string        `koanf:"seed_file"` // YAML listings appended when the catalog is empty
}

// HistoryConfig selects and tunes the view history store.
type HistoryConfig struct {
	Backend    string        `koanf:"backend"` // duckdb, badger, redis or memory
	BadgerPath string        `koanf:"badger_path"`
	Redis      RedisConfig   `koanf:"redis"`
	Breaker    BreakerConfig `koanf:"breaker"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Addr        string        `koanf:"addr"`
	Password    string        `koanf:"password"`
	DB          int           `koanf:"db"`
	KeyPrefix   string        `koanf:"key_prefix"`
	DialTimeout time.Duration `koanf:"dial_timeout"`
}

// BreakerConfig tunes the circuit breaker guarding remote stores.
type BreakerConfig struct {
	MaxRequests      uint32        `koanf:"max_requests"` // probes allowed while half-open
	Interval         time.Duration `koanf:"interval"`     // closed-state counter reset period
	Timeout          time.Duration `koanf:"timeout"`      // open-state duration
	FailureThreshold uint32        `koanf:"failure_threshold"`
}

// RecommendConfig holds selection policy settings.
type RecommendConfig struct {
	Seed                   int64  `koanf:"seed"`
	ColdStartThreshold     int    `koanf:"cold_start_threshold"`
	ExplorationDenominator int    `koanf:"exploration_denominator"` // 0 disables exploration
	AnchorWindow           int    `koanf:"anchor_window"`
	CandidateWindow        int    `koanf:"candidate_window"`
	EvictionThreshold      int64  `koanf:"eviction_threshold"`
	CounterScope           string `koanf:"counter_scope"`  // global or user
	SelfExclusion          string `koanf:"self_exclusion"` // anchor or item_zero
}

// IndexConfig tunes similarity index maintenance.
type IndexConfig struct {
	RebuildWorkers    int           `koanf:"rebuild_workers"` // 0 = GOMAXPROCS
	ReconcileInterval time.Duration `koanf:"reconcile_interval"`
}

// SecurityConfig holds CORS and rate limiting settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// Addr returns the HTTP listen address.
func (s *ServerConfig) Addr() string {
	return joinHostPort(s.Host, s.Port)
}

// IsProduction reports whether the service runs in production mode.
func (s *ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}
