// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists locations searched when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/listingrec/config.yaml",
	"/etc/listingrec/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotEnvFile is loaded into the environment if present.
const DotEnvFile = ".env"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Database: DatabaseConfig{
			Path:      "/data/listingrec.duckdb",
			MaxMemory: "1GB",
			Threads:   0,
		},
		Catalog: CatalogConfig{
			Backend:   BackendDuckDB,
			CacheSize: 10000,
			CacheTTL:  5 * time.Minute,
			SeedFile:  "",
		},
		History: HistoryConfig{
			Backend:    BackendDuckDB,
			BadgerPath: "/data/history",
			Redis: RedisConfig{
				Addr:        "localhost:6379",
				Password:    "",
				DB:          0,
				KeyPrefix:   "listingrec:history:",
				DialTimeout: 5 * time.Second,
			},
			Breaker: BreakerConfig{
				MaxRequests:      3,
				Interval:         time.Minute,
				Timeout:          30 * time.Second,
				FailureThreshold: 5,
			},
		},
		Recommend: RecommendConfig{
			Seed:                   0, // 0 = fixed default seed
			ColdStartThreshold:     10,
			ExplorationDenominator: 5,
			AnchorWindow:           10,
			CandidateWindow:        10,
			EvictionThreshold:      3,
			CounterScope:           "global",
			SelfExclusion:          "anchor",
		},
		Index: IndexConfig{
			RebuildWorkers:    0,
			ReconcileInterval: time.Minute,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
	}
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, then validates it.
func Load() (*Config, error) {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", DotEnvFile, err)
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are split on commas when they arrive as a single string.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps flat environment variable names to config paths.
// Variables not listed here are ignored.
var envMappings = map[string]string{
	"http_port":    "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",
	"environment":  "server.environment",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",

	"catalog_backend":    "catalog.backend",
	"catalog_cache_size": "catalog.cache_size",
	"catalog_cache_ttl":  "catalog.cache_ttl",
	"seed_file":          "catalog.seed_file",

	"history_backend":           "history.backend",
	"badger_path":               "history.badger_path",
	"redis_addr":                "history.redis.addr",
	"redis_password":            "history.redis.password",
	"redis_db":                  "history.redis.db",
	"redis_key_prefix":          "history.redis.key_prefix",
	"redis_dial_timeout":        "history.redis.dial_timeout",
	"breaker_max_requests":      "history.breaker.max_requests",
	"breaker_interval":          "history.breaker.interval",
	"breaker_timeout":           "history.breaker.timeout",
	"breaker_failure_threshold": "history.breaker.failure_threshold",

	"recommend_seed":                    "recommend.seed",
	"recommend_cold_start_threshold":    "recommend.cold_start_threshold",
	"recommend_exploration_denominator": "recommend.exploration_denominator",
	"recommend_anchor_window":           "recommend.anchor_window",
	"recommend_candidate_window":        "recommend.candidate_window",
	"recommend_eviction_threshold":      "recommend.eviction_threshold",
	"recommend_counter_scope":           "recommend.counter_scope",
	"recommend_self_exclusion":          "recommend.self_exclusion",

	"index_rebuild_workers":    "index.rebuild_workers",
	"index_reconcile_interval": "index.reconcile_interval",

	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
}

// envTransformFunc maps an environment variable to its config path. An
// empty result tells koanf to skip the variable.
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}

func joinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
