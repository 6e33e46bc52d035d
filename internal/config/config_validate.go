// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

package config

import (
	"fmt"
	"strings"
)

// Validate checks every configuration section.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateStores(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateIndex(); err != nil {
		return err
	}
	return c.validateSecurity()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	switch c.Server.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("ENVIRONMENT must be development, staging or production, got %q", c.Server.Environment)
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true,
}

func (c *Config) validateLogging() error {
	level := strings.ToLower(c.Logging.Level)
	if !validLogLevels[level] {
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, got %q", c.Logging.Level)
	}
	format := strings.ToLower(c.Logging.Format)
	if format != "json" && format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateStores() error {
	switch c.Catalog.Backend {
	case BackendDuckDB, BackendMemory:
	default:
		return fmt.Errorf("CATALOG_BACKEND must be duckdb or memory, got %q", c.Catalog.Backend)
	}
	if c.Catalog.CacheSize < 0 {
		return fmt.Errorf("CATALOG_CACHE_SIZE must not be negative")
	}

	switch c.History.Backend {
	case BackendDuckDB, BackendMemory:
	case BackendBadger:
		if c.History.BadgerPath == "" {
			return fmt.Errorf("BADGER_PATH is required when HISTORY_BACKEND=badger")
		}
	case BackendRedis:
		if c.History.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required when HISTORY_BACKEND=redis")
		}
		if c.History.Breaker.FailureThreshold == 0 {
			return fmt.Errorf("BREAKER_FAILURE_THRESHOLD must be positive")
		}
	default:
		return fmt.Errorf("HISTORY_BACKEND must be duckdb, badger, redis or memory, got %q", c.History.Backend)
	}

	if c.UsesDuckDB() && c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH is required when a store uses duckdb")
	}
	return nil
}

// UsesDuckDB reports whether any store is backed by DuckDB.
func (c *Config) UsesDuckDB() bool {
	return c.Catalog.Backend == BackendDuckDB || c.History.Backend == BackendDuckDB
}

func (c *Config) validateRecommend() error {
	r := &c.Recommend
	if r.ColdStartThreshold < 0 {
		return fmt.Errorf("RECOMMEND_COLD_START_THRESHOLD must not be negative")
	}
	if r.ExplorationDenominator < 0 {
		return fmt.Errorf("RECOMMEND_EXPLORATION_DENOMINATOR must not be negative")
	}
	if r.AnchorWindow < 1 {
		return fmt.Errorf("RECOMMEND_ANCHOR_WINDOW must be at least 1")
	}
	if r.CandidateWindow < 1 {
		return fmt.Errorf("RECOMMEND_CANDIDATE_WINDOW must be at least 1")
	}
	if r.EvictionThreshold < 1 {
		return fmt.Errorf("RECOMMEND_EVICTION_THRESHOLD must be at least 1")
	}
	if r.CounterScope != "global" && r.CounterScope != "user" {
		return fmt.Errorf("RECOMMEND_COUNTER_SCOPE must be global or user, got %q", r.CounterScope)
	}
	if r.SelfExclusion != "anchor" && r.SelfExclusion != "item_zero" {
		return fmt.Errorf("RECOMMEND_SELF_EXCLUSION must be anchor or item_zero, got %q", r.SelfExclusion)
	}
	return nil
}

func (c *Config) validateIndex() error {
	if c.Index.RebuildWorkers < 0 {
		return fmt.Errorf("INDEX_REBUILD_WORKERS must not be negative")
	}
	if c.Index.ReconcileInterval <= 0 {
		return fmt.Errorf("INDEX_RECONCILE_INTERVAL must be positive")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Server.IsProduction() {
		for _, origin := range c.Security.CORSOrigins {
			if origin == "*" {
				return fmt.Errorf("CORS_ORIGINS must not contain * in production")
			}
		}
	}
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1")
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}
