// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Catalog.Backend != BackendDuckDB {
		t.Errorf("Catalog.Backend = %q, want duckdb", cfg.Catalog.Backend)
	}
	if cfg.History.Backend != BackendDuckDB {
		t.Errorf("History.Backend = %q, want duckdb", cfg.History.Backend)
	}

	r := cfg.Recommend
	if r.ColdStartThreshold != 10 || r.ExplorationDenominator != 5 || r.AnchorWindow != 10 ||
		r.CandidateWindow != 10 || r.EvictionThreshold != 3 {
		t.Errorf("Recommend defaults = %+v", r)
	}
	if r.CounterScope != "global" {
		t.Errorf("Recommend.CounterScope = %q, want global", r.CounterScope)
	}
	if r.SelfExclusion != "anchor" {
		t.Errorf("Recommend.SelfExclusion = %q, want anchor", r.SelfExclusion)
	}

	if cfg.Index.ReconcileInterval != time.Minute {
		t.Errorf("Index.ReconcileInterval = %v, want 1m", cfg.Index.ReconcileInterval)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaultConfig().Validate() error = %v", err)
	}
}

// isolate runs the test in an empty directory with no config file lookup hits.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir() error = %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv(ConfigPathEnvVar, filepath.Join(dir, "missing.yaml"))
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "*" {
		t.Errorf("Security.CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	isolate(t)

	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("HISTORY_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("RECOMMEND_COUNTER_SCOPE", "user")
	t.Setenv("RECOMMEND_EVICTION_THRESHOLD", "7")
	t.Setenv("CATALOG_CACHE_TTL", "90s")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.History.Backend != BackendRedis || cfg.History.Redis.Addr != "cache:6379" {
		t.Errorf("History = %+v", cfg.History)
	}
	if cfg.Recommend.CounterScope != "user" {
		t.Errorf("Recommend.CounterScope = %q, want user", cfg.Recommend.CounterScope)
	}
	if cfg.Recommend.EvictionThreshold != 7 {
		t.Errorf("Recommend.EvictionThreshold = %d, want 7", cfg.Recommend.EvictionThreshold)
	}
	if cfg.Catalog.CacheTTL != 90*time.Second {
		t.Errorf("Catalog.CacheTTL = %v, want 90s", cfg.Catalog.CacheTTL)
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.Security.CORSOrigins) != len(want) {
		t.Fatalf("Security.CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
	for i := range want {
		if cfg.Security.CORSOrigins[i] != want[i] {
			t.Errorf("CORSOrigins[%d] = %q, want %q", i, cfg.Security.CORSOrigins[i], want[i])
		}
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "listingrec.yaml")
	content := `
server:
  port: 7070
catalog:
  backend: memory
  seed_file: /srv/seed.yaml
history:
  backend: badger
  badger_path: /srv/history
recommend:
  self_exclusion: item_zero
  exploration_denominator: 0
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	// Environment wins over the file
	t.Setenv("HTTP_PORT", "7171")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 7171 {
		t.Errorf("Server.Port = %d, want 7171", cfg.Server.Port)
	}
	if cfg.Catalog.Backend != BackendMemory || cfg.Catalog.SeedFile != "/srv/seed.yaml" {
		t.Errorf("Catalog = %+v", cfg.Catalog)
	}
	if cfg.History.Backend != BackendBadger || cfg.History.BadgerPath != "/srv/history" {
		t.Errorf("History = %+v", cfg.History)
	}
	if cfg.Recommend.SelfExclusion != "item_zero" {
		t.Errorf("Recommend.SelfExclusion = %q", cfg.Recommend.SelfExclusion)
	}
	if cfg.Recommend.ExplorationDenominator != 0 {
		t.Errorf("Recommend.ExplorationDenominator = %d, want 0", cfg.Recommend.ExplorationDenominator)
	}
	// Untouched sections keep defaults
	if cfg.Recommend.ColdStartThreshold != 10 {
		t.Errorf("Recommend.ColdStartThreshold = %d, want 10", cfg.Recommend.ColdStartThreshold)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)

	if err := os.WriteFile(filepath.Join(dir, DotEnvFile), []byte("LOG_LEVEL=debug\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	// godotenv does not override existing variables; register cleanup for the one it sets.
	t.Setenv("LOG_LEVEL", "")
	if err := os.Unsetenv("LOG_LEVEL"); err != nil {
		t.Fatalf("Unsetenv() error = %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoad_InvalidValueFailsValidation(t *testing.T) {
	isolate(t)
	t.Setenv("RECOMMEND_COUNTER_SCOPE", "session")

	if _, err := Load(); err == nil {
		t.Error("Load() error = nil, want validation error")
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"DUCKDB_PATH", "database.path"},
		{"REDIS_ADDR", "history.redis.addr"},
		{"RECOMMEND_SELF_EXCLUSION", "recommend.self_exclusion"},
		{"INDEX_RECONCILE_INTERVAL", "index.reconcile_interval"},
		{"PATH", ""},
		{"HOME", ""},
	}
	for _, tt := range tests {
		if got := envTransformFunc(tt.key); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
