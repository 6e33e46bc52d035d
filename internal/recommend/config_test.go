// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

package recommend

import "testing"

func TestDefaultConfigValid(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	if cfg.ColdStartThreshold != 10 || cfg.ExplorationDenominator != 5 || cfg.EvictionThreshold != 3 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.CounterScope != CounterGlobal || cfg.SelfExclusion != ExcludeAnchor {
		t.Errorf("unexpected default modes: %s/%s", cfg.CounterScope, cfg.SelfExclusion)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative cold start", func(c *Config) { c.ColdStartThreshold = -1 }},
		{"negative exploration", func(c *Config) { c.ExplorationDenominator = -2 }},
		{"zero anchor window", func(c *Config) { c.AnchorWindow = 0 }},
		{"zero candidate window", func(c *Config) { c.CandidateWindow = 0 }},
		{"zero eviction threshold", func(c *Config) { c.EvictionThreshold = 0 }},
		{"unknown counter scope", func(c *Config) { c.CounterScope = "tenant" }},
		{"unknown self exclusion", func(c *Config) { c.SelfExclusion = "none" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.Seed = 7
	if cfg.Seed == 7 {
		t.Error("Clone() shares state with the original")
	}
}
