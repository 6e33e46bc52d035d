// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

package recommend

import (
	"fmt"
)

// CounterScope selects how the engagement counter driving eviction is shared.
type CounterScope string

const (
	// CounterGlobal shares one counter across every user. Eviction cadence then
	// follows total traffic rather than any one user's activity.
	CounterGlobal CounterScope = "global"

	// CounterPerUser keeps an independent counter for each user.
	CounterPerUser CounterScope = "user"
)

// SelfExclusion selects which listing is dropped from the similarity ranking.
type SelfExclusion string

const (
	// ExcludeAnchor drops the anchor listing itself, whose self-similarity
	// would otherwise always rank first.
	ExcludeAnchor SelfExclusion = "anchor"

	// ExcludeItemZero always drops listing 0 regardless of the anchor.
	ExcludeItemZero SelfExclusion = "item_zero"
)

// Config holds the selection policy parameters.
type Config struct {
	// ColdStartThreshold: users with this many history entries or fewer get a
	// uniformly random listing.
	ColdStartThreshold int `json:"cold_start_threshold"`

	// ExplorationDenominator: with probability 1/ExplorationDenominator a
	// personalized request returns a random listing instead. Zero disables
	// exploration.
	ExplorationDenominator int `json:"exploration_denominator"`

	// AnchorWindow is how many of the longest-dwell history entries the anchor
	// is drawn from.
	AnchorWindow int `json:"anchor_window"`

	// CandidateWindow is how many of the most similar listings the result is
	// drawn from.
	CandidateWindow int `json:"candidate_window"`

	// EvictionThreshold is the counter value at which the least-engaging
	// history entry is removed and the counter reset.
	EvictionThreshold int64 `json:"eviction_threshold"`

	CounterScope  CounterScope  `json:"counter_scope"`
	SelfExclusion SelfExclusion `json:"self_exclusion"`

	// Seed for the random source. Zero selects 42 so runs are reproducible.
	Seed int64 `json:"seed"`
}

// DefaultConfig returns the standard selection policy.
func DefaultConfig() *Config {
	return &Config{
		ColdStartThreshold:     10,
		ExplorationDenominator: 5,
		AnchorWindow:           10,
		CandidateWindow:        10,
		EvictionThreshold:      3,
		CounterScope:           CounterGlobal,
		SelfExclusion:          ExcludeAnchor,
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.ColdStartThreshold < 0 {
		return fmt.Errorf("cold_start_threshold must be non-negative, got %d", c.ColdStartThreshold)
	}
	if c.ExplorationDenominator < 0 {
		return fmt.Errorf("exploration_denominator must be non-negative, got %d", c.ExplorationDenominator)
	}
	if c.AnchorWindow < 1 {
		return fmt.Errorf("anchor_window must be at least 1, got %d", c.AnchorWindow)
	}
	if c.CandidateWindow < 1 {
		return fmt.Errorf("candidate_window must be at least 1, got %d", c.CandidateWindow)
	}
	if c.EvictionThreshold < 1 {
		return fmt.Errorf("eviction_threshold must be at least 1, got %d", c.EvictionThreshold)
	}
	switch c.CounterScope {
	case CounterGlobal, CounterPerUser:
	default:
		return fmt.Errorf("counter_scope must be %q or %q, got %q", CounterGlobal, CounterPerUser, c.CounterScope)
	}
	switch c.SelfExclusion {
	case ExcludeAnchor, ExcludeItemZero:
	default:
		return fmt.Errorf("self_exclusion must be %q or %q, got %q", ExcludeAnchor, ExcludeItemZero, c.SelfExclusion)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
