// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

package models

import (
	"fmt"
	"math"
	"sort"
)

// History maps listing ID to dwell time in seconds for one user.
type History map[int64]float64

// HistoryEntry is a single (listing, dwell) pair.
type HistoryEntry struct {
	ListingID int64   `json:"listing_id"`
	Duration  float64 `json:"duration"`
}

// Clone returns an independent copy of the history.
func (h History) Clone() History {
	out := make(History, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

// Ranked returns the entries ordered by dwell time descending.
// Ties are broken by listing ID ascending so the order is deterministic.
func (h History) Ranked() []HistoryEntry {
	entries := make([]HistoryEntry, 0, len(h))
	for id, d := range h {
		entries = append(entries, HistoryEntry{ListingID: id, Duration: d})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Duration != entries[j].Duration {
			return entries[i].Duration > entries[j].Duration
		}
		return entries[i].ListingID < entries[j].ListingID
	})
	return entries
}

// ValidateDuration rejects negative and non-finite dwell times.
func ValidateDuration(d float64) error {
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidDuration, d)
	}
	return nil
}
