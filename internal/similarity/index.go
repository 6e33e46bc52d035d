// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

package similarity

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/listingrec/internal/metrics"
	"github.com/tomtom215/listingrec/internal/models"
)

// Index is the read contract the recommendation engine depends on.
// Implementations must be safe for concurrent reads.
type Index interface {
	// Len returns the number of listings covered by the index.
	Len() int

	// Similarity returns the similarity between listings i and j.
	Similarity(i, j int) float64

	// Available reports whether the index can produce recommendations.
	Available() bool
}

// Holder owns the currently served Snapshot and replaces it on rebuild.
//
// Readers call Current and never block. Rebuild builds a complete new
// Snapshot and installs it with a single atomic pointer swap, so a reader
// sees either the old matrix or the new one. Rebuilds are serialized.
type Holder struct {
	current atomic.Pointer[Snapshot]
	mu      sync.Mutex
	opts    BuildOptions
	logger  zerolog.Logger

	rebuilds atomic.Int64
}

// NewHolder creates a Holder serving an empty, unavailable snapshot.
//
//nolint:gocritic // zerolog.Logger is passed by value per zerolog convention
func NewHolder(opts BuildOptions, logger zerolog.Logger) *Holder {
	h := &Holder{
		opts:   opts,
		logger: logger.With().Str("component", "similarity").Logger(),
	}
	h.current.Store(&Snapshot{builtAt: time.Now()})
	return h
}

// Current returns the snapshot being served.
func (h *Holder) Current() Index {
	return h.current.Load()
}

// Snapshot returns the concrete snapshot being served.
func (h *Holder) Snapshot() *Snapshot {
	return h.current.Load()
}

// Loader returns the full listing set to index.
type Loader func(ctx context.Context) ([]models.Listing, error)

// RebuildFrom loads the listing set and rebuilds from it under the rebuild
// lock. Loads are ordered with installs, so a snapshot built from an older
// catalog read never replaces one built from a newer read.
func (h *Holder) RebuildFrom(ctx context.Context, load Loader) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	listings, err := load(ctx)
	if err != nil {
		return fmt.Errorf("load listings: %w", err)
	}
	return h.rebuildLocked(ctx, listings)
}

// Rebuild builds a fresh snapshot from the given listing set and installs it.
// On failure the previous snapshot keeps being served.
func (h *Holder) Rebuild(ctx context.Context, listings []models.Listing) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.rebuildLocked(ctx, listings)
}

func (h *Holder) rebuildLocked(ctx context.Context, listings []models.Listing) error {
	start := time.Now()
	snap, err := Build(ctx, listings, h.opts)
	metrics.RecordIndexRebuild(time.Since(start), len(listings), err)
	if err != nil {
		h.logger.Error().Err(err).Int("listings", len(listings)).Msg("Similarity index rebuild failed")
		return err
	}

	for _, id := range snap.Malformed() {
		h.logger.Warn().Int64("listing_id", id).Msg("Malformed description treated as empty")
	}

	h.current.Store(snap)
	h.rebuilds.Add(1)

	h.logger.Info().
		Int("items", snap.Len()).
		Int("vocabulary", snap.VocabularySize()).
		Bool("available", snap.Available()).
		Dur("duration", time.Since(start)).
		Msg("Similarity index rebuilt")

	return nil
}

// Rebuilds returns the number of successful rebuilds.
func (h *Holder) Rebuilds() int64 {
	return h.rebuilds.Load()
}

// Status reports the served snapshot for health endpoints.
func (h *Holder) Status() models.IndexStatus {
	snap := h.current.Load()
	return models.IndexStatus{
		Available: snap.Available(),
		Items:     snap.Len(),
		BuiltAt:   snap.BuiltAt(),
	}
}
