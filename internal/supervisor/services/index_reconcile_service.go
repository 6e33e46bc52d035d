// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// IndexMaintainer is the slice of the listing service the reconcile loop
// drives.
type IndexMaintainer interface {
	// RebuildIndex recomputes the similarity index from the full catalog.
	RebuildIndex(ctx context.Context) error

	// IndexDrift reports whether the served index no longer covers the catalog.
	IndexDrift(ctx context.Context) (bool, error)
}

// IndexReconcileConfig holds configuration for the reconcile service.
type IndexReconcileConfig struct {
	// Interval between drift checks. Defaults to one minute.
	Interval time.Duration

	// RebuildTimeout bounds a single rebuild. Defaults to five minutes.
	RebuildTimeout time.Duration
}

// IndexReconcileService builds the similarity index at startup and rebuilds
// it whenever the catalog size and the index size disagree, e.g. when
// another process appended to a shared database or a rebuild after a create
// failed.
type IndexReconcileService struct {
	index  IndexMaintainer
	config IndexReconcileConfig
	logger zerolog.Logger
	name   string
}

// NewIndexReconcileService creates a new reconcile service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewIndexReconcileService(index IndexMaintainer, cfg IndexReconcileConfig, logger zerolog.Logger) *IndexReconcileService {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.RebuildTimeout <= 0 {
		cfg.RebuildTimeout = 5 * time.Minute
	}
	return &IndexReconcileService{
		index:  index,
		config: cfg,
		logger: logger.With().Str("service", "index-reconcile").Logger(),
		name:   "index-reconcile",
	}
}

// Serve implements suture.Service.
//
// A failed initial build is logged and retried on the next tick; the
// service itself only returns when its context ends.
func (s *IndexReconcileService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.config.Interval).Msg("index reconcile service starting")

	if err := s.rebuild(ctx, "startup"); err != nil {
		s.logger.Warn().Err(err).Msg("initial index build failed (will retry on schedule)")
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("index reconcile service shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.reconcile(ctx)
		}
	}
}

// reconcile rebuilds the index if it has drifted from the catalog.
func (s *IndexReconcileService) reconcile(ctx context.Context) {
	drift, err := s.index.IndexDrift(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("index drift check failed")
		return
	}
	if !drift {
		return
	}
	if err := s.rebuild(ctx, "drift"); err != nil {
		s.logger.Warn().Err(err).Msg("scheduled index rebuild failed")
	}
}

func (s *IndexReconcileService) rebuild(ctx context.Context, reason string) error {
	rebuildCtx, cancel := context.WithTimeout(ctx, s.config.RebuildTimeout)
	defer cancel()

	start := time.Now()
	if err := s.index.RebuildIndex(rebuildCtx); err != nil {
		return err
	}

	s.logger.Info().
		Str("reason", reason).
		Dur("duration", time.Since(start)).
		Msg("index rebuilt")
	return nil
}

// String returns the service name for logging.
func (s *IndexReconcileService) String() string {
	return s.name
}
