// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tomtom215/listingrec/internal/logging"
	"github.com/tomtom215/listingrec/internal/models"
	"github.com/tomtom215/listingrec/internal/recommend"
	"github.com/tomtom215/listingrec/internal/store"
)

// UserService manages view histories and serves recommendations.
type UserService struct {
	history store.HistoryStore
	engine  *recommend.Engine
	logger  zerolog.Logger
}

// NewUserService creates a UserService. The engine must use the same
// history store.
//
//nolint:gocritic // zerolog.Logger is passed by value per zerolog convention
func NewUserService(history store.HistoryStore, engine *recommend.Engine, logger zerolog.Logger) *UserService {
	return &UserService{
		history: history,
		engine:  engine,
		logger:  logger.With().Str("component", "user_service").Logger(),
	}
}

// Create registers a user with an empty history.
func (s *UserService) Create(ctx context.Context, userID int64) error {
	if err := s.history.Create(ctx, userID); err != nil {
		return err
	}
	logging.Ctx(ctx).Info().Int64("user_id", userID).Msg("User registered")
	return nil
}

// RecordView sets the dwell seconds the user spent on a listing.
func (s *UserService) RecordView(ctx context.Context, userID, listingID int64, duration float64) error {
	if err := models.ValidateDuration(duration); err != nil {
		return err
	}

	unlock := s.engine.LockUser(userID)
	defer unlock()

	return s.history.Upsert(ctx, userID, listingID, duration)
}

// History returns the user's history ordered by dwell time, longest first.
func (s *UserService) History(ctx context.Context, userID int64) ([]models.HistoryEntry, error) {
	unlock := s.engine.LockUser(userID)
	defer unlock()

	hist, err := s.history.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return hist.Ranked(), nil
}

// Recommend returns the next listing to show the user.
func (s *UserService) Recommend(ctx context.Context, userID int64) (*models.Listing, error) {
	return s.engine.Recommend(ctx, userID)
}

// EngineStats exposes engine counters for diagnostics.
func (s *UserService) EngineStats() recommend.Stats {
	return s.engine.Stats()
}
