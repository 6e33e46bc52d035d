// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/listingrec/internal/models"
	"github.com/tomtom215/listingrec/internal/similarity"
	"github.com/tomtom215/listingrec/internal/store"
)

// ListingService manages the catalog and keeps the index in step with it.
type ListingService struct {
	catalog store.CatalogStore
	index   *similarity.Holder
	logger  zerolog.Logger
}

// NewListingService creates a ListingService.
//
//nolint:gocritic // zerolog.Logger is passed by value per zerolog convention
func NewListingService(catalog store.CatalogStore, index *similarity.Holder, logger zerolog.Logger) *ListingService {
	return &ListingService{
		catalog: catalog,
		index:   index,
		logger:  logger.With().Str("component", "listing_service").Logger(),
	}
}

// Create validates and stores a listing, then rebuilds the index.
//
// The listing is durable once Append succeeds. A failed rebuild is logged
// and left to the reconcile service; the previous index keeps serving.
func (s *ListingService) Create(ctx context.Context, in *models.NewListing) (int64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}

	id, err := s.catalog.Append(ctx, in.ToListing(0))
	if err != nil {
		return 0, fmt.Errorf("append listing: %w", err)
	}

	if err := s.RebuildIndex(ctx); err != nil {
		s.logger.Error().Err(err).Int64("listing_id", id).Msg("Index rebuild after create failed; reconcile will retry")
	}

	s.logger.Info().Int64("listing_id", id).Int64("owner_id", in.OwnerID).Msg("Listing created")
	return id, nil
}

// Get returns one listing.
func (s *ListingService) Get(ctx context.Context, id int64) (*models.Listing, error) {
	return s.catalog.Get(ctx, id)
}

// ListByOwner returns an owner's listings in ID order.
func (s *ListingService) ListByOwner(ctx context.Context, ownerID int64) ([]models.Listing, error) {
	return s.catalog.ListByOwner(ctx, ownerID)
}

// RebuildIndex recomputes the similarity index from the full catalog. The
// catalog is read under the index rebuild lock, so concurrent creates
// install their snapshots in catalog order.
func (s *ListingService) RebuildIndex(ctx context.Context) error {
	if err := s.index.RebuildFrom(ctx, s.catalog.All); err != nil {
		return fmt.Errorf("rebuild from catalog: %w", err)
	}
	return nil
}

// IndexDrift reports whether the served index no longer covers the catalog.
func (s *ListingService) IndexDrift(ctx context.Context) (bool, error) {
	n, err := s.catalog.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count catalog: %w", err)
	}
	return int64(s.index.Current().Len()) != n, nil
}

// IndexStatus reports the served index.
func (s *ListingService) IndexStatus() models.IndexStatus {
	return s.index.Status()
}
