// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

package store

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/listingrec/internal/metrics"
	"github.com/tomtom215/listingrec/internal/models"
)

// observe records a store call. Lookups that miss are not failures.
func observe(backend, op string, start time.Time, err error) {
	if errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrUserExists) {
		err = nil
	}
	metrics.RecordStoreOperation(backend, op, time.Since(start), err)
}

type instrumentedHistory struct {
	backend string
	next    HistoryStore
}

// Instrument wraps a HistoryStore with per-operation Prometheus metrics
// labelled with the backend name.
func Instrument(backend string, next HistoryStore) HistoryStore {
	return &instrumentedHistory{backend: backend, next: next}
}

func (s *instrumentedHistory) Get(ctx context.Context, userID int64) (hist models.History, err error) {
	defer func(start time.Time) { observe(s.backend, "history_get", start, err) }(time.Now())
	return s.next.Get(ctx, userID)
}

func (s *instrumentedHistory) Upsert(ctx context.Context, userID, listingID int64, duration float64) (err error) {
	defer func(start time.Time) { observe(s.backend, "history_upsert", start, err) }(time.Now())
	return s.next.Upsert(ctx, userID, listingID, duration)
}

func (s *instrumentedHistory) Remove(ctx context.Context, userID, listingID int64) (err error) {
	defer func(start time.Time) { observe(s.backend, "history_remove", start, err) }(time.Now())
	return s.next.Remove(ctx, userID, listingID)
}

func (s *instrumentedHistory) Create(ctx context.Context, userID int64) (err error) {
	defer func(start time.Time) { observe(s.backend, "history_create", start, err) }(time.Now())
	return s.next.Create(ctx, userID)
}

type instrumentedCatalog struct {
	backend string
	next    CatalogStore
}

// InstrumentCatalog wraps a CatalogStore with per-operation Prometheus metrics.
func InstrumentCatalog(backend string, next CatalogStore) CatalogStore {
	return &instrumentedCatalog{backend: backend, next: next}
}

func (s *instrumentedCatalog) All(ctx context.Context) (out []models.Listing, err error) {
	defer func(start time.Time) { observe(s.backend, "catalog_all", start, err) }(time.Now())
	return s.next.All(ctx)
}

func (s *instrumentedCatalog) Append(ctx context.Context, listing models.Listing) (id int64, err error) {
	defer func(start time.Time) { observe(s.backend, "catalog_append", start, err) }(time.Now())
	return s.next.Append(ctx, listing)
}

func (s *instrumentedCatalog) Get(ctx context.Context, id int64) (l *models.Listing, err error) {
	defer func(start time.Time) { observe(s.backend, "catalog_get", start, err) }(time.Now())
	return s.next.Get(ctx, id)
}

func (s *instrumentedCatalog) ListByOwner(ctx context.Context, ownerID int64) (out []models.Listing, err error) {
	defer func(start time.Time) { observe(s.backend, "catalog_list_by_owner", start, err) }(time.Now())
	return s.next.ListByOwner(ctx, ownerID)
}

func (s *instrumentedCatalog) Count(ctx context.Context) (n int64, err error) {
	defer func(start time.Time) { observe(s.backend, "catalog_count", start, err) }(time.Now())
	return s.next.Count(ctx)
}
