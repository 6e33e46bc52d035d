// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

package store

import (
	"context"

	"github.com/tomtom215/listingrec/internal/models"
)

// CatalogStore persists listings. IDs are assigned by Append in order and are
// never reused.
type CatalogStore interface {
	// All returns every listing ordered by ID.
	All(ctx context.Context) ([]models.Listing, error)

	// Append stores the listing under the next dense ID and returns that ID.
	// The ID field of the argument is ignored.
	Append(ctx context.Context, listing models.Listing) (int64, error)

	// Get returns the listing with the given ID or ErrNotFound.
	Get(ctx context.Context, id int64) (*models.Listing, error)

	// ListByOwner returns the owner's listings ordered by ID.
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Listing, error)

	// Count returns the number of listings.
	Count(ctx context.Context) (int64, error)
}

// HistoryStore persists per-user view durations.
type HistoryStore interface {
	// Get returns a copy of the user's history or ErrNotFound.
	Get(ctx context.Context, userID int64) (models.History, error)

	// Upsert sets the dwell seconds for one listing. Unknown users yield ErrNotFound.
	Upsert(ctx context.Context, userID, listingID int64, duration float64) error

	// Remove deletes one listing from the history. Removing an absent
	// listing is a no-op; an unknown user yields ErrNotFound.
	Remove(ctx context.Context, userID, listingID int64) error

	// Create registers a user with an empty history, or ErrUserExists.
	Create(ctx context.Context, userID int64) error
}

// Closer is implemented by backends holding external resources.
type Closer interface {
	Close() error
}
