// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/listingrec/internal/logging"
	"github.com/tomtom215/listingrec/internal/models"
)

// CreateListing handles POST /api/v1/listings.
// The listing gets the next dense ID and the similarity index is rebuilt
// before the response is written.
func (h *Handler) CreateListing(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.NewListing
	if !decodeBody(w, r, &req) {
		return
	}

	ctx, cancel := h.requestContext(r.Context())
	defer cancel()

	id, err := h.listings.Create(ctx, &req)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	logging.Ctx(ctx).Debug().Int64("listing_id", id).Dur("elapsed", time.Since(start)).Msg("Listing created via API")
	respondSuccess(w, http.StatusCreated, models.CreatedListing{ID: id}, start)
}

// GetListing handles GET /api/v1/listings/{listingID}.
func (h *Handler) GetListing(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := idParam(r, "listingID")
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return
	}

	ctx, cancel := h.requestContext(r.Context())
	defer cancel()

	listing, err := h.listings.Get(ctx, id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, listing, start)
}

// ListUserListings handles GET /api/v1/users/{userID}/listings.
// An owner with no listings gets an empty array, not 404.
func (h *Handler) ListUserListings(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ownerID, err := idParam(r, "userID")
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return
	}

	ctx, cancel := h.requestContext(r.Context())
	defer cancel()

	listings, err := h.listings.ListByOwner(ctx, ownerID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if listings == nil {
		listings = []models.Listing{}
	}
	respondSuccess(w, http.StatusOK, listings, start)
}
