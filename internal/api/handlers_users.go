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

// CreateUser handles POST /api/v1/users.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CreateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx, cancel := h.requestContext(r.Context())
	defer cancel()

	if err := h.users.Create(ctx, *req.UserID); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusCreated, models.HistoryResponse{UserID: *req.UserID, Entries: []models.HistoryEntry{}}, start)
}

// SetViewDuration handles PUT /api/v1/users/{userID}/history/{listingID}.
// The duration replaces any previous value for the pair.
func (h *Handler) SetViewDuration(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, err := idParam(r, "userID")
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return
	}
	listingID, err := idParam(r, "listingID")
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return
	}

	var req models.ViewDurationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx, cancel := h.requestContext(r.Context())
	defer cancel()

	if err := h.users.RecordView(ctx, userID, listingID, *req.Duration); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, models.HistoryEntry{ListingID: listingID, Duration: *req.Duration}, start)
}

// GetHistory handles GET /api/v1/users/{userID}/history.
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, err := idParam(r, "userID")
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return
	}

	ctx, cancel := h.requestContext(r.Context())
	defer cancel()

	entries, err := h.users.History(ctx, userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, models.HistoryResponse{UserID: userID, Entries: entries}, start)
}

// RecommendNext handles GET /api/v1/users/{userID}/next.
//
// Returns the next listing to show. 404 means the user is unknown; 503 means
// the catalog cannot produce a recommendation yet.
func (h *Handler) RecommendNext(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, err := idParam(r, "userID")
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return
	}

	ctx, cancel := h.requestContext(logging.ContextWithUserID(r.Context(), userID))
	defer cancel()

	listing, err := h.users.Recommend(ctx, userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, http.StatusOK, listing, start)
}
