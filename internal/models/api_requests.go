// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

package models

// CreateUserRequest registers a user with an empty view history.
type CreateUserRequest struct {
	UserID *int64 `json:"user_id" validate:"required,min=0"`
}

// ViewDurationRequest sets how long a user viewed a listing, in seconds.
type ViewDurationRequest struct {
	Duration *float64 `json:"duration" validate:"required,finite,gte=0"`
}

// HistoryResponse is a user's view history ordered by engagement.
type HistoryResponse struct {
	UserID  int64          `json:"user_id"`
	Entries []HistoryEntry `json:"entries"`
}
