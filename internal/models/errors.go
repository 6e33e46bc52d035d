// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

package models

import "errors"

var (
	// ErrNotFound indicates an unknown user or listing.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable indicates no recommendation can be produced, either because
	// the catalog is empty or no description carries any signal, or because a
	// backing store is temporarily rejecting requests.
	ErrUnavailable = errors.New("unavailable")

	// ErrInvalidListing indicates a listing failed creation checks.
	ErrInvalidListing = errors.New("invalid listing")

	// ErrInvalidDuration indicates a dwell time that is negative or not finite.
	ErrInvalidDuration = errors.New("invalid duration")

	// ErrUserExists indicates a user already has a history.
	ErrUserExists = errors.New("user already exists")
)
