// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

/*
Package models defines data structures shared across the Listingrec service.

Key Components:

  - Listing: a catalog item with a dense, append-ordered identifier
  - History: per-user dwell time keyed by listing ID
  - APIResponse: standardized HTTP response wrapper
  - Sentinel errors: ErrNotFound, ErrUnavailable and friends

Listings are immutable once appended. Identifiers are assigned by the catalog
store in append order starting at zero and are never reused, so a listing ID
doubles as its row in the similarity matrix.

Errors returned by stores, the similarity index and the recommendation engine
wrap the sentinels in this package; callers branch with errors.Is.
*/
package models
