// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

// Package service composes the stores, the similarity index and the
// recommendation engine into the operations the HTTP API exposes.
//
// ListingService owns the catalog write path: every accepted listing
// triggers a synchronous rebuild of the similarity index so the next
// recommendation sees it. UserService owns view history writes and
// recommendation reads, and holds the engine's per-user lock around every
// history read-modify-write.
package service
