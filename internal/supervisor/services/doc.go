// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

// Package services provides suture.Service wrappers for long-running
// components: the HTTP server and the similarity index reconcile loop.
package services
