// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

/*
Package middleware provides HTTP middleware shared by the API router.

Key Components:

  - RequestID: UUID-based request tracking. The ID is echoed in the
    X-Request-ID response header and attached to the logging context so
    every log line of a request carries it.
  - PrometheusMetrics: request count and latency, labeled by the chi route
    pattern rather than the raw path so user and listing IDs do not explode
    label cardinality.

Both are func(http.Handler) http.Handler and plug directly into chi's r.Use:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
