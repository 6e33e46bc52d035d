// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

/*
Package api provides the HTTP REST API layer for Listingrec.

Routes (all under /api/v1):

	GET  /health/live                          liveness probe
	GET  /health/ready                         readiness probe with index status
	POST /listings                             create a listing
	GET  /listings/{listingID}                 fetch one listing
	POST /users                                register a user
	GET  /users/{userID}/listings              listings owned by a user
	GET  /users/{userID}/history               view history, longest dwell first
	PUT  /users/{userID}/history/{listingID}   set view duration
	GET  /users/{userID}/next                  next recommended listing

Prometheus metrics are served on /metrics outside the versioned prefix.

Every response uses the models.APIResponse envelope. Service errors map to
status codes as follows:

	models.ErrNotFound                                  404 NOT_FOUND
	models.ErrUnavailable                               503 UNAVAILABLE
	models.ErrInvalidListing, models.ErrInvalidDuration 400 VALIDATION_ERROR
	models.ErrUserExists                                409 CONFLICT
	anything else                                       500 INTERNAL_ERROR

Usage Example:

	handler := api.NewHandler(listings, users, api.WithReadinessCheck("database", db.Ping))
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(&cfg.Security))
	srv := &http.Server{Addr: cfg.Server.Addr(), Handler: router.SetupChi()}
*/
package api
