// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

package api

import (
	"context"
	"time"

	"github.com/tomtom215/listingrec/internal/service"
)

// requestTimeout bounds the store and engine work done for one request.
const requestTimeout = 10 * time.Second

// ReadinessCheck reports whether a dependency can serve traffic.
type ReadinessCheck func(ctx context.Context) error

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_listings.go: listing endpoints
//   - handlers_users.go: user, history and recommendation endpoints
//   - handlers_health.go: liveness and readiness probes
//   - handlers_helpers.go: response and parsing helpers
type Handler struct {
	listings  *service.ListingService
	users     *service.UserService
	checks    map[string]ReadinessCheck
	timeout   time.Duration
	startTime time.Time
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithReadinessCheck adds a named dependency check to the readiness probe.
func WithReadinessCheck(name string, check ReadinessCheck) HandlerOption {
	return func(h *Handler) {
		h.checks[name] = check
	}
}

// WithRequestTimeout overrides the per-request deadline.
func WithRequestTimeout(d time.Duration) HandlerOption {
	return func(h *Handler) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// NewHandler creates a new API handler.
func NewHandler(listings *service.ListingService, users *service.UserService, opts ...HandlerOption) *Handler {
	h := &Handler{
		listings:  listings,
		users:     users,
		checks:    make(map[string]ReadinessCheck),
		timeout:   requestTimeout,
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, h.timeout)
}
