// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

package api

import (
	"net/http"
	"sort"
	"time"

	"github.com/tomtom215/listingrec/internal/models"
	"github.com/tomtom215/listingrec/internal/recommend"
)

// ReadinessStatus is the body of the readiness probe.
type ReadinessStatus struct {
	Ready  bool               `json:"ready"`
	Index  models.IndexStatus `json:"index"`
	Engine recommend.Stats    `json:"engine"`
	Checks map[string]string  `json:"checks,omitempty"`
	Uptime float64            `json:"uptime_seconds"`
}

// HealthLive handles liveness probe requests.
// Returns 200 OK if the process is alive, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthReady handles readiness probe requests.
//
// Returns 200 when every dependency check passes. An unavailable index does
// not fail readiness: an empty catalog is a valid state and recommendation
// requests answer 503 on their own until listings exist.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r.Context())
	defer cancel()

	status := ReadinessStatus{
		Ready:  true,
		Index:  h.listings.IndexStatus(),
		Engine: h.users.EngineStats(),
		Uptime: time.Since(h.startTime).Seconds(),
	}

	if len(h.checks) > 0 {
		names := make([]string, 0, len(h.checks))
		for name := range h.checks {
			names = append(names, name)
		}
		sort.Strings(names)

		status.Checks = make(map[string]string, len(names))
		for _, name := range names {
			if err := h.checks[name](ctx); err != nil {
				status.Ready = false
				status.Checks[name] = sanitizeLogValue(err.Error())
				continue
			}
			status.Checks[name] = "ok"
		}
	}

	code := http.StatusOK
	respStatus := "success"
	if !status.Ready {
		code = http.StatusServiceUnavailable
		respStatus = "error"
	}

	respondJSON(w, code, &models.APIResponse{
		Status: respStatus,
		Data:   status,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
