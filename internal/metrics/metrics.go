// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

// Package metrics holds the Prometheus collectors for the service.
//
// Collectors are registered on the default registry at package init via
// promauto and exposed by the API under /metrics. Callers use the Record*
// helpers rather than touching collectors directly.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recommendation path labels.
const (
	PathColdStart   = "cold_start"
	PathExploration = "exploration"
	PathSimilarity  = "similarity"
	PathError       = "error"
)

var (
	// Recommendation Engine
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listingrec_recommendations_total",
			Help: "Recommendations served, by selection path",
		},
		[]string{"path"},
	)

	HistoryEvictionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "listingrec_history_evictions_total",
			Help: "Least-engaging history entries removed by the eviction policy",
		},
	)

	// Similarity Index
	IndexRebuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "listingrec_index_rebuild_duration_seconds",
			Help:    "Duration of full similarity index rebuilds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
	)

	IndexRebuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listingrec_index_rebuilds_total",
			Help: "Similarity index rebuilds by outcome",
		},
		[]string{"status"},
	)

	IndexItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "listingrec_index_items",
			Help: "Listings covered by the served similarity index",
		},
	)

	// Stores
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "listingrec_store_operation_duration_seconds",
			Help:    "Duration of catalog and history store operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "operation"},
	)

	StoreOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listingrec_store_operation_errors_total",
			Help: "Failed catalog and history store operations",
		},
		[]string{"backend", "operation"},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listingrec_cache_hits_total",
			Help: "Cache hits by cache name",
		},
		[]string{"cache"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listingrec_cache_misses_total",
			Help: "Cache misses by cache name",
		},
		[]string{"cache"},
	)

	// API
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listingrec_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "listingrec_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Circuit Breaker
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "listingrec_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listingrec_circuit_breaker_requests_total",
			Help: "Requests through the circuit breaker by result",
		},
		[]string{"name", "result"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listingrec_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)
)

// RecordRecommendation counts a served recommendation by path.
func RecordRecommendation(path string) {
	RecommendationsTotal.WithLabelValues(path).Inc()
}

// RecordEviction counts one history eviction.
func RecordEviction() {
	HistoryEvictionsTotal.Inc()
}

// RecordIndexRebuild records a rebuild attempt over the given number of listings.
func RecordIndexRebuild(duration time.Duration, items int, err error) {
	IndexRebuildDuration.Observe(duration.Seconds())
	if err != nil {
		IndexRebuildsTotal.WithLabelValues("error").Inc()
		return
	}
	IndexRebuildsTotal.WithLabelValues("success").Inc()
	IndexItems.Set(float64(items))
}

// RecordStoreOperation records a store call for the given backend.
func RecordStoreOperation(backend, operation string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(backend, operation).Observe(duration.Seconds())
	if err != nil {
		StoreOperationErrors.WithLabelValues(backend, operation).Inc()
	}
}

// RecordCacheLookup records a cache hit or miss.
func RecordCacheLookup(cache string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cache).Inc()
		return
	}
	CacheMisses.WithLabelValues(cache).Inc()
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, route, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, status).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
