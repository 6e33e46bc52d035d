// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestRecordRecommendation(t *testing.T) {
	before := testutil.ToFloat64(RecommendationsTotal.WithLabelValues(PathExploration))
	RecordRecommendation(PathExploration)
	RecordRecommendation(PathExploration)
	after := testutil.ToFloat64(RecommendationsTotal.WithLabelValues(PathExploration))

	if after-before != 2 {
		t.Errorf("exploration counter delta = %v, want 2", after-before)
	}
}

func TestRecordEviction(t *testing.T) {
	before := testutil.ToFloat64(HistoryEvictionsTotal)
	RecordEviction()
	if got := testutil.ToFloat64(HistoryEvictionsTotal) - before; got != 1 {
		t.Errorf("eviction delta = %v, want 1", got)
	}
}

func TestRecordIndexRebuild(t *testing.T) {
	successBefore := testutil.ToFloat64(IndexRebuildsTotal.WithLabelValues("success"))
	errorBefore := testutil.ToFloat64(IndexRebuildsTotal.WithLabelValues("error"))

	RecordIndexRebuild(5*time.Millisecond, 12, nil)
	if got := testutil.ToFloat64(IndexItems); got != 12 {
		t.Errorf("IndexItems = %v, want 12", got)
	}

	RecordIndexRebuild(time.Millisecond, 99, errors.New("canceled"))
	if got := testutil.ToFloat64(IndexItems); got != 12 {
		t.Errorf("failed rebuild changed IndexItems to %v", got)
	}

	if d := testutil.ToFloat64(IndexRebuildsTotal.WithLabelValues("success")) - successBefore; d != 1 {
		t.Errorf("success delta = %v, want 1", d)
	}
	if d := testutil.ToFloat64(IndexRebuildsTotal.WithLabelValues("error")) - errorBefore; d != 1 {
		t.Errorf("error delta = %v, want 1", d)
	}
}

func TestRecordStoreOperation(t *testing.T) {
	tests := []struct {
		name      string
		backend   string
		operation string
		err       error
		wantErrs  float64
	}{
		{"success", "badger", "get", nil, 0},
		{"failure", "redis", "upsert", errors.New("connection refused"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(StoreOperationErrors.WithLabelValues(tt.backend, tt.operation))
			RecordStoreOperation(tt.backend, tt.operation, 2*time.Millisecond, tt.err)
			after := testutil.ToFloat64(StoreOperationErrors.WithLabelValues(tt.backend, tt.operation))
			if after-before != tt.wantErrs {
				t.Errorf("error delta = %v, want %v", after-before, tt.wantErrs)
			}

			m := &dto.Metric{}
			obs, ok := StoreOperationDuration.WithLabelValues(tt.backend, tt.operation).(interface {
				Write(*dto.Metric) error
			})
			if !ok {
				t.Fatal("histogram does not expose Write")
			}
			if err := obs.Write(m); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			if m.GetHistogram().GetSampleCount() == 0 {
				t.Error("expected at least one duration sample")
			}
		})
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(CacheHits.WithLabelValues("catalog"))
	misses := testutil.ToFloat64(CacheMisses.WithLabelValues("catalog"))

	RecordCacheLookup("catalog", true)
	RecordCacheLookup("catalog", false)
	RecordCacheLookup("catalog", false)

	if d := testutil.ToFloat64(CacheHits.WithLabelValues("catalog")) - hits; d != 1 {
		t.Errorf("hit delta = %v, want 1", d)
	}
	if d := testutil.ToFloat64(CacheMisses.WithLabelValues("catalog")) - misses; d != 2 {
		t.Errorf("miss delta = %v, want 2", d)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/users/{userID}/next", "200"))
	RecordAPIRequest("GET", "/api/v1/users/{userID}/next", "200", 3*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/users/{userID}/next", "200"))
	if after-before != 1 {
		t.Errorf("request delta = %v, want 1", after-before)
	}
}
