// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/listingrec/internal/metrics"
	"github.com/tomtom215/listingrec/internal/models"
)

type countingCatalog struct {
	*MemoryCatalog
	gets int
}

func (c *countingCatalog) Get(ctx context.Context, id int64) (*models.Listing, error) {
	c.gets++
	return c.MemoryCatalog.Get(ctx, id)
}

func TestCachedCatalog_ServesRepeatGetsFromCache(t *testing.T) {
	ctx := context.Background()
	backing := &countingCatalog{MemoryCatalog: NewMemoryCatalog()}
	id, err := backing.Append(ctx, models.Listing{Name: "chair", Description: "oak chair"})
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	c := NewCachedCatalog(backing, 8, time.Minute)
	hitsBefore := testutil.ToFloat64(metrics.CacheHits.WithLabelValues(catalogCacheName))

	for i := 0; i < 3; i++ {
		l, err := c.Get(ctx, id)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if l.Name != "chair" {
			t.Errorf("Get().Name = %q", l.Name)
		}
	}

	if backing.gets != 1 {
		t.Errorf("backing Get called %d times, want 1", backing.gets)
	}
	if got := testutil.ToFloat64(metrics.CacheHits.WithLabelValues(catalogCacheName)) - hitsBefore; got != 2 {
		t.Errorf("cache hits delta = %v, want 2", got)
	}
	if s := c.CacheStats(); s.Hits != 2 || s.Misses != 1 {
		t.Errorf("CacheStats() = %+v", s)
	}
}

func TestCachedCatalog_DoesNotCacheMisses(t *testing.T) {
	ctx := context.Background()
	backing := &countingCatalog{MemoryCatalog: NewMemoryCatalog()}
	c := NewCachedCatalog(backing, 8, time.Minute)

	if _, err := c.Get(ctx, 0); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("Get() error = %v, want ErrNotFound", err)
	}
	if _, err := backing.Append(ctx, models.Listing{Name: "a", Description: "b"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if _, err := c.Get(ctx, 0); err != nil {
		t.Errorf("Get() after append error = %v", err)
	}
}

func TestCachedCatalog_ReturnsIndependentCopies(t *testing.T) {
	ctx := context.Background()
	c := NewCachedCatalog(NewMemoryCatalog(), 8, time.Minute)
	if _, err := c.Append(ctx, models.Listing{Name: "a", Description: "b"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	first, _ := c.Get(ctx, 0)
	first.Name = "mutated"
	second, _ := c.Get(ctx, 0)
	if second.Name != "a" {
		t.Errorf("cached listing mutated through returned pointer: %q", second.Name)
	}
}

func TestInstrument_NotFoundIsNotAnError(t *testing.T) {
	ctx := context.Background()
	s := Instrument("memtest", NewMemoryHistory())

	_, _ = s.Get(ctx, 1)
	if got := testutil.ToFloat64(metrics.StoreOperationErrors.WithLabelValues("memtest", "history_get")); got != 0 {
		t.Errorf("errors for not-found = %v, want 0", got)
	}

	_ = s.Create(ctx, 1)
	_ = s.Upsert(ctx, 1, 0, -5)
	if got := testutil.ToFloat64(metrics.StoreOperationErrors.WithLabelValues("memtest", "history_upsert")); got != 1 {
		t.Errorf("errors for invalid upsert = %v, want 1", got)
	}
}
