// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

package store

import (
	"context"
	"time"

	"github.com/tomtom215/listingrec/internal/cache"
	"github.com/tomtom215/listingrec/internal/metrics"
	"github.com/tomtom215/listingrec/internal/models"
)

const catalogCacheName = "catalog"

// CachedCatalog serves Get from an LRU. Listings are immutable and IDs are
// never reused, so entries never need invalidation; the TTL only bounds
// staleness when another process writes the same database.
type CachedCatalog struct {
	CatalogStore
	lru *cache.LRU[int64, models.Listing]
}

// NewCachedCatalog wraps next with an LRU of the given size and TTL.
func NewCachedCatalog(next CatalogStore, size int, ttl time.Duration) *CachedCatalog {
	return &CachedCatalog{
		CatalogStore: next,
		lru:          cache.NewLRU[int64, models.Listing](size, ttl),
	}
}

func (c *CachedCatalog) Get(ctx context.Context, id int64) (*models.Listing, error) {
	if l, ok := c.lru.Get(id); ok {
		metrics.RecordCacheLookup(catalogCacheName, true)
		return &l, nil
	}
	metrics.RecordCacheLookup(catalogCacheName, false)

	l, err := c.CatalogStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c.lru.Add(id, *l)
	return l, nil
}

// CacheStats returns the LRU counters.
func (c *CachedCatalog) CacheStats() cache.Stats {
	return c.lru.Stats()
}
