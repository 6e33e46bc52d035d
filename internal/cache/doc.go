// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

/*
Package cache provides a bounded, thread-safe LRU cache with per-entry TTL.

The catalog store wraps its Get path with an LRU so that hot listings are
served without a database round trip. Entries expire after the configured TTL
and the least recently used entry is evicted when capacity is exceeded.

Usage:

	c := cache.NewLRU[int64, models.Listing](10000, 5*time.Minute)
	c.Add(42, listing)
	if l, ok := c.Get(42); ok {
	    // use l
	}

All operations are O(1). Get moves the entry to the front of the recency list,
so it takes the write lock.
*/
package cache
