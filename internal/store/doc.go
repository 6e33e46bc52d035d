// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

/*
Package store defines the catalog and history persistence contracts and
provides the in-memory backends plus decorators shared by every backend.

Contracts:
  - CatalogStore: append-only listing catalog with dense, zero-based IDs
  - HistoryStore: per-user map of listing ID to dwell seconds

Backends:
  - Memory (this package): map and slice behind a RWMutex, used in tests and
    for ephemeral deployments
  - DuckDB (internal/database): catalog and history tables
  - Badger (internal/store/badgerstore): embedded KV history
  - Redis (internal/store/redisstore): shared history behind a circuit breaker

Decorators:
  - Instrument / InstrumentCatalog: Prometheus timing and error counts per backend
  - CachedCatalog: LRU in front of CatalogStore.Get

All implementations return models.ErrNotFound for unknown users and listings,
wrapped with context, so callers match with errors.Is.
*/
package store
