// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/listingrec/internal/api"
	"github.com/tomtom215/listingrec/internal/config"
	"github.com/tomtom215/listingrec/internal/database"
	"github.com/tomtom215/listingrec/internal/logging"
	"github.com/tomtom215/listingrec/internal/recommend"
	"github.com/tomtom215/listingrec/internal/seed"
	"github.com/tomtom215/listingrec/internal/store"
	"github.com/tomtom215/listingrec/internal/store/badgerstore"
	"github.com/tomtom215/listingrec/internal/store/redisstore"
)

// stores bundles the opened backends and everything needed to release them.
type stores struct {
	catalog store.CatalogStore
	history store.HistoryStore
	checks  map[string]api.ReadinessCheck
	closers []store.Closer
}

// Close releases backends in reverse open order.
func (s *stores) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// openStores opens the catalog and history backends selected by cfg.
// On error everything opened so far is closed.
func openStores(cfg *config.Config) (_ *stores, err error) {
	s := &stores{checks: make(map[string]api.ReadinessCheck)}
	defer func() {
		if err != nil {
			if closeErr := s.Close(); closeErr != nil {
				logging.Error().Err(closeErr).Msg("Error closing stores after failed startup")
			}
		}
	}()

	var db *database.DB
	if cfg.UsesDuckDB() {
		db, err = database.New(&cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		s.closers = append(s.closers, db)
		s.checks["database"] = db.Ping
		logging.Info().Str("path", cfg.Database.Path).Msg("Database initialized successfully")
	}

	var catalog store.CatalogStore
	switch cfg.Catalog.Backend {
	case config.BackendDuckDB:
		catalog = db.Catalog()
	case config.BackendMemory:
		catalog = store.NewMemoryCatalog()
	default:
		return nil, fmt.Errorf("unknown catalog backend %q", cfg.Catalog.Backend)
	}
	s.catalog = store.NewCachedCatalog(
		store.InstrumentCatalog(cfg.Catalog.Backend, catalog),
		cfg.Catalog.CacheSize,
		cfg.Catalog.CacheTTL,
	)

	var history store.HistoryStore
	switch cfg.History.Backend {
	case config.BackendDuckDB:
		history = db.History()
	case config.BackendBadger:
		bs, openErr := badgerstore.Open(cfg.History.BadgerPath)
		if openErr != nil {
			return nil, fmt.Errorf("open badger history store: %w", openErr)
		}
		s.closers = append(s.closers, bs)
		history = bs
	case config.BackendRedis:
		rs := redisstore.New(&cfg.History.Redis, cfg.History.Breaker)
		s.closers = append(s.closers, rs)
		s.checks["redis"] = rs.Ping
		history = rs
	case config.BackendMemory:
		history = store.NewMemoryHistory()
	default:
		return nil, fmt.Errorf("unknown history backend %q", cfg.History.Backend)
	}
	s.history = store.Instrument(cfg.History.Backend, history)

	logging.Info().
		Str("catalog_backend", cfg.Catalog.Backend).
		Str("history_backend", cfg.History.Backend).
		Msg("Stores opened")

	return s, nil
}

// seedCatalog appends the configured seed file to an empty catalog.
func seedCatalog(ctx context.Context, cfg *config.CatalogConfig, catalog store.CatalogStore) error {
	if cfg.SeedFile == "" {
		return nil
	}

	listings, err := seed.Load(cfg.SeedFile)
	if err != nil {
		return err
	}

	n, err := seed.Apply(ctx, catalog, listings)
	if err != nil {
		return err
	}
	if n > 0 {
		logging.Info().Int("listings", n).Str("file", cfg.SeedFile).Msg("Catalog seeded")
	} else {
		logging.Info().Str("file", cfg.SeedFile).Msg("Seed file skipped: catalog already populated or file empty")
	}
	return nil
}

// engineConfig converts the recommend config section for the engine.
func engineConfig(cfg *config.RecommendConfig) *recommend.Config {
	return &recommend.Config{
		Seed:                   cfg.Seed,
		ColdStartThreshold:     cfg.ColdStartThreshold,
		ExplorationDenominator: cfg.ExplorationDenominator,
		AnchorWindow:           cfg.AnchorWindow,
		CandidateWindow:        cfg.CandidateWindow,
		EvictionThreshold:      cfg.EvictionThreshold,
		CounterScope:           recommend.CounterScope(cfg.CounterScope),
		SelfExclusion:          recommend.SelfExclusion(cfg.SelfExclusion),
	}
}
