// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/listingrec/internal/api"
	"github.com/tomtom215/listingrec/internal/config"
	"github.com/tomtom215/listingrec/internal/logging"
	"github.com/tomtom215/listingrec/internal/recommend"
	"github.com/tomtom215/listingrec/internal/service"
	"github.com/tomtom215/listingrec/internal/similarity"
	"github.com/tomtom215/listingrec/internal/supervisor"
	"github.com/tomtom215/listingrec/internal/supervisor/services"
)

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("Listingrec exited with error")
	}
}

func run() error {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logger := logging.Logger()

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("addr", cfg.Server.Addr()).
		Msg("Starting Listingrec with supervisor tree")

	st, err := openStores(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing stores")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := seedCatalog(ctx, &cfg.Catalog, st.catalog); err != nil {
		return err
	}

	index := similarity.NewHolder(similarity.BuildOptions{Workers: cfg.Index.RebuildWorkers}, logger)

	engine, err := recommend.NewEngine(engineConfig(&cfg.Recommend), st.history, st.catalog, index, logger)
	if err != nil {
		return err
	}
	engineCfg := engine.Config()
	logging.Info().
		Str("counter_scope", string(engineCfg.CounterScope)).
		Str("self_exclusion", string(engineCfg.SelfExclusion)).
		Int("exploration_denominator", engineCfg.ExplorationDenominator).
		Int64("eviction_threshold", engineCfg.EvictionThreshold).
		Msg("Recommendation engine configured")

	listings := service.NewListingService(st.catalog, index, logger)
	users := service.NewUserService(st.history, engine, logger)

	opts := []api.HandlerOption{}
	for name, check := range st.checks {
		opts = append(opts, api.WithReadinessCheck(name, check))
	}
	handler := api.NewHandler(listings, users, opts...)
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(&cfg.Security))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return err
	}

	// The reconcile service performs the initial index build.
	tree.AddIndexService(services.NewIndexReconcileService(listings, services.IndexReconcileConfig{
		Interval: cfg.Index.ReconcileInterval,
	}, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// Blocks until a signal cancels ctx and the tree has stopped
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
	return nil
}
