// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

// Package main is the entry point for the Listingrec server.
//
// Listingrec serves "next listing" recommendations for a marketplace. Each
// request returns one listing chosen from the user's view history through a
// content-similarity index over listing descriptions, with cold-start and
// exploration fallbacks and periodic eviction of the least engaging entry.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: .env (godotenv), defaults, config.yaml and environment (koanf v2)
//  2. Logging: zerolog, with a slog bridge for the supervisor
//  3. Stores: catalog (duckdb or memory) and history (duckdb, badger, redis or memory)
//  4. Seed: optional YAML catalog appended when the catalog is empty
//  5. Similarity index and recommendation engine
//  6. Supervisor tree: index reconcile service and HTTP server
//
// # Configuration
//
// Layered sources, highest priority wins:
//   - Environment variables (HTTP_PORT, DUCKDB_PATH, HISTORY_BACKEND, ...)
//   - Config file (CONFIG_PATH, ./config.yaml or /etc/listingrec/config.yaml)
//   - Built-in defaults
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the root context. The HTTP server drains
// in-flight requests, the reconcile loop stops, and stores are closed
// (DuckDB checkpoints its WAL on close).
//
// # Example Usage
//
// Ephemeral development instance:
//
//	export CATALOG_BACKEND=memory HISTORY_BACKEND=memory
//	export SEED_FILE=./seed.yaml
//	./listingrec
//
// DuckDB catalog with Redis-backed histories:
//
//	export DUCKDB_PATH=/data/listingrec.duckdb
//	export HISTORY_BACKEND=redis REDIS_ADDR=redis:6379
//	./listingrec
package main
