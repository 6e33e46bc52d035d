// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

//go:build integration

// Package testinfra provides containers for integration tests.
//
// It uses testcontainers-go to start real backing services. Everything here
// is behind the integration build tag:
//
//	go test -tags integration ./internal/store/redisstore/...
//
// # Redis Container
//
//	func TestRedisHistory(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    redis, err := testinfra.NewRedisContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, redis.Container)
//
//	    s := redisstore.New(&config.RedisConfig{Addr: redis.Addr}, breakerCfg)
//	    // ...
//	}
//
// Tests are skipped when Docker is unavailable. The first run pulls the image.
package testinfra
