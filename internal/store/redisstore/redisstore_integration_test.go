// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

//go:build integration

package redisstore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/tomtom215/listingrec/internal/config"
	"github.com/tomtom215/listingrec/internal/store"
	"github.com/tomtom215/listingrec/internal/store/storetest"
	"github.com/tomtom215/listingrec/internal/testinfra"
)

func TestStore_Integration(t *testing.T) {
	testinfra.SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	container, err := testinfra.NewRedisContainer(ctx)
	if err != nil {
		t.Fatalf("NewRedisContainer() error = %v", err)
	}
	defer testinfra.CleanupContainer(t, ctx, container.Container)

	n := 0
	storetest.RunHistoryTests(t, func(t *testing.T) store.HistoryStore {
		n++
		s := New(&config.RedisConfig{
			Addr:        container.Addr,
			KeyPrefix:   fmt.Sprintf("it%d:", n),
			DialTimeout: 5 * time.Second,
		}, config.BreakerConfig{MaxRequests: 1, Interval: time.Minute, Timeout: 10 * time.Second, FailureThreshold: 5})
		t.Cleanup(func() { _ = s.Close() })

		if err := s.Ping(ctx); err != nil {
			t.Fatalf("Ping() error = %v", err)
		}
		return s
	})
}
