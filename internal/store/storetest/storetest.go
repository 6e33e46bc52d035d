// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

// Package storetest holds behavior tests every store backend must pass.
package storetest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/tomtom215/listingrec/internal/models"
	"github.com/tomtom215/listingrec/internal/store"
)

// RunCatalogTests exercises a CatalogStore. newStore must return an empty store.
func RunCatalogTests(t *testing.T, newStore func(t *testing.T) store.CatalogStore) {
	t.Helper()

	t.Run("dense ids in append order", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		for i, name := range []string{"red bicycle", "blue bicycle", "cast iron pot"} {
			id, err := s.Append(ctx, models.Listing{ID: 99, Name: name, Description: name, OwnerID: 7})
			if err != nil {
				t.Fatalf("Append(%q) error = %v", name, err)
			}
			if id != int64(i) {
				t.Errorf("Append(%q) id = %d, want %d", name, id, i)
			}
		}

		n, err := s.Count(ctx)
		if err != nil {
			t.Fatalf("Count() error = %v", err)
		}
		if n != 3 {
			t.Errorf("Count() = %d, want 3", n)
		}

		all, err := s.All(ctx)
		if err != nil {
			t.Fatalf("All() error = %v", err)
		}
		if len(all) != 3 {
			t.Fatalf("All() len = %d, want 3", len(all))
		}
		for i := range all {
			if all[i].ID != int64(i) {
				t.Errorf("All()[%d].ID = %d", i, all[i].ID)
			}
		}
		if all[2].Name != "cast iron pot" {
			t.Errorf("All()[2].Name = %q", all[2].Name)
		}
	})

	t.Run("get", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		want := models.Listing{Name: "lamp", Description: "brass desk lamp", OwnerID: 3, Price: 1500}
		id, err := s.Append(ctx, want)
		if err != nil {
			t.Fatalf("Append() error = %v", err)
		}
		want.ID = id

		got, err := s.Get(ctx, id)
		if err != nil {
			t.Fatalf("Get(%d) error = %v", id, err)
		}
		if *got != want {
			t.Errorf("Get(%d) = %+v, want %+v", id, *got, want)
		}

		for _, missing := range []int64{-1, 1, 1000} {
			if _, err := s.Get(ctx, missing); !errors.Is(err, models.ErrNotFound) {
				t.Errorf("Get(%d) error = %v, want ErrNotFound", missing, err)
			}
		}
	})

	t.Run("list by owner", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		owners := []int64{1, 2, 1, 3, 1}
		for i, owner := range owners {
			if _, err := s.Append(ctx, models.Listing{Name: "item", Description: "thing", OwnerID: owner, Price: int64(i)}); err != nil {
				t.Fatalf("Append() error = %v", err)
			}
		}

		got, err := s.ListByOwner(ctx, 1)
		if err != nil {
			t.Fatalf("ListByOwner() error = %v", err)
		}
		wantIDs := []int64{0, 2, 4}
		if len(got) != len(wantIDs) {
			t.Fatalf("ListByOwner(1) len = %d, want %d", len(got), len(wantIDs))
		}
		for i, id := range wantIDs {
			if got[i].ID != id {
				t.Errorf("ListByOwner(1)[%d].ID = %d, want %d", i, got[i].ID, id)
			}
		}

		none, err := s.ListByOwner(ctx, 42)
		if err != nil {
			t.Fatalf("ListByOwner(42) error = %v", err)
		}
		if len(none) != 0 {
			t.Errorf("ListByOwner(42) = %v, want empty", none)
		}
	})

	t.Run("concurrent append keeps ids dense", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		const n = 20
		ids := make(chan int64, n)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				id, err := s.Append(ctx, models.Listing{Name: "x", Description: "y"})
				if err != nil {
					t.Errorf("Append() error = %v", err)
					return
				}
				ids <- id
			}()
		}
		wg.Wait()
		close(ids)

		seen := make(map[int64]bool)
		for id := range ids {
			if seen[id] {
				t.Errorf("duplicate id %d", id)
			}
			seen[id] = true
		}
		for i := int64(0); i < n; i++ {
			if !seen[i] {
				t.Errorf("missing id %d", i)
			}
		}
	})
}

// RunHistoryTests exercises a HistoryStore. newStore must return an empty store.
func RunHistoryTests(t *testing.T, newStore func(t *testing.T) store.HistoryStore) {
	t.Helper()

	t.Run("unknown user", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		if _, err := s.Get(ctx, 1); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("Get() error = %v, want ErrNotFound", err)
		}
		if err := s.Upsert(ctx, 1, 0, 5); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("Upsert() error = %v, want ErrNotFound", err)
		}
		if err := s.Remove(ctx, 1, 0); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("Remove() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("create", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		if err := s.Create(ctx, 5); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if err := s.Create(ctx, 5); !errors.Is(err, models.ErrUserExists) {
			t.Errorf("second Create() error = %v, want ErrUserExists", err)
		}

		hist, err := s.Get(ctx, 5)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if len(hist) != 0 {
			t.Errorf("new user history = %v, want empty", hist)
		}
	})

	t.Run("upsert overwrites", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		mustCreate(t, s, 1)

		for _, u := range []struct {
			listing  int64
			duration float64
		}{{0, 10}, {1, 2.5}, {0, 30}} {
			if err := s.Upsert(ctx, 1, u.listing, u.duration); err != nil {
				t.Fatalf("Upsert(%d, %v) error = %v", u.listing, u.duration, err)
			}
		}

		hist, err := s.Get(ctx, 1)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		want := models.History{0: 30, 1: 2.5}
		if len(hist) != len(want) {
			t.Fatalf("Get() = %v, want %v", hist, want)
		}
		for id, d := range want {
			if hist[id] != d {
				t.Errorf("hist[%d] = %v, want %v", id, hist[id], d)
			}
		}
	})

	t.Run("upsert rejects invalid duration", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		mustCreate(t, s, 1)

		if err := s.Upsert(ctx, 1, 0, -1); !errors.Is(err, models.ErrInvalidDuration) {
			t.Errorf("Upsert(-1) error = %v, want ErrInvalidDuration", err)
		}
	})

	t.Run("remove", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		mustCreate(t, s, 1)

		if err := s.Upsert(ctx, 1, 3, 9); err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
		if err := s.Upsert(ctx, 1, 4, 1); err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
		if err := s.Remove(ctx, 1, 4); err != nil {
			t.Fatalf("Remove() error = %v", err)
		}
		if err := s.Remove(ctx, 1, 4); err != nil {
			t.Errorf("Remove() of absent listing error = %v, want nil", err)
		}

		hist, err := s.Get(ctx, 1)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if _, ok := hist[4]; ok || len(hist) != 1 || hist[3] != 9 {
			t.Errorf("Get() after remove = %v, want map[3:9]", hist)
		}
	})

	t.Run("get returns a copy", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		mustCreate(t, s, 1)

		if err := s.Upsert(ctx, 1, 0, 1); err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
		hist, err := s.Get(ctx, 1)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		hist[0] = 100
		hist[9] = 9

		again, err := s.Get(ctx, 1)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if again[0] != 1 || len(again) != 1 {
			t.Errorf("stored history mutated through returned map: %v", again)
		}
	})

	t.Run("users are isolated", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		mustCreate(t, s, 1)
		mustCreate(t, s, 2)

		if err := s.Upsert(ctx, 1, 0, 5); err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
		hist, err := s.Get(ctx, 2)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if len(hist) != 0 {
			t.Errorf("user 2 history = %v, want empty", hist)
		}
	})
}

func mustCreate(t *testing.T, s store.HistoryStore, userID int64) {
	t.Helper()
	if err := s.Create(context.Background(), userID); err != nil {
		t.Fatalf("Create(%d) error = %v", userID, err)
	}
}
