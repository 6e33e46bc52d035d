// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

package similarity

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/tomtom215/listingrec/internal/models"
)

func listings(descs ...string) []models.Listing {
	out := make([]models.Listing, len(descs))
	for i, d := range descs {
		out[i] = models.Listing{ID: int64(i), Name: fmt.Sprintf("item-%d", i), Description: d}
	}
	return out
}

func mustBuild(t *testing.T, items []models.Listing) *Snapshot {
	t.Helper()
	snap, err := Build(context.Background(), items, BuildOptions{Workers: 2})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return snap
}

func TestBuildBicycleExample(t *testing.T) {
	t.Parallel()

	snap := mustBuild(t, listings("red bicycle", "blue bicycle", "cast iron pot"))

	if !snap.Available() {
		t.Fatal("expected index to be available")
	}
	if snap.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", snap.Len())
	}
	if s01, s02 := snap.Similarity(0, 1), snap.Similarity(0, 2); s01 <= s02 {
		t.Errorf("sim(0,1) = %v should exceed sim(0,2) = %v", s01, s02)
	}
	if s02 := snap.Similarity(0, 2); s02 != 0 {
		t.Errorf("sim(0,2) = %v, want 0 for disjoint vocabularies", s02)
	}
}

func TestBuildSymmetryAndDiagonal(t *testing.T) {
	t.Parallel()

	snap := mustBuild(t, listings(
		"vintage road bicycle with steel frame",
		"mountain bicycle aluminium frame",
		"cast iron skillet pan",
		"non-stick frying pan",
		"steel kitchen knife set",
		"oak dining table",
	))

	n := snap.Len()
	for i := 0; i < n; i++ {
		if d := snap.Similarity(i, i); math.Abs(d-1) > epsilon {
			t.Errorf("S[%d][%d] = %v, want 1", i, i, d)
		}
		for j := 0; j < n; j++ {
			if snap.Similarity(i, j) != snap.Similarity(j, i) {
				t.Errorf("S[%d][%d] != S[%d][%d]", i, j, j, i)
			}
			if s := snap.Similarity(i, j); s < -epsilon || s > 1+epsilon {
				t.Errorf("S[%d][%d] = %v out of [0,1]", i, j, s)
			}
		}
	}
}

func TestBuildDuplicateDescription(t *testing.T) {
	t.Parallel()

	snap := mustBuild(t, listings("red bicycle", "cast iron pot", "red bicycle"))
	if s := snap.Similarity(2, 0); math.Abs(s-1) > 1e-9 {
		t.Errorf("S[new][existing] = %v, want 1", s)
	}
}

func TestBuildEmptyCorpusUnavailable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		items []models.Listing
	}{
		{"no listings", nil},
		{"all blank", listings("", "   ", "")},
		{"only stop words", listings("the and of", "is it")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			snap := mustBuild(t, tt.items)
			if snap.Available() {
				t.Error("expected index to be unavailable")
			}
			for i := 0; i < snap.Len(); i++ {
				if s := snap.Similarity(i, i); s != 0 {
					t.Errorf("S[%d][%d] = %v, want 0 for empty description", i, i, s)
				}
			}
		})
	}
}

func TestBuildMalformedDescriptionTreatedAsEmpty(t *testing.T) {
	t.Parallel()

	snap := mustBuild(t, listings("red bicycle", "red \xff\xfe bicycle", "blue bicycle"))

	if got := snap.Malformed(); len(got) != 1 || got[0] != 1 {
		t.Fatalf("Malformed() = %v, want [1]", got)
	}
	if s := snap.Similarity(1, 0); s != 0 {
		t.Errorf("malformed row similarity = %v, want 0", s)
	}
	if !snap.Available() {
		t.Error("expected index to stay available")
	}
}

func TestBuildPlacesListingsByID(t *testing.T) {
	t.Parallel()

	items := []models.Listing{
		{ID: 2, Description: "cast iron pot"},
		{ID: 0, Description: "red bicycle"},
		{ID: 1, Description: "blue bicycle"},
	}
	snap := mustBuild(t, items)
	if snap.Similarity(0, 1) <= 0 {
		t.Error("expected listings 0 and 1 to share the bicycle term")
	}
	if snap.Similarity(0, 2) != 0 {
		t.Error("expected listings 0 and 2 to be unrelated")
	}
}

func TestBuildRejectsNegativeID(t *testing.T) {
	t.Parallel()

	_, err := Build(context.Background(), []models.Listing{{ID: -1, Description: "x"}}, BuildOptions{})
	if err == nil {
		t.Fatal("expected error for negative id")
	}
}

func TestBuildCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Build(ctx, listings("red bicycle", "blue bicycle"), BuildOptions{Workers: 1})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Build() error = %v, want context.Canceled", err)
	}
}

func TestSimilarityOutOfRange(t *testing.T) {
	t.Parallel()

	snap := mustBuild(t, listings("red bicycle"))
	for _, pair := range [][2]int{{-1, 0}, {0, 1}, {5, 5}} {
		if s := snap.Similarity(pair[0], pair[1]); s != 0 {
			t.Errorf("Similarity(%d,%d) = %v, want 0", pair[0], pair[1], s)
		}
	}
}

func BenchmarkBuild(b *testing.B) {
	words := []string{"red", "blue", "bicycle", "pot", "iron", "steel", "oak", "table", "lamp", "chair"}
	items := make([]models.Listing, 500)
	for i := range items {
		items[i] = models.Listing{
			ID:          int64(i),
			Description: fmt.Sprintf("%s %s %s", words[i%10], words[(i/10)%10], words[(i/7)%10]),
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Build(context.Background(), items, BuildOptions{}); err != nil {
			b.Fatal(err)
		}
	}
}
