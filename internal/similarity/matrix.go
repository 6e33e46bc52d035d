// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

package similarity

import (
	"context"
	"fmt"
	"runtime"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/listingrec/internal/models"
)

// BuildOptions tunes a matrix build.
type BuildOptions struct {
	// Workers bounds the goroutines computing matrix rows. Zero means GOMAXPROCS.
	Workers int
}

// Snapshot is an immutable similarity matrix over a catalog.
//
// Row and column i correspond to listing ID i. Listing IDs are dense, so a
// catalog of N listings produces an N x N matrix. The upper triangle is
// computed and mirrored, so Similarity(i, j) == Similarity(j, i).
//
// Memory is O(N^2); this dense layout is intended for small catalogs and sits
// behind the Index interface so it can be replaced by a nearest-neighbor index.
type Snapshot struct {
	n         int
	data      []float64
	vectors   []Vector
	nonEmpty  int
	vocabSize int
	malformed []int64
	builtAt   time.Time
}

// Build computes a Snapshot for the given listings.
//
// Listings are placed by ID; an ID gap leaves a zero row. Descriptions that
// are not valid UTF-8 are treated as empty and reported through Malformed.
func Build(ctx context.Context, listings []models.Listing, opts BuildOptions) (*Snapshot, error) {
	n := 0
	for i := range listings {
		if listings[i].ID < 0 {
			return nil, fmt.Errorf("listing has negative id %d", listings[i].ID)
		}
		if int(listings[i].ID)+1 > n {
			n = int(listings[i].ID) + 1
		}
	}

	snap := &Snapshot{
		n:       n,
		vectors: make([]Vector, n),
		builtAt: time.Now(),
	}
	if n == 0 {
		return snap, nil
	}

	corpus := make([][]string, n)
	for i := range listings {
		l := &listings[i]
		if !utf8.ValidString(l.Description) {
			snap.malformed = append(snap.malformed, l.ID)
			continue
		}
		corpus[l.ID] = Tokenize(l.Description)
	}

	vec := Fit(corpus)
	snap.vocabSize = vec.VocabularySize()
	for i, tokens := range corpus {
		snap.vectors[i] = vec.Transform(tokens)
		if !snap.vectors[i].IsZero() {
			snap.nonEmpty++
		}
	}

	snap.data = make([]float64, n*n)

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			snap.fillRow(i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build similarity matrix: %w", err)
	}

	return snap, nil
}

// fillRow computes the upper-triangle entries of row i and mirrors them.
// Each (i, j) pair with j >= i is owned by exactly one row, so rows can be
// filled concurrently.
func (s *Snapshot) fillRow(i int) {
	vi := s.vectors[i]
	if vi.IsZero() {
		return
	}
	s.data[i*s.n+i] = 1
	for j := i + 1; j < s.n; j++ {
		v := Dot(vi, s.vectors[j])
		s.data[i*s.n+j] = v
		s.data[j*s.n+i] = v
	}
}

// Len returns the number of rows, which equals the catalog size.
func (s *Snapshot) Len() int {
	return s.n
}

// Similarity returns S[i][j]. Out-of-range indices return 0.
func (s *Snapshot) Similarity(i, j int) float64 {
	if i < 0 || j < 0 || i >= s.n || j >= s.n {
		return 0
	}
	return s.data[i*s.n+j]
}

// Available reports whether at least one listing has a non-empty embedding.
// An empty catalog, or one where every description is empty, cannot produce
// recommendations.
func (s *Snapshot) Available() bool {
	return s.n > 0 && s.nonEmpty > 0
}

// VocabularySize returns the number of distinct terms in the corpus.
func (s *Snapshot) VocabularySize() int {
	return s.vocabSize
}

// Malformed returns IDs of listings whose descriptions were treated as empty.
func (s *Snapshot) Malformed() []int64 {
	return s.malformed
}

// BuiltAt returns when the snapshot was built.
func (s *Snapshot) BuiltAt() time.Time {
	return s.builtAt
}
