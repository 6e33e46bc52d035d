// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

package similarity

import (
	"math"
	"sort"
)

// Term is a single vocabulary-id/weight pair in a sparse vector.
type Term struct {
	ID     int
	Weight float64
}

// Vector is a sparse TF-IDF vector, always sorted by term ID so two vectors
// can be combined with a merge-join.
type Vector []Term

// newVector builds a sorted, L2-normalized Vector from raw term weights.
// An empty weight map yields the zero vector (nil).
func newVector(weights map[int]float64) Vector {
	if len(weights) == 0 {
		return nil
	}

	v := make(Vector, 0, len(weights))
	var norm float64
	for id, w := range weights {
		v = append(v, Term{ID: id, Weight: w})
		norm += w * w
	}
	sort.Slice(v, func(i, j int) bool {
		return v[i].ID < v[j].ID
	})

	if norm == 0 {
		return nil
	}
	norm = math.Sqrt(norm)
	for i := range v {
		v[i].Weight /= norm
	}
	return v
}

// IsZero reports whether the vector carries no terms.
func (v Vector) IsZero() bool {
	return len(v) == 0
}

// Dot computes the dot product of two sorted sparse vectors in O(n+m).
// For L2-normalized vectors this is their cosine similarity.
func Dot(a, b Vector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	var dot float64
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].ID == b[j].ID:
			dot += a[i].Weight * b[j].Weight
			i++
			j++
		case a[i].ID < b[j].ID:
			i++
		default:
			j++
		}
	}
	return dot
}
