// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

// Package similarity derives item-to-item similarity from listing descriptions.
//
// # Pipeline
//
//  1. Tokenize: lower-case, split into word tokens of two or more runes,
//     drop English stop words
//  2. Fit: vocabulary and document frequency over the full catalog
//  3. Transform: raw term frequency times smoothed IDF, ln((1+N)/(1+df)) + 1,
//     L2-normalized into a sparse Vector
//  4. Build: dense symmetric matrix of pairwise dot products (cosine similarity)
//
// # Thread Safety
//
// A Snapshot is immutable once built. Holder swaps snapshots atomically, so
// readers never observe a partially built matrix. The vocabulary depends on
// the whole corpus, which is why every catalog change triggers a full rebuild
// rather than a patch.
package similarity
