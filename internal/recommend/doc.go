// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

// Package recommend picks the next listing to show a user.
//
// # Selection Policy
//
// Each call to Engine.Next:
//
//  1. Increments the engagement counter
//  2. Loads the user's dwell-time history (ErrNotFound for unknown users)
//  3. Fails with ErrUnavailable when the similarity index has no signal
//  4. Cold start: ten or fewer history entries return a uniformly random listing
//  5. Exploration: one request in five returns a uniformly random listing
//  6. Anchor: a random entry among the ten longest dwell times
//  7. Ranking: listings ordered by similarity to the anchor, anchor excluded,
//     and a random pick among the ten most similar
//  8. Eviction: once the counter reaches three it is reset and the history
//     entry with the shortest dwell time is deleted, so interests drift
//
// All thresholds are configurable; see Config.
//
// # Thread Safety
//
// The engine is safe for concurrent use. A single seeded random source is
// guarded by a mutex, so a fixed seed with serialized calls yields a fixed
// sequence of picks. History read-modify-write for one user is serialized by
// a lock that other writers (view-duration updates) share through LockUser.
// User IDs hash onto a fixed array of lock stripes, so unknown IDs cost no
// memory. The similarity index is read through an atomically swapped
// snapshot and is never locked.
package recommend
