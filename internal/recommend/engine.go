// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/tomtom215/listingrec/internal/metrics"
	"github.com/tomtom215/listingrec/internal/models"
	"github.com/tomtom215/listingrec/internal/similarity"
)

// HistoryStore is the subset of the history store the engine needs.
type HistoryStore interface {
	Get(ctx context.Context, userID int64) (models.History, error)
	Remove(ctx context.Context, userID, listingID int64) error
}

// CatalogReader resolves listing IDs to listings.
type CatalogReader interface {
	Get(ctx context.Context, id int64) (*models.Listing, error)
}

// userLockStripes is the number of mutexes user IDs are hashed onto. Memory
// stays fixed however many distinct IDs callers present.
const userLockStripes = 256

// IndexSource yields the similarity index currently being served.
type IndexSource interface {
	Current() similarity.Index
}

// Engine implements the listing selection policy.
type Engine struct {
	config *Config
	logger zerolog.Logger

	history HistoryStore
	catalog CatalogReader
	index   IndexSource

	// Engagement counters
	counter      atomic.Int64
	userCounters sync.Map // int64 -> *atomic.Int64
	countedUsers atomic.Int64

	// Striped per-user history locks
	userLocks [userLockStripes]sync.Mutex

	rng   *rand.Rand
	rngMu sync.Mutex

	requestCount  atomic.Int64
	errorCount    atomic.Int64
	evictionCount atomic.Int64
}

// Stats is a point-in-time view of engine counters.
//
// Counter is the shared engagement counter and is only reported under the
// global scope. Under the per-user scope CountedUsers reports how many users
// have a counter instead.
type Stats struct {
	Requests     int64        `json:"requests"`
	Errors       int64        `json:"errors"`
	Evictions    int64        `json:"evictions"`
	CounterScope CounterScope `json:"counter_scope"`
	Counter      int64        `json:"engagement_counter,omitempty"`
	CountedUsers int64        `json:"counted_users,omitempty"`
}

// selection records how a listing was chosen.
type selection struct {
	listingID int64
	path      string
	anchor    int64
	evicted   int64
	didEvict  bool
}

// NewEngine creates an engine over the given stores and index.
//
//nolint:gocritic // zerolog.Logger is passed by value per zerolog convention
func NewEngine(cfg *Config, history HistoryStore, catalog CatalogReader, index IndexSource, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if history == nil || catalog == nil || index == nil {
		return nil, errors.New("history store, catalog and index are required")
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = 42
	}

	return &Engine{
		config:  cfg.Clone(),
		logger:  logger.With().Str("component", "recommend").Logger(),
		history: history,
		catalog: catalog,
		index:   index,
		rng:     rand.New(rand.NewSource(seed)), //nolint:gosec // math/rand is fine for recommendation sampling
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// LockUser acquires the per-user history lock and returns its release func.
// Every read-modify-write of a user's history must hold it. Users share a
// fixed set of lock stripes, so callers must not hold two user locks at once.
func (e *Engine) LockUser(userID int64) func() {
	mu := &e.userLocks[uint64(userID)%userLockStripes] //nolint:gosec // negative IDs wrap, any stripe will do
	mu.Lock()
	return mu.Unlock
}

// Next returns the ID of the next listing to show the user.
func (e *Engine) Next(ctx context.Context, userID int64) (int64, error) {
	sel, err := e.next(ctx, userID)
	if err != nil {
		return 0, err
	}
	return sel.listingID, nil
}

// Recommend returns the next listing for the user, resolved through the
// catalog. A selected ID missing from the catalog yields ErrNotFound.
func (e *Engine) Recommend(ctx context.Context, userID int64) (*models.Listing, error) {
	id, err := e.Next(ctx, userID)
	if err != nil {
		return nil, err
	}

	listing, err := e.catalog.Get(ctx, id)
	if err != nil {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("resolve listing %d: %w", id, err)
	}
	return listing, nil
}

func (e *Engine) next(ctx context.Context, userID int64) (sel selection, err error) {
	e.requestCount.Add(1)
	defer func() {
		if err != nil {
			e.errorCount.Add(1)
			metrics.RecordRecommendation(metrics.PathError)
			return
		}
		metrics.RecordRecommendation(sel.path)
	}()

	if e.config.CounterScope == CounterGlobal {
		e.counter.Add(1)
	}

	unlock := e.LockUser(userID)
	defer unlock()

	history, err := e.history.Get(ctx, userID)
	if err != nil {
		return selection{}, fmt.Errorf("load history for user %d: %w", userID, err)
	}

	counter := &e.counter
	if e.config.CounterScope == CounterPerUser {
		counter = e.userCounter(userID)
		counter.Add(1)
	}

	idx := e.index.Current()
	if !idx.Available() {
		return selection{}, fmt.Errorf("similarity index has no signal: %w", models.ErrUnavailable)
	}
	n := idx.Len()

	if len(history) <= e.config.ColdStartThreshold {
		return selection{listingID: int64(e.intn(n)), path: metrics.PathColdStart, anchor: -1}, nil
	}

	if e.config.ExplorationDenominator > 0 && e.intn(e.config.ExplorationDenominator)+1 == e.config.ExplorationDenominator {
		return selection{listingID: int64(e.intn(n)), path: metrics.PathExploration, anchor: -1}, nil
	}

	ranked := history.Ranked()

	anchor, ok := e.pickAnchor(ranked, n)
	if !ok {
		// Nothing in the history is covered by the index yet.
		return selection{listingID: int64(e.intn(n)), path: metrics.PathColdStart, anchor: -1}, nil
	}

	pick, err := e.pickSimilar(idx, anchor)
	if err != nil {
		return selection{}, err
	}

	sel = selection{listingID: pick, path: metrics.PathSimilarity, anchor: anchor}

	if evicted, did, err := e.maybeEvict(ctx, counter, userID, ranked); err != nil {
		return selection{}, err
	} else if did {
		sel.evicted, sel.didEvict = evicted, true
	}

	e.logger.Debug().
		Int64("user_id", userID).
		Int64("anchor", anchor).
		Int64("listing_id", pick).
		Bool("evicted", sel.didEvict).
		Msg("similarity recommendation")

	return sel, nil
}

// pickAnchor draws one of the longest-dwell history entries that the index
// covers. ranked must be ordered by dwell time descending.
func (e *Engine) pickAnchor(ranked []models.HistoryEntry, n int) (int64, bool) {
	window := make([]int64, 0, e.config.AnchorWindow)
	for _, entry := range ranked {
		if entry.ListingID < 0 || entry.ListingID >= int64(n) {
			continue
		}
		window = append(window, entry.ListingID)
		if len(window) == e.config.AnchorWindow {
			break
		}
	}
	if len(window) == 0 {
		return 0, false
	}
	return window[e.intn(len(window))], true
}

type candidate struct {
	id    int64
	score float64
}

// pickSimilar ranks every listing by similarity to the anchor and draws one
// from the top of the ranking.
func (e *Engine) pickSimilar(idx similarity.Index, anchor int64) (int64, error) {
	excluded := anchor
	if e.config.SelfExclusion == ExcludeItemZero {
		excluded = 0
	}

	n := idx.Len()
	candidates := make([]candidate, 0, n)
	for j := 0; j < n; j++ {
		if int64(j) == excluded {
			continue
		}
		candidates = append(candidates, candidate{id: int64(j), score: idx.Similarity(int(anchor), j)})
	}
	if len(candidates) == 0 {
		return 0, fmt.Errorf("no candidates besides listing %d: %w", excluded, models.ErrUnavailable)
	}

	sort.Slice(candidates, func(a, b int) bool {
		if candidates[a].score != candidates[b].score {
			return candidates[a].score > candidates[b].score
		}
		return candidates[a].id < candidates[b].id
	})

	window := e.config.CandidateWindow
	if window > len(candidates) {
		window = len(candidates)
	}
	return candidates[e.intn(window)].id, nil
}

// maybeEvict removes the least-engaging history entry once the counter has
// reached the threshold. The caller holds the user lock.
func (e *Engine) maybeEvict(ctx context.Context, counter *atomic.Int64, userID int64, ranked []models.HistoryEntry) (int64, bool, error) {
	for {
		v := counter.Load()
		if v < e.config.EvictionThreshold {
			return 0, false, nil
		}
		if counter.CompareAndSwap(v, 0) {
			break
		}
	}

	victim := ranked[len(ranked)-1].ListingID
	if err := e.history.Remove(ctx, userID, victim); err != nil {
		return 0, false, fmt.Errorf("evict listing %d from user %d: %w", victim, userID, err)
	}

	e.evictionCount.Add(1)
	metrics.RecordEviction()
	e.logger.Debug().
		Int64("user_id", userID).
		Int64("listing_id", victim).
		Float64("duration", ranked[len(ranked)-1].Duration).
		Msg("evicted least-engaging history entry")

	return victim, true, nil
}

// userCounter returns the user's counter, creating it on first use. Only
// called once the user's history has been found.
func (e *Engine) userCounter(userID int64) *atomic.Int64 {
	v, loaded := e.userCounters.LoadOrStore(userID, &atomic.Int64{})
	if !loaded {
		e.countedUsers.Add(1)
	}
	return v.(*atomic.Int64)
}

// intn draws from the shared random source.
func (e *Engine) intn(n int) int {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return e.rng.Intn(n)
}

// Counter returns the engagement counter for the user under the configured scope.
func (e *Engine) Counter(userID int64) int64 {
	if e.config.CounterScope == CounterPerUser {
		if v, ok := e.userCounters.Load(userID); ok {
			return v.(*atomic.Int64).Load()
		}
		return 0
	}
	return e.counter.Load()
}

// Stats returns engine counters.
func (e *Engine) Stats() Stats {
	stats := Stats{
		Requests:     e.requestCount.Load(),
		Errors:       e.errorCount.Load(),
		Evictions:    e.evictionCount.Load(),
		CounterScope: e.config.CounterScope,
	}
	if e.config.CounterScope == CounterPerUser {
		stats.CountedUsers = e.countedUsers.Load()
	} else {
		stats.Counter = e.counter.Load()
	}
	return stats
}
