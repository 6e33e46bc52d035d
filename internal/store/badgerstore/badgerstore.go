// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

// Package badgerstore implements the view history store on BadgerDB.
//
// Key layout:
//
//	user:<userID>                   -> registration record
//	history:<userID>:<listingID>    -> entry record
//
// Values are JSON. A user's history is read with a prefix scan over
// history:<userID>:.
package badgerstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/listingrec/internal/models"
)

const (
	userKeyPrefix    = "user:"
	historyKeyPrefix = "history:"

	// maxConflictRetries bounds retries of optimistic transactions that
	// lost a write conflict.
	maxConflictRetries = 5
)

type userRecord struct {
	CreatedAt time.Time `json:"created_at"`
}

type entryRecord struct {
	Duration  float64   `json:"duration"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store is a HistoryStore on BadgerDB.
type Store struct {
	db     *badger.DB
	ownsDB bool
}

// Open opens a BadgerDB at path. An empty path opens an in-memory database.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", path, err)
	}
	return &Store{db: db, ownsDB: true}, nil
}

// New wraps an already open BadgerDB. Close leaves it open.
func New(db *badger.DB) *Store {
	return &Store{db: db}
}

// Close closes the database if Open created it.
func (s *Store) Close() error {
	if !s.ownsDB {
		return nil
	}
	return s.db.Close()
}

func userKey(userID int64) []byte {
	return []byte(userKeyPrefix + strconv.FormatInt(userID, 10))
}

func historyPrefix(userID int64) []byte {
	return []byte(historyKeyPrefix + strconv.FormatInt(userID, 10) + ":")
}

func historyKey(userID, listingID int64) []byte {
	return append(historyPrefix(userID), strconv.FormatInt(listingID, 10)...)
}

// update runs fn in a read-write transaction, retrying on write conflicts.
func (s *Store) update(ctx context.Context, fn func(txn *badger.Txn) error) error {
	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		err = s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return fmt.Errorf("transaction conflict after %d attempts: %w", maxConflictRetries, err)
}

func requireUser(txn *badger.Txn, userID int64) error {
	_, err := txn.Get(userKey(userID))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("user %d: %w", userID, models.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("get user %d: %w", userID, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, userID int64) (models.History, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hist := make(models.History)
	err := s.db.View(func(txn *badger.Txn) error {
		if err := requireUser(txn, userID); err != nil {
			return err
		}

		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := historyPrefix(userID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			listingID, err := strconv.ParseInt(strings.TrimPrefix(string(item.Key()), string(prefix)), 10, 64)
			if err != nil {
				return fmt.Errorf("malformed history key %q: %w", item.Key(), err)
			}

			var rec entryRecord
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return fmt.Errorf("decode history entry %q: %w", item.Key(), err)
			}
			hist[listingID] = rec.Duration
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return hist, nil
}

func (s *Store) Upsert(ctx context.Context, userID, listingID int64, duration float64) error {
	if err := models.ValidateDuration(duration); err != nil {
		return err
	}

	data, err := json.Marshal(entryRecord{Duration: duration, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal history entry: %w", err)
	}

	return s.update(ctx, func(txn *badger.Txn) error {
		if err := requireUser(txn, userID); err != nil {
			return err
		}
		return txn.Set(historyKey(userID, listingID), data)
	})
}

func (s *Store) Remove(ctx context.Context, userID, listingID int64) error {
	return s.update(ctx, func(txn *badger.Txn) error {
		if err := requireUser(txn, userID); err != nil {
			return err
		}
		if err := txn.Delete(historyKey(userID, listingID)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete history entry: %w", err)
		}
		return nil
	})
}

func (s *Store) Create(ctx context.Context, userID int64) error {
	data, err := json.Marshal(userRecord{CreatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	return s.update(ctx, func(txn *badger.Txn) error {
		_, err := txn.Get(userKey(userID))
		if err == nil {
			return fmt.Errorf("user %d: %w", userID, models.ErrUserExists)
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("get user %d: %w", userID, err)
		}
		return txn.Set(userKey(userID), data)
	})
}
