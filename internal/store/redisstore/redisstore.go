// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

// Package redisstore implements the view history store on Redis.
//
// Registered users live in the set <prefix>users. Each user's history is
// the hash <prefix>user:<userID> mapping listing ID to dwell seconds.
// Every call goes through a circuit breaker; while it is open, calls fail
// fast with models.ErrUnavailable.
package redisstore

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/tomtom215/listingrec/internal/config"
	"github.com/tomtom215/listingrec/internal/models"
)

const breakerName = "redis-history"

// Store is a HistoryStore on Redis.
type Store struct {
	client  *redis.Client
	prefix  string
	breaker *breaker
}

// New creates a store with its own client. It does not ping; use Ping to
// verify connectivity.
func New(cfg *config.RedisConfig, breakerCfg config.BreakerConfig) *Store {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})
	return NewWithClient(client, cfg.KeyPrefix, breakerCfg)
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client, prefix string, breakerCfg config.BreakerConfig) *Store {
	return &Store{
		client:  client,
		prefix:  prefix,
		breaker: newBreaker(breakerName, breakerCfg),
	}
}

func (s *Store) usersKey() string {
	return s.prefix + "users"
}

func (s *Store) historyKey(userID int64) string {
	return s.prefix + "user:" + strconv.FormatInt(userID, 10)
}

// Ping checks connectivity through the breaker.
func (s *Store) Ping(ctx context.Context) error {
	return s.breaker.run(func() error {
		return s.client.Ping(ctx).Err()
	})
}

// Close closes the client.
func (s *Store) Close() error {
	return s.client.Close()
}

// BreakerState returns the circuit breaker state.
func (s *Store) BreakerState() string {
	return s.breaker.State()
}

func (s *Store) requireUser(ctx context.Context, userID int64) error {
	ok, err := s.client.SIsMember(ctx, s.usersKey(), userID).Result()
	if err != nil {
		return fmt.Errorf("check user %d: %w", userID, err)
	}
	if !ok {
		return fmt.Errorf("user %d: %w", userID, models.ErrNotFound)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, userID int64) (models.History, error) {
	result, err := s.breaker.execute(func() (any, error) {
		if err := s.requireUser(ctx, userID); err != nil {
			return nil, err
		}
		fields, err := s.client.HGetAll(ctx, s.historyKey(userID)).Result()
		if err != nil {
			return nil, fmt.Errorf("read history for user %d: %w", userID, err)
		}

		hist := make(models.History, len(fields))
		for field, value := range fields {
			listingID, err := strconv.ParseInt(field, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("malformed listing id %q in history of user %d: %w", field, userID, err)
			}
			duration, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, fmt.Errorf("malformed duration %q in history of user %d: %w", value, userID, err)
			}
			hist[listingID] = duration
		}
		return hist, nil
	})
	if err != nil {
		return nil, err
	}
	hist, ok := result.(models.History)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return hist, nil
}

func (s *Store) Upsert(ctx context.Context, userID, listingID int64, duration float64) error {
	if err := models.ValidateDuration(duration); err != nil {
		return err
	}
	return s.breaker.run(func() error {
		if err := s.requireUser(ctx, userID); err != nil {
			return err
		}
		field := strconv.FormatInt(listingID, 10)
		value := strconv.FormatFloat(duration, 'g', -1, 64)
		if err := s.client.HSet(ctx, s.historyKey(userID), field, value).Err(); err != nil {
			return fmt.Errorf("write history for user %d: %w", userID, err)
		}
		return nil
	})
}

func (s *Store) Remove(ctx context.Context, userID, listingID int64) error {
	return s.breaker.run(func() error {
		if err := s.requireUser(ctx, userID); err != nil {
			return err
		}
		if err := s.client.HDel(ctx, s.historyKey(userID), strconv.FormatInt(listingID, 10)).Err(); err != nil {
			return fmt.Errorf("remove listing %d from user %d: %w", listingID, userID, err)
		}
		return nil
	})
}

func (s *Store) Create(ctx context.Context, userID int64) error {
	return s.breaker.run(func() error {
		added, err := s.client.SAdd(ctx, s.usersKey(), userID).Result()
		if err != nil {
			return fmt.Errorf("create user %d: %w", userID, err)
		}
		if added == 0 {
			return fmt.Errorf("user %d: %w", userID, models.ErrUserExists)
		}
		return nil
	})
}
