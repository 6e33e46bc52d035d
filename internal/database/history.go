// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

package database

import (
	"context"
	"fmt"

	"github.com/tomtom215/listingrec/internal/models"
)

// History implements store.HistoryStore on the users and view_history tables.
type History struct {
	db *DB
}

func (h *History) userExists(ctx context.Context, userID int64) error {
	var n int
	if err := h.db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE user_id = ?`, userID,
	).Scan(&n); err != nil {
		return fmt.Errorf("failed to look up user %d: %w", userID, err)
	}
	if n == 0 {
		return fmt.Errorf("user %d: %w", userID, models.ErrNotFound)
	}
	return nil
}

func (h *History) Get(ctx context.Context, userID int64) (models.History, error) {
	if err := h.userExists(ctx, userID); err != nil {
		return nil, err
	}

	rows, err := h.db.conn.QueryContext(ctx,
		`SELECT listing_id, duration FROM view_history WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query history for user %d: %w", userID, err)
	}
	defer closeWithLog(rows, "rows")

	hist := make(models.History)
	for rows.Next() {
		var listingID int64
		var duration float64
		if err := rows.Scan(&listingID, &duration); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		hist[listingID] = duration
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history: %w", err)
	}
	return hist, nil
}

func (h *History) Upsert(ctx context.Context, userID, listingID int64, duration float64) error {
	if err := models.ValidateDuration(duration); err != nil {
		return err
	}
	if err := h.userExists(ctx, userID); err != nil {
		return err
	}

	_, err := h.db.conn.ExecContext(ctx, `
		INSERT INTO view_history (user_id, listing_id, duration, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id, listing_id)
		DO UPDATE SET duration = EXCLUDED.duration, updated_at = EXCLUDED.updated_at`,
		userID, listingID, duration)
	if err != nil {
		return fmt.Errorf("failed to upsert history for user %d: %w", userID, err)
	}
	return nil
}

func (h *History) Remove(ctx context.Context, userID, listingID int64) error {
	if err := h.userExists(ctx, userID); err != nil {
		return err
	}
	if _, err := h.db.conn.ExecContext(ctx,
		`DELETE FROM view_history WHERE user_id = ? AND listing_id = ?`, userID, listingID,
	); err != nil {
		return fmt.Errorf("failed to remove listing %d from user %d: %w", listingID, userID, err)
	}
	return nil
}

func (h *History) Create(ctx context.Context, userID int64) error {
	_, err := h.db.conn.ExecContext(ctx, `INSERT INTO users (user_id) VALUES (?)`, userID)
	if isConstraintViolation(err) {
		return fmt.Errorf("user %d: %w", userID, models.ErrUserExists)
	}
	if err != nil {
		return fmt.Errorf("failed to create user %d: %w", userID, err)
	}
	return nil
}
