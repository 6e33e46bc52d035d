// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tomtom215/listingrec/internal/models"
)

// Catalog implements store.CatalogStore on the listings table.
type Catalog struct {
	db *DB
}

const listingColumns = `id, name, description, owner_id, price`

func (c *Catalog) All(ctx context.Context) ([]models.Listing, error) {
	return c.query(ctx, `SELECT `+listingColumns+` FROM listings ORDER BY id`)
}

func (c *Catalog) ListByOwner(ctx context.Context, ownerID int64) ([]models.Listing, error) {
	return c.query(ctx, `SELECT `+listingColumns+` FROM listings WHERE owner_id = ? ORDER BY id`, ownerID)
}

func (c *Catalog) query(ctx context.Context, query string, args ...any) ([]models.Listing, error) {
	rows, err := c.db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer closeWithLog(rows, "rows")

	listings := make([]models.Listing, 0)
	for rows.Next() {
		var l models.Listing
		if err := rows.Scan(&l.ID, &l.Name, &l.Description, &l.OwnerID, &l.Price); err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating listings: %w", err)
	}
	return listings, nil
}

func (c *Catalog) Append(ctx context.Context, listing models.Listing) (int64, error) {
	c.db.appendMu.Lock()
	defer c.db.appendMu.Unlock()

	tx, err := c.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(id) + 1, 0) FROM listings`).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to allocate listing id: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO listings (id, name, description, owner_id, price) VALUES (?, ?, ?, ?, ?)`,
		id, listing.Name, listing.Description, listing.OwnerID, listing.Price,
	); err != nil {
		return 0, fmt.Errorf("failed to insert listing: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit listing: %w", err)
	}
	return id, nil
}

func (c *Catalog) Get(ctx context.Context, id int64) (*models.Listing, error) {
	var l models.Listing
	err := c.db.conn.QueryRowContext(ctx,
		`SELECT `+listingColumns+` FROM listings WHERE id = ?`, id,
	).Scan(&l.ID, &l.Name, &l.Description, &l.OwnerID, &l.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("listing %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get listing %d: %w", id, err)
	}
	return &l, nil
}

func (c *Catalog) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := c.db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM listings`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count listings: %w", err)
	}
	return n, nil
}
