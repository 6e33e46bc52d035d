// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/tomtom215/listingrec/internal/models"
)

// MemoryCatalog is an in-process CatalogStore.
type MemoryCatalog struct {
	mu       sync.RWMutex
	listings []models.Listing
}

// NewMemoryCatalog creates an empty catalog.
func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{}
}

func (c *MemoryCatalog) All(_ context.Context) ([]models.Listing, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Listing, len(c.listings))
	copy(out, c.listings)
	return out, nil
}

func (c *MemoryCatalog) Append(_ context.Context, listing models.Listing) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	listing.ID = int64(len(c.listings))
	c.listings = append(c.listings, listing)
	return listing.ID, nil
}

func (c *MemoryCatalog) Get(_ context.Context, id int64) (*models.Listing, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if id < 0 || id >= int64(len(c.listings)) {
		return nil, fmt.Errorf("listing %d: %w", id, models.ErrNotFound)
	}
	l := c.listings[id]
	return &l, nil
}

func (c *MemoryCatalog) ListByOwner(_ context.Context, ownerID int64) ([]models.Listing, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Listing, 0)
	for i := range c.listings {
		if c.listings[i].OwnerID == ownerID {
			out = append(out, c.listings[i])
		}
	}
	return out, nil
}

func (c *MemoryCatalog) Count(_ context.Context) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return int64(len(c.listings)), nil
}

// MemoryHistory is an in-process HistoryStore.
type MemoryHistory struct {
	mu    sync.RWMutex
	users map[int64]models.History
}

// NewMemoryHistory creates an empty history store.
func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{users: make(map[int64]models.History)}
}

func (h *MemoryHistory) Get(_ context.Context, userID int64) (models.History, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	hist, ok := h.users[userID]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", userID, models.ErrNotFound)
	}
	return hist.Clone(), nil
}

func (h *MemoryHistory) Upsert(_ context.Context, userID, listingID int64, duration float64) error {
	if err := models.ValidateDuration(duration); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	hist, ok := h.users[userID]
	if !ok {
		return fmt.Errorf("user %d: %w", userID, models.ErrNotFound)
	}
	hist[listingID] = duration
	return nil
}

func (h *MemoryHistory) Remove(_ context.Context, userID, listingID int64) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	hist, ok := h.users[userID]
	if !ok {
		return fmt.Errorf("user %d: %w", userID, models.ErrNotFound)
	}
	delete(hist, listingID)
	return nil
}

func (h *MemoryHistory) Create(_ context.Context, userID int64) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.users[userID]; ok {
		return fmt.Errorf("user %d: %w", userID, models.ErrUserExists)
	}
	h.users[userID] = make(models.History)
	return nil
}
