// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

package models

import (
	"fmt"
	"strings"
)

// Listing is a single catalog item.
//
// Only Description feeds the similarity index. Name is required at creation
// but is display-only.
type Listing struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	OwnerID     int64  `json:"owner_id"`
	Price       int64  `json:"price"`
}

// NewListing is the input for appending a listing to the catalog.
type NewListing struct {
	Name        string `json:"name" validate:"required,notblank,max=200"`
	Description string `json:"description" validate:"required,notblank,max=10000"`
	OwnerID     int64  `json:"owner_id" validate:"min=0"`
	Price       int64  `json:"price" validate:"min=0"`
}

// Validate rejects names and descriptions that are empty or whitespace only.
func (n *NewListing) Validate() error {
	if strings.TrimSpace(n.Name) == "" {
		return fmt.Errorf("%w: name must not be blank", ErrInvalidListing)
	}
	if strings.TrimSpace(n.Description) == "" {
		return fmt.Errorf("%w: description must not be blank", ErrInvalidListing)
	}
	if n.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidListing)
	}
	return nil
}

// ToListing converts the request into a Listing with the assigned ID.
func (n *NewListing) ToListing(id int64) Listing {
	return Listing{
		ID:          id,
		Name:        n.Name,
		Description: n.Description,
		OwnerID:     n.OwnerID,
		Price:       n.Price,
	}
}
