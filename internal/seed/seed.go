// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

// Package seed loads an initial listing catalog from a YAML file.
//
// File format:
//
//	listings:
//	  - name: Red bicycle
//	    description: A red bicycle with a basket
//	    owner_id: 1
//	    price: 12000
//
// Listings are appended in file order, so the first entry gets ID 0.
package seed

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tomtom215/listingrec/internal/models"
)

// File is the seed file document.
type File struct {
	Listings []Entry `yaml:"listings"`
}

// Entry is one seeded listing.
type Entry struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	OwnerID     int64  `yaml:"owner_id"`
	Price       int64  `yaml:"price"`
}

// Catalog is the subset of the catalog store seeding needs.
type Catalog interface {
	Count(ctx context.Context) (int64, error)
	Append(ctx context.Context, listing models.Listing) (int64, error)
}

// Load reads and validates a seed file.
func Load(path string) ([]models.NewListing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates seed file contents.
func Parse(data []byte) ([]models.NewListing, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed yaml: %w", err)
	}

	out := make([]models.NewListing, 0, len(f.Listings))
	for i, e := range f.Listings {
		nl := models.NewListing{
			Name:        e.Name,
			Description: e.Description,
			OwnerID:     e.OwnerID,
			Price:       e.Price,
		}
		if err := nl.Validate(); err != nil {
			return nil, fmt.Errorf("seed listing %d: %w", i, err)
		}
		out = append(out, nl)
	}
	return out, nil
}

// Apply appends listings to an empty catalog and returns how many were
// added. A non-empty catalog is left untouched.
func Apply(ctx context.Context, catalog Catalog, listings []models.NewListing) (int, error) {
	n, err := catalog.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count catalog: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	for i := range listings {
		if _, err := catalog.Append(ctx, listings[i].ToListing(0)); err != nil {
			return i, fmt.Errorf("append seed listing %d: %w", i, err)
		}
	}
	return len(listings), nil
}
