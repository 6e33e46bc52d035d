// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

/*
Package database provides DuckDB persistence for the listing catalog and user
view histories.

Tables:
  - listings: append-only catalog; id is the dense, zero-based listing ID
  - users: registered users
  - view_history: (user_id, listing_id) -> duration seconds

The DB type owns the connection. Catalog and History are thin views over it
implementing store.CatalogStore and store.HistoryStore:

	db, err := database.New(&cfg.Database)
	if err != nil {
	    return err
	}
	defer db.Close()

	catalog := db.Catalog()
	history := db.History()

Listing IDs are assigned under a process-wide mutex as MAX(id)+1, so a single
process owns writes to a database file. Pass ":memory:" as the path for an
ephemeral database; tests do this.
*/
package database
