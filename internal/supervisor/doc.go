// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

/*
Package supervisor provides the process supervision tree built on
thejerf/suture/v4.

The tree has two layers under a root supervisor:

	listingrec (root)
	├── index-layer   IndexReconcileService
	└── api-layer     HTTPServerService

A service that returns an error or panics is restarted with backoff by its
layer supervisor without disturbing the other layer, so a failing index
rebuild loop never takes the HTTP server down with it.

Supervisor events are logged through sutureslog using the zerolog-backed
slog adapter from the logging package.

Usage Example:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddIndexService(services.NewIndexReconcileService(listings, cfg, logger))
	tree.AddAPIService(services.NewHTTPServerService(srv, 10*time.Second))
	return tree.Serve(ctx)
*/
package supervisor
