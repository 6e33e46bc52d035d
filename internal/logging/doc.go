// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

// Package logging provides the process-wide zerolog logger.
//
// Call Init once after configuration is loaded. Components derive their own
// logger with With().Str("component", ...) and receive it by value. Request
// scoped logging goes through Ctx, which adds the request ID stored by the
// HTTP middleware.
//
// NewSlogLogger bridges the same output to log/slog for libraries that expect
// it, such as the supervisor tree.
package logging
