// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

/*
Package validation wraps go-playground/validator for API request structs.

A single validator instance is built once and shared; it caches struct
metadata, so reuse matters on hot paths.

Field names in messages come from the json tag, so clients see the names
they sent:

	type CreateListingRequest struct {
	    Name string `json:"name" validate:"required,notblank,max=200"`
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
	    apiErr := verr.ToAPIError() // Code: VALIDATION_ERROR
	}

Custom tags:
  - notblank: string contains at least one non-whitespace character
  - finite: float is neither NaN nor infinite
*/
package validation
