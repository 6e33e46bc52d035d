// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

package validation

import (
	"math"
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()
	if v1 == nil || v1 != v2 {
		t.Error("GetValidator() should return one non-nil instance")
	}
}

type listingInput struct {
	Name        string  `json:"name" validate:"required,notblank,max=20"`
	Description string  `json:"description" validate:"required,notblank"`
	Price       int64   `json:"price" validate:"min=0"`
	Duration    float64 `json:"duration" validate:"finite,gte=0"`
	Internal    string  `json:"-" validate:"omitempty,max=3"`
}

func TestValidateStruct(t *testing.T) {
	valid := listingInput{Name: "red bicycle", Description: "a red bicycle", Price: 100, Duration: 1.5}

	tests := []struct {
		name      string
		mutate    func(*listingInput)
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{name: "valid", mutate: func(*listingInput) {}},
		{name: "missing name", mutate: func(in *listingInput) { in.Name = "" }, wantField: "name", wantTag: "required", wantMsg: "name is required"},
		{name: "blank name", mutate: func(in *listingInput) { in.Name = "  \t " }, wantField: "name", wantTag: "notblank", wantMsg: "name must not be blank"},
		{name: "long name", mutate: func(in *listingInput) { in.Name = strings.Repeat("x", 21) }, wantField: "name", wantTag: "max", wantMsg: "name must be at most 20 characters"},
		{name: "blank description", mutate: func(in *listingInput) { in.Description = "\n" }, wantField: "description", wantTag: "notblank"},
		{name: "negative price", mutate: func(in *listingInput) { in.Price = -1 }, wantField: "price", wantTag: "min", wantMsg: "price must be at least 0"},
		{name: "NaN duration", mutate: func(in *listingInput) { in.Duration = math.NaN() }, wantField: "duration", wantTag: "finite"},
		{name: "infinite duration", mutate: func(in *listingInput) { in.Duration = math.Inf(1) }, wantField: "duration", wantTag: "finite"},
		{name: "negative duration", mutate: func(in *listingInput) { in.Duration = -2 }, wantField: "duration", wantTag: "gte"},
		{name: "unnamed json field", mutate: func(in *listingInput) { in.Internal = "toolong" }, wantField: "Internal", wantTag: "max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)

			verr := ValidateStruct(&in)
			if tt.wantField == "" {
				if verr != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			errs := verr.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), verr)
			}
			if errs[0].Field() != tt.wantField || errs[0].Tag() != tt.wantTag {
				t.Errorf("error = %s/%s, want %s/%s", errs[0].Field(), errs[0].Tag(), tt.wantField, tt.wantTag)
			}
			if tt.wantMsg != "" && errs[0].Error() != tt.wantMsg {
				t.Errorf("message = %q, want %q", errs[0].Error(), tt.wantMsg)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	single := ValidateStruct(&listingInput{Name: "ok", Description: ""})
	if single == nil {
		t.Fatal("expected validation error")
	}
	apiErr := single.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q", apiErr.Code)
	}
	if apiErr.Details["field"] != "description" {
		t.Errorf("Details = %v", apiErr.Details)
	}

	multi := ValidateStruct(&listingInput{Price: -1})
	if multi == nil {
		t.Fatal("expected validation error")
	}
	apiErr = multi.ToAPIError()
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 3 {
		t.Errorf("Details[fields] = %v, want 3 entries", apiErr.Details["fields"])
	}
	if !strings.Contains(apiErr.Message, "name is required") || !strings.Contains(apiErr.Message, "price must be at least 0") {
		t.Errorf("Message = %q", apiErr.Message)
	}

	empty := &RequestValidationError{}
	if empty.ToAPIError().Message != "Validation failed" || empty.Error() != "validation failed" {
		t.Error("empty RequestValidationError should use the generic message")
	}
}
