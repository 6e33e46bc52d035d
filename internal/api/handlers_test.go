// Listingrec - Marketplace Listing Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/listingrec

package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/listingrec/internal/logging"
	"github.com/tomtom215/listingrec/internal/models"
	"github.com/tomtom215/listingrec/internal/recommend"
	"github.com/tomtom215/listingrec/internal/service"
	"github.com/tomtom215/listingrec/internal/similarity"
	"github.com/tomtom215/listingrec/internal/store"
)

type envelope struct {
	Status string           `json:"status"`
	Data   json.RawMessage  `json:"data"`
	Error  *models.APIError `json:"error"`
}

func setupTestServer(t *testing.T, opts ...HandlerOption) http.Handler {
	t.Helper()
	logger := logging.NewTestLogger(io.Discard)

	catalog := store.NewMemoryCatalog()
	history := store.NewMemoryHistory()
	index := similarity.NewHolder(similarity.BuildOptions{Workers: 2}, logger)

	engine, err := recommend.NewEngine(nil, history, catalog, index, logger)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	handler := NewHandler(
		service.NewListingService(catalog, index, logger),
		service.NewUserService(history, engine, logger),
		opts...,
	)

	mwCfg := DefaultChiMiddlewareConfig()
	mwCfg.RateLimitDisabled = true
	return NewRouter(handler, NewChiMiddleware(mwCfg)).SetupChi()
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: invalid JSON body %q: %v", method, path, rec.Body.String(), err)
	}
	return rec, env
}

func decodeData(t *testing.T, env envelope, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode data %s: %v", env.Data, err)
	}
}

func createListing(t *testing.T, h http.Handler, name, desc string, owner int64) int64 {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"description":%q,"owner_id":%d,"price":100}`, name, desc, owner)
	rec, env := doRequest(t, h, http.MethodPost, "/api/v1/listings", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create listing status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var created models.CreatedListing
	decodeData(t, env, &created)
	return created.ID
}

func TestCreateAndGetListing(t *testing.T) {
	t.Parallel()
	h := setupTestServer(t)

	if id := createListing(t, h, "Red bicycle", "red bicycle", 3); id != 0 {
		t.Errorf("first listing id = %d, want 0", id)
	}
	if id := createListing(t, h, "Blue bicycle", "blue bicycle", 4); id != 1 {
		t.Errorf("second listing id = %d, want 1", id)
	}

	rec, env := doRequest(t, h, http.MethodGet, "/api/v1/listings/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var l models.Listing
	decodeData(t, env, &l)
	if l.ID != 1 || l.Name != "Blue bicycle" || l.OwnerID != 4 || l.Price != 100 {
		t.Errorf("listing = %+v", l)
	}
	if rec.Header().Get("ETag") == "" {
		t.Error("missing ETag header")
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestCreateListing_Validation(t *testing.T) {
	t.Parallel()
	h := setupTestServer(t)

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"blank name", `{"name":"   ","description":"desc"}`, http.StatusBadRequest, ErrCodeValidation},
		{"missing description", `{"name":"n"}`, http.StatusBadRequest, ErrCodeValidation},
		{"negative price", `{"name":"n","description":"d","price":-1}`, http.StatusBadRequest, ErrCodeValidation},
		{"unknown field", `{"name":"n","description":"d","colour":"red"}`, http.StatusBadRequest, ErrCodeBadRequest},
		{"malformed json", `{"name":`, http.StatusBadRequest, ErrCodeBadRequest},
		{"empty body", ``, http.StatusBadRequest, ErrCodeBadRequest},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec, env := doRequest(t, h, http.MethodPost, "/api/v1/listings", tt.body)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body.String())
			}
			if env.Status != "error" || env.Error == nil || env.Error.Code != tt.code {
				t.Errorf("error = %+v, want code %s", env.Error, tt.code)
			}
		})
	}
}

func TestGetListing_Errors(t *testing.T) {
	t.Parallel()
	h := setupTestServer(t)

	rec, env := doRequest(t, h, http.MethodGet, "/api/v1/listings/42", "")
	if rec.Code != http.StatusNotFound || env.Error.Code != ErrCodeNotFound {
		t.Errorf("missing listing: status = %d, error = %+v", rec.Code, env.Error)
	}

	for _, bad := range []string{"abc", "-1", "1.5"} {
		rec, _ := doRequest(t, h, http.MethodGet, "/api/v1/listings/"+bad, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("GET /listings/%s status = %d, want 400", bad, rec.Code)
		}
	}
}

func TestUserFlow(t *testing.T) {
	t.Parallel()
	h := setupTestServer(t)

	createListing(t, h, "Red bicycle", "red bicycle", 1)
	createListing(t, h, "Blue bicycle", "blue bicycle", 1)
	createListing(t, h, "Pot", "cast iron pot", 2)

	// Unknown user
	rec, _ := doRequest(t, h, http.MethodGet, "/api/v1/users/9/next", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("next for unknown user status = %d, want 404", rec.Code)
	}
	rec, _ = doRequest(t, h, http.MethodPut, "/api/v1/users/9/history/0", `{"duration":3}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("view for unknown user status = %d, want 404", rec.Code)
	}

	rec, _ = doRequest(t, h, http.MethodPost, "/api/v1/users", `{"user_id":9}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create user status = %d", rec.Code)
	}
	rec, env := doRequest(t, h, http.MethodPost, "/api/v1/users", `{"user_id":9}`)
	if rec.Code != http.StatusConflict || env.Error.Code != ErrCodeConflict {
		t.Errorf("duplicate user: status = %d, error = %+v", rec.Code, env.Error)
	}

	// Cold start picks any of the three listings
	rec, env = doRequest(t, h, http.MethodGet, "/api/v1/users/9/next", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("next status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var next models.Listing
	decodeData(t, env, &next)
	if next.ID < 0 || next.ID > 2 {
		t.Errorf("next id = %d, want 0..2", next.ID)
	}

	for path, body := range map[string]string{
		"/api/v1/users/9/history/2": `{"duration":12.5}`,
		"/api/v1/users/9/history/0": `{"duration":40}`,
	} {
		rec, _ := doRequest(t, h, http.MethodPut, path, body)
		if rec.Code != http.StatusOK {
			t.Fatalf("PUT %s status = %d", path, rec.Code)
		}
	}
	// Overwrite, not accumulate
	if rec, _ := doRequest(t, h, http.MethodPut, "/api/v1/users/9/history/2", `{"duration":1}`); rec.Code != http.StatusOK {
		t.Fatalf("overwrite status = %d", rec.Code)
	}

	rec, env = doRequest(t, h, http.MethodGet, "/api/v1/users/9/history", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("history status = %d", rec.Code)
	}
	var hist models.HistoryResponse
	decodeData(t, env, &hist)
	want := []models.HistoryEntry{{ListingID: 0, Duration: 40}, {ListingID: 2, Duration: 1}}
	if hist.UserID != 9 || len(hist.Entries) != 2 || hist.Entries[0] != want[0] || hist.Entries[1] != want[1] {
		t.Errorf("history = %+v, want entries %+v", hist, want)
	}

	rec, env = doRequest(t, h, http.MethodGet, "/api/v1/users/1/listings", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("owner listings status = %d", rec.Code)
	}
	var owned []models.Listing
	decodeData(t, env, &owned)
	if len(owned) != 2 || owned[0].ID != 0 || owned[1].ID != 1 {
		t.Errorf("owner listings = %+v", owned)
	}

	_, env = doRequest(t, h, http.MethodGet, "/api/v1/users/77/listings", "")
	if string(env.Data) != "[]" {
		t.Errorf("owner without listings data = %s, want []", env.Data)
	}
}

func TestSetViewDuration_Validation(t *testing.T) {
	t.Parallel()
	h := setupTestServer(t)
	doRequest(t, h, http.MethodPost, "/api/v1/users", `{"user_id":1}`)

	tests := []struct {
		name string
		body string
	}{
		{"negative", `{"duration":-2}`},
		{"missing", `{}`},
		{"string", `{"duration":"long"}`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec, _ := doRequest(t, h, http.MethodPut, "/api/v1/users/1/history/0", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestCreateUser_Validation(t *testing.T) {
	t.Parallel()
	h := setupTestServer(t)

	for _, body := range []string{`{}`, `{"user_id":-4}`} {
		rec, env := doRequest(t, h, http.MethodPost, "/api/v1/users", body)
		if rec.Code != http.StatusBadRequest || env.Error.Code != ErrCodeValidation {
			t.Errorf("body %s: status = %d, error = %+v", body, rec.Code, env.Error)
		}
	}
}

func TestRecommendNext_EmptyCatalogUnavailable(t *testing.T) {
	t.Parallel()
	h := setupTestServer(t)
	doRequest(t, h, http.MethodPost, "/api/v1/users", `{"user_id":5}`)

	rec, env := doRequest(t, h, http.MethodGet, "/api/v1/users/5/next", "")
	if rec.Code != http.StatusServiceUnavailable || env.Error.Code != ErrCodeUnavailable {
		t.Errorf("status = %d, error = %+v; want 503 UNAVAILABLE", rec.Code, env.Error)
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	t.Run("live", func(t *testing.T) {
		t.Parallel()
		rec, env := doRequest(t, setupTestServer(t), http.MethodGet, "/api/v1/health/live", "")
		if rec.Code != http.StatusOK || env.Status != "success" {
			t.Errorf("status = %d, envelope = %s", rec.Code, env.Status)
		}
	})

	t.Run("ready reports index", func(t *testing.T) {
		t.Parallel()
		h := setupTestServer(t, WithReadinessCheck("database", func(context.Context) error { return nil }))
		createListing(t, h, "a", "oak desk", 1)

		rec, env := doRequest(t, h, http.MethodGet, "/api/v1/health/ready", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var status ReadinessStatus
		decodeData(t, env, &status)
		if !status.Ready || !status.Index.Available || status.Index.Items != 1 || status.Checks["database"] != "ok" {
			t.Errorf("readiness = %+v", status)
		}
	})

	t.Run("ready fails on dependency", func(t *testing.T) {
		t.Parallel()
		h := setupTestServer(t, WithReadinessCheck("redis", func(context.Context) error {
			return errors.New("connection refused")
		}))
		rec, env := doRequest(t, h, http.MethodGet, "/api/v1/health/ready", "")
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("status = %d, want 503", rec.Code)
		}
		var status ReadinessStatus
		decodeData(t, env, &status)
		if status.Ready || status.Checks["redis"] != "connection refused" {
			t.Errorf("readiness = %+v", status)
		}
	})
}

func TestRouter_NotFoundAndMethod(t *testing.T) {
	t.Parallel()
	h := setupTestServer(t)

	rec, env := doRequest(t, h, http.MethodGet, "/api/v1/nope", "")
	if rec.Code != http.StatusNotFound || env.Error.Code != ErrCodeNotFound {
		t.Errorf("unknown route: status = %d, error = %+v", rec.Code, env.Error)
	}

	rec, env = doRequest(t, h, http.MethodDelete, "/api/v1/listings/0", "")
	if rec.Code != http.StatusMethodNotAllowed || env.Error.Code != ErrCodeMethodNotAllowed {
		t.Errorf("wrong method: status = %d, error = %+v", rec.Code, env.Error)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()
	h := setupTestServer(t)
	createListing(t, h, "a", "oak desk", 1)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("listingrec_api_requests_total")) {
		t.Error("metrics output missing listingrec_api_requests_total")
	}
}

func TestRateLimit(t *testing.T) {
	t.Parallel()
	logger := logging.NewTestLogger(io.Discard)
	catalog := store.NewMemoryCatalog()
	history := store.NewMemoryHistory()
	index := similarity.NewHolder(similarity.BuildOptions{}, logger)
	engine, err := recommend.NewEngine(nil, history, catalog, index, logger)
	if err != nil {
		t.Fatal(err)
	}
	handler := NewHandler(service.NewListingService(catalog, index, logger), service.NewUserService(history, engine, logger))

	mwCfg := DefaultChiMiddlewareConfig()
	mwCfg.RateLimitRequests = 2
	h := NewRouter(handler, NewChiMiddleware(mwCfg)).SetupChi()

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/listings/0", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("third request status = %d, want 429 (codes %v)", codes[2], codes)
	}

	// Probes are not throttled
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("health/live status = %d after limit, want 200", rec.Code)
	}
}

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"a\nb", `a\x0ab`},
		{"tab\there", `tab\x09here`},
	}
	for _, tt := range tests {
		if got := sanitizeLogValue(tt.in); got != tt.want {
			t.Errorf("sanitizeLogValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
