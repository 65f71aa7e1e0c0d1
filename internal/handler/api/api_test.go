// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/olegiv/folio-go/internal/analytics"
	"github.com/olegiv/folio-go/internal/auth"
	"github.com/olegiv/folio-go/internal/cache"
	"github.com/olegiv/folio-go/internal/middleware"
	"github.com/olegiv/folio-go/internal/store"
	"github.com/olegiv/folio-go/internal/testutil"
)

const (
	testIssueSecret = "test-issue-secret-32-bytes-long!"
	testOwnerEmail  = "owner@example.com"
)

// newTestServer builds the full router over a fresh database with the admin
// middleware in open mode and a rate limiter too generous to trip.
func newTestServer(t *testing.T) (*httptest.Server, *store.Queries) {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)
	queries := store.New(db)

	backend := cache.NewSimpleMemoryCache(time.Minute)
	t.Cleanup(func() { _ = backend.Close() })

	h := NewHandler(db, cache.NewManager(backend),
		analytics.NewAggregator(queries, nil),
		auth.NewGate(queries, testIssueSecret, []string{testOwnerEmail}, time.Hour),
		nil)

	limiter := middleware.NewIPRateLimiter(1000, 1000)
	srv := httptest.NewServer(h.Routes(middleware.AdminAuth(db, true), limiter.Middleware()))
	t.Cleanup(srv.Close)
	return srv, queries
}

// envelope mirrors the response wrapper with the data left raw for
// per-test decoding.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Meta  *Meta           `json:"meta"`
	Error *ErrorDetail    `json:"error"`
}

func doRequest(t *testing.T, method, url string, body any) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && err != io.EOF {
		t.Fatalf("decode response body: %v", err)
	}
	return resp, env
}

func decodeData(t *testing.T, env envelope, dst any) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func wantStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("status = %d, want %d", resp.StatusCode, want)
	}
}

func TestStatus(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, env := doRequest(t, http.MethodGet, srv.URL+"/api/v1/status", nil)
	wantStatus(t, resp, http.StatusOK)

	var status StatusResponse
	decodeData(t, env, &status)
	if status.Status != "ok" {
		t.Errorf("status = %q, want %q", status.Status, "ok")
	}
	if status.Version == "" {
		t.Error("version should not be empty")
	}
}

func TestAuthInfo_OpenMode(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, env := doRequest(t, http.MethodGet, srv.URL+"/api/v1/admin/auth-info", nil)
	wantStatus(t, resp, http.StatusOK)

	var info struct {
		OwnerEmail string `json:"owner_email"`
	}
	decodeData(t, env, &info)
	if info.OwnerEmail != "open-mode" {
		t.Errorf("owner_email = %q, want %q", info.OwnerEmail, "open-mode")
	}
}

func TestSeedDemoContent(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, env := doRequest(t, http.MethodPost, srv.URL+"/api/v1/admin/seed", nil)
	wantStatus(t, resp, http.StatusOK)

	var result store.SeedResult
	decodeData(t, env, &result)
	if result.InsertedProjects == 0 {
		t.Error("expected seeded projects")
	}

	// Second seed run must be a no-op.
	resp, env = doRequest(t, http.MethodPost, srv.URL+"/api/v1/admin/seed", nil)
	wantStatus(t, resp, http.StatusOK)
	decodeData(t, env, &result)
	if result.InsertedProjects != 0 {
		t.Errorf("second seed inserted %d projects, want 0", result.InsertedProjects)
	}
}

func TestCacheStats(t *testing.T) {
	srv, _ := newTestServer(t)

	// Warm the cache through a public read, then fetch stats.
	resp, _ := doRequest(t, http.MethodGet, srv.URL+"/api/v1/projects", nil)
	wantStatus(t, resp, http.StatusOK)

	resp, env := doRequest(t, http.MethodGet, srv.URL+"/api/v1/admin/cache/stats", nil)
	wantStatus(t, resp, http.StatusOK)
	if len(env.Data) == 0 {
		t.Error("expected cache stats payload")
	}
}

func TestAdminListEvents(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, env := doRequest(t, http.MethodGet, srv.URL+"/api/v1/admin/events?limit=10", nil)
	wantStatus(t, resp, http.StatusOK)

	var events []EventAPIResponse
	decodeData(t, env, &events)
	if events == nil {
		t.Error("expected an empty list, not null")
	}
}

func TestUnknownEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, _ := doRequest(t, http.MethodGet, srv.URL+"/api/v1/nope", nil)
	if resp.StatusCode != http.StatusNotFound && resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 404 or 405", resp.StatusCode)
	}
}
