// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strings"
	"testing"
)

func submitWallEntry(t *testing.T, srvURL, name, sessionID string) (*http.Response, envelope) {
	t.Helper()
	return doRequest(t, http.MethodPost, srvURL+"/api/v1/wall", map[string]any{
		"display_name": name,
		"message":      "Great work!",
		"session_id":   sessionID,
	})
}

func TestSubmitWallEntry(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, env := submitWallEntry(t, srv.URL, "Ada", "session-0001")
	wantStatus(t, resp, http.StatusCreated)

	var entry WallEntryAPIResponse
	decodeData(t, env, &entry)
	if entry.DisplayName != "Ada" {
		t.Errorf("display_name = %q, want Ada", entry.DisplayName)
	}
	if entry.Status != "pending" {
		t.Errorf("status = %q, want pending", entry.Status)
	}
}

func TestSubmitWallEntry_Cooldown(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, _ := submitWallEntry(t, srv.URL, "Ada", "session-0001")
	wantStatus(t, resp, http.StatusCreated)

	resp, env := submitWallEntry(t, srv.URL, "Ada", "session-0001")
	wantStatus(t, resp, http.StatusTooManyRequests)
	if env.Error == nil || env.Error.Code != "cooldown" {
		t.Fatalf("expected cooldown error, got %+v", env.Error)
	}
	if !strings.Contains(env.Error.Message, "wait") {
		t.Errorf("message = %q, want retry hint", env.Error.Message)
	}

	// A different session is not affected.
	resp, _ = submitWallEntry(t, srv.URL, "Grace", "session-0002")
	wantStatus(t, resp, http.StatusCreated)
}

func TestSubmitWallEntry_Validation(t *testing.T) {
	srv, _ := newTestServer(t)

	cases := []struct {
		name  string
		body  map[string]any
		field string
	}{
		{"short name", map[string]any{"display_name": "A", "session_id": "session-0001"}, "display_name"},
		{"long message", map[string]any{
			"display_name": "Ada",
			"message":      strings.Repeat("x", 141),
			"session_id":   "session-0001",
		}, "message"},
		{"short session", map[string]any{"display_name": "Ada", "session_id": "abc"}, "session_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, env := doRequest(t, http.MethodPost, srv.URL+"/api/v1/wall", tc.body)
			wantStatus(t, resp, http.StatusUnprocessableEntity)
			if env.Error == nil || env.Error.Details[tc.field] == "" {
				t.Errorf("expected validation detail for %q", tc.field)
			}
		})
	}
}

func TestSubmitWallEntry_SanitizesMarkup(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, env := doRequest(t, http.MethodPost, srv.URL+"/api/v1/wall", map[string]any{
		"display_name": "Ada <script>alert(1)</script>",
		"message":      "hi <b>there</b>",
		"session_id":   "session-0001",
	})
	wantStatus(t, resp, http.StatusCreated)

	var entry WallEntryAPIResponse
	decodeData(t, env, &entry)
	if strings.Contains(entry.DisplayName, "<") {
		t.Errorf("display_name not sanitized: %q", entry.DisplayName)
	}
	if strings.Contains(entry.Message, "<b>") {
		t.Errorf("message not sanitized: %q", entry.Message)
	}
}

func approveWallEntry(t *testing.T, srvURL string, id int64) {
	t.Helper()
	resp, _ := doRequest(t, http.MethodPut, srvURL+"/api/v1/admin/wall/"+itoa(id)+"/status",
		map[string]any{"status": "approved"})
	wantStatus(t, resp, http.StatusOK)
}

func TestListApprovedWallEntries(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, env := submitWallEntry(t, srv.URL, "Ada", "session-0001")
	wantStatus(t, resp, http.StatusCreated)
	var approved WallEntryAPIResponse
	decodeData(t, env, &approved)

	resp, _ = submitWallEntry(t, srv.URL, "Grace", "session-0002")
	wantStatus(t, resp, http.StatusCreated)

	approveWallEntry(t, srv.URL, approved.ID)

	resp, env = doRequest(t, http.MethodGet, srv.URL+"/api/v1/wall", nil)
	wantStatus(t, resp, http.StatusOK)
	var entries []WallEntryAPIResponse
	decodeData(t, env, &entries)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].DisplayName != "Ada" {
		t.Errorf("display_name = %q, want Ada", entries[0].DisplayName)
	}
}

func TestListApprovedWallEntries_LimitClamped(t *testing.T) {
	srv, _ := newTestServer(t)

	// Out-of-range limits must not error; they clamp.
	for _, raw := range []string{"0", "-5", "999", "abc"} {
		resp, _ := doRequest(t, http.MethodGet, srv.URL+"/api/v1/wall?limit="+raw, nil)
		wantStatus(t, resp, http.StatusOK)
	}
}

func TestAdminWallModeration(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, env := submitWallEntry(t, srv.URL, "Ada", "session-0001")
	wantStatus(t, resp, http.StatusCreated)
	var entry WallEntryAPIResponse
	decodeData(t, env, &entry)

	// Status filter on the admin listing.
	resp, env = doRequest(t, http.MethodGet, srv.URL+"/api/v1/admin/wall?status=pending", nil)
	wantStatus(t, resp, http.StatusOK)
	var entries []WallEntryAPIResponse
	decodeData(t, env, &entries)
	if len(entries) != 1 {
		t.Fatalf("got %d pending entries, want 1", len(entries))
	}

	resp, _ = doRequest(t, http.MethodGet, srv.URL+"/api/v1/admin/wall?status=bogus", nil)
	wantStatus(t, resp, http.StatusBadRequest)

	// Invalid moderation status.
	resp, _ = doRequest(t, http.MethodPut, srv.URL+"/api/v1/admin/wall/"+itoa(entry.ID)+"/status",
		map[string]any{"status": "bogus"})
	wantStatus(t, resp, http.StatusUnprocessableEntity)

	// Delete removes the entry.
	resp, _ = doRequest(t, http.MethodDelete, srv.URL+"/api/v1/admin/wall/"+itoa(entry.ID), nil)
	wantStatus(t, resp, http.StatusOK)
	resp, _ = doRequest(t, http.MethodDelete, srv.URL+"/api/v1/admin/wall/"+itoa(entry.ID), nil)
	wantStatus(t, resp, http.StatusNotFound)
}
