// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"testing"

	"github.com/olegiv/folio-go/internal/analytics"
)

func trackEvent(t *testing.T, srvURL, eventType string, extra map[string]any) {
	t.Helper()
	body := map[string]any{
		"event_type": eventType,
		"path":       "/",
		"session_id": "session-0001",
	}
	for k, v := range extra {
		body[k] = v
	}
	resp, _ := doRequest(t, http.MethodPost, srvURL+"/api/v1/analytics/track", body)
	wantStatus(t, resp, http.StatusAccepted)
}

func TestTrackEvent(t *testing.T) {
	srv, _ := newTestServer(t)

	trackEvent(t, srv.URL, "page_view", nil)
	trackEvent(t, srv.URL, "project_open", map[string]any{"project_slug": "folio"})
}

func TestTrackEvent_Validation(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, env := doRequest(t, http.MethodPost, srv.URL+"/api/v1/analytics/track", map[string]any{
		"event_type": "made_up_event",
		"path":       "/",
		"session_id": "session-0001",
	})
	wantStatus(t, resp, http.StatusUnprocessableEntity)
	if env.Error == nil || env.Error.Details["event_type"] == "" {
		t.Error("expected event_type validation error")
	}

	resp, env = doRequest(t, http.MethodPost, srv.URL+"/api/v1/analytics/track", map[string]any{
		"event_type": "page_view",
	})
	wantStatus(t, resp, http.StatusUnprocessableEntity)
	if env.Error == nil || env.Error.Details["path"] == "" {
		t.Error("expected path validation error")
	}
}

func TestAdminAnalyticsOverview(t *testing.T) {
	srv, _ := newTestServer(t)

	trackEvent(t, srv.URL, "page_view", nil)
	trackEvent(t, srv.URL, "contact_submit", nil)

	resp, env := doRequest(t, http.MethodGet, srv.URL+"/api/v1/admin/analytics/overview", nil)
	wantStatus(t, resp, http.StatusOK)

	var overview analytics.Overview
	decodeData(t, env, &overview)
	if overview.Last7Days.PageViews != 1 {
		t.Errorf("7d page views = %d, want 1", overview.Last7Days.PageViews)
	}
	if overview.Last7Days.ContactSubmits != 1 {
		t.Errorf("7d contact submits = %d, want 1", overview.Last7Days.ContactSubmits)
	}
}

func TestAdminAnalyticsTimeseries(t *testing.T) {
	srv, _ := newTestServer(t)

	trackEvent(t, srv.URL, "page_view", nil)

	resp, env := doRequest(t, http.MethodGet, srv.URL+"/api/v1/admin/analytics/timeseries?days=7", nil)
	wantStatus(t, resp, http.StatusOK)

	var series []analytics.DayStats
	decodeData(t, env, &series)
	if len(series) != 7 {
		t.Fatalf("got %d buckets, want 7", len(series))
	}
	today := series[len(series)-1]
	if today.PageViews != 1 {
		t.Errorf("today page views = %d, want 1", today.PageViews)
	}

	// Out-of-range days clamp instead of erroring.
	resp, _ = doRequest(t, http.MethodGet, srv.URL+"/api/v1/admin/analytics/timeseries?days=5000", nil)
	wantStatus(t, resp, http.StatusOK)
}

func TestAdminAnalyticsTopProjects(t *testing.T) {
	srv, _ := newTestServer(t)

	trackEvent(t, srv.URL, "project_open", map[string]any{"project_slug": "folio"})
	trackEvent(t, srv.URL, "project_open", map[string]any{"project_slug": "folio"})
	trackEvent(t, srv.URL, "project_open", map[string]any{"project_slug": "other"})

	resp, env := doRequest(t, http.MethodGet, srv.URL+"/api/v1/admin/analytics/top-projects?days=30", nil)
	wantStatus(t, resp, http.StatusOK)

	var top []analytics.ProjectStats
	decodeData(t, env, &top)
	if len(top) != 2 {
		t.Fatalf("got %d projects, want 2", len(top))
	}
	if top[0].ProjectSlug != "folio" {
		t.Errorf("top slug = %q, want folio", top[0].ProjectSlug)
	}
}
