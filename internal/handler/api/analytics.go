// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/olegiv/folio-go/internal/analytics"
	"github.com/olegiv/folio-go/internal/middleware"
	"github.com/olegiv/folio-go/internal/model"
)

// TrackEventRequest represents a public analytics event submission.
type TrackEventRequest struct {
	EventType   string         `json:"event_type"`
	Path        string         `json:"path"`
	SessionID   string         `json:"session_id"`
	ProjectSlug string         `json:"project_slug,omitempty"`
	Meta        map[string]any `json:"meta,omitempty"`
}

// TrackEvent handles POST /api/v1/analytics/track (public). Tracking is
// best-effort: once the payload parses, the caller always gets a 202 and
// insert failures are only logged.
func (h *Handler) TrackEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req TrackEventRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if !model.IsValidEventType(req.EventType) {
		WriteValidationError(w, map[string]string{"event_type": "Unknown event type"})
		return
	}
	if req.Path == "" || req.SessionID == "" {
		WriteValidationError(w, map[string]string{"path": "Path and session_id are required"})
		return
	}

	_, err := h.analytics.Track(ctx, analytics.TrackParams{
		EventType:   req.EventType,
		Path:        req.Path,
		ProjectSlug: req.ProjectSlug,
		SessionID:   req.SessionID,
		Meta:        req.Meta,
		Client: analytics.ClientInfo{
			UserAgent: r.UserAgent(),
			IP:        middleware.GetClientIP(r),
		},
	}, time.Now())
	if err != nil {
		slog.Warn("analytics track failed", "event_type", req.EventType, "error", err)
	}

	WriteJSON(w, http.StatusAccepted, Response{Data: successResponse{Success: true}})
}

// AdminAnalyticsOverview handles GET /api/v1/admin/analytics/overview.
func (h *Handler) AdminAnalyticsOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.analytics.Overview(r.Context(), time.Now())
	if err != nil {
		WriteInternalError(w, "Failed to compute analytics overview")
		return
	}
	WriteSuccess(w, overview, nil)
}

// parseDaysParam reads the "days" query parameter, defaulting to 30.
func parseDaysParam(r *http.Request) int {
	days := 30
	if raw := r.URL.Query().Get("days"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			days = v
		}
	}
	return analytics.ClampDays(days)
}

// AdminAnalyticsTimeseries handles GET /api/v1/admin/analytics/timeseries.
func (h *Handler) AdminAnalyticsTimeseries(w http.ResponseWriter, r *http.Request) {
	series, err := h.analytics.Timeseries(r.Context(), time.Now(), parseDaysParam(r))
	if err != nil {
		WriteInternalError(w, "Failed to compute analytics timeseries")
		return
	}
	WriteSuccess(w, series, &Meta{Total: int64(len(series))})
}

// AdminAnalyticsTopProjects handles GET /api/v1/admin/analytics/top-projects.
func (h *Handler) AdminAnalyticsTopProjects(w http.ResponseWriter, r *http.Request) {
	top, err := h.analytics.TopProjects(r.Context(), time.Now(), parseDaysParam(r))
	if err != nil {
		WriteInternalError(w, "Failed to compute top projects")
		return
	}
	WriteSuccess(w, top, &Meta{Total: int64(len(top))})
}
