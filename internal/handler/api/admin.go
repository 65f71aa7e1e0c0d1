// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/olegiv/folio-go/internal/middleware"
	"github.com/olegiv/folio-go/internal/model"
)

// SeedDemoContent handles POST /api/v1/admin/seed. Seeding is idempotent
// per table: only tables that are currently empty receive demo content.
func (h *Handler) SeedDemoContent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.queries.SeedDemoContent(ctx, time.Now())
	if err != nil {
		WriteInternalError(w, "Failed to seed demo content")
		return
	}

	if h.cache != nil {
		h.cache.ClearAll(ctx)
	}
	WriteSuccess(w, result, nil)
}

// EventAPIResponse represents an operational event in API responses.
type EventAPIResponse struct {
	ID        int64     `json:"id"`
	Level     string    `json:"level"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	UserEmail string    `json:"user_email,omitempty"`
	Metadata  string    `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AdminListEvents handles GET /api/v1/admin/events. Optional "level" filter
// and "limit" (default 100, max 500).
func (h *Handler) AdminListEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := int64(100)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > 500 {
		limit = 500
	}

	var (
		events []model.Event
		err    error
	)
	if level := r.URL.Query().Get("level"); level != "" {
		events, err = h.queries.ListEventsByLevel(ctx, level, limit)
	} else {
		events, err = h.queries.ListRecentEvents(ctx, limit)
	}
	if err != nil {
		WriteInternalError(w, "Failed to list events")
		return
	}

	out := make([]EventAPIResponse, 0, len(events))
	for _, e := range events {
		out = append(out, EventAPIResponse{
			ID:        e.ID,
			Level:     e.Level,
			Category:  e.Category,
			Message:   e.Message,
			UserEmail: nullableString(e.UserEmail),
			Metadata:  e.Metadata,
			CreatedAt: e.CreatedAt,
		})
	}
	WriteSuccess(w, out, &Meta{Total: int64(len(out))})
}

// AuthInfo handles GET /api/v1/admin/auth-info, returning the session the
// admin middleware resolved for this request.
func (h *Handler) AuthInfo(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetAdminSession(r)
	if session == nil {
		WriteUnauthorized(w, "Not authenticated")
		return
	}

	type AuthInfoResponse struct {
		OwnerEmail string    `json:"owner_email"`
		ExpiresAt  time.Time `json:"expires_at,omitempty"`
	}
	WriteSuccess(w, AuthInfoResponse{
		OwnerEmail: session.OwnerEmail,
		ExpiresAt:  session.ExpiresAt,
	}, nil)
}

// CacheStats handles GET /api/v1/admin/cache/stats.
func (h *Handler) CacheStats(w http.ResponseWriter, _ *http.Request) {
	if h.cache == nil {
		WriteNotFound(w, "Cache not configured")
		return
	}
	stats, ok := h.cache.Stats()
	if !ok {
		WriteNotFound(w, "Cache backend does not report stats")
		return
	}
	WriteSuccess(w, stats, nil)
}
