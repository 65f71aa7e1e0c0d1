// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/olegiv/folio-go/internal/cache"
	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/store"
	"github.com/olegiv/folio-go/internal/util"
)

// Public wall listing bounds.
const (
	wallDefaultPublicResults = 24
	wallMaxPublicResults     = 30
)

// WallEntryAPIResponse represents a wall entry in API responses. The
// session identifier is never exposed.
type WallEntryAPIResponse struct {
	ID          int64     `json:"id"`
	DisplayName string    `json:"display_name"`
	Message     string    `json:"message,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toWallEntryResponse(e model.WallEntry) WallEntryAPIResponse {
	return WallEntryAPIResponse{
		ID:          e.ID,
		DisplayName: e.DisplayName,
		Message:     nullableString(e.Message),
		Status:      e.Status,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toWallEntryResponses(entries []model.WallEntry) []WallEntryAPIResponse {
	out := make([]WallEntryAPIResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toWallEntryResponse(e))
	}
	return out
}

func (h *Handler) invalidateWall(ctx context.Context) {
	if h.cache != nil {
		h.cache.InvalidateWall(ctx)
	}
}

// SubmitWallEntryRequest represents a public wall signature.
type SubmitWallEntryRequest struct {
	DisplayName string `json:"display_name"`
	Message     string `json:"message,omitempty"`
	SessionID   string `json:"session_id"`
}

// SubmitWallEntry handles POST /api/v1/wall (public). Submissions enter as
// pending and a per-session cooldown applies.
func (h *Handler) SubmitWallEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SubmitWallEntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	displayName := h.sanitizer.Sanitize(util.CollapseWhitespace(req.DisplayName))
	message := h.sanitizer.Sanitize(util.CollapseWhitespace(req.Message))
	sessionID := strings.TrimSpace(req.SessionID)

	if len(displayName) < model.WallDisplayNameMinLen || len(displayName) > model.WallDisplayNameMaxLen {
		WriteValidationError(w, map[string]string{
			"display_name": "Name must be between 2 and 40 characters.",
		})
		return
	}
	if len(message) > model.WallMessageMaxLen {
		WriteValidationError(w, map[string]string{
			"message": "Message must be 140 characters or fewer.",
		})
		return
	}
	if len(sessionID) < model.WallSessionIDMinLen || len(sessionID) > model.WallSessionIDMaxLen {
		WriteValidationError(w, map[string]string{
			"session_id": "Invalid session. Please refresh and try again.",
		})
		return
	}

	now := time.Now()
	previous, err := h.queries.GetLatestWallEntryBySession(ctx, sessionID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		WriteInternalError(w, "Failed to submit wall entry")
		return
	}
	if err == nil {
		elapsed := now.Sub(previous.CreatedAt)
		if elapsed < model.WallSubmitCooldown {
			retryInSec := int64(math.Ceil((model.WallSubmitCooldown - elapsed).Seconds()))
			WriteError(w, http.StatusTooManyRequests, "cooldown",
				fmt.Sprintf("Please wait %d seconds before signing again.", retryInSec), nil)
			return
		}
	}

	entry, err := h.queries.CreateWallEntry(ctx, store.CreateWallEntryParams{
		DisplayName: displayName,
		Message:     util.NullStringFromValue(message),
		Status:      model.WallStatusPending,
		SessionID:   sessionID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		WriteInternalError(w, "Failed to submit wall entry")
		return
	}

	WriteCreated(w, toWallEntryResponse(entry))
}

// ListApprovedWallEntries handles GET /api/v1/wall (public). The "limit"
// query parameter is clamped to [1, 30] and defaults to 24.
func (h *Handler) ListApprovedWallEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := int64(wallDefaultPublicResults)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			limit = v
		}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > wallMaxPublicResults {
		limit = wallMaxPublicResults
	}

	load := func() (*[]WallEntryAPIResponse, error) {
		entries, err := h.queries.ListApprovedWallEntries(ctx, limit)
		if err != nil {
			return nil, err
		}
		resp := toWallEntryResponses(entries)
		return &resp, nil
	}

	var (
		resp *[]WallEntryAPIResponse
		err  error
	)
	if h.wallCache != nil {
		key := cache.KeyWallPrefix + strconv.FormatInt(limit, 10)
		resp, err = h.wallCache.GetOrSet(ctx, key, load)
	} else {
		resp, err = load()
	}
	if err != nil {
		WriteInternalError(w, "Failed to list wall entries")
		return
	}

	WriteSuccess(w, *resp, &Meta{Total: int64(len(*resp))})
}

// AdminListWallEntries handles GET /api/v1/admin/wall. An optional "status"
// query parameter narrows the listing.
func (h *Handler) AdminListWallEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		entries []model.WallEntry
		err     error
	)
	if status := r.URL.Query().Get("status"); status != "" {
		if !model.IsValidWallStatus(status) {
			WriteBadRequest(w, "Invalid wall entry status", nil)
			return
		}
		entries, err = h.queries.ListWallEntriesByStatus(ctx, status)
	} else {
		entries, err = h.queries.ListWallEntries(ctx)
	}
	if err != nil {
		WriteInternalError(w, "Failed to list wall entries")
		return
	}

	WriteSuccess(w, toWallEntryResponses(entries), &Meta{Total: int64(len(entries))})
}

// UpdateWallEntryStatus handles PUT /api/v1/admin/wall/{id}/status.
func (h *Handler) UpdateWallEntryStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	entry, ok := requireEntityByID(w, r, "wall entry", func(id int64) (model.WallEntry, error) {
		return h.queries.GetWallEntry(ctx, id)
	})
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if !model.IsValidWallStatus(req.Status) {
		WriteValidationError(w, map[string]string{"status": "Status must be pending, approved, or archived"})
		return
	}

	updated, err := h.queries.UpdateWallEntryStatus(ctx, store.UpdateWallEntryStatusParams{
		ID:        entry.ID,
		Status:    req.Status,
		UpdatedAt: time.Now(),
	})
	if err != nil {
		WriteInternalError(w, "Failed to update wall entry")
		return
	}

	h.invalidateWall(ctx)
	WriteSuccess(w, toWallEntryResponse(updated), nil)
}

// DeleteWallEntry handles DELETE /api/v1/admin/wall/{id}.
func (h *Handler) DeleteWallEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	entry, ok := requireEntityByID(w, r, "wall entry", func(id int64) (model.WallEntry, error) {
		return h.queries.GetWallEntry(ctx, id)
	})
	if !ok {
		return
	}

	if err := h.queries.DeleteWallEntry(ctx, entry.ID); err != nil {
		WriteInternalError(w, "Failed to delete wall entry")
		return
	}

	h.invalidateWall(ctx)
	WriteSuccess(w, successResponse{Success: true}, nil)
}
