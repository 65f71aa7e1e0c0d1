// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/olegiv/folio-go/internal/cache"
	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/store"
)

// QuickStats are the derived landing-page figures attached to the public
// settings payload.
type QuickStats struct {
	ProjectsShipped int64 `json:"projects_shipped"`
	YearsExperience int64 `json:"years_experience"`
}

// PublicSettingsResponse is the public shape of the site settings. The
// career start year stays private; only the derived experience figure ships.
type PublicSettingsResponse struct {
	AvailabilityText      string     `json:"availability_text"`
	AvailabilityTimezone  string     `json:"availability_timezone"`
	FocusNote             string     `json:"focus_note"`
	FocusEmoji            string     `json:"focus_emoji"`
	WallEnabled           bool       `json:"wall_enabled"`
	WallTickerDurationSec int64      `json:"wall_ticker_duration_sec"`
	WallMaxVisibleEntries int64      `json:"wall_max_visible_entries"`
	QuickStats            QuickStats `json:"quick_stats"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// loadSettings returns the stored settings merged over defaults. Before the
// first admin save no row exists and the defaults apply as-is.
func (h *Handler) loadSettings(ctx context.Context) (model.SiteSettings, error) {
	settings, err := h.queries.GetSiteSettings(ctx, model.SiteSettingsKey)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DefaultSiteSettings(), nil
	}
	return settings, err
}

func (h *Handler) invalidateSettings(ctx context.Context) {
	if h.cache != nil {
		h.cache.InvalidateSettings(ctx)
	}
}

// GetPublicSettings handles GET /api/v1/settings (public).
func (h *Handler) GetPublicSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	load := func() (*PublicSettingsResponse, error) {
		settings, err := h.loadSettings(ctx)
		if err != nil {
			return nil, err
		}
		shipped, err := h.queries.CountPublishedProjects(ctx)
		if err != nil {
			return nil, err
		}

		now := time.Now()
		updatedAt := settings.UpdatedAt
		if updatedAt.IsZero() {
			updatedAt = now
		}
		return &PublicSettingsResponse{
			AvailabilityText:      settings.AvailabilityText,
			AvailabilityTimezone:  settings.AvailabilityTimezone,
			FocusNote:             settings.FocusNote,
			FocusEmoji:            settings.FocusEmoji,
			WallEnabled:           settings.WallEnabled,
			WallTickerDurationSec: settings.WallTickerDurationSec,
			WallMaxVisibleEntries: settings.WallMaxVisibleEntries,
			QuickStats: QuickStats{
				ProjectsShipped: shipped,
				YearsExperience: settings.YearsExperience(now),
			},
			UpdatedAt: updatedAt,
		}, nil
	}

	var (
		resp *PublicSettingsResponse
		err  error
	)
	if h.settingsCache != nil {
		resp, err = h.settingsCache.GetOrSet(ctx, cache.KeySettings, load)
	} else {
		resp, err = load()
	}
	if err != nil {
		WriteInternalError(w, "Failed to load settings")
		return
	}

	WriteSuccess(w, *resp, nil)
}

// AdminGetSettings handles GET /api/v1/admin/settings.
func (h *Handler) AdminGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.loadSettings(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to load settings")
		return
	}
	WriteSuccess(w, settings, nil)
}

// UpdateSettingsRequest represents the request body for updating site
// settings. Only fields present in the JSON body are patched.
type UpdateSettingsRequest struct {
	AvailabilityText      *string `json:"availability_text,omitempty"`
	AvailabilityTimezone  *string `json:"availability_timezone,omitempty"`
	FocusNote             *string `json:"focus_note,omitempty"`
	FocusEmoji            *string `json:"focus_emoji,omitempty"`
	CareerStartYear       *int64  `json:"career_start_year,omitempty"`
	WallEnabled           *bool   `json:"wall_enabled,omitempty"`
	WallTickerDurationSec *int64  `json:"wall_ticker_duration_sec,omitempty"`
	WallMaxVisibleEntries *int64  `json:"wall_max_visible_entries,omitempty"`
}

// UpdateSettings handles PUT /api/v1/admin/settings. The singleton is
// created from defaults on first save, then patched in place.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req UpdateSettingsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	settings, err := h.loadSettings(ctx)
	if err != nil {
		WriteInternalError(w, "Failed to load settings")
		return
	}

	if req.AvailabilityText != nil {
		settings.AvailabilityText = *req.AvailabilityText
	}
	if req.AvailabilityTimezone != nil {
		settings.AvailabilityTimezone = *req.AvailabilityTimezone
	}
	if req.FocusNote != nil {
		settings.FocusNote = *req.FocusNote
	}
	if req.FocusEmoji != nil {
		settings.FocusEmoji = *req.FocusEmoji
	}
	if req.CareerStartYear != nil {
		settings.CareerStartYear = *req.CareerStartYear
	}
	if req.WallEnabled != nil {
		settings.WallEnabled = *req.WallEnabled
	}
	if req.WallTickerDurationSec != nil {
		settings.WallTickerDurationSec = model.ClampWallTickerDuration(*req.WallTickerDurationSec)
	}
	if req.WallMaxVisibleEntries != nil {
		settings.WallMaxVisibleEntries = model.ClampWallMaxVisible(*req.WallMaxVisibleEntries)
	}

	updated, err := h.queries.UpsertSiteSettings(ctx, store.UpsertSiteSettingsParams{
		Key:                   model.SiteSettingsKey,
		AvailabilityText:      settings.AvailabilityText,
		AvailabilityTimezone:  settings.AvailabilityTimezone,
		FocusNote:             settings.FocusNote,
		FocusEmoji:            settings.FocusEmoji,
		CareerStartYear:       settings.CareerStartYear,
		WallEnabled:           settings.WallEnabled,
		WallTickerDurationSec: settings.WallTickerDurationSec,
		WallMaxVisibleEntries: settings.WallMaxVisibleEntries,
		UpdatedAt:             time.Now(),
	})
	if err != nil {
		WriteInternalError(w, "Failed to update settings")
		return
	}

	h.invalidateSettings(ctx)
	WriteSuccess(w, updated, nil)
}
