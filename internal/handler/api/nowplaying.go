// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/folio-go/internal/model"
)

// nowPlayingSnapshot reads the persisted snapshot, degrading to the
// unavailable fallback when nothing has been recorded or the read fails.
func (h *Handler) nowPlayingSnapshot(ctx context.Context) model.NowPlayingPayload {
	snap, err := h.queries.GetNowPlayingSnapshot(ctx, model.NowPlayingKey)
	if err != nil {
		return model.FallbackNowPlayingPayload(time.Now())
	}
	fetchedAt := snap.FetchedAt
	if fetchedAt == "" {
		fetchedAt = time.Now().UTC().Format(time.RFC3339)
	}
	return model.NowPlayingPayload{
		Status:    snap.Status,
		Track:     snap.Track,
		FetchedAt: fetchedAt,
	}
}

// GetNowPlaying handles GET /api/v1/now-playing (public).
func (h *Handler) GetNowPlaying(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, h.nowPlayingSnapshot(r.Context()), nil)
}

// SpotifyNowPlaying handles GET /api/spotify-now-playing, a bare mirror for
// the landing-page widget. Always 200 with no-store: any failure degrades to
// an unavailable body rather than an error status. With Spotify configured
// the response comes from the in-process single-flight cache; otherwise it
// mirrors the persisted snapshot.
func (h *Handler) SpotifyNowPlaying(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	if h.nowPlayingCache != nil {
		WriteJSON(w, http.StatusOK, h.nowPlayingCache.Get(r.Context()))
		return
	}
	WriteJSON(w, http.StatusOK, h.nowPlayingSnapshot(r.Context()))
}

// RefreshNowPlaying handles POST /api/v1/now-playing/refresh (public). The
// lease bounds upstream calls, so anonymous triggers cannot stampede the
// music API. "force=true" skips the lease check.
func (h *Handler) RefreshNowPlaying(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.nowPlaying == nil {
		WriteSuccess(w, h.nowPlayingSnapshot(ctx), nil)
		return
	}

	force := r.URL.Query().Get("force") == "true"
	payload, err := h.nowPlaying.Refresh(ctx, force)
	if err != nil {
		slog.Warn("now-playing refresh error", "error", err)
	}
	WriteSuccess(w, payload, nil)
}
