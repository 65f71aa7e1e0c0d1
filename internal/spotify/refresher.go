// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package spotify

import (
	"context"
	"log/slog"
	"time"

	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/store"
)

// MinRefreshInterval bounds upstream fetch frequency regardless of how many
// callers request a refresh.
const MinRefreshInterval = 25 * time.Second

// Refresher drives the lease-based refresh of the persisted snapshot. Only
// the lease holder talks to the upstream API; everyone else reads the last
// saved state.
type Refresher struct {
	queries  *store.Queries
	resolver *Resolver
	interval time.Duration
}

// NewRefresher creates a refresher. Intervals below MinRefreshInterval are
// raised to it.
func NewRefresher(queries *store.Queries, resolver *Resolver) *Refresher {
	return &Refresher{queries: queries, resolver: resolver, interval: MinRefreshInterval}
}

// Snapshot reads the current public payload, degrading to the unavailable
// fallback when nothing has been recorded yet.
func (r *Refresher) Snapshot(ctx context.Context) model.NowPlayingPayload {
	snap, err := r.queries.GetNowPlayingSnapshot(ctx, model.NowPlayingKey)
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

// Refresh attempts one lease-guarded refresh cycle and returns the resulting
// public payload. Without the lease (and without force) the stored snapshot
// is returned unchanged.
func (r *Refresher) Refresh(ctx context.Context, force bool) (model.NowPlayingPayload, error) {
	now := time.Now()
	if err := r.queries.EnsureNowPlayingSnapshot(ctx, model.NowPlayingKey, now); err != nil {
		return model.FallbackNowPlayingPayload(now), err
	}

	nowMs := now.UnixMilli()
	nextMs := nowMs + r.interval.Milliseconds()
	if force {
		if err := r.queries.ForceNowPlayingLease(ctx, model.NowPlayingKey, nextMs); err != nil {
			return r.Snapshot(ctx), err
		}
	} else {
		acquired, err := r.queries.AcquireNowPlayingLease(ctx, model.NowPlayingKey, nowMs, nextMs)
		if err != nil {
			return r.Snapshot(ctx), err
		}
		if !acquired {
			return r.Snapshot(ctx), nil
		}
	}

	payload, err := r.resolver.Resolve(ctx)
	if err != nil {
		slog.Warn("now-playing refresh failed", "error", err)
		if markErr := r.queries.MarkNowPlayingFailure(ctx, model.NowPlayingKey, err.Error(), time.Now()); markErr != nil {
			return r.Snapshot(ctx), markErr
		}
		return r.Snapshot(ctx), nil
	}

	if err := r.queries.SaveNowPlayingSnapshot(ctx, store.SaveNowPlayingParams{
		Key:       model.NowPlayingKey,
		Status:    payload.Status,
		Track:     payload.Track,
		FetchedAt: payload.FetchedAt,
		UpdatedAt: time.Now(),
	}); err != nil {
		return r.Snapshot(ctx), err
	}
	return payload, nil
}
