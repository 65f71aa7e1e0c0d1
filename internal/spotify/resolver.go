// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package spotify

import (
	"context"
	"log/slog"
	"time"

	"github.com/olegiv/folio-go/internal/model"
)

// Resolver walks the token→currently-playing→recently-played chain and
// produces a now-playing payload.
type Resolver struct {
	client *Client
	now    func() time.Time
}

// NewResolver creates a resolver over the given client.
func NewResolver(client *Client) *Resolver {
	return &Resolver{client: client, now: time.Now}
}

func (r *Resolver) payload(status string, track *model.NowPlayingTrack) model.NowPlayingPayload {
	return model.NowPlayingPayload{
		Status:    status,
		Track:     track,
		FetchedAt: r.now().UTC().Format(time.RFC3339),
	}
}

// genresFor looks up genres for a track's artists. Lookup failures degrade to
// an empty list rather than failing the resolve.
func (r *Resolver) genresFor(ctx context.Context, accessToken string, track *wireTrack) []string {
	ids := trackArtistIDs(track)
	if len(ids) == 0 {
		return nil
	}
	genres, err := r.client.ArtistGenres(ctx, accessToken, ids)
	if err != nil {
		slog.Debug("spotify genre lookup failed", "error", err)
		return nil
	}
	return genres
}

// Resolve performs one full upstream resolve. Playing takes precedence over
// the most recent history item; with neither, the payload is unavailable with
// a nil track.
func (r *Resolver) Resolve(ctx context.Context) (model.NowPlayingPayload, error) {
	token, err := r.client.AccessToken(ctx)
	if err != nil {
		return model.NowPlayingPayload{}, err
	}

	current, err := r.client.CurrentlyPlaying(ctx, token)
	if err != nil {
		return model.NowPlayingPayload{}, err
	}
	if current != nil && current.IsPlaying {
		track := normalizeTrack(current.Item, normalizeOptions{
			ProgressMs: current.ProgressMs,
			Genres:     r.genresFor(ctx, token, current.Item),
		})
		if track != nil {
			return r.payload(model.NowPlayingStatusPlaying, track), nil
		}
	}

	recent, playedAt, err := r.client.RecentlyPlayed(ctx, token)
	if err != nil {
		return model.NowPlayingPayload{}, err
	}
	if recent != nil {
		track := normalizeTrack(recent, normalizeOptions{
			PlayedAt: playedAt,
			Genres:   r.genresFor(ctx, token, recent),
		})
		if track != nil {
			return r.payload(model.NowPlayingStatusIdle, track), nil
		}
	}

	return r.payload(model.NowPlayingStatusUnavailable, nil), nil
}

// ResolveSafe never fails: any error in the resolve chain degrades to an
// unavailable payload with a nil track.
func (r *Resolver) ResolveSafe(ctx context.Context) model.NowPlayingPayload {
	payload, err := r.Resolve(ctx)
	if err != nil {
		slog.Warn("spotify resolve failed", "error", err)
		return r.payload(model.NowPlayingStatusUnavailable, nil)
	}
	return payload
}
