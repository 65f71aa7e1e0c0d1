// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package spotify

import (
	"strings"

	"github.com/olegiv/folio-go/internal/model"
)

// normalizeGenres trims, lowercases and deduplicates, preserving first-seen
// order.
func normalizeGenres(genres []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(genres))
	for _, g := range genres {
		n := strings.ToLower(strings.TrimSpace(g))
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// trackArtistIDs collects deduplicated, non-empty artist IDs in track order.
func trackArtistIDs(track *wireTrack) []string {
	if track == nil {
		return nil
	}
	var ids []string
	seen := make(map[string]struct{}, len(track.Artists))
	for _, a := range track.Artists {
		id := strings.TrimSpace(a.ID)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// normalizeOptions carries the per-source extras attached to a track.
type normalizeOptions struct {
	ProgressMs *int64
	PlayedAt   string
	Genres     []string
}

// normalizeTrack converts an upstream track into the stable payload shape.
// A track with no name normalizes to nil.
func normalizeTrack(track *wireTrack, opts normalizeOptions) *model.NowPlayingTrack {
	if track == nil || track.Name == "" {
		return nil
	}

	var names []string
	for _, a := range track.Artists {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}

	out := &model.NowPlayingTrack{
		Title:    track.Name,
		Artists:  strings.Join(names, ", "),
		Album:    track.Album.Name,
		TrackURL: track.ExternalURLs.Spotify,
		PlayedAt: strings.TrimSpace(opts.PlayedAt),
	}
	if len(track.Album.Images) > 0 {
		out.AlbumImageURL = track.Album.Images[0].URL
	}
	if track.DurationMs != nil {
		out.DurationMs = clampNonNegative(*track.DurationMs)
	}
	if opts.ProgressMs != nil {
		out.ProgressMs = clampNonNegative(*opts.ProgressMs)
	}

	genres := normalizeGenres(opts.Genres)
	if len(genres) > 0 {
		out.Genres = genres
		out.PrimaryGenre = genres[0]
	}
	return out
}

func clampNonNegative(v int64) *int64 {
	if v < 0 {
		v = 0
	}
	return &v
}
