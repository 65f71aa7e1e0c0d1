// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Now-playing snapshot states.
const (
	NowPlayingStatusPlaying     = "playing"
	NowPlayingStatusIdle        = "idle"
	NowPlayingStatusUnavailable = "unavailable"
)

// NowPlayingKey is the well-known key of the singleton snapshot row.
const NowPlayingKey = "main"

// NowPlayingErrorMaxLen bounds the diagnostic message stored on a failed refresh.
const NowPlayingErrorMaxLen = 300

// NowPlayingTrack is the normalized track payload shared by all viewers.
type NowPlayingTrack struct {
	Title         string   `json:"title"`
	Artists       string   `json:"artists"`
	Album         string   `json:"album"`
	AlbumImageURL string   `json:"albumImageUrl"`
	TrackURL      string   `json:"trackUrl"`
	Genres        []string `json:"genres,omitempty"`
	PrimaryGenre  string   `json:"primaryGenre,omitempty"`
	DurationMs    *int64   `json:"durationMs,omitempty"`
	ProgressMs    *int64   `json:"progressMs,omitempty"`
	PlayedAt      string   `json:"playedAt,omitempty"`
}

// NowPlayingSnapshot is the single persisted "last known" now-playing record.
// Created lazily on the first refresh attempt, updated in place, never deleted.
type NowPlayingSnapshot struct {
	ID            int64
	Key           string
	Status        string
	Track         *NowPlayingTrack // nil when nothing resolved
	FetchedAt     string           // ISO timestamp of the resolve
	NextRefreshAt int64            // epoch ms; earliest time a new upstream fetch may occur
	UpdatedAt     time.Time
	Error         string
}

// NowPlayingPayload is the public shape of a snapshot read.
type NowPlayingPayload struct {
	Status    string           `json:"status"`
	Track     *NowPlayingTrack `json:"track"`
	FetchedAt string           `json:"fetchedAt"`
}

// FallbackNowPlayingPayload is returned when no snapshot exists yet or a read
// must degrade.
func FallbackNowPlayingPayload(now time.Time) NowPlayingPayload {
	return NowPlayingPayload{
		Status:    NowPlayingStatusUnavailable,
		Track:     nil,
		FetchedAt: now.UTC().Format(time.RFC3339),
	}
}

// TruncateNowPlayingError bounds an error message for snapshot storage.
func TruncateNowPlayingError(msg string) string {
	if len(msg) > NowPlayingErrorMaxLen {
		return msg[:NowPlayingErrorMaxLen]
	}
	return msg
}
