// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package spotify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64p(v int64) *int64 { return &v }

func TestNormalizeGenres(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, nil},
		{"dedupes case-insensitively", []string{"Indie Rock", "indie rock", "Shoegaze"}, []string{"indie rock", "shoegaze"}},
		{"trims and drops blanks", []string{"  jazz  ", "", "   "}, []string{"jazz"}},
		{"preserves first-seen order", []string{"b", "a", "b"}, []string{"b", "a"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, normalizeGenres(tc.in))
		})
	}
}

func TestTrackArtistIDs(t *testing.T) {
	assert.Nil(t, trackArtistIDs(nil))

	track := &wireTrack{Artists: []wireArtist{
		{Name: "A", ID: "id-a"},
		{Name: "B", ID: " "},
		{Name: "C", ID: "id-c"},
		{Name: "A again", ID: "id-a"},
	}}
	assert.Equal(t, []string{"id-a", "id-c"}, trackArtistIDs(track))
}

func TestNormalizeTrack(t *testing.T) {
	track := &wireTrack{
		Name: "Song",
		Artists: []wireArtist{
			{Name: "First", ID: "1"},
			{Name: "", ID: "2"},
			{Name: "Second", ID: "3"},
		},
		Album: wireAlbum{
			Name:   "Album",
			Images: []wireImage{{URL: "https://img.example/big.jpg"}, {URL: "https://img.example/small.jpg"}},
		},
		DurationMs: int64p(210000),
	}
	track.ExternalURLs.Spotify = "https://open.spotify.com/track/x"

	out := normalizeTrack(track, normalizeOptions{
		ProgressMs: int64p(30000),
		PlayedAt:   "  2026-01-15T12:00:00Z  ",
		Genres:     []string{"Dream Pop", "dream pop", "Shoegaze"},
	})
	require.NotNil(t, out)
	assert.Equal(t, "Song", out.Title)
	assert.Equal(t, "First, Second", out.Artists)
	assert.Equal(t, "Album", out.Album)
	assert.Equal(t, "https://img.example/big.jpg", out.AlbumImageURL)
	assert.Equal(t, "https://open.spotify.com/track/x", out.TrackURL)
	assert.Equal(t, "2026-01-15T12:00:00Z", out.PlayedAt)
	require.NotNil(t, out.DurationMs)
	assert.Equal(t, int64(210000), *out.DurationMs)
	require.NotNil(t, out.ProgressMs)
	assert.Equal(t, int64(30000), *out.ProgressMs)
	assert.Equal(t, []string{"dream pop", "shoegaze"}, out.Genres)
	assert.Equal(t, "dream pop", out.PrimaryGenre)
}

func TestNormalizeTrack_NilForMissingName(t *testing.T) {
	assert.Nil(t, normalizeTrack(nil, normalizeOptions{}))
	assert.Nil(t, normalizeTrack(&wireTrack{}, normalizeOptions{}))
}

func TestNormalizeTrack_ClampsNegativeDurations(t *testing.T) {
	track := &wireTrack{Name: "Song", DurationMs: int64p(-1)}
	out := normalizeTrack(track, normalizeOptions{ProgressMs: int64p(-500)})
	require.NotNil(t, out)
	require.NotNil(t, out.DurationMs)
	assert.Equal(t, int64(0), *out.DurationMs)
	require.NotNil(t, out.ProgressMs)
	assert.Equal(t, int64(0), *out.ProgressMs)
	assert.Empty(t, out.PrimaryGenre)
}
