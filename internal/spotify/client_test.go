// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package spotify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, cfg ClientConfig) *Client {
	t.Helper()
	if cfg.ClientID == "" {
		cfg.ClientID = "client-id"
	}
	if cfg.ClientSecret == "" {
		cfg.ClientSecret = "client-secret"
	}
	if cfg.RefreshToken == "" {
		cfg.RefreshToken = "refresh-token"
	}
	c, err := NewClient(cfg)
	require.NoError(t, err)
	return c
}

func TestNewClient_MissingCredentials(t *testing.T) {
	cases := []ClientConfig{
		{},
		{ClientID: "id", ClientSecret: "secret"},
		{ClientID: "id", RefreshToken: "token"},
		{ClientID: "  ", ClientSecret: "secret", RefreshToken: "token"},
	}
	for _, cfg := range cases {
		_, err := NewClient(cfg)
		assert.ErrorIs(t, err, ErrMissingCredentials)
	}
}

func TestNewClient_Defaults(t *testing.T) {
	c := newTestClient(t, ClientConfig{})
	assert.Equal(t, DefaultTokenURL, c.tokenURL)
	assert.Equal(t, DefaultCurrentURL, c.currentURL)
	assert.Equal(t, DefaultRecentURL, c.recentURL)
	assert.Equal(t, DefaultArtistsURL, c.artistsURL)
	assert.NotNil(t, c.http)
}

func TestAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "client-id", user)
		assert.Equal(t, "client-secret", pass)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.PostFormValue("grant_type"))
		assert.Equal(t, "refresh-token", r.PostFormValue("refresh_token"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"shiny-token"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, ClientConfig{TokenURL: srv.URL})
	token, err := c.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "shiny-token", token)
}

func TestAccessToken_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := newTestClient(t, ClientConfig{TokenURL: srv.URL})
	_, err := c.AccessToken(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}

func TestAccessToken_MissingToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(t, ClientConfig{TokenURL: srv.URL})
	_, err := c.AccessToken(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing access_token")
}

func TestCurrentlyPlaying(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{
			"is_playing": true,
			"progress_ms": 42000,
			"item": {
				"name": "Song A",
				"artists": [{"name": "Artist A", "id": "artist-1"}],
				"album": {"name": "Album A", "images": [{"url": "https://img.example/a.jpg"}]},
				"duration_ms": 180000,
				"external_urls": {"spotify": "https://open.spotify.com/track/a"}
			}
		}`))
	}))
	defer srv.Close()

	c := newTestClient(t, ClientConfig{CurrentURL: srv.URL})
	current, err := c.CurrentlyPlaying(context.Background(), "token-1")
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.True(t, current.IsPlaying)
	require.NotNil(t, current.ProgressMs)
	assert.Equal(t, int64(42000), *current.ProgressMs)
	require.NotNil(t, current.Item)
	assert.Equal(t, "Song A", current.Item.Name)
	assert.Equal(t, "Album A", current.Item.Album.Name)
	assert.Equal(t, "https://open.spotify.com/track/a", current.Item.ExternalURLs.Spotify)
}

func TestCurrentlyPlaying_NoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := newTestClient(t, ClientConfig{CurrentURL: srv.URL})
	current, err := c.CurrentlyPlaying(context.Background(), "token-1")
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestCurrentlyPlaying_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(t, ClientConfig{CurrentURL: srv.URL})
	_, err := c.CurrentlyPlaying(context.Background(), "token-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestRecentlyPlayed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"items": [{
				"played_at": "2026-01-15T12:00:00Z",
				"track": {"name": "Song B", "artists": [{"name": "Artist B", "id": "artist-2"}], "album": {"name": "Album B"}}
			}]
		}`))
	}))
	defer srv.Close()

	c := newTestClient(t, ClientConfig{RecentURL: srv.URL})
	track, playedAt, err := c.RecentlyPlayed(context.Background(), "token-1")
	require.NoError(t, err)
	require.NotNil(t, track)
	assert.Equal(t, "Song B", track.Name)
	assert.Equal(t, "2026-01-15T12:00:00Z", playedAt)
}

func TestRecentlyPlayed_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items": []}`))
	}))
	defer srv.Close()

	c := newTestClient(t, ClientConfig{RecentURL: srv.URL})
	track, playedAt, err := c.RecentlyPlayed(context.Background(), "token-1")
	require.NoError(t, err)
	assert.Nil(t, track)
	assert.Empty(t, playedAt)
}

func TestArtistGenres(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "artist-1,artist-2", r.URL.Query().Get("ids"))
		_, _ = w.Write([]byte(`{
			"artists": [
				{"genres": ["Indie Rock", "dream pop"]},
				{"genres": ["indie rock", "Shoegaze"]}
			]
		}`))
	}))
	defer srv.Close()

	c := newTestClient(t, ClientConfig{ArtistsURL: srv.URL})
	genres, err := c.ArtistGenres(context.Background(), "token-1", []string{"artist-1", "", "artist-2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"indie rock", "dream pop", "shoegaze"}, genres)
}

func TestArtistGenres_NoIDs(t *testing.T) {
	c := newTestClient(t, ClientConfig{ArtistsURL: "http://127.0.0.1:1/never-called"})
	genres, err := c.ArtistGenres(context.Background(), "token-1", []string{"", ""})
	require.NoError(t, err)
	assert.Nil(t, genres)
}
