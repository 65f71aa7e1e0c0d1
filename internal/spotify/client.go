// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package spotify resolves the operator's listening status from the Spotify
// Web API into the normalized snapshot the public site reads.
package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Default Spotify Web API endpoints. Overridable for tests.
const (
	DefaultTokenURL   = "https://accounts.spotify.com/api/token"
	DefaultCurrentURL = "https://api.spotify.com/v1/me/player/currently-playing"
	DefaultRecentURL  = "https://api.spotify.com/v1/me/player/recently-played?limit=1"
	DefaultArtistsURL = "https://api.spotify.com/v1/artists"
)

const requestTimeout = 10 * time.Second

// ErrMissingCredentials is returned when the client is constructed without
// a complete credential set.
var ErrMissingCredentials = errors.New("spotify: missing credentials")

// ClientConfig holds credentials and optional endpoint overrides.
type ClientConfig struct {
	ClientID     string
	ClientSecret string
	RefreshToken string

	TokenURL   string
	CurrentURL string
	RecentURL  string
	ArtistsURL string

	HTTPClient *http.Client
}

// Client is a minimal Spotify Web API client scoped to the now-playing flow.
type Client struct {
	clientID     string
	clientSecret string
	refreshToken string

	tokenURL   string
	currentURL string
	recentURL  string
	artistsURL string

	http *http.Client
}

// NewClient validates credentials and applies endpoint defaults.
func NewClient(cfg ClientConfig) (*Client, error) {
	clientID := strings.TrimSpace(cfg.ClientID)
	clientSecret := strings.TrimSpace(cfg.ClientSecret)
	refreshToken := strings.TrimSpace(cfg.RefreshToken)
	if clientID == "" || clientSecret == "" || refreshToken == "" {
		return nil, ErrMissingCredentials
	}

	c := &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		refreshToken: refreshToken,
		tokenURL:     cfg.TokenURL,
		currentURL:   cfg.CurrentURL,
		recentURL:    cfg.RecentURL,
		artistsURL:   cfg.ArtistsURL,
		http:         cfg.HTTPClient,
	}
	if c.tokenURL == "" {
		c.tokenURL = DefaultTokenURL
	}
	if c.currentURL == "" {
		c.currentURL = DefaultCurrentURL
	}
	if c.recentURL == "" {
		c.recentURL = DefaultRecentURL
	}
	if c.artistsURL == "" {
		c.artistsURL = DefaultArtistsURL
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: requestTimeout}
	}
	return c, nil
}

// Upstream wire shapes. Only the fields the resolver reads.

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type wireImage struct {
	URL string `json:"url"`
}

type wireArtist struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

type wireAlbum struct {
	Name   string      `json:"name"`
	Images []wireImage `json:"images"`
}

type wireTrack struct {
	Name         string       `json:"name"`
	Artists      []wireArtist `json:"artists"`
	Album        wireAlbum    `json:"album"`
	DurationMs   *int64       `json:"duration_ms"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
}

type currentlyPlayingResponse struct {
	IsPlaying  bool       `json:"is_playing"`
	ProgressMs *int64     `json:"progress_ms"`
	Item       *wireTrack `json:"item"`
}

type recentlyPlayedResponse struct {
	Items []struct {
		PlayedAt string     `json:"played_at"`
		Track    *wireTrack `json:"track"`
	} `json:"items"`
}

type artistsResponse struct {
	Artists []struct {
		Genres []string `json:"genres"`
	} `json:"artists"`
}

// AccessToken exchanges the stored refresh token for a short-lived access token.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {c.refreshToken},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("spotify: token refresh failed with status %d", resp.StatusCode)
	}

	var data tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("spotify: decode token response: %w", err)
	}
	if data.AccessToken == "" {
		return "", errors.New("spotify: token response missing access_token")
	}
	return data.AccessToken, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL, accessToken string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return resp.StatusCode, nil
	}
	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, fmt.Errorf("spotify: %s failed with status %d", rawURL, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("spotify: decode response: %w", err)
	}
	return resp.StatusCode, nil
}

// CurrentlyPlaying fetches the active playback state. A 204 response means
// nothing is playing and yields (nil, nil).
func (c *Client) CurrentlyPlaying(ctx context.Context, accessToken string) (*currentlyPlayingResponse, error) {
	var data currentlyPlayingResponse
	status, err := c.getJSON(ctx, c.currentURL, accessToken, &data)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNoContent {
		return nil, nil
	}
	return &data, nil
}

// RecentlyPlayed fetches the single most recent playback item, or nil when
// the history is empty.
func (c *Client) RecentlyPlayed(ctx context.Context, accessToken string) (track *wireTrack, playedAt string, err error) {
	var data recentlyPlayedResponse
	if _, err := c.getJSON(ctx, c.recentURL, accessToken, &data); err != nil {
		return nil, "", err
	}
	if len(data.Items) == 0 || data.Items[0].Track == nil {
		return nil, "", nil
	}
	return data.Items[0].Track, data.Items[0].PlayedAt, nil
}

// ArtistGenres looks up genres for the given artist IDs, deduplicated and
// lowercase-normalized.
func (c *Client) ArtistGenres(ctx context.Context, accessToken string, artistIDs []string) ([]string, error) {
	ids := make([]string, 0, len(artistIDs))
	for _, id := range artistIDs {
		if id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	query := url.Values{"ids": {strings.Join(ids, ",")}}
	var data artistsResponse
	if _, err := c.getJSON(ctx, c.artistsURL+"?"+query.Encode(), accessToken, &data); err != nil {
		return nil, err
	}

	var all []string
	for _, a := range data.Artists {
		all = append(all, a.Genres...)
	}
	return normalizeGenres(all), nil
}
