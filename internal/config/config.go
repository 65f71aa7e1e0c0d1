// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	"change-me-admin-issue-secret",
	"REPLACE_WITH_YOUR_OWN_SECRET",
}

// MinIssueSecretLength is the minimum required length for the admin issue secret.
const MinIssueSecretLength = 16

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"FOLIO_DB_PATH" envDefault:"./data/folio.db"`
	ServerHost string `env:"FOLIO_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"FOLIO_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"FOLIO_ENV" envDefault:"development"`
	LogLevel   string `env:"FOLIO_LOG_LEVEL" envDefault:"info"`

	// Admin gating. Open mode skips token checks entirely and is only
	// meant for local development.
	AdminOpenMode      bool   `env:"FOLIO_ADMIN_OPEN_MODE" envDefault:"false"`
	AdminIssueSecret   string `env:"FOLIO_ADMIN_ISSUE_SECRET"`
	AllowedOwnerEmails string `env:"FOLIO_ALLOWED_OWNER_EMAILS"` // comma-separated allow-list
	AdminSessionHours  int    `env:"FOLIO_ADMIN_SESSION_HOURS" envDefault:"720"`

	// Cache configuration
	RedisURL     string `env:"FOLIO_REDIS_URL"`                         // Optional Redis URL for distributed caching
	CachePrefix  string `env:"FOLIO_CACHE_PREFIX" envDefault:"folio:"`  // Redis key prefix
	CacheTTL     int    `env:"FOLIO_CACHE_TTL" envDefault:"300"`        // Default cache TTL in seconds
	CacheMaxSize int    `env:"FOLIO_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	// Spotify now-playing integration
	SpotifyClientID     string `env:"SPOTIFY_CLIENT_ID"`
	SpotifyClientSecret string `env:"SPOTIFY_CLIENT_SECRET"`
	SpotifyRefreshToken string `env:"SPOTIFY_REFRESH_TOKEN"`

	// NowPlayingRefresh enables the background refresh job.
	NowPlayingRefresh bool `env:"FOLIO_NOW_PLAYING_REFRESH" envDefault:"false"`

	// Rate limiting for public write endpoints (per client IP).
	RateLimitRPS   float64 `env:"FOLIO_RATE_LIMIT_RPS" envDefault:"2"`
	RateLimitBurst int     `env:"FOLIO_RATE_LIMIT_BURST" envDefault:"5"`

	// GeoIP configuration
	GeoIPDBPath string `env:"FOLIO_GEOIP_DB_PATH"` // Path to GeoLite2-Country.mmdb file

	// Seeding configuration
	DoSeed bool `env:"FOLIO_DO_SEED" envDefault:"false"` // Enable database seeding
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// SpotifyEnabled returns true if all Spotify credentials are configured.
func (c Config) SpotifyEnabled() bool {
	return c.SpotifyClientID != "" && c.SpotifyClientSecret != "" && c.SpotifyRefreshToken != ""
}

// GeoIPEnabled returns true if GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// OwnerEmailAllowList parses the comma-separated owner email allow-list.
// Returns nil when unset, meaning any owner email may be issued a session.
func (c Config) OwnerEmailAllowList() []string {
	if c.AllowedOwnerEmails == "" {
		return nil
	}
	parts := strings.Split(c.AllowedOwnerEmails, ",")
	emails := make([]string, 0, len(parts))
	for _, p := range parts {
		if e := strings.ToLower(strings.TrimSpace(p)); e != "" {
			emails = append(emails, e)
		}
	}
	if len(emails) == 0 {
		return nil
	}
	return emails
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if !cfg.AdminOpenMode {
		if len(cfg.AdminIssueSecret) < MinIssueSecretLength {
			return nil, fmt.Errorf("FOLIO_ADMIN_ISSUE_SECRET must be at least %d bytes long, got %d bytes; "+
				"generate a secure secret with: openssl rand -base64 32",
				MinIssueSecretLength, len(cfg.AdminIssueSecret))
		}
		for _, weak := range knownWeakSecrets {
			if cfg.AdminIssueSecret == weak {
				return nil, fmt.Errorf("FOLIO_ADMIN_ISSUE_SECRET is a known default value and must not be used; " +
					"generate a secure secret with: openssl rand -base64 32")
			}
		}
	}

	if cfg.AdminSessionHours <= 0 {
		return nil, fmt.Errorf("FOLIO_ADMIN_SESSION_HOURS must be positive, got %d", cfg.AdminSessionHours)
	}

	return cfg, nil
}
