// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/folio-go/internal/analytics"
	"github.com/olegiv/folio-go/internal/auth"
	"github.com/olegiv/folio-go/internal/cache"
	"github.com/olegiv/folio-go/internal/config"
	"github.com/olegiv/folio-go/internal/geoip"
	"github.com/olegiv/folio-go/internal/handler/api"
	"github.com/olegiv/folio-go/internal/logging"
	"github.com/olegiv/folio-go/internal/middleware"
	"github.com/olegiv/folio-go/internal/scheduler"
	"github.com/olegiv/folio-go/internal/spotify"
	"github.com/olegiv/folio-go/internal/store"
	"github.com/olegiv/folio-go/internal/version"
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "folio - personal portfolio backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_ADMIN_ISSUE_SECRET   Secret for issuing admin sessions (required unless open mode, min %d bytes)\n", config.MinIssueSecretLength)
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_DB_PATH              SQLite database path (default: ./data/folio.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_SERVER_PORT          Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_ENV                  Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_REDIS_URL            Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_GEOIP_DB_PATH        GeoLite2-Country.mmdb path for country enrichment (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SPOTIFY_CLIENT_ID          Spotify app client ID for the now-playing widget (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "\nFor more information, see: https://github.com/olegiv/folio-go\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		info := version.Get()
		_, _ = fmt.Printf("folio %s (commit: %s, built: %s)\n", info.Version, info.GitCommit, info.BuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// Initialize database
	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	// Run migrations
	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the event log table
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	queries := store.New(db)
	ctx := context.Background()

	// Seed demo content if requested
	if cfg.DoSeed {
		result, err := queries.SeedDemoContent(ctx, time.Now())
		if err != nil {
			return fmt.Errorf("seeding demo content: %w", err)
		}
		slog.Info("demo content seeded",
			"projects", result.InsertedProjects,
			"testimonials", result.InsertedTestimonials,
			"wall_entries", result.InsertedWallEntries)
	}

	// Cache backend: Redis when configured, in-memory otherwise
	backend, err := cache.New(cache.Config{
		RedisURL:        cfg.RedisURL,
		Prefix:          cfg.CachePrefix,
		DefaultTTL:      time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:         cfg.CacheMaxSize,
		CleanupInterval: time.Minute,
	})
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()
	cacheMgr := cache.NewManager(backend)
	if cfg.UseRedisCache() {
		slog.Info("cache initialized", "backend", "redis")
	} else {
		slog.Info("cache initialized", "backend", "memory")
	}

	// GeoIP country enrichment is optional
	var geo *geoip.Lookup
	if cfg.GeoIPEnabled() {
		geo = geoip.NewLookup()
		if err := geo.Init(cfg.GeoIPDBPath); err != nil {
			slog.Warn("GeoIP database unavailable, country enrichment disabled",
				"path", cfg.GeoIPDBPath, "error", err)
			geo = nil
		} else {
			defer func() {
				if err := geo.Close(); err != nil {
					slog.Error("error closing GeoIP database", "error", err)
				}
			}()
			slog.Info("GeoIP enrichment enabled", "path", cfg.GeoIPDBPath)
		}
	}

	agg := analytics.NewAggregator(queries, geo)

	gate := auth.NewGate(queries, cfg.AdminIssueSecret, cfg.OwnerEmailAllowList(),
		time.Duration(cfg.AdminSessionHours)*time.Hour)
	if cfg.AdminOpenMode {
		slog.Warn("admin open mode enabled, all admin endpoints are unauthenticated")
	}

	// Spotify now-playing wiring is optional
	var (
		refresher    *spotify.Refresher
		payloadCache *spotify.PayloadCache
	)
	if cfg.SpotifyEnabled() {
		client, err := spotify.NewClient(spotify.ClientConfig{
			ClientID:     cfg.SpotifyClientID,
			ClientSecret: cfg.SpotifyClientSecret,
			RefreshToken: cfg.SpotifyRefreshToken,
		})
		if err != nil {
			return fmt.Errorf("initializing spotify client: %w", err)
		}
		resolver := spotify.NewResolver(client)
		refresher = spotify.NewRefresher(queries, resolver)
		payloadCache = spotify.NewPayloadCache(resolver, 0)
		slog.Info("spotify now-playing enabled", "background_refresh", cfg.NowPlayingRefresh)
	} else {
		slog.Info("spotify now-playing disabled, credentials not configured")
	}

	h := api.NewHandler(db, cacheMgr, agg, gate, refresher)
	if payloadCache != nil {
		h.WithNowPlayingCache(payloadCache)
	}

	limiter := middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	adminAuth := middleware.AdminAuth(db, cfg.AdminOpenMode)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Mount("/", h.Routes(adminAuth, limiter.Middleware()))

	// Background jobs
	sched := scheduler.New(db, logger).
		WithGate(gate).
		WithRateLimiter(limiter)
	if geo != nil {
		sched.WithGeoIP(geo)
	}
	if refresher != nil && cfg.NowPlayingRefresh {
		sched.WithNowPlaying(refresher)
	}
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
