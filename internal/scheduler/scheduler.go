// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the background jobs that keep the portfolio
// fresh: the Spotify now-playing refresh, admin session purging, rate
// limiter pruning, GeoIP database reloads and event retention.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/folio-go/internal/auth"
	"github.com/olegiv/folio-go/internal/geoip"
	"github.com/olegiv/folio-go/internal/middleware"
	"github.com/olegiv/folio-go/internal/spotify"
	"github.com/olegiv/folio-go/internal/store"
)

// Retention windows for database housekeeping.
const (
	// eventRetentionDays bounds the system event log.
	eventRetentionDays = 90
	// analyticsRetentionDays bounds raw analytics events. The dashboard
	// only ever looks 90 days back, so a year of raw data is plenty.
	analyticsRetentionDays = 365
)

// Scheduler owns the cron runner and the dependencies its jobs touch.
type Scheduler struct {
	db        *sql.DB
	cron      *cron.Cron
	logger    *slog.Logger
	refresher *spotify.Refresher
	gate      *auth.Gate
	limiter   *middleware.IPRateLimiter
	geo       *geoip.Lookup
}

// New creates a scheduler. The refresher, gate, limiter and geo lookup
// are each optional; jobs for absent dependencies are not registered.
func New(db *sql.DB, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		db:     db,
		cron:   cron.New(),
		logger: logger,
	}
}

// WithNowPlaying registers the Spotify refresher so the now-playing
// snapshot is kept warm in the background.
func (s *Scheduler) WithNowPlaying(r *spotify.Refresher) *Scheduler {
	s.refresher = r
	return s
}

// WithGate registers the admin session gate for expired-session purging.
func (s *Scheduler) WithGate(g *auth.Gate) *Scheduler {
	s.gate = g
	return s
}

// WithRateLimiter registers the IP rate limiter for periodic pruning.
func (s *Scheduler) WithRateLimiter(rl *middleware.IPRateLimiter) *Scheduler {
	s.limiter = rl
	return s
}

// WithGeoIP registers the GeoIP lookup for daily database reloads.
func (s *Scheduler) WithGeoIP(g *geoip.Lookup) *Scheduler {
	s.geo = g
	return s
}

// Start registers the jobs and begins the cron runner.
func (s *Scheduler) Start() error {
	if s.refresher != nil {
		// Matches the snapshot lease interval, so at most one refresh
		// per window actually reaches Spotify even with several replicas.
		if _, err := s.cron.AddFunc("@every 25s", s.refreshNowPlaying); err != nil {
			return err
		}
	}

	if s.gate != nil {
		if _, err := s.cron.AddFunc("@hourly", s.purgeExpiredSessions); err != nil {
			return err
		}
	}

	if s.limiter != nil {
		if _, err := s.cron.AddFunc("@every 10m", s.pruneRateLimiter); err != nil {
			return err
		}
	}

	if s.geo != nil {
		if _, err := s.cron.AddFunc("@daily", s.reloadGeoIP); err != nil {
			return err
		}
	}

	if _, err := s.cron.AddFunc("@daily", s.enforceRetention); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// refreshNowPlaying renews the shared now-playing snapshot. Lease
// contention and upstream outages are already absorbed by the
// refresher, so only unexpected errors surface here.
func (s *Scheduler) refreshNowPlaying() {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if _, err := s.refresher.Refresh(ctx, false); err != nil {
		s.logger.Error("now-playing refresh failed", "error", err)
	}
}

// purgeExpiredSessions removes admin sessions past their expiry.
func (s *Scheduler) purgeExpiredSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.gate.PurgeExpired(ctx)
	if err != nil {
		s.logger.Error("failed to purge expired admin sessions", "error", err)
		return
	}
	if n > 0 {
		s.logger.Info("purged expired admin sessions", "count", n)
	}
}

// pruneRateLimiter drops idle per-IP limiter buckets.
func (s *Scheduler) pruneRateLimiter() {
	if s.limiter.Prune() {
		s.logger.Debug("pruned idle rate limiter buckets")
	}
}

// reloadGeoIP picks up a refreshed GeoLite2 database file.
func (s *Scheduler) reloadGeoIP() {
	if err := s.geo.Reload(); err != nil {
		s.logger.Error("failed to reload GeoIP database", "error", err)
	}
}

// enforceRetention deletes event log entries and raw analytics events
// older than their retention windows.
func (s *Scheduler) enforceRetention() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	queries := store.New(s.db)
	now := time.Now()

	if n, err := queries.DeleteEventsBefore(ctx, now.AddDate(0, 0, -eventRetentionDays)); err != nil {
		s.logger.Error("failed to prune event log", "error", err)
	} else if n > 0 {
		s.logger.Info("pruned event log", "count", n, "retention_days", eventRetentionDays)
	}

	if n, err := queries.DeleteAnalyticsEventsBefore(ctx, now.AddDate(0, 0, -analyticsRetentionDays)); err != nil {
		s.logger.Error("failed to prune analytics events", "error", err)
	} else if n > 0 {
		s.logger.Info("pruned analytics events", "count", n, "retention_days", analyticsRetentionDays)
	}
}
