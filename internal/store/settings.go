// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/olegiv/folio-go/internal/model"
)

const settingsColumns = `id, key, availability_text, availability_timezone, focus_note, focus_emoji,
	career_start_year, wall_enabled, wall_ticker_duration_sec, wall_max_visible_entries, updated_at`

func scanSettings(row interface{ Scan(...any) error }) (model.SiteSettings, error) {
	var s model.SiteSettings
	err := row.Scan(&s.ID, &s.Key, &s.AvailabilityText, &s.AvailabilityTimezone,
		&s.FocusNote, &s.FocusEmoji, &s.CareerStartYear, &s.WallEnabled,
		&s.WallTickerDurationSec, &s.WallMaxVisibleEntries, &s.UpdatedAt)
	return s, err
}

// GetSiteSettings fetches the settings row for a key. Returns sql.ErrNoRows
// before the singleton is first written.
func (q *Queries) GetSiteSettings(ctx context.Context, key string) (model.SiteSettings, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+settingsColumns+` FROM site_settings WHERE key = ?`, key)
	return scanSettings(row)
}

// UpsertSiteSettingsParams holds the full row state for UpsertSiteSettings.
type UpsertSiteSettingsParams struct {
	Key                   string
	AvailabilityText      string
	AvailabilityTimezone  string
	FocusNote             string
	FocusEmoji            string
	CareerStartYear       int64
	WallEnabled           bool
	WallTickerDurationSec int64
	WallMaxVisibleEntries int64
	UpdatedAt             time.Time
}

// UpsertSiteSettings writes the settings row for a key, creating it on first
// save. Callers apply partial patches over the current (or default) state in
// memory first.
func (q *Queries) UpsertSiteSettings(ctx context.Context, arg UpsertSiteSettingsParams) (model.SiteSettings, error) {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO site_settings (key, availability_text, availability_timezone, focus_note,
			focus_emoji, career_start_year, wall_enabled, wall_ticker_duration_sec,
			wall_max_visible_entries, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			availability_text = excluded.availability_text,
			availability_timezone = excluded.availability_timezone,
			focus_note = excluded.focus_note,
			focus_emoji = excluded.focus_emoji,
			career_start_year = excluded.career_start_year,
			wall_enabled = excluded.wall_enabled,
			wall_ticker_duration_sec = excluded.wall_ticker_duration_sec,
			wall_max_visible_entries = excluded.wall_max_visible_entries,
			updated_at = excluded.updated_at`,
		arg.Key, arg.AvailabilityText, arg.AvailabilityTimezone, arg.FocusNote,
		arg.FocusEmoji, arg.CareerStartYear, arg.WallEnabled, arg.WallTickerDurationSec,
		arg.WallMaxVisibleEntries, arg.UpdatedAt)
	if err != nil {
		return model.SiteSettings{}, err
	}
	return q.GetSiteSettings(ctx, arg.Key)
}
