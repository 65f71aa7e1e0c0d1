// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// SiteSettingsKey is the well-known key of the singleton settings row.
const SiteSettingsKey = "main"

// Wall display bounds enforced on settings updates.
const (
	WallTickerMinDurationSec = 10
	WallMaxVisibleMin        = 1
	WallMaxVisibleMax        = 30
)

// SiteSettings is the singleton record of operator-editable site widgets.
type SiteSettings struct {
	ID                    int64     `json:"id"`
	Key                   string    `json:"key"`
	AvailabilityText      string    `json:"availability_text"`
	AvailabilityTimezone  string    `json:"availability_timezone"`
	FocusNote             string    `json:"focus_note"`
	FocusEmoji            string    `json:"focus_emoji"`
	CareerStartYear       int64     `json:"career_start_year"`
	WallEnabled           bool      `json:"wall_enabled"`
	WallTickerDurationSec int64     `json:"wall_ticker_duration_sec"`
	WallMaxVisibleEntries int64     `json:"wall_max_visible_entries"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// DefaultSiteSettings returns the settings used when no row exists yet.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		Key:                   SiteSettingsKey,
		AvailabilityText:      "Available for selected freelance projects",
		AvailabilityTimezone:  "America/Toronto",
		FocusNote:             "Focus: Shipping portfolio platform v2 with realtime admin.",
		FocusEmoji:            "🎧",
		CareerStartYear:       2018,
		WallEnabled:           true,
		WallTickerDurationSec: 38,
		WallMaxVisibleEntries: 24,
	}
}

// YearsExperience derives the quick-stat experience figure, never below 1.
func (s SiteSettings) YearsExperience(now time.Time) int64 {
	years := int64(now.UTC().Year()) - s.CareerStartYear
	if years < 1 {
		return 1
	}
	return years
}

// ClampWallTickerDuration enforces the minimum ticker duration.
func ClampWallTickerDuration(v int64) int64 {
	if v < WallTickerMinDurationSec {
		return WallTickerMinDurationSec
	}
	return v
}

// ClampWallMaxVisible enforces the visible-entry bounds.
func ClampWallMaxVisible(v int64) int64 {
	if v < WallMaxVisibleMin {
		return WallMaxVisibleMin
	}
	if v > WallMaxVisibleMax {
		return WallMaxVisibleMax
	}
	return v
}
