// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/olegiv/folio-go/internal/model"
)

func TestGetSiteSettings_NoRow(t *testing.T) {
	q, cleanup := testQueries(t)
	defer cleanup()

	if _, err := q.GetSiteSettings(context.Background(), model.SiteSettingsKey); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("err = %v, want sql.ErrNoRows", err)
	}
}

func TestUpsertSiteSettings(t *testing.T) {
	q, cleanup := testQueries(t)
	defer cleanup()
	ctx := context.Background()
	now := time.Now()

	defaults := model.DefaultSiteSettings()
	created, err := q.UpsertSiteSettings(ctx, UpsertSiteSettingsParams{
		Key:                   model.SiteSettingsKey,
		AvailabilityText:      defaults.AvailabilityText,
		AvailabilityTimezone:  defaults.AvailabilityTimezone,
		FocusNote:             defaults.FocusNote,
		FocusEmoji:            defaults.FocusEmoji,
		CareerStartYear:       defaults.CareerStartYear,
		WallEnabled:           true,
		WallTickerDurationSec: 38,
		WallMaxVisibleEntries: 24,
		UpdatedAt:             now,
	})
	if err != nil {
		t.Fatalf("UpsertSiteSettings (insert): %v", err)
	}
	if created.AvailabilityText != defaults.AvailabilityText {
		t.Errorf("AvailabilityText = %q", created.AvailabilityText)
	}

	// Second upsert updates the same row.
	updated, err := q.UpsertSiteSettings(ctx, UpsertSiteSettingsParams{
		Key:                   model.SiteSettingsKey,
		AvailabilityText:      "Booked through Q3",
		AvailabilityTimezone:  defaults.AvailabilityTimezone,
		FocusNote:             defaults.FocusNote,
		FocusEmoji:            defaults.FocusEmoji,
		CareerStartYear:       2015,
		WallEnabled:           false,
		WallTickerDurationSec: 45,
		WallMaxVisibleEntries: 10,
		UpdatedAt:             now.Add(time.Minute),
	})
	if err != nil {
		t.Fatalf("UpsertSiteSettings (update): %v", err)
	}
	if updated.ID != created.ID {
		t.Errorf("upsert created a second row: %d vs %d", updated.ID, created.ID)
	}
	if updated.AvailabilityText != "Booked through Q3" {
		t.Errorf("AvailabilityText = %q", updated.AvailabilityText)
	}
	if updated.WallEnabled {
		t.Error("WallEnabled = true, want false")
	}
	if updated.CareerStartYear != 2015 {
		t.Errorf("CareerStartYear = %d", updated.CareerStartYear)
	}
}
