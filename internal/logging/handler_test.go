// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/store"
	"github.com/olegiv/folio-go/internal/testutil"
)

func newTestLogger(t *testing.T) (*slog.Logger, *store.Queries, func()) {
	t.Helper()
	db, cleanup := testutil.TestDB(t)
	inner := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(NewEventLogHandler(inner, db)), store.New(db), cleanup
}

func TestHandle_WarnReachesEventLog(t *testing.T) {
	logger, queries, cleanup := newTestLogger(t)
	defer cleanup()

	logger.Warn("spotify token refresh failed", "status", 500)

	events, err := queries.ListRecentEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	e := events[0]
	if e.Level != model.EventLevelWarning {
		t.Errorf("Level = %q, want %q", e.Level, model.EventLevelWarning)
	}
	if e.Category != model.EventCategorySpotify {
		t.Errorf("Category = %q, want %q", e.Category, model.EventCategorySpotify)
	}
	if e.Message != "spotify token refresh failed" {
		t.Errorf("Message = %q", e.Message)
	}
}

func TestHandle_InfoSkipsEventLog(t *testing.T) {
	logger, queries, cleanup := newTestLogger(t)
	defer cleanup()

	logger.Info("cache initialized", "backend", "memory")

	events, err := queries.ListRecentEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("got %d events, want 0", len(events))
	}
}

func TestHandle_ExplicitCategoryWins(t *testing.T) {
	logger, queries, cleanup := newTestLogger(t)
	defer cleanup()

	logger.Error("something broke", "category", model.EventCategoryAuth)

	events, err := queries.ListRecentEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Level != model.EventLevelError {
		t.Errorf("Level = %q, want %q", events[0].Level, model.EventLevelError)
	}
	if events[0].Category != model.EventCategoryAuth {
		t.Errorf("Category = %q, want %q", events[0].Category, model.EventCategoryAuth)
	}
}

func TestExtractCategory_MessageInference(t *testing.T) {
	h := &EventLogHandler{}

	tests := []struct {
		message string
		want    string
	}{
		{"admin session expired", model.EventCategoryAuth},
		{"now-playing refresh failed", model.EventCategorySpotify},
		{"analytics event dropped", model.EventCategoryAnalytics},
		{"project slug conflict", model.EventCategoryContent},
		{"cache invalidation failed", model.EventCategoryCache},
		{"disk almost full", model.EventCategorySystem},
	}

	for _, tt := range tests {
		r := slog.Record{Message: tt.message}
		if got := h.extractCategory(r); got != tt.want {
			t.Errorf("extractCategory(%q) = %q, want %q", tt.message, got, tt.want)
		}
	}
}

func TestEscapeJSON(t *testing.T) {
	if got := escapeJSON(`a"b\c` + "\n"); got != `a\"b\\c\n` {
		t.Errorf("escapeJSON = %q", got)
	}
}
