// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/olegiv/folio-go/internal/model"
)

// testDB creates a temporary test database with migrations applied.
func testDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "folio-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := NewDB(dbPath)
	if err != nil {
		_ = os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}

	if err := Migrate(db); err != nil {
		_ = db.Close()
		_ = os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	return db, func() {
		_ = db.Close()
		_ = os.Remove(dbPath)
	}
}

// testQueries creates a Queries over a temporary database.
func testQueries(t *testing.T) (*Queries, func()) {
	t.Helper()
	db, cleanup := testDB(t)
	return New(db), cleanup
}

// createTestProject inserts a minimal project for tests.
func createTestProject(t *testing.T, q *Queries, slug, status string, order int64) model.Project {
	t.Helper()
	now := time.Now()
	p, err := q.CreateProject(context.Background(), CreateProjectParams{
		Slug:          slug,
		Title:         "Project " + slug,
		Headline:      "Headline",
		Summary:       "Summary",
		Body:          []string{"First paragraph."},
		CoverImageURL: "/pictures/" + slug + ".jpeg",
		Tags:          []string{"go"},
		AccentColor:   "#38bdf8",
		Status:        status,
		Order:         order,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		t.Fatalf("CreateProject(%s): %v", slug, err)
	}
	return p
}
