// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/olegiv/folio-go/internal/model"
)

const wallColumns = `id, display_name, message, status, session_id, created_at, updated_at`

func scanWallEntry(row interface{ Scan(...any) error }) (model.WallEntry, error) {
	var e model.WallEntry
	err := row.Scan(&e.ID, &e.DisplayName, &e.Message, &e.Status, &e.SessionID,
		&e.CreatedAt, &e.UpdatedAt)
	return e, err
}

// CreateWallEntryParams holds parameters for CreateWallEntry.
type CreateWallEntryParams struct {
	DisplayName string
	Message     sql.NullString
	Status      string
	SessionID   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateWallEntry inserts a guestbook signature and returns it.
func (q *Queries) CreateWallEntry(ctx context.Context, arg CreateWallEntryParams) (model.WallEntry, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO wall_entries (display_name, message, status, session_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		arg.DisplayName, arg.Message, arg.Status, arg.SessionID, arg.CreatedAt, arg.UpdatedAt)
	if err != nil {
		return model.WallEntry{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.WallEntry{}, err
	}
	return q.GetWallEntry(ctx, id)
}

// GetWallEntry fetches a wall entry by ID.
func (q *Queries) GetWallEntry(ctx context.Context, id int64) (model.WallEntry, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+wallColumns+` FROM wall_entries WHERE id = ?`, id)
	return scanWallEntry(row)
}

// GetLatestWallEntryBySession returns the most recent entry for a session,
// for the submit cooldown check. Returns sql.ErrNoRows when the session has
// never signed.
func (q *Queries) GetLatestWallEntryBySession(ctx context.Context, sessionID string) (model.WallEntry, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+wallColumns+` FROM wall_entries WHERE session_id = ?
		 ORDER BY created_at DESC, id DESC LIMIT 1`, sessionID)
	return scanWallEntry(row)
}

func (q *Queries) queryWallEntries(ctx context.Context, query string, args ...any) ([]model.WallEntry, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.WallEntry
	for rows.Next() {
		e, err := scanWallEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ListApprovedWallEntries lists approved entries, newest first, capped at limit.
func (q *Queries) ListApprovedWallEntries(ctx context.Context, limit int64) ([]model.WallEntry, error) {
	return q.queryWallEntries(ctx,
		`SELECT `+wallColumns+` FROM wall_entries WHERE status = ?
		 ORDER BY created_at DESC, id DESC LIMIT ?`,
		model.WallStatusApproved, limit)
}

// ListWallEntries lists all wall entries, newest first.
func (q *Queries) ListWallEntries(ctx context.Context) ([]model.WallEntry, error) {
	return q.queryWallEntries(ctx,
		`SELECT `+wallColumns+` FROM wall_entries ORDER BY created_at DESC, id DESC`)
}

// ListWallEntriesByStatus lists wall entries with the given status, newest first.
func (q *Queries) ListWallEntriesByStatus(ctx context.Context, status string) ([]model.WallEntry, error) {
	return q.queryWallEntries(ctx,
		`SELECT `+wallColumns+` FROM wall_entries WHERE status = ?
		 ORDER BY created_at DESC, id DESC`, status)
}

// CountWallEntriesByStatus counts wall entries with the given status.
func (q *Queries) CountWallEntriesByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM wall_entries WHERE status = ?`, status).Scan(&count)
	return count, err
}

// UpdateWallEntryStatusParams holds parameters for UpdateWallEntryStatus.
type UpdateWallEntryStatusParams struct {
	ID        int64
	Status    string
	UpdatedAt time.Time
}

// UpdateWallEntryStatus transitions a wall entry to a new status.
func (q *Queries) UpdateWallEntryStatus(ctx context.Context, arg UpdateWallEntryStatusParams) (model.WallEntry, error) {
	_, err := q.db.ExecContext(ctx,
		`UPDATE wall_entries SET status = ?, updated_at = ? WHERE id = ?`,
		arg.Status, arg.UpdatedAt, arg.ID)
	if err != nil {
		return model.WallEntry{}, err
	}
	return q.GetWallEntry(ctx, arg.ID)
}

// DeleteWallEntry deletes a wall entry.
func (q *Queries) DeleteWallEntry(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM wall_entries WHERE id = ?`, id)
	return err
}
