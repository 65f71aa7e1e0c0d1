// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/olegiv/folio-go/internal/model"
)

const eventColumns = `id, level, category, message, user_email, metadata, created_at`

func scanEvent(row interface{ Scan(...any) error }) (model.Event, error) {
	var e model.Event
	err := row.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.UserEmail, &e.Metadata, &e.CreatedAt)
	return e, err
}

// CreateEventParams holds parameters for CreateEvent.
type CreateEventParams struct {
	Level     string
	Category  string
	Message   string
	UserEmail string
	Metadata  string
	CreatedAt time.Time
}

// CreateEvent records a system event log entry.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) error {
	userEmail := any(nil)
	if arg.UserEmail != "" {
		userEmail = arg.UserEmail
	}
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO events (level, category, message, user_email, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		arg.Level, arg.Category, arg.Message, userEmail, arg.Metadata, arg.CreatedAt)
	return err
}

// ListRecentEvents returns up to limit events, newest first.
func (q *Queries) ListRecentEvents(ctx context.Context, limit int64) ([]model.Event, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ListEventsByLevel returns up to limit events with the given level, newest first.
func (q *Queries) ListEventsByLevel(ctx context.Context, level string, limit int64) ([]model.Event, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE level = ?
		 ORDER BY created_at DESC, id DESC LIMIT ?`, level, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// DeleteEventsBefore prunes event log entries older than the cutoff.
func (q *Queries) DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM events WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
