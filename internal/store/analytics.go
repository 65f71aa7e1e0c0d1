// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/olegiv/folio-go/internal/model"
)

const analyticsColumns = `id, event_type, path, project_slug, session_id, meta, created_at`

func scanAnalyticsEvent(row interface{ Scan(...any) error }) (model.AnalyticsEvent, error) {
	var e model.AnalyticsEvent
	var meta sql.NullString
	err := row.Scan(&e.ID, &e.EventType, &e.Path, &e.ProjectSlug, &e.SessionID,
		&meta, &e.CreatedAt)
	if err != nil {
		return model.AnalyticsEvent{}, err
	}
	e.Meta = meta.String
	return e, nil
}

// CreateAnalyticsEventParams holds parameters for CreateAnalyticsEvent.
type CreateAnalyticsEventParams struct {
	EventType   string
	Path        string
	ProjectSlug sql.NullString
	SessionID   string
	Meta        string
	CreatedAt   time.Time
}

// CreateAnalyticsEvent records one analytics event.
func (q *Queries) CreateAnalyticsEvent(ctx context.Context, arg CreateAnalyticsEventParams) (int64, error) {
	meta := sql.NullString{String: arg.Meta, Valid: arg.Meta != ""}
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO analytics_events (event_type, path, project_slug, session_id, meta, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		arg.EventType, arg.Path, arg.ProjectSlug, arg.SessionID, meta, arg.CreatedAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListAnalyticsEventsSince returns events created at or after the cutoff,
// oldest first. The aggregator folds these in memory.
func (q *Queries) ListAnalyticsEventsSince(ctx context.Context, since time.Time) ([]model.AnalyticsEvent, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+analyticsColumns+` FROM analytics_events WHERE created_at >= ?
		 ORDER BY created_at ASC, id ASC`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.AnalyticsEvent
	for rows.Next() {
		e, err := scanAnalyticsEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// CountAnalyticsEvents counts all recorded events.
func (q *Queries) CountAnalyticsEvents(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM analytics_events`).Scan(&count)
	return count, err
}

// DeleteAnalyticsEventsBefore removes events older than the cutoff and
// returns how many rows were deleted.
func (q *Queries) DeleteAnalyticsEventsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`DELETE FROM analytics_events WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
