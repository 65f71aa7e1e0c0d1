// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/olegiv/folio-go/internal/model"
)

const nowPlayingColumns = `id, key, status, track, fetched_at, next_refresh_at, updated_at, error`

func scanNowPlaying(row interface{ Scan(...any) error }) (model.NowPlayingSnapshot, error) {
	var s model.NowPlayingSnapshot
	var track, errMsg sql.NullString
	err := row.Scan(&s.ID, &s.Key, &s.Status, &track, &s.FetchedAt,
		&s.NextRefreshAt, &s.UpdatedAt, &errMsg)
	if err != nil {
		return model.NowPlayingSnapshot{}, err
	}
	if track.Valid && track.String != "" {
		var t model.NowPlayingTrack
		if json.Unmarshal([]byte(track.String), &t) == nil {
			s.Track = &t
		}
	}
	s.Error = errMsg.String
	return s, nil
}

func encodeTrack(track *model.NowPlayingTrack) sql.NullString {
	if track == nil {
		return sql.NullString{}
	}
	data, _ := json.Marshal(track)
	return sql.NullString{String: string(data), Valid: true}
}

// GetNowPlayingSnapshot fetches the snapshot for a key. Returns sql.ErrNoRows
// before the first refresh attempt.
func (q *Queries) GetNowPlayingSnapshot(ctx context.Context, key string) (model.NowPlayingSnapshot, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+nowPlayingColumns+` FROM now_playing WHERE key = ?`, key)
	return scanNowPlaying(row)
}

// EnsureNowPlayingSnapshot creates the snapshot row for a key if it does not
// exist yet, starting in the unavailable state with an expired lease.
func (q *Queries) EnsureNowPlayingSnapshot(ctx context.Context, key string, now time.Time) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO now_playing (key, status, track, fetched_at, next_refresh_at, updated_at, error)
		VALUES (?, ?, NULL, ?, 0, ?, NULL)
		ON CONFLICT(key) DO NOTHING`,
		key, model.NowPlayingStatusUnavailable, now.UTC().Format(time.RFC3339), now)
	return err
}

// AcquireNowPlayingLease attempts to advance the refresh lease. It succeeds
// only when the stored next_refresh_at has passed, so concurrent refreshers
// collapse to a single upstream fetch per interval.
func (q *Queries) AcquireNowPlayingLease(ctx context.Context, key string, now, next int64) (bool, error) {
	res, err := q.db.ExecContext(ctx,
		`UPDATE now_playing SET next_refresh_at = ? WHERE key = ? AND next_refresh_at <= ?`,
		next, key, now)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// ForceNowPlayingLease advances the refresh lease unconditionally.
func (q *Queries) ForceNowPlayingLease(ctx context.Context, key string, next int64) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE now_playing SET next_refresh_at = ? WHERE key = ?`, next, key)
	return err
}

// SaveNowPlayingParams holds parameters for SaveNowPlayingSnapshot.
type SaveNowPlayingParams struct {
	Key       string
	Status    string
	Track     *model.NowPlayingTrack
	FetchedAt string
	UpdatedAt time.Time
}

// SaveNowPlayingSnapshot records a successful resolve, clearing any prior
// error. The lease timestamp is left wherever AcquireNowPlayingLease put it.
func (q *Queries) SaveNowPlayingSnapshot(ctx context.Context, arg SaveNowPlayingParams) error {
	_, err := q.db.ExecContext(ctx, `
		UPDATE now_playing SET status = ?, track = ?, fetched_at = ?, updated_at = ?, error = NULL
		WHERE key = ?`,
		arg.Status, encodeTrack(arg.Track), arg.FetchedAt, arg.UpdatedAt, arg.Key)
	return err
}

// MarkNowPlayingFailure records a failed resolve: the snapshot drops to
// unavailable with no track, keeping a truncated diagnostic for inspection.
func (q *Queries) MarkNowPlayingFailure(ctx context.Context, key, errMsg string, updatedAt time.Time) error {
	_, err := q.db.ExecContext(ctx, `
		UPDATE now_playing SET status = ?, track = NULL, fetched_at = ?, error = ?, updated_at = ?
		WHERE key = ?`,
		model.NowPlayingStatusUnavailable, updatedAt.UTC().Format(time.RFC3339),
		model.TruncateNowPlayingError(errMsg), updatedAt, key)
	return err
}
