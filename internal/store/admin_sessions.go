// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/olegiv/folio-go/internal/model"
)

const adminSessionColumns = `id, token_hash, owner_email, expires_at, revoked, created_at`

func scanAdminSession(row interface{ Scan(...any) error }) (model.AdminSession, error) {
	var s model.AdminSession
	err := row.Scan(&s.ID, &s.TokenHash, &s.OwnerEmail, &s.ExpiresAt, &s.Revoked, &s.CreatedAt)
	return s, err
}

// CreateAdminSessionParams holds parameters for CreateAdminSession.
type CreateAdminSessionParams struct {
	TokenHash  string
	OwnerEmail string
	ExpiresAt  time.Time
	CreatedAt  time.Time
}

// CreateAdminSession inserts a session row and returns it.
func (q *Queries) CreateAdminSession(ctx context.Context, arg CreateAdminSessionParams) (model.AdminSession, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO admin_sessions (token_hash, owner_email, expires_at, revoked, created_at)
		VALUES (?, ?, ?, 0, ?)`,
		arg.TokenHash, arg.OwnerEmail, arg.ExpiresAt, arg.CreatedAt)
	if err != nil {
		return model.AdminSession{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.AdminSession{}, err
	}
	row := q.db.QueryRowContext(ctx,
		`SELECT `+adminSessionColumns+` FROM admin_sessions WHERE id = ?`, id)
	return scanAdminSession(row)
}

// GetAdminSessionByTokenHash looks up a session by hashed token.
func (q *Queries) GetAdminSessionByTokenHash(ctx context.Context, tokenHash string) (model.AdminSession, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+adminSessionColumns+` FROM admin_sessions WHERE token_hash = ?`, tokenHash)
	return scanAdminSession(row)
}

// ListAdminSessionsByOwner lists all sessions for an owner, newest first.
func (q *Queries) ListAdminSessionsByOwner(ctx context.Context, ownerEmail string) ([]model.AdminSession, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+adminSessionColumns+` FROM admin_sessions WHERE owner_email = ?
		 ORDER BY created_at DESC, id DESC`, ownerEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.AdminSession
	for rows.Next() {
		s, err := scanAdminSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// RevokeAdminSession marks a single session revoked.
func (q *Queries) RevokeAdminSession(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `UPDATE admin_sessions SET revoked = 1 WHERE id = ?`, id)
	return err
}

// RevokeAdminSessionsByOwner revokes every active session owned by an owner.
// Returns the number of sessions revoked.
func (q *Queries) RevokeAdminSessionsByOwner(ctx context.Context, ownerEmail string) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`UPDATE admin_sessions SET revoked = 1 WHERE owner_email = ? AND revoked = 0`, ownerEmail)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteExpiredAdminSessions removes sessions whose expiry is in the past.
func (q *Queries) DeleteExpiredAdminSessions(ctx context.Context, now time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE expires_at <= ?`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
