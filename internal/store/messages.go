// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/olegiv/folio-go/internal/model"
)

const messageColumns = `id, sender_name, sender_email, content, status, created_at`

func scanMessage(row interface{ Scan(...any) error }) (model.Message, error) {
	var m model.Message
	err := row.Scan(&m.ID, &m.SenderName, &m.SenderEmail, &m.Content, &m.Status, &m.CreatedAt)
	return m, err
}

// CreateMessageParams holds parameters for CreateMessage.
type CreateMessageParams struct {
	SenderName  string
	SenderEmail string
	Content     string
	CreatedAt   time.Time
}

// CreateMessage inserts a contact message with status "new" and returns it.
func (q *Queries) CreateMessage(ctx context.Context, arg CreateMessageParams) (model.Message, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO messages (sender_name, sender_email, content, status, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		arg.SenderName, arg.SenderEmail, arg.Content, model.MessageStatusNew, arg.CreatedAt)
	if err != nil {
		return model.Message{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Message{}, err
	}
	return q.GetMessage(ctx, id)
}

// GetMessage fetches a message by ID.
func (q *Queries) GetMessage(ctx context.Context, id int64) (model.Message, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+messageColumns+` FROM messages WHERE id = ?`, id)
	return scanMessage(row)
}

func (q *Queries) queryMessages(ctx context.Context, query string, args ...any) ([]model.Message, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ListMessages lists all messages, newest first.
func (q *Queries) ListMessages(ctx context.Context) ([]model.Message, error) {
	return q.queryMessages(ctx,
		`SELECT `+messageColumns+` FROM messages ORDER BY created_at DESC, id DESC`)
}

// ListMessagesByStatus lists messages with the given status, newest first.
func (q *Queries) ListMessagesByStatus(ctx context.Context, status string) ([]model.Message, error) {
	return q.queryMessages(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE status = ? ORDER BY created_at DESC, id DESC`,
		status)
}

// CountMessagesByStatus counts messages with the given status.
func (q *Queries) CountMessagesByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM messages WHERE status = ?`, status).Scan(&count)
	return count, err
}

// UpdateMessageStatusParams holds parameters for UpdateMessageStatus.
type UpdateMessageStatusParams struct {
	ID     int64
	Status string
}

// UpdateMessageStatus transitions a message to a new status.
func (q *Queries) UpdateMessageStatus(ctx context.Context, arg UpdateMessageStatusParams) (model.Message, error) {
	_, err := q.db.ExecContext(ctx,
		`UPDATE messages SET status = ? WHERE id = ?`, arg.Status, arg.ID)
	if err != nil {
		return model.Message{}, err
	}
	return q.GetMessage(ctx, arg.ID)
}

// DeleteMessage deletes a message.
func (q *Queries) DeleteMessage(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id)
	return err
}
