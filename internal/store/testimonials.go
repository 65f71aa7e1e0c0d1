// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/olegiv/folio-go/internal/model"
)

const testimonialColumns = `id, person_name, person_role, company, avatar_url, quote,
	is_published, display_order, created_at, updated_at`

func scanTestimonial(row interface{ Scan(...any) error }) (model.Testimonial, error) {
	var t model.Testimonial
	err := row.Scan(&t.ID, &t.PersonName, &t.PersonRole, &t.Company, &t.AvatarURL,
		&t.Quote, &t.IsPublished, &t.Order, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// CreateTestimonialParams holds parameters for CreateTestimonial.
type CreateTestimonialParams struct {
	PersonName  string
	PersonRole  string
	Company     string
	AvatarURL   sql.NullString
	Quote       string
	IsPublished bool
	Order       int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateTestimonial inserts a testimonial and returns it.
func (q *Queries) CreateTestimonial(ctx context.Context, arg CreateTestimonialParams) (model.Testimonial, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO testimonials (person_name, person_role, company, avatar_url, quote,
			is_published, display_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.PersonName, arg.PersonRole, arg.Company, arg.AvatarURL, arg.Quote,
		arg.IsPublished, arg.Order, arg.CreatedAt, arg.UpdatedAt)
	if err != nil {
		return model.Testimonial{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Testimonial{}, err
	}
	return q.GetTestimonial(ctx, id)
}

// GetTestimonial fetches a testimonial by ID.
func (q *Queries) GetTestimonial(ctx context.Context, id int64) (model.Testimonial, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+testimonialColumns+` FROM testimonials WHERE id = ?`, id)
	return scanTestimonial(row)
}

func (q *Queries) queryTestimonials(ctx context.Context, query string, args ...any) ([]model.Testimonial, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Testimonial
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListTestimonials lists all testimonials in display order.
func (q *Queries) ListTestimonials(ctx context.Context) ([]model.Testimonial, error) {
	return q.queryTestimonials(ctx,
		`SELECT `+testimonialColumns+` FROM testimonials ORDER BY display_order ASC, id ASC`)
}

// ListPublishedTestimonials lists published testimonials in display order.
func (q *Queries) ListPublishedTestimonials(ctx context.Context) ([]model.Testimonial, error) {
	return q.queryTestimonials(ctx,
		`SELECT `+testimonialColumns+` FROM testimonials WHERE is_published = 1
		 ORDER BY display_order ASC, id ASC`)
}

// CountTestimonials counts all testimonials.
func (q *Queries) CountTestimonials(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM testimonials`).Scan(&count)
	return count, err
}

// MaxTestimonialOrder returns the highest display order, 0 when empty.
func (q *Queries) MaxTestimonialOrder(ctx context.Context) (int64, error) {
	var order sql.NullInt64
	err := q.db.QueryRowContext(ctx, `SELECT MAX(display_order) FROM testimonials`).Scan(&order)
	if err != nil {
		return 0, err
	}
	return order.Int64, nil
}

// UpdateTestimonialParams holds the full row state for UpdateTestimonial.
type UpdateTestimonialParams struct {
	ID          int64
	PersonName  string
	PersonRole  string
	Company     string
	AvatarURL   sql.NullString
	Quote       string
	IsPublished bool
	Order       int64
	UpdatedAt   time.Time
}

// UpdateTestimonial overwrites a testimonial row with the given state.
// Callers apply partial patches in memory first.
func (q *Queries) UpdateTestimonial(ctx context.Context, arg UpdateTestimonialParams) (model.Testimonial, error) {
	_, err := q.db.ExecContext(ctx, `
		UPDATE testimonials SET person_name = ?, person_role = ?, company = ?, avatar_url = ?,
			quote = ?, is_published = ?, display_order = ?, updated_at = ?
		WHERE id = ?`,
		arg.PersonName, arg.PersonRole, arg.Company, arg.AvatarURL,
		arg.Quote, arg.IsPublished, arg.Order, arg.UpdatedAt, arg.ID)
	if err != nil {
		return model.Testimonial{}, err
	}
	return q.GetTestimonial(ctx, arg.ID)
}

// UpdateTestimonialOrderParams holds parameters for UpdateTestimonialOrder.
type UpdateTestimonialOrderParams struct {
	ID        int64
	Order     int64
	UpdatedAt time.Time
}

// UpdateTestimonialOrder patches a single testimonial's display order.
func (q *Queries) UpdateTestimonialOrder(ctx context.Context, arg UpdateTestimonialOrderParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE testimonials SET display_order = ?, updated_at = ? WHERE id = ?`,
		arg.Order, arg.UpdatedAt, arg.ID)
	return err
}

// DeleteTestimonial deletes a testimonial.
func (q *Queries) DeleteTestimonial(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM testimonials WHERE id = ?`, id)
	return err
}
