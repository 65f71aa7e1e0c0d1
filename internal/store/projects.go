// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/olegiv/folio-go/internal/model"
)

const projectColumns = `id, slug, title, headline, summary, body, feature_cards, year,
	cover_image_url, landing_image_url, detail_image_url, landing_image_fit, detail_image_fit,
	live_url, repo_url, case_study_url, tags, accent_color, bg_tint, status, display_order,
	created_at, updated_at`

func scanProject(row interface{ Scan(...any) error }) (model.Project, error) {
	var p model.Project
	var body, tags string
	var cards sql.NullString

	err := row.Scan(
		&p.ID, &p.Slug, &p.Title, &p.Headline, &p.Summary, &body, &cards, &p.Year,
		&p.CoverImageURL, &p.LandingImageURL, &p.DetailImageURL, &p.LandingImageFit, &p.DetailImageFit,
		&p.LiveURL, &p.RepoURL, &p.CaseStudyURL, &tags, &p.AccentColor, &p.BgTint, &p.Status, &p.Order,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return model.Project{}, err
	}

	p.Body = decodeStrings(body)
	p.Tags = decodeStrings(tags)
	p.FeatureCards = decodeFeatureCards(cards)
	return p, nil
}

func (q *Queries) queryProjects(ctx context.Context, query string, args ...any) ([]model.Project, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// CreateProjectParams holds parameters for CreateProject.
type CreateProjectParams struct {
	Slug            string
	Title           string
	Headline        string
	Summary         string
	Body            []string
	FeatureCards    []model.FeatureCard
	Year            sql.NullString
	CoverImageURL   string
	LandingImageURL sql.NullString
	DetailImageURL  sql.NullString
	LandingImageFit sql.NullString
	DetailImageFit  sql.NullString
	LiveURL         sql.NullString
	RepoURL         sql.NullString
	CaseStudyURL    sql.NullString
	Tags            []string
	AccentColor     string
	BgTint          sql.NullString
	Status          string
	Order           int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CreateProject inserts a new project and returns it.
func (q *Queries) CreateProject(ctx context.Context, arg CreateProjectParams) (model.Project, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO projects (
			slug, title, headline, summary, body, feature_cards, year,
			cover_image_url, landing_image_url, detail_image_url, landing_image_fit, detail_image_fit,
			live_url, repo_url, case_study_url, tags, accent_color, bg_tint, status, display_order,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.Slug, arg.Title, arg.Headline, arg.Summary, encodeStrings(arg.Body),
		encodeFeatureCards(arg.FeatureCards), arg.Year,
		arg.CoverImageURL, arg.LandingImageURL, arg.DetailImageURL, arg.LandingImageFit, arg.DetailImageFit,
		arg.LiveURL, arg.RepoURL, arg.CaseStudyURL, encodeStrings(arg.Tags),
		arg.AccentColor, arg.BgTint, arg.Status, arg.Order, arg.CreatedAt, arg.UpdatedAt,
	)
	if err != nil {
		return model.Project{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.Project{}, err
	}
	return q.GetProject(ctx, id)
}

// GetProject fetches a project by ID.
func (q *Queries) GetProject(ctx context.Context, id int64) (model.Project, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	return scanProject(row)
}

// GetProjectBySlug fetches a project by its slug.
func (q *Queries) GetProjectBySlug(ctx context.Context, slug string) (model.Project, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE slug = ?`, slug)
	return scanProject(row)
}

// CountProjectsBySlug counts projects with the given slug (0 or 1).
func (q *Queries) CountProjectsBySlug(ctx context.Context, slug string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects WHERE slug = ?`, slug).Scan(&count)
	return count, err
}

// CountProjects counts all projects.
func (q *Queries) CountProjects(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&count)
	return count, err
}

// CountPublishedProjects counts published projects.
func (q *Queries) CountPublishedProjects(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM projects WHERE status = ?`, model.ProjectStatusPublished).Scan(&count)
	return count, err
}

// ListProjects lists all projects in display order.
func (q *Queries) ListProjects(ctx context.Context) ([]model.Project, error) {
	return q.queryProjects(ctx,
		`SELECT `+projectColumns+` FROM projects ORDER BY display_order ASC, id ASC`)
}

// ListPublishedProjects lists published projects in display order.
func (q *Queries) ListPublishedProjects(ctx context.Context) ([]model.Project, error) {
	return q.queryProjects(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE status = ? ORDER BY display_order ASC, id ASC`,
		model.ProjectStatusPublished)
}

// MaxProjectOrder returns the highest display order among projects, 0 when empty.
func (q *Queries) MaxProjectOrder(ctx context.Context) (int64, error) {
	var order sql.NullInt64
	err := q.db.QueryRowContext(ctx, `SELECT MAX(display_order) FROM projects`).Scan(&order)
	if err != nil {
		return 0, err
	}
	return order.Int64, nil
}

// UpdateProjectParams holds the full row state for UpdateProject.
type UpdateProjectParams struct {
	ID              int64
	Slug            string
	Title           string
	Headline        string
	Summary         string
	Body            []string
	FeatureCards    []model.FeatureCard
	Year            sql.NullString
	CoverImageURL   string
	LandingImageURL sql.NullString
	DetailImageURL  sql.NullString
	LandingImageFit sql.NullString
	DetailImageFit  sql.NullString
	LiveURL         sql.NullString
	RepoURL         sql.NullString
	CaseStudyURL    sql.NullString
	Tags            []string
	AccentColor     string
	BgTint          sql.NullString
	Status          string
	Order           int64
	UpdatedAt       time.Time
}

// UpdateProject overwrites a project row with the given state.
// Callers apply partial patches in memory first.
func (q *Queries) UpdateProject(ctx context.Context, arg UpdateProjectParams) (model.Project, error) {
	_, err := q.db.ExecContext(ctx, `
		UPDATE projects SET
			slug = ?, title = ?, headline = ?, summary = ?, body = ?, feature_cards = ?, year = ?,
			cover_image_url = ?, landing_image_url = ?, detail_image_url = ?,
			landing_image_fit = ?, detail_image_fit = ?,
			live_url = ?, repo_url = ?, case_study_url = ?, tags = ?, accent_color = ?, bg_tint = ?,
			status = ?, display_order = ?, updated_at = ?
		WHERE id = ?`,
		arg.Slug, arg.Title, arg.Headline, arg.Summary, encodeStrings(arg.Body),
		encodeFeatureCards(arg.FeatureCards), arg.Year,
		arg.CoverImageURL, arg.LandingImageURL, arg.DetailImageURL,
		arg.LandingImageFit, arg.DetailImageFit,
		arg.LiveURL, arg.RepoURL, arg.CaseStudyURL, encodeStrings(arg.Tags),
		arg.AccentColor, arg.BgTint, arg.Status, arg.Order, arg.UpdatedAt, arg.ID,
	)
	if err != nil {
		return model.Project{}, err
	}
	return q.GetProject(ctx, arg.ID)
}

// UpdateProjectOrderParams holds parameters for UpdateProjectOrder.
type UpdateProjectOrderParams struct {
	ID        int64
	Order     int64
	UpdatedAt time.Time
}

// UpdateProjectOrder patches a single project's display order.
func (q *Queries) UpdateProjectOrder(ctx context.Context, arg UpdateProjectOrderParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE projects SET display_order = ?, updated_at = ? WHERE id = ?`,
		arg.Order, arg.UpdatedAt, arg.ID)
	return err
}

// DeleteProject deletes a project. Succeeds even when the id does not exist.
func (q *Queries) DeleteProject(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	return err
}
