// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/folio-go/internal/cache"
	"github.com/olegiv/folio-go/internal/imageref"
	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/store"
	"github.com/olegiv/folio-go/internal/util"
)

const slugExistsMessage = "Project slug already exists"

// ProjectAPIResponse represents a project in API responses. Landing and
// detail images fall back to the cover when not set independently.
type ProjectAPIResponse struct {
	ID              int64               `json:"id"`
	Slug            string              `json:"slug"`
	Title           string              `json:"title"`
	Headline        string              `json:"headline"`
	Summary         string              `json:"summary"`
	Body            []string            `json:"body"`
	FeatureCards    []model.FeatureCard `json:"feature_cards,omitempty"`
	Year            string              `json:"year,omitempty"`
	CoverImageURL   string              `json:"cover_image_url"`
	LandingImageURL string              `json:"landing_image_url"`
	DetailImageURL  string              `json:"detail_image_url"`
	LandingImageFit string              `json:"landing_image_fit"`
	DetailImageFit  string              `json:"detail_image_fit"`
	LiveURL         string              `json:"live_url,omitempty"`
	RepoURL         string              `json:"repo_url,omitempty"`
	CaseStudyURL    string              `json:"case_study_url,omitempty"`
	Tags            []string            `json:"tags"`
	AccentColor     string              `json:"accent_color"`
	BgTint          string              `json:"bg_tint,omitempty"`
	Status          string              `json:"status"`
	Order           int64               `json:"order"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

func toProjectResponse(p model.Project) ProjectAPIResponse {
	resp := ProjectAPIResponse{
		ID:              p.ID,
		Slug:            p.Slug,
		Title:           p.Title,
		Headline:        p.Headline,
		Summary:         p.Summary,
		Body:            p.Body,
		FeatureCards:    p.FeatureCards,
		Year:            nullableString(p.Year),
		CoverImageURL:   p.CoverImageURL,
		LandingImageURL: p.CoverImageURL,
		DetailImageURL:  p.CoverImageURL,
		LandingImageFit: model.NormalizeImageFit(nullableString(p.LandingImageFit), model.ImageFitCover),
		DetailImageFit:  model.NormalizeImageFit(nullableString(p.DetailImageFit), model.ImageFitCover),
		LiveURL:         nullableString(p.LiveURL),
		RepoURL:         nullableString(p.RepoURL),
		CaseStudyURL:    nullableString(p.CaseStudyURL),
		Tags:            p.Tags,
		AccentColor:     p.AccentColor,
		BgTint:          nullableString(p.BgTint),
		Status:          p.Status,
		Order:           p.Order,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if p.LandingImageURL.Valid && p.LandingImageURL.String != "" {
		resp.LandingImageURL = p.LandingImageURL.String
	}
	if p.DetailImageURL.Valid && p.DetailImageURL.String != "" {
		resp.DetailImageURL = p.DetailImageURL.String
	}
	return resp
}

func toProjectResponses(projects []model.Project) []ProjectAPIResponse {
	out := make([]ProjectAPIResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProjectResponse(p))
	}
	return out
}

func (h *Handler) invalidateProjects(ctx context.Context) {
	if h.cache != nil {
		h.cache.InvalidateProjects(ctx)
	}
}

// ListPublishedProjects handles GET /api/v1/projects (public).
func (h *Handler) ListPublishedProjects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	load := func() (*[]ProjectAPIResponse, error) {
		projects, err := h.queries.ListPublishedProjects(ctx)
		if err != nil {
			return nil, err
		}
		resp := toProjectResponses(projects)
		return &resp, nil
	}

	var (
		resp *[]ProjectAPIResponse
		err  error
	)
	if h.projectsCache != nil {
		resp, err = h.projectsCache.GetOrSet(ctx, cache.KeyProjects, load)
	} else {
		resp, err = load()
	}
	if err != nil {
		WriteInternalError(w, "Failed to list projects")
		return
	}

	WriteSuccess(w, *resp, &Meta{Total: int64(len(*resp))})
}

// GetPublishedProjectBySlug handles GET /api/v1/projects/{slug} (public).
// Drafts are indistinguishable from missing projects.
func (h *Handler) GetPublishedProjectBySlug(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	slug := chi.URLParam(r, "slug")
	project, err := h.queries.GetProjectBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Project not found")
		} else {
			WriteInternalError(w, "Failed to retrieve project")
		}
		return
	}
	if !project.IsPublished() {
		WriteNotFound(w, "Project not found")
		return
	}

	WriteSuccess(w, toProjectResponse(project), nil)
}

// AdminListProjects handles GET /api/v1/admin/projects.
func (h *Handler) AdminListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.queries.ListProjects(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list projects")
		return
	}
	WriteSuccess(w, toProjectResponses(projects), &Meta{Total: int64(len(projects))})
}

// CreateProjectRequest represents the request body for creating a project.
type CreateProjectRequest struct {
	Slug            string              `json:"slug"`
	Title           string              `json:"title"`
	Headline        string              `json:"headline"`
	Summary         string              `json:"summary"`
	Body            []string            `json:"body"`
	FeatureCards    []model.FeatureCard `json:"feature_cards,omitempty"`
	Year            *string             `json:"year,omitempty"`
	CoverImageURL   string              `json:"cover_image_url"`
	LandingImageURL *string             `json:"landing_image_url,omitempty"`
	DetailImageURL  *string             `json:"detail_image_url,omitempty"`
	LandingImageFit *string             `json:"landing_image_fit,omitempty"`
	DetailImageFit  *string             `json:"detail_image_fit,omitempty"`
	LiveURL         *string             `json:"live_url,omitempty"`
	RepoURL         *string             `json:"repo_url,omitempty"`
	CaseStudyURL    *string             `json:"case_study_url,omitempty"`
	Tags            []string            `json:"tags"`
	AccentColor     string              `json:"accent_color"`
	BgTint          *string             `json:"bg_tint,omitempty"`
	Status          string              `json:"status"`
	Order           *int64              `json:"order,omitempty"`
}

// optionalTrimmed trims a pointed-to string and collapses a blank result to
// an invalid NullString.
func optionalTrimmed(ptr *string) sql.NullString {
	if ptr == nil {
		return sql.NullString{}
	}
	return util.NullStringFromValue(strings.TrimSpace(*ptr))
}

// optionalImage normalizes a pointed-to image reference, collapsing blank to
// an invalid NullString.
func optionalImage(ptr *string) sql.NullString {
	if ptr == nil {
		return sql.NullString{}
	}
	return util.NullStringFromValue(imageref.Normalize(*ptr))
}

func optionalFit(ptr *string) sql.NullString {
	if ptr == nil {
		return sql.NullString{}
	}
	return util.NullStringFromValue(model.NormalizeImageFit(strings.TrimSpace(*ptr), ""))
}

func validateProjectFields(req *CreateProjectRequest, fieldErrors map[string]string, now time.Time) {
	if req.Slug == "" {
		fieldErrors["slug"] = "Slug is required"
	} else if !util.IsValidSlug(req.Slug) {
		fieldErrors["slug"] = "Slug may only contain lowercase letters, numbers, and hyphens"
	}
	if req.Title == "" {
		fieldErrors["title"] = "Title is required"
	}
	if req.Headline == "" {
		fieldErrors["headline"] = "Headline is required"
	}
	if req.Summary == "" {
		fieldErrors["summary"] = "Summary is required"
	}
	if req.AccentColor == "" {
		fieldErrors["accent_color"] = "Accent color is required"
	}
	if !model.IsValidProjectStatus(req.Status) {
		fieldErrors["status"] = "Status must be draft or published"
	}
	if req.Year != nil && strings.TrimSpace(*req.Year) != "" {
		if err := model.ValidateProjectYear(strings.TrimSpace(*req.Year), now); err != nil {
			fieldErrors["year"] = err.Error()
		}
	}
}

// CreateProject handles POST /api/v1/admin/projects.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Slug = strings.TrimSpace(req.Slug)
	req.Title = strings.TrimSpace(req.Title)
	req.Headline = strings.TrimSpace(req.Headline)
	req.Summary = strings.TrimSpace(req.Summary)
	req.AccentColor = strings.TrimSpace(req.AccentColor)

	now := time.Now()
	fieldErrors := make(map[string]string)
	validateProjectFields(&req, fieldErrors, now)

	cover, err := imageref.Require(req.CoverImageURL, "cover_image_url")
	if err != nil {
		fieldErrors["cover_image_url"] = err.Error()
	}

	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	if !checkSlugUnique(w, slugExistsMessage, func() (int64, error) {
		return h.queries.CountProjectsBySlug(ctx, req.Slug)
	}) {
		return
	}

	order := int64(0)
	if req.Order != nil {
		order = *req.Order
	} else {
		maxOrder, err := h.queries.MaxProjectOrder(ctx)
		if err != nil {
			WriteInternalError(w, "Failed to assign project order")
			return
		}
		order = maxOrder + 1
	}

	var year sql.NullString
	if req.Year != nil {
		year = util.NullStringFromValue(strings.TrimSpace(*req.Year))
	}

	project, err := h.queries.CreateProject(ctx, store.CreateProjectParams{
		Slug:            req.Slug,
		Title:           req.Title,
		Headline:        req.Headline,
		Summary:         req.Summary,
		Body:            req.Body,
		FeatureCards:    model.NormalizeFeatureCards(req.FeatureCards),
		Year:            year,
		CoverImageURL:   cover,
		LandingImageURL: optionalImage(req.LandingImageURL),
		DetailImageURL:  optionalImage(req.DetailImageURL),
		LandingImageFit: optionalFit(req.LandingImageFit),
		DetailImageFit:  optionalFit(req.DetailImageFit),
		LiveURL:         optionalTrimmed(req.LiveURL),
		RepoURL:         optionalTrimmed(req.RepoURL),
		CaseStudyURL:    optionalTrimmed(req.CaseStudyURL),
		Tags:            req.Tags,
		AccentColor:     req.AccentColor,
		BgTint:          optionalTrimmed(req.BgTint),
		Status:          req.Status,
		Order:           order,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		WriteInternalError(w, "Failed to create project")
		return
	}

	h.invalidateProjects(ctx)
	WriteCreated(w, toProjectResponse(project))
}

// UpdateProjectRequest represents the request body for updating a project.
// Only fields present in the JSON body are patched.
type UpdateProjectRequest struct {
	Slug            *string              `json:"slug,omitempty"`
	Title           *string              `json:"title,omitempty"`
	Headline        *string              `json:"headline,omitempty"`
	Summary         *string              `json:"summary,omitempty"`
	Body            *[]string            `json:"body,omitempty"`
	FeatureCards    *[]model.FeatureCard `json:"feature_cards,omitempty"`
	Year            *string              `json:"year,omitempty"`
	CoverImageURL   *string              `json:"cover_image_url,omitempty"`
	LandingImageURL *string              `json:"landing_image_url,omitempty"`
	DetailImageURL  *string              `json:"detail_image_url,omitempty"`
	LandingImageFit *string              `json:"landing_image_fit,omitempty"`
	DetailImageFit  *string              `json:"detail_image_fit,omitempty"`
	LiveURL         *string              `json:"live_url,omitempty"`
	RepoURL         *string              `json:"repo_url,omitempty"`
	CaseStudyURL    *string              `json:"case_study_url,omitempty"`
	Tags            *[]string            `json:"tags,omitempty"`
	AccentColor     *string              `json:"accent_color,omitempty"`
	BgTint          *string              `json:"bg_tint,omitempty"`
	Status          *string              `json:"status,omitempty"`
	Order           *int64               `json:"order,omitempty"`
}

// UpdateProject handles PUT /api/v1/admin/projects/{id}.
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	project, ok := requireEntityByID(w, r, "project", func(id int64) (model.Project, error) {
		return h.queries.GetProject(ctx, id)
	})
	if !ok {
		return
	}

	var req UpdateProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	now := time.Now()
	fieldErrors := make(map[string]string)

	if req.Slug != nil {
		slug := strings.TrimSpace(*req.Slug)
		if !util.IsValidSlug(slug) {
			fieldErrors["slug"] = "Slug may only contain lowercase letters, numbers, and hyphens"
		} else if slug != project.Slug {
			if !checkSlugUnique(w, slugExistsMessage, func() (int64, error) {
				return h.queries.CountProjectsBySlug(ctx, slug)
			}) {
				return
			}
			project.Slug = slug
		}
	}
	if req.Title != nil {
		project.Title = strings.TrimSpace(*req.Title)
	}
	if req.Headline != nil {
		project.Headline = strings.TrimSpace(*req.Headline)
	}
	if req.Summary != nil {
		project.Summary = strings.TrimSpace(*req.Summary)
	}
	if req.Body != nil {
		project.Body = *req.Body
	}
	if req.FeatureCards != nil {
		project.FeatureCards = model.NormalizeFeatureCards(*req.FeatureCards)
	}
	if req.Year != nil {
		year := strings.TrimSpace(*req.Year)
		if year != "" {
			if err := model.ValidateProjectYear(year, now); err != nil {
				fieldErrors["year"] = err.Error()
			}
		}
		project.Year = util.NullStringFromValue(year)
	}
	if req.CoverImageURL != nil {
		cover, err := imageref.Require(*req.CoverImageURL, "cover_image_url")
		if err != nil {
			fieldErrors["cover_image_url"] = err.Error()
		} else {
			project.CoverImageURL = cover
		}
	}
	// Explicit landing/detail image updates take precedence; a blank value
	// clears the override so the image tracks the cover again.
	if req.LandingImageURL != nil {
		project.LandingImageURL = optionalImage(req.LandingImageURL)
	}
	if req.DetailImageURL != nil {
		project.DetailImageURL = optionalImage(req.DetailImageURL)
	}
	if req.LandingImageFit != nil {
		project.LandingImageFit = optionalFit(req.LandingImageFit)
	}
	if req.DetailImageFit != nil {
		project.DetailImageFit = optionalFit(req.DetailImageFit)
	}
	if req.LiveURL != nil {
		project.LiveURL = optionalTrimmed(req.LiveURL)
	}
	if req.RepoURL != nil {
		project.RepoURL = optionalTrimmed(req.RepoURL)
	}
	if req.CaseStudyURL != nil {
		project.CaseStudyURL = optionalTrimmed(req.CaseStudyURL)
	}
	if req.Tags != nil {
		project.Tags = *req.Tags
	}
	if req.AccentColor != nil {
		project.AccentColor = strings.TrimSpace(*req.AccentColor)
	}
	if req.BgTint != nil {
		project.BgTint = optionalTrimmed(req.BgTint)
	}
	if req.Status != nil {
		if !model.IsValidProjectStatus(*req.Status) {
			fieldErrors["status"] = "Status must be draft or published"
		} else {
			project.Status = *req.Status
		}
	}
	if req.Order != nil {
		project.Order = *req.Order
	}

	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	updated, err := h.queries.UpdateProject(ctx, store.UpdateProjectParams{
		ID:              project.ID,
		Slug:            project.Slug,
		Title:           project.Title,
		Headline:        project.Headline,
		Summary:         project.Summary,
		Body:            project.Body,
		FeatureCards:    project.FeatureCards,
		Year:            project.Year,
		CoverImageURL:   project.CoverImageURL,
		LandingImageURL: project.LandingImageURL,
		DetailImageURL:  project.DetailImageURL,
		LandingImageFit: project.LandingImageFit,
		DetailImageFit:  project.DetailImageFit,
		LiveURL:         project.LiveURL,
		RepoURL:         project.RepoURL,
		CaseStudyURL:    project.CaseStudyURL,
		Tags:            project.Tags,
		AccentColor:     project.AccentColor,
		BgTint:          project.BgTint,
		Status:          project.Status,
		Order:           project.Order,
		UpdatedAt:       now,
	})
	if err != nil {
		WriteInternalError(w, "Failed to update project")
		return
	}

	h.invalidateProjects(ctx)
	WriteSuccess(w, toProjectResponse(updated), nil)
}

// ReorderProjects handles POST /api/v1/admin/projects/reorder.
func (h *Handler) ReorderProjects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Items []reorderItem `json:"items"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	now := time.Now()
	for _, item := range req.Items {
		if err := h.queries.UpdateProjectOrder(ctx, store.UpdateProjectOrderParams{
			ID:        item.ID,
			Order:     item.Order,
			UpdatedAt: now,
		}); err != nil {
			WriteInternalError(w, "Failed to reorder projects")
			return
		}
	}

	h.invalidateProjects(ctx)
	WriteSuccess(w, successResponse{Success: true}, nil)
}

// DeleteProject handles DELETE /api/v1/admin/projects/{id}.
// Deleting a missing id still succeeds.
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid project ID", nil)
		return
	}

	if err := h.queries.DeleteProject(ctx, id); err != nil {
		WriteInternalError(w, "Failed to delete project")
		return
	}

	h.invalidateProjects(ctx)
	WriteSuccess(w, successResponse{Success: true}, nil)
}
