// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/olegiv/folio-go/internal/cache"
	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/store"
)

// TestimonialAPIResponse represents a testimonial in API responses.
type TestimonialAPIResponse struct {
	ID          int64     `json:"id"`
	PersonName  string    `json:"person_name"`
	PersonRole  string    `json:"person_role"`
	Company     string    `json:"company"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	Quote       string    `json:"quote"`
	IsPublished bool      `json:"is_published"`
	Order       int64     `json:"order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toTestimonialResponse(t model.Testimonial) TestimonialAPIResponse {
	return TestimonialAPIResponse{
		ID:          t.ID,
		PersonName:  t.PersonName,
		PersonRole:  t.PersonRole,
		Company:     t.Company,
		AvatarURL:   nullableString(t.AvatarURL),
		Quote:       t.Quote,
		IsPublished: t.IsPublished,
		Order:       t.Order,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTestimonialResponses(testimonials []model.Testimonial) []TestimonialAPIResponse {
	out := make([]TestimonialAPIResponse, 0, len(testimonials))
	for _, t := range testimonials {
		out = append(out, toTestimonialResponse(t))
	}
	return out
}

func (h *Handler) invalidateTestimonials(ctx context.Context) {
	if h.cache != nil {
		h.cache.InvalidateTestimonials(ctx)
	}
}

// ListPublishedTestimonials handles GET /api/v1/testimonials (public).
func (h *Handler) ListPublishedTestimonials(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	load := func() (*[]TestimonialAPIResponse, error) {
		testimonials, err := h.queries.ListPublishedTestimonials(ctx)
		if err != nil {
			return nil, err
		}
		resp := toTestimonialResponses(testimonials)
		return &resp, nil
	}

	var (
		resp *[]TestimonialAPIResponse
		err  error
	)
	if h.testimonialsCache != nil {
		resp, err = h.testimonialsCache.GetOrSet(ctx, cache.KeyTestimonials, load)
	} else {
		resp, err = load()
	}
	if err != nil {
		WriteInternalError(w, "Failed to list testimonials")
		return
	}

	WriteSuccess(w, *resp, &Meta{Total: int64(len(*resp))})
}

// AdminListTestimonials handles GET /api/v1/admin/testimonials.
func (h *Handler) AdminListTestimonials(w http.ResponseWriter, r *http.Request) {
	testimonials, err := h.queries.ListTestimonials(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list testimonials")
		return
	}
	WriteSuccess(w, toTestimonialResponses(testimonials), &Meta{Total: int64(len(testimonials))})
}

// CreateTestimonialRequest represents the request body for creating a testimonial.
type CreateTestimonialRequest struct {
	PersonName  string  `json:"person_name"`
	PersonRole  string  `json:"person_role"`
	Company     string  `json:"company"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
	Quote       string  `json:"quote"`
	IsPublished bool    `json:"is_published"`
	Order       *int64  `json:"order,omitempty"`
}

// CreateTestimonial handles POST /api/v1/admin/testimonials.
func (h *Handler) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateTestimonialRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.PersonName = strings.TrimSpace(req.PersonName)
	req.PersonRole = strings.TrimSpace(req.PersonRole)
	req.Company = strings.TrimSpace(req.Company)
	req.Quote = strings.TrimSpace(req.Quote)

	fieldErrors := make(map[string]string)
	if req.PersonName == "" {
		fieldErrors["person_name"] = "Name is required"
	}
	if req.Quote == "" {
		fieldErrors["quote"] = "Quote is required"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	order := int64(0)
	if req.Order != nil {
		order = *req.Order
	} else {
		maxOrder, err := h.queries.MaxTestimonialOrder(ctx)
		if err != nil {
			WriteInternalError(w, "Failed to assign testimonial order")
			return
		}
		order = maxOrder + 1
	}

	now := time.Now()
	testimonial, err := h.queries.CreateTestimonial(ctx, store.CreateTestimonialParams{
		PersonName:  req.PersonName,
		PersonRole:  req.PersonRole,
		Company:     req.Company,
		AvatarURL:   optionalImage(req.AvatarURL),
		Quote:       req.Quote,
		IsPublished: req.IsPublished,
		Order:       order,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		WriteInternalError(w, "Failed to create testimonial")
		return
	}

	h.invalidateTestimonials(ctx)
	WriteCreated(w, toTestimonialResponse(testimonial))
}

// UpdateTestimonialRequest represents the request body for updating a
// testimonial. Only fields present in the JSON body are patched.
type UpdateTestimonialRequest struct {
	PersonName  *string `json:"person_name,omitempty"`
	PersonRole  *string `json:"person_role,omitempty"`
	Company     *string `json:"company,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
	Quote       *string `json:"quote,omitempty"`
	IsPublished *bool   `json:"is_published,omitempty"`
	Order       *int64  `json:"order,omitempty"`
}

// UpdateTestimonial handles PUT /api/v1/admin/testimonials/{id}.
func (h *Handler) UpdateTestimonial(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	testimonial, ok := requireEntityByID(w, r, "testimonial", func(id int64) (model.Testimonial, error) {
		return h.queries.GetTestimonial(ctx, id)
	})
	if !ok {
		return
	}

	var req UpdateTestimonialRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.PersonName != nil {
		testimonial.PersonName = strings.TrimSpace(*req.PersonName)
	}
	if req.PersonRole != nil {
		testimonial.PersonRole = strings.TrimSpace(*req.PersonRole)
	}
	if req.Company != nil {
		testimonial.Company = strings.TrimSpace(*req.Company)
	}
	if req.AvatarURL != nil {
		testimonial.AvatarURL = optionalImage(req.AvatarURL)
	}
	if req.Quote != nil {
		testimonial.Quote = strings.TrimSpace(*req.Quote)
	}
	if req.IsPublished != nil {
		testimonial.IsPublished = *req.IsPublished
	}
	if req.Order != nil {
		testimonial.Order = *req.Order
	}

	updated, err := h.queries.UpdateTestimonial(ctx, store.UpdateTestimonialParams{
		ID:          testimonial.ID,
		PersonName:  testimonial.PersonName,
		PersonRole:  testimonial.PersonRole,
		Company:     testimonial.Company,
		AvatarURL:   testimonial.AvatarURL,
		Quote:       testimonial.Quote,
		IsPublished: testimonial.IsPublished,
		Order:       testimonial.Order,
		UpdatedAt:   time.Now(),
	})
	if err != nil {
		WriteInternalError(w, "Failed to update testimonial")
		return
	}

	h.invalidateTestimonials(ctx)
	WriteSuccess(w, toTestimonialResponse(updated), nil)
}

// ReorderTestimonials handles POST /api/v1/admin/testimonials/reorder.
func (h *Handler) ReorderTestimonials(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Items []reorderItem `json:"items"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	now := time.Now()
	for _, item := range req.Items {
		if err := h.queries.UpdateTestimonialOrder(ctx, store.UpdateTestimonialOrderParams{
			ID:        item.ID,
			Order:     item.Order,
			UpdatedAt: now,
		}); err != nil {
			WriteInternalError(w, "Failed to reorder testimonials")
			return
		}
	}

	h.invalidateTestimonials(ctx)
	WriteSuccess(w, successResponse{Success: true}, nil)
}

// DeleteTestimonial handles DELETE /api/v1/admin/testimonials/{id}.
func (h *Handler) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid testimonial ID", nil)
		return
	}

	if err := h.queries.DeleteTestimonial(ctx, id); err != nil {
		WriteInternalError(w, "Failed to delete testimonial")
		return
	}

	h.invalidateTestimonials(ctx)
	WriteSuccess(w, successResponse{Success: true}, nil)
}
