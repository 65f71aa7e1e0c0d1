// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/store"
)

// SubmitMessageRequest represents a public contact submission.
type SubmitMessageRequest struct {
	SenderName  string `json:"sender_name"`
	SenderEmail string `json:"sender_email"`
	Content     string `json:"content"`
}

// SubmitMessage handles POST /api/v1/messages (public).
func (h *Handler) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SubmitMessageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.SenderName = h.sanitizer.Sanitize(strings.TrimSpace(req.SenderName))
	req.SenderEmail = strings.TrimSpace(req.SenderEmail)
	req.Content = h.sanitizer.Sanitize(strings.TrimSpace(req.Content))

	fieldErrors := make(map[string]string)
	if req.SenderName == "" {
		fieldErrors["sender_name"] = "Name is required"
	}
	if req.SenderEmail == "" || !strings.Contains(req.SenderEmail, "@") {
		fieldErrors["sender_email"] = "A valid email is required"
	}
	if req.Content == "" {
		fieldErrors["content"] = "Message is required"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	message, err := h.queries.CreateMessage(ctx, store.CreateMessageParams{
		SenderName:  req.SenderName,
		SenderEmail: req.SenderEmail,
		Content:     req.Content,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		WriteInternalError(w, "Failed to submit message")
		return
	}

	WriteCreated(w, message)
}

// AdminListMessages handles GET /api/v1/admin/messages. An optional "status"
// query parameter narrows the listing.
func (h *Handler) AdminListMessages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		messages []model.Message
		err      error
	)
	if status := r.URL.Query().Get("status"); status != "" {
		if !model.IsValidMessageStatus(status) {
			WriteBadRequest(w, "Invalid message status", nil)
			return
		}
		messages, err = h.queries.ListMessagesByStatus(ctx, status)
	} else {
		messages, err = h.queries.ListMessages(ctx)
	}
	if err != nil {
		WriteInternalError(w, "Failed to list messages")
		return
	}

	WriteSuccess(w, messages, &Meta{Total: int64(len(messages))})
}

// UpdateMessageStatus handles PUT /api/v1/admin/messages/{id}/status.
func (h *Handler) UpdateMessageStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	message, ok := requireEntityByID(w, r, "message", func(id int64) (model.Message, error) {
		return h.queries.GetMessage(ctx, id)
	})
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if !model.IsValidMessageStatus(req.Status) {
		WriteValidationError(w, map[string]string{"status": "Status must be new, read, or archived"})
		return
	}

	updated, err := h.queries.UpdateMessageStatus(ctx, store.UpdateMessageStatusParams{
		ID:     message.ID,
		Status: req.Status,
	})
	if err != nil {
		WriteInternalError(w, "Failed to update message status")
		return
	}

	WriteSuccess(w, updated, nil)
}

// DeleteMessage handles DELETE /api/v1/admin/messages/{id}.
func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid message ID", nil)
		return
	}

	if err := h.queries.DeleteMessage(r.Context(), id); err != nil {
		WriteInternalError(w, "Failed to delete message")
		return
	}

	WriteSuccess(w, successResponse{Success: true}, nil)
}
