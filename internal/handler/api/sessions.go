// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strings"
	"time"
)

// IssueSessionRequest carries the shared-secret-gated issue call. When
// "token" is empty the server generates one and returns it exactly once.
type IssueSessionRequest struct {
	OwnerEmail string `json:"owner_email"`
	Token      string `json:"token,omitempty"`
	Secret     string `json:"secret"`
}

// IssueSessionResponse returns the issued session. The raw token appears
// only when the server generated it.
type IssueSessionResponse struct {
	OwnerEmail string    `json:"owner_email"`
	Token      string    `json:"token,omitempty"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// IssueSession handles POST /api/v1/sessions. Gated by the server-held
// issue secret, not by an admin token.
func (h *Handler) IssueSession(w http.ResponseWriter, r *http.Request) {
	var req IssueSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.gate.Issue(r.Context(), req.OwnerEmail, req.Token, req.Secret)
	if err != nil {
		if !writeGateError(w, err) {
			WriteInternalError(w, "Failed to issue session")
		}
		return
	}

	WriteCreated(w, IssueSessionResponse{
		OwnerEmail: result.Session.OwnerEmail,
		Token:      result.RawToken,
		ExpiresAt:  result.Session.ExpiresAt,
	})
}

// RevokeOwnerSessionsRequest carries the shared-secret-gated bulk revoke.
type RevokeOwnerSessionsRequest struct {
	OwnerEmail string `json:"owner_email"`
	Secret     string `json:"secret"`
}

// RevokeOwnerSessions handles POST /api/v1/sessions/revoke-owner. Gated by
// the issue secret; revokes every active session for the owner.
func (h *Handler) RevokeOwnerSessions(w http.ResponseWriter, r *http.Request) {
	var req RevokeOwnerSessionsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	revoked, err := h.gate.RevokeByOwner(r.Context(), req.OwnerEmail, req.Secret)
	if err != nil {
		if !writeGateError(w, err) {
			WriteInternalError(w, "Failed to revoke sessions")
		}
		return
	}

	WriteSuccess(w, map[string]int64{"revoked": revoked}, nil)
}

// RevokeCurrentSession handles POST /api/v1/sessions/revoke. The bearer
// token revokes itself; no secret required.
func (h *Handler) RevokeCurrentSession(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		WriteUnauthorized(w, "Unauthorized")
		return
	}

	if err := h.gate.RevokeToken(r.Context(), token); err != nil {
		if !writeGateError(w, err) {
			WriteInternalError(w, "Failed to revoke session")
		}
		return
	}

	WriteSuccess(w, successResponse{Success: true}, nil)
}
