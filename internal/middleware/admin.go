// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/store"
)

// AdminAuth creates middleware that validates admin bearer tokens against
// stored sessions. In open mode every request passes with a synthetic,
// non-persisted session.
func AdminAuth(db *sql.DB, openMode bool) func(http.Handler) http.Handler {
	queries := store.New(db)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if openMode {
				session := model.AdminSession{
					OwnerEmail: "open-mode",
					ExpiresAt:  time.Now().Add(time.Hour),
				}
				ctx := context.WithValue(r.Context(), ContextKeyAdminSession, session)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Missing Authorization header", nil)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Invalid Authorization header format. Use: Bearer <token>", nil)
				return
			}

			rawToken := parts[1]
			if rawToken == "" {
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Admin token is empty", nil)
				return
			}

			session, err := queries.GetAdminSessionByTokenHash(r.Context(), model.HashAdminToken(rawToken))
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized", nil)
				} else {
					slog.Error("failed to validate admin token", "error", err)
					WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to validate admin token", nil)
				}
				return
			}

			if !session.IsActive(time.Now()) {
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized", nil)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyAdminSession, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdminSession retrieves the admin session from the request context.
// Returns nil if no session is in context.
func GetAdminSession(r *http.Request) *model.AdminSession {
	session, ok := r.Context().Value(ContextKeyAdminSession).(model.AdminSession)
	if !ok {
		return nil
	}
	return &session
}
