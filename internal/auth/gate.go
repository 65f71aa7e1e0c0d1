// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package auth implements the admin session gate: issuing, validating, and
// revoking bearer-token admin sessions. Session issuance is protected by a
// server-held shared secret rather than an admin token.
package auth

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/store"
)

// ErrUnauthorized is returned for a bad shared secret, a disallowed owner,
// or a missing/revoked/expired session.
var ErrUnauthorized = errors.New("Unauthorized")

// Gate issues and revokes admin sessions.
type Gate struct {
	queries      *store.Queries
	issueSecret  string
	allowedOwner []string // lowercased; empty means any owner
	sessionTTL   time.Duration
}

// NewGate creates a session gate.
func NewGate(queries *store.Queries, issueSecret string, allowedOwners []string, sessionTTL time.Duration) *Gate {
	return &Gate{
		queries:      queries,
		issueSecret:  issueSecret,
		allowedOwner: allowedOwners,
		sessionTTL:   sessionTTL,
	}
}

// checkSecret compares the supplied secret in constant time.
func (g *Gate) checkSecret(secret string) error {
	if g.issueSecret == "" {
		return fmt.Errorf("session issuance disabled: %w", ErrUnauthorized)
	}
	if subtle.ConstantTimeCompare([]byte(secret), []byte(g.issueSecret)) != 1 {
		return ErrUnauthorized
	}
	return nil
}

// checkOwner enforces the owner allow-list when one is configured.
func (g *Gate) checkOwner(ownerEmail string) error {
	if len(g.allowedOwner) == 0 {
		return nil
	}
	lower := strings.ToLower(ownerEmail)
	for _, allowed := range g.allowedOwner {
		if allowed == lower {
			return nil
		}
	}
	return ErrUnauthorized
}

// IssueResult carries the stored session and, when the gate generated the
// token itself, the raw token shown to the caller exactly once.
type IssueResult struct {
	Session  model.AdminSession
	RawToken string // empty when the caller supplied its own token
}

// Issue validates the shared secret, revokes all prior active sessions for
// the owner, and stores a new hashed session. When rawToken is empty a
// random token is generated and returned once.
func (g *Gate) Issue(ctx context.Context, ownerEmail, rawToken, secret string) (IssueResult, error) {
	if err := g.checkSecret(secret); err != nil {
		return IssueResult{}, err
	}

	ownerEmail = strings.TrimSpace(ownerEmail)
	if ownerEmail == "" {
		return IssueResult{}, fmt.Errorf("ownerEmail is required")
	}
	if err := g.checkOwner(ownerEmail); err != nil {
		return IssueResult{}, err
	}

	generated := ""
	if rawToken == "" {
		token, err := model.GenerateAdminToken()
		if err != nil {
			return IssueResult{}, fmt.Errorf("generating admin token: %w", err)
		}
		rawToken = token
		generated = token
	}

	now := time.Now()

	// One active session per owner: revoke everything before inserting.
	if _, err := g.queries.RevokeAdminSessionsByOwner(ctx, ownerEmail); err != nil {
		return IssueResult{}, fmt.Errorf("revoking prior sessions: %w", err)
	}

	session, err := g.queries.CreateAdminSession(ctx, store.CreateAdminSessionParams{
		TokenHash:  model.HashAdminToken(rawToken),
		OwnerEmail: ownerEmail,
		ExpiresAt:  now.Add(g.sessionTTL),
		CreatedAt:  now,
	})
	if err != nil {
		return IssueResult{}, fmt.Errorf("creating session: %w", err)
	}

	return IssueResult{Session: session, RawToken: generated}, nil
}

// RevokeByOwner validates the shared secret and bulk-revokes every active
// session for the owner. Returns the number of sessions revoked.
func (g *Gate) RevokeByOwner(ctx context.Context, ownerEmail, secret string) (int64, error) {
	if err := g.checkSecret(secret); err != nil {
		return 0, err
	}
	return g.queries.RevokeAdminSessionsByOwner(ctx, strings.TrimSpace(ownerEmail))
}

// RevokeToken revokes the session belonging to a raw token. Missing sessions
// are reported as ErrUnauthorized.
func (g *Gate) RevokeToken(ctx context.Context, rawToken string) error {
	session, err := g.queries.GetAdminSessionByTokenHash(ctx, model.HashAdminToken(rawToken))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUnauthorized
		}
		return fmt.Errorf("looking up session: %w", err)
	}
	return g.queries.RevokeAdminSession(ctx, session.ID)
}

// PurgeExpired deletes sessions past their expiry. Called from the scheduler.
func (g *Gate) PurgeExpired(ctx context.Context) (int64, error) {
	return g.queries.DeleteExpiredAdminSessions(ctx, time.Now())
}
