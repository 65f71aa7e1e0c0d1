// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"time"
)

// AdminSession represents a stored admin bearer-token session.
// The raw token is never persisted, only its hash.
type AdminSession struct {
	ID         int64     `json:"id"`
	TokenHash  string    `json:"-"`
	OwnerEmail string    `json:"owner_email"`
	ExpiresAt  time.Time `json:"expires_at"`
	Revoked    bool      `json:"revoked"`
	CreatedAt  time.Time `json:"created_at"`
}

// IsExpired checks if the session has passed its expiry.
func (s *AdminSession) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// IsActive checks if the session is neither revoked nor expired.
func (s *AdminSession) IsActive(now time.Time) bool {
	return !s.Revoked && !s.IsExpired(now)
}

// HashAdminToken creates a SHA-256 hash of an admin token for storage.
func HashAdminToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// GenerateAdminToken generates a new random admin token.
// Returns the raw token, which is shown to the caller exactly once.
func GenerateAdminToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}
