// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Wall entry statuses
const (
	WallStatusPending  = "pending"
	WallStatusApproved = "approved"
	WallStatusArchived = "archived"
)

// ValidWallStatuses contains all valid wall entry statuses.
var ValidWallStatuses = []string{WallStatusPending, WallStatusApproved, WallStatusArchived}

// Wall submission limits.
const (
	WallDisplayNameMinLen = 2
	WallDisplayNameMaxLen = 40
	WallMessageMaxLen     = 140
	WallSessionIDMinLen   = 8
	WallSessionIDMaxLen   = 200

	// WallSubmitCooldown is the minimum interval between two submissions
	// from the same session.
	WallSubmitCooldown = 60 * time.Second
)

// WallEntry represents a visitor signature on the guestbook wall.
type WallEntry struct {
	ID          int64          `json:"id"`
	DisplayName string         `json:"display_name"`
	Message     sql.NullString `json:"-"`
	Status      string         `json:"status"`
	SessionID   string         `json:"-"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// IsValidWallStatus checks if a status string is a valid wall entry status.
func IsValidWallStatus(status string) bool {
	for _, s := range ValidWallStatuses {
		if s == status {
			return true
		}
	}
	return false
}
