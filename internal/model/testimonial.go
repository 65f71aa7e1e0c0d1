// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Testimonial represents a quote from a past collaborator.
type Testimonial struct {
	ID          int64          `json:"id"`
	PersonName  string         `json:"person_name"`
	PersonRole  string         `json:"person_role"`
	Company     string         `json:"company"`
	AvatarURL   sql.NullString `json:"-"`
	Quote       string         `json:"quote"`
	IsPublished bool           `json:"is_published"`
	Order       int64          `json:"order"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
