// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Message statuses
const (
	MessageStatusNew      = "new"
	MessageStatusRead     = "read"
	MessageStatusArchived = "archived"
)

// ValidMessageStatuses contains all valid contact message statuses.
var ValidMessageStatuses = []string{MessageStatusNew, MessageStatusRead, MessageStatusArchived}

// Message represents an inbound contact submission. Immutable except status.
type Message struct {
	ID          int64     `json:"id"`
	SenderName  string    `json:"sender_name"`
	SenderEmail string    `json:"sender_email"`
	Content     string    `json:"content"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsValidMessageStatus checks if a status string is a valid message status.
func IsValidMessageStatus(status string) bool {
	for _, s := range ValidMessageStatuses {
		if s == status {
			return true
		}
	}
	return false
}
