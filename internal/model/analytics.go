// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Analytics event types
const (
	EventTypePageView          = "page_view"
	EventTypeProjectOpen       = "project_open"
	EventTypeProjectLinkClick  = "project_link_click"
	EventTypeCTAClick          = "cta_click"
	EventTypeTestimonialSwitch = "testimonial_switch"
	EventTypeContactSubmit     = "contact_submit"
	EventTypeWallSubmit        = "wall_submit"
)

// ValidEventTypes contains all accepted analytics event types.
var ValidEventTypes = []string{
	EventTypePageView,
	EventTypeProjectOpen,
	EventTypeProjectLinkClick,
	EventTypeCTAClick,
	EventTypeTestimonialSwitch,
	EventTypeContactSubmit,
	EventTypeWallSubmit,
}

// IsValidEventType checks if a string is an accepted event type.
func IsValidEventType(t string) bool {
	for _, v := range ValidEventTypes {
		if v == t {
			return true
		}
	}
	return false
}

// AnalyticsEvent is an append-only behavioral event. Never mutated or deleted.
type AnalyticsEvent struct {
	ID          int64          `json:"id"`
	EventType   string         `json:"event_type"`
	Path        string         `json:"path"`
	ProjectSlug sql.NullString `json:"-"`
	SessionID   string         `json:"session_id"`
	Meta        string         `json:"-"` // JSON object stored as string
	CreatedAt   time.Time      `json:"created_at"`
}

// MetaMap parses the JSON meta string into a map. Values are strings,
// numbers, or booleans.
func (e *AnalyticsEvent) MetaMap() map[string]any {
	if e.Meta == "" || e.Meta == "{}" {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(e.Meta), &m); err != nil {
		return nil
	}
	return m
}

// MetaToJSON converts an event meta map to its storage string.
func MetaToJSON(meta map[string]any) string {
	if len(meta) == 0 {
		return ""
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return ""
	}
	return string(data)
}
