// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models and types used throughout the application.
package model

import (
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Project statuses
const (
	ProjectStatusDraft     = "draft"
	ProjectStatusPublished = "published"
)

// ValidProjectStatuses contains all valid project statuses.
var ValidProjectStatuses = []string{ProjectStatusDraft, ProjectStatusPublished}

// Image fit modes for project imagery.
const (
	ImageFitCover   = "cover"
	ImageFitContain = "contain"
)

// MinProjectYear is the earliest year accepted for a project.
const MinProjectYear = 1990

// yearRegex matches a single year or a year range (YYYY or YYYY-YYYY).
var yearRegex = regexp.MustCompile(`^(\d{4})(-(\d{4}))?$`)

// FeatureCard is a titled content block attached to a project, used for
// structured case-study breakdowns.
type FeatureCard struct {
	Title   string `json:"title"`
	Emoji   string `json:"emoji,omitempty"`
	Content string `json:"content"`
}

// Project represents a portfolio project.
type Project struct {
	ID              int64          `json:"id"`
	Slug            string         `json:"slug"`
	Title           string         `json:"title"`
	Headline        string         `json:"headline"`
	Summary         string         `json:"summary"`
	Body            []string       `json:"body"`
	FeatureCards    []FeatureCard  `json:"feature_cards,omitempty"`
	Year            sql.NullString `json:"-"`
	CoverImageURL   string         `json:"cover_image_url"`
	LandingImageURL sql.NullString `json:"-"`
	DetailImageURL  sql.NullString `json:"-"`
	LandingImageFit sql.NullString `json:"-"`
	DetailImageFit  sql.NullString `json:"-"`
	LiveURL         sql.NullString `json:"-"`
	RepoURL         sql.NullString `json:"-"`
	CaseStudyURL    sql.NullString `json:"-"`
	Tags            []string       `json:"tags"`
	AccentColor     string         `json:"accent_color"`
	BgTint          sql.NullString `json:"-"`
	Status          string         `json:"status"`
	Order           int64          `json:"order"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// IsPublished returns true if the project is published.
func (p *Project) IsPublished() bool {
	return p.Status == ProjectStatusPublished
}

// IsValidProjectStatus checks if a status string is a valid project status.
func IsValidProjectStatus(status string) bool {
	return status == ProjectStatusDraft || status == ProjectStatusPublished
}

// NormalizeImageFit returns "contain" when requested, the fallback otherwise.
func NormalizeImageFit(value, fallback string) string {
	if value == ImageFitContain {
		return ImageFitContain
	}
	return fallback
}

// ValidateProjectYear validates a project year string ("YYYY" or "YYYY-YYYY").
// Each year must fall in [MinProjectYear, currentYear+1] and a range end may
// not precede its start.
func ValidateProjectYear(value string, now time.Time) error {
	m := yearRegex.FindStringSubmatch(value)
	if m == nil {
		return fmt.Errorf("year must be YYYY or YYYY-YYYY")
	}

	maxYear := now.UTC().Year() + 1
	start, _ := strconv.Atoi(m[1])
	if start < MinProjectYear || start > maxYear {
		return fmt.Errorf("year must be between %d and %d", MinProjectYear, maxYear)
	}

	if m[3] != "" {
		end, _ := strconv.Atoi(m[3])
		if end < MinProjectYear || end > maxYear {
			return fmt.Errorf("year must be between %d and %d", MinProjectYear, maxYear)
		}
		if end < start {
			return fmt.Errorf("year range end must not precede its start")
		}
	}

	return nil
}

// NormalizeFeatureCards trims card fields and drops cards missing a title or
// content. Returns nil when nothing survives.
func NormalizeFeatureCards(cards []FeatureCard) []FeatureCard {
	if len(cards) == 0 {
		return nil
	}

	normalized := make([]FeatureCard, 0, len(cards))
	for _, card := range cards {
		card.Title = strings.TrimSpace(card.Title)
		card.Emoji = strings.TrimSpace(card.Emoji)
		card.Content = strings.TrimSpace(card.Content)
		if card.Title == "" || card.Content == "" {
			continue
		}
		normalized = append(normalized, card)
	}

	if len(normalized) == 0 {
		return nil
	}
	return normalized
}
