// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/folio-go/internal/model"
)

// SeedResult reports what SeedDemoContent inserted.
type SeedResult struct {
	InsertedProjects     int64 `json:"inserted_projects"`
	InsertedTestimonials int64 `json:"inserted_testimonials"`
	InsertedSettings     bool  `json:"inserted_settings"`
	InsertedWallEntries  int64 `json:"inserted_wall_entries"`
}

func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

var seedProjects = []CreateProjectParams{
	{
		Slug:     "portal-velocity",
		Title:    "Portal Velocity",
		Headline: "Market-ready in 60 hours to drive adoption",
		Summary:  "A high-speed product sprint that aligned UX, frontend delivery, and launch messaging.",
		Body: []string{
			"Built for a distributed product team, this sprint solved broken communication loops and reduced missed updates for event participants.",
			"I owned structure, UI system direction, and implementation quality from the first frame to production-ready handoff.",
			"The result was a reusable foundation that accelerated internal iteration and de-risked future mobile roadmap work.",
		},
		FeatureCards: []model.FeatureCard{
			{Title: "Summary", Emoji: "✨", Content: "Built for a distributed product team, this sprint solved broken communication loops and reduced missed updates for event participants."},
			{Title: "Execution", Emoji: "🛠️", Content: "I owned structure, UI system direction, and implementation quality from the first frame to production-ready handoff."},
			{Title: "Outcome", Emoji: "📈", Content: "The result was a reusable foundation that accelerated internal iteration and de-risked future mobile roadmap work."},
		},
		Year:            nullStr("2026"),
		CoverImageURL:   "https://images.unsplash.com/photo-1558655146-9f40138edfeb?auto=format&fit=crop&w=1400&q=80",
		LandingImageURL: nullStr("https://images.unsplash.com/photo-1558655146-9f40138edfeb?auto=format&fit=crop&w=1400&q=80"),
		DetailImageURL:  nullStr("https://images.unsplash.com/photo-1558655146-9f40138edfeb?auto=format&fit=crop&w=1400&q=80"),
		LandingImageFit: nullStr(model.ImageFitCover),
		DetailImageFit:  nullStr(model.ImageFitCover),
		LiveURL:         nullStr("https://example.com/portal-velocity"),
		RepoURL:         nullStr("https://github.com/example/portal-velocity"),
		Tags:            []string{"Figma", "React", "Tailwind"},
		AccentColor:     "#0ea5e9",
		BgTint:          nullStr("#eef8ff"),
		Status:          model.ProjectStatusPublished,
		Order:           1,
	},
	{
		Slug:     "sekei-growth-page",
		Title:    "Sekei Growth Page",
		Headline: "Generating 3k views and +$8,000 in a month",
		Summary:  "A conversion-focused landing page with high clarity and strong trust signals.",
		Body: []string{
			"The challenge was to answer a recurring user doubt quickly and clearly: is learning to code really worth it for designers?",
			"I designed and shipped a focused funnel balancing narrative hierarchy, visual credibility, and fast implementation cycles.",
			"In the first month, the page became a core growth surface and contributed meaningful new revenue.",
		},
		FeatureCards: []model.FeatureCard{
			{Title: "Summary", Emoji: "✨", Content: "The challenge was to answer a recurring user doubt quickly and clearly: is learning to code really worth it for designers?"},
			{Title: "Funnel design", Emoji: "🧭", Content: "I designed and shipped a focused funnel balancing narrative hierarchy, visual credibility, and fast implementation cycles."},
			{Title: "Impact", Emoji: "📈", Content: "In the first month, the page became a core growth surface and contributed meaningful new revenue."},
		},
		Year:            nullStr("2025"),
		CoverImageURL:   "https://images.unsplash.com/photo-1518770660439-4636190af475?auto=format&fit=crop&w=1400&q=80",
		LandingImageURL: nullStr("https://images.unsplash.com/photo-1518770660439-4636190af475?auto=format&fit=crop&w=1400&q=80"),
		DetailImageURL:  nullStr("https://images.unsplash.com/photo-1518770660439-4636190af475?auto=format&fit=crop&w=1400&q=80"),
		LandingImageFit: nullStr(model.ImageFitCover),
		DetailImageFit:  nullStr(model.ImageFitCover),
		LiveURL:         nullStr("https://example.com/sekei-growth-page"),
		RepoURL:         nullStr("https://github.com/example/sekei-growth-page"),
		Tags:            []string{"Framer", "Tailwind", "A/B Testing"},
		AccentColor:     "#2563eb",
		BgTint:          nullStr("#eff4ff"),
		Status:          model.ProjectStatusPublished,
		Order:           2,
	},
	{
		Slug:     "ops-signal-dashboard",
		Title:    "Ops Signal Dashboard",
		Headline: "Realtime visibility for product and support teams",
		Summary:  "A lightweight command dashboard that reduced time-to-answer for operational decisions.",
		Body: []string{
			"Teams lacked one shared place for live service indicators and user-facing incidents.",
			"I built a focused dashboard with action-oriented summaries, alert grouping, and predictable interaction patterns.",
			"Support and product leads gained faster context switching, better prioritization, and cleaner handoff flow.",
		},
		FeatureCards: []model.FeatureCard{
			{Title: "Summary", Emoji: "✨", Content: "Teams lacked one shared place for live service indicators and user-facing incidents."},
			{Title: "System design", Emoji: "⚙️", Content: "I built a focused dashboard with action-oriented summaries, alert grouping, and predictable interaction patterns."},
			{Title: "Impact", Emoji: "📊", Content: "Support and product leads gained faster context switching, better prioritization, and cleaner handoff flow."},
		},
		Year:            nullStr("2024"),
		CoverImageURL:   "https://images.unsplash.com/photo-1461749280684-dccba630e2f6?auto=format&fit=crop&w=1400&q=80",
		LandingImageURL: nullStr("https://images.unsplash.com/photo-1461749280684-dccba630e2f6?auto=format&fit=crop&w=1400&q=80"),
		DetailImageURL:  nullStr("https://images.unsplash.com/photo-1461749280684-dccba630e2f6?auto=format&fit=crop&w=1400&q=80"),
		LandingImageFit: nullStr(model.ImageFitCover),
		DetailImageFit:  nullStr(model.ImageFitCover),
		LiveURL:         nullStr("https://example.com/ops-signal-dashboard"),
		RepoURL:         nullStr("https://github.com/example/ops-signal-dashboard"),
		Tags:            []string{"TanStack", "TypeScript"},
		AccentColor:     "#0891b2",
		BgTint:          nullStr("#ecfeff"),
		Status:          model.ProjectStatusPublished,
		Order:           3,
	},
}

var seedTestimonials = []CreateTestimonialParams{
	{
		PersonName:  "Corbin Crutchley",
		PersonRole:  "Executive Director",
		Company:     "Playful Programming",
		AvatarURL:   nullStr("https://i.pravatar.cc/80?img=12"),
		Quote:       "Kuba combines strong technical execution with exceptional attention to detail. Collaboration stayed smooth from kickoff to launch.",
		IsPublished: true,
		Order:       1,
	},
	{
		PersonName:  "Anatole Ayadi",
		PersonRole:  "Product Designer",
		Company:     "Studio Atelier",
		AvatarURL:   nullStr("https://i.pravatar.cc/80?img=22"),
		Quote:       "He turns complex product requirements into clear, elegant interfaces. The pace was fast and quality stayed high throughout.",
		IsPublished: true,
		Order:       2,
	},
	{
		PersonName:  "Philippe Pelzer",
		PersonRole:  "Founder & Developer",
		Company:     "VidMount",
		AvatarURL:   nullStr("https://i.pravatar.cc/80?img=35"),
		Quote:       "Working together felt effortless. Kuba brings structure, ownership, and practical product thinking in every stage.",
		IsPublished: true,
		Order:       3,
	},
}

var seedWallEntries = []struct {
	DisplayName string
	Message     string
}{
	{"Ari", "Clean work and super polished UI details."},
	{"Marta", "Following this build journey from day one."},
	{"Leo", "Great taste in product decisions."},
}

// SeedDemoContent populates demo rows. Each table is only touched when it is
// empty, so re-running is safe and never duplicates or overwrites content.
func (q *Queries) SeedDemoContent(ctx context.Context, now time.Time) (SeedResult, error) {
	var result SeedResult

	count, err := q.CountProjects(ctx)
	if err != nil {
		return result, err
	}
	if count == 0 {
		for _, p := range seedProjects {
			p.CreatedAt = now
			p.UpdatedAt = now
			if _, err := q.CreateProject(ctx, p); err != nil {
				return result, err
			}
			result.InsertedProjects++
		}
	}

	count, err = q.CountTestimonials(ctx)
	if err != nil {
		return result, err
	}
	if count == 0 {
		for _, t := range seedTestimonials {
			t.CreatedAt = now
			t.UpdatedAt = now
			if _, err := q.CreateTestimonial(ctx, t); err != nil {
				return result, err
			}
			result.InsertedTestimonials++
		}
	}

	if _, err := q.GetSiteSettings(ctx, model.SiteSettingsKey); err == sql.ErrNoRows {
		defaults := model.DefaultSiteSettings()
		_, err := q.UpsertSiteSettings(ctx, UpsertSiteSettingsParams{
			Key:                   defaults.Key,
			AvailabilityText:      defaults.AvailabilityText,
			AvailabilityTimezone:  defaults.AvailabilityTimezone,
			FocusNote:             defaults.FocusNote,
			FocusEmoji:            defaults.FocusEmoji,
			CareerStartYear:       defaults.CareerStartYear,
			WallEnabled:           defaults.WallEnabled,
			WallTickerDurationSec: defaults.WallTickerDurationSec,
			WallMaxVisibleEntries: defaults.WallMaxVisibleEntries,
			UpdatedAt:             now,
		})
		if err != nil {
			return result, err
		}
		result.InsertedSettings = true
	} else if err != nil {
		return result, err
	}

	approvedCount, err := q.CountWallEntriesByStatus(ctx, model.WallStatusApproved)
	if err != nil {
		return result, err
	}
	pendingCount, err := q.CountWallEntriesByStatus(ctx, model.WallStatusPending)
	if err != nil {
		return result, err
	}
	archivedCount, err := q.CountWallEntriesByStatus(ctx, model.WallStatusArchived)
	if err != nil {
		return result, err
	}
	if approvedCount+pendingCount+archivedCount == 0 {
		for _, e := range seedWallEntries {
			_, err := q.CreateWallEntry(ctx, CreateWallEntryParams{
				DisplayName: e.DisplayName,
				Message:     nullStr(e.Message),
				Status:      model.WallStatusApproved,
				SessionID:   uuid.NewString(),
				CreatedAt:   now,
				UpdatedAt:   now,
			})
			if err != nil {
				return result, err
			}
			result.InsertedWallEntries++
		}
	}

	return result, nil
}
