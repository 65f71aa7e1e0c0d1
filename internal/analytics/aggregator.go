// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package analytics ingests typed behavioral events and computes the windowed
// rollups behind the admin dashboard.
package analytics

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/olegiv/folio-go/internal/geoip"
	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/store"
)

// TopProjectsLimit is the number of projects returned by TopProjects.
const TopProjectsLimit = 8

// MaxTimeseriesDays bounds the timeseries/top-projects window.
const MaxTimeseriesDays = 90

// WindowStats holds the rollup for one trailing window.
type WindowStats struct {
	PageViews           int64   `json:"pageViews"`
	UniqueSessions      int64   `json:"uniqueSessions"`
	ProjectInteractions int64   `json:"projectInteractions"`
	ContactSubmits      int64   `json:"contactSubmits"`
	CvDownloads         int64   `json:"cvDownloads"`
	ContactConversion   float64 `json:"contactConversionRate"`
}

// Overview holds both dashboard windows.
type Overview struct {
	Last7Days  WindowStats `json:"last7Days"`
	Last30Days WindowStats `json:"last30Days"`
}

// DayStats is one UTC calendar-day bucket of the timeseries.
type DayStats struct {
	Day                 string `json:"day"` // YYYY-MM-DD
	PageViews           int64  `json:"pageViews"`
	ProjectInteractions int64  `json:"projectInteractions"`
	ContactSubmits      int64  `json:"contactSubmits"`
}

// ProjectStats is one ranked row of the top-projects report.
type ProjectStats struct {
	ProjectSlug       string `json:"projectSlug"`
	Opens             int64  `json:"opens"`
	LinkClicks        int64  `json:"linkClicks"`
	TotalInteractions int64  `json:"totalInteractions"`
}

// Aggregator folds analytics events into dashboard rollups.
type Aggregator struct {
	queries *store.Queries
	geo     *geoip.Lookup // nil disables country enrichment
}

// NewAggregator creates an aggregator over the given store. geo may be nil.
func NewAggregator(queries *store.Queries, geo *geoip.Lookup) *Aggregator {
	return &Aggregator{queries: queries, geo: geo}
}

// Overview computes the 7-day and 30-day rollups ending now.
func (a *Aggregator) Overview(ctx context.Context, now time.Time) (Overview, error) {
	events, err := a.queries.ListAnalyticsEventsSince(ctx, now.Add(-30*24*time.Hour))
	if err != nil {
		return Overview{}, err
	}

	cutoff7 := now.Add(-7 * 24 * time.Hour)
	var events7 []model.AnalyticsEvent
	for _, e := range events {
		if !e.CreatedAt.Before(cutoff7) {
			events7 = append(events7, e)
		}
	}

	return Overview{
		Last7Days:  computeWindow(events7),
		Last30Days: computeWindow(events),
	}, nil
}

func computeWindow(events []model.AnalyticsEvent) WindowStats {
	var s WindowStats
	sessions := make(map[string]struct{})

	for _, e := range events {
		switch e.EventType {
		case model.EventTypePageView:
			s.PageViews++
			sessions[e.SessionID] = struct{}{}
		case model.EventTypeProjectOpen, model.EventTypeProjectLinkClick:
			s.ProjectInteractions++
		case model.EventTypeContactSubmit:
			s.ContactSubmits++
		case model.EventTypeCTAClick:
			if meta := e.MetaMap(); meta != nil {
				if cta, ok := meta["cta"].(string); ok && cta == "download_cv" {
					s.CvDownloads++
				}
			}
		}
	}

	s.UniqueSessions = int64(len(sessions))
	if s.PageViews > 0 {
		s.ContactConversion = round4(float64(s.ContactSubmits) / float64(s.PageViews))
	}
	return s
}

// round4 rounds to 4 decimal places.
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// ClampDays bounds a requested window to [1, MaxTimeseriesDays].
func ClampDays(days int) int {
	if days < 1 {
		return 1
	}
	if days > MaxTimeseriesDays {
		return MaxTimeseriesDays
	}
	return days
}

// Timeseries buckets the last N days of events into UTC calendar days,
// returned sorted ascending by day key.
func (a *Aggregator) Timeseries(ctx context.Context, now time.Time, days int) ([]DayStats, error) {
	days = ClampDays(days)
	events, err := a.queries.ListAnalyticsEventsSince(ctx, now.Add(-time.Duration(days)*24*time.Hour))
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]*DayStats)
	for _, e := range events {
		day := e.CreatedAt.UTC().Format("2006-01-02")
		b, ok := buckets[day]
		if !ok {
			b = &DayStats{Day: day}
			buckets[day] = b
		}

		switch e.EventType {
		case model.EventTypePageView:
			b.PageViews++
		case model.EventTypeProjectOpen, model.EventTypeProjectLinkClick:
			b.ProjectInteractions++
		case model.EventTypeContactSubmit:
			b.ContactSubmits++
		}
	}

	out := make([]DayStats, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

// TopProjects ranks projects by opens plus link clicks over the last N days,
// returning at most TopProjectsLimit rows.
func (a *Aggregator) TopProjects(ctx context.Context, now time.Time, days int) ([]ProjectStats, error) {
	days = ClampDays(days)
	events, err := a.queries.ListAnalyticsEventsSince(ctx, now.Add(-time.Duration(days)*24*time.Hour))
	if err != nil {
		return nil, err
	}

	tally := make(map[string]*ProjectStats)
	for _, e := range events {
		if !e.ProjectSlug.Valid || e.ProjectSlug.String == "" {
			continue
		}
		slug := e.ProjectSlug.String

		switch e.EventType {
		case model.EventTypeProjectOpen, model.EventTypeProjectLinkClick:
		default:
			continue
		}

		p, ok := tally[slug]
		if !ok {
			p = &ProjectStats{ProjectSlug: slug}
			tally[slug] = p
		}
		if e.EventType == model.EventTypeProjectOpen {
			p.Opens++
		} else {
			p.LinkClicks++
		}
		p.TotalInteractions = p.Opens + p.LinkClicks
	}

	out := make([]ProjectStats, 0, len(tally))
	for _, p := range tally {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalInteractions != out[j].TotalInteractions {
			return out[i].TotalInteractions > out[j].TotalInteractions
		}
		return out[i].ProjectSlug < out[j].ProjectSlug
	})
	if len(out) > TopProjectsLimit {
		out = out[:TopProjectsLimit]
	}
	return out, nil
}
