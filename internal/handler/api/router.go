// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Routes assembles the full API surface. adminAuth gates the /admin subtree;
// writeLimit rate-limits the anonymous write endpoints.
func (h *Handler) Routes(adminAuth, writeLimit Middleware) http.Handler {
	r := chi.NewRouter()

	// Bare widget mirror, outside the versioned envelope.
	r.Get("/api/spotify-now-playing", h.SpotifyNowPlaying)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", h.Status)

		// Public reads
		r.Get("/projects", h.ListPublishedProjects)
		r.Get("/projects/{slug}", h.GetPublishedProjectBySlug)
		r.Get("/testimonials", h.ListPublishedTestimonials)
		r.Get("/settings", h.GetPublicSettings)
		r.Get("/wall", h.ListApprovedWallEntries)
		r.Get("/now-playing", h.GetNowPlaying)

		// Public writes
		r.Group(func(r chi.Router) {
			r.Use(writeLimit)
			r.Post("/messages", h.SubmitMessage)
			r.Post("/wall", h.SubmitWallEntry)
			r.Post("/analytics/track", h.TrackEvent)
			r.Post("/now-playing/refresh", h.RefreshNowPlaying)
		})

		// Session lifecycle: gated by the issue secret (or the token
		// itself), deliberately outside the admin-token subtree.
		r.Group(func(r chi.Router) {
			r.Use(writeLimit)
			r.Post("/sessions", h.IssueSession)
			r.Post("/sessions/revoke-owner", h.RevokeOwnerSessions)
			r.Post("/sessions/revoke", h.RevokeCurrentSession)
		})

		// Admin surface
		r.Route("/admin", func(r chi.Router) {
			r.Use(adminAuth)

			r.Get("/auth-info", h.AuthInfo)

			r.Get("/projects", h.AdminListProjects)
			r.Post("/projects", h.CreateProject)
			r.Post("/projects/reorder", h.ReorderProjects)
			r.Put("/projects/{id}", h.UpdateProject)
			r.Delete("/projects/{id}", h.DeleteProject)

			r.Get("/testimonials", h.AdminListTestimonials)
			r.Post("/testimonials", h.CreateTestimonial)
			r.Post("/testimonials/reorder", h.ReorderTestimonials)
			r.Put("/testimonials/{id}", h.UpdateTestimonial)
			r.Delete("/testimonials/{id}", h.DeleteTestimonial)

			r.Get("/messages", h.AdminListMessages)
			r.Put("/messages/{id}/status", h.UpdateMessageStatus)
			r.Delete("/messages/{id}", h.DeleteMessage)

			r.Get("/wall", h.AdminListWallEntries)
			r.Put("/wall/{id}/status", h.UpdateWallEntryStatus)
			r.Delete("/wall/{id}", h.DeleteWallEntry)

			r.Get("/settings", h.AdminGetSettings)
			r.Put("/settings", h.UpdateSettings)

			r.Get("/analytics/overview", h.AdminAnalyticsOverview)
			r.Get("/analytics/timeseries", h.AdminAnalyticsTimeseries)
			r.Get("/analytics/top-projects", h.AdminAnalyticsTopProjects)

			r.Post("/seed", h.SeedDemoContent)
			r.Get("/events", h.AdminListEvents)
			r.Get("/cache/stats", h.CacheStats)
		})
	})

	return r
}
