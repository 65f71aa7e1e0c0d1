// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the REST handlers for the portfolio backend.
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/microcosm-cc/bluemonday"

	"github.com/olegiv/folio-go/internal/analytics"
	"github.com/olegiv/folio-go/internal/auth"
	"github.com/olegiv/folio-go/internal/cache"
	"github.com/olegiv/folio-go/internal/spotify"
	"github.com/olegiv/folio-go/internal/store"
	"github.com/olegiv/folio-go/internal/version"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	db        *sql.DB
	queries   *store.Queries
	cache     *cache.Manager
	analytics *analytics.Aggregator
	gate      *auth.Gate
	sanitizer *bluemonday.Policy

	// nowPlaying and nowPlayingCache are nil when Spotify credentials are
	// not configured; the now-playing endpoints then serve the persisted
	// snapshot only.
	nowPlaying      *spotify.Refresher
	nowPlayingCache *spotify.PayloadCache

	projectsCache     *cache.TypedCache[[]ProjectAPIResponse]
	testimonialsCache *cache.TypedCache[[]TestimonialAPIResponse]
	settingsCache     *cache.TypedCache[PublicSettingsResponse]
	wallCache         *cache.TypedCache[[]WallEntryAPIResponse]
}

// NewHandler creates a new API handler. nowPlaying may be nil.
func NewHandler(db *sql.DB, cacheMgr *cache.Manager, agg *analytics.Aggregator,
	gate *auth.Gate, nowPlaying *spotify.Refresher) *Handler {
	h := &Handler{
		db:         db,
		queries:    store.New(db),
		cache:      cacheMgr,
		analytics:  agg,
		gate:       gate,
		sanitizer:  bluemonday.StrictPolicy(),
		nowPlaying: nowPlaying,
	}
	if cacheMgr != nil {
		h.projectsCache = cache.NewTypedCache[[]ProjectAPIResponse](cacheMgr.Backend, 0)
		h.testimonialsCache = cache.NewTypedCache[[]TestimonialAPIResponse](cacheMgr.Backend, 0)
		h.settingsCache = cache.NewTypedCache[PublicSettingsResponse](cacheMgr.Backend, 0)
		h.wallCache = cache.NewTypedCache[[]WallEntryAPIResponse](cacheMgr.Backend, 0)
	}
	return h
}

// WithNowPlayingCache attaches the single-flight payload cache backing the
// bare widget mirror endpoint.
func (h *Handler) WithNowPlayingCache(c *spotify.PayloadCache) *Handler {
	h.nowPlayingCache = c
	return h
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data,omitempty"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta contains list metadata.
type Meta struct {
	Total int64 `json:"total,omitempty"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Data: data})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string, details map[string]string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message, details)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message, nil)
}

// WriteUnauthorized writes a 401 Unauthorized response.
func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, "unauthorized", message, nil)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message, nil)
}

// WriteValidationError writes a 422 Unprocessable Entity response with field errors.
func WriteValidationError(w http.ResponseWriter, fieldErrors map[string]string) {
	WriteError(w, http.StatusUnprocessableEntity, "validation_error", "Validation failed", fieldErrors)
}

// ParseIDParam parses the "id" URL parameter as int64.
func ParseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// decodeJSON decodes the request body into dst. A false return means the
// error response has already been written.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return false
	}
	return true
}

// SlugExistsChecker reports how many records carry a candidate slug.
type SlugExistsChecker func() (int64, error)

// checkSlugUnique checks slug uniqueness with the provided checker.
// Returns true if unique, false if duplicate or error (response already written).
func checkSlugUnique(w http.ResponseWriter, message string, slugExists SlugExistsChecker) bool {
	exists, err := slugExists()
	if err != nil {
		WriteInternalError(w, "Failed to check slug")
		return false
	}
	if exists != 0 {
		WriteValidationError(w, map[string]string{"slug": message})
		return false
	}
	return true
}

// EntityFetcher is a function that fetches an entity by ID.
type EntityFetcher[T any] func(id int64) (T, error)

// requireEntityByID parses an ID from the URL and fetches the entity.
// Returns the entity and true if successful, or zero value and false if error
// (response written). The entityName is used for error messages.
func requireEntityByID[T any](w http.ResponseWriter, r *http.Request, entityName string, fetch EntityFetcher[T]) (T, bool) {
	var zero T

	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid "+entityName+" ID", nil)
		return zero, false
	}

	entity, err := fetch(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, capitalizeFirst(entityName)+" not found")
		} else {
			WriteInternalError(w, "Failed to retrieve "+entityName)
		}
		return zero, false
	}

	return entity, true
}

// capitalizeFirst returns s with the first letter capitalized.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// reorderItem is one {id, order} pair of a reorder request.
type reorderItem struct {
	ID    int64 `json:"id"`
	Order int64 `json:"order"`
}

// successResponse acknowledges a mutation with no payload.
type successResponse struct {
	Success bool `json:"success"`
}

// nullableString flattens a sql.NullString for JSON output.
func nullableString(v sql.NullString) string {
	if v.Valid {
		return v.String
	}
	return ""
}

// writeGateError maps auth gate errors onto the API envelope. Returns true
// when a response was written.
func writeGateError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, auth.ErrUnauthorized) {
		WriteUnauthorized(w, "Unauthorized")
	} else {
		WriteInternalError(w, "Session operation failed")
	}
	return true
}

// StatusResponse contains API status information.
type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Status returns the API status.
func (h *Handler) Status(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, StatusResponse{
		Status:  "ok",
		Version: version.Version,
	}, nil)
}
