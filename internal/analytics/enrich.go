// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package analytics

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/mileusna/useragent"

	"github.com/olegiv/folio-go/internal/store"
)

// ClientInfo is what the tracker derives from the request itself, as opposed
// to what the page reported.
type ClientInfo struct {
	UserAgent string
	IP        string
}

// TrackParams describes one incoming event before enrichment.
type TrackParams struct {
	EventType   string
	Path        string
	ProjectSlug string
	SessionID   string
	Meta        map[string]any
	Client      ClientInfo
}

// Track enriches the event meta with parsed user-agent fields and a GeoIP
// country code, then appends it. Enrichment never overrides caller meta keys.
func (a *Aggregator) Track(ctx context.Context, arg TrackParams, now time.Time) (int64, error) {
	meta := make(map[string]any, len(arg.Meta)+4)
	for k, v := range arg.Meta {
		meta[k] = v
	}

	if arg.Client.UserAgent != "" {
		browser, os, device := parseUserAgent(arg.Client.UserAgent)
		setIfAbsent(meta, "browser", browser)
		setIfAbsent(meta, "os", os)
		setIfAbsent(meta, "device", device)
	}
	if arg.Client.IP != "" && a.geo != nil {
		if country := a.geo.LookupCountry(arg.Client.IP); country != "" {
			setIfAbsent(meta, "country", country)
		}
	}

	var metaJSON string
	if len(meta) > 0 {
		b, err := json.Marshal(meta)
		if err != nil {
			return 0, err
		}
		metaJSON = string(b)
	}

	return a.queries.CreateAnalyticsEvent(ctx, store.CreateAnalyticsEventParams{
		EventType:   arg.EventType,
		Path:        arg.Path,
		ProjectSlug: sql.NullString{String: arg.ProjectSlug, Valid: arg.ProjectSlug != ""},
		SessionID:   arg.SessionID,
		Meta:        metaJSON,
		CreatedAt:   now,
	})
}

func setIfAbsent(meta map[string]any, key string, value string) {
	if value == "" {
		return
	}
	if _, ok := meta[key]; !ok {
		meta[key] = value
	}
}

// parseUserAgent extracts browser, OS and device type from a user agent string.
func parseUserAgent(uaString string) (browser, os, deviceType string) {
	ua := useragent.Parse(uaString)

	browser = ua.Name
	if browser == "" {
		browser = "Unknown"
	}

	os = ua.OS
	if os == "" {
		os = "Unknown"
	}

	switch {
	case ua.Bot:
		deviceType = "bot"
	case ua.Mobile:
		deviceType = "mobile"
	case ua.Tablet:
		deviceType = "tablet"
	default:
		deviceType = "desktop"
	}

	return browser, os, deviceType
}
