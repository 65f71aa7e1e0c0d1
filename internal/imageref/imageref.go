// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imageref normalizes image references supplied by admins into
// canonical display URLs: bare aliases expand under /pictures/, relative
// picture paths gain a leading slash, and Pexels photo-page URLs are rewritten
// to their direct-image form.
package imageref

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// simpleAliasPattern matches a bare alias like "/pg".
	simpleAliasPattern = regexp.MustCompile(`^/[a-zA-Z0-9_-]+$`)
	// absoluteURLPattern matches http:// or https:// URLs.
	absoluteURLPattern = regexp.MustCompile(`(?i)^https?://`)
	// pexelsPagePattern matches a Pexels photo page URL with a numeric photo id.
	pexelsPagePattern = regexp.MustCompile(`(?i)^https?://(?:www\.)?pexels\.com/photo/[a-z0-9-]*?(\d{5,})/?`)
)

// Normalize maps a raw image reference to its canonical display URL.
// An empty or blank input yields "".
func Normalize(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}

	if absoluteURLPattern.MatchString(trimmed) {
		if m := pexelsPagePattern.FindStringSubmatch(trimmed); m != nil {
			id := m[1]
			return fmt.Sprintf("https://images.pexels.com/photos/%s/pexels-photo-%s.jpeg", id, id)
		}
		return trimmed
	}

	if strings.HasPrefix(trimmed, "/pictures/") {
		return trimmed
	}

	if strings.HasPrefix(trimmed, "pictures/") {
		return "/" + trimmed
	}

	if simpleAliasPattern.MatchString(trimmed) {
		return "/pictures/" + trimmed[1:] + ".jpeg"
	}

	return trimmed
}

// Require normalizes an image reference and errors when the result is empty.
// The field name is included in the error message.
func Require(value, fieldName string) (string, error) {
	normalized := Normalize(value)
	if normalized == "" {
		return "", fmt.Errorf("%s is required", fieldName)
	}
	return normalized, nil
}
