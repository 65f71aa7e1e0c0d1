// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"regexp"
	"strings"
)

// innerWhitespace matches runs of whitespace inside a string.
var innerWhitespace = regexp.MustCompile(`\s+`)

// CollapseWhitespace trims a string and collapses internal whitespace runs
// to single spaces. Display names are measured after this normalization.
func CollapseWhitespace(s string) string {
	return innerWhitespace.ReplaceAllString(strings.TrimSpace(s), " ")
}
