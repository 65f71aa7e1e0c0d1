// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "testing"

func TestCollapseWhitespace(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"   ", ""},
		{"Ada", "Ada"},
		{"  Ada Lovelace  ", "Ada Lovelace"},
		{"Ada\t\nLovelace", "Ada Lovelace"},
		{"a   b   c", "a b c"},
	}

	for _, tt := range tests {
		if got := CollapseWhitespace(tt.input); got != tt.want {
			t.Errorf("CollapseWhitespace(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
