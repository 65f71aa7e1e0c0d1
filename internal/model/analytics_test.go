// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "testing"

func TestIsValidEventType(t *testing.T) {
	for _, v := range ValidEventTypes {
		if !IsValidEventType(v) {
			t.Errorf("IsValidEventType(%q) = false", v)
		}
	}
	if IsValidEventType("page_exit") {
		t.Error("page_exit should not be valid")
	}
	if IsValidEventType("") {
		t.Error("empty should not be valid")
	}
}

func TestMetaMap(t *testing.T) {
	e := AnalyticsEvent{Meta: `{"cta":"download_cv","count":2}`}
	m := e.MetaMap()
	if m == nil {
		t.Fatal("MetaMap() = nil for valid JSON")
	}
	if m["cta"] != "download_cv" {
		t.Errorf("cta = %v", m["cta"])
	}

	for _, meta := range []string{"", "{}", "not-json"} {
		e := AnalyticsEvent{Meta: meta}
		if got := e.MetaMap(); got != nil {
			t.Errorf("MetaMap() with meta %q = %v, want nil", meta, got)
		}
	}
}

func TestMetaToJSON(t *testing.T) {
	if got := MetaToJSON(nil); got != "" {
		t.Errorf("MetaToJSON(nil) = %q", got)
	}
	got := MetaToJSON(map[string]any{"cta": "download_cv"})
	if got != `{"cta":"download_cv"}` {
		t.Errorf("MetaToJSON = %q", got)
	}
}
