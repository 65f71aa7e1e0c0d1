// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package imageref

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"blank", "   ", ""},
		{"absolute url passthrough", "https://example.com/img.png", "https://example.com/img.png"},
		{"http url passthrough", "http://example.com/img.png", "http://example.com/img.png"},
		{"pexels page rewritten", "https://www.pexels.com/photo/laptop-on-desk-374074/",
			"https://images.pexels.com/photos/374074/pexels-photo-374074.jpeg"},
		{"pexels without www", "https://pexels.com/photo/city-lights-1234567",
			"https://images.pexels.com/photos/1234567/pexels-photo-1234567.jpeg"},
		{"pexels short id not rewritten", "https://www.pexels.com/photo/tiny-99/",
			"https://www.pexels.com/photo/tiny-99/"},
		{"pictures path passthrough", "/pictures/hero.jpeg", "/pictures/hero.jpeg"},
		{"relative pictures path", "pictures/hero.jpeg", "/pictures/hero.jpeg"},
		{"bare alias expanded", "/pg", "/pictures/pg.jpeg"},
		{"alias with dash", "/hero-2", "/pictures/hero-2.jpeg"},
		{"other value passthrough", "cdn/hero.png", "cdn/hero.png"},
		{"surrounding whitespace trimmed", "  /pg  ", "/pictures/pg.jpeg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRequire(t *testing.T) {
	if _, err := Require("", "cover_image_url"); err == nil {
		t.Fatal("Require should fail on empty value")
	} else if err.Error() != "cover_image_url is required" {
		t.Errorf("error = %q", err.Error())
	}

	got, err := Require("/pg", "cover_image_url")
	if err != nil {
		t.Fatalf("Require: %v", err)
	}
	if got != "/pictures/pg.jpeg" {
		t.Errorf("Require = %q", got)
	}
}
