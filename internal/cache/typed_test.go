// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

type cachedPage struct {
	Slug  string `json:"slug"`
	Views int    `json:"views"`
}

func TestTypedCache_SetGet(t *testing.T) {
	backend := NewSimpleMemoryCache(time.Minute)
	defer func() { _ = backend.Close() }()
	tc := NewTypedCache[cachedPage](backend, time.Minute)
	ctx := context.Background()

	if err := tc.Set(ctx, "page", &cachedPage{Slug: "home", Views: 3}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok := tc.Get(ctx, "page")
	if !ok {
		t.Fatal("Get miss after Set")
	}
	if got.Slug != "home" || got.Views != 3 {
		t.Errorf("Get = %+v", got)
	}

	if _, ok := tc.Get(ctx, "missing"); ok {
		t.Error("Get hit for missing key")
	}
}

func TestTypedCache_GetOrSet(t *testing.T) {
	backend := NewSimpleMemoryCache(time.Minute)
	defer func() { _ = backend.Close() }()
	tc := NewTypedCache[cachedPage](backend, time.Minute)
	ctx := context.Background()

	calls := 0
	load := func() (*cachedPage, error) {
		calls++
		return &cachedPage{Slug: "projects"}, nil
	}

	first, err := tc.GetOrSet(ctx, "page", load)
	if err != nil {
		t.Fatalf("GetOrSet: %v", err)
	}
	second, err := tc.GetOrSet(ctx, "page", load)
	if err != nil {
		t.Fatalf("GetOrSet: %v", err)
	}

	if calls != 1 {
		t.Errorf("loader called %d times, want 1", calls)
	}
	if first.Slug != second.Slug {
		t.Errorf("values differ: %+v vs %+v", first, second)
	}
}

func TestTypedCache_GetOrSet_LoaderError(t *testing.T) {
	backend := NewSimpleMemoryCache(time.Minute)
	defer func() { _ = backend.Close() }()
	tc := NewTypedCache[cachedPage](backend, time.Minute)

	wantErr := errors.New("db down")
	_, err := tc.GetOrSet(context.Background(), "page", func() (*cachedPage, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
}

func TestManagerInvalidation(t *testing.T) {
	backend := NewSimpleMemoryCache(time.Minute)
	defer func() { _ = backend.Close() }()
	m := NewManager(backend)
	ctx := context.Background()

	_ = backend.Set(ctx, KeyProjects, []byte("p"), 0)
	_ = backend.Set(ctx, KeySettings, []byte("s"), 0)
	_ = backend.Set(ctx, KeyTestimonials, []byte("t"), 0)
	_ = backend.Set(ctx, KeyWallPrefix+"24", []byte("w"), 0)

	// Projects invalidation also drops settings: the public settings payload
	// embeds the published project count.
	m.InvalidateProjects(ctx)
	if ok, _ := backend.Has(ctx, KeyProjects); ok {
		t.Error("projects key survived invalidation")
	}
	if ok, _ := backend.Has(ctx, KeySettings); ok {
		t.Error("settings key survived projects invalidation")
	}
	if ok, _ := backend.Has(ctx, KeyTestimonials); !ok {
		t.Error("testimonials key dropped by projects invalidation")
	}

	m.InvalidateWall(ctx)
	if ok, _ := backend.Has(ctx, KeyWallPrefix+"24"); ok {
		t.Error("wall key survived invalidation")
	}
	if ok, _ := backend.Has(ctx, KeyTestimonials); !ok {
		t.Error("testimonials key dropped by wall invalidation")
	}

	m.ClearAll(ctx)
	if ok, _ := backend.Has(ctx, KeyTestimonials); ok {
		t.Error("key survived ClearAll")
	}
}
