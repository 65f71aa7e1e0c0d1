// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package spotify

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/testutil"
)

func TestRefresher_Snapshot_FallbackWithoutRow(t *testing.T) {
	queries, _, cleanup := testutil.TestQueries(t)
	defer cleanup()

	r := NewRefresher(queries, nil)
	payload := r.Snapshot(context.Background())
	assert.Equal(t, model.NowPlayingStatusUnavailable, payload.Status)
	assert.Nil(t, payload.Track)
	assert.NotEmpty(t, payload.FetchedAt)
}

func TestRefresher_RefreshSavesSnapshot(t *testing.T) {
	queries, _, cleanup := testutil.TestQueries(t)
	defer cleanup()

	var calls atomic.Int64
	r := NewRefresher(queries, countingResolver(t, &calls))

	payload, err := r.Refresh(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), calls.Load())
	assert.Equal(t, model.NowPlayingStatusPlaying, payload.Status)
	require.NotNil(t, payload.Track)
	assert.Equal(t, "Cached Song", payload.Track.Title)

	snap := r.Snapshot(context.Background())
	assert.Equal(t, model.NowPlayingStatusPlaying, snap.Status)
	require.NotNil(t, snap.Track)
	assert.Equal(t, "Cached Song", snap.Track.Title)
}

func TestRefresher_LeaseBlocksSecondRefresh(t *testing.T) {
	queries, _, cleanup := testutil.TestQueries(t)
	defer cleanup()

	var calls atomic.Int64
	r := NewRefresher(queries, countingResolver(t, &calls))

	_, err := r.Refresh(context.Background(), false)
	require.NoError(t, err)

	// The lease window opened by the first refresh is still warm, so this
	// one must return the stored snapshot without touching upstream.
	payload, err := r.Refresh(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), calls.Load())
	assert.Equal(t, model.NowPlayingStatusPlaying, payload.Status)
}

func TestRefresher_ForceBypassesLease(t *testing.T) {
	queries, _, cleanup := testutil.TestQueries(t)
	defer cleanup()

	var calls atomic.Int64
	r := NewRefresher(queries, countingResolver(t, &calls))

	_, err := r.Refresh(context.Background(), false)
	require.NoError(t, err)

	_, err = r.Refresh(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), calls.Load())
}

func TestRefresher_FailureMarksUnavailable(t *testing.T) {
	queries, _, cleanup := testutil.TestQueries(t)
	defer cleanup()

	resolver := newTestResolver(t, upstream{
		token: func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
	})
	r := NewRefresher(queries, resolver)

	payload, err := r.Refresh(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, model.NowPlayingStatusUnavailable, payload.Status)
	assert.Nil(t, payload.Track)

	snap, err := queries.GetNowPlayingSnapshot(context.Background(), model.NowPlayingKey)
	require.NoError(t, err)
	assert.Equal(t, model.NowPlayingStatusUnavailable, snap.Status)
	assert.Contains(t, snap.Error, "token refresh failed")
}
