// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package spotify

import (
	"context"
	"sync"
	"time"

	"github.com/olegiv/folio-go/internal/model"
)

// DefaultCacheTTL matches the minimum refresh interval of the lease variant.
const DefaultCacheTTL = 25 * time.Second

// minCacheTTL is the floor applied to configured TTLs.
const minCacheTTL = time.Second

type flight struct {
	done    chan struct{}
	payload model.NowPlayingPayload
}

// PayloadCache is a single-entry TTL cache with single-flight coalescing:
// concurrent callers during a pending resolve all receive the same result
// from one upstream fetch chain.
type PayloadCache struct {
	resolver *Resolver
	ttl      time.Duration

	mu        sync.Mutex
	value     *model.NowPlayingPayload
	expiresAt time.Time
	inFlight  *flight
}

// NewPayloadCache creates a cache over the resolver. TTLs below one second
// are raised to one second; zero means DefaultCacheTTL.
func NewPayloadCache(resolver *Resolver, ttl time.Duration) *PayloadCache {
	if ttl == 0 {
		ttl = DefaultCacheTTL
	}
	if ttl < minCacheTTL {
		ttl = minCacheTTL
	}
	return &PayloadCache{resolver: resolver, ttl: ttl}
}

// Get returns the cached payload, joining any in-flight resolve, or starts a
// new resolve when the cached value has expired.
func (c *PayloadCache) Get(ctx context.Context) model.NowPlayingPayload {
	c.mu.Lock()
	if c.value != nil && time.Now().Before(c.expiresAt) {
		v := *c.value
		c.mu.Unlock()
		return v
	}
	if f := c.inFlight; f != nil {
		c.mu.Unlock()
		<-f.done
		return f.payload
	}

	f := &flight{done: make(chan struct{})}
	c.inFlight = f
	c.mu.Unlock()

	payload := c.resolver.ResolveSafe(ctx)

	c.mu.Lock()
	c.value = &payload
	c.expiresAt = time.Now().Add(c.ttl)
	c.inFlight = nil
	c.mu.Unlock()

	f.payload = payload
	close(f.done)
	return payload
}

// Clear drops the cached value and expiry so the next Get resolves upstream.
func (c *PayloadCache) Clear() {
	c.mu.Lock()
	c.value = nil
	c.expiresAt = time.Time{}
	c.mu.Unlock()
}
