package cache

import (
	"context"
	"log/slog"
)

// Public read cache keys. Wall entries are cached per limit under the wall
// prefix.
const (
	KeyProjects     = "public:projects"
	KeyTestimonials = "public:testimonials"
	KeySettings     = "public:settings"
	KeyWallPrefix   = "public:wall:"
)

// PrefixDeleter is implemented by backends that can delete keys by prefix.
type PrefixDeleter interface {
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// Manager owns the shared cache backend and centralizes invalidation for the
// public read endpoints. Admin mutations call the Invalidate* methods so
// public readers never serve stale content past a write.
type Manager struct {
	Backend Cache
}

// NewManager creates a cache manager over the given backend.
func NewManager(backend Cache) *Manager {
	return &Manager{Backend: backend}
}

// InvalidateProjects drops the cached published-projects payload.
func (m *Manager) InvalidateProjects(ctx context.Context) {
	m.drop(ctx, KeyProjects)
	// Settings embed the published project count.
	m.drop(ctx, KeySettings)
}

// InvalidateTestimonials drops the cached published-testimonials payload.
func (m *Manager) InvalidateTestimonials(ctx context.Context) {
	m.drop(ctx, KeyTestimonials)
}

// InvalidateSettings drops the cached public settings payload.
func (m *Manager) InvalidateSettings(ctx context.Context) {
	m.drop(ctx, KeySettings)
}

// InvalidateWall drops every cached wall payload.
func (m *Manager) InvalidateWall(ctx context.Context) {
	if pd, ok := m.Backend.(PrefixDeleter); ok {
		if err := pd.DeleteByPrefix(ctx, KeyWallPrefix); err != nil {
			slog.Warn("cache wall invalidation failed", "error", err)
		}
		return
	}
	if err := m.Backend.Clear(ctx); err != nil {
		slog.Warn("cache clear failed", "error", err)
	}
}

// ClearAll clears the whole backend.
func (m *Manager) ClearAll(ctx context.Context) {
	if err := m.Backend.Clear(ctx); err != nil {
		slog.Warn("cache clear failed", "error", err)
	}
}

// Stats returns backend statistics when the backend provides them.
func (m *Manager) Stats() (Stats, bool) {
	if sp, ok := m.Backend.(StatsProvider); ok {
		return sp.Stats(), true
	}
	return Stats{}, false
}

// Close releases the backend.
func (m *Manager) Close() error {
	return m.Backend.Close()
}

func (m *Manager) drop(ctx context.Context, key string) {
	if err := m.Backend.Delete(ctx, key); err != nil {
		slog.Warn("cache invalidation failed", "key", key, "error", err)
	}
}
