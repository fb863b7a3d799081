package view

import (
	"context"
	"fmt"
	"log"
	"poi-distance-service/internal/domain"
	"poi-distance-service/internal/ports"
	"poi-distance-service/internal/registry"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager owns the lifecycle of every live view. Each entry point
// (a loaded page, a CLI run) creates its view here and removes it
// when done; nothing else holds views.
type Manager struct {
	registry *registry.Registry
	geometry ports.SphericalGeometry
	mapOpts  MapOptions

	mu    sync.RWMutex
	views map[string]*View
}

func NewManager(reg *registry.Registry, geom ports.SphericalGeometry, mapOpts MapOptions) *Manager {
	return &Manager{
		registry: reg,
		geometry: geom,
		mapOpts:  mapOpts,
		views:    make(map[string]*View),
	}
}

// Create builds a view bound to loc, registers it and activates it.
func (m *Manager) Create(ctx context.Context, loc ports.Locator, style domain.MarkerStyle) (*View, error) {
	v := New(uuid.NewString(), m.registry, loc, m.geometry, Options{Style: style, Map: m.mapOpts})

	m.mu.Lock()
	m.views[v.ID()] = v
	m.mu.Unlock()

	if err := v.Activate(ctx); err != nil {
		m.Remove(v.ID())
		return nil, fmt.Errorf("create view: %w", err)
	}

	return v, nil
}

func (m *Manager) Get(id string) (*View, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.views[id]
	return v, ok
}

// Remove closes and forgets a view. It reports whether the view existed.
func (m *Manager) Remove(id string) bool {
	m.mu.Lock()
	v, ok := m.views[id]
	delete(m.views, id)
	m.mu.Unlock()

	if ok {
		v.Close()
	}
	return ok
}

// Sweep removes views created more than maxAge before now.
func (m *Manager) Sweep(maxAge time.Duration, now time.Time) int {
	m.mu.Lock()
	stale := make([]*View, 0)
	for id, v := range m.views {
		if now.Sub(v.CreatedAt()) > maxAge {
			stale = append(stale, v)
			delete(m.views, id)
		}
	}
	m.mu.Unlock()

	for _, v := range stale {
		v.Close()
	}
	if len(stale) > 0 {
		log.Printf("op=views.Sweep removed=%d", len(stale))
	}
	return len(stale)
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.views)
}

// Close tears down every view.
func (m *Manager) Close() {
	m.mu.Lock()
	views := m.views
	m.views = make(map[string]*View)
	m.mu.Unlock()

	for _, v := range views {
		v.Close()
	}
}

func (m *Manager) Registry() *registry.Registry { return m.registry }

func (m *Manager) Geometry() ports.SphericalGeometry { return m.geometry }
