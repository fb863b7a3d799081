package registry

import (
	"context"
	"errors"
	"fmt"
	"poi-distance-service/internal/domain"
	"poi-distance-service/internal/ports"
	"slices"
	"strings"
)

var (
	ErrEmptyKey     = errors.New("poi key must not be empty")
	ErrDuplicateKey = errors.New("duplicate poi key")
)

// Registry is the fixed, ordered set of points of interest a view displays.
// It is built once and exposes no mutation; accessors return copies so
// callers can never reorder or edit the shared sequence.
type Registry struct {
	pois  []domain.PointOfInterest
	index map[string]int
}

func New(pois []domain.PointOfInterest) (*Registry, error) {
	r := &Registry{
		pois:  make([]domain.PointOfInterest, 0, len(pois)),
		index: make(map[string]int, len(pois)),
	}

	for i, p := range pois {
		key := strings.TrimSpace(p.Key)
		if key == "" {
			return nil, fmt.Errorf("new registry: poi at index %d: %w", i, ErrEmptyKey)
		}

		if _, ok := r.index[key]; ok {
			return nil, fmt.Errorf("new registry: %w: %q", ErrDuplicateKey, key)
		}

		if err := p.Location.Validate(); err != nil {
			return nil, fmt.Errorf("new registry: poi %q: %w", key, err)
		}

		p.Key = key
		p.Label = strings.TrimSpace(p.Label)
		r.index[key] = len(r.pois)
		r.pois = append(r.pois, p)
	}

	return r, nil
}

// Load builds the registry from an external source at process start.
func Load(ctx context.Context, src ports.POISource) (*Registry, error) {
	if src == nil {
		return nil, errors.New("load registry: source is nil")
	}

	pois, err := src.ListPOIs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load registry: %w", err)
	}

	return New(pois)
}

// All returns the points of interest in registry order.
func (r *Registry) All() []domain.PointOfInterest {
	return slices.Clone(r.pois)
}

func (r *Registry) Get(key string) (domain.PointOfInterest, bool) {
	i, ok := r.index[key]
	if !ok {
		return domain.PointOfInterest{}, false
	}
	return r.pois[i], true
}

func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.pois))
	for _, p := range r.pois {
		keys = append(keys, p.Key)
	}
	return keys
}

func (r *Registry) Len() int { return len(r.pois) }
