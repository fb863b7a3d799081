package view

import (
	"context"
	"errors"
	"fmt"
	"log"
	"poi-distance-service/internal/distance"
	"poi-distance-service/internal/domain"
	"poi-distance-service/internal/platform/obs"
	"poi-distance-service/internal/ports"
	"poi-distance-service/internal/registry"
	"sync"
	"time"
)

var (
	ErrAlreadyActivated = errors.New("view already activated")
	ErrClosed           = errors.New("view is closed")
)

// Map widget settings shared by every view.
type MapOptions struct {
	Center domain.Coordinates `json:"center"`
	Zoom   int                `json:"zoom"`
	MapID  string             `json:"map_id,omitempty"`
}

type Options struct {
	Style domain.MarkerStyle
	Map   MapOptions
}

// View is one location distance view: the registry markers, a single
// location acquisition and the distances derived from it.
//
// The user location and distances are written only by the acquisition
// goroutine, under mu. Once Close is called any late result is dropped.
type View struct {
	id        string
	registry  *registry.Registry
	locator   ports.Locator
	geometry  ports.SphericalGeometry
	opts      Options
	createdAt time.Time

	mu        sync.Mutex
	state     domain.ViewState
	user      *domain.Coordinates
	distances domain.Distances
	reason    ports.LocationReason
	closed    bool
	cancel    context.CancelFunc

	done     chan struct{}
	doneOnce sync.Once
}

func New(
	id string,
	reg *registry.Registry,
	loc ports.Locator,
	geom ports.SphericalGeometry,
	opts Options,
) *View {
	if opts.Style == "" {
		opts.Style = domain.MarkerStylePlain
	}

	return &View{
		id:        id,
		registry:  reg,
		locator:   loc,
		geometry:  geom,
		opts:      opts,
		createdAt: time.Now(),
		state:     domain.StateUninitialized,
		done:      make(chan struct{}),
	}
}

func (v *View) ID() string { return v.id }

func (v *View) Locator() ports.Locator { return v.locator }

func (v *View) CreatedAt() time.Time { return v.createdAt }

// Done is closed when the view reaches a terminal state or is closed.
func (v *View) Done() <-chan struct{} { return v.done }

// Activate moves the view to AwaitingLocation and issues the single
// location request. ctx bounds the acquisition; it should outlive the
// caller's request.
func (v *View) Activate(ctx context.Context) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return fmt.Errorf("activate view %s: %w", v.id, ErrClosed)
	}
	if v.state != domain.StateUninitialized {
		v.mu.Unlock()
		return fmt.Errorf("activate view %s: %w", v.id, ErrAlreadyActivated)
	}

	v.state = domain.StateAwaitingLocation
	actx, cancel := context.WithCancel(obs.WithViewID(ctx, v.id))
	v.cancel = cancel
	v.mu.Unlock()

	log.Printf("view_id=%s op=view.Activate state=%s pois=%d", v.id, domain.StateAwaitingLocation, v.registry.Len())

	go v.acquire(actx)
	return nil
}

func (v *View) acquire(ctx context.Context) {
	var err error
	defer obs.Time(ctx, "view.acquire")(&err)

	if v.locator == nil {
		err = ports.NewLocationError(ports.ReasonUnsupported, "no location service configured")
		v.fail(err)
		return
	}

	pos, err := v.locator.CurrentPosition(ctx)
	if err != nil {
		v.fail(err)
		return
	}

	if err = pos.Coordinates.Validate(); err != nil {
		err = ports.NewLocationError(ports.ReasonPositionUnavailable, err.Error())
		v.fail(err)
		return
	}

	distances, cerr := distance.Compute(v.geometry, pos.Coordinates, v.registry.All())
	if cerr != nil {
		log.Printf("view_id=%s op=distance.Compute err=%v (distances skipped)", v.id, cerr)
		distances = nil
	}

	v.resolve(pos.Coordinates, distances)
}

func (v *View) resolve(user domain.Coordinates, d domain.Distances) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		log.Printf("view_id=%s op=view.resolve discarded=true reason=closed", v.id)
		return
	}

	v.user = &user
	v.distances = d
	v.state = domain.StateLocationResolved
	v.markDone()

	log.Printf("view_id=%s op=view.resolve state=%s user=%s distances=%d", v.id, v.state, user, len(d))
}

func (v *View) fail(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		log.Printf("view_id=%s op=view.fail discarded=true reason=closed", v.id)
		return
	}

	v.reason = ports.ReasonOf(err)
	v.state = domain.StateLocationUnavailable
	v.markDone()

	log.Printf("view_id=%s op=view.fail state=%s reason=%s err=%v", v.id, v.state, v.reason, err)
}

func (v *View) markDone() {
	v.doneOnce.Do(func() { close(v.done) })
}

// Close tears the view down. Pending acquisition is abandoned and its
// result, if any, is ignored. Close is idempotent.
func (v *View) Close() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	cancel := v.cancel
	v.markDone()
	v.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// A consistent read of the view's state.
type Snapshot struct {
	ID           string
	State        domain.ViewState
	UserLocation *domain.Coordinates
	Distances    domain.Distances
	Reason       ports.LocationReason
	Closed       bool
}

func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	s := Snapshot{
		ID:        v.id,
		State:     v.state,
		Distances: v.distances.Clone(),
		Reason:    v.reason,
		Closed:    v.closed,
	}
	if v.user != nil {
		u := *v.user
		s.UserLocation = &u
	}
	return s
}

// Wait blocks until the view settles or ctx ends, then returns a snapshot.
func (v *View) Wait(ctx context.Context) (Snapshot, error) {
	select {
	case <-v.done:
		return v.Snapshot(), nil
	case <-ctx.Done():
		return v.Snapshot(), ctx.Err()
	}
}

// Scene renders the current snapshot as declarative map data.
func (v *View) Scene() Scene {
	return BuildScene(v.registry.All(), v.Snapshot(), v.opts)
}
