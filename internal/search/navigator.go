package search

import (
	"context"
	"net/url"
	"sync"
)

// Ticket identifies one navigation started by a Navigator
type Ticket struct {
	Seq     uint64
	Ctx     context.Context // cancelled once a newer navigation begins
	Request Request
	Phase   Phase
}

// Navigator sequences navigations so that only the latest one is ever
// rendered. Starting a navigation cancels the context of the one in flight;
// completing a superseded navigation is reported as stale.
type Navigator struct {
	mu      sync.Mutex
	history *History
	seq     uint64
	nav     Navigation
	cancel  context.CancelFunc
}

// NewNavigator creates a navigator committing finished loads to history
func NewNavigator(history *History) *Navigator {
	return &Navigator{
		history: history,
		nav:     IdleNavigation(),
	}
}

// Begin starts a navigation in the given phase and returns its ticket
func (n *Navigator) Begin(parent context.Context, req Request, phase Phase) Ticket {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.cancel != nil {
		n.cancel()
	}
	n.seq++
	ctx, cancel := context.WithCancel(parent)
	n.cancel = cancel
	n.nav = Navigation{Phase: phase, Location: cloneURL(req.Location)}

	return Ticket{Seq: n.seq, Ctx: ctx, Request: req, Phase: phase}
}

// Complete finishes the navigation identified by t. It returns false when a
// newer navigation has begun since, in which case the caller must drop its
// result. A successful load is committed to history with the request's action.
func (n *Navigator) Complete(t Ticket, err error) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if t.Seq != n.seq {
		return false
	}
	if n.cancel != nil {
		n.cancel()
		n.cancel = nil
	}
	n.nav = IdleNavigation()
	if err == nil && t.Phase == PhaseLoading && t.Request.Location != nil {
		n.history.Navigate(t.Request.Location, t.Request.Action)
	}
	return true
}

// Abandon cancels whatever is in flight and returns to idle
func (n *Navigator) Abandon() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.cancel != nil {
		n.cancel()
		n.cancel = nil
	}
	n.seq++
	n.nav = IdleNavigation()
}

// State returns the current navigation state
func (n *Navigator) State() Navigation {
	n.mu.Lock()
	defer n.mu.Unlock()
	return Navigation{Phase: n.nav.Phase, Location: cloneURL(n.nav.Location)}
}

// History returns the stack navigations are committed to
func (n *Navigator) History() *History {
	return n.history
}

// Fetch runs a loading navigation for req synchronously. The result is
// reported as current only when no newer navigation began while load ran.
func Fetch[T any](parent context.Context, n *Navigator, req Request, load func(context.Context, *url.URL) (T, error)) (T, bool, error) {
	t := n.Begin(parent, req, PhaseLoading)
	v, err := load(t.Ctx, req.Location)
	if !n.Complete(t, err) {
		var zero T
		return zero, false, nil
	}
	return v, true, err
}
