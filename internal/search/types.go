package search

import "net/url"

// QueryParam is the URL parameter that carries the search text
const QueryParam = "query"

// State is the search state of a rendered location
type State int

const (
	Idle      State = iota // no query parameter in the current URL
	Searching              // query parameter present, possibly empty
)

func (s State) String() string {
	if s == Searching {
		return "searching"
	}
	return "idle"
}

// Phase is the navigation phase reported by the router
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseLoading    Phase = "loading"
	PhaseSubmitting Phase = "submitting"
)

// Navigation is the router's externally observable state
type Navigation struct {
	Phase    Phase
	Location *url.URL // in-flight target, nil when idle
}

// IdleNavigation is the state with nothing in flight
func IdleNavigation() Navigation {
	return Navigation{Phase: PhaseIdle}
}

// Action says how a navigation changes the history stack
type Action int

const (
	Push    Action = iota // add an entry, dropping any forward entries
	Replace               // overwrite the current entry
	Pop                   // history already moved (back/forward); leave it alone
)

func (a Action) String() string {
	switch a {
	case Replace:
		return "replace"
	case Pop:
		return "pop"
	default:
		return "push"
	}
}

// Request is a navigation the view asks the router to perform
type Request struct {
	Location *url.URL
	Action   Action
}
