package ui

import (
	"rolodex/internal/domain"
	"rolodex/internal/eventbus"
	"rolodex/internal/routes"
	"rolodex/internal/search"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// loadedMsg carries the result of a loading navigation
type loadedMsg struct {
	ticket  search.Ticket
	data    routes.RootData
	contact *domain.Contact
	err     error
}

// actedMsg carries the result of submitting the New form
type actedMsg struct {
	ticket   search.Ticket
	redirect routes.Redirect
	err      error
}

// pagerMsg is sent when the pager exits
type pagerMsg struct {
	what string
	err  error
}

// clearStatusMsg clears the status line
type clearStatusMsg struct {
	seq int
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
