package navigation

import (
	"rolodex/internal/ui/services/events"
)

// rows taken by the title, search field, status line and help bar
const reservedRows = 7

// Service moves the cursor over the contact list
type Service struct {
	state   *State
	bus     events.EventBus
	countFn func() int
}

// NewService creates a new navigation service
func NewService(bus events.EventBus) *Service {
	if bus == nil {
		bus = &events.NullBus{}
	}
	return &Service{
		state: &State{ViewportHeight: 20},
		bus:   bus,
	}
}

// SetCountFunction sets the function reporting how many rows there are
func (s *Service) SetCountFunction(fn func() int) {
	s.countFn = fn
}

func (s *Service) Cursor() int         { return s.state.Cursor }
func (s *Service) ViewportOffset() int { return s.state.ViewportOffset }
func (s *Service) ViewportHeight() int { return s.state.ViewportHeight }

// SetViewportHeight fits the list into a terminal of the given height
func (s *Service) SetViewportHeight(height int) {
	effective := height - reservedRows
	if effective < 1 {
		effective = 1
	}
	s.state.ViewportHeight = effective
	s.ensureVisible()
}

// Navigate moves the cursor in a direction
func (s *Service) Navigate(direction Direction) {
	switch direction {
	case DirectionUp:
		s.MoveToIndex(s.state.Cursor - 1)
	case DirectionDown:
		s.MoveToIndex(s.state.Cursor + 1)
	case DirectionPageUp:
		s.MoveToIndex(s.state.Cursor - s.pageSize())
	case DirectionPageDown:
		s.MoveToIndex(s.state.Cursor + s.pageSize())
	case DirectionHome:
		s.MoveToIndex(0)
	case DirectionEnd:
		s.MoveToIndex(s.maxIndex())
	}
}

// MoveToIndex moves the cursor to index, clamped to the list
func (s *Service) MoveToIndex(index int) {
	old := s.state.Cursor
	s.state.Cursor = s.clampIndex(index)
	s.ensureVisible()

	if old != s.state.Cursor {
		s.bus.Publish(CursorMovedEvent{OldIndex: old, NewIndex: s.state.Cursor})
	}
}

// Clamp re-applies the bounds after the list changed size
func (s *Service) Clamp() {
	s.MoveToIndex(s.state.Cursor)
}

func (s *Service) pageSize() int {
	if s.state.ViewportHeight > 1 {
		return s.state.ViewportHeight - 1
	}
	return 1
}

func (s *Service) maxIndex() int {
	if s.countFn == nil {
		return 0
	}
	if n := s.countFn(); n > 0 {
		return n - 1
	}
	return 0
}

func (s *Service) clampIndex(index int) int {
	if index < 0 {
		return 0
	}
	if last := s.maxIndex(); index > last {
		return last
	}
	return index
}

func (s *Service) ensureVisible() {
	offset := s.state.ViewportOffset
	switch {
	case s.state.Cursor < offset:
		offset = s.state.Cursor
	case s.state.Cursor >= offset+s.state.ViewportHeight:
		offset = s.state.Cursor - s.state.ViewportHeight + 1
	}
	if offset < 0 {
		offset = 0
	}
	s.state.ViewportOffset = offset
}
