package navigation

// State holds the cursor and the visible window of the contact list
type State struct {
	Cursor         int
	ViewportOffset int
	ViewportHeight int
}

// Direction represents movement directions
type Direction string

const (
	DirectionUp       Direction = "up"
	DirectionDown     Direction = "down"
	DirectionPageUp   Direction = "pageup"
	DirectionPageDown Direction = "pagedown"
	DirectionHome     Direction = "home"
	DirectionEnd      Direction = "end"
)

// CursorMovedEvent is published when the cursor lands on a different row
type CursorMovedEvent struct {
	OldIndex int
	NewIndex int
}
