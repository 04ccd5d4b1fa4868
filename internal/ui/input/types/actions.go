package types

// NavigateAction moves the list cursor
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// ChangeModeAction switches the input mode
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// UpdateTextAction reports a changed value of the search field
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

// SubmitTextAction is sent when the search field is submitted with enter
type SubmitTextAction struct {
	Text string
	Mode Mode
}

func (a SubmitTextAction) Type() string { return "submit_text" }

// CancelTextAction is sent when the search field is left with esc
type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// OpenContactAction navigates to a contact's detail route
type OpenContactAction struct {
	ID string
}

func (a OpenContactAction) Type() string { return "open_contact" }

// NewContactAction submits the New form
type NewContactAction struct{}

func (a NewContactAction) Type() string { return "new_contact" }

// HistoryAction moves through the history stack
type HistoryAction struct {
	Forward bool
}

func (a HistoryAction) Type() string { return "history" }

// OpenNotesAction pages the displayed contact's notes
type OpenNotesAction struct{}

func (a OpenNotesAction) Type() string { return "open_notes" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool
}

func (a QuitAction) Type() string { return "quit" }
