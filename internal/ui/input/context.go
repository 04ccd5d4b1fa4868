package input

// ModelContext is a snapshot of model state for the input handler
type ModelContext struct {
	Cursor     int
	ContactIDs []string
	Detail     bool
	Back       bool
	Forward    bool
}

func (c *ModelContext) CurrentIndex() int { return c.Cursor }
func (c *ModelContext) TotalItems() int   { return len(c.ContactIDs) }
func (c *ModelContext) HasDetail() bool   { return c.Detail }
func (c *ModelContext) CanGoBack() bool   { return c.Back }
func (c *ModelContext) CanGoForward() bool {
	return c.Forward
}

// ContactIDAt returns the id on row index, or "" when out of range
func (c *ModelContext) ContactIDAt(index int) string {
	if index < 0 || index >= len(c.ContactIDs) {
		return ""
	}
	return c.ContactIDs[index]
}
