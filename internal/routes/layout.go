package routes

import (
	"strings"

	"rolodex/internal/domain"
	"rolodex/internal/search"
)

const (
	NoNamePlaceholder     = "No Name"
	NoContactsPlaceholder = "No contacts"
	FavoriteGlyph         = "★"
)

// LinkState is the visual state of a sidebar link
type LinkState int

const (
	LinkNone LinkState = iota
	LinkActive
	LinkPending
)

// Class is the CSS class of the state, empty for LinkNone
func (s LinkState) Class() string {
	switch s {
	case LinkActive:
		return "active"
	case LinkPending:
		return "pending"
	default:
		return ""
	}
}

// SidebarItem is one rendered contact link
type SidebarItem struct {
	ID       string
	Href     string
	Name     string // empty when the contact has no name
	Favorite bool
	State    LinkState
}

// Unnamed reports whether the item renders the placeholder
func (i SidebarItem) Unnamed() bool {
	return i.Name == ""
}

// Label is the display text: name or placeholder, starred when favorite
func (i SidebarItem) Label() string {
	label := i.Name
	if label == "" {
		label = NoNamePlaceholder
	}
	if i.Favorite {
		label += " " + FavoriteGlyph
	}
	return label
}

// Sidebar is the view model of the root layout
type Sidebar struct {
	Items         []SidebarItem
	Empty         bool
	InputValue    string
	FirstSearch   bool
	SearchLoading bool
	DetailLoading bool
}

// BuildSidebar projects loader data, the displayed path and the router's
// navigation state onto the sidebar. It holds no state of its own.
func BuildSidebar(data RootData, currentPath string, nav search.Navigation) Sidebar {
	loading := search.ShowLoading(nav)
	sb := Sidebar{
		Items:         make([]SidebarItem, 0, len(data.Contacts)),
		Empty:         len(data.Contacts) == 0,
		InputValue:    search.InputValue(data.Query),
		FirstSearch:   search.IsFirstSearch(data.Query),
		SearchLoading: loading,
		DetailLoading: loading,
	}

	pendingPath := ""
	if nav.Phase != search.PhaseIdle && nav.Location != nil {
		pendingPath = nav.Location.Path
	}

	for _, c := range data.Contacts {
		sb.Items = append(sb.Items, buildItem(c, currentPath, pendingPath))
	}
	return sb
}

func buildItem(c domain.Contact, currentPath, pendingPath string) SidebarItem {
	name, _ := c.DisplayName()
	item := SidebarItem{
		ID:       c.ID,
		Href:     ContactPath(c.ID),
		Name:     name,
		Favorite: c.Favorite,
	}
	switch {
	case isUnder(currentPath, item.Href):
		item.State = LinkActive
	case pendingPath != "" && isUnder(pendingPath, item.Href):
		item.State = LinkPending
	}
	return item
}

// isUnder reports whether path is href or one of the routes below it
func isUnder(path, href string) bool {
	return path == href || strings.HasPrefix(path, href+"/")
}
