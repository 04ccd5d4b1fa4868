package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"rolodex/internal/domain"
	"rolodex/internal/routes"
	"rolodex/internal/search"
)

const (
	sidebarWidth = 32
	minDetail    = 20
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width          int
	Height         int
	Sidebar        routes.Sidebar
	Cursor         int
	ViewportOffset int
	ViewportHeight int
	SearchField    string // rendered search input
	Searching      bool   // search mode is active
	Spinner        string
	Location       string
	Search         search.State // of the displayed location
	Backend        string
	Detail         *domain.Contact
	Status         string
	StatusIsError  bool
	Help           string
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	var b strings.Builder

	b.WriteString(r.renderHeader(state))
	b.WriteString("\n")
	b.WriteString(r.renderSearch(state))
	b.WriteString("\n")

	detailWidth := state.Width - sidebarWidth - 3
	if detailWidth < minDetail {
		detailWidth = minDetail
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		r.styles.Sidebar.Width(sidebarWidth).Render(r.renderList(state)),
		r.renderDetail(state, detailWidth),
	)
	b.WriteString(body)
	b.WriteString("\n")

	if state.Status != "" {
		style := r.styles.Status
		if state.StatusIsError {
			style = r.styles.StatusError
		}
		b.WriteString(style.Render(state.Status))
	}
	b.WriteString("\n")
	b.WriteString(state.Help)
	return b.String()
}

func (r *Renderer) renderHeader(state ViewState) string {
	header := r.styles.Title.Render("rolodex") + " " + r.styles.Location.Render(state.Location)
	if state.Search == search.Searching {
		header += r.styles.Dim.Render("  " + state.Search.String())
	}
	if state.Backend != "" {
		header += r.styles.Dim.Render("  @ " + state.Backend)
	}
	return header
}

// renderSearch draws the search field; its border and the spinner show the loading state
func (r *Renderer) renderSearch(state ViewState) string {
	style := r.styles.Search
	switch {
	case state.Sidebar.SearchLoading:
		style = r.styles.SearchLoading
	case state.Searching:
		style = r.styles.SearchFocused
	}
	field := style.Width(sidebarWidth - 4).Render(state.SearchField)
	if state.Sidebar.SearchLoading {
		return lipgloss.JoinHorizontal(lipgloss.Center, field, " "+state.Spinner)
	}
	return field
}

func (r *Renderer) renderList(state ViewState) string {
	sb := state.Sidebar
	if sb.Empty {
		return r.styles.Placeholder.Render(routes.NoContactsPlaceholder)
	}

	height := state.ViewportHeight
	if height <= 0 {
		height = len(sb.Items)
	}
	start := state.ViewportOffset
	if start > len(sb.Items) {
		start = len(sb.Items)
	}
	end := start + height
	if end > len(sb.Items) {
		end = len(sb.Items)
	}

	lines := make([]string, 0, end-start+2)
	if start > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more", start)))
	}
	for i := start; i < end; i++ {
		lines = append(lines, r.renderItem(sb.Items[i], i == state.Cursor))
	}
	if end < len(sb.Items) {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more", len(sb.Items)-end)))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderItem(item routes.SidebarItem, cursor bool) string {
	name := item.Name
	if item.Unnamed() {
		name = r.styles.Placeholder.Render(routes.NoNamePlaceholder)
	}
	if item.Favorite {
		name += " " + r.styles.Favorite.Render(routes.FavoriteGlyph)
	}

	style := r.styles.Item
	switch {
	case item.State == routes.LinkActive:
		style = r.styles.ItemActive
	case item.State == routes.LinkPending:
		style = r.styles.ItemPending
	case cursor:
		style = r.styles.ItemCursor
	}
	prefix := "  "
	if cursor {
		prefix = "> "
	}
	return style.Width(sidebarWidth - 1).Render(prefix + name)
}

func (r *Renderer) renderDetail(state ViewState, width int) string {
	style := r.styles.Detail
	if state.Sidebar.DetailLoading {
		style = r.styles.DetailLoading
	}
	return style.Width(width).Render(r.detailContent(state.Detail))
}

func (r *Renderer) detailContent(c *domain.Contact) string {
	if c == nil {
		return r.styles.Dim.Render("Select a contact and press enter, or press n to add one.")
	}

	var b strings.Builder
	if name, ok := c.DisplayName(); ok {
		b.WriteString(r.styles.Name.Render(name))
	} else {
		b.WriteString(r.styles.Placeholder.Render(routes.NoNamePlaceholder))
	}
	if c.Favorite {
		b.WriteString(" " + r.styles.Favorite.Render(routes.FavoriteGlyph))
	}
	b.WriteString("\n\n")

	field := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(r.styles.Label.Render(label) + value + "\n")
	}
	if handle := c.TwitterHandle(); handle != "" {
		field("Twitter", "@"+handle)
	}
	field("Avatar", c.Avatar)
	if !c.CreatedAt.IsZero() {
		field("Added", c.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	if c.Notes != "" {
		b.WriteString("\n" + c.Notes + "\n")
		b.WriteString(r.styles.Dim.Render("o: open notes in pager"))
	}
	return strings.TrimRight(b.String(), "\n")
}
