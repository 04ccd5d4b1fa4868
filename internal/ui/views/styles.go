package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Location      lipgloss.Style
	Search        lipgloss.Style
	SearchFocused lipgloss.Style
	SearchLoading lipgloss.Style
	Sidebar       lipgloss.Style
	Item          lipgloss.Style
	ItemCursor    lipgloss.Style
	ItemActive    lipgloss.Style
	ItemPending   lipgloss.Style
	Placeholder   lipgloss.Style
	Favorite      lipgloss.Style
	Detail        lipgloss.Style
	DetailLoading lipgloss.Style
	Name          lipgloss.Style
	Label         lipgloss.Style
	Dim           lipgloss.Style
	Scroll        lipgloss.Style
	Status        lipgloss.Style
	StatusError   lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Location:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Search:        lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("241")).Padding(0, 1),
		SearchFocused: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("39")).Padding(0, 1),
		SearchLoading: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("214")).Padding(0, 1),
		Sidebar:       lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, true, false, false).BorderForeground(lipgloss.Color("238")).PaddingRight(1),
		Item:          lipgloss.NewStyle().PaddingLeft(1),
		ItemCursor:    lipgloss.NewStyle().PaddingLeft(1).Background(lipgloss.Color("238")),
		ItemActive:    lipgloss.NewStyle().PaddingLeft(1).Foreground(lipgloss.Color("231")).Background(lipgloss.Color("27")),
		ItemPending:   lipgloss.NewStyle().PaddingLeft(1).Foreground(lipgloss.Color("39")),
		Placeholder:   lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245")),
		Favorite:      lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Detail:        lipgloss.NewStyle().PaddingLeft(2),
		DetailLoading: lipgloss.NewStyle().PaddingLeft(2).Faint(true),
		Name:          lipgloss.NewStyle().Bold(true),
		Label:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(9),
		Dim:           lipgloss.NewStyle().Faint(true),
		Scroll:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Status:        lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
}
