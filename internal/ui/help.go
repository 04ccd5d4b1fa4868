package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

var errNoProgram = errors.New("program not set")

// keyMap lists the bindings shown in the help bar and the help pager.
// Dispatch itself lives in the input modes.
type keyMap struct {
	Up, Down, Top, Bottom, Page key.Binding
	Open, New, Search, Leave    key.Binding
	Back, Forward, Notes        key.Binding
	Help, Quit                  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		Top:     key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("gg", "top")),
		Bottom:  key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Page:    key.NewBinding(key.WithKeys("pgup", "pgdown"), key.WithHelp("pgup/pgdn", "page")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open contact")),
		New:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new contact")),
		Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Leave:   key.NewBinding(key.WithKeys("esc", "enter"), key.WithHelp("esc/enter", "leave search")),
		Back:    key.NewBinding(key.WithKeys("[", "alt+left"), key.WithHelp("[", "back")),
		Forward: key.NewBinding(key.WithKeys("]", "alt+right"), key.WithHelp("]", "forward")),
		Notes:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "notes")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Open, k.New, k.Back, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.Page},
		{k.Open, k.New, k.Notes},
		{k.Search, k.Leave, k.Back, k.Forward},
		{k.Help, k.Quit},
	}
}

// searchKeys is the help bar while typing a search
type searchKeys struct{ keyMap }

func (k searchKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Leave}
}

// HelpRenderer renders the help page shown in the pager
type HelpRenderer struct {
	keys keyMap
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{keys: newKeyMap()}
}

// Render generates the help content with colors for the pager
func (r *HelpRenderer) Render() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).MarginBottom(1)
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1)
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Width(12)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	sections := []string{"Moving around", "Contacts", "Search and history", "Other"}

	var help strings.Builder
	help.WriteString(titleStyle.Render("rolodex help"))
	help.WriteString("\n")
	for i, column := range r.keys.FullHelp() {
		help.WriteString(sectionStyle.Render(sections[i]))
		help.WriteString("\n")
		for _, b := range column {
			h := b.Help()
			fmt.Fprintf(&help, "  %s %s\n", keyStyle.Render(h.Key), descStyle.Render(h.Desc))
		}
	}
	help.WriteString("\n")
	help.WriteString(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).
		Render("  Typing a search replaces the current history entry after the first keystroke,\n  so back leaves the search in one step."))
	help.WriteString("\n")
	return help.String()
}

// ShowInPager pages content with ov until the user quits it
func ShowInPager(content string) error {
	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// do not leave ov's screen behind on exit
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// PagerOps runs the pager while the Bubble Tea program has released the terminal
type PagerOps struct {
	program *tea.Program
	page    func(string) error
}

// NewPagerOps creates a new pager operations instance
func NewPagerOps(program *tea.Program) *PagerOps {
	return &PagerOps{program: program, page: ShowInPager}
}

// Show releases the terminal, pages content and restores the terminal
func (p *PagerOps) Show(content string) error {
	if p == nil || p.program == nil {
		return errNoProgram
	}
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// let ov finish tearing down its screen first
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()
	return p.page(content)
}
