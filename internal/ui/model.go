package ui

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"rolodex/internal/domain"
	"rolodex/internal/eventbus"
	"rolodex/internal/routes"
	"rolodex/internal/search"
	"rolodex/internal/ui/input"
	inputtypes "rolodex/internal/ui/input/types"
	"rolodex/internal/ui/services/events"
	"rolodex/internal/ui/services/navigation"
	"rolodex/internal/ui/views"
)

const (
	statusTimeout = 3 * time.Second
	errorTimeout  = 6 * time.Second
)

// Options configures the browser model
type Options struct {
	Backend Backend
	Bus     eventbus.EventBus // set for in-process backends; contact events trigger revalidation
	Logger  *zap.Logger
	Label   string   // shown in the header, e.g. the server URL
	Start   *url.URL // initial location, "/" when nil
}

// Model is the terminal contact browser
type Model struct {
	backend Backend
	bus     eventbus.EventBus
	logger  *zap.Logger
	label   string

	history  *search.History
	nav      *search.Navigator
	data     routes.RootData
	location *url.URL        // displayed location
	detail   *domain.Contact // contact of the displayed location
	shown    int             // history index of the displayed location
	loaded   bool

	width        int
	height       int
	help         help.Model
	keys         keyMap
	spinner      spinner.Model
	renderer     *views.Renderer
	inputHandler *input.Handler
	uiBus        *events.Bus
	cursor       *navigation.Service
	helpContent  *HelpRenderer

	status    string
	statusErr bool
	statusSeq int

	program     *tea.Program
	pager       *PagerOps
	inPagerMode bool
	unsubscribe []func()
}

// NewModel creates the browser model
func NewModel(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	start := opts.Start
	if start == nil {
		start = &url.URL{Path: "/"}
	}
	history := search.NewHistory(start)

	m := &Model{
		backend:      opts.Backend,
		bus:          opts.Bus,
		logger:       logger.Named("ui"),
		label:        opts.Label,
		history:      history,
		nav:          search.NewNavigator(history),
		location:     history.Current(),
		help:         help.New(),
		keys:         newKeyMap(),
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		renderer:     views.NewRenderer(),
		inputHandler: input.New(),
		uiBus:        events.NewBus(),
		helpContent:  NewHelpRenderer(),
	}
	m.cursor = navigation.NewService(m.uiBus)
	m.cursor.SetCountFunction(func() int { return len(m.data.Contacts) })
	m.uiBus.Subscribe(events.TypeOf(navigation.CursorMovedEvent{}), m.onCursorMoved)
	return m
}

// SetProgram sets the program reference for the pager and event forwarding
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager = NewPagerOps(p)
	if m.bus == nil || p == nil {
		return
	}
	forward := func(e eventbus.DomainEvent) {
		p.Send(EventMsg{Event: e})
	}
	for _, t := range []eventbus.EventType{
		eventbus.EventContactCreated,
		eventbus.EventContactUpdated,
		eventbus.EventContactDeleted,
		eventbus.EventError,
	} {
		m.unsubscribe = append(m.unsubscribe, m.bus.Subscribe(t, forward))
	}
}

// Close drops the event subscriptions and cancels any navigation in flight
func (m *Model) Close() {
	for _, unsub := range m.unsubscribe {
		unsub()
	}
	m.unsubscribe = nil
	m.nav.Abandon()
}

// Init loads the start location
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.navigate(search.Request{Location: m.history.Current(), Action: search.Replace}),
		m.spinner.Tick,
	)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.cursor.SetViewportHeight(msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.inPagerMode {
			return m, nil
		}
		actions, cmd := m.inputHandler.HandleKey(msg, m.inputContext())
		cmds := []tea.Cmd{cmd}
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadedMsg:
		return m, m.handleLoaded(msg)

	case actedMsg:
		return m, m.handleActed(msg)

	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case pagerMsg:
		if msg.err != nil {
			m.logger.Warn("pager failed", zap.String("content", msg.what), zap.Error(msg.err))
			if msg.what == "help" {
				m.help.ShowAll = true
			}
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil

	default:
		return m, m.inputHandler.Update(msg)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	helpView := m.help.View(m.keys)
	if m.inputHandler.CurrentMode() == inputtypes.ModeSearch {
		helpView = m.help.View(searchKeys{m.keys})
	}

	return m.renderer.Render(views.ViewState{
		Width:          m.width,
		Height:         m.height,
		Sidebar:        m.sidebar(),
		Cursor:         m.cursor.Cursor(),
		ViewportOffset: m.cursor.ViewportOffset(),
		ViewportHeight: m.cursor.ViewportHeight(),
		SearchField:    m.inputHandler.TextInput().View(),
		Searching:      m.inputHandler.CurrentMode() == inputtypes.ModeSearch,
		Spinner:        m.spinner.View(),
		Location:       m.location.String(),
		Search:         search.StateOf(m.data.Query),
		Backend:        m.label,
		Detail:         m.detail,
		Status:         m.status,
		StatusIsError:  m.statusErr,
		Help:           helpView,
	})
}

func (m *Model) sidebar() routes.Sidebar {
	return routes.BuildSidebar(m.data, m.location.Path, m.nav.State())
}

func (m *Model) inputContext() *input.ModelContext {
	ids := make([]string, len(m.data.Contacts))
	for i, c := range m.data.Contacts {
		ids[i] = c.ID
	}
	return &input.ModelContext{
		Cursor:     m.cursor.Cursor(),
		ContactIDs: ids,
		Detail:     m.detail != nil,
		Back:       m.history.Index() > 0,
		Forward:    m.history.Index() < m.history.Len()-1,
	}
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		if !m.statusErr {
			m.status = ""
		}
		m.cursor.Navigate(navigation.Direction(a.Direction))

	case inputtypes.UpdateTextAction:
		// first-search is decided by the rendered query, not an in-flight one
		req := search.OnChange(m.data.Query, "/", url.Values{search.QueryParam: {a.Text}})
		return m.navigate(req)

	case inputtypes.SubmitTextAction, inputtypes.CancelTextAction:
		// the field already drove its navigations

	case inputtypes.OpenContactAction:
		return m.navigate(search.Request{Location: pathURL(routes.ContactPath(a.ID)), Action: search.Push})

	case inputtypes.NewContactAction:
		return m.submitNew()

	case inputtypes.HistoryAction:
		move := m.history.Back
		if a.Forward {
			move = m.history.Forward
		}
		if u, ok := move(); ok {
			return m.navigate(search.Request{Location: u, Action: search.Pop})
		}

	case inputtypes.OpenNotesAction:
		return m.openNotes()

	case inputtypes.ToggleHelpAction:
		if m.program == nil {
			m.help.ShowAll = !m.help.ShowAll
			return nil
		}
		return m.pagerCmd("help", m.helpContent.Render())

	case inputtypes.QuitAction:
		m.Close()
		return tea.Quit
	}
	return nil
}

// navigate starts a loading navigation; its result arrives as a loadedMsg
func (m *Model) navigate(req search.Request) tea.Cmd {
	if req.Action != search.Pop {
		// a back or forward still in flight is superseded
		m.restoreShown()
	}
	ticket := m.nav.Begin(context.Background(), req, search.PhaseLoading)
	m.logger.Debug("navigate",
		zap.Stringer("to", req.Location),
		zap.Stringer("action", req.Action),
		zap.Uint64("seq", ticket.Seq))

	backend := m.backend
	return func() tea.Msg {
		data, err := backend.Load(ticket.Ctx, ticket.Request.Location)
		if err != nil {
			return loadedMsg{ticket: ticket, err: err}
		}
		msg := loadedMsg{ticket: ticket, data: data}
		if id, ok := contactID(ticket.Request.Location.Path); ok {
			c, err := backend.Contact(ticket.Ctx, id)
			if err != nil {
				return loadedMsg{ticket: ticket, err: err}
			}
			msg.contact = &c
		}
		return msg
	}
}

func (m *Model) handleLoaded(msg loadedMsg) tea.Cmd {
	if !m.nav.Complete(msg.ticket, msg.err) {
		m.logger.Debug("dropped stale navigation",
			zap.Stringer("to", msg.ticket.Request.Location),
			zap.Uint64("seq", msg.ticket.Seq))
		return nil
	}
	if msg.err != nil {
		if msg.ticket.Request.Action == search.Pop {
			m.restoreShown()
		}
		return m.setError(fmt.Errorf("load %s: %w", msg.ticket.Request.Location, msg.err))
	}

	loc := *msg.ticket.Request.Location
	m.location = &loc
	m.shown = m.history.Index()
	m.data = msg.data
	m.detail = msg.contact
	m.loaded = true
	m.inputHandler.SetText(search.InputValue(m.data.Query))

	m.cursor.Clamp()
	if m.detail != nil {
		for i, c := range m.data.Contacts {
			if c.ID == m.detail.ID {
				m.cursor.MoveToIndex(i)
				break
			}
		}
	}
	return nil
}

// restoreShown moves history back to the displayed entry after a back or
// forward that never rendered
func (m *Model) restoreShown() {
	if delta := m.shown - m.history.Index(); delta != 0 {
		m.history.Go(delta)
	}
}

// submitNew posts the New form; the search state is left as rendered
func (m *Model) submitNew() tea.Cmd {
	req := search.Request{Location: m.location, Action: search.Push}
	ticket := m.nav.Begin(context.Background(), req, search.PhaseSubmitting)

	backend := m.backend
	return func() tea.Msg {
		redirect, err := backend.Act(ticket.Ctx)
		return actedMsg{ticket: ticket, redirect: redirect, err: err}
	}
}

func (m *Model) handleActed(msg actedMsg) tea.Cmd {
	if !m.nav.Complete(msg.ticket, msg.err) {
		return nil
	}
	if msg.err != nil {
		return m.setError(msg.err)
	}
	return tea.Batch(
		m.setStatus("Created a new contact"),
		m.navigate(search.Request{Location: pathURL(msg.redirect.Location), Action: search.Push}),
	)
}

func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.ErrorEvent:
		return m.setError(errors.New(e.Message))
	case eventbus.ContactCreatedEvent, eventbus.ContactUpdatedEvent, eventbus.ContactDeletedEvent:
		// an in-flight navigation will read the change anyway
		if !m.loaded || m.nav.State().Phase != search.PhaseIdle {
			return nil
		}
		m.logger.Debug("revalidating", zap.String("event", string(event.Type())))
		return m.navigate(search.Request{Location: m.location, Action: search.Replace})
	}
	return nil
}

func (m *Model) openNotes() tea.Cmd {
	if m.detail == nil || strings.TrimSpace(m.detail.Notes) == "" {
		return m.setStatus("No notes for this contact")
	}
	if m.program == nil {
		return m.setStatus("Pager unavailable")
	}
	name, ok := m.detail.DisplayName()
	if !ok {
		name = routes.NoNamePlaceholder
	}
	return m.pagerCmd("notes", name+"\n\n"+m.detail.Notes+"\n")
}

// pagerCmd pauses rendering while ov owns the terminal
func (m *Model) pagerCmd(what, content string) tea.Cmd {
	program, pager := m.program, m.pager
	return func() tea.Msg {
		program.Send(pauseRenderingMsg{})
		err := pager.Show(content)
		program.Send(resumeRenderingMsg{})
		return pagerMsg{what: what, err: err}
	}
}

func (m *Model) onCursorMoved(e interface{}) {
	moved := e.(navigation.CursorMovedEvent)
	m.logger.Debug("cursor moved", zap.Int("from", moved.OldIndex), zap.Int("to", moved.NewIndex))
}

func (m *Model) setStatus(s string) tea.Cmd {
	m.statusSeq++
	m.status = s
	m.statusErr = false
	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

func (m *Model) setError(err error) tea.Cmd {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	m.logger.Error("browser error", zap.Error(err))
	m.statusSeq++
	m.status = err.Error()
	m.statusErr = true
	seq := m.statusSeq
	return tea.Tick(errorTimeout, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

// contactID extracts {id} from /contacts/{id} and the routes below it
func contactID(path string) (string, bool) {
	rest, ok := strings.CutPrefix(path, "/contacts/")
	if !ok {
		return "", false
	}
	id, _, _ := strings.Cut(rest, "/")
	if id == "" {
		return "", false
	}
	return id, true
}

func pathURL(raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil {
		return &url.URL{Path: raw}
	}
	return u
}
