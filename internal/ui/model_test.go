package ui

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rolodex/internal/contacts"
	"rolodex/internal/domain"
	"rolodex/internal/eventbus"
	"rolodex/internal/routes"
	"rolodex/internal/search"
	inputtypes "rolodex/internal/ui/input/types"
)

// gatedBackend lets a test hold a load until it is released
type gatedBackend struct {
	*LocalBackend
	gates   map[string]chan struct{}
	loadErr error
}

func (b *gatedBackend) Load(ctx context.Context, u *url.URL) (routes.RootData, error) {
	if gate, ok := b.gates[u.RawQuery]; ok {
		select {
		case <-gate:
		case <-ctx.Done():
		}
	}
	if b.loadErr != nil {
		return routes.RootData{}, b.loadErr
	}
	return b.LocalBackend.Load(ctx, u)
}

func newTestModel(t *testing.T, people ...domain.Contact) (*Model, *gatedBackend, *contacts.MemoryStore) {
	t.Helper()
	store := contacts.NewMemoryStore()
	for _, p := range people {
		_, err := store.Add(context.Background(), p)
		require.NoError(t, err)
	}
	backend := &gatedBackend{
		LocalBackend: NewLocalBackend(store, nil),
		gates:        map[string]chan struct{}{},
	}
	m := NewModel(Options{Backend: backend})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, backend, store
}

// run executes cmd and feeds navigation results back into the model.
// Timers and blinks that do not finish promptly are abandoned.
func run(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(100 * time.Millisecond):
		return
	}

	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			run(t, m, c)
		}
	case loadedMsg, actedMsg:
		_, next := m.Update(msg)
		run(t, m, next)
	}
}

func press(t *testing.T, m *Model, keys ...string) {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd := m.Update(msg)
		run(t, m, cmd)
	}
}

func TestInitialLoad(t *testing.T) {
	m, _, _ := newTestModel(t, domain.Contact{First: "Ana"}, domain.Contact{First: "Ryan"})
	run(t, m, m.Init())

	assert.Nil(t, m.data.Query)
	assert.Len(t, m.data.Contacts, 2)
	assert.Equal(t, "", m.inputHandler.TextInput().Value())
	assert.False(t, m.sidebar().SearchLoading)
	assert.True(t, m.sidebar().FirstSearch)
	assert.Equal(t, []string{"/"}, m.history.Entries())
	assert.Contains(t, m.View(), "Ana")
}

func TestTypingPushesOnceThenReplaces(t *testing.T) {
	m, _, _ := newTestModel(t, domain.Contact{First: "Ana"}, domain.Contact{First: "Ryan"})
	run(t, m, m.Init())

	press(t, m, "/", "a", "n", "a")

	require.NotNil(t, m.data.Query)
	assert.Equal(t, "ana", *m.data.Query)
	require.Len(t, m.data.Contacts, 1)
	assert.Equal(t, "Ana", m.data.Contacts[0].First)
	assert.Equal(t, "ana", m.inputHandler.TextInput().Value())
	assert.Equal(t, []string{"/", "/?query=ana"}, m.history.Entries())
	assert.False(t, m.sidebar().FirstSearch)
	assert.Contains(t, m.View(), "searching")

	// one back leaves the search entirely
	press(t, m, "esc", "[")
	assert.Nil(t, m.data.Query)
	assert.Len(t, m.data.Contacts, 2)
	assert.Equal(t, "", m.inputHandler.TextInput().Value())
	assert.Equal(t, 0, m.history.Index())

	press(t, m, "]")
	require.NotNil(t, m.data.Query)
	assert.Equal(t, "ana", m.inputHandler.TextInput().Value())
}

func TestClearingSearchKeepsEmptyQuery(t *testing.T) {
	m, _, _ := newTestModel(t, domain.Contact{First: "Ana"}, domain.Contact{First: "Ryan"})
	run(t, m, m.Init())

	press(t, m, "/", "a")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	run(t, m, cmd)

	require.NotNil(t, m.data.Query)
	assert.Equal(t, "", *m.data.Query)
	assert.Len(t, m.data.Contacts, 2)
	assert.Equal(t, []string{"/", "/?query="}, m.history.Entries())
}

func TestLoadingIndicatorOnlyForSearches(t *testing.T) {
	m, backend, _ := newTestModel(t, domain.Contact{First: "Ana"})
	run(t, m, m.Init())

	gate := make(chan struct{})
	backend.gates["query=a"] = gate

	cmd := m.processAction(inputtypes.UpdateTextAction{Text: "a"})
	sb := m.sidebar()
	assert.True(t, sb.SearchLoading)
	assert.True(t, sb.DetailLoading)

	close(gate)
	_, next := m.Update(cmd())
	assert.Nil(t, next)
	assert.False(t, m.sidebar().SearchLoading)

	// opening a contact is a navigation without a query
	m.processAction(inputtypes.OpenContactAction{ID: m.data.Contacts[0].ID})
	assert.False(t, m.sidebar().SearchLoading)
}

func TestStaleLoadIsDropped(t *testing.T) {
	m, backend, _ := newTestModel(t, domain.Contact{First: "Ana"}, domain.Contact{First: "Andy"})
	run(t, m, m.Init())

	gate := make(chan struct{})
	backend.gates["query=a"] = gate

	slow := m.processAction(inputtypes.UpdateTextAction{Text: "a"})
	fast := m.processAction(inputtypes.UpdateTextAction{Text: "ana"})

	_, next := m.Update(fast())
	assert.Nil(t, next)
	require.NotNil(t, m.data.Query)
	assert.Equal(t, "ana", *m.data.Query)

	close(gate)
	_, next = m.Update(slow())
	assert.Nil(t, next)
	assert.Equal(t, "ana", *m.data.Query)
	assert.Len(t, m.data.Contacts, 1)
	assert.Equal(t, "ana", m.inputHandler.TextInput().Value())
}

func TestNewContactNavigatesToEdit(t *testing.T) {
	m, _, store := newTestModel(t, domain.Contact{First: "Ana"})
	run(t, m, m.Init())
	press(t, m, "/", "a", "esc")

	cmd := m.processAction(inputtypes.NewContactAction{})
	sb := m.sidebar()
	assert.False(t, sb.SearchLoading, "a submission never shows the search spinner")
	assert.False(t, sb.DetailLoading)

	run(t, m, cmd)
	assert.Equal(t, 2, store.Len())
	require.NotNil(t, m.detail)
	assert.Equal(t, "/contacts/"+m.detail.ID+"/edit", m.location.Path)
	assert.Equal(t, "Created a new contact", m.status)
	assert.Len(t, m.history.Entries(), 3)
}

func TestOpenContactMarksActive(t *testing.T) {
	m, _, _ := newTestModel(t, domain.Contact{First: "Ana", Notes: "met at the conf"}, domain.Contact{First: "Ryan"})
	run(t, m, m.Init())

	press(t, m, "j", "enter")
	require.NotNil(t, m.detail)
	assert.Equal(t, m.data.Contacts[1].ID, m.detail.ID)
	assert.Equal(t, 1, m.cursor.Cursor())

	sb := m.sidebar()
	assert.Equal(t, "active", sb.Items[1].State.Class())
	assert.Equal(t, "", sb.Items[0].State.Class())
}

func TestLoadErrorKeepsRenderedData(t *testing.T) {
	m, backend, _ := newTestModel(t, domain.Contact{First: "Ana"})
	run(t, m, m.Init())

	backend.loadErr = errors.New("store offline")
	cmd := m.processAction(inputtypes.UpdateTextAction{Text: "x"})
	m.Update(cmd())

	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "store offline")
	assert.Nil(t, m.data.Query)
	assert.Len(t, m.data.Contacts, 1)
	assert.Equal(t, search.PhaseIdle, m.nav.State().Phase)
	assert.Equal(t, []string{"/"}, m.history.Entries())
}

func TestFailedBackKeepsDisplayedEntry(t *testing.T) {
	m, backend, _ := newTestModel(t, domain.Contact{First: "Ana"})
	run(t, m, m.Init())

	press(t, m, "enter")
	require.NotNil(t, m.detail)
	contact := "/contacts/" + m.detail.ID

	backend.loadErr = errors.New("store offline")
	press(t, m, "[")
	assert.True(t, m.statusErr)
	assert.Equal(t, contact, m.location.Path)
	assert.Equal(t, 1, m.history.Index())
	assert.Equal(t, contact, m.history.Current().String())

	backend.loadErr = nil
	press(t, m, "/", "a")
	assert.Equal(t, []string{"/", contact, "/?query=a"}, m.history.Entries())
}

func TestSearchSupersedesBackInFlight(t *testing.T) {
	m, backend, _ := newTestModel(t, domain.Contact{First: "Ana"}, domain.Contact{First: "Andy"})
	run(t, m, m.Init())
	press(t, m, "/", "a", "n", "a", "esc")
	require.Equal(t, []string{"/", "/?query=ana"}, m.history.Entries())

	backend.gates[""] = make(chan struct{})
	press(t, m, "[")
	assert.Equal(t, 0, m.history.Index())

	cmd := m.processAction(inputtypes.UpdateTextAction{Text: "an"})
	m.Update(cmd())
	assert.Equal(t, []string{"/", "/?query=an"}, m.history.Entries())
	assert.Equal(t, 1, m.history.Index())
	assert.Equal(t, "an", *m.data.Query)
}

func TestContactEventsRevalidateWhenIdle(t *testing.T) {
	m, backend, store := newTestModel(t, domain.Contact{First: "Ana"})
	run(t, m, m.Init())

	added, err := store.Add(context.Background(), domain.Contact{First: "Zed"})
	require.NoError(t, err)

	_, cmd := m.Update(EventMsg{Event: eventbus.ContactCreatedEvent{Contact: added}})
	require.NotNil(t, cmd)
	run(t, m, cmd)
	assert.Len(t, m.data.Contacts, 2)
	assert.Equal(t, []string{"/"}, m.history.Entries())

	// a navigation in flight already picks the change up
	backend.gates["query=z"] = make(chan struct{})
	m.processAction(inputtypes.UpdateTextAction{Text: "z"})
	_, cmd = m.Update(EventMsg{Event: eventbus.ContactDeletedEvent{ID: added.ID}})
	assert.Nil(t, cmd)
	m.Close()
}

func TestHelpTogglesWithoutProgram(t *testing.T) {
	m, _, _ := newTestModel(t)
	run(t, m, m.Init())

	press(t, m, "?")
	assert.True(t, m.help.ShowAll)
	press(t, m, "?")
	assert.False(t, m.help.ShowAll)
}

func TestNotesWithoutNotes(t *testing.T) {
	m, _, _ := newTestModel(t, domain.Contact{First: "Ana"})
	run(t, m, m.Init())

	press(t, m, "enter", "o")
	assert.Equal(t, "No notes for this contact", m.status)
}

func TestContactID(t *testing.T) {
	tests := []struct {
		path string
		id   string
		ok   bool
	}{
		{"/", "", false},
		{"/contacts/", "", false},
		{"/contacts/abc", "abc", true},
		{"/contacts/abc/edit", "abc", true},
		{"/static/app.css", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			id, ok := contactID(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.id, id)
		})
	}
}
