package modes

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"rolodex/internal/ui/input/types"
)

const ggTimeout = 500 * time.Millisecond

type NormalMode struct {
	lastKeyWasG bool
	lastGTime   time.Time
	now         func() time.Time
}

func NewNormalMode() *NormalMode {
	return &NormalMode{now: time.Now}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	m.lastKeyWasG = false
	return nil
}

func navigate(direction string) []types.Action {
	return []types.Action{types.NavigateAction{Direction: direction}}
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	key := msg.String()
	if key != "g" {
		m.lastKeyWasG = false
	}

	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true
	case tea.KeyUp:
		return navigate("up"), true
	case tea.KeyDown:
		return navigate("down"), true
	case tea.KeyPgUp:
		return navigate("pageup"), true
	case tea.KeyPgDown:
		return navigate("pagedown"), true
	case tea.KeyHome:
		return navigate("home"), true
	case tea.KeyEnd:
		return navigate("end"), true
	case tea.KeyEnter:
		if id := ctx.ContactIDAt(ctx.CurrentIndex()); id != "" {
			return []types.Action{types.OpenContactAction{ID: id}}, true
		}
		return nil, false
	}

	switch key {
	case "j":
		return navigate("down"), true
	case "k":
		return navigate("up"), true
	case "G":
		return navigate("end"), true
	case "g":
		if m.lastKeyWasG && m.now().Sub(m.lastGTime) < ggTimeout {
			m.lastKeyWasG = false
			return navigate("home"), true
		}
		m.lastKeyWasG = true
		m.lastGTime = m.now()
		return nil, true

	case "/":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch}}, true
	case "n":
		return []types.Action{types.NewContactAction{}}, true
	case "[", "alt+left":
		if ctx.CanGoBack() {
			return []types.Action{types.HistoryAction{Forward: false}}, true
		}
		return nil, true
	case "]", "alt+right":
		if ctx.CanGoForward() {
			return []types.Action{types.HistoryAction{Forward: true}}, true
		}
		return nil, true
	case "o":
		if ctx.HasDetail() {
			return []types.Action{types.OpenNotesAction{}}, true
		}
		return nil, true
	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true
	case "q":
		return []types.Action{types.QuitAction{Force: false}}, true
	}

	return nil, false
}
