package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/taskpad/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.modeBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Mode:     string(m.Mode),
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Search, Action: "search"},
		{Key: m.Keys.Palette, Action: "open command palette"},
		{Key: m.Keys.New, Action: "new task"},
		{Key: m.Keys.Refresh, Action: "refresh"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) modeBindings() []KeyBinding {
	switch m.Mode {
	case ModeList:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "h/l", Action: "previous/next page"},
			{Key: "enter", Action: "open task"},
		}
	case ModeSearch:
		return []KeyBinding{
			{Key: "enter/esc", Action: "leave search"},
		}
	case ModeDetail:
		return []KeyBinding{
			{Key: "e", Action: "edit task"},
			{Key: "d", Action: "delete task"},
			{Key: "esc", Action: "close"},
		}
	case ModeForm:
		return []KeyBinding{
			{Key: "tab/shift+tab", Action: "next/previous field"},
			{Key: "left/right", Action: "cycle status"},
			{Key: "ctrl+s", Action: "save"},
			{Key: "esc", Action: "cancel"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

// keyHints is the one-line summary shown in the footer.
func (m Model) keyHints() string {
	if m.Mode != ModeList {
		return ""
	}
	return m.helpModel.ShortHelpView(m.helpBindings())
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.modeBindings()))
	if m.Mode == ModeList {
		for _, kb := range m.globalBindings() {
			out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
		}
	}
	for _, kb := range m.modeBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
