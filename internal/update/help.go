package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/mantrad/internal/views"
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
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Mantra, Action: "switch to Mantra"},
		{Key: m.Keys.Todo, Action: "switch to Todo"},
		{Key: m.Keys.Notes, Action: "switch to Notes"},
		{Key: m.Keys.More, Action: "switch to More"},
		{Key: "/", Action: "open command palette"},
		{Key: m.Keys.Theme, Action: "toggle theme"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewMantra:
		return []KeyBinding{
			{Key: "space", Action: "start/reset mantra timer"},
			{Key: "r", Action: "reset timer"},
			{Key: "[ ] \\", Action: "20s / 40s / 60s preset"},
		}
	case ViewTodo:
		return []KeyBinding{
			{Key: "a", Action: "add task"},
			{Key: "j/k", Action: "move cursor"},
			{Key: "x", Action: "toggle done"},
			{Key: "e/d", Action: "edit / delete task"},
			{Key: "J/K", Action: "move task down / up"},
			{Key: "space", Action: "start/pause pomodoro"},
			{Key: "+/-", Action: "adjust pomodoro minutes"},
		}
	case ViewNotes:
		return []KeyBinding{
			{Key: "tab", Action: "cycle title / body / archive"},
			{Key: "ctrl+s", Action: "archive note"},
			{Key: "ctrl+y", Action: "copy note"},
			{Key: "o", Action: "open archived note"},
			{Key: "d", Action: "delete archived note"},
			{Key: "J/K", Action: "reorder archive"},
		}
	case ViewMore:
		return []KeyBinding{
			{Key: "e", Action: "edit mantra"},
			{Key: "ctrl+s", Action: "save mantra"},
			{Key: "esc", Action: "discard edit"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
