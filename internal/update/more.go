package update

import (
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/mantrad/internal/views"
)

type keyLister interface {
	Keys(prefix string) ([]string, error)
}

// storeKeyCache holds the store's key list for the More tab. It is shared
// by every copy of the Model and reloaded only after it is invalidated.
type storeKeyCache struct {
	keys  []string
	stale bool
}

func (c *storeKeyCache) invalidate() { c.stale = true }

func (c *storeKeyCache) load(s any) []string {
	if !c.stale {
		return c.keys
	}
	c.stale = false
	c.keys = nil
	if kl, ok := s.(keyLister); ok {
		if all, err := kl.Keys(""); err == nil {
			sort.Strings(all)
			c.keys = all
		}
	}
	return c.keys
}

func (m Model) handleMoreKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.EditingMantra {
		if msg.String() == "e" || msg.String() == "enter" {
			m.EditingMantra = true
			m.mantraEditor.SetValue(m.Ctx.MantraText())
			m.mantraEditor.Focus()
			m.Status = StatusBar{Text: "editing mantra", IsError: false}
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.EditingMantra = false
		m.mantraEditor.SetValue(m.Ctx.MantraText())
		m.mantraEditor.Blur()
		m.Status = StatusBar{Text: "mantra edit cancelled", IsError: false}
		return m, nil
	case "ctrl+s":
		if err := m.Ctx.SetMantraText(m.mantraEditor.Value()); err != nil {
			m.setError(err)
			m.notify("Mantra", "Please enter a mantra.", "alert")
			return m, nil
		}
		m.EditingMantra = false
		m.mantraEditor.SetValue(m.Ctx.MantraText())
		m.mantraEditor.Blur()
		m.Status = StatusBar{Text: "Mantra updated!", IsError: false}
		m.notify("Mantra", "Mantra updated!", "info")
		return m, nil
	}
	var cmd tea.Cmd
	m.mantraEditor, cmd = m.mantraEditor.Update(msg)
	return m, cmd
}

func (m *Model) toggleTheme() {
	theme, err := m.Ctx.ToggleTheme()
	if err != nil {
		m.setError(err)
		return
	}
	m.Status = StatusBar{Text: "theme: " + string(theme), IsError: false}
}

func (m Model) renderMoreView() string {
	keys := m.storeKeys.load(m.Ctx.Store())
	return views.RenderMorePanel(views.MorePanelData{
		EditorView:  m.mantraEditor.View(),
		Editing:     m.EditingMantra,
		Theme:       string(m.Ctx.Theme()),
		StoragePath: m.storageLabel,
		Language:    m.tr.Lang(),
		Keys:        keys,
	})
}
