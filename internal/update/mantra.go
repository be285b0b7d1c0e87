package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/mantrad/internal/model"
	"github.com/sandeepkv93/mantrad/internal/views"
)

var presetKeys = map[string]int{
	"[":  20,
	"]":  40,
	"\\": 60,
}

func (m Model) handleMantraKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tm := m.Ctx.Mantra()
	switch k := msg.String(); k {
	case " ", "enter":
		cmd := m.toggleTimer(tm)
		m.Status = StatusBar{Text: fmt.Sprintf("mantra: %s", tm.Phase()), IsError: false}
		return m, cmd
	case "r":
		tm.Reset()
		m.Status = StatusBar{Text: "mantra reset", IsError: false}
	default:
		secs, ok := presetKeys[k]
		if !ok {
			return m, nil
		}
		if err := m.Ctx.SetMantraDuration(secs); err != nil {
			m.setError(err)
			return m, nil
		}
		m.Status = StatusBar{Text: fmt.Sprintf("mantra duration %ds", secs), IsError: false}
	}
	return m, nil
}

func (m Model) renderMantraView() string {
	p := m.Ctx.Mantra().Snapshot()
	return views.RenderMantraPanel(views.MantraPanelData{
		Lines:       m.Ctx.MantraLines(),
		Fraction:    p.Fraction,
		Color:       m.Ctx.MantraColor(),
		Remaining:   formatSeconds(p.Remaining),
		Button:      m.mantraButton(),
		DurationSec: int(m.Ctx.Mantra().Duration() / time.Second),
		Presets:     model.MantraPresets,
	})
}
