package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/mantrad/internal/countdown"
	"github.com/sandeepkv93/mantrad/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, 4)
	for _, tm := range []*countdown.Timer{m.Ctx.Mantra(), m.Ctx.Pomodoro()} {
		if tm.Phase() == countdown.PhaseRunning {
			cmds = append(cmds, tickCmd(tm))
		}
	}
	if m.spinnerActive {
		cmds = append(cmds, m.pomoSpinner.Tick)
	}
	if m.Alarms != nil {
		cmds = append(cmds, waitForAlarmCmd(m.Alarms.C()))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		if m.capturingText() {
			return m.handleViewKey(typed)
		}

		switch keyStr := typed.String(); keyStr {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.SetValue("")
			m.commandInput.Focus()
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Mantra:
			m.CurrentView = ViewMantra
			return m, nil
		case m.Keys.Todo:
			m.CurrentView = ViewTodo
			return m, nil
		case m.Keys.Notes:
			m.CurrentView = ViewNotes
			m.focusNotes()
			return m, nil
		case m.Keys.More:
			m.CurrentView = ViewMore
			m.storeKeys.invalidate()
			return m, nil
		case m.Keys.Theme:
			m.toggleTheme()
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown", IsError: false}
			} else {
				m.Status = StatusBar{Text: "help hidden", IsError: false}
			}
			return m, nil
		case m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		return m.handleViewKey(typed)
	case tea.FocusMsg:
		return m.onTerminalFocus()
	case tea.BlurMsg:
		return m, nil
	case TimerTickMsg:
		return m.onTimerTick(typed)
	case AlarmMsg:
		return m.onAlarm(typed)
	case spinner.TickMsg:
		if m.spinnerActive {
			var cmd tea.Cmd
			m.pomoSpinner, cmd = m.pomoSpinner.Update(typed)
			return m, cmd
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
			switch typed.View {
			case ViewNotes:
				m.focusNotes()
			case ViewMore:
				m.storeKeys.invalidate()
			}
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.setError(typed.Err)
		return m, nil
	}

	return m, nil
}

// capturingText reports whether keystrokes belong to a text field rather
// than the global key map.
func (m Model) capturingText() bool {
	switch m.CurrentView {
	case ViewTodo:
		return m.Todo.mode != todoBrowse
	case ViewNotes:
		return m.Notes.Focus != focusArchive
	case ViewMore:
		return m.EditingMantra
	default:
		return false
	}
}

func (m Model) handleViewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.CurrentView {
	case ViewMantra:
		return m.handleMantraKey(msg)
	case ViewTodo:
		return m.handleTodoKey(msg)
	case ViewNotes:
		return m.handleNotesKey(msg)
	case ViewMore:
		return m.handleMoreKey(msg)
	}
	return m, nil
}

func (m Model) View() string {
	m.syncBubbleData()

	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewMantra:
		leftPane = m.renderMantraView()
	case ViewTodo:
		leftPane = m.renderTodoView()
	case ViewNotes:
		leftPane = m.renderNotesView()
		rightPane = views.RenderNotePreview(m.notePreview.View())
	case ViewMore:
		leftPane = m.renderMoreView()
	}
	rightPane = strings.TrimSpace(strings.Join([]string{rightPane, m.renderCommandPalette(), m.renderHelpIfVisible()}, "\n"))

	names := make([]string, 0, len(tabs))
	for _, v := range tabs {
		names = append(names, string(v))
	}
	theme := string(m.Ctx.Theme())
	return views.RenderApp(views.AppData{
		Theme:        theme,
		Tabs:         views.RenderTabs(theme, names, string(m.CurrentView)),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		Notification: m.renderNotificationsView(),
		Footer:       fmt.Sprintf("keys: %s-%s tabs | / cmd | %s theme | %s help | %s quit", m.Keys.Mantra, m.Keys.More, m.Keys.Theme, m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewMantra, ViewTodo, ViewNotes, ViewMore:
		return true
	default:
		return false
	}
}
