package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/mantrad/internal/views"
)

func (m Model) handleTodoKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Todo.mode != todoBrowse {
		return m.handleTaskInputKey(msg)
	}

	tasks := m.Ctx.Tasks()
	switch msg.String() {
	case "a", "enter":
		m.Todo.mode = todoAdding
		m.taskInput.SetValue("")
		m.taskInput.Focus()
		m.Status = StatusBar{Text: "add task", IsError: false}
	case "up", "k":
		if m.Todo.Cursor > 0 {
			m.Todo.Cursor--
		}
	case "down", "j":
		if m.Todo.Cursor < len(tasks)-1 {
			m.Todo.Cursor++
		}
	case "x":
		if err := m.Ctx.ToggleTask(m.Todo.Cursor); err != nil {
			m.setError(err)
		}
	case "e":
		if err := m.Ctx.BeginEdit(m.Todo.Cursor); err != nil {
			m.setError(err)
			return m, nil
		}
		m.Todo.mode = todoEditing
		m.taskInput.SetValue(tasks[m.Todo.Cursor].Text)
		m.taskInput.CursorEnd()
		m.taskInput.Focus()
	case "d":
		if err := m.Ctx.DeleteTask(m.Todo.Cursor); err != nil {
			m.setError(err)
			return m, nil
		}
		m.clampTodoCursor()
		m.Status = StatusBar{Text: "task deleted", IsError: false}
	case "J", "shift+down":
		if m.Todo.Cursor < len(tasks)-1 {
			if err := m.Ctx.MoveTask(m.Todo.Cursor, m.Todo.Cursor+1); err != nil {
				m.setError(err)
				return m, nil
			}
			m.Todo.Cursor++
		}
	case "K", "shift+up":
		if m.Todo.Cursor > 0 {
			if err := m.Ctx.MoveTask(m.Todo.Cursor, m.Todo.Cursor-1); err != nil {
				m.setError(err)
				return m, nil
			}
			m.Todo.Cursor--
		}
	case " ":
		cmd := m.toggleTimer(m.Ctx.Pomodoro())
		m.Status = StatusBar{Text: fmt.Sprintf("pomodoro: %s", m.Ctx.Pomodoro().Phase()), IsError: false}
		return m, cmd
	case "r":
		m.Ctx.Pomodoro().Reset()
		m.spinnerActive = false
		m.Status = StatusBar{Text: "pomodoro reset", IsError: false}
	case "+", "=":
		m.adjustPomodoro(1)
	case "-", "_":
		m.adjustPomodoro(-1)
	}
	return m, nil
}

func (m Model) handleTaskInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.Todo.mode == todoEditing {
			if err := m.Ctx.CancelEdit(m.Todo.Cursor); err != nil {
				m.setError(err)
			}
		}
		m.Todo.mode = todoBrowse
		m.taskInput.SetValue("")
		m.taskInput.Blur()
		return m, nil
	case "enter":
		text := m.taskInput.Value()
		if m.Todo.mode == todoEditing {
			if err := m.Ctx.SaveEdit(m.Todo.Cursor, text); err != nil {
				m.setError(err)
				return m, nil
			}
			m.Status = StatusBar{Text: "task updated", IsError: false}
		} else {
			if _, err := m.Ctx.AddTask(text); err != nil {
				m.setError(err)
				return m, nil
			}
			m.Todo.Cursor = len(m.Ctx.Tasks()) - 1
			m.Status = StatusBar{Text: fmt.Sprintf("added task: %s", text), IsError: false}
		}
		m.Todo.mode = todoBrowse
		m.taskInput.SetValue("")
		m.taskInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.taskInput, cmd = m.taskInput.Update(msg)
	return m, cmd
}

func (m *Model) adjustPomodoro(delta int) {
	mins, err := m.Ctx.AdjustPomodoro(delta)
	if err != nil {
		m.setError(err)
		return
	}
	m.spinnerActive = false
	m.Status = StatusBar{Text: fmt.Sprintf("pomodoro set to %d min", mins), IsError: false}
}

func (m *Model) clampTodoCursor() {
	n := len(m.Ctx.Tasks())
	if m.Todo.Cursor >= n {
		m.Todo.Cursor = n - 1
	}
	if m.Todo.Cursor < 0 {
		m.Todo.Cursor = 0
	}
}

func (m Model) renderTodoView() string {
	tasks := m.Ctx.Tasks()
	rows := make([]views.TaskRowData, 0, len(tasks))
	for i, t := range tasks {
		rows = append(rows, views.TaskRowData{
			Text:     t.Text,
			Done:     t.Done,
			Editing:  t.Editing,
			Selected: i == m.Todo.Cursor,
		})
	}
	p := m.Ctx.Pomodoro().Snapshot()
	spin := ""
	if m.spinnerActive {
		spin = m.pomoSpinner.View()
	}
	return views.RenderTodoPanel(views.TodoPanelData{
		InputView:    m.taskInput.View(),
		InputActive:  m.Todo.mode != todoBrowse,
		Tasks:        rows,
		Stats:        m.Ctx.TaskStats().String(),
		Timer:        formatClock(p.Remaining),
		Button:       m.pomodoroButton(),
		ProgressView: m.pomoProgress.ViewAs(p.Fraction),
		SpinnerView:  spin,
		Minutes:      m.Ctx.PomodoroMinutes(),
	})
}
