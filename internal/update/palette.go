package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/mantrad/internal/commands"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
		return m, cmd
	}
	return m, nil
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.closePalette()
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			task, err := m.Ctx.AddTask(a.Text)
			if err != nil {
				return commands.Result{}, err
			}
			m.CurrentView = ViewTodo
			return commands.Result{Message: fmt.Sprintf("added task: %s", task.Text)}, nil
		},
		Edit: func(e commands.EditArgs) (commands.Result, error) {
			if err := m.Ctx.SaveEdit(e.Index, e.Text); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("task #%d updated", e.Index+1)}, nil
		},
		Done: func(i commands.IndexArgs) (commands.Result, error) {
			if err := m.Ctx.ToggleTask(i.Index); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: m.Ctx.TaskStats().String()}, nil
		},
		Delete: func(i commands.IndexArgs) (commands.Result, error) {
			if err := m.Ctx.DeleteTask(i.Index); err != nil {
				return commands.Result{}, err
			}
			m.clampTodoCursor()
			return commands.Result{Message: fmt.Sprintf("task #%d deleted", i.Index+1)}, nil
		},
		Move: func(mv commands.MoveArgs) (commands.Result, error) {
			if err := m.Ctx.MoveTask(mv.From, mv.To); err != nil {
				return commands.Result{}, err
			}
			m.Todo.Cursor = mv.To
			return commands.Result{Message: fmt.Sprintf("task moved to #%d", mv.To+1)}, nil
		},
		Mantra: func(a commands.MantraArgs) (commands.Result, error) {
			if err := m.Ctx.SetMantraDuration(a.Seconds); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("mantra duration %ds", a.Seconds)}, nil
		},
		Pomo: func(p commands.PomoArgs) (commands.Result, error) {
			mins, err := m.Ctx.AdjustPomodoro(p.Delta)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("pomodoro %d min", mins)}, nil
		},
		Archive: func() (commands.Result, error) {
			note, err := m.Ctx.ArchiveDraft()
			if err != nil {
				return commands.Result{}, err
			}
			m.noteTitle.SetValue("")
			m.noteBody.SetValue("")
			m.Notes.ArchiveCursor = 0
			return commands.Result{Message: fmt.Sprintf("archived: %s", note.Title)}, nil
		},
		Open: func(i commands.IndexArgs) (commands.Result, error) {
			notes := m.Ctx.Archive()
			if i.Index >= len(notes) {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no archived note #%d", i.Index+1)}
			}
			m.CurrentView = ViewNotes
			m.Notes.ArchiveCursor = i.Index
			m.openArchived(notes[i.Index].ID)
			return commands.Result{Message: fmt.Sprintf("opened: %s", notes[i.Index].Title)}, nil
		},
		Theme: func() (commands.Result, error) {
			theme, err := m.Ctx.ToggleTheme()
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "theme: " + string(theme)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
	} else {
		m.Status = StatusBar{Text: res.Message, IsError: false}
		m.notify("Command", res.Message, "info")
	}

	m.closePalette()
	return m
}
