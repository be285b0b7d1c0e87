package update

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/mantrad/internal/model"
	"github.com/sandeepkv93/mantrad/internal/views"
)

func (m Model) handleNotesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.archiveDraft()
		return m, nil
	case "ctrl+y":
		m.copyDraft()
		return m, nil
	case "tab":
		m.Notes.Focus = nextNotesFocus(m.Notes.Focus)
		m.Notes.ConfirmDelete = false
		m.focusNotes()
		return m, nil
	case "esc":
		m.Notes.Focus = focusArchive
		m.Notes.ConfirmDelete = false
		m.focusNotes()
		return m, nil
	}

	switch m.Notes.Focus {
	case focusTitle:
		var cmd tea.Cmd
		m.noteTitle, cmd = m.noteTitle.Update(msg)
		if v := m.noteTitle.Value(); v != m.Ctx.Draft().Title {
			if err := m.Ctx.SetDraftTitle(v); err != nil {
				m.setError(err)
			}
		}
		return m, cmd
	case focusBody:
		var cmd tea.Cmd
		m.noteBody, cmd = m.noteBody.Update(msg)
		if v := m.noteBody.Value(); v != m.Ctx.Draft().Body {
			if err := m.Ctx.SetDraftBody(v); err != nil {
				m.setError(err)
			}
		}
		return m, cmd
	}
	return m.handleArchiveKey(msg)
}

func (m Model) handleArchiveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	notes := m.Ctx.Archive()
	if m.Notes.ConfirmDelete {
		m.Notes.ConfirmDelete = false
		if msg.String() != "y" {
			m.Status = StatusBar{Text: "delete cancelled", IsError: false}
			return m, nil
		}
		if err := m.Ctx.DeleteArchived(m.Notes.ArchiveCursor); err != nil {
			m.setError(err)
			return m, nil
		}
		m.clampArchiveCursor()
		m.Status = StatusBar{Text: "archived note deleted", IsError: false}
		return m, nil
	}

	switch msg.String() {
	case "i":
		m.Notes.Focus = focusBody
		m.focusNotes()
	case "up", "k":
		if m.Notes.ArchiveCursor > 0 {
			m.Notes.ArchiveCursor--
		}
	case "down", "j":
		if m.Notes.ArchiveCursor < len(notes)-1 {
			m.Notes.ArchiveCursor++
		}
	case "o", "enter":
		if m.Notes.ArchiveCursor >= len(notes) {
			return m, nil
		}
		m.openArchived(notes[m.Notes.ArchiveCursor].ID)
	case "d":
		if m.Notes.ArchiveCursor < len(notes) {
			m.Notes.ConfirmDelete = true
		}
	case "J", "shift+down":
		if m.Notes.ArchiveCursor < len(notes)-1 {
			if err := m.Ctx.MoveArchived(m.Notes.ArchiveCursor, m.Notes.ArchiveCursor+1); err != nil {
				m.setError(err)
				return m, nil
			}
			m.Notes.ArchiveCursor++
		}
	case "K", "shift+up":
		if m.Notes.ArchiveCursor > 0 {
			if err := m.Ctx.MoveArchived(m.Notes.ArchiveCursor, m.Notes.ArchiveCursor-1); err != nil {
				m.setError(err)
				return m, nil
			}
			m.Notes.ArchiveCursor--
		}
	}
	return m, nil
}

func (m *Model) archiveDraft() {
	note, err := m.Ctx.ArchiveDraft()
	if errors.Is(err, model.ErrNothingToArchive) {
		text := m.tr.T("Nothing to archive")
		m.Status = StatusBar{Text: text, IsError: true}
		m.notify("Notes", text, "alert")
		return
	}
	if err != nil {
		m.setError(err)
		return
	}
	m.noteTitle.SetValue("")
	m.noteBody.SetValue("")
	m.Notes.ArchiveCursor = 0
	m.Status = StatusBar{Text: fmt.Sprintf("archived: %s", note.Title), IsError: false}
}

func (m *Model) openArchived(id int64) {
	if err := m.Ctx.OpenArchived(id); err != nil {
		m.setError(err)
		return
	}
	draft := m.Ctx.Draft()
	m.noteTitle.SetValue(draft.Title)
	m.noteBody.SetValue(draft.Body)
	m.Notes.Focus = focusBody
	m.focusNotes()
	m.Status = StatusBar{Text: fmt.Sprintf("opened: %s", draft.Title), IsError: false}
}

func (m *Model) copyDraft() {
	body := m.Ctx.Draft().Body
	if strings.TrimSpace(body) == "" {
		m.Status = StatusBar{Text: "nothing to copy", IsError: true}
		return
	}
	if err := m.copyText(body); err != nil {
		m.setError(fmt.Errorf("copy note: %w", err))
		return
	}
	m.Status = StatusBar{Text: "note copied to clipboard", IsError: false}
}

func (m *Model) focusNotes() {
	m.noteTitle.Blur()
	m.noteBody.Blur()
	switch m.Notes.Focus {
	case focusTitle:
		m.noteTitle.Focus()
	case focusBody:
		m.noteBody.Focus()
	}
}

func (m *Model) clampArchiveCursor() {
	n := len(m.Ctx.Archive())
	if m.Notes.ArchiveCursor >= n {
		m.Notes.ArchiveCursor = n - 1
	}
	if m.Notes.ArchiveCursor < 0 {
		m.Notes.ArchiveCursor = 0
	}
}

func nextNotesFocus(f notesFocus) notesFocus {
	switch f {
	case focusTitle:
		return focusBody
	case focusBody:
		return focusArchive
	default:
		return focusTitle
	}
}

func archiveRows(notes []model.ArchivedNote) []table.Row {
	rows := make([]table.Row, 0, len(notes))
	for i, n := range notes {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			n.Title,
			n.Date.Local().Format("2006-01-02"),
			strings.ReplaceAll(n.Preview(), "\n", " "),
		})
	}
	return rows
}

func (m Model) renderNotesView() string {
	confirm := ""
	notes := m.Ctx.Archive()
	if m.Notes.ConfirmDelete && m.Notes.ArchiveCursor < len(notes) {
		confirm = notes[m.Notes.ArchiveCursor].Title
	}
	return views.RenderNotesPanel(views.NotesPanelData{
		TitleView:     m.noteTitle.View(),
		BodyView:      m.noteBody.View(),
		TableView:     m.archiveTable.View(),
		Focus:         string(m.Notes.Focus),
		ConfirmDelete: confirm,
	})
}
