package update

import (
	"strings"

	"github.com/sandeepkv93/mantrad/internal/views"
)

const maxNotifications = 40

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

// syncBubbleData copies context state into the bubble components before a
// frame is rendered.
func (m *Model) syncBubbleData() {
	notes := m.Ctx.Archive()
	m.archiveTable.SetRows(archiveRows(notes))
	if len(notes) > 0 {
		cursor := m.Notes.ArchiveCursor
		if cursor >= len(notes) {
			cursor = len(notes) - 1
		}
		m.archiveTable.SetCursor(cursor)
	}
	if m.Notes.Focus == focusArchive {
		m.archiveTable.Focus()
	} else {
		m.archiveTable.Blur()
	}

	preview := m.Ctx.Draft().Body
	if strings.TrimSpace(preview) == "" && len(notes) > 0 && m.Notes.ArchiveCursor < len(notes) && m.Notes.Focus == focusArchive {
		preview = notes[m.Notes.ArchiveCursor].Content
	}
	m.notePreview.SetContent(views.RenderMarkdown(preview, string(m.Ctx.Theme())))
	m.helpModel.ShowAll = m.HelpVisible
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    m.Ctx.Clock().Now().UTC(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > maxNotifications {
		m.Notifications = m.Notifications[len(m.Notifications)-maxNotifications:]
	}
	if m.desktopEnabled && m.notifier != nil {
		_ = m.notifier.Send(n)
	}
}

func (m *Model) setError(err error) {
	if err == nil {
		return
	}
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
	m.notify("Error", err.Error(), "error")
}
