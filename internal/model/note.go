package model

import (
	"fmt"
	"strings"
	"time"
)

const untitledNote = "Untitled"

// NoteDraft is the note currently being edited.
type NoteDraft struct {
	Title string
	Body  string
}

func (d NoteDraft) IsBlank() bool {
	return strings.TrimSpace(d.Title) == "" && strings.TrimSpace(d.Body) == ""
}

type ArchivedNote struct {
	ID      int64     `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Date    time.Time `json:"date"`
}

// Preview returns the first 60 runes of the content.
func (n ArchivedNote) Preview() string {
	if n.Content == "" {
		return "No content"
	}
	r := []rune(n.Content)
	if len(r) > 60 {
		return string(r[:60])
	}
	return n.Content
}

// NoteArchive keeps archived notes newest first.
type NoteArchive struct {
	notes []ArchivedNote
}

func NewNoteArchive(notes []ArchivedNote) *NoteArchive {
	a := &NoteArchive{}
	a.notes = append(a.notes, notes...)
	return a
}

func (a *NoteArchive) Notes() []ArchivedNote {
	out := make([]ArchivedNote, len(a.notes))
	copy(out, a.notes)
	return out
}

func (a *NoteArchive) Len() int { return len(a.notes) }

// Archive files draft at the top of the archive. IDs are epoch
// milliseconds, bumped when two notes land in the same millisecond.
func (a *NoteArchive) Archive(draft NoteDraft, now time.Time) (ArchivedNote, error) {
	if draft.IsBlank() {
		return ArchivedNote{}, ErrNothingToArchive
	}
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		title = untitledNote
	}
	id := now.UnixMilli()
	for _, n := range a.notes {
		if n.ID >= id {
			id = n.ID + 1
		}
	}
	note := ArchivedNote{
		ID:      id,
		Title:   title,
		Content: strings.TrimSpace(draft.Body),
		Date:    now.UTC(),
	}
	a.notes = append([]ArchivedNote{note}, a.notes...)
	return note, nil
}

func (a *NoteArchive) Delete(i int) error {
	if i < 0 || i >= len(a.notes) {
		return fmt.Errorf("%w: note %d", ErrIndexOutOfRange, i+1)
	}
	a.notes = append(a.notes[:i], a.notes[i+1:]...)
	return nil
}

func (a *NoteArchive) Move(from, to int) error {
	var err error
	a.notes, err = move(a.notes, from, to)
	return err
}

func (a *NoteArchive) Find(id int64) (ArchivedNote, bool) {
	for _, n := range a.notes {
		if n.ID == id {
			return n, true
		}
	}
	return ArchivedNote{}, false
}
