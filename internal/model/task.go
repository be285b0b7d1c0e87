package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyText        = errors.New("model: text is required")
	ErrCapacity         = errors.New("model: list is full")
	ErrIndexOutOfRange  = errors.New("model: index out of range")
	ErrNothingToArchive = errors.New("model: nothing to archive")
)

const DefaultTaskCapacity = 10

type Task struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Done    bool   `json:"done"`
	Editing bool   `json:"editing"`
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Text) == "" {
		return fmt.Errorf("%w: task", ErrEmptyText)
	}
	return nil
}

// TaskList is an ordered task list with a fixed capacity.
type TaskList struct {
	items    []Task
	capacity int
}

func NewTaskList(capacity int, items []Task) *TaskList {
	if capacity <= 0 {
		capacity = DefaultTaskCapacity
	}
	l := &TaskList{capacity: capacity}
	for _, it := range items {
		if strings.TrimSpace(it.Text) == "" {
			continue
		}
		if it.ID == "" {
			it.ID = uuid.NewString()
		}
		it.Editing = false
		l.items = append(l.items, it)
	}
	return l
}

func (l *TaskList) Items() []Task {
	out := make([]Task, len(l.items))
	copy(out, l.items)
	return out
}

func (l *TaskList) Len() int      { return len(l.items) }
func (l *TaskList) Capacity() int { return l.capacity }

// Add appends text as a new task. Text is stored as typed; only the blank
// check trims it.
func (l *TaskList) Add(text string) (Task, error) {
	if strings.TrimSpace(text) == "" {
		return Task{}, fmt.Errorf("%w: task", ErrEmptyText)
	}
	if len(l.items) >= l.capacity {
		return Task{}, fmt.Errorf("%w: only %d tasks allowed", ErrCapacity, l.capacity)
	}
	t := Task{ID: uuid.NewString(), Text: text}
	l.items = append(l.items, t)
	return t, nil
}

func (l *TaskList) Toggle(i int) error {
	if err := l.check(i); err != nil {
		return err
	}
	l.items[i].Done = !l.items[i].Done
	return nil
}

func (l *TaskList) Delete(i int) error {
	if err := l.check(i); err != nil {
		return err
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return nil
}

func (l *TaskList) BeginEdit(i int) error {
	if err := l.check(i); err != nil {
		return err
	}
	l.items[i].Editing = true
	return nil
}

func (l *TaskList) CancelEdit(i int) error {
	if err := l.check(i); err != nil {
		return err
	}
	l.items[i].Editing = false
	return nil
}

// SaveEdit replaces the text of task i with the trimmed text.
func (l *TaskList) SaveEdit(i int, text string) error {
	if err := l.check(i); err != nil {
		return err
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return fmt.Errorf("%w: task", ErrEmptyText)
	}
	l.items[i].Text = trimmed
	l.items[i].Editing = false
	return nil
}

// Move reorders task from to position to. Moving onto itself is a no-op.
func (l *TaskList) Move(from, to int) error {
	var err error
	l.items, err = move(l.items, from, to)
	return err
}

type TaskStats struct {
	Completed int
	Total     int
	SlotsLeft int
}

func (l *TaskList) Stats() TaskStats {
	done := 0
	for _, t := range l.items {
		if t.Done {
			done++
		}
	}
	return TaskStats{Completed: done, Total: len(l.items), SlotsLeft: l.capacity - len(l.items)}
}

func (s TaskStats) String() string {
	return fmt.Sprintf("Completed %d of %d tasks (%d slots left)", s.Completed, s.Total, s.SlotsLeft)
}

func (l *TaskList) check(i int) error {
	if i < 0 || i >= len(l.items) {
		return fmt.Errorf("%w: task %d", ErrIndexOutOfRange, i+1)
	}
	return nil
}

func move[T any](items []T, from, to int) ([]T, error) {
	if from < 0 || from >= len(items) || to < 0 || to >= len(items) {
		return items, fmt.Errorf("%w: move %d to %d", ErrIndexOutOfRange, from+1, to+1)
	}
	if from == to {
		return items, nil
	}
	moved := items[from]
	items = append(items[:from], items[from+1:]...)
	items = append(items[:to], append([]T{moved}, items[to:]...)...)
	return items, nil
}
