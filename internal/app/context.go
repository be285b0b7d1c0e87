// Package app holds the application context: the single owner of both
// countdowns, the task list, the note draft and archive, the mantra text
// and the theme. Every mutation is written through to the store before
// listeners are notified.
package app

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/sandeepkv93/mantrad/internal/clock"
	"github.com/sandeepkv93/mantrad/internal/config"
	"github.com/sandeepkv93/mantrad/internal/countdown"
	"github.com/sandeepkv93/mantrad/internal/model"
	"github.com/sandeepkv93/mantrad/internal/scheduler"
	"github.com/sandeepkv93/mantrad/internal/storage"
)

const (
	KeyTasks         = "tasks"
	KeyArchivedNotes = "archivedNotes"
	KeyNoteBody      = "notes"
	KeyNoteTitle     = "noteTitle"
	KeyCustomMantra  = "customMantra"
	KeyTheme         = "theme"

	MantraPrefix   = "mantra"
	PomodoroPrefix = "pomodoro"
)

var ErrUnknownTimer = errors.New("app: unknown timer")

type ListKind string

const (
	ListTasks   ListKind = "tasks"
	ListArchive ListKind = "archive"
	ListDraft   ListKind = "draft"
	ListMantra  ListKind = "mantra"
	ListTheme   ListKind = "theme"
)

// Alarms is the subset of scheduler.Engine the context needs.
type Alarms interface {
	Schedule(scheduler.Alarm) error
	Cancel(id string) bool
}

type Context struct {
	store storage.Store
	clock clock.Clock
	cfg   config.RuntimeConfig

	mantra   *countdown.Timer
	pomodoro *countdown.Timer
	alarms   Alarms

	tasks      *model.TaskList
	draft      model.NoteDraft
	archive    *model.NoteArchive
	mantraText string
	theme      model.Theme

	listeners []func(ListKind)
}

// New loads persisted state from store and builds both countdowns. Call
// ResumeTimers afterwards to pick up runs from a previous process.
func New(store storage.Store, clk clock.Clock, cfg config.RuntimeConfig) (*Context, error) {
	if store == nil {
		store = storage.NewMemoryStore()
	}
	if clk == nil {
		clk = clock.System
	}
	cfg = cfg.Normalize()

	c := &Context{store: store, clock: clk, cfg: cfg}

	mantraDur := countdown.LoadDuration(store, MantraPrefix, time.Duration(cfg.MantraSeconds)*time.Second)
	mantra, err := countdown.New(countdown.Config{
		Duration:     mantraDur,
		KeyPrefix:    MantraPrefix,
		Policy:       countdown.ResetOnly,
		TickInterval: cfg.FrameInterval,
	}, clk, store)
	if err != nil {
		return nil, fmt.Errorf("build mantra timer: %w", err)
	}

	pomoDur := countdown.LoadDuration(store, PomodoroPrefix, time.Duration(cfg.PomodoroMinutes)*time.Minute)
	pomodoro, err := countdown.New(countdown.Config{
		Duration:     pomoDur,
		KeyPrefix:    PomodoroPrefix,
		Policy:       countdown.ResumableFromMidpoint,
		TickInterval: time.Second,
	}, clk, store)
	if err != nil {
		return nil, fmt.Errorf("build pomodoro timer: %w", err)
	}
	c.mantra = mantra
	c.pomodoro = pomodoro
	for _, tm := range []*countdown.Timer{mantra, pomodoro} {
		tm := tm
		tm.OnPhaseChange(func(countdown.Phase) { c.arm(tm) })
	}

	var tasks []model.Task
	storage.GetJSON(store, KeyTasks, &tasks)
	c.tasks = model.NewTaskList(cfg.TaskCapacity, tasks)

	var notes []model.ArchivedNote
	storage.GetJSON(store, KeyArchivedNotes, &notes)
	c.archive = model.NewNoteArchive(notes)

	c.draft.Title, _ = store.Get(KeyNoteTitle)
	c.draft.Body, _ = store.Get(KeyNoteBody)

	c.mantraText = model.DefaultMantra
	if v, ok := store.Get(KeyCustomMantra); ok {
		if text, err := model.NormalizeMantra(v); err == nil {
			c.mantraText = text
		}
	}
	raw, _ := store.Get(KeyTheme)
	c.theme = model.ParseTheme(raw)
	return c, nil
}

func (c *Context) OnListChanged(fn func(ListKind)) {
	if fn != nil {
		c.listeners = append(c.listeners, fn)
	}
}

func (c *Context) Config() config.RuntimeConfig { return c.cfg }

func (c *Context) Store() storage.Store { return c.store }

func (c *Context) Clock() clock.Clock { return c.clock }

func (c *Context) Mantra() *countdown.Timer { return c.mantra }

func (c *Context) Pomodoro() *countdown.Timer { return c.pomodoro }

// Timer looks a countdown up by key prefix.
func (c *Context) Timer(id string) (*countdown.Timer, error) {
	switch id {
	case MantraPrefix:
		return c.mantra, nil
	case PomodoroPrefix:
		return c.pomodoro, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimer, id)
	}
}

// AttachAlarms arms deadline alarms for both countdowns, starting with
// any run already in progress.
func (c *Context) AttachAlarms(a Alarms) {
	c.alarms = a
	c.arm(c.mantra)
	c.arm(c.pomodoro)
}

// ResumeTimers reconciles both countdowns with their checkpoints. It
// returns the timers whose tick loop must be restarted.
func (c *Context) ResumeTimers() []*countdown.Timer {
	restart := make([]*countdown.Timer, 0, 2)
	for _, tm := range []*countdown.Timer{c.mantra, c.pomodoro} {
		if tm.Resume() {
			c.arm(tm)
			restart = append(restart, tm)
		}
	}
	return restart
}

// HandleAlarm resumes the countdown an alarm was armed for. Alarms from a
// previous run are ignored. It reports whether the timer's tick loop must
// be restarted.
func (c *Context) HandleAlarm(a scheduler.Alarm) (*countdown.Timer, bool) {
	tm, err := c.Timer(a.ID)
	if err != nil {
		log.Printf("app: alarm: %v", err)
		return nil, false
	}
	if tm.Phase() != countdown.PhaseRunning || tm.Generation() != a.Generation {
		return tm, false
	}
	restart := tm.Resume()
	if restart {
		c.arm(tm)
	}
	return tm, restart
}

func (c *Context) arm(tm *countdown.Timer) {
	if c.alarms == nil {
		return
	}
	id := tm.Config().KeyPrefix
	deadline, ok := tm.Deadline()
	if !ok {
		c.alarms.Cancel(id)
		return
	}
	if err := c.alarms.Schedule(scheduler.Alarm{ID: id, Generation: tm.Generation(), TriggerAt: deadline}); err != nil {
		log.Printf("app: arm %s alarm: %v", id, err)
	}
}

// Tasks

func (c *Context) Tasks() []model.Task { return c.tasks.Items() }

func (c *Context) TaskStats() model.TaskStats { return c.tasks.Stats() }

func (c *Context) TaskCapacity() int { return c.tasks.Capacity() }

func (c *Context) AddTask(text string) (model.Task, error) {
	t, err := c.tasks.Add(text)
	if err != nil {
		return model.Task{}, err
	}
	return t, c.saveTasks()
}

func (c *Context) ToggleTask(i int) error {
	return c.mutateTasks(func() error { return c.tasks.Toggle(i) })
}

func (c *Context) DeleteTask(i int) error {
	return c.mutateTasks(func() error { return c.tasks.Delete(i) })
}

func (c *Context) BeginEdit(i int) error {
	return c.mutateTasks(func() error { return c.tasks.BeginEdit(i) })
}

func (c *Context) CancelEdit(i int) error {
	return c.mutateTasks(func() error { return c.tasks.CancelEdit(i) })
}

func (c *Context) SaveEdit(i int, text string) error {
	return c.mutateTasks(func() error { return c.tasks.SaveEdit(i, text) })
}

func (c *Context) MoveTask(from, to int) error {
	return c.mutateTasks(func() error { return c.tasks.Move(from, to) })
}

func (c *Context) mutateTasks(fn func() error) error {
	if err := fn(); err != nil {
		return err
	}
	return c.saveTasks()
}

func (c *Context) saveTasks() error {
	if err := storage.SetJSON(c.store, KeyTasks, c.tasks.Items()); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	c.notify(ListTasks)
	return nil
}

// Mantra

func (c *Context) MantraText() string { return c.mantraText }

func (c *Context) MantraLines() []string { return model.MantraLines(c.mantraText) }

func (c *Context) SetMantraText(text string) error {
	trimmed, err := model.NormalizeMantra(text)
	if err != nil {
		return err
	}
	c.mantraText = trimmed
	if err := c.store.Set(KeyCustomMantra, trimmed); err != nil {
		return fmt.Errorf("save mantra: %w", err)
	}
	c.notify(ListMantra)
	return nil
}

func (c *Context) SetMantraDuration(seconds int) error {
	if int64(seconds) > math.MaxInt64/int64(time.Second) {
		return fmt.Errorf("mantra duration %ds: %w", seconds, countdown.ErrInvalidDuration)
	}
	if err := c.mantra.SetDuration(time.Duration(seconds) * time.Second); err != nil {
		return fmt.Errorf("mantra duration %ds: %w", seconds, err)
	}
	c.notify(ListMantra)
	return nil
}

// MantraColor is the ring colour for the current mantra duration.
func (c *Context) MantraColor() string {
	return model.PresetColor(int(c.mantra.Duration() / time.Second))
}

// Pomodoro

func (c *Context) PomodoroMinutes() int { return int(c.pomodoro.Duration() / time.Minute) }

// AdjustPomodoro shifts the pomodoro preset by delta minutes, clamped to
// the configured bounds, and resets the countdown.
func (c *Context) AdjustPomodoro(delta int) (int, error) {
	mins := config.ClampMinutes(c.PomodoroMinutes()+delta, c.cfg.PomodoroMinMinutes, c.cfg.PomodoroMaxMinutes)
	if err := c.pomodoro.SetDuration(time.Duration(mins) * time.Minute); err != nil {
		return c.PomodoroMinutes(), fmt.Errorf("pomodoro duration: %w", err)
	}
	return mins, nil
}

// Notes

func (c *Context) Draft() model.NoteDraft { return c.draft }

func (c *Context) Archive() []model.ArchivedNote { return c.archive.Notes() }

func (c *Context) SetDraftTitle(title string) error {
	c.draft.Title = title
	if err := c.store.Set(KeyNoteTitle, title); err != nil {
		return fmt.Errorf("autosave note title: %w", err)
	}
	c.notify(ListDraft)
	return nil
}

func (c *Context) SetDraftBody(body string) error {
	c.draft.Body = body
	if err := c.store.Set(KeyNoteBody, body); err != nil {
		return fmt.Errorf("autosave note: %w", err)
	}
	c.notify(ListDraft)
	return nil
}

// ArchiveDraft files the draft at the top of the archive and clears it.
func (c *Context) ArchiveDraft() (model.ArchivedNote, error) {
	note, err := c.archive.Archive(c.draft, c.clock.Now())
	if err != nil {
		return model.ArchivedNote{}, err
	}
	if err := c.saveArchive(); err != nil {
		return note, err
	}
	c.draft = model.NoteDraft{}
	var errs []error
	if err := c.store.Remove(KeyNoteBody); err != nil {
		errs = append(errs, err)
	}
	if err := c.store.Remove(KeyNoteTitle); err != nil {
		errs = append(errs, err)
	}
	c.notify(ListDraft)
	if err := errors.Join(errs...); err != nil {
		return note, fmt.Errorf("clear draft: %w", err)
	}
	return note, nil
}

func (c *Context) DeleteArchived(i int) error {
	if err := c.archive.Delete(i); err != nil {
		return err
	}
	return c.saveArchive()
}

func (c *Context) MoveArchived(from, to int) error {
	if err := c.archive.Move(from, to); err != nil {
		return err
	}
	return c.saveArchive()
}

// OpenArchived loads an archived note into the draft. The archive keeps
// its copy.
func (c *Context) OpenArchived(id int64) error {
	note, ok := c.archive.Find(id)
	if !ok {
		return fmt.Errorf("%w: note id %d", model.ErrIndexOutOfRange, id)
	}
	if err := c.SetDraftTitle(note.Title); err != nil {
		return err
	}
	return c.SetDraftBody(note.Content)
}

func (c *Context) saveArchive() error {
	if err := storage.SetJSON(c.store, KeyArchivedNotes, c.archive.Notes()); err != nil {
		return fmt.Errorf("save archive: %w", err)
	}
	c.notify(ListArchive)
	return nil
}

// Theme

func (c *Context) Theme() model.Theme { return c.theme }

func (c *Context) ToggleTheme() (model.Theme, error) {
	c.theme = c.theme.Toggle()
	if err := c.store.Set(KeyTheme, string(c.theme)); err != nil {
		return c.theme, fmt.Errorf("save theme: %w", err)
	}
	c.notify(ListTheme)
	return c.theme, nil
}

func (c *Context) notify(kind ListKind) {
	for _, fn := range c.listeners {
		fn(kind)
	}
}
