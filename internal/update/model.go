package update

import (
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sandeepkv93/mantrad/internal/app"
	"github.com/sandeepkv93/mantrad/internal/countdown"
	"github.com/sandeepkv93/mantrad/internal/i18n"
	"github.com/sandeepkv93/mantrad/internal/scheduler"
)

type View string

const (
	ViewMantra View = "Mantra"
	ViewTodo   View = "Todo"
	ViewNotes  View = "Notes"
	ViewMore   View = "More"
)

var tabs = []View{ViewMantra, ViewTodo, ViewNotes, ViewMore}

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Mantra string
	Todo   string
	Notes  string
	More   string
	Theme  string
	Help   string
	Quit   string
}

type todoMode int

const (
	todoBrowse todoMode = iota
	todoAdding
	todoEditing
)

type notesFocus string

const (
	focusTitle   notesFocus = "title"
	focusBody    notesFocus = "body"
	focusArchive notesFocus = "archive"
)

type TodoState struct {
	Cursor int
	mode   todoMode
}

type NotesState struct {
	Focus         notesFocus
	ArchiveCursor int
	ConfirmDelete bool
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	Ctx           *app.Context
	CurrentView   View
	Todo          TodoState
	Notes         NotesState
	EditingMantra bool
	Palette       CommandPaletteState
	HelpVisible   bool
	Notifications []Notification
	Status        StatusBar
	Keys          GlobalKeyMap
	Quitting      bool
	LastError     error
	Alarms        *scheduler.Engine

	desktopEnabled bool
	soundEnabled   bool
	notifier       DesktopNotifier
	chime          Chimer
	tr             *i18n.Translator
	copyText       func(string) error
	storageLabel   string
	storeKeys      *storeKeyCache

	taskInput     textinput.Model
	commandInput  textinput.Model
	noteTitle     textinput.Model
	noteBody      textarea.Model
	mantraEditor  textarea.Model
	archiveTable  table.Model
	pomoProgress  progress.Model
	pomoSpinner   spinner.Model
	helpModel     help.Model
	notePreview   viewport.Model
	spinnerActive bool
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

// Chimer plays the completion sound.
type Chimer interface {
	Play()
}

type noopChimer struct{}

func (noopChimer) Play() {}

type Options struct {
	Alarms       *scheduler.Engine
	Notifier     DesktopNotifier
	Chime        Chimer
	Translator   *i18n.Translator
	Clipboard    func(string) error
	StorageLabel string
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// TimerTickMsg is one frame of a countdown's tick loop, stamped with the
// generation it was scheduled under.
type TimerTickMsg struct {
	Timer      string
	Generation uint64
}

type AlarmMsg struct {
	Alarm scheduler.Alarm
}

// NewModel builds the UI around ctx and reconciles both countdowns with
// whatever a previous process left running.
func NewModel(ctx *app.Context, opts Options) Model {
	cfg := ctx.Config()
	m := Model{
		Ctx:            ctx,
		CurrentView:    ViewMantra,
		Notes:          NotesState{Focus: focusArchive},
		Alarms:         opts.Alarms,
		desktopEnabled: cfg.DesktopNotifications,
		soundEnabled:   cfg.Sound,
		notifier:       NoopDesktopNotifier{},
		chime:          noopChimer{},
		tr:             opts.Translator,
		copyText:       clipboard.WriteAll,
		storageLabel:   opts.StorageLabel,
		storeKeys:      &storeKeyCache{stale: true},
		Keys: GlobalKeyMap{
			Mantra: "1",
			Todo:   "2",
			Notes:  "3",
			More:   "4",
			Theme:  "t",
			Help:   "?",
			Quit:   "q",
		},
	}
	if opts.Notifier != nil {
		m.notifier = opts.Notifier
	}
	if opts.Chime != nil {
		m.chime = opts.Chime
	}
	if opts.Clipboard != nil {
		m.copyText = opts.Clipboard
	}
	if m.tr == nil {
		m.tr = i18n.New(cfg.Language)
	}
	if m.storageLabel == "" {
		m.storageLabel = cfg.DBPath
	}
	m.initBubbleComponents()
	keys := m.storeKeys
	ctx.OnListChanged(func(app.ListKind) { keys.invalidate() })
	if m.Alarms != nil {
		ctx.AttachAlarms(m.Alarms)
	}
	ctx.ResumeTimers()
	m.spinnerActive = ctx.Pomodoro().Phase() == countdown.PhaseRunning
	return m
}

func (m *Model) initBubbleComponents() {
	m.taskInput = textinput.New()
	m.taskInput.Prompt = "task> "
	m.taskInput.CharLimit = 256
	m.taskInput.Width = 42

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	draft := m.Ctx.Draft()
	m.noteTitle = textinput.New()
	m.noteTitle.Prompt = "title> "
	m.noteTitle.Placeholder = "Untitled"
	m.noteTitle.CharLimit = 120
	m.noteTitle.Width = 48
	m.noteTitle.SetValue(draft.Title)

	m.noteBody = textarea.New()
	m.noteBody.SetWidth(54)
	m.noteBody.SetHeight(8)
	m.noteBody.ShowLineNumbers = false
	m.noteBody.Placeholder = "Write a note (markdown)"
	m.noteBody.SetValue(draft.Body)

	m.mantraEditor = textarea.New()
	m.mantraEditor.SetWidth(54)
	m.mantraEditor.SetHeight(5)
	m.mantraEditor.ShowLineNumbers = false
	m.mantraEditor.SetValue(m.Ctx.MantraText())

	cols := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Title", Width: 18},
		{Title: "Date", Width: 10},
		{Title: "Preview", Width: 18},
	}
	m.archiveTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithHeight(6))

	m.pomoProgress = progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))

	m.pomoSpinner = spinner.New()
	m.pomoSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
	m.notePreview = viewport.New(40, 12)
	m.focusNotes()
}
