package views

import (
	"fmt"
	"strings"
)

type MantraPanelData struct {
	Lines       []string
	Fraction    float64
	Color       string
	Remaining   string
	Button      string
	DurationSec int
	Presets     []int
}

type TaskRowData struct {
	Text     string
	Done     bool
	Editing  bool
	Selected bool
}

type TodoPanelData struct {
	InputView    string
	InputActive  bool
	Tasks        []TaskRowData
	Stats        string
	Timer        string
	Button       string
	ProgressView string
	SpinnerView  string
	Minutes      int
}

type NotesPanelData struct {
	TitleView     string
	BodyView      string
	TableView     string
	PreviewView   string
	Focus         string
	ConfirmDelete string
}

type MorePanelData struct {
	EditorView  string
	Editing     bool
	Theme       string
	StoragePath string
	Language    string
	Keys        []string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderMantraPanel(data MantraPanelData) string {
	var b strings.Builder
	b.WriteString("mantra:\n\n")
	for _, line := range data.Lines {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n")
	b.WriteString(RenderRing(data.Fraction, data.Color, data.Remaining))
	b.WriteString("\n\n")
	presets := make([]string, 0, len(data.Presets))
	keys := []string{"[", "]", "\\"}
	for i, p := range data.Presets {
		marker := " "
		if p == data.DurationSec {
			marker = "*"
		}
		k := ""
		if i < len(keys) {
			k = keys[i]
		}
		presets = append(presets, fmt.Sprintf("%s[%s]%ds", marker, k, p))
	}
	b.WriteString(fmt.Sprintf("button: [space] %s  [r] reset\n", data.Button))
	b.WriteString("presets:" + strings.Join(presets, " "))
	return strings.TrimSpace(b.String())
}

func RenderTodoPanel(data TodoPanelData) string {
	var b strings.Builder
	b.WriteString("todo:\n")
	if data.InputActive {
		b.WriteString(data.InputView + "\n")
	} else {
		b.WriteString("actions: [a]add [x]done [e]edit [d]delete [J/K]move\n")
	}
	if len(data.Tasks) == 0 {
		b.WriteString("  (no tasks)\n")
	}
	for i, t := range data.Tasks {
		cursor := " "
		if t.Selected {
			cursor = ">"
		}
		check := "[ ]"
		if t.Done {
			check = "[x]"
		}
		suffix := ""
		if t.Editing {
			suffix = " (editing)"
		}
		b.WriteString(fmt.Sprintf("%s %d. %s %s%s\n", cursor, i+1, check, t.Text, suffix))
	}
	b.WriteString(data.Stats + "\n\n")

	b.WriteString("pomodoro:\n")
	timer := data.Timer
	if data.SpinnerView != "" {
		timer = data.SpinnerView + " " + timer
	}
	b.WriteString(fmt.Sprintf("timer: %s (%d min)\n", timer, data.Minutes))
	b.WriteString(data.ProgressView + "\n")
	b.WriteString(fmt.Sprintf("button: [space] %s  [r] reset  [+/-] minutes", data.Button))
	return strings.TrimSpace(b.String())
}

func RenderNotesPanel(data NotesPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("notes: (focus: %s)\n", data.Focus))
	b.WriteString(data.TitleView + "\n")
	b.WriteString(data.BodyView + "\n")
	b.WriteString("actions: [tab]focus [ctrl+s]archive [ctrl+y]copy\n\n")
	b.WriteString("archived:\n")
	b.WriteString(data.TableView + "\n")
	b.WriteString("actions: [o]open [d]delete [J/K]move")
	if data.ConfirmDelete != "" {
		b.WriteString(fmt.Sprintf("\nconfirm: delete %q? [y/n]", data.ConfirmDelete))
	}
	return strings.TrimSpace(b.String())
}

func RenderNotePreview(preview string) string {
	if strings.TrimSpace(preview) == "" {
		return ""
	}
	return "preview:\n" + preview
}

func RenderMorePanel(data MorePanelData) string {
	var b strings.Builder
	b.WriteString("more:\n")
	b.WriteString("mantra editor:\n")
	b.WriteString(data.EditorView + "\n")
	if data.Editing {
		b.WriteString("actions: [ctrl+s]save [esc]cancel\n\n")
	} else {
		b.WriteString("actions: [e]edit mantra\n\n")
	}
	b.WriteString(fmt.Sprintf("theme: %s [t]toggle\n", data.Theme))
	b.WriteString(fmt.Sprintf("storage: %s\n", data.StoragePath))
	b.WriteString(fmt.Sprintf("language: %s", data.Language))
	if len(data.Keys) > 0 {
		b.WriteString("\n\nstored keys:\n")
		for _, k := range data.Keys {
			b.WriteString("- " + k + "\n")
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
