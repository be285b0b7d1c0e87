package views

import (
	"strings"
	"testing"
)

func TestRenderRingFillsProportionally(t *testing.T) {
	cases := []struct {
		fraction float64
		lit      int
	}{
		{0, 0},
		{0.5, 12},
		{0.99, 23},
		{1, 24},
		{3, 24},
		{-1, 0},
	}
	for _, tc := range cases {
		out := RenderRing(tc.fraction, "#16a34a", "0:10")
		if got := strings.Count(out, "●"); got != tc.lit {
			t.Fatalf("fraction %.2f: lit = %d, want %d", tc.fraction, got, tc.lit)
		}
		if got := strings.Count(out, "●") + strings.Count(out, "○"); got != 24 {
			t.Fatalf("fraction %.2f: expected 24 segments, got %d", tc.fraction, got)
		}
	}
}

func TestRenderRingCentresLabel(t *testing.T) {
	out := RenderRing(0.25, "#2563eb", "12s")
	rows := strings.Split(out, "\n")
	if len(rows) != 11 {
		t.Fatalf("expected 11 rows, got %d", len(rows))
	}
	if !strings.Contains(rows[5], "12s") {
		t.Fatalf("expected label on the middle row: %q", rows[5])
	}
}

func TestRenderTodoPanel(t *testing.T) {
	out := RenderTodoPanel(TodoPanelData{
		Tasks: []TaskRowData{
			{Text: "write", Done: true},
			{Text: "read", Selected: true, Editing: true},
		},
		Stats:   "Completed 1 of 2 tasks (8 slots left)",
		Timer:   "9:59",
		Button:  "Pause",
		Minutes: 10,
	})
	for _, want := range []string{"1. [x] write", "> 2. [ ] read (editing)", "Completed 1 of 2 tasks", "timer: 9:59 (10 min)", "[space] Pause"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderMantraPanelMarksPreset(t *testing.T) {
	out := RenderMantraPanel(MantraPanelData{
		Lines:       []string{"Seize the day!"},
		Color:       "#2563eb",
		Remaining:   "40s",
		Button:      "Start",
		DurationSec: 40,
		Presets:     []int{20, 40, 60},
	})
	if !strings.Contains(out, "*[]]40s") || !strings.Contains(out, " [[]20s") {
		t.Fatalf("expected active preset marker:\n%s", out)
	}
	if !strings.Contains(out, "Seize the day!") {
		t.Fatalf("expected mantra line:\n%s", out)
	}
}

func TestRenderNotesPanelConfirm(t *testing.T) {
	out := RenderNotesPanel(NotesPanelData{Focus: "archive", ConfirmDelete: "Plan"})
	if !strings.Contains(out, `delete "Plan"? [y/n]`) {
		t.Fatalf("expected confirmation prompt:\n%s", out)
	}
}

func TestRenderAppHidesEmptyRightPane(t *testing.T) {
	out := RenderApp(AppData{Theme: "dark", LeftPane: "left", StatusLine: "status: ok"})
	if !strings.Contains(out, "left") || !strings.Contains(out, "status: ok") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if RenderCommandPalette(false, "x") != "" {
		t.Fatal("inactive palette should render nothing")
	}
}
