package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd("test")
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("MANTRAD_DB", "")
	return home
}

func TestTasksPersistAcrossInvocations(t *testing.T) {
	home := setupHome(t)
	db := filepath.Join(home, "data", "state.db")

	out, err := run(t, "--db", db, "tasks", "add", "water", "plants")
	if err != nil {
		t.Fatalf("tasks add: %v", err)
	}
	if !strings.Contains(out, "added task: water plants (1/10)") {
		t.Fatalf("unexpected add output:\n%s", out)
	}
	if _, err := run(t, "--db", db, "tasks", "done", "1"); err != nil {
		t.Fatalf("tasks done: %v", err)
	}
	out, err = run(t, "--db", db, "tasks", "list")
	if err != nil {
		t.Fatalf("tasks list: %v", err)
	}
	if !strings.Contains(out, "[x] water plants") {
		t.Fatalf("unexpected list output:\n%s", out)
	}
	if !strings.Contains(out, "Completed 1 of 1 tasks") {
		t.Fatalf("missing stats line:\n%s", out)
	}
	if _, err := os.Stat(db); err != nil {
		t.Fatalf("expected database file: %v", err)
	}

	out, err = run(t, "--db", db, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "tasks saved ") {
		t.Fatalf("status should report when tasks were saved:\n%s", out)
	}
}

func TestTasksRejectsBadPosition(t *testing.T) {
	setupHome(t)
	if _, err := run(t, "--ephemeral", "tasks", "done", "0"); err == nil {
		t.Fatal("expected error for position 0")
	}
}

func TestMantraCommands(t *testing.T) {
	home := setupHome(t)
	db := filepath.Join(home, "m.db")

	if _, err := run(t, "--db", db, "mantra", "set", `Breathe\nSmile`); err != nil {
		t.Fatalf("mantra set: %v", err)
	}
	if _, err := run(t, "--db", db, "mantra", "duration", "40s"); err != nil {
		t.Fatalf("mantra duration: %v", err)
	}
	out, err := run(t, "--db", db, "mantra")
	if err != nil {
		t.Fatalf("mantra: %v", err)
	}
	if strings.TrimSpace(out) != "Breathe\nSmile" {
		t.Fatalf("unexpected mantra output: %q", out)
	}

	out, err = run(t, "--db", db, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "mantra    idle") || !strings.Contains(out, "40s (reset-only)") {
		t.Fatalf("unexpected status output:\n%s", out)
	}
	if !strings.Contains(out, "(resumable)") || strings.Contains(out, "tasks saved") {
		t.Fatalf("unexpected status output:\n%s", out)
	}

	if _, err := run(t, "--db", db, "mantra", "duration", "nope"); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}

func TestConfigInitShowAndPath(t *testing.T) {
	home := setupHome(t)
	path := filepath.Join(home, "cfg", "config.yaml")

	if _, err := run(t, "--config", path, "config", "init"); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := run(t, "--config", path, "config", "init"); err == nil {
		t.Fatal("second init should refuse to overwrite")
	}

	out, err := run(t, "--config", path, "config", "path")
	if err != nil || strings.TrimSpace(out) != path {
		t.Fatalf("config path = %q, %v", out, err)
	}

	t.Setenv("MANTRAD_POMODORO_MINUTES", "25")
	out, err = run(t, "--config", path, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "pomodoro_minutes: 25") {
		t.Fatalf("env override missing from merged config:\n%s", out)
	}
}

func TestNotesListEmpty(t *testing.T) {
	setupHome(t)
	out, err := run(t, "--ephemeral", "notes", "list")
	if err != nil {
		t.Fatalf("notes list: %v", err)
	}
	if !strings.Contains(out, "No archived notes") {
		t.Fatalf("unexpected output: %q", out)
	}
	if _, err := run(t, "--ephemeral", "notes", "show", "1"); err == nil {
		t.Fatal("expected error for missing note")
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil || strings.TrimSpace(out) != "mantrad test" {
		t.Fatalf("version = %q, %v", out, err)
	}
}
