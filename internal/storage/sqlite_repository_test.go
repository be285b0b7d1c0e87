package storage

import (
	"database/sql"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func setupStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "mantrad-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	store, err := NewSQLiteStore(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestSQLiteGetSetRemove(t *testing.T) {
	store := setupStore(t)

	if _, ok := store.Get("theme"); ok {
		t.Fatal("expected missing key to be absent")
	}
	if err := store.Set("theme", "dark"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, ok := store.Get("theme"); !ok || got != "dark" {
		t.Fatalf("unexpected get: %q ok=%v", got, ok)
	}
	if err := store.Set("theme", "light"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if got, _ := store.Get("theme"); got != "light" {
		t.Fatalf("expected overwrite to win, got %q", got)
	}
	if err := store.Remove("theme"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok := store.Get("theme"); ok {
		t.Fatal("expected key removed")
	}
	if err := store.Remove("theme"); err != nil {
		t.Fatalf("removing an absent key should succeed: %v", err)
	}
}

func TestSQLiteKeysByPrefix(t *testing.T) {
	store := setupStore(t)
	for _, k := range []string{"mantraStartTime", "mantraDurationMs", "pomodoroDuration", "tasks"} {
		if err := store.Set(k, "1"); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}
	got, err := store.Keys("mantra")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	want := []string{"mantraDurationMs", "mantraStartTime"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("keys = %v, want %v", got, want)
	}
}

func TestSQLiteUpdatedAt(t *testing.T) {
	store := setupStore(t)
	fixed := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	if err := store.Set("notes", "draft"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := store.UpdatedAt("notes")
	if err != nil {
		t.Fatalf("updated at: %v", err)
	}
	if !got.Equal(fixed) {
		t.Fatalf("updated_at = %v, want %v", got, fixed)
	}
	if _, err := store.UpdatedAt("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOpenSQLiteMigrates(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "open.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()
	if err := store.Set("k", "v"); err != nil {
		t.Fatalf("set after open: %v", err)
	}
}

func TestJSONHelpers(t *testing.T) {
	store := NewMemoryStore()
	type item struct {
		Text string `json:"text"`
		Done bool   `json:"done"`
	}
	in := []item{{Text: "a"}, {Text: "b", Done: true}}
	if err := SetJSON(store, "tasks", in); err != nil {
		t.Fatalf("set json: %v", err)
	}
	var out []item
	if !GetJSON(store, "tasks", &out) {
		t.Fatal("expected json value")
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("decoded %v, want %v", out, in)
	}

	_ = store.Set("broken", "{not json")
	var broken []item
	if GetJSON(store, "broken", &broken) {
		t.Fatal("expected malformed json to fail open")
	}
	if GetJSON(store, "absent", &broken) {
		t.Fatal("expected absent key to report false")
	}
}
