package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

// SQLiteStore implements Store over a single kv table.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

// OpenSQLite opens path, applies migrations and returns a ready store.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	store, err := NewSQLiteStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (r *SQLiteStore) Close() error {
	return r.db.Close()
}

func (r *SQLiteStore) Get(key string) (string, bool) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Printf("storage: read %s: %v", key, err)
		}
		return "", false
	}
	return value, true
}

func (r *SQLiteStore) Set(key, value string) error {
	_, err := r.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, mustTime(r.now()),
	)
	if err != nil {
		return fmt.Errorf("storage: write %s: %w", key, err)
	}
	return nil
}

func (r *SQLiteStore) Remove(key string) error {
	if _, err := r.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("storage: remove %s: %w", key, err)
	}
	return nil
}

// Keys lists stored keys that start with prefix, in key order.
func (r *SQLiteStore) Keys(prefix string) ([]string, error) {
	rows, err := r.db.Query(`SELECT key FROM kv WHERE substr(key, 1, ?) = ? ORDER BY key ASC`, len(prefix), prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var k string
		if scanErr := rows.Scan(&k); scanErr != nil {
			return nil, scanErr
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

// UpdatedAt reports when key was last written.
func (r *SQLiteStore) UpdatedAt(key string) (time.Time, error) {
	var raw string
	err := r.db.QueryRow(`SELECT updated_at FROM kv WHERE key = ?`, key).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, ErrNotFound
		}
		return time.Time{}, err
	}
	return time.Parse(sqliteTimeLayout, raw)
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}
