package storage

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("storage: not found")

// Store is the persistence port: synchronous string storage that survives
// restarts. Reads fail open; a key that cannot be read is reported absent.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
}

// GetJSON decodes the value under key into out. It reports false when the
// key is absent or the value is not valid JSON, leaving out untouched.
func GetJSON(s Store, key string, out any) bool {
	raw, ok := s.Get(key)
	if !ok || raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false
	}
	return true
}

func SetJSON(s Store, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(key, string(payload))
}
