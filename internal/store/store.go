// Package store is the persistence capability injected into widgets: a flat
// string key/value space with JSON helpers, backed by sqlite or memory.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Keys used by the widgets. They match the export document.
const (
	KeyDailyNotes        = "dailyNotes"
	KeyTodos             = "todos"
	KeyHTTPRequests      = "httpRequests"
	KeyPasswords         = "passwords"
	KeyPasswordMasterKey = "passwordMasterKey"
)

// ErrNotFound is returned by Get when a key has no value.
var ErrNotFound = errors.New("store: key not found")

// Store is a string key/value store safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// GetJSON decodes the value at key into v. A missing key leaves v untouched
// and returns ErrNotFound.
func GetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// SetJSON encodes v and stores it at key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, string(data))
}

// LoadList decodes a JSON array at key. A missing value yields an empty
// list, the same way a fresh dashboard starts. A corrupt value yields an
// empty list and the decode error.
func LoadList[T any](ctx context.Context, s Store, key string) ([]T, error) {
	var items []T
	err := GetJSON(ctx, s, key, &items)
	if errors.Is(err, ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return []T{}, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Open returns the Store for driver: "memory" or "sqlite" at path.
func Open(driver, path string) (Store, error) {
	switch driver {
	case "memory":
		return NewMemory(), nil
	case "sqlite", "":
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("store: unknown driver %q", driver)
	}
}
