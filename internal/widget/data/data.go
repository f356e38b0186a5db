// Package data moves the whole dashboard in and out of the store as a single
// JSON document, and backs the data widget.
package data

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/devspace-tui/devspace/internal/store"
)

// ErrInvalidFormat is returned by Import when the document is not an object
// holding all four collections as arrays.
var ErrInvalidFormat = errors.New("invalid data format")

// Keys are the collections carried by an export, in document order.
var Keys = []string{store.KeyDailyNotes, store.KeyTodos, store.KeyHTTPRequests, store.KeyPasswords}

// Document is the export format. Field order fixes the key order of the
// encoded document.
type Document struct {
	DailyNotes   json.RawMessage `json:"dailyNotes"`
	Todos        json.RawMessage `json:"todos"`
	HTTPRequests json.RawMessage `json:"httpRequests"`
	Passwords    json.RawMessage `json:"passwords"`
}

func (d *Document) field(key string) *json.RawMessage {
	switch key {
	case store.KeyDailyNotes:
		return &d.DailyNotes
	case store.KeyTodos:
		return &d.Todos
	case store.KeyHTTPRequests:
		return &d.HTTPRequests
	case store.KeyPasswords:
		return &d.Passwords
	}
	return nil
}

// Counts is the number of items in each collection.
type Counts struct {
	DailyNotes   int
	Todos        int
	HTTPRequests int
	Passwords    int
}

// Total returns the number of items across all collections.
func (c Counts) Total() int {
	return c.DailyNotes + c.Todos + c.HTTPRequests + c.Passwords
}

// readArray returns the stored array at key. Missing or unreadable values
// read as an empty array.
func readArray(ctx context.Context, s store.Store, key string) (json.RawMessage, int, error) {
	items, err := store.LoadList[json.RawMessage](ctx, s, key)
	if err != nil && !isDecode(err) {
		return nil, 0, err
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, 0, err
	}
	return raw, len(items), nil
}

// isDecode reports whether err came from a corrupt value rather than the
// store itself.
func isDecode(err error) bool {
	var syntax *json.SyntaxError
	var typ *json.UnmarshalTypeError
	return errors.As(err, &syntax) || errors.As(err, &typ)
}

// Load reads every collection into a Document.
func Load(ctx context.Context, s store.Store) (*Document, Counts, error) {
	var doc Document
	var counts Counts
	n := map[string]*int{
		store.KeyDailyNotes:   &counts.DailyNotes,
		store.KeyTodos:        &counts.Todos,
		store.KeyHTTPRequests: &counts.HTTPRequests,
		store.KeyPasswords:    &counts.Passwords,
	}
	for _, key := range Keys {
		raw, count, err := readArray(ctx, s, key)
		if err != nil {
			return nil, Counts{}, fmt.Errorf("read %s: %w", key, err)
		}
		*doc.field(key) = raw
		*n[key] = count
	}
	return &doc, counts, nil
}

// Export renders every collection as one document, indented by two spaces.
func Export(ctx context.Context, s store.Store) ([]byte, error) {
	doc, _, err := Load(ctx, s)
	if err != nil {
		return nil, err
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return out, nil
}

// Parse validates an export document.
func Parse(b []byte) (*Document, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(bytes.TrimSpace(b), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	var doc Document
	for _, key := range Keys {
		raw, ok := fields[key]
		if !ok {
			return nil, fmt.Errorf("%w: missing %q", ErrInvalidFormat, key)
		}
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil || items == nil {
			return nil, fmt.Errorf("%w: %q is not an array", ErrInvalidFormat, key)
		}
		*doc.field(key) = raw
	}
	return &doc, nil
}

// Import validates b and replaces all four collections with its contents.
// Nothing is written unless the whole document is valid.
func Import(ctx context.Context, s store.Store, b []byte) error {
	doc, err := Parse(b)
	if err != nil {
		return err
	}
	for _, key := range Keys {
		var compact bytes.Buffer
		if err := json.Compact(&compact, *doc.field(key)); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		if err := s.Set(ctx, key, compact.String()); err != nil {
			return fmt.Errorf("write %s: %w", key, err)
		}
	}
	return nil
}

// Clear removes all four collections. The vault master key is kept.
func Clear(ctx context.Context, s store.Store) error {
	for _, key := range Keys {
		if err := s.Remove(ctx, key); err != nil {
			return fmt.Errorf("remove %s: %w", key, err)
		}
	}
	return nil
}
