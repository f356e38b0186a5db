// Package notes is the daily notes widget: short notes filed under a date.
package notes

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// DateLayout is the format of Note.Date.
const DateLayout = "2006-01-02"

// ErrEmpty is returned when a note has no content.
var ErrEmpty = errors.New("note is empty")

// ErrBadDate is returned when a date is not YYYY-MM-DD.
var ErrBadDate = errors.New("date must be YYYY-MM-DD")

// Note is one entry of the daily notes list.
type Note struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"createdAt"` // Unix milliseconds
}

// Group is the notes of a single date.
type Group struct {
	Date  string
	Notes []Note
}

// Book holds the notes and applies edits to them.
type Book struct {
	Notes []Note
	now   func() time.Time
	newID func() string
}

// NewBook wraps notes.
func NewBook(notes []Note, now func() time.Time, newID func() string) *Book {
	return &Book{Notes: notes, now: now, newID: newID}
}

func (b *Book) validate(date, content string) (string, string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", "", ErrEmpty
	}
	date = strings.TrimSpace(date)
	if _, err := time.Parse(DateLayout, date); err != nil {
		return "", "", fmt.Errorf("%w: %q", ErrBadDate, date)
	}
	return date, content, nil
}

// Add files a new note under date.
func (b *Book) Add(date, content string) (Note, error) {
	date, content, err := b.validate(date, content)
	if err != nil {
		return Note{}, err
	}
	n := Note{ID: b.newID(), Date: date, Content: content, CreatedAt: b.now().UnixMilli()}
	b.Notes = append(b.Notes, n)
	return n, nil
}

// Edit replaces the note id with a fresh note, so it sorts as the newest
// of its date.
func (b *Book) Edit(id, date, content string) (Note, error) {
	date, content, err := b.validate(date, content)
	if err != nil {
		return Note{}, err
	}
	b.Delete(id)
	n := Note{ID: b.newID(), Date: date, Content: content, CreatedAt: b.now().UnixMilli()}
	b.Notes = append(b.Notes, n)
	return n, nil
}

// Delete removes the note id. It reports whether it existed.
func (b *Book) Delete(id string) bool {
	before := len(b.Notes)
	b.Notes = slices.DeleteFunc(b.Notes, func(n Note) bool { return n.ID == id })
	return len(b.Notes) != before
}

// Find returns the note id.
func (b *Book) Find(id string) (Note, bool) {
	i := slices.IndexFunc(b.Notes, func(n Note) bool { return n.ID == id })
	if i < 0 {
		return Note{}, false
	}
	return b.Notes[i], true
}

// Groups returns the notes grouped by date, newest date first and newest
// note first within a date.
func (b *Book) Groups() []Group {
	byDate := map[string][]Note{}
	for _, n := range b.Notes {
		byDate[n.Date] = append(byDate[n.Date], n)
	}
	groups := make([]Group, 0, len(byDate))
	for date, notes := range byDate {
		slices.SortStableFunc(notes, func(a, b Note) int { return cmp.Compare(b.CreatedAt, a.CreatedAt) })
		groups = append(groups, Group{Date: date, Notes: notes})
	}
	slices.SortFunc(groups, func(a, b Group) int { return strings.Compare(b.Date, a.Date) })
	return groups
}

// Ordered returns the notes in display order.
func (b *Book) Ordered() []Note {
	var out []Note
	for _, g := range b.Groups() {
		out = append(out, g.Notes...)
	}
	return out
}

// FormatDate renders YYYY-MM-DD as DD/MM/YYYY, or the input unchanged if it
// does not parse.
func FormatDate(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("02/01/2006")
}
