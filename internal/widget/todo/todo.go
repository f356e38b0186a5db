// Package todo is the todo list widget. Todos carry one level of sub-todos.
package todo

import (
	"cmp"
	"errors"
	"slices"
	"strings"
	"time"
)

// ErrEmpty is returned for blank todo text.
var ErrEmpty = errors.New("todo is empty")

// ErrNotFound is returned when a todo or sub-todo id is unknown.
var ErrNotFound = errors.New("todo not found")

// SubTodo is a step of a Todo.
type SubTodo struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Todo is one task.
type Todo struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	SubTodos  []SubTodo `json:"subTodos"`
	CreatedAt int64     `json:"createdAt"`
}

// List is the todo list and its edit operations.
type List struct {
	Todos []Todo
	now   func() time.Time
	newID func() string
}

// NewList wraps todos. Nil sub-todo slices are normalised so they encode as
// empty arrays.
func NewList(todos []Todo, now func() time.Time, newID func() string) *List {
	for i := range todos {
		if todos[i].SubTodos == nil {
			todos[i].SubTodos = []SubTodo{}
		}
	}
	return &List{Todos: todos, now: now, newID: newID}
}

func (l *List) index(id string) int {
	return slices.IndexFunc(l.Todos, func(t Todo) bool { return t.ID == id })
}

func (l *List) get(id string) (*Todo, error) {
	i := l.index(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	return &l.Todos[i], nil
}

// Find returns the todo id.
func (l *List) Find(id string) (Todo, bool) {
	t, err := l.get(id)
	if err != nil {
		return Todo{}, false
	}
	return *t, true
}

// Add appends a new open todo.
func (l *List) Add(text string) (Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Todo{}, ErrEmpty
	}
	t := Todo{ID: l.newID(), Text: text, SubTodos: []SubTodo{}, CreatedAt: l.now().UnixMilli()}
	l.Todos = append(l.Todos, t)
	return t, nil
}

// Delete removes the todo id and its sub-todos.
func (l *List) Delete(id string) bool {
	before := len(l.Todos)
	l.Todos = slices.DeleteFunc(l.Todos, func(t Todo) bool { return t.ID == id })
	return len(l.Todos) != before
}

// Toggle flips the completion of todo id.
func (l *List) Toggle(id string) error {
	t, err := l.get(id)
	if err != nil {
		return err
	}
	t.Completed = !t.Completed
	return nil
}

// Edit replaces the text of todo id. Blank text returns ErrEmpty and leaves
// the todo unchanged; callers treat that as a cancelled edit.
func (l *List) Edit(id, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmpty
	}
	t, err := l.get(id)
	if err != nil {
		return err
	}
	t.Text = text
	return nil
}

// AddSub appends a sub-todo to todo parent.
func (l *List) AddSub(parent, text string) (SubTodo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return SubTodo{}, ErrEmpty
	}
	t, err := l.get(parent)
	if err != nil {
		return SubTodo{}, err
	}
	s := SubTodo{ID: l.newID(), Text: text}
	t.SubTodos = append(t.SubTodos, s)
	return s, nil
}

func (l *List) sub(parent, id string) (*SubTodo, error) {
	t, err := l.get(parent)
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(t.SubTodos, func(s SubTodo) bool { return s.ID == id })
	if i < 0 {
		return nil, ErrNotFound
	}
	return &t.SubTodos[i], nil
}

// DeleteSub removes sub-todo id from todo parent.
func (l *List) DeleteSub(parent, id string) bool {
	t, err := l.get(parent)
	if err != nil {
		return false
	}
	before := len(t.SubTodos)
	t.SubTodos = slices.DeleteFunc(t.SubTodos, func(s SubTodo) bool { return s.ID == id })
	return len(t.SubTodos) != before
}

// ToggleSub flips the completion of a sub-todo.
func (l *List) ToggleSub(parent, id string) error {
	s, err := l.sub(parent, id)
	if err != nil {
		return err
	}
	s.Completed = !s.Completed
	return nil
}

// EditSub replaces the text of a sub-todo. Blank text is ignored.
func (l *List) EditSub(parent, id, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmpty
	}
	s, err := l.sub(parent, id)
	if err != nil {
		return err
	}
	s.Text = text
	return nil
}

// Progress returns the number of completed todos and the total.
func (l *List) Progress() (done, total int) {
	for _, t := range l.Todos {
		if t.Completed {
			done++
		}
	}
	return done, len(l.Todos)
}

// Sorted returns the todos newest first.
func (l *List) Sorted() []Todo {
	out := slices.Clone(l.Todos)
	slices.SortStableFunc(out, func(a, b Todo) int { return cmp.Compare(b.CreatedAt, a.CreatedAt) })
	return out
}

// Item is a row of the flattened list: a todo, or one of its sub-todos when
// Sub is set.
type Item struct {
	Todo Todo
	Sub  *SubTodo
}

// Items flattens the sorted todos and their sub-todos.
func (l *List) Items() []Item {
	var items []Item
	for _, t := range l.Sorted() {
		items = append(items, Item{Todo: t})
		for i := range t.SubTodos {
			items = append(items, Item{Todo: t, Sub: &t.SubTodos[i]})
		}
	}
	return items
}
