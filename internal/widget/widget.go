// Package widget defines the content hosted inside desk cards and the small
// building blocks the widgets share: text fields, clickable layouts and
// status banners.
package widget

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"github.com/devspace-tui/devspace/internal/store"
	"github.com/google/uuid"
)

// Content is what a card hosts. The card never inspects it beyond asking
// whether a cell is an interactive control.
type Content interface {
	// Title is shown in the card's title bar.
	Title() string
	// Init loads persisted state.
	Init() tea.Cmd
	// Update handles keys and widget messages while the card is focused.
	Update(msg tea.Msg) tea.Cmd
	// View renders the content into width x height cells.
	View(width, height int) string
	// ControlAt reports whether the cell at (x, y), relative to the content
	// area of the last View, is an interactive control.
	ControlAt(x, y int) bool
	// Click activates the control at (x, y).
	Click(x, y int) tea.Cmd
}

// Env is what widgets get from the desk.
type Env struct {
	Store  store.Store
	Logger *log.Logger
	Now    func() time.Time
	NewID  func() string
}

// WithDefaults fills unset Env fields.
func (e Env) WithDefaults() Env {
	if e.Store == nil {
		e.Store = store.NewMemory()
	}
	if e.Logger == nil {
		e.Logger = log.Default()
	}
	if e.Now == nil {
		e.Now = time.Now
	}
	if e.NewID == nil {
		e.NewID = func() string { return uuid.NewString() }
	}
	return e
}

// Kind identifies one of the dock's widgets.
type Kind string

// The widgets, in dock order.
const (
	KindNotes Kind = "notes"
	KindTodo  Kind = "todo"
	KindHTTP  Kind = "http"
	KindVault Kind = "vault"
	KindData  Kind = "data"
)

// Kinds lists every widget in dock order.
var Kinds = []Kind{KindNotes, KindTodo, KindHTTP, KindVault, KindData}

// Label returns the dock label of k.
func (k Kind) Label() string {
	switch k {
	case KindNotes:
		return "Daily Notes"
	case KindTodo:
		return "Todo List"
	case KindHTTP:
		return "HTTP Client"
	case KindVault:
		return "Passwords"
	case KindData:
		return "Data"
	default:
		return string(k)
	}
}

// ChangedMsg is broadcast after a widget writes to the store so that other
// open widgets (e.g. the data summary) can reload.
type ChangedMsg struct {
	Key string
}

// Affects reports whether m concerns key. An empty Key concerns every key.
func (m ChangedMsg) Affects(key string) bool {
	return m.Key == "" || m.Key == key
}

// Changed returns a command emitting ChangedMsg for key.
func Changed(key string) tea.Cmd {
	return func() tea.Msg { return ChangedMsg{Key: key} }
}
