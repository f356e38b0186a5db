package notes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/devspace-tui/devspace/internal/store"
	"github.com/devspace-tui/devspace/internal/widget"
)

const (
	focusContent = "content"
	focusDate    = "date"
	focusList    = "list"
)

// Widget is the daily notes card content.
type Widget struct {
	env     widget.Env
	book    *Book
	date    *widget.Field
	content *widget.Field
	focus   *widget.Focus
	editing string
	sel     int
	status  widget.Status
	layout  *widget.Layout
}

// New returns the notes widget. Call Init to load the stored notes.
func New(env widget.Env) *Widget {
	env = env.WithDefaults()
	w := &Widget{
		env:     env,
		book:    NewBook(nil, env.Now, env.NewID),
		date:    widget.NewField("YYYY-MM-DD"),
		content: widget.NewField("Write a note..."),
		focus:   widget.NewFocus(focusContent, focusDate, focusList),
	}
	w.date.SetValue(env.Now().Format(DateLayout))
	return w
}

// Title implements widget.Content.
func (w *Widget) Title() string { return widget.KindNotes.Label() }

// Init implements widget.Content.
func (w *Widget) Init() tea.Cmd { return w.load() }

// Notes returns the notes in display order.
func (w *Widget) Notes() []Note { return w.book.Ordered() }

func (w *Widget) load() tea.Cmd {
	notes, err := store.LoadList[Note](context.Background(), w.env.Store, store.KeyDailyNotes)
	w.book = NewBook(notes, w.env.Now, w.env.NewID)
	w.clampSel()
	if err != nil {
		w.env.Logger.Warn("loading notes", "err", err)
		return w.status.Error("Could not load notes")
	}
	return nil
}

// persist writes the notes back and reports done on success.
func (w *Widget) persist(done string) tea.Cmd {
	if err := store.SetJSON(context.Background(), w.env.Store, store.KeyDailyNotes, w.book.Notes); err != nil {
		w.env.Logger.Error("saving notes", "err", err)
		return w.status.Error("Could not save notes")
	}
	return tea.Batch(widget.Changed(store.KeyDailyNotes), w.status.Success(done))
}

func (w *Widget) clampSel() {
	w.sel = max(0, min(w.sel, len(w.book.Notes)-1))
}

// Update implements widget.Content.
func (w *Widget) Update(msg tea.Msg) tea.Cmd {
	if w.status.Update(msg) {
		return nil
	}
	switch msg := msg.(type) {
	case widget.ChangedMsg:
		if msg.Affects(store.KeyDailyNotes) {
			return w.load()
		}
	case tea.PasteMsg:
		if f := w.focusedField(); f != nil {
			f.Insert(msg.Content)
		}
	case tea.KeyPressMsg:
		return w.handleKey(msg)
	}
	return nil
}

// focusedField returns the text field holding focus, if any.
func (w *Widget) focusedField() *widget.Field {
	switch w.focus.Current() {
	case focusContent:
		return w.content
	case focusDate:
		return w.date
	}
	return nil
}

func (w *Widget) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "tab":
		w.focus.Next()
		return nil
	case "shift+tab":
		w.focus.Prev()
		return nil
	case "esc":
		w.cancelEdit()
		return nil
	}

	if w.focus.Is(focusList) {
		ordered := w.book.Ordered()
		switch msg.String() {
		case "up":
			w.sel = max(0, w.sel-1)
		case "down":
			w.sel = min(len(ordered)-1, w.sel+1)
			w.clampSel()
		case "ctrl+e", "enter":
			if len(ordered) > 0 {
				w.startEdit(ordered[w.sel].ID)
			}
		case "ctrl+d", "delete":
			if len(ordered) > 0 {
				return w.remove(ordered[w.sel].ID)
			}
		}
		return nil
	}

	if msg.String() == "enter" {
		return w.submit()
	}
	if w.focus.Is(focusDate) {
		w.date.HandleKey(msg)
	} else {
		w.content.HandleKey(msg)
	}
	return nil
}

func (w *Widget) submit() tea.Cmd {
	var err error
	done := "Note added"
	if w.editing != "" {
		_, err = w.book.Edit(w.editing, w.date.Value(), w.content.Value())
		done = "Note updated"
	} else {
		_, err = w.book.Add(w.date.Value(), w.content.Value())
	}
	switch {
	case errors.Is(err, ErrEmpty):
		return nil
	case err != nil:
		return w.status.Error(err.Error())
	}

	w.editing = ""
	w.content.Reset()
	w.focus.Set(focusContent)
	return w.persist(done)
}

func (w *Widget) startEdit(id string) {
	n, ok := w.book.Find(id)
	if !ok {
		return
	}
	w.editing = id
	w.date.SetValue(n.Date)
	w.content.SetValue(n.Content)
	w.focus.Set(focusContent)
}

func (w *Widget) cancelEdit() {
	if w.editing == "" {
		return
	}
	w.editing = ""
	w.content.Reset()
	w.date.SetValue(w.env.Now().Format(DateLayout))
}

func (w *Widget) remove(id string) tea.Cmd {
	if !w.book.Delete(id) {
		return nil
	}
	if w.editing == id {
		w.cancelEdit()
	}
	w.clampSel()
	return w.persist("Note deleted")
}

// View implements widget.Content.
func (w *Widget) View(width, height int) string {
	l := widget.NewLayout(width)
	fieldW := max(1, width-8)
	l.Row(widget.Button(focusDate, widget.Labelled("Date", w.date.View(fieldW, w.focus.Is(focusDate)), w.focus.Is(focusDate))))
	l.Row(widget.Button(focusContent, widget.Labelled("Note", w.content.View(fieldW, w.focus.Is(focusContent)), w.focus.Is(focusContent))))
	if w.editing != "" {
		l.Row(widget.Text("  "), widget.Button("submit", widget.ButtonLabel("Save")), widget.Text(" "), widget.Button("cancel", widget.ButtonLabel("Cancel")))
	} else {
		l.Row(widget.Text("  "), widget.Button("submit", widget.ButtonLabel("Add")))
	}
	l.Line(w.status.View())

	var rows [][]widget.Span
	selRow := 0
	i := 0
	for _, g := range w.book.Groups() {
		rows = append(rows, []widget.Span{widget.Text(widget.Heading(fmt.Sprintf("%s (%d)", FormatDate(g.Date), len(g.Notes))))})
		for _, n := range g.Notes {
			on := i == w.sel && w.focus.Is(focusList)
			if i == w.sel {
				selRow = len(rows)
			}
			text := ansi.Truncate(strings.ReplaceAll(n.Content, "\n", " "), max(1, width-10), "…")
			rows = append(rows, []widget.Span{
				widget.Button("note:"+n.ID, widget.Selected(text, on)),
				widget.Text(" "),
				widget.Button("edit:"+n.ID, widget.ButtonLabel("e")),
				widget.Text(" "),
				widget.Button("del:"+n.ID, widget.DangerLabel("x")),
			})
			i++
		}
	}
	if len(rows) == 0 {
		l.Line(widget.Muted("No notes yet."))
	} else {
		l.List(rows, selRow, height)
	}

	w.layout = l
	return l.Render(height)
}

// ControlAt implements widget.Content.
func (w *Widget) ControlAt(x, y int) bool {
	_, ok := w.layout.Hit(x, y)
	return ok
}

// Click implements widget.Content.
func (w *Widget) Click(x, y int) tea.Cmd {
	id, ok := w.layout.Hit(x, y)
	if !ok {
		return nil
	}
	kind, noteID, _ := strings.Cut(id, ":")
	switch kind {
	case focusDate, focusContent:
		w.focus.Set(kind)
	case "submit":
		return w.submit()
	case "cancel":
		w.cancelEdit()
	case "note":
		w.selectID(noteID)
		w.focus.Set(focusList)
	case "edit":
		w.selectID(noteID)
		w.startEdit(noteID)
	case "del":
		return w.remove(noteID)
	}
	return nil
}

func (w *Widget) selectID(id string) {
	for i, n := range w.book.Ordered() {
		if n.ID == id {
			w.sel = i
			return
		}
	}
}
