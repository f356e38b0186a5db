package todo

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
	focusTask = "task"
	focusSub  = "sub"
	focusList = "list"
)

// ref points at a todo or, with sub set, one of its sub-todos.
type ref struct {
	todo, sub string
}

func (r ref) String() string {
	if r.sub == "" {
		return r.todo
	}
	return r.todo + "/" + r.sub
}

func parseRef(s string) ref {
	todo, sub, _ := strings.Cut(s, "/")
	return ref{todo: todo, sub: sub}
}

func itemRef(it Item) ref {
	if it.Sub != nil {
		return ref{todo: it.Todo.ID, sub: it.Sub.ID}
	}
	return ref{todo: it.Todo.ID}
}

// Widget is the todo list card content.
type Widget struct {
	env     widget.Env
	list    *List
	task    *widget.Field
	subtask *widget.Field
	focus   *widget.Focus
	editing ref
	sel     int
	status  widget.Status
	layout  *widget.Layout
}

// New returns the todo widget. Call Init to load the stored todos.
func New(env widget.Env) *Widget {
	env = env.WithDefaults()
	return &Widget{
		env:     env,
		list:    NewList(nil, env.Now, env.NewID),
		task:    widget.NewField("Add a new task..."),
		subtask: widget.NewField("Add a sub-task to the selected task..."),
		focus:   widget.NewFocus(focusTask, focusSub, focusList),
	}
}

// Title implements widget.Content.
func (w *Widget) Title() string { return widget.KindTodo.Label() }

// Init implements widget.Content.
func (w *Widget) Init() tea.Cmd { return w.load() }

// Todos returns the todos newest first.
func (w *Widget) Todos() []Todo { return w.list.Sorted() }

func (w *Widget) load() tea.Cmd {
	todos, err := store.LoadList[Todo](context.Background(), w.env.Store, store.KeyTodos)
	w.list = NewList(todos, w.env.Now, w.env.NewID)
	w.clampSel()
	if err != nil {
		w.env.Logger.Warn("loading todos", "err", err)
		return w.status.Error("Could not load todos")
	}
	return nil
}

func (w *Widget) persist(done string) tea.Cmd {
	if err := store.SetJSON(context.Background(), w.env.Store, store.KeyTodos, w.list.Todos); err != nil {
		w.env.Logger.Error("saving todos", "err", err)
		return w.status.Error("Could not save todos")
	}
	cmds := []tea.Cmd{widget.Changed(store.KeyTodos)}
	if done != "" {
		cmds = append(cmds, w.status.Success(done))
	}
	return tea.Batch(cmds...)
}

func (w *Widget) clampSel() {
	w.sel = max(0, min(w.sel, len(w.list.Items())-1))
}

func (w *Widget) selected() (Item, bool) {
	items := w.list.Items()
	if len(items) == 0 {
		return Item{}, false
	}
	return items[min(w.sel, len(items)-1)], true
}

// Update implements widget.Content.
func (w *Widget) Update(msg tea.Msg) tea.Cmd {
	if w.status.Update(msg) {
		return nil
	}
	switch msg := msg.(type) {
	case widget.ChangedMsg:
		if msg.Affects(store.KeyTodos) {
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

func (w *Widget) focusedField() *widget.Field {
	switch w.focus.Current() {
	case focusTask:
		return w.task
	case focusSub:
		return w.subtask
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

	switch w.focus.Current() {
	case focusList:
		return w.handleListKey(msg)
	case focusSub:
		if msg.String() == "enter" {
			return w.addSub()
		}
		w.subtask.HandleKey(msg)
	default:
		if msg.String() == "enter" {
			return w.submit()
		}
		w.task.HandleKey(msg)
	}
	return nil
}

func (w *Widget) handleListKey(msg tea.KeyPressMsg) tea.Cmd {
	it, ok := w.selected()
	switch msg.String() {
	case "up":
		w.sel = max(0, w.sel-1)
	case "down":
		w.sel++
		w.clampSel()
	case "space", "enter":
		if ok {
			return w.toggle(itemRef(it))
		}
	case "ctrl+e":
		if ok {
			w.startEdit(itemRef(it))
		}
	case "ctrl+d", "delete":
		if ok {
			return w.remove(itemRef(it))
		}
	}
	return nil
}

// submit adds a todo, or saves the edit in progress.
func (w *Widget) submit() tea.Cmd {
	if w.editing.todo != "" {
		return w.saveEdit()
	}
	if _, err := w.list.Add(w.task.Value()); err != nil {
		return nil
	}
	w.task.Reset()
	w.sel = 0
	return w.persist("")
}

func (w *Widget) saveEdit() tea.Cmd {
	r := w.editing
	var err error
	if r.sub == "" {
		err = w.list.Edit(r.todo, w.task.Value())
	} else {
		err = w.list.EditSub(r.todo, r.sub, w.task.Value())
	}
	w.editing = ref{}
	w.task.Reset()
	switch {
	case errors.Is(err, ErrEmpty):
		return nil
	case err != nil:
		return w.status.Error(err.Error())
	}
	return w.persist("")
}

func (w *Widget) addSub() tea.Cmd {
	it, ok := w.selected()
	if !ok {
		if strings.TrimSpace(w.subtask.Value()) != "" {
			return w.status.Error("Select a task first")
		}
		return nil
	}
	if _, err := w.list.AddSub(it.Todo.ID, w.subtask.Value()); err != nil {
		return nil
	}
	w.subtask.Reset()
	return w.persist("")
}

func (w *Widget) startEdit(r ref) {
	t, ok := w.list.Find(r.todo)
	if !ok {
		return
	}
	text := t.Text
	if r.sub != "" {
		text = ""
		for _, s := range t.SubTodos {
			if s.ID == r.sub {
				text = s.Text
			}
		}
	}
	w.editing = r
	w.task.SetValue(text)
	w.focus.Set(focusTask)
}

func (w *Widget) cancelEdit() {
	if w.editing.todo == "" {
		return
	}
	w.editing = ref{}
	w.task.Reset()
}

func (w *Widget) toggle(r ref) tea.Cmd {
	var err error
	if r.sub == "" {
		err = w.list.Toggle(r.todo)
	} else {
		err = w.list.ToggleSub(r.todo, r.sub)
	}
	if err != nil {
		return nil
	}
	return w.persist("")
}

func (w *Widget) remove(r ref) tea.Cmd {
	var ok bool
	if r.sub == "" {
		ok = w.list.Delete(r.todo)
	} else {
		ok = w.list.DeleteSub(r.todo, r.sub)
	}
	if !ok {
		return nil
	}
	if w.editing == r || (r.sub == "" && w.editing.todo == r.todo) {
		w.cancelEdit()
	}
	w.clampSel()
	return w.persist("Task deleted")
}

// View implements widget.Content.
func (w *Widget) View(width, height int) string {
	l := widget.NewLayout(width)

	heading := widget.Heading(w.Title())
	if done, total := w.list.Progress(); total > 0 {
		heading += widget.Muted(fmt.Sprintf("  %d / %d completed", done, total))
	}
	l.Line(heading)

	label, button := "Task", "Add"
	if w.editing.todo != "" {
		label, button = "Edit", "Save"
	}
	fieldW := max(1, width-12)
	l.Row(widget.Button(focusTask, widget.Labelled(label, w.task.View(fieldW, w.focus.Is(focusTask)), w.focus.Is(focusTask))))
	l.Row(widget.Button(focusSub, widget.Labelled("Sub-task", w.subtask.View(fieldW, w.focus.Is(focusSub)), w.focus.Is(focusSub))))
	actions := []widget.Span{widget.Text("  "), widget.Button("submit", widget.ButtonLabel(button))}
	if w.editing.todo != "" {
		actions = append(actions, widget.Text(" "), widget.Button("cancel", widget.ButtonLabel("Cancel")))
	}
	actions = append(actions, widget.Text(" "), widget.Button("addsub", widget.ButtonLabel("Add sub-task")))
	l.Row(actions...)
	l.Line(w.status.View())

	items := w.list.Items()
	if len(items) == 0 {
		l.Line(widget.Muted("No tasks yet. Create your first task above."))
		w.layout = l
		return l.Render(height)
	}

	rows := make([][]widget.Span, 0, len(items))
	for i, it := range items {
		r := itemRef(it)
		indent, text, done := "", it.Todo.Text, it.Todo.Completed
		if it.Sub != nil {
			indent, text, done = "    ", it.Sub.Text, it.Sub.Completed
		}
		if done {
			text = widget.Muted(text)
		}
		text = ansi.Truncate(text, max(1, width-len(indent)-14), "…")
		on := i == w.sel && w.focus.Is(focusList)
		rows = append(rows, []widget.Span{
			widget.Text(widget.Selected(indent, on)),
			widget.Button("check:"+r.String(), widget.Check(done)),
			widget.Text(" "),
			widget.Button("item:"+r.String(), text),
			widget.Text(" "),
			widget.Button("edit:"+r.String(), widget.ButtonLabel("e")),
			widget.Text(" "),
			widget.Button("del:"+r.String(), widget.DangerLabel("x")),
		})
	}
	l.List(rows, w.sel, height)

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
	kind, arg, _ := strings.Cut(id, ":")
	r := parseRef(arg)
	switch kind {
	case focusTask, focusSub:
		w.focus.Set(kind)
	case "submit":
		return w.submit()
	case "cancel":
		w.cancelEdit()
	case "addsub":
		return w.addSub()
	case "check":
		w.selectRef(r)
		return w.toggle(r)
	case "item":
		w.selectRef(r)
		w.focus.Set(focusList)
	case "edit":
		w.selectRef(r)
		w.startEdit(r)
	case "del":
		return w.remove(r)
	}
	return nil
}

func (w *Widget) selectRef(r ref) {
	for i, it := range w.list.Items() {
		if itemRef(it) == r {
			w.sel = i
			return
		}
	}
}
