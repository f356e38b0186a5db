package vault

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/devspace-tui/devspace/internal/store"
	"github.com/devspace-tui/devspace/internal/widget"
)

const (
	focusSearch   = "search"
	focusSite     = "site"
	focusUsername = "username"
	focusPassword = "password"
	focusList     = "list"
)

// Widget is the password manager card content.
type Widget struct {
	env        widget.Env
	cipherName string
	vault      *Vault

	search   *widget.Field
	site     *widget.Field
	username *widget.Field
	password *widget.Field
	focus    *widget.Focus

	editing  string
	revealed map[string]bool
	sel      int

	status widget.Status
	layout *widget.Layout
}

// New returns the vault widget using the named cipher. Call Init to load
// the master key and entries.
func New(env widget.Env, cipher string) *Widget {
	env = env.WithDefaults()
	w := &Widget{
		env:        env,
		cipherName: cipher,
		search:     widget.NewField("Search site or username..."),
		site:       widget.NewField("Site / app"),
		username:   widget.NewField("Username / email"),
		password:   widget.NewField("Password"),
		focus:      widget.NewFocus(focusSite, focusUsername, focusPassword, focusSearch, focusList),
		revealed:   map[string]bool{},
	}
	w.password.Masked = true
	return w
}

// Title implements widget.Content.
func (w *Widget) Title() string { return widget.KindVault.Label() }

// Init implements widget.Content.
func (w *Widget) Init() tea.Cmd { return w.load() }

// Visible returns the entries matching the search, newest first.
func (w *Widget) Visible() []Password {
	if w.vault == nil {
		return nil
	}
	return w.vault.Search(w.search.Value())
}

func (w *Widget) load() tea.Cmd {
	ctx := context.Background()
	master, err := MasterKey(ctx, w.env.Store, w.cipherName)
	if err != nil {
		w.env.Logger.Error("vault master key", "err", err)
		w.vault = nil
		return w.status.Error("Could not open the vault")
	}
	cipher, err := NewCipher(w.cipherName, master)
	if err != nil {
		w.env.Logger.Error("vault cipher", "err", err)
		w.vault = nil
		return w.status.Error("Could not open the vault")
	}

	recs, err := store.LoadList[Record](ctx, w.env.Store, store.KeyPasswords)
	if err != nil {
		w.env.Logger.Warn("loading passwords", "err", err)
	}
	entries, uerr := Unseal(recs, cipher)
	w.vault = NewVault(entries, cipher, w.env.Now, w.env.NewID)
	w.sel = max(0, min(w.sel, len(entries)-1))
	switch {
	case err != nil:
		return w.status.Error("Could not load passwords")
	case uerr != nil:
		w.env.Logger.Warn("unsealing passwords", "err", uerr)
		return w.status.Error("Some passwords could not be decrypted")
	}
	return nil
}

func (w *Widget) persist(done string) tea.Cmd {
	recs, err := w.vault.Seal()
	if err == nil {
		err = store.SetJSON(context.Background(), w.env.Store, store.KeyPasswords, recs)
	}
	if err != nil {
		w.env.Logger.Error("saving passwords", "err", err)
		return w.status.Error("Could not save passwords")
	}
	return tea.Batch(widget.Changed(store.KeyPasswords), w.status.Success(done))
}

// Update implements widget.Content.
func (w *Widget) Update(msg tea.Msg) tea.Cmd {
	if w.status.Update(msg) {
		return nil
	}
	switch msg := msg.(type) {
	case widget.ChangedMsg:
		if msg.Affects(store.KeyPasswords) || msg.Key == store.KeyPasswordMasterKey {
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
	case focusSite:
		return w.site
	case focusUsername:
		return w.username
	case focusPassword:
		return w.password
	case focusSearch:
		return w.search
	}
	return nil
}

func (w *Widget) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	k := msg.String()
	switch k {
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
		visible := w.Visible()
		if len(visible) == 0 {
			return nil
		}
		w.sel = max(0, min(w.sel, len(visible)-1))
		id := visible[w.sel].ID
		switch k {
		case "up":
			w.sel = max(0, w.sel-1)
		case "down":
			w.sel = min(len(visible)-1, w.sel+1)
		case "space", "enter":
			w.revealed[id] = !w.revealed[id]
		case "ctrl+y":
			return w.copy(id)
		case "ctrl+e":
			w.startEdit(id)
		case "ctrl+d", "delete":
			return w.remove(id)
		}
		return nil
	}

	if k == "enter" {
		if w.focus.Is(focusSearch) {
			w.focus.Set(focusList)
			return nil
		}
		return w.submit()
	}
	switch w.focus.Current() {
	case focusSearch:
		if w.search.HandleKey(msg) {
			w.sel = 0
		}
	case focusSite:
		w.site.HandleKey(msg)
	case focusUsername:
		w.username.HandleKey(msg)
	case focusPassword:
		w.password.HandleKey(msg)
	}
	return nil
}

func (w *Widget) submit() tea.Cmd {
	if w.vault == nil {
		return w.status.Error("The vault is not available")
	}
	var err error
	done := "Password added"
	if w.editing != "" {
		err = w.vault.Edit(w.editing, w.site.Value(), w.username.Value(), w.password.Value())
		done = "Password updated"
	} else {
		_, err = w.vault.Add(w.site.Value(), w.username.Value(), w.password.Value())
	}
	if errors.Is(err, ErrMissingField) {
		return w.status.Error("Please fill in all fields")
	}
	if err != nil {
		return w.status.Error(err.Error())
	}
	w.resetForm()
	return w.persist(done)
}

func (w *Widget) resetForm() {
	w.editing = ""
	w.site.Reset()
	w.username.Reset()
	w.password.Reset()
	w.focus.Set(focusSite)
}

func (w *Widget) startEdit(id string) {
	if w.vault == nil {
		return
	}
	p, ok := w.vault.Find(id)
	if !ok {
		return
	}
	w.editing = id
	w.site.SetValue(p.Site)
	w.username.SetValue(p.Username)
	w.password.SetValue(p.Password)
	w.focus.Set(focusSite)
}

func (w *Widget) cancelEdit() {
	if w.editing != "" {
		w.resetForm()
	}
}

func (w *Widget) remove(id string) tea.Cmd {
	if w.vault == nil || !w.vault.Delete(id) {
		return nil
	}
	delete(w.revealed, id)
	if w.editing == id {
		w.resetForm()
	}
	w.sel = max(0, min(w.sel, len(w.Visible())-1))
	return w.persist("Password deleted")
}

func (w *Widget) copy(id string) tea.Cmd {
	if w.vault == nil {
		return nil
	}
	p, ok := w.vault.Find(id)
	if !ok {
		return nil
	}
	return tea.Batch(tea.SetClipboard(p.Password), w.status.Success("Password copied"))
}

// View implements widget.Content.
func (w *Widget) View(width, height int) string {
	l := widget.NewLayout(width)
	fieldW := max(1, width-12)
	field := func(id, label string, f *widget.Field) {
		l.Row(widget.Button(id, widget.Labelled(label, f.View(fieldW, w.focus.Is(id)), w.focus.Is(id))))
	}

	field(focusSite, "Site", w.site)
	field(focusUsername, "Username", w.username)
	field(focusPassword, "Password", w.password)
	if w.editing != "" {
		l.Row(widget.Text("  "), widget.Button("submit", widget.ButtonLabel("Save")), widget.Text(" "), widget.Button("cancel", widget.ButtonLabel("Cancel")))
	} else {
		l.Row(widget.Text("  "), widget.Button("submit", widget.ButtonLabel("Add")))
	}
	l.Line(w.status.View())
	field(focusSearch, "Search", w.search)

	visible := w.Visible()
	if len(visible) == 0 {
		if w.search.Value() != "" {
			l.Line(widget.Muted("No passwords match."))
		} else {
			l.Line(widget.Muted("No passwords saved yet."))
		}
		w.layout = l
		return l.Render(height)
	}

	rows := make([][]widget.Span, 0, len(visible))
	for i, p := range visible {
		secret := strings.Repeat("•", 8)
		eye := "show"
		if w.revealed[p.ID] {
			secret, eye = p.Password, "hide"
		}
		text := ansi.Truncate(p.Site+"  "+widget.Muted(p.Username)+"  "+secret, max(1, width-28), "…")
		on := i == w.sel && w.focus.Is(focusList)
		rows = append(rows, []widget.Span{
			widget.Button("entry:"+p.ID, widget.Selected(text, on)),
			widget.Text(" "),
			widget.Button("reveal:"+p.ID, widget.ButtonLabel(eye)),
			widget.Text(" "),
			widget.Button("copy:"+p.ID, widget.ButtonLabel("copy")),
			widget.Text(" "),
			widget.Button("edit:"+p.ID, widget.ButtonLabel("e")),
			widget.Text(" "),
			widget.Button("del:"+p.ID, widget.DangerLabel("x")),
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
	switch kind {
	case focusSite, focusUsername, focusPassword, focusSearch:
		w.focus.Set(kind)
	case "submit":
		return w.submit()
	case "cancel":
		w.cancelEdit()
	case "entry":
		w.selectID(arg)
		w.focus.Set(focusList)
	case "reveal":
		w.revealed[arg] = !w.revealed[arg]
	case "copy":
		return w.copy(arg)
	case "edit":
		w.selectID(arg)
		w.startEdit(arg)
	case "del":
		return w.remove(arg)
	}
	return nil
}

func (w *Widget) selectID(id string) {
	for i, p := range w.Visible() {
		if p.ID == id {
			w.sel = i
			return
		}
	}
}
