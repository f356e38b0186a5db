package httpclient

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/devspace-tui/devspace/internal/store"
	"github.com/devspace-tui/devspace/internal/widget"
)

type section int

const (
	sectionParams section = iota
	sectionHeaders
	sectionBody
)

var sectionNames = []string{"Params", "Headers", "Body"}

const (
	focusMethod   = "method"
	focusURL      = "url"
	focusName     = "name"
	focusSaved    = "saved"
	focusSection  = "section"
	focusBodyType = "bodytype"
	focusBody     = "body"
	focusKey      = "key"
	focusValue    = "value"
	focusEntries  = "entries"
	focusResponse = "response"
)

// responseMsg carries the result of a send back to the widget that made it.
type responseMsg struct {
	owner *Widget
	seq   int
	resp  Response
}

// Widget is the HTTP client card content.
type Widget struct {
	env    widget.Env
	client *Client
	saved  *Collection

	req   Request
	url   *widget.Field
	body  *widget.Field
	key   *widget.Field
	value *widget.Field
	name  *widget.Field

	section   section
	focus     *widget.Focus
	entrySel  int
	savedSel  int
	showSaved bool
	naming    bool

	sending bool
	seq     int
	resp    *Response
	scroll  int

	status widget.Status
	layout *widget.Layout
}

// New returns the HTTP client widget sending through client. Call Init to
// load the saved requests.
func New(env widget.Env, client *Client) *Widget {
	env = env.WithDefaults()
	if client == nil {
		client = NewClient(ClientConfig{}, env.Logger)
	}
	w := &Widget{
		env:    env,
		client: client,
		saved:  NewCollection(nil, env.Now, env.NewID),
		req:    Request{Method: Methods[0], BodyType: BodyNone},
		url:    widget.NewField("https://api.example.com/endpoint"),
		body:   widget.NewField(`{"key": "value"}`),
		key:    widget.NewField("Key"),
		value:  widget.NewField("Value"),
		name:   widget.NewField("Request name"),
	}
	w.focus = widget.NewFocus(w.focusIDs()...)
	w.focus.Set(focusURL)
	return w
}

// Title implements widget.Content.
func (w *Widget) Title() string { return widget.KindHTTP.Label() }

// Init implements widget.Content.
func (w *Widget) Init() tea.Cmd { return w.load() }

// Saved returns the saved requests.
func (w *Widget) Saved() []SavedRequest { return w.saved.Requests }

// Request returns the request as currently composed.
func (w *Widget) Request() Request {
	r := w.req
	r.URL = w.url.Value()
	r.BodyContent = w.body.Value()
	return r
}

// Response returns the last response, if any.
func (w *Widget) Response() (Response, bool) {
	if w.resp == nil {
		return Response{}, false
	}
	return *w.resp, true
}

func (w *Widget) load() tea.Cmd {
	reqs, err := store.LoadList[SavedRequest](context.Background(), w.env.Store, store.KeyHTTPRequests)
	w.saved = NewCollection(reqs, w.env.Now, w.env.NewID)
	w.savedSel = max(0, min(w.savedSel, len(reqs)-1))
	if err != nil {
		w.env.Logger.Warn("loading saved requests", "err", err)
		return w.status.Error("Could not load saved requests")
	}
	return nil
}

func (w *Widget) persist(done string) tea.Cmd {
	if err := store.SetJSON(context.Background(), w.env.Store, store.KeyHTTPRequests, w.saved.Requests); err != nil {
		w.env.Logger.Error("saving requests", "err", err)
		return w.status.Error("Could not save requests")
	}
	return tea.Batch(widget.Changed(store.KeyHTTPRequests), w.status.Success(done))
}

// formBody reports whether the body is edited as key/value fields.
func (w *Widget) formBody() bool {
	return w.req.BodyType == BodyFormData || w.req.BodyType == BodyURLEncoded
}

// entries returns the key/value list the current section edits, or nil.
func (w *Widget) entries() *[]KeyValue {
	switch {
	case w.section == sectionParams:
		return &w.req.Params
	case w.section == sectionHeaders:
		return &w.req.Headers
	case w.formBody():
		return &w.req.FormData
	}
	return nil
}

func (w *Widget) focusIDs() []string {
	ids := []string{focusMethod, focusURL}
	if w.naming {
		ids = append(ids, focusName)
	}
	if w.showSaved && len(w.saved.Requests) > 0 {
		ids = append(ids, focusSaved)
	}
	ids = append(ids, focusSection)
	if w.section == sectionBody {
		ids = append(ids, focusBodyType)
		if w.req.BodyType == BodyJSON || w.req.BodyType == BodyRaw {
			ids = append(ids, focusBody)
		}
	}
	if w.entries() != nil {
		ids = append(ids, focusKey, focusValue, focusEntries)
	}
	if w.resp != nil {
		ids = append(ids, focusResponse)
	}
	return ids
}

// refocus rebuilds the focus ring after the visible controls change.
func (w *Widget) refocus(want string) {
	cur := w.focus.Current()
	w.focus = widget.NewFocus(w.focusIDs()...)
	if !w.focus.Set(want) && !w.focus.Set(cur) {
		w.focus.Set(focusSection)
	}
}

// Update implements widget.Content.
func (w *Widget) Update(msg tea.Msg) tea.Cmd {
	if w.status.Update(msg) {
		return nil
	}
	switch msg := msg.(type) {
	case responseMsg:
		if msg.owner == w && msg.seq == w.seq {
			w.sending = false
			w.resp = &msg.resp
			w.scroll = 0
			w.refocus("")
		}
	case widget.ChangedMsg:
		if msg.Affects(store.KeyHTTPRequests) {
			cmd := w.load()
			w.refocus("")
			return cmd
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
	case focusURL:
		return w.url
	case focusBody:
		return w.body
	case focusName:
		return w.name
	case focusKey:
		return w.key
	case focusValue:
		return w.value
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
	case "ctrl+r":
		return w.send()
	case "ctrl+s":
		return w.saveOrName()
	case "ctrl+o":
		w.toggleSaved()
		return nil
	case "esc":
		if w.naming {
			w.naming = false
			w.name.Reset()
			w.refocus(focusURL)
		}
		return nil
	}

	k := msg.String()
	switch w.focus.Current() {
	case focusMethod:
		w.req.Method = cycle(Methods, w.req.Method, k)
	case focusSection:
		if d := step(k); d != 0 {
			w.section = section((int(w.section) + d + len(sectionNames)) % len(sectionNames))
			w.entrySel = 0
			w.refocus(focusSection)
		}
	case focusBodyType:
		if step(k) != 0 {
			w.req.BodyType = cycle(BodyTypes, w.req.BodyType, k)
			w.entrySel = 0
			w.refocus(focusBodyType)
		}
	case focusURL:
		if k == "enter" {
			return w.send()
		}
		w.url.HandleKey(msg)
	case focusBody:
		if k == "enter" {
			return w.send()
		}
		w.body.HandleKey(msg)
	case focusName:
		if k == "enter" {
			return w.saveRequest()
		}
		w.name.HandleKey(msg)
	case focusKey:
		if k == "enter" {
			return w.addEntry()
		}
		w.key.HandleKey(msg)
	case focusValue:
		if k == "enter" {
			return w.addEntry()
		}
		w.value.HandleKey(msg)
	case focusEntries:
		return w.handleEntriesKey(k)
	case focusSaved:
		return w.handleSavedKey(k)
	case focusResponse:
		switch k {
		case "up":
			w.scroll = max(0, w.scroll-1)
		case "down":
			w.scroll++
		}
	}
	return nil
}

func step(k string) int {
	switch k {
	case "left":
		return -1
	case "right", "space":
		return 1
	}
	return 0
}

// cycle moves cur one step through opts for left/right keys.
func cycle(opts []string, cur, k string) string {
	d := step(k)
	if d == 0 {
		return cur
	}
	i := max(0, slices.Index(opts, cur))
	return opts[(i+d+len(opts))%len(opts)]
}

func (w *Widget) handleEntriesKey(k string) tea.Cmd {
	list := w.entries()
	if list == nil || len(*list) == 0 {
		return nil
	}
	w.entrySel = max(0, min(w.entrySel, len(*list)-1))
	id := (*list)[w.entrySel].ID
	switch k {
	case "up":
		w.entrySel = max(0, w.entrySel-1)
	case "down":
		w.entrySel = min(len(*list)-1, w.entrySel+1)
	case "space", "enter":
		w.toggleEntry(id)
	case "ctrl+e":
		w.editEntry(id)
	case "ctrl+d", "delete":
		w.removeEntry(id)
	}
	return nil
}

func (w *Widget) handleSavedKey(k string) tea.Cmd {
	reqs := w.saved.Requests
	if len(reqs) == 0 {
		return nil
	}
	w.savedSel = max(0, min(w.savedSel, len(reqs)-1))
	switch k {
	case "up":
		w.savedSel = max(0, w.savedSel-1)
	case "down":
		w.savedSel = min(len(reqs)-1, w.savedSel+1)
	case "enter":
		w.loadSaved(reqs[w.savedSel].ID)
	case "ctrl+d", "delete":
		return w.deleteSaved(reqs[w.savedSel].ID)
	}
	return nil
}

func (w *Widget) addEntry() tea.Cmd {
	list := w.entries()
	if list == nil {
		return nil
	}
	key := strings.TrimSpace(w.key.Value())
	if key == "" {
		return w.status.Error("Please enter a key")
	}
	*list = append(*list, KeyValue{ID: w.env.NewID(), Key: key, Value: w.value.Value(), Enabled: true})
	w.key.Reset()
	w.value.Reset()
	w.focus.Set(focusKey)
	return nil
}

func (w *Widget) toggleEntry(id string) {
	list := w.entries()
	if list == nil {
		return
	}
	for i := range *list {
		if (*list)[i].ID == id {
			(*list)[i].Enabled = !(*list)[i].Enabled
		}
	}
}

// editEntry moves an entry back into the key and value fields.
func (w *Widget) editEntry(id string) {
	list := w.entries()
	if list == nil {
		return
	}
	i := slices.IndexFunc(*list, func(kv KeyValue) bool { return kv.ID == id })
	if i < 0 {
		return
	}
	w.key.SetValue((*list)[i].Key)
	w.value.SetValue((*list)[i].Value)
	w.removeEntry(id)
	w.focus.Set(focusKey)
}

func (w *Widget) removeEntry(id string) {
	list := w.entries()
	if list == nil {
		return
	}
	*list = slices.DeleteFunc(*list, func(kv KeyValue) bool { return kv.ID == id })
	w.entrySel = max(0, min(w.entrySel, len(*list)-1))
}

func (w *Widget) send() tea.Cmd {
	r := w.Request()
	if _, err := r.Prepare(); err != nil {
		return w.status.Error(sentence(err.Error()))
	}
	w.sending = true
	w.resp = nil
	w.seq++
	seq, client, logger := w.seq, w.client, w.env.Logger
	return func() tea.Msg {
		resp, err := client.Do(context.Background(), r)
		if err != nil {
			resp = Response{StatusText: "Error", Headers: map[string]string{}, Body: err.Error()}
		}
		logger.Debug("http request", "method", r.Method, "url", r.URL, "status", resp.Status, "elapsed", resp.Time)
		return responseMsg{owner: w, seq: seq, resp: resp}
	}
}

func (w *Widget) saveOrName() tea.Cmd {
	if w.naming {
		return w.saveRequest()
	}
	if strings.TrimSpace(w.url.Value()) == "" {
		return w.status.Error(sentence(ErrEmptyURL.Error()))
	}
	w.naming = true
	w.refocus(focusName)
	return nil
}

func (w *Widget) saveRequest() tea.Cmd {
	_, err := w.saved.Save(w.name.Value(), w.Request())
	w.naming = false
	w.name.Reset()
	w.refocus(focusURL)
	if err != nil {
		return w.status.Error(sentence(err.Error()))
	}
	return w.persist("Request saved")
}

func (w *Widget) toggleSaved() {
	w.showSaved = !w.showSaved
	want := focusSaved
	if !w.showSaved {
		want = focusURL
	}
	w.refocus(want)
}

func (w *Widget) loadSaved(id string) {
	s, ok := w.saved.Find(id)
	if !ok {
		return
	}
	w.req = s.Request()
	if w.req.BodyType == "" {
		w.req.BodyType = BodyNone
	}
	w.url.SetValue(s.URL)
	w.body.SetValue(s.BodyContent)
	w.showSaved = false
	w.entrySel = 0
	w.refocus(focusURL)
}

func (w *Widget) deleteSaved(id string) tea.Cmd {
	if !w.saved.Delete(id) {
		return nil
	}
	w.savedSel = max(0, min(w.savedSel, len(w.saved.Requests)-1))
	w.refocus(focusSaved)
	return w.persist("Request deleted")
}

func sentence(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[n:]
}

// View implements widget.Content.
func (w *Widget) View(width, height int) string {
	l := widget.NewLayout(width)
	fieldW := max(1, width-9)
	focused := w.focus.Is

	methods := []widget.Span{widget.Text(marker(focused(focusMethod)))}
	for _, m := range Methods {
		label := widget.Muted(" " + m + " ")
		if m == w.req.Method {
			label = widget.ButtonLabel(m)
		}
		methods = append(methods, widget.Button("method:"+m, label))
	}
	l.Row(methods...)
	l.Row(widget.Button(focusURL, widget.Labelled("URL", w.url.View(fieldW, focused(focusURL)), focused(focusURL))))
	if w.naming {
		l.Row(widget.Button(focusName, widget.Labelled("Name", w.name.View(fieldW, focused(focusName)), focused(focusName))))
	}

	send := "Send"
	if w.sending {
		send = "Sending..."
	}
	savedLabel := fmt.Sprintf("Saved (%d)", len(w.saved.Requests))
	if w.showSaved {
		savedLabel = fmt.Sprintf("Hide (%d)", len(w.saved.Requests))
	}
	l.Row(widget.Text("  "),
		widget.Button("send", widget.ButtonLabel(send)), widget.Text(" "),
		widget.Button("save", widget.ButtonLabel("Save")), widget.Text(" "),
		widget.Button("saved", widget.ButtonLabel(savedLabel)))
	l.Line(w.status.View())

	if w.showSaved {
		for i, s := range w.saved.Requests {
			on := i == w.savedSel && focused(focusSaved)
			info := fmt.Sprintf("%-7s %s  %s", s.Method, s.Name, widget.Muted(s.URL))
			l.Row(
				widget.Button("load:"+s.ID, widget.Selected(ansi.Truncate(info, max(1, width-8), "…"), on)),
				widget.Text(" "),
				widget.Button("delsaved:"+s.ID, widget.DangerLabel("x")),
			)
		}
	}

	tabs := []widget.Span{widget.Text(marker(focused(focusSection)))}
	for i, name := range sectionNames {
		label := widget.Muted(" " + name + " ")
		if section(i) == w.section {
			label = widget.ButtonLabel(name)
		}
		tabs = append(tabs, widget.Button(fmt.Sprintf("section:%d", i), label))
	}
	l.Row(tabs...)

	if w.section == sectionBody {
		types := []widget.Span{widget.Text(marker(focused(focusBodyType)))}
		for _, bt := range BodyTypes {
			label := widget.Muted(" " + bt + " ")
			if bt == w.req.BodyType {
				label = widget.ButtonLabel(bt)
			}
			types = append(types, widget.Button("bodytype:"+bt, label))
		}
		l.Row(types...)
		if w.req.BodyType == BodyJSON || w.req.BodyType == BodyRaw {
			l.Row(widget.Button(focusBody, widget.Labelled("Body", w.body.View(fieldW, focused(focusBody)), focused(focusBody))))
		}
	}

	if list := w.entries(); list != nil {
		half := max(1, (width-18)/2)
		l.Row(
			widget.Button(focusKey, widget.Labelled("Key", w.key.View(half, focused(focusKey)), focused(focusKey))),
			widget.Text(" "),
			widget.Button(focusValue, widget.Labelled("Value", w.value.View(half, focused(focusValue)), focused(focusValue))),
		)
		l.Row(widget.Text("  "), widget.Button("addentry", widget.ButtonLabel("Add")))
		for i, kv := range *list {
			on := i == w.entrySel && focused(focusEntries)
			text := ansi.Truncate(kv.Key+" = "+kv.Value, max(1, width-12), "…")
			if !kv.Enabled {
				text = widget.Muted(text)
			}
			l.Row(
				widget.Text(widget.Selected("", on)),
				widget.Button("toggle:"+kv.ID, widget.Check(kv.Enabled)),
				widget.Text(" "),
				widget.Button("entry:"+kv.ID, text),
				widget.Text(" "),
				widget.Button("delentry:"+kv.ID, widget.DangerLabel("x")),
			)
		}
	}

	if w.resp != nil {
		l.Blank()
		l.Row(widget.Button(focusResponse, marker(focused(focusResponse))+w.responseLine()))
		bodyLines := strings.Split(w.resp.Body, "\n")
		w.scroll = max(0, min(w.scroll, len(bodyLines)-1))
		for _, line := range bodyLines[w.scroll:] {
			if l.Len() >= height {
				break
			}
			l.Line("  " + line)
		}
	}

	w.layout = l
	return l.Render(height)
}

func (w *Widget) responseLine() string {
	r := w.resp
	status := fmt.Sprintf("%d %s", r.Status, r.StatusText)
	if r.OK() {
		status = widget.Success(status)
	} else {
		status = widget.Failure(status)
	}
	return fmt.Sprintf("%s  %s", status, widget.Muted(fmt.Sprintf("%dms · %d headers", r.Time.Milliseconds(), len(r.Headers))))
}

func marker(on bool) string {
	if on {
		return widget.Selected("", true)
	}
	return "  "
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
	case focusURL, focusBody, focusKey, focusValue, focusName, focusResponse:
		w.focus.Set(kind)
	case "method":
		w.req.Method = arg
		w.focus.Set(focusMethod)
	case "section":
		var n int
		_, _ = fmt.Sscanf(arg, "%d", &n)
		w.section = section(n)
		w.entrySel = 0
		w.refocus(focusSection)
	case "bodytype":
		w.req.BodyType = arg
		w.refocus(focusBodyType)
	case "send":
		return w.send()
	case "save":
		return w.saveOrName()
	case "saved":
		w.toggleSaved()
	case "load":
		w.loadSaved(arg)
	case "delsaved":
		return w.deleteSaved(arg)
	case "addentry":
		return w.addEntry()
	case "toggle":
		w.toggleEntry(arg)
	case "entry":
		w.selectEntry(arg)
		w.focus.Set(focusEntries)
	case "delentry":
		w.removeEntry(arg)
	}
	return nil
}

func (w *Widget) selectEntry(id string) {
	if list := w.entries(); list != nil {
		if i := slices.IndexFunc(*list, func(kv KeyValue) bool { return kv.ID == id }); i >= 0 {
			w.entrySel = i
		}
	}
}
