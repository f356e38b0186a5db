package data

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/devspace-tui/devspace/internal/store"
	"github.com/devspace-tui/devspace/internal/testutil"
	"github.com/devspace-tui/devspace/internal/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, store.KeyDailyNotes, `[{"id":"n1","date":"2024-03-15","content":"hi","createdAt":1}]`))
	require.NoError(t, s.Set(ctx, store.KeyTodos, `[{"id":"t1","text":"a","completed":false,"subTodos":[],"createdAt":1},{"id":"t2","text":"b","completed":true,"subTodos":[],"createdAt":2}]`))
	require.NoError(t, s.Set(ctx, store.KeyPasswordMasterKey, "master"))
}

func TestLoadCounts(t *testing.T) {
	mem := store.NewMemory()
	seed(t, mem)
	require.NoError(t, mem.Set(context.Background(), store.KeyPasswords, "not json"))

	doc, counts, err := Load(context.Background(), mem)
	require.NoError(t, err)
	assert.Equal(t, Counts{DailyNotes: 1, Todos: 2}, counts)
	assert.Equal(t, 3, counts.Total())
	assert.JSONEq(t, `[]`, string(doc.Passwords), "corrupt values read as empty")
	assert.JSONEq(t, `[]`, string(doc.HTTPRequests), "missing values read as empty")
}

func TestExportFormat(t *testing.T) {
	mem := store.NewMemory()
	seed(t, mem)

	out, err := Export(context.Background(), mem)
	require.NoError(t, err)
	s := string(out)

	assert.True(t, strings.HasPrefix(s, "{\n  \"dailyNotes\": ["), "two-space indent, got:\n%s", s)
	order := []int{
		strings.Index(s, `"dailyNotes"`),
		strings.Index(s, `"todos"`),
		strings.Index(s, `"httpRequests"`),
		strings.Index(s, `"passwords"`),
	}
	for i := 1; i < len(order); i++ {
		assert.Greater(t, order[i], order[i-1], "collections appear in document order")
	}
	assert.NotContains(t, s, store.KeyPasswordMasterKey)

	var back map[string][]map[string]any
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Len(t, back["todos"], 2)
	assert.Equal(t, "hi", back["dailyNotes"][0]["content"])
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not json", `{`},
		{"not an object", `[]`},
		{"missing key", `{"dailyNotes":[],"todos":[],"httpRequests":[]}`},
		{"null collection", `{"dailyNotes":null,"todos":[],"httpRequests":[],"passwords":[]}`},
		{"object collection", `{"dailyNotes":{},"todos":[],"httpRequests":[],"passwords":[]}`},
		{"string collection", `{"dailyNotes":[],"todos":"x","httpRequests":[],"passwords":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.in))
			assert.ErrorIs(t, err, ErrInvalidFormat)
		})
	}
}

func TestImportReplacesCollections(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	seed(t, mem)

	in := `{
	  "dailyNotes": [],
	  "todos": [ {"id": "x", "text": "imported", "completed": false, "subTodos": [], "createdAt": 5} ],
	  "httpRequests": [],
	  "passwords": [],
	  "extra": true
	}`
	require.NoError(t, Import(ctx, mem, []byte(in)))

	todos, err := mem.Get(ctx, store.KeyTodos)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"x","text":"imported","completed":false,"subTodos":[],"createdAt":5}]`, todos)
	notes, err := mem.Get(ctx, store.KeyDailyNotes)
	require.NoError(t, err)
	assert.Equal(t, `[]`, notes)

	master, err := mem.Get(ctx, store.KeyPasswordMasterKey)
	require.NoError(t, err)
	assert.Equal(t, "master", master)
	_, err = mem.Get(ctx, "extra")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestImportIsAllOrNothing(t *testing.T) {
	mem := store.NewMemory()
	seed(t, mem)
	before := mem.Snapshot()

	err := Import(context.Background(), mem, []byte(`{"dailyNotes":[],"todos":[],"httpRequests":[],"passwords":5}`))
	require.ErrorIs(t, err, ErrInvalidFormat)
	assert.Equal(t, before, mem.Snapshot())
}

func TestClearKeepsMasterKey(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	seed(t, mem)

	require.NoError(t, Clear(ctx, mem))
	require.NoError(t, Clear(ctx, mem), "clearing twice is fine")

	_, counts, err := Load(ctx, mem)
	require.NoError(t, err)
	assert.Zero(t, counts.Total())
	assert.Equal(t, map[string]string{store.KeyPasswordMasterKey: "master"}, mem.Snapshot())
}

func click(t *testing.T, w *Widget, id string) tea.Cmd {
	t.Helper()
	w.View(80, 30)
	x, y, ok := w.layout.Find(id)
	require.True(t, ok, "control %q not rendered", id)
	return w.Click(x, y)
}

func TestWidgetShowsCounts(t *testing.T) {
	env, mem := testutil.Env()
	seed(t, mem)
	w := New(env)
	require.Nil(t, w.Init())
	assert.Equal(t, 2, w.Counts().Todos)

	require.NoError(t, mem.Set(context.Background(), store.KeyHTTPRequests, `[{"id":"r"}]`))
	w.Update(widget.ChangedMsg{Key: store.KeyHTTPRequests})
	assert.Equal(t, 1, w.Counts().HTTPRequests)
	assert.Contains(t, w.View(80, 30), "HTTP Requests")
}

func TestWidgetExportAndCopy(t *testing.T) {
	env, mem := testutil.Env()
	seed(t, mem)
	w := New(env)
	w.Init()

	assert.Nil(t, w.Update(testutil.Key("ctrl+y")), "nothing to copy yet")
	click(t, w, "export")
	assert.Contains(t, w.Text(), `"dailyNotes": [`)

	assert.NotNil(t, click(t, w, "copy"))
	assert.Equal(t, "Copied to clipboard", w.status.Text)
}

func TestWidgetImportFromPaste(t *testing.T) {
	env, mem := testutil.Env()
	seed(t, mem)
	w := New(env)
	w.Init()

	w.Update(tea.PasteMsg{Content: `{"dailyNotes":[],"todos":[],`})
	w.Update(tea.PasteMsg{Content: `"httpRequests":[],"passwords":[]}`})
	cmd := w.Update(testutil.Key("ctrl+s"))
	require.NotNil(t, cmd)
	assert.Equal(t, widget.StatusSuccess, w.status.Kind)
	assert.Equal(t, "Data imported successfully!", w.status.Text)
	assert.Empty(t, w.Text())
	assert.Zero(t, w.Counts().Total())
}

func TestWidgetImportRejectsBadJSON(t *testing.T) {
	env, mem := testutil.Env()
	seed(t, mem)
	w := New(env)
	w.Init()
	before := mem.Snapshot()

	testutil.Type(w, `{"todos": []}`)
	click(t, w, "import")
	assert.Equal(t, widget.StatusError, w.status.Kind)
	assert.Equal(t, "Import failed. Check the JSON format.", w.status.Text)
	assert.Equal(t, `{"todos": []}`, w.Text(), "text is kept for fixing")
	assert.Equal(t, before, mem.Snapshot())

	testutil.Press(w, "backspace")
	assert.Equal(t, `{"todos": []`, w.Text())
	testutil.Press(w, "ctrl+u")
	assert.Empty(t, w.Text())
}

func TestWidgetClearNeedsConfirmation(t *testing.T) {
	env, mem := testutil.Env()
	seed(t, mem)
	w := New(env)
	w.Init()

	click(t, w, "clear")
	assert.Equal(t, 3, w.Counts().Total(), "first press only asks")
	assert.Contains(t, w.View(80, 30), "Confirm clear")

	click(t, w, "export")
	click(t, w, "clear")
	assert.Equal(t, 3, w.Counts().Total(), "another action resets the prompt")

	click(t, w, "clear")
	assert.Equal(t, "All data was cleared!", w.status.Text)
	assert.Zero(t, w.Counts().Total())
	_, err := mem.Get(context.Background(), store.KeyPasswordMasterKey)
	assert.NoError(t, err)
}
