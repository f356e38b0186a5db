package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/devspace-tui/devspace/internal/store"
	"github.com/devspace-tui/devspace/internal/testutil"
	"github.com/devspace-tui/devspace/internal/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWidget(t *testing.T) (*Widget, *store.Memory) {
	t.Helper()
	env, mem := testutil.Env()
	w := New(env, newTestClient())
	w.Init()
	return w, mem
}

func click(t *testing.T, w *Widget, id string) {
	t.Helper()
	w.View(100, 40)
	x, y, ok := w.layout.Find(id)
	require.True(t, ok, "control %q not rendered", id)
	require.True(t, w.ControlAt(x, y))
	w.Click(x, y)
}

func TestWidgetSendRequiresURL(t *testing.T) {
	w, _ := newWidget(t)
	assert.NotNil(t, w.send(), "the error status schedules its expiry")
	assert.Equal(t, widget.StatusError, w.status.Kind)
	assert.Equal(t, "Please enter a URL", w.status.Text)
}

func TestWidgetSendsAndShowsResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(r.Method + " " + r.URL.RawQuery))
	}))
	defer srv.Close()

	w, _ := newWidget(t)
	testutil.Type(w, srv.URL)

	// add a query param from the Params section
	click(t, w, focusKey)
	testutil.Type(w, "q")
	testutil.Press(w, "tab")
	testutil.Type(w, "go")
	testutil.Press(w, "enter")
	require.Len(t, w.req.Params, 1)

	click(t, w, "method:DELETE")
	w.focus.Set(focusURL)
	cmd := w.Update(testutil.Key("enter"))
	require.NotNil(t, cmd)
	assert.True(t, w.sending)

	w.Update(cmd())
	assert.False(t, w.sending)
	resp, ok := w.Response()
	require.True(t, ok)
	assert.Equal(t, 200, resp.Status)
	assert.Equal(t, "DELETE q=go", resp.Body)
	assert.Contains(t, w.View(100, 40), "DELETE q=go")
}

func TestWidgetDropsStaleResponse(t *testing.T) {
	w, _ := newWidget(t)
	w.url.SetValue("http://127.0.0.1:1")
	w.send()
	w.send()
	w.Update(responseMsg{owner: w, seq: 1, resp: Response{Status: 500}})
	_, ok := w.Response()
	assert.False(t, ok, "response from a superseded send was shown")
	w.Update(responseMsg{owner: w, seq: 2, resp: Response{Status: 204}})
	resp, ok := w.Response()
	require.True(t, ok)
	assert.Equal(t, 204, resp.Status)
}

func TestWidgetToggleAndRemoveEntries(t *testing.T) {
	w, _ := newWidget(t)
	click(t, w, "section:1")
	assert.Equal(t, sectionHeaders, w.section)

	w.key.SetValue("Accept")
	w.value.SetValue("text/plain")
	w.addEntry()
	require.Len(t, w.req.Headers, 1)
	id := w.req.Headers[0].ID

	click(t, w, "toggle:"+id)
	assert.False(t, w.req.Headers[0].Enabled)

	w.focus.Set(focusEntries)
	testutil.Press(w, "ctrl+e")
	assert.Empty(t, w.req.Headers)
	assert.Equal(t, "Accept", w.key.Value())

	w.addEntry()
	click(t, w, "delentry:"+w.req.Headers[0].ID)
	assert.Empty(t, w.req.Headers)
}

func TestWidgetBodyTypes(t *testing.T) {
	w, _ := newWidget(t)
	click(t, w, "section:2")
	assert.Nil(t, w.entries(), "body none has no fields")

	click(t, w, "bodytype:json")
	w.View(100, 40)
	_, _, ok := w.layout.Find(focusBody)
	assert.True(t, ok, "json body shows the body field")

	click(t, w, "bodytype:form-data")
	require.NotNil(t, w.entries())
	w.key.SetValue("file")
	w.addEntry()
	assert.Len(t, w.req.FormData, 1)

	w.focus.Set(focusBodyType)
	testutil.Press(w, "right")
	assert.Equal(t, BodyRaw, w.req.BodyType)
}

func TestWidgetSaveAndLoad(t *testing.T) {
	w, mem := newWidget(t)

	testutil.Press(w, "ctrl+s")
	assert.False(t, w.naming, "cannot name a request without a URL")

	testutil.Type(w, "https://api.test/users")
	w.req.Method = "POST"
	testutil.Press(w, "ctrl+s")
	require.True(t, w.naming)
	assert.True(t, w.focus.Is(focusName))
	testutil.Type(w, "create user")
	testutil.Press(w, "enter")
	assert.False(t, w.naming)

	var saved []SavedRequest
	require.NoError(t, store.GetJSON(context.Background(), mem, store.KeyHTTPRequests, &saved))
	require.Len(t, saved, 1)
	assert.Equal(t, "create user", saved[0].Name)
	assert.Equal(t, "POST", saved[0].Method)

	// start over, then load it back
	w.url.Reset()
	w.req.Method = "GET"
	testutil.Press(w, "ctrl+o")
	require.True(t, w.focus.Is(focusSaved))
	testutil.Press(w, "enter")
	assert.Equal(t, "https://api.test/users", w.url.Value())
	assert.Equal(t, "POST", w.req.Method)
	assert.False(t, w.showSaved)

	w.showSaved = true
	click(t, w, "delsaved:"+saved[0].ID)
	assert.Empty(t, w.Saved())
	require.NoError(t, store.GetJSON(context.Background(), mem, store.KeyHTTPRequests, &saved))
	assert.Empty(t, saved)
}

func TestWidgetSaveRequiresName(t *testing.T) {
	w, mem := newWidget(t)
	w.url.SetValue("https://api.test")
	testutil.Press(w, "ctrl+s", "enter")
	assert.Equal(t, "Please enter a name for the request", w.status.Text)
	_, err := mem.Get(context.Background(), store.KeyHTTPRequests)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
