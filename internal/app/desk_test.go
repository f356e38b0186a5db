package app

import (
	"io"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"github.com/devspace-tui/devspace/internal/card"
	"github.com/devspace-tui/devspace/internal/config"
	"github.com/devspace-tui/devspace/internal/geom"
	"github.com/devspace-tui/devspace/internal/store"
	"github.com/devspace-tui/devspace/internal/testutil"
	"github.com/devspace-tui/devspace/internal/widget"
)

// zeroRand places every card at the origin.
type zeroRand struct{}

func (zeroRand) IntN(int) int { return 0 }

// newTestDesk returns a 120x41 desk: a 960x640 pixel card area above a one
// row dock.
func newTestDesk(t *testing.T) *Desk {
	t.Helper()
	useASCII(t)
	d, err := New(Options{
		Store:  store.NewMemory(),
		Logger: log.New(io.Discard),
		Width:  120,
		Height: 41,
		Rand:   zeroRand{},
		Now:    testutil.Clock(),
		NewID:  testutil.Seq("id"),
	})
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func useASCII(t *testing.T) {
	t.Helper()
	prev, prevClock := config.UseASCIIOnly, config.HideClock
	config.UseASCIIOnly = true
	t.Cleanup(func() {
		config.UseASCIIOnly = prev
		config.HideClock = prevClock
	})
}

func TestNewAppliesDefaults(t *testing.T) {
	d := newTestDesk(t)
	if d.Metrics != (Metrics{CellWidth: 8, CellHeight: 16}) {
		t.Errorf("metrics = %+v", d.Metrics)
	}
	if got, want := d.Viewport(), (geom.Size{Width: 960, Height: 640}); got != want {
		t.Errorf("viewport = %v, want %v", got, want)
	}
	if d.Focused != -1 || len(d.Windows) != 0 {
		t.Errorf("new desk has windows or focus")
	}
}

func TestNewRejectsUnknownHandle(t *testing.T) {
	_, err := New(Options{Window: config.WindowConfig{Handles: []string{"middle"}}})
	if err == nil {
		t.Fatal("expected an error for an unknown handle")
	}
}

func TestOpenToggleClose(t *testing.T) {
	d := newTestDesk(t)

	d.Open(widget.KindNotes)
	d.Open(widget.KindTodo)
	if len(d.Windows) != 2 || d.Focused != 1 {
		t.Fatalf("windows=%d focused=%d", len(d.Windows), d.Focused)
	}
	if got := d.Windows[0].Card.Title(); got != "Daily Notes" {
		t.Errorf("title = %q", got)
	}

	d.Open(widget.KindNotes)
	if len(d.Windows) != 2 || d.Focused != 0 {
		t.Errorf("reopening should only focus: windows=%d focused=%d", len(d.Windows), d.Focused)
	}

	d.Toggle(widget.KindNotes)
	if d.IsOpen(widget.KindNotes) {
		t.Error("toggle should close an open widget")
	}
	if d.Focused != 0 || d.FocusedWindow().Kind != widget.KindTodo {
		t.Errorf("focus after close = %d", d.Focused)
	}

	d.Toggle(widget.KindNotes)
	if !d.IsOpen(widget.KindNotes) || d.FocusedWindow().Kind != widget.KindNotes {
		t.Error("toggle should open and focus a closed widget")
	}

	d.Close(0)
	d.Close(0)
	if d.Focused != -1 || d.FocusedWindow() != nil {
		t.Errorf("focus = %d with no windows", d.Focused)
	}
	d.Close(3)
}

func TestCloseShiftsFocus(t *testing.T) {
	tests := []struct {
		name    string
		focused int
		close   int
		want    int
	}{
		{"before focus", 2, 0, 1},
		{"focused middle", 1, 1, 1},
		{"focused last", 2, 2, 1},
		{"after focus", 0, 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDesk(t)
			d.Open(widget.KindNotes)
			d.Open(widget.KindTodo)
			d.Open(widget.KindData)
			d.FocusWindow(tt.focused)
			d.Close(tt.close)
			if d.Focused != tt.want {
				t.Errorf("focused = %d, want %d", d.Focused, tt.want)
			}
		})
	}
}

func TestCycleFocus(t *testing.T) {
	d := newTestDesk(t)
	d.CycleFocus(1)
	for _, k := range []widget.Kind{widget.KindNotes, widget.KindTodo, widget.KindHTTP} {
		d.Open(k)
	}
	d.CycleFocus(1)
	if d.Focused != 0 {
		t.Errorf("next from last = %d, want 0", d.Focused)
	}
	d.CycleFocus(-1)
	if d.Focused != 2 {
		t.Errorf("previous from first = %d, want 2", d.Focused)
	}
}

func TestCloseReleasesCapture(t *testing.T) {
	d := newTestDesk(t)
	d.Open(widget.KindNotes)
	c := d.Windows[0].Card

	if !c.PointerDown(card.Body(), geom.Point{X: 100, Y: 8}) {
		t.Fatal("pointer-down on the body should start a drag")
	}
	if !d.Captures.Active() {
		t.Fatal("drag should hold a capture")
	}
	d.Close(0)
	if d.Captures.Active() {
		t.Error("closing the card should release its capture")
	}
	if c.Mode() != card.Idle {
		t.Errorf("mode = %v after close", c.Mode())
	}
}

func TestCancelGestures(t *testing.T) {
	d := newTestDesk(t)
	d.Open(widget.KindNotes)
	c := d.Windows[0].Card

	if d.CancelGestures() {
		t.Error("nothing to cancel")
	}
	c.PointerDown(card.OnHandle(geom.Right), geom.Point{X: 800, Y: 300})
	c.PointerMove(geom.Point{X: 900, Y: 300})
	if !d.CancelGestures() {
		t.Fatal("resize should be cancelled")
	}
	if d.Captures.Active() || c.Mode() != card.Idle {
		t.Error("cancel should end the gesture and release the capture")
	}
	if c.Size().Width != 900 {
		t.Errorf("committed width = %d, want 900", c.Size().Width)
	}
}

func TestResizeRefitsCards(t *testing.T) {
	d := newTestDesk(t)
	d.Open(widget.KindNotes)
	c := d.Windows[0].Card
	c.PointerDown(card.Body(), geom.Point{X: 10, Y: 10})
	c.PointerMove(geom.Point{X: 170, Y: 50})
	c.PointerUp()
	if got := c.Position(); got != (geom.Point{X: 160, Y: 40}) {
		t.Fatalf("position after drag = %v", got)
	}

	d.Update(tea.WindowSizeMsg{Width: 80, Height: 31})
	r := c.Rect()
	vp := d.Viewport()
	if r.Right() > vp.Width || r.Bottom() > vp.Height || r.X < 0 || r.Y < 0 {
		t.Errorf("card %v outside viewport %v after resize", r, vp)
	}
}

func TestUpdateRecordsSystemSample(t *testing.T) {
	d := newTestDesk(t)
	_, cmd := d.Update(SysInfoMsg{CPU: 50, Mem: 25})
	if cmd == nil {
		t.Error("a sample should schedule the next one")
	}
	if !d.sys.Sampled || d.sys.MemPercent != 25 {
		t.Errorf("sys = %+v", d.sys)
	}
}

func TestSysInfoHistory(t *testing.T) {
	var s SysInfo
	for i := range cpuHistorySize + 3 {
		s.Add(SysInfoMsg{CPU: float64(i * 10)})
	}
	if len(s.CPUHistory) != cpuHistorySize {
		t.Fatalf("history length = %d", len(s.CPUHistory))
	}
	if s.CPUHistory[0] != 30 {
		t.Errorf("oldest sample = %v, want 30", s.CPUHistory[0])
	}
	if !strings.HasSuffix(s.CPUGraph(), "120%") {
		t.Errorf("graph = %q", s.CPUGraph())
	}
}

func TestBlurCancelsGestures(t *testing.T) {
	d := newTestDesk(t)
	d.Open(widget.KindTodo)
	d.Windows[0].Card.PointerDown(card.Body(), geom.Point{X: 10, Y: 10})
	d.Update(tea.BlurMsg{})
	if d.Captures.Active() {
		t.Error("focus loss should cancel the drag")
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.HTTP.Timeout = "5s"
	cfg.HTTP.Retries = 2
	cfg.Vault.Cipher = "secretbox"
	cfg.Appearance.HideStats = true

	opts := OptionsFromConfig(cfg)
	if opts.HTTP.Timeout.String() != "5s" || opts.HTTP.Retries != 2 {
		t.Errorf("http = %+v", opts.HTTP)
	}
	if opts.Cipher != "secretbox" || opts.SystemStats {
		t.Errorf("cipher %q stats %v", opts.Cipher, opts.SystemStats)
	}
	if opts.Window.DefaultWidth != config.DefaultCardWidth {
		t.Errorf("window = %+v", opts.Window)
	}

	if !OptionsFromConfig(nil).SystemStats {
		t.Error("stats are on by default")
	}
}
