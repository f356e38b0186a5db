package input

import (
	"io"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"github.com/devspace-tui/devspace/internal/app"
	"github.com/devspace-tui/devspace/internal/card"
	"github.com/devspace-tui/devspace/internal/config"
	"github.com/devspace-tui/devspace/internal/geom"
	"github.com/devspace-tui/devspace/internal/store"
	"github.com/devspace-tui/devspace/internal/testutil"
	"github.com/devspace-tui/devspace/internal/widget"
)

type zeroRand struct{}

func (zeroRand) IntN(int) int { return 0 }

// stubContent has one control at content cell (2, 0) and records what it
// receives.
type stubContent struct {
	clicks []geom.Point
	keys   []string
	pastes []string
}

func (*stubContent) Title() string           { return "Stub" }
func (*stubContent) Init() tea.Cmd           { return nil }
func (*stubContent) View(int, int) string    { return "" }
func (*stubContent) ControlAt(x, y int) bool { return x == 2 && y == 0 }

func (s *stubContent) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		s.keys = append(s.keys, msg.String())
	case tea.PasteMsg:
		s.pastes = append(s.pastes, msg.Content)
	}
	return nil
}

func (s *stubContent) Click(x, y int) tea.Cmd {
	s.clicks = append(s.clicks, geom.Point{X: x, Y: y})
	return nil
}

// newDesk returns a 120x41 desk with one 800x600 stub card at the origin,
// covering cells (0,0) to (99,36).
func newDesk(t *testing.T) (*app.Desk, *stubContent) {
	t.Helper()
	prev := config.UseASCIIOnly
	config.UseASCIIOnly = true
	t.Cleanup(func() { config.UseASCIIOnly = prev })

	d, err := app.New(app.Options{
		Store:  store.NewMemory(),
		Logger: log.New(io.Discard),
		Width:  120,
		Height: 41,
		Rand:   zeroRand{},
		Now:    testutil.Clock(),
	})
	if err != nil {
		t.Fatal(err)
	}
	stub := &stubContent{}
	c := card.New(stub, geom.DefaultSize(), d.Viewport,
		card.WithTracker(d.Captures),
		card.WithRand(zeroRand{}),
	)
	d.Windows = append(d.Windows, &app.Window{Kind: "stub", Card: c, Content: stub})
	d.Focused = 0
	return d, stub
}

func click(d *app.Desk, x, y int) tea.Cmd {
	_, cmd := HandleInput(tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft}, d)
	return cmd
}

func move(d *app.Desk, x, y int) {
	HandleInput(tea.MouseMotionMsg{X: x, Y: y, Button: tea.MouseLeft}, d)
}

func release(d *app.Desk, x, y int) {
	HandleInput(tea.MouseReleaseMsg{X: x, Y: y, Button: tea.MouseLeft}, d)
}

func TestDragByTitleBar(t *testing.T) {
	d, _ := newDesk(t)
	c := d.Windows[0].Card

	click(d, 10, 1)
	if c.Mode() != card.Dragging || !d.Captures.Active() {
		t.Fatalf("mode = %v, want dragging with a capture", c.Mode())
	}
	move(d, 15, 2)
	if got := c.Position(); got != (geom.Point{X: 40, Y: 16}) {
		t.Errorf("position = %v, want (40,16)", got)
	}
	move(d, 200, 200)
	if got := c.Position(); got != (geom.Point{X: 160, Y: 40}) {
		t.Errorf("position = %v, want clamped to (160,40)", got)
	}
	release(d, 12, 1)
	if c.Mode() != card.Idle || d.Captures.Active() {
		t.Error("release should end the drag and its capture")
	}
	if got := c.Position(); got != (geom.Point{X: 16, Y: 0}) {
		t.Errorf("position = %v, want (16,0)", got)
	}
	if c.Size() != geom.DefaultSize() {
		t.Errorf("drag changed size to %v", c.Size())
	}
}

func TestResizeByCorner(t *testing.T) {
	d, _ := newDesk(t)
	c := d.Windows[0].Card

	click(d, 99, 36)
	if h, ok := c.ActiveHandle(); c.Mode() != card.Resizing || !ok || h != geom.BottomRight {
		t.Fatalf("mode = %v handle = %v", c.Mode(), h)
	}
	move(d, 110, 38)
	release(d, 110, 38)
	if got := c.Rect(); got != geom.NewRect(0, 0, 888, 632) {
		t.Errorf("rect = %v, want 888x632 at origin", got)
	}

	click(d, 110, 38)
	move(d, 0, 0)
	release(d, 0, 0)
	if got := c.Size(); got != (geom.Size{Width: geom.MinSize, Height: geom.MinSize}) {
		t.Errorf("size = %v, want the minimum", got)
	}
}

func TestDisabledHandleDrags(t *testing.T) {
	d, _ := newDesk(t)
	click(d, 0, 10)
	if m := d.Windows[0].Card.Mode(); m != card.Dragging {
		t.Errorf("left edge is disabled, mode = %v, want dragging", m)
	}
}

func TestPressDuringGestureIsIgnored(t *testing.T) {
	d, _ := newDesk(t)
	c := d.Windows[0].Card
	click(d, 10, 1)
	click(d, 99, 36)
	if c.Mode() != card.Dragging {
		t.Errorf("mode = %v, want the original drag", c.Mode())
	}
}

func TestMotionWithoutCaptureIsIgnored(t *testing.T) {
	d, _ := newDesk(t)
	move(d, 50, 20)
	release(d, 50, 20)
	if got := d.Windows[0].Card.Position(); got != (geom.Point{}) {
		t.Errorf("position = %v", got)
	}
}

func TestClickControlRoutesToContent(t *testing.T) {
	d, stub := newDesk(t)
	click(d, 3, 2)
	if len(stub.clicks) != 1 || stub.clicks[0] != (geom.Point{X: 2, Y: 0}) {
		t.Fatalf("clicks = %v", stub.clicks)
	}
	if d.Captures.Active() {
		t.Error("a control press must not start a gesture")
	}
}

func TestCloseButton(t *testing.T) {
	d, _ := newDesk(t)
	click(d, 98, 1)
	if len(d.Windows) != 0 {
		t.Error("close button should close the card")
	}
}

func TestDockClickToggles(t *testing.T) {
	d, _ := newDesk(t)
	items := d.DockLayout()
	todo := items[1]
	if todo.Kind != widget.KindTodo {
		t.Fatalf("second dock item = %s", todo.Kind)
	}

	click(d, todo.X+1, d.DockRow())
	if !d.IsOpen(widget.KindTodo) || d.FocusedWindow().Kind != widget.KindTodo {
		t.Fatal("dock click should open and focus the widget")
	}
	click(d, todo.X+1, d.DockRow())
	if d.IsOpen(widget.KindTodo) {
		t.Error("second dock click should close the widget")
	}
	click(d, 0, d.DockRow())
	if len(d.Windows) != 1 {
		t.Error("dock padding is not an item")
	}
}

func TestWheelScrollsContentUnderPointer(t *testing.T) {
	d, stub := newDesk(t)
	HandleInput(tea.MouseWheelMsg{X: 5, Y: 5, Button: tea.MouseWheelDown}, d)
	HandleInput(tea.MouseWheelMsg{X: 5, Y: 5, Button: tea.MouseWheelUp}, d)
	HandleInput(tea.MouseWheelMsg{X: 110, Y: 5, Button: tea.MouseWheelUp}, d)
	if len(stub.keys) != 2 || stub.keys[0] != "down" || stub.keys[1] != "up" {
		t.Errorf("keys = %v", stub.keys)
	}
}

func TestKeys(t *testing.T) {
	d, stub := newDesk(t)

	HandleInput(testutil.Key("x"), d)
	HandleInput(tea.PasteMsg{Content: "pasted"}, d)
	if len(stub.keys) != 1 || stub.keys[0] != "x" || len(stub.pastes) != 1 {
		t.Errorf("focused widget got keys %v pastes %v", stub.keys, stub.pastes)
	}

	HandleInput(testutil.Key("alt+1"), d)
	if !d.IsOpen(widget.KindNotes) || d.Focused != 1 {
		t.Fatal("alt+1 should open notes")
	}
	HandleInput(testutil.Key("ctrl+n"), d)
	if d.Focused != 0 {
		t.Errorf("ctrl+n focus = %d", d.Focused)
	}
	HandleInput(testutil.Key("ctrl+p"), d)
	if d.Focused != 1 {
		t.Errorf("ctrl+p focus = %d", d.Focused)
	}
	HandleInput(testutil.Key("ctrl+w"), d)
	if d.IsOpen(widget.KindNotes) {
		t.Error("ctrl+w should close the focused card")
	}

	HandleInput(testutil.Key("f1"), d)
	if !d.ShowHelp {
		t.Fatal("f1 should open help")
	}
	HandleInput(testutil.Key("x"), d)
	if len(stub.keys) != 1 {
		t.Error("help should swallow keys")
	}
	HandleInput(testutil.Key("esc"), d)
	if d.ShowHelp {
		t.Error("esc should close help")
	}

	_, cmd := HandleInput(testutil.Key("ctrl+c"), d)
	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c command is not quit")
	}
}

func TestEscCancelsGesture(t *testing.T) {
	d, stub := newDesk(t)
	click(d, 10, 1)
	HandleInput(testutil.Key("esc"), d)
	if d.Captures.Active() {
		t.Error("esc should cancel the drag")
	}
	if len(stub.keys) != 0 {
		t.Error("esc that cancels a gesture is not forwarded")
	}
	HandleInput(testutil.Key("esc"), d)
	if len(stub.keys) != 1 {
		t.Error("esc without a gesture goes to the widget")
	}
}

func TestFilterMouseMotion(t *testing.T) {
	d, _ := newDesk(t)
	motion := tea.MouseMotionMsg{X: 1, Y: 1}

	if FilterMouseMotion(d, motion) != nil {
		t.Error("motion without a capture should be dropped")
	}
	if FilterMouseMotion(d, tea.MouseClickMsg{}) == nil {
		t.Error("clicks always pass")
	}
	click(d, 10, 1)
	if FilterMouseMotion(d, motion) == nil {
		t.Error("motion during a drag should pass")
	}
}
