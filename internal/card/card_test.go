package card

import (
	"math/rand/v2"
	"testing"

	"github.com/devspace-tui/devspace/internal/geom"
)

// fakeTracker counts captures and releases.
type fakeTracker struct {
	captured int
	released int
}

func (f *fakeTracker) Capture(*Card) func() {
	f.captured++
	return func() { f.released++ }
}

type viewport struct{ size geom.Size }

func (v *viewport) get() geom.Size { return v.size }

// newTestCard creates a card at a fixed position inside a 1920x1080 viewport.
func newTestCard(t *testing.T, at geom.Point, opts ...Option) (*Card, *viewport, *fakeTracker) {
	t.Helper()
	vp := &viewport{size: geom.Size{Width: 1920, Height: 1080}}
	tr := &fakeTracker{}
	opts = append([]Option{WithTracker(tr), WithRand(rand.New(rand.NewPCG(1, 1)))}, opts...)
	c := New("content", geom.DefaultSize(), vp.get, opts...)
	c.rect.Point = at
	return c, vp, tr
}

func TestNewPlacesInsideViewport(t *testing.T) {
	vp := &viewport{size: geom.Size{Width: 1280, Height: 720}}
	for i := range 100 {
		c := New(nil, geom.DefaultSize(), vp.get, WithRand(rand.New(rand.NewPCG(uint64(i), 9))))
		p := c.Position()
		if p.X < 0 || p.X > 480 || p.Y < 0 || p.Y > 120 {
			t.Fatalf("initial position %v outside [0,480]x[0,120]", p)
		}
		if c.Size() != geom.DefaultSize() {
			t.Fatalf("initial size %v, want default", c.Size())
		}
		if c.Mode() != Idle {
			t.Fatalf("initial mode %v, want idle", c.Mode())
		}
	}
}

func TestNewSmallViewportPinsToOrigin(t *testing.T) {
	vp := &viewport{size: geom.Size{Width: 640, Height: 480}}
	c := New(nil, geom.DefaultSize(), vp.get)
	if c.Position() != (geom.Point{}) {
		t.Errorf("position = %v, want origin", c.Position())
	}
}

func TestDragScenario(t *testing.T) {
	c, _, tr := newTestCard(t, geom.Point{X: 200, Y: 150})

	if !c.PointerDown(Body(), geom.Point{X: 100, Y: 100}) {
		t.Fatal("pointer-down on body should start a drag")
	}
	if c.Mode() != Dragging {
		t.Fatalf("mode = %v, want dragging", c.Mode())
	}
	if tr.captured != 1 {
		t.Fatalf("captured = %d, want 1", tr.captured)
	}

	c.PointerMove(geom.Point{X: 50, Y: 50})
	if got, want := c.Position(), (geom.Point{X: 150, Y: 100}); got != want {
		t.Errorf("position = %v, want %v", got, want)
	}
	if c.Size() != geom.DefaultSize() {
		t.Errorf("size changed during drag: %v", c.Size())
	}

	if !c.PointerUp() {
		t.Error("pointer-up should end the drag")
	}
	if c.Mode() != Idle || tr.released != 1 {
		t.Errorf("after pointer-up mode = %v released = %d", c.Mode(), tr.released)
	}
}

func TestDragStaysInViewport(t *testing.T) {
	c, vp, _ := newTestCard(t, geom.Point{X: 500, Y: 300})
	c.PointerDown(Body(), geom.Point{X: 510, Y: 305})

	moves := []geom.Point{{X: -500, Y: -500}, {X: 4000, Y: 20}, {X: 20, Y: 4000}, {X: 900, Y: 500}, {X: -1, Y: 2000}}
	for _, m := range moves {
		c.PointerMove(m)
		r := c.Rect()
		if r.X < 0 || r.X > vp.size.Width-r.Width || r.Y < 0 || r.Y > vp.size.Height-r.Height {
			t.Fatalf("after move to %v rect %+v escapes viewport", m, r)
		}
	}
}

func TestResizeScenarios(t *testing.T) {
	tests := []struct {
		name     string
		handle   geom.Handle
		from, to geom.Point
		want     geom.Rect
	}{
		{
			name:   "bottom-right",
			handle: geom.BottomRight,
			from:   geom.Point{X: 900, Y: 700}, to: geom.Point{X: 1000, Y: 850},
			want: geom.NewRect(100, 100, 900, 750),
		},
		{
			name:   "left",
			handle: geom.Left,
			from:   geom.Point{X: 100, Y: 400}, to: geom.Point{X: 300, Y: 400},
			want: geom.NewRect(300, 100, 600, 600),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _ := newTestCard(t, geom.Point{X: 100, Y: 100}, WithHandles(geom.AllHandles...))
			if !c.PointerDown(OnHandle(tt.handle), tt.from) {
				t.Fatalf("pointer-down on %v should start a resize", tt.handle)
			}
			if h, ok := c.ActiveHandle(); !ok || h != tt.handle {
				t.Fatalf("active handle = %v, %v", h, ok)
			}
			c.PointerMove(tt.to)
			if got := c.Rect(); got != tt.want {
				t.Errorf("rect = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResizeUsesGestureOrigin(t *testing.T) {
	c, _, _ := newTestCard(t, geom.Point{X: 100, Y: 100}, WithHandles(geom.Left))
	c.PointerDown(OnHandle(geom.Left), geom.Point{X: 100, Y: 400})

	// Several moves in a row must be relative to where the gesture began,
	// not accumulated on top of each other.
	for _, x := range []int{150, 250, 300} {
		c.PointerMove(geom.Point{X: x, Y: 400})
	}
	if got, want := c.Rect(), geom.NewRect(300, 100, 600, 600); got != want {
		t.Errorf("rect = %+v, want %+v", got, want)
	}
	if c.Rect().Right() != 900 {
		t.Errorf("right edge moved to %d", c.Rect().Right())
	}
}

func TestDisabledHandleIgnored(t *testing.T) {
	c, _, tr := newTestCard(t, geom.Point{X: 100, Y: 100})
	if c.PointerDown(OnHandle(geom.TopLeft), geom.Point{X: 100, Y: 100}) {
		t.Fatal("top-left is not enabled by default")
	}
	if c.Mode() != Idle || tr.captured != 0 {
		t.Errorf("mode = %v captured = %d", c.Mode(), tr.captured)
	}
}

func TestControlNeverStartsGesture(t *testing.T) {
	c, _, tr := newTestCard(t, geom.Point{X: 100, Y: 100})
	if c.PointerDown(Control(), geom.Point{X: 300, Y: 300}) {
		t.Fatal("control target should not be consumed")
	}
	if c.PointerMove(geom.Point{X: 600, Y: 600}) {
		t.Error("move while idle should not commit")
	}
	if c.Position() != (geom.Point{X: 100, Y: 100}) || tr.captured != 0 {
		t.Errorf("idle card changed: %v captured=%d", c.Position(), tr.captured)
	}
}

func TestPointerDownWhileActiveIgnored(t *testing.T) {
	c, _, tr := newTestCard(t, geom.Point{X: 100, Y: 100})
	c.PointerDown(Body(), geom.Point{X: 150, Y: 150})
	if c.PointerDown(OnHandle(geom.Right), geom.Point{X: 899, Y: 300}) {
		t.Error("second pointer-down should be ignored")
	}
	if c.Mode() != Dragging || tr.captured != 1 {
		t.Errorf("mode = %v captured = %d", c.Mode(), tr.captured)
	}
}

func TestZeroDeltaIdempotent(t *testing.T) {
	c, _, _ := newTestCard(t, geom.Point{X: 100, Y: 100}, WithHandles(geom.AllHandles...))
	for _, h := range geom.AllHandles {
		start := c.Rect()
		c.PointerDown(OnHandle(h), geom.Point{X: 500, Y: 500})
		for range 5 {
			if c.PointerMove(geom.Point{X: 500, Y: 500}) {
				t.Errorf("%v: zero-delta move changed geometry", h)
			}
		}
		c.PointerUp()
		if c.Rect() != start {
			t.Errorf("%v: rect = %+v, want %+v", h, c.Rect(), start)
		}
	}

	start := c.Rect()
	c.PointerDown(Body(), geom.Point{X: 300, Y: 300})
	c.PointerMove(geom.Point{X: 300, Y: 300})
	c.PointerMove(geom.Point{X: 300, Y: 300})
	c.PointerUp()
	if c.Rect() != start {
		t.Errorf("drag: rect = %+v, want %+v", c.Rect(), start)
	}
}

func TestCaptureReleasedOnEveryExit(t *testing.T) {
	c, _, tr := newTestCard(t, geom.Point{X: 100, Y: 100})

	c.PointerDown(Body(), geom.Point{X: 120, Y: 120})
	c.Cancel()
	c.PointerDown(OnHandle(geom.Right), geom.Point{X: 899, Y: 300})
	c.PointerUp()
	// Releasing twice must not release twice.
	c.PointerUp()
	c.Cancel()

	if tr.captured != 2 || tr.released != 2 {
		t.Errorf("captured = %d released = %d, want 2/2", tr.captured, tr.released)
	}
}

func TestShrunkViewportClampsNextUpdate(t *testing.T) {
	c, vp, _ := newTestCard(t, geom.Point{X: 400, Y: 300})
	vp.size = geom.Size{Width: 500, Height: 400}

	c.PointerDown(OnHandle(geom.BottomRight), geom.Point{X: 450, Y: 350})
	c.PointerMove(geom.Point{X: 450, Y: 350})
	c.PointerUp()
	if !c.Rect().Within(vp.size) {
		t.Errorf("after resize rect %+v not within %v", c.Rect(), vp.size)
	}

	c2, vp2, _ := newTestCard(t, geom.Point{X: 400, Y: 300})
	vp2.size = geom.Size{Width: 500, Height: 400}
	c2.PointerDown(Body(), geom.Point{X: 410, Y: 310})
	c2.PointerMove(geom.Point{X: 420, Y: 320})
	if !c2.Rect().Within(vp2.size) {
		t.Errorf("after drag rect %+v not within %v", c2.Rect(), vp2.size)
	}
}

func TestRefit(t *testing.T) {
	c, vp, _ := newTestCard(t, geom.Point{X: 1000, Y: 400})
	vp.size = geom.Size{Width: 1200, Height: 900}
	if !c.Refit() {
		t.Fatal("refit should move the card")
	}
	if got, want := c.Rect(), geom.NewRect(400, 300, 800, 600); got != want {
		t.Errorf("rect = %+v, want %+v", got, want)
	}
}

func TestTargetClassification(t *testing.T) {
	if !Body().IsBody() || Body().IsControl() {
		t.Error("Body misclassified")
	}
	if !Control().IsControl() || Control().IsBody() {
		t.Error("Control misclassified")
	}
	h, ok := OnHandle(geom.Bottom).Handle()
	if !ok || h != geom.Bottom {
		t.Errorf("OnHandle(Bottom).Handle() = %v, %v", h, ok)
	}
	if _, ok := Body().Handle(); ok {
		t.Error("Body should not carry a handle")
	}
}
