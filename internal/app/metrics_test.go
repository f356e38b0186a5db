package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
	"github.com/devspace-tui/devspace/internal/card"
	"github.com/devspace-tui/devspace/internal/config"
	"github.com/devspace-tui/devspace/internal/geom"
	"github.com/devspace-tui/devspace/internal/widget"
)

// stubContent has a single control at content cell (2, 0).
type stubContent struct {
	clicked int
}

func (*stubContent) Title() string            { return "Stub" }
func (*stubContent) Init() tea.Cmd            { return nil }
func (*stubContent) Update(tea.Msg) tea.Cmd   { return nil }
func (*stubContent) View(int, int) string     { return "hello" }
func (*stubContent) ControlAt(x, y int) bool  { return x == 2 && y == 0 }
func (s *stubContent) Click(int, int) tea.Cmd { s.clicked++; return nil }

func openStub(d *Desk) *Window {
	c := card.New(nil, geom.DefaultSize(), d.Viewport,
		card.WithTitle("Stub"),
		card.WithTracker(d.Captures),
		card.WithRand(zeroRand{}),
	)
	w := &Window{Kind: widget.Kind("stub"), Card: c, Content: &stubContent{}}
	d.Windows = append(d.Windows, w)
	d.Focused = len(d.Windows) - 1
	return w
}

func TestMetrics(t *testing.T) {
	m := Metrics{CellWidth: 8, CellHeight: 16}
	if got := m.Viewport(120, 40); got != (geom.Size{Width: 960, Height: 640}) {
		t.Errorf("Viewport = %v", got)
	}
	if got := m.Point(3, 2); got != (geom.Point{X: 24, Y: 32}) {
		t.Errorf("Point = %v", got)
	}

	tests := []struct {
		name string
		in   geom.Rect
		want geom.Rect
	}{
		{"aligned", geom.NewRect(0, 0, 800, 600), geom.NewRect(0, 0, 100, 37)},
		{"unaligned origin", geom.NewRect(12, 20, 160, 160), geom.NewRect(1, 1, 20, 10)},
		{"viewport edge", geom.NewRect(160, 40, 800, 600), geom.NewRect(20, 2, 100, 38)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Cells(tt.in); got != tt.want {
				t.Errorf("Cells(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHitTest(t *testing.T) {
	d := newTestDesk(t)
	openStub(d)
	closeW := len(config.GetCardButtonClose())

	tests := []struct {
		name   string
		x, y   int
		region Region
		handle geom.Handle
		target card.Target
	}{
		{"top-left corner disabled", 0, 0, RegionHandle, geom.TopLeft, card.Body()},
		{"top edge disabled", 50, 0, RegionHandle, geom.Top, card.Body()},
		{"right edge", 99, 10, RegionHandle, geom.Right, card.OnHandle(geom.Right)},
		{"bottom edge", 50, 36, RegionHandle, geom.Bottom, card.OnHandle(geom.Bottom)},
		{"bottom-right corner", 99, 36, RegionHandle, geom.BottomRight, card.OnHandle(geom.BottomRight)},
		{"left edge disabled", 0, 10, RegionHandle, geom.Left, card.Body()},
		{"title bar", 10, 1, RegionTitle, 0, card.Body()},
		{"close button", 99 - closeW, 1, RegionClose, 0, card.Control()},
		{"left of close button", 98 - closeW, 1, RegionTitle, 0, card.Body()},
		{"content", 5, 5, RegionContent, 0, card.Body()},
		{"content control", 3, 2, RegionContent, 0, card.Control()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := d.HitTest(tt.x, tt.y)
			if hit.Index != 0 {
				t.Fatalf("HitTest(%d, %d) missed", tt.x, tt.y)
			}
			if hit.Region != tt.region {
				t.Errorf("region = %v, want %v", hit.Region, tt.region)
			}
			if hit.Handle != tt.handle {
				t.Errorf("handle = %v, want %v", hit.Handle, tt.handle)
			}
			if got := hit.Target(); got != tt.target {
				t.Errorf("target = %+v, want %+v", got, tt.target)
			}
		})
	}

	if hit := d.HitTest(5, 5); hit.X != 4 || hit.Y != 3 {
		t.Errorf("content cell = (%d, %d), want (4, 3)", hit.X, hit.Y)
	}
	for _, p := range [][2]int{{100, 5}, {50, 37}, {50, 40}} {
		if hit := d.HitTest(p[0], p[1]); hit.Index != -1 {
			t.Errorf("HitTest(%d, %d) = %d, want miss", p[0], p[1], hit.Index)
		}
	}
}

func TestHitTestTopmostWins(t *testing.T) {
	d := newTestDesk(t)
	openStub(d)
	second := openStub(d)
	second.Card.PointerDown(card.Body(), geom.Point{})
	second.Card.PointerMove(geom.Point{X: 80, Y: 32})
	second.Card.PointerUp()

	if hit := d.HitTest(20, 10); hit.Index != 1 {
		t.Errorf("overlap hit index = %d, want the later card", hit.Index)
	}
	if hit := d.HitTest(5, 1); hit.Index != 0 {
		t.Errorf("uncovered hit index = %d, want the first card", hit.Index)
	}
}

func TestHitTestDockOnTop(t *testing.T) {
	d := newTestDesk(t)
	prev := config.DockPosition
	config.DockPosition = "top"
	t.Cleanup(func() { config.DockPosition = prev })
	openStub(d)

	if d.DockRow() != 0 || d.TopMargin() != 1 {
		t.Fatalf("dock row %d, top margin %d", d.DockRow(), d.TopMargin())
	}
	if hit := d.HitTest(10, 0); hit.Index != -1 {
		t.Error("the dock row is not part of any card")
	}
	if hit := d.HitTest(10, 2); hit.Region != RegionTitle {
		t.Errorf("region = %v, want title", hit.Region)
	}
}

func TestDockLayout(t *testing.T) {
	d := newTestDesk(t)
	d.Open(widget.KindTodo)

	items := d.DockLayout()
	if len(items) != len(widget.Kinds) {
		t.Fatalf("items = %d", len(items))
	}
	for i, it := range items {
		if it.Kind != widget.Kinds[i] {
			t.Errorf("item %d = %s", i, it.Kind)
		}
		if it.Open != (it.Kind == widget.KindTodo) {
			t.Errorf("%s open = %v", it.Kind, it.Open)
		}
		if i > 0 && it.X != items[i-1].X+items[i-1].Width+config.DockItemGap {
			t.Errorf("%s at %d overlaps", it.Kind, it.X)
		}
		if k, ok := d.DockItemAt(it.X); !ok || k != it.Kind {
			t.Errorf("DockItemAt(%d) = %s", it.X, k)
		}
	}
	if _, ok := d.DockItemAt(0); ok {
		t.Error("column 0 is padding")
	}

	d.Resize(30, 41)
	if n := len(d.DockLayout()); n != 1 {
		t.Errorf("narrow dock items = %d, want 1", n)
	}
}

// frame returns the plain text of the desk's screen, one line per row.
func frame(d *Desk) string {
	buf := uv.NewScreenBuffer(d.Width, d.Height)
	buf.Method = ansi.GraphemeWidth
	uv.NewStyledString(d.Render()).Draw(buf, buf.Bounds())
	return strings.ReplaceAll(buf.String(), "\r\n", "\n")
}

func TestFitBlock(t *testing.T) {
	plain := func(lines []string) []string {
		out := make([]string, len(lines))
		for i, l := range lines {
			out[i] = strings.TrimRight(ansi.Strip(l), " ")
		}
		return out
	}

	tests := []struct {
		name          string
		in            string
		width, height int
		want          []string
	}{
		{"clips both axes", "hello world\nsecond\nthird", 5, 2, []string{"hello", "secon"}},
		{"styled text", "\x1b[31mred text\x1b[0m", 5, 1, []string{"red t"}},
		{"pads short content", "a", 3, 3, []string{"a", "", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := plain(fitBlock(tt.in, tt.width, tt.height))
			if len(got) != len(tt.want) {
				t.Fatalf("fitBlock(%q) = %d lines, want %d", tt.in, len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRender(t *testing.T) {
	d := newTestDesk(t)
	prev := config.HideClock
	config.HideClock = true
	t.Cleanup(func() { config.HideClock = prev })

	screen := frame(d)
	if !strings.Contains(screen, "Click the dock") {
		t.Error("welcome screen missing")
	}
	lines := strings.Split(screen, "\n")
	if len(lines) != 41 {
		t.Fatalf("frame has %d lines", len(lines))
	}
	if !strings.Contains(lines[40], "Daily Notes") || !strings.Contains(lines[40], "Data") {
		t.Errorf("dock row = %q", lines[40])
	}

	openStub(d)
	screen = frame(d)
	lines = strings.Split(screen, "\n")
	if strings.Contains(screen, "Click the dock") {
		t.Error("welcome screen shown behind a card")
	}
	if !strings.Contains(lines[1], "Stub") || !strings.Contains(lines[1], "X") {
		t.Errorf("title bar = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2][1:], "hello") {
		t.Errorf("content row = %q", lines[2])
	}
	if !strings.Contains(lines[36], config.HandleGlyphCornerASCII) {
		t.Errorf("bottom border %q lacks the resize glyph", lines[36])
	}

	d.ShowHelp = true
	if !strings.Contains(frame(d), "Toggle help") {
		t.Error("help overlay missing")
	}
}
