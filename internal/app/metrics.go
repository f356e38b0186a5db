package app

import (
	"github.com/charmbracelet/x/ansi"
	"github.com/devspace-tui/devspace/internal/card"
	"github.com/devspace-tui/devspace/internal/config"
	"github.com/devspace-tui/devspace/internal/geom"
)

// Metrics maps terminal cells to virtual pixels. Every cell is a
// CellWidth x CellHeight box.
type Metrics struct {
	CellWidth  int
	CellHeight int
}

// Viewport returns the pixel size of cols x rows cells.
func (m Metrics) Viewport(cols, rows int) geom.Size {
	return geom.Size{Width: cols * m.CellWidth, Height: rows * m.CellHeight}
}

// Point returns the pixel at the top-left corner of cell (col, row).
func (m Metrics) Point(col, row int) geom.Point {
	return geom.Point{X: col * m.CellWidth, Y: row * m.CellHeight}
}

// Cells converts a pixel rectangle to the cells it covers. Both edges are
// floored, so a rectangle inside the viewport maps to cells inside the
// terminal.
func (m Metrics) Cells(r geom.Rect) geom.Rect {
	x0, y0 := r.X/m.CellWidth, r.Y/m.CellHeight
	x1, y1 := r.Right()/m.CellWidth, r.Bottom()/m.CellHeight
	return geom.NewRect(x0, y0, x1-x0, y1-y0)
}

// Box returns the cells window w occupies on screen.
func (d *Desk) Box(w *Window) geom.Rect {
	b := d.Metrics.Cells(w.Card.Rect())
	b.Y += d.TopMargin()
	return b
}

// Region is the part of a card under the pointer.
type Region int

const (
	RegionNone Region = iota
	// RegionHandle is a border cell; Hit.Handle names the edge or corner.
	RegionHandle
	// RegionTitle is the title bar, the drag grip.
	RegionTitle
	// RegionClose is the close button in the title bar.
	RegionClose
	// RegionContent is the area the widget draws; Hit.X and Hit.Y are
	// relative to it.
	RegionContent
)

// Hit is the result of hit testing a cell.
type Hit struct {
	Index  int
	Window *Window
	Region Region
	Handle geom.Handle
	X, Y   int
}

// HitTest finds the topmost card at cell (x, y) and the region hit.
//
// A card is drawn as a border around a one row title bar and the content:
// the border row and column cells are resize handles, the corners being the
// corner handles.
func (d *Desk) HitTest(x, y int) Hit {
	for i := len(d.Windows) - 1; i >= 0; i-- {
		w := d.Windows[i]
		b := d.Box(w)
		if x < b.X || x >= b.Right() || y < b.Y || y >= b.Bottom() {
			continue
		}
		hit := Hit{Index: i, Window: w}
		cx, cy := x-b.X, y-b.Y
		last, bottom := b.Width-1, b.Height-1

		switch {
		case cy == 0 || cy == bottom || cx == 0 || cx == last:
			hit.Region = RegionHandle
			hit.Handle = edgeAt(cx, cy, last, bottom)
		case cy == config.TitleBarHeight:
			hit.Region = RegionTitle
			if cx >= last-ansi.StringWidth(config.GetCardButtonClose()) {
				hit.Region = RegionClose
			}
		default:
			hit.Region = RegionContent
			hit.X, hit.Y = cx-1, cy-1-config.TitleBarHeight
		}
		return hit
	}
	return Hit{Index: -1}
}

func edgeAt(cx, cy, last, bottom int) geom.Handle {
	var h geom.Handle
	switch {
	case cy == 0:
		h |= geom.Top
	case cy == bottom:
		h |= geom.Bottom
	}
	switch {
	case cx == 0:
		h |= geom.Left
	case cx == last:
		h |= geom.Right
	}
	return h
}

// Target resolves a hit to the card gesture target. Border cells whose
// handle is disabled behave like the body, as does the title bar. Content
// cells ask the widget whether they hold a control.
func (h Hit) Target() card.Target {
	switch h.Region {
	case RegionHandle:
		if h.Window.Card.HandleEnabled(h.Handle) {
			return card.OnHandle(h.Handle)
		}
	case RegionContent:
		if h.Window.Content.ControlAt(h.X, h.Y) {
			return card.Control()
		}
	case RegionClose:
		return card.Control()
	}
	return card.Body()
}
