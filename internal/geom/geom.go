// Package geom implements the window geometry engine: pure functions that
// compute card placement, drag and resize transitions inside a viewport.
//
// Nothing in this package keeps state or fails. Every operation is a function
// of its inputs and degenerate inputs are clamped, never rejected.
package geom

// MinSize is the smallest width or height a card may be resized to.
const MinSize = 150

// DefaultWidth and DefaultHeight are the size of a newly opened card.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Point is a position in viewport coordinates.
type Point struct {
	X, Y int
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Size is a width and height pair.
type Size struct {
	Width, Height int
}

// DefaultSize returns the default card size.
func DefaultSize() Size {
	return Size{Width: DefaultWidth, Height: DefaultHeight}
}

// Rect is an axis-aligned rectangle: top-left corner plus size.
type Rect struct {
	Point
	Size
}

// NewRect creates a rectangle from its components.
func NewRect(x, y, w, h int) Rect {
	return Rect{Point: Point{X: x, Y: y}, Size: Size{Width: w, Height: h}}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.Width
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Within reports whether r lies fully inside a viewport of size vp.
func (r Rect) Within(vp Size) bool {
	return r.X >= 0 && r.Y >= 0 && r.Right() <= vp.Width && r.Bottom() <= vp.Height
}

// Clamp restricts val to [lo, hi]. When hi < lo the lower bound wins.
func Clamp(val, lo, hi int) int {
	if val > hi {
		val = hi
	}
	if val < lo {
		val = lo
	}
	return val
}
