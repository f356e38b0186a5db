package geom

// Rand is the source of randomness used for initial placement.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Place picks the initial top-left corner for a card of the given size.
// Each axis is sampled uniformly from [0, max(0, viewport - size)], so a card
// larger than the viewport is pinned to the origin on that axis.
func Place(vp, size Size, rng Rand) Point {
	return Point{
		X: rng.IntN(max(0, vp.Width-size.Width) + 1),
		Y: rng.IntN(max(0, vp.Height-size.Height) + 1),
	}
}

// Drag returns the new position for a card being dragged. offset is the
// pointer position relative to the card captured when the drag started.
// The result is clamped per axis so the card stays inside the viewport.
func Drag(pointer, offset Point, size, vp Size) Point {
	p := pointer.Sub(offset)
	return Point{
		X: Clamp(p.X, 0, vp.Width-size.Width),
		Y: Clamp(p.Y, 0, vp.Height-size.Height),
	}
}

// Resize returns the geometry of a card after moving handle h by delta from
// the geometry the gesture started with.
//
// The minimum size is applied per edge first. Boundary correction then runs
// in a fixed order: negative x, negative y, right overflow, bottom overflow.
// At extreme viewport edges the correction may leave a dimension below
// minSize.
func Resize(delta Point, origin Rect, h Handle, vp Size, minSize int) Rect {
	r := origin

	if h.Has(Right) {
		r.Width = max(minSize, origin.Width+delta.X)
	}
	if h.Has(Left) {
		r.Width = max(minSize, origin.Width-delta.X)
		r.X = origin.X + (origin.Width - r.Width)
	}
	if h.Has(Bottom) {
		r.Height = max(minSize, origin.Height+delta.Y)
	}
	if h.Has(Top) {
		r.Height = max(minSize, origin.Height-delta.Y)
		r.Y = origin.Y + (origin.Height - r.Height)
	}

	if r.X < 0 {
		r.Width += r.X
		r.X = 0
	}
	if r.Y < 0 {
		r.Height += r.Y
		r.Y = 0
	}
	if r.Right() > vp.Width {
		r.Width = vp.Width - r.X
	}
	if r.Bottom() > vp.Height {
		r.Height = vp.Height - r.Y
	}
	return r
}

// Fit moves and, if needed, shrinks r so it lies inside the viewport. It is
// applied to committed geometry when the viewport changes underneath a card.
// Position is pulled in before size is cut, so a card only shrinks when it
// is larger than the viewport itself.
func Fit(r Rect, vp Size) Rect {
	r.Width = Clamp(r.Width, 0, max(0, vp.Width))
	r.Height = Clamp(r.Height, 0, max(0, vp.Height))
	r.X = Clamp(r.X, 0, vp.Width-r.Width)
	r.Y = Clamp(r.Y, 0, vp.Height-r.Height)
	return r
}
