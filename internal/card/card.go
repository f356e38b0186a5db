// Package card implements the interaction controller for a floating card:
// the gesture state machine that turns pointer events into committed
// geometry through the geom engine.
//
// A card starts Idle. Pointer-down on the body enters Dragging, pointer-down
// on an enabled resize handle enters Resizing, and pointer-up (or Cancel)
// returns to Idle. While a gesture is active the card holds a capture from
// its Tracker; the capture is released on every path out of the gesture.
package card

import (
	"math/rand/v2"
	"slices"

	"github.com/devspace-tui/devspace/internal/geom"
	"github.com/google/uuid"
)

// Tracker routes pointer movement and release to cards with an active
// gesture. Capture is called when a gesture starts; the returned func is
// called exactly once when it ends.
type Tracker interface {
	Capture(c *Card) (release func())
}

// ViewportFunc samples the current viewport size.
type ViewportFunc func() geom.Size

// Card is a floating window hosting opaque content.
type Card struct {
	id       string
	title    string
	content  any
	rect     geom.Rect
	viewport ViewportFunc
	minSize  int
	handles  []geom.Handle
	tracker  Tracker
	rng      geom.Rand
	sess     session
}

// Option configures a Card.
type Option func(*Card)

// WithTitle sets the title shown in the card frame.
func WithTitle(title string) Option {
	return func(c *Card) { c.title = title }
}

// WithID overrides the generated card ID.
func WithID(id string) Option {
	return func(c *Card) { c.id = id }
}

// WithMinSize overrides geom.MinSize.
func WithMinSize(n int) Option {
	return func(c *Card) { c.minSize = n }
}

// WithHandles sets the enabled resize affordances.
func WithHandles(handles ...geom.Handle) Option {
	return func(c *Card) { c.handles = slices.Clone(handles) }
}

// WithTracker sets the pointer capture registry.
func WithTracker(t Tracker) Option {
	return func(c *Card) { c.tracker = t }
}

// WithRand sets the randomness used for initial placement.
func WithRand(r geom.Rand) Option {
	return func(c *Card) { c.rng = r }
}

// New creates a card of the given size at a random position inside the
// viewport.
func New(content any, size geom.Size, viewport ViewportFunc, opts ...Option) *Card {
	c := &Card{
		id:       uuid.New().String(),
		content:  content,
		viewport: viewport,
		minSize:  geom.MinSize,
		handles:  slices.Clone(geom.DefaultHandles),
		sess:     idle{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	c.rect = geom.Rect{Point: geom.Place(viewport(), size, c.rng), Size: size}
	return c
}

// ID returns the card's unique identifier.
func (c *Card) ID() string { return c.id }

// Title returns the card title.
func (c *Card) Title() string { return c.title }

// Content returns the hosted content.
func (c *Card) Content() any { return c.content }

// Position returns the committed top-left corner.
func (c *Card) Position() geom.Point { return c.rect.Point }

// Size returns the committed size.
func (c *Card) Size() geom.Size { return c.rect.Size }

// Rect returns the committed geometry.
func (c *Card) Rect() geom.Rect { return c.rect }

// Mode returns the active gesture.
func (c *Card) Mode() Mode { return c.sess.mode() }

// Active reports whether a gesture is in progress.
func (c *Card) Active() bool { return c.sess.mode() != Idle }

// ActiveHandle returns the handle of an in-progress resize.
func (c *Card) ActiveHandle() (geom.Handle, bool) {
	if s, ok := c.sess.(resizing); ok {
		return s.handle, true
	}
	return 0, false
}

// Handles returns the enabled resize affordances.
func (c *Card) Handles() []geom.Handle { return slices.Clone(c.handles) }

// HandleEnabled reports whether h is an enabled affordance.
func (c *Card) HandleEnabled(h geom.Handle) bool {
	return slices.Contains(c.handles, h)
}

// PointerDown starts a gesture. It returns true when the event was consumed
// and must not reach default behaviour such as focusing content or selecting
// text. A pointer-down during an active gesture is ignored.
func (c *Card) PointerDown(t Target, p geom.Point) bool {
	if c.Active() {
		return false
	}
	if t.IsBody() {
		c.sess = dragging{offset: p.Sub(c.rect.Point), release: c.capture()}
		return true
	}
	if h, ok := t.Handle(); ok && c.HandleEnabled(h) {
		c.sess = resizing{origin: p, start: c.rect, handle: h, release: c.capture()}
		return true
	}
	return false
}

// PointerMove feeds the pointer position to the active gesture and commits
// the result. It reports whether the committed geometry changed.
func (c *Card) PointerMove(p geom.Point) bool {
	vp := c.viewport()
	next := c.rect
	switch s := c.sess.(type) {
	case dragging:
		next.Point = geom.Drag(p, s.offset, c.rect.Size, vp)
	case resizing:
		next = geom.Resize(p.Sub(s.origin), s.start, s.handle, vp, c.minSize)
	default:
		return false
	}
	return c.commit(next, vp)
}

// PointerUp ends the active gesture. It reports whether one was active.
func (c *Card) PointerUp() bool {
	return c.Cancel()
}

// Cancel ends the active gesture without a pointer-up, e.g. when the card
// is closed or the pointer capture is lost.
func (c *Card) Cancel() bool {
	if !c.Active() {
		return false
	}
	s := c.sess
	c.sess = idle{}
	s.end()
	return true
}

// Refit pulls the committed geometry back inside the current viewport.
func (c *Card) Refit() bool {
	vp := c.viewport()
	return c.commit(c.rect, vp)
}

func (c *Card) commit(r geom.Rect, vp geom.Size) bool {
	r = geom.Fit(r, vp)
	if r == c.rect {
		return false
	}
	c.rect = r
	return true
}

func (c *Card) capture() func() {
	if c.tracker == nil {
		return func() {}
	}
	release := c.tracker.Capture(c)
	if release == nil {
		return func() {}
	}
	return release
}
