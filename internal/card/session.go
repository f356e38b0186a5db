package card

import "github.com/devspace-tui/devspace/internal/geom"

// Mode is the gesture a card is currently in.
type Mode int

const (
	// Idle means no gesture is active.
	Idle Mode = iota
	// Dragging means the card follows the pointer.
	Dragging
	// Resizing means one or two edges follow the pointer.
	Resizing
)

func (m Mode) String() string {
	switch m {
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	default:
		return "idle"
	}
}

// session is the gesture state. Exactly one of idle, dragging or resizing is
// held by a card at any time.
type session interface {
	mode() Mode
	// end releases whatever the session acquired when it started.
	end()
}

type idle struct{}

func (idle) mode() Mode { return Idle }
func (idle) end()       {}

type dragging struct {
	offset  geom.Point // pointer minus card position at gesture start
	release func()
}

func (dragging) mode() Mode { return Dragging }
func (s dragging) end()     { s.release() }

type resizing struct {
	origin  geom.Point // pointer at gesture start
	start   geom.Rect  // card geometry at gesture start
	handle  geom.Handle
	release func()
}

func (resizing) mode() Mode { return Resizing }
func (s resizing) end()     { s.release() }

type targetKind int

const (
	targetBody targetKind = iota
	targetControl
	targetHandle
)

// Target classifies what a pointer-down landed on.
type Target struct {
	kind   targetKind
	handle geom.Handle
}

// Body is the drag surface of a card: its frame and title bar.
func Body() Target { return Target{kind: targetBody} }

// Control is an interactive element inside the card content. Pressing it
// never starts a gesture.
func Control() Target { return Target{kind: targetControl} }

// OnHandle is one of the resize affordances.
func OnHandle(h geom.Handle) Target { return Target{kind: targetHandle, handle: h} }

// Handle returns the resize handle the target refers to, if any.
func (t Target) Handle() (geom.Handle, bool) {
	return t.handle, t.kind == targetHandle
}

// IsBody reports whether t is the drag surface.
func (t Target) IsBody() bool { return t.kind == targetBody }

// IsControl reports whether t is interactive content.
func (t Target) IsControl() bool { return t.kind == targetControl }
