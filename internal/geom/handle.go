package geom

import (
	"fmt"
	"strings"
)

// Handle identifies the edges a resize gesture moves. Corner handles are the
// union of two edges.
type Handle uint8

// Edge bits.
const (
	Top Handle = 1 << iota
	Bottom
	Left
	Right
)

// Corner handles.
const (
	TopLeft     = Top | Left
	TopRight    = Top | Right
	BottomLeft  = Bottom | Left
	BottomRight = Bottom | Right
)

// AllHandles lists the eight valid handles.
var AllHandles = []Handle{Top, Bottom, Left, Right, TopLeft, TopRight, BottomLeft, BottomRight}

// DefaultHandles are the affordances enabled on a card unless configured
// otherwise.
var DefaultHandles = []Handle{Right, Bottom, BottomRight}

// Has reports whether h moves edge e.
func (h Handle) Has(e Handle) bool {
	return h&e != 0
}

// Valid reports whether h is one of the eight handles. Opposite edges on the
// same axis never combine.
func (h Handle) Valid() bool {
	if h == 0 || h&^(Top|Bottom|Left|Right) != 0 {
		return false
	}
	return !(h.Has(Top) && h.Has(Bottom)) && !(h.Has(Left) && h.Has(Right))
}

func (h Handle) String() string {
	if !h.Valid() {
		return fmt.Sprintf("Handle(%d)", uint8(h))
	}
	var parts []string
	if h.Has(Top) {
		parts = append(parts, "top")
	}
	if h.Has(Bottom) {
		parts = append(parts, "bottom")
	}
	if h.Has(Left) {
		parts = append(parts, "left")
	}
	if h.Has(Right) {
		parts = append(parts, "right")
	}
	return strings.Join(parts, "-")
}

// ParseHandle parses names such as "right" or "bottom-right".
func ParseHandle(s string) (Handle, error) {
	var h Handle
	for part := range strings.SplitSeq(strings.ToLower(strings.TrimSpace(s)), "-") {
		switch part {
		case "top":
			h |= Top
		case "bottom":
			h |= Bottom
		case "left":
			h |= Left
		case "right":
			h |= Right
		default:
			return 0, fmt.Errorf("unknown resize handle %q", s)
		}
	}
	if !h.Valid() {
		return 0, fmt.Errorf("invalid resize handle %q", s)
	}
	return h, nil
}
