package app

import (
	"slices"

	"github.com/devspace-tui/devspace/internal/card"
)

// Captures is the pointer capture registry. A card holds a capture for the
// length of a drag or resize; while any capture is held the desk routes
// pointer motion and release to the captured cards instead of hit testing,
// and the program filter lets motion events through.
type Captures struct {
	cards []*card.Card
}

// Capture implements card.Tracker.
func (r *Captures) Capture(c *card.Card) func() {
	r.cards = append(r.cards, c)
	released := false
	return func() {
		if released {
			return
		}
		released = true
		if i := slices.Index(r.cards, c); i >= 0 {
			r.cards = slices.Delete(r.cards, i, i+1)
		}
	}
}

// Active reports whether any card holds a capture.
func (r *Captures) Active() bool { return len(r.cards) > 0 }

// Cards returns the cards holding a capture.
func (r *Captures) Cards() []*card.Card { return slices.Clone(r.cards) }
