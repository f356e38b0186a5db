// Package input implements devspace input handling.
//
// Keys either drive the desk (opening widgets, focus, help) or go to the
// focused widget. Mouse events are hit tested onto the dock and the cards:
// presses start drags and resizes, or activate widget controls.
package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/devspace-tui/devspace/internal/app"
)

// HandleInput is the main input coordinator that routes messages to appropriate handlers
func HandleInput(msg tea.Msg, d *app.Desk) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return HandleKeyPress(msg, d)
	case tea.MouseClickMsg:
		return handleMouseClick(msg, d)
	case tea.MouseMotionMsg:
		return handleMouseMotion(msg, d)
	case tea.MouseReleaseMsg:
		return handleMouseRelease(msg, d)
	case tea.MouseWheelMsg:
		return handleMouseWheel(msg, d)
	case tea.PasteMsg:
		// Bracketed paste goes to the focused widget's field.
		if w := d.FocusedWindow(); w != nil && !d.ShowHelp {
			return d, w.Content.Update(msg)
		}
	}
	return d, nil
}

// FilterMouseMotion drops mouse motion unless a card holds a pointer
// capture, i.e. a drag or resize is in progress.
func FilterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}
	d, ok := model.(*app.Desk)
	if !ok {
		return msg
	}
	if d.Captures.Active() {
		return msg
	}
	return nil
}
