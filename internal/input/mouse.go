package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/devspace-tui/devspace/internal/app"
	"github.com/devspace-tui/devspace/internal/config"
	"github.com/devspace-tui/devspace/internal/geom"
)

// pointer converts a cell position to card area pixels.
func pointer(d *app.Desk, x, y int) geom.Point {
	return d.Metrics.Point(x, y-d.TopMargin())
}

func onDock(d *app.Desk, y int) bool {
	row := d.DockRow()
	return y >= row && y < row+config.DockHeight
}

func handleMouseClick(msg tea.MouseClickMsg, d *app.Desk) (*app.Desk, tea.Cmd) {
	if d.ShowHelp {
		d.ShowHelp = false
		return d, nil
	}
	if msg.Button != tea.MouseLeft {
		return d, nil
	}
	// A press while a gesture is active belongs to that gesture.
	if d.Captures.Active() {
		return d, nil
	}

	if onDock(d, msg.Y) {
		if k, ok := d.DockItemAt(msg.X); ok {
			return d, d.Toggle(k)
		}
		return d, nil
	}

	hit := d.HitTest(msg.X, msg.Y)
	if hit.Index < 0 {
		return d, nil
	}
	d.FocusWindow(hit.Index)

	if hit.Region == app.RegionClose {
		d.Close(hit.Index)
		return d, nil
	}

	target := hit.Target()
	if target.IsControl() {
		return d, hit.Window.Content.Click(hit.X, hit.Y)
	}
	if hit.Window.Card.PointerDown(target, pointer(d, msg.X, msg.Y)) {
		d.Logger().Debug("gesture started", "card", hit.Window.Kind, "mode", hit.Window.Card.Mode())
	}
	return d, nil
}

// handleMouseMotion feeds motion to the captured cards only.
func handleMouseMotion(msg tea.MouseMotionMsg, d *app.Desk) (*app.Desk, tea.Cmd) {
	p := pointer(d, msg.X, msg.Y)
	for _, c := range d.Captures.Cards() {
		c.PointerMove(p)
	}
	return d, nil
}

func handleMouseRelease(msg tea.MouseReleaseMsg, d *app.Desk) (*app.Desk, tea.Cmd) {
	cards := d.Captures.Cards()
	if len(cards) == 0 {
		return d, nil
	}
	// Terminals report the final position with the release.
	p := pointer(d, msg.X, msg.Y)
	for _, c := range cards {
		c.PointerMove(p)
		c.PointerUp()
		d.Logger().Debug("gesture ended", "rect", c.Rect())
	}
	return d, nil
}

// handleMouseWheel scrolls the widget under the pointer by sending it
// arrow keys.
func handleMouseWheel(msg tea.MouseWheelMsg, d *app.Desk) (*app.Desk, tea.Cmd) {
	if d.ShowHelp || d.Captures.Active() {
		return d, nil
	}
	hit := d.HitTest(msg.X, msg.Y)
	if hit.Index < 0 || hit.Region != app.RegionContent {
		return d, nil
	}
	var code rune
	switch msg.Button {
	case tea.MouseWheelUp:
		code = tea.KeyUp
	case tea.MouseWheelDown:
		code = tea.KeyDown
	default:
		return d, nil
	}
	return d, hit.Window.Content.Update(tea.KeyPressMsg{Code: code})
}
