package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/devspace-tui/devspace/internal/app"
	"github.com/devspace-tui/devspace/internal/widget"
)

// dockKeys maps Alt+digit to the widget at that dock position.
var dockKeys = map[string]widget.Kind{}

func init() {
	for i, k := range widget.Kinds {
		dockKeys["alt+"+string(rune('1'+i))] = k
	}
}

// HandleKeyPress handles desk shortcuts and forwards everything else to
// the focused widget.
func HandleKeyPress(msg tea.KeyPressMsg, d *app.Desk) (*app.Desk, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		d.CancelGestures()
		return d, tea.Quit
	}

	// The help overlay swallows keys until it is closed.
	if d.ShowHelp {
		switch key {
		case "f1", "esc", "q":
			d.ShowHelp = false
		}
		return d, nil
	}

	switch key {
	case "esc":
		if d.CancelGestures() {
			return d, nil
		}
	case "f1":
		d.ShowHelp = true
		return d, nil
	case "ctrl+n":
		d.CycleFocus(1)
		return d, nil
	case "ctrl+p":
		d.CycleFocus(-1)
		return d, nil
	case "ctrl+w":
		d.Close(d.Focused)
		return d, nil
	}

	if k, ok := dockKeys[key]; ok {
		return d, d.Toggle(k)
	}

	if w := d.FocusedWindow(); w != nil {
		return d, w.Content.Update(msg)
	}
	return d, nil
}
