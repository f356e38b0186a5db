package app

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/devspace-tui/devspace/internal/config"
)

// TickerMsg refreshes the dock clock.
type TickerMsg time.Time

// InputHandler is a function type that handles input messages.
// This allows the Update method to delegate to the input package without creating a circular dependency.
type InputHandler func(msg tea.Msg, d *Desk) (tea.Model, tea.Cmd)

// inputHandler is the registered input handler function.
// This will be set by the main package to break the circular dependency.
var inputHandler InputHandler

// SetInputHandler registers the input handler function.
// This must be called during initialization before the Update loop runs.
func SetInputHandler(handler InputHandler) {
	inputHandler = handler
}

// Init starts the clock and, when enabled, the system readout.
func (d *Desk) Init() tea.Cmd {
	cmds := []tea.Cmd{TickCmd()}
	if d.stats {
		cmds = append(cmds, sampleSysInfo())
	}
	return tea.Batch(cmds...)
}

// TickCmd ticks once a second for the dock clock.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// Update implements tea.Model. Keyboard, mouse and paste events go to the
// registered input handler; everything else is broadcast to the widgets.
func (d *Desk) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.Resize(msg.Width, msg.Height)
		return d, nil

	case TickerMsg:
		if config.HideClock {
			return d, nil
		}
		return d, TickCmd()

	case SysInfoMsg:
		if msg.Err != nil {
			d.Logger().Debug("system readout failed", "err", msg.Err)
		} else {
			d.sys.Add(msg)
		}
		return d, sampleSysInfo()

	case tea.BlurMsg:
		// Losing terminal focus can swallow the button release.
		if d.CancelGestures() {
			d.Logger().Debug("gestures cancelled on focus loss")
		}
		return d, nil

	case tea.FocusMsg:
		return d, nil

	case tea.KeyMsg, tea.MouseMsg, tea.PasteMsg:
		if inputHandler != nil {
			return inputHandler(msg, d)
		}
		return d, nil
	}

	return d, d.Broadcast(msg)
}
