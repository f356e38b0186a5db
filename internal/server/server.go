// Package server serves the desk to remote terminals, over SSH with wish and
// in the browser with sip. Every connection gets its own desk; all of them
// share the store passed in by the caller.
package server

import (
	"errors"

	tea "charm.land/bubbletea/v2"
	"github.com/devspace-tui/devspace/internal/app"
	"github.com/devspace-tui/devspace/internal/config"
	"github.com/devspace-tui/devspace/internal/input"
)

// DeskFactory builds the desk for one session of the given terminal size.
type DeskFactory func(width, height int) (*app.Desk, error)

var errNoFactory = errors.New("server: no desk factory configured")

// sessionFilter keeps remote programs from suspending, since there is no
// shell to return to, and drops idle mouse motion.
func sessionFilter(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.SuspendMsg); ok {
		return tea.ResumeMsg{}
	}
	return input.FilterMouseMotion(model, msg)
}

// programOptions are appended after the transport's own options so the
// filter above replaces theirs.
func programOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithFPS(config.NormalFPS),
		tea.WithFilter(sessionFilter),
	}
}
