package widget

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/devspace-tui/devspace/internal/config"
	"github.com/devspace-tui/devspace/internal/theme"
)

// StatusKind selects the banner colour.
type StatusKind int

// Banner kinds.
const (
	StatusNone StatusKind = iota
	StatusError
	StatusSuccess
)

// statusExpiredMsg clears the banner that was set with the same seq.
type statusExpiredMsg struct {
	owner *Status
	seq   int
}

// Status is a widget's message banner. It disappears after
// config.StatusMessageDuration.
type Status struct {
	Kind StatusKind
	Text string
	seq  int
}

// Set shows text and returns the command that hides it again.
func (s *Status) Set(kind StatusKind, text string) tea.Cmd {
	s.Kind, s.Text = kind, text
	s.seq++
	seq := s.seq
	return tea.Tick(config.StatusMessageDuration, func(time.Time) tea.Msg {
		return statusExpiredMsg{owner: s, seq: seq}
	})
}

// Error shows an error banner.
func (s *Status) Error(text string) tea.Cmd { return s.Set(StatusError, text) }

// Success shows a success banner.
func (s *Status) Success(text string) tea.Cmd { return s.Set(StatusSuccess, text) }

// Clear hides the banner immediately.
func (s *Status) Clear() {
	s.Kind, s.Text = StatusNone, ""
	s.seq++
}

// Update consumes the expiry message for this banner. It reports whether
// msg was one.
func (s *Status) Update(msg tea.Msg) bool {
	m, ok := msg.(statusExpiredMsg)
	if !ok || m.owner != s {
		return false
	}
	if m.seq == s.seq {
		s.Kind, s.Text = StatusNone, ""
	}
	return true
}

// View renders the banner, or "" when there is none.
func (s *Status) View() string {
	if s.Text == "" {
		return ""
	}
	c := theme.StatusError()
	if s.Kind == StatusSuccess {
		c = theme.StatusSuccess()
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true).MaxWidth(config.MaxStatusWidth).Render(s.Text)
}
