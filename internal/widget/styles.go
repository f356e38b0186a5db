package widget

import (
	"slices"

	"charm.land/lipgloss/v2"
	"github.com/devspace-tui/devspace/internal/theme"
)

// Heading renders a section heading.
func Heading(s string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(theme.CardTitle()).Render(s)
}

// Muted renders secondary text.
func Muted(s string) string {
	return lipgloss.NewStyle().Foreground(theme.Muted()).Render(s)
}

// Success renders text in the success colour.
func Success(s string) string {
	return lipgloss.NewStyle().Foreground(theme.StatusSuccess()).Render(s)
}

// Failure renders text in the error colour.
func Failure(s string) string {
	return lipgloss.NewStyle().Foreground(theme.StatusError()).Render(s)
}

// ButtonLabel renders a button.
func ButtonLabel(s string) string {
	return lipgloss.NewStyle().Foreground(theme.ButtonFg()).Background(theme.ButtonBg()).Render(" " + s + " ")
}

// DangerLabel renders a destructive button.
func DangerLabel(s string) string {
	return lipgloss.NewStyle().Foreground(theme.ButtonFg()).Background(theme.DangerBg()).Render(" " + s + " ")
}

// Selected highlights the selected list row.
func Selected(s string, on bool) string {
	if !on {
		return "  " + s
	}
	return lipgloss.NewStyle().Foreground(theme.InputFocused()).Render("› " + s)
}

// Check renders a completion box.
func Check(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// Labelled renders "label: field" with a marker when the field has focus.
func Labelled(label, field string, focused bool) string {
	marker := "  "
	if focused {
		marker = lipgloss.NewStyle().Foreground(theme.InputFocused()).Render("▌ ")
	}
	return marker + Muted(label+": ") + field
}

// Focus cycles keyboard focus through a widget's named controls.
type Focus struct {
	ids []string
	i   int
}

// NewFocus starts on the first of ids.
func NewFocus(ids ...string) *Focus {
	return &Focus{ids: ids}
}

// Current returns the focused control.
func (f *Focus) Current() string {
	if len(f.ids) == 0 {
		return ""
	}
	return f.ids[f.i]
}

// Is reports whether id has focus.
func (f *Focus) Is(id string) bool { return f.Current() == id }

// Next moves focus forward, wrapping.
func (f *Focus) Next() {
	if len(f.ids) > 0 {
		f.i = (f.i + 1) % len(f.ids)
	}
}

// Prev moves focus backward, wrapping.
func (f *Focus) Prev() {
	if len(f.ids) > 0 {
		f.i = (f.i - 1 + len(f.ids)) % len(f.ids)
	}
}

// Set focuses id if it is one of the controls.
func (f *Focus) Set(id string) bool {
	if i := slices.Index(f.ids, id); i >= 0 {
		f.i = i
		return true
	}
	return false
}
