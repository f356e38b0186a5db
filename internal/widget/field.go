package widget

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/devspace-tui/devspace/internal/theme"
)

// Field is a single-line text input.
type Field struct {
	Placeholder string
	// Masked renders every rune as a bullet.
	Masked bool

	value  []rune
	cursor int
}

// NewField returns an empty field with a placeholder.
func NewField(placeholder string) *Field {
	return &Field{Placeholder: placeholder}
}

// Value returns the current text.
func (f *Field) Value() string { return string(f.value) }

// SetValue replaces the text and moves the cursor to the end.
func (f *Field) SetValue(s string) {
	f.value = []rune(s)
	f.cursor = len(f.value)
}

// Reset clears the field.
func (f *Field) Reset() { f.SetValue("") }

// HandleKey applies an editing key. It reports whether the key was used;
// enter, esc and tab are left to the caller.
func (f *Field) HandleKey(msg tea.KeyPressMsg) bool {
	switch msg.String() {
	case "backspace":
		if f.cursor > 0 {
			f.value = append(f.value[:f.cursor-1], f.value[f.cursor:]...)
			f.cursor--
		}
		return true
	case "delete":
		if f.cursor < len(f.value) {
			f.value = append(f.value[:f.cursor], f.value[f.cursor+1:]...)
		}
		return true
	case "left":
		f.cursor = max(0, f.cursor-1)
		return true
	case "right":
		f.cursor = min(len(f.value), f.cursor+1)
		return true
	case "home":
		f.cursor = 0
		return true
	case "end":
		f.cursor = len(f.value)
		return true
	case "ctrl+u":
		f.value = f.value[f.cursor:]
		f.cursor = 0
		return true
	}

	if msg.Text == "" || msg.Mod&(tea.ModCtrl|tea.ModAlt) != 0 {
		return false
	}
	f.Insert(msg.Text)
	return true
}

// Insert adds s at the cursor. Line breaks become spaces since the field
// holds a single line.
func (f *Field) Insert(s string) {
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
	in := []rune(s)
	tail := append(in, f.value[f.cursor:]...)
	f.value = append(f.value[:f.cursor], tail...)
	f.cursor += len(in)
}

// View renders the field into width cells. A focused field shows its cursor
// and scrolls so the cursor stays visible.
func (f *Field) View(width int, focused bool) string {
	if width <= 0 {
		return ""
	}
	style := lipgloss.NewStyle().Foreground(theme.CardFg())
	if len(f.value) == 0 && !focused {
		return lipgloss.NewStyle().Foreground(theme.Muted()).Render(ansi.Truncate(f.Placeholder, width, "…"))
	}

	text := f.value
	if f.Masked {
		text = []rune(strings.Repeat("•", len(f.value)))
	}
	if !focused {
		return style.Render(ansi.Truncate(string(text), width, "…"))
	}

	// Keep one column for the cursor block.
	start := max(0, f.cursor-(width-1))
	visible := text[start:]
	cur := f.cursor - start

	var sb strings.Builder
	sb.WriteString(style.Render(string(visible[:cur])))
	under := " "
	if cur < len(visible) {
		under = string(visible[cur])
	}
	sb.WriteString(lipgloss.NewStyle().Reverse(true).Render(under))
	if cur+1 < len(visible) {
		sb.WriteString(style.Render(string(visible[cur+1:])))
	}
	return ansi.Truncate(sb.String(), width, "")
}
