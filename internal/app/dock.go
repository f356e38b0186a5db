package app

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/devspace-tui/devspace/internal/config"
	"github.com/devspace-tui/devspace/internal/theme"
	"github.com/devspace-tui/devspace/internal/widget"
)

// DockItem is one widget entry of the dock, occupying columns
// [X, X+Width).
type DockItem struct {
	Kind  widget.Kind
	Label string
	X     int
	Width int
	Open  bool
}

// DockLayout lays out the dock items from the left edge. Items that do not
// fit in the terminal width are dropped.
func (d *Desk) DockLayout() []DockItem {
	items := make([]DockItem, 0, len(widget.Kinds))
	pillW := ansi.StringWidth(config.GetDockPillLeftChar()) + ansi.StringWidth(config.GetDockPillRightChar())
	x := 1
	for _, k := range widget.Kinds {
		label := config.GetDockIcon(string(k)) + " " + k.Label()
		w := ansi.StringWidth(label) + pillW
		if x+w > d.Width {
			break
		}
		items = append(items, DockItem{Kind: k, Label: label, X: x, Width: w, Open: d.IsOpen(k)})
		x += w + config.DockItemGap
	}
	return items
}

// DockItemAt returns the widget whose dock item covers column x.
func (d *Desk) DockItemAt(x int) (widget.Kind, bool) {
	for _, it := range d.DockLayout() {
		if x >= it.X && x < it.X+it.Width {
			return it.Kind, true
		}
	}
	return "", false
}

// dockStatus is the right-hand side of the dock: system readout and clock.
func (d *Desk) dockStatus() string {
	var parts []string
	if d.stats && d.sys.Sampled {
		parts = append(parts, d.sys.CPUGraph(), d.sys.MemoryText())
	}
	if !config.HideClock {
		parts = append(parts, d.env.Now().Format("15:04"))
	}
	return strings.Join(parts, "  ")
}

func (d *Desk) renderDock() string {
	bg := lipgloss.NewStyle().Background(theme.DockBg())

	var sb strings.Builder
	col := 0
	for _, it := range d.DockLayout() {
		sb.WriteString(bg.Render(strings.Repeat(" ", it.X-col)))

		pillBg := theme.DockDimmed()
		fg := theme.DockFg()
		if it.Open {
			pillBg = theme.DockActive()
			fg = theme.ButtonFg()
		}
		if w := d.FocusedWindow(); w != nil && w.Kind == it.Kind {
			fg = theme.CardTitle()
		}
		edge := lipgloss.NewStyle().Foreground(pillBg).Background(theme.DockBg())
		label := lipgloss.NewStyle().Foreground(fg).Background(pillBg).Bold(it.Open)
		sb.WriteString(edge.Render(config.GetDockPillLeftChar()))
		sb.WriteString(label.Render(it.Label))
		sb.WriteString(edge.Render(config.GetDockPillRightChar()))
		col = it.X + it.Width
	}

	status := d.dockStatus()
	statusW := ansi.StringWidth(status)
	gap := d.Width - col - statusW - 1
	if status == "" || gap < config.DockItemGap {
		sb.WriteString(bg.Render(strings.Repeat(" ", max(0, d.Width-col))))
		return ansi.Truncate(sb.String(), d.Width, "")
	}
	sb.WriteString(bg.Render(strings.Repeat(" ", gap)))
	sb.WriteString(bg.Foreground(theme.DockFg()).Render(status))
	sb.WriteString(bg.Render(" "))
	return sb.String()
}
