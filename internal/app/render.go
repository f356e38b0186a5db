package app

import (
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
	"github.com/devspace-tui/devspace/internal/card"
	"github.com/devspace-tui/devspace/internal/config"
	"github.com/devspace-tui/devspace/internal/geom"
	"github.com/devspace-tui/devspace/internal/theme"
)

// Canvas composes the welcome screen, every card, the dock and the help
// overlay into one canvas the size of the terminal. Layers are clipped to it.
func (d *Desk) Canvas() *lipgloss.Canvas {
	canvas := lipgloss.NewCanvas(max(0, d.Width), max(0, d.Height))
	layers := make([]*lipgloss.Layer, 0, len(d.Windows)+3)

	if len(d.Windows) == 0 && d.UsableHeight() > 0 {
		layers = append(layers, lipgloss.NewLayer(d.renderWelcome()).
			X(0).Y(d.TopMargin()).Z(config.ZIndexWelcome).ID("welcome"))
	}

	for i, w := range d.Windows {
		b := d.Box(w)
		if b.Width < 2 || b.Height < 2 {
			continue
		}
		layers = append(layers, lipgloss.NewLayer(d.renderCard(w, i == d.Focused, b)).
			X(b.X).Y(b.Y).Z(config.ZIndexCardBase+i).ID(w.Card.ID()))
	}

	if d.Height >= config.DockHeight && d.Width > 0 {
		layers = append(layers, lipgloss.NewLayer(d.renderDock()).
			X(0).Y(d.DockRow()).Z(config.ZIndexDock).ID("dock"))
	}

	if d.ShowHelp {
		layers = append(layers, lipgloss.NewLayer(d.renderHelp()).
			X(0).Y(0).Z(config.ZIndexHelp).ID("help"))
	}

	for _, layer := range layers {
		canvas.Compose(layer)
	}
	return canvas
}

// Render returns the frame as a styled string.
func (d *Desk) Render() string {
	return lipgloss.Sprint(d.Canvas().Render())
}

// View implements tea.Model.
func (d *Desk) View() tea.View {
	var view tea.View
	view.SetContent(d.Render())
	view.AltScreen = true
	// Motion is only reported while a button is held, which is all a drag
	// or resize needs.
	view.MouseMode = tea.MouseModeCellMotion
	view.ReportFocus = true
	return view
}

func (d *Desk) borderColor(w *Window, focused bool) color.Color {
	switch w.Card.Mode() {
	case card.Dragging:
		return theme.CardBorderDragging()
	case card.Resizing:
		return theme.CardBorderResizing()
	}
	if focused {
		return theme.CardBorderFocused()
	}
	return theme.CardBorder()
}

// renderCard draws window w into a b.Width x b.Height frame: the border,
// a one row title bar and the widget content.
func (d *Desk) renderCard(w *Window, focused bool, b geom.Rect) string {
	borderColor := d.borderColor(w, focused)

	border := config.GetBorderForStyle()
	if w.Card.HandleEnabled(geom.BottomRight) {
		border.BottomRight = config.GetHandleGlyph()
	}

	innerW := b.Width - 2
	innerH := b.Height - 2

	var body []string
	if innerH > 0 {
		body = append(body, renderTitleBar(w, innerW, borderColor))
	}
	if contentH := innerH - config.TitleBarHeight; contentH > 0 && innerW > 0 {
		body = append(body, fitBlock(w.Content.View(innerW, contentH), innerW, contentH)...)
	}

	style := lipgloss.NewStyle().
		Border(border).
		BorderForeground(borderColor).
		Foreground(theme.CardFg()).
		Width(b.Width).
		Height(b.Height).
		MaxWidth(b.Width).
		MaxHeight(b.Height)
	return style.Render(strings.Join(body, "\n"))
}

// renderTitleBar puts the title on the left, a gesture indicator after it
// and the close button at the right end.
func renderTitleBar(w *Window, width int, accent color.Color) string {
	if width <= 0 {
		return ""
	}
	closeBtn := config.GetCardButtonClose()
	closeW := ansi.StringWidth(closeBtn)
	if closeW >= width {
		return strings.Repeat(" ", width)
	}

	title := " " + w.Card.Title()
	switch w.Card.Mode() {
	case card.Dragging:
		title += " (moving)"
	case card.Resizing:
		if h, ok := w.Card.ActiveHandle(); ok {
			title += " (resizing " + h.String() + ")"
		}
	}
	title = ansi.Truncate(title, width-closeW, "…")
	pad := width - closeW - ansi.StringWidth(title)

	titleStyle := lipgloss.NewStyle().Foreground(theme.CardTitle()).Bold(true)
	closeStyle := lipgloss.NewStyle().Foreground(theme.ButtonFg()).Background(accent)
	return titleStyle.Render(title) + strings.Repeat(" ", pad) + closeStyle.Render(closeBtn)
}

// fitBlock clips widget output to a width x height cell area and returns
// exactly height lines. Styled text is cut cell by cell, so escape
// sequences survive truncation.
func fitBlock(s string, width, height int) []string {
	buf := uv.NewScreenBuffer(width, height)
	buf.Method = ansi.GraphemeWidth
	uv.NewStyledString(s).Draw(buf, buf.Bounds())
	lines := strings.Split(strings.ReplaceAll(buf.Render(), "\r\n", "\n"), "\n")
	out := make([]string, height)
	copy(out, lines)
	return out
}
