package widget

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Span is a piece of a rendered line. Spans with an ID are clickable.
type Span struct {
	ID   string
	Text string
}

// Text is a non-interactive span.
func Text(s string) Span { return Span{Text: s} }

// Button is a clickable span.
func Button(id, s string) Span { return Span{ID: id, Text: s} }

type zone struct {
	id       string
	row      int
	col, end int // [col, end)
}

// Layout collects the lines a widget renders along with the cells each
// control occupies, so later clicks can be mapped back to controls.
type Layout struct {
	width int
	lines []string
	zones []zone
}

// NewLayout starts a layout width cells wide.
func NewLayout(width int) *Layout {
	return &Layout{width: width}
}

// Width returns the layout width.
func (l *Layout) Width() int { return l.width }

// Row appends a line built from spans.
func (l *Layout) Row(spans ...Span) {
	row := len(l.lines)
	col := 0
	var sb strings.Builder
	for _, s := range spans {
		w := ansi.StringWidth(s.Text)
		if s.ID != "" && col < l.width && w > 0 {
			l.zones = append(l.zones, zone{id: s.ID, row: row, col: col, end: min(col+w, l.width)})
		}
		sb.WriteString(s.Text)
		col += w
	}
	l.lines = append(l.lines, ansi.Truncate(sb.String(), l.width, "…"))
}

// Line appends a plain line.
func (l *Layout) Line(s string) { l.Row(Text(s)) }

// Control appends a line that is clickable across the full width.
func (l *Layout) Control(id, s string) {
	row := len(l.lines)
	l.Line(s)
	l.zones = append(l.zones, zone{id: id, row: row, col: 0, end: l.width})
}

// Block appends pre-rendered multi-line text.
func (l *Layout) Block(s string) {
	for line := range strings.SplitSeq(s, "\n") {
		l.Line(line)
	}
}

// Blank appends an empty line.
func (l *Layout) Blank() { l.Line("") }

// Len returns the number of lines so far.
func (l *Layout) Len() int { return len(l.lines) }

// Render returns exactly height lines, clipping or padding as needed.
func (l *Layout) Render(height int) string {
	if height <= 0 {
		return ""
	}
	lines := l.lines
	if len(lines) > height {
		lines = lines[:height]
	}
	out := make([]string, height)
	copy(out, lines)
	return strings.Join(out, "\n")
}

// Hit returns the control at (x, y), if any. Controls on lines clipped by
// the last Render still register, so callers clip y themselves.
func (l *Layout) Hit(x, y int) (string, bool) {
	if l == nil {
		return "", false
	}
	for _, z := range l.zones {
		if z.row == y && x >= z.col && x < z.end {
			return z.id, true
		}
	}
	return "", false
}

// List appends rows, scrolled so the selected row stays within height total
// lines of the layout. Rows that do not fit are dropped along with their
// controls.
func (l *Layout) List(rows [][]Span, selected, height int) {
	room := max(1, height-l.Len())
	start := 0
	if selected >= room {
		start = selected - room + 1
	}
	end := min(len(rows), start+room)
	for _, r := range rows[start:end] {
		l.Row(r...)
	}
}

// Find returns the first cell of control id.
func (l *Layout) Find(id string) (x, y int, ok bool) {
	if l == nil {
		return 0, 0, false
	}
	for _, z := range l.zones {
		if z.id == id {
			return z.col, z.row, true
		}
	}
	return 0, 0, false
}
