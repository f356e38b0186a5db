package data

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/devspace-tui/devspace/internal/theme"
	"github.com/devspace-tui/devspace/internal/widget"
)

const importPlaceholder = `{"dailyNotes": [], "todos": [], "httpRequests": [], "passwords": []}`

// Widget is the data card content: collection counts, export, import and
// clear.
type Widget struct {
	env     widget.Env
	counts  Counts
	text    string
	scroll  int
	confirm bool
	status  widget.Status
	layout  *widget.Layout
}

// New returns the data widget. Call Init to read the counts.
func New(env widget.Env) *Widget {
	return &Widget{env: env.WithDefaults()}
}

// Title implements widget.Content.
func (w *Widget) Title() string { return widget.KindData.Label() }

// Init implements widget.Content.
func (w *Widget) Init() tea.Cmd { return w.refresh() }

// Counts returns the last read collection sizes.
func (w *Widget) Counts() Counts { return w.counts }

// Text returns the contents of the import area.
func (w *Widget) Text() string { return w.text }

func (w *Widget) refresh() tea.Cmd {
	_, counts, err := Load(context.Background(), w.env.Store)
	if err != nil {
		w.env.Logger.Warn("reading data counts", "err", err)
		return w.status.Error("Could not read saved data")
	}
	w.counts = counts
	return nil
}

// Update implements widget.Content.
func (w *Widget) Update(msg tea.Msg) tea.Cmd {
	if w.status.Update(msg) {
		return nil
	}
	switch msg := msg.(type) {
	case widget.ChangedMsg:
		return w.refresh()
	case tea.PasteMsg:
		w.text += msg.Content
		w.confirm = false
	case tea.KeyPressMsg:
		return w.handleKey(msg)
	}
	return nil
}

func (w *Widget) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	k := msg.String()
	if k != "ctrl+x" {
		w.confirm = false
	}
	switch k {
	case "ctrl+v":
		// Terminals deliver pastes as PasteMsg; ctrl+v alone does nothing.
		return nil
	case "ctrl+r":
		return w.export()
	case "ctrl+s":
		return w.importText()
	case "ctrl+y":
		return w.copy()
	case "ctrl+x":
		return w.clear()
	case "ctrl+u":
		w.text, w.scroll = "", 0
	case "enter":
		w.text += "\n"
	case "backspace":
		if w.text != "" {
			_, size := utf8.DecodeLastRuneInString(w.text)
			w.text = w.text[:len(w.text)-size]
		}
	case "up":
		w.scroll = max(0, w.scroll-1)
	case "down":
		w.scroll++
	default:
		if msg.Text != "" && msg.Mod&(tea.ModCtrl|tea.ModAlt) == 0 {
			w.text += msg.Text
		}
	}
	return nil
}

func (w *Widget) export() tea.Cmd {
	out, err := Export(context.Background(), w.env.Store)
	if err != nil {
		w.env.Logger.Error("export", "err", err)
		return w.status.Error("Could not export data")
	}
	w.text, w.scroll = string(out), 0
	return w.refresh()
}

func (w *Widget) importText() tea.Cmd {
	if strings.TrimSpace(w.text) == "" {
		return nil
	}
	err := Import(context.Background(), w.env.Store, []byte(w.text))
	if errors.Is(err, ErrInvalidFormat) {
		w.env.Logger.Warn("import rejected", "err", err)
		return w.status.Error("Import failed. Check the JSON format.")
	}
	if err != nil {
		w.env.Logger.Error("import", "err", err)
		return w.status.Error("Import failed: " + err.Error())
	}
	w.text, w.scroll = "", 0
	w.refresh()
	return tea.Batch(widget.Changed(""), w.status.Success("Data imported successfully!"))
}

func (w *Widget) copy() tea.Cmd {
	if w.text == "" {
		return nil
	}
	return tea.Batch(tea.SetClipboard(w.text), w.status.Success("Copied to clipboard"))
}

// clear asks for confirmation first; a second request within the same
// prompt wipes the collections.
func (w *Widget) clear() tea.Cmd {
	if !w.confirm {
		w.confirm = true
		return w.status.Error("Clear all data? Press clear again to confirm.")
	}
	w.confirm = false
	if err := Clear(context.Background(), w.env.Store); err != nil {
		w.env.Logger.Error("clear", "err", err)
		return w.status.Error("Could not clear data")
	}
	w.text, w.scroll = "", 0
	w.refresh()
	return tea.Batch(widget.Changed(""), w.status.Success("All data was cleared!"))
}

func stat(i, n int, label string) string {
	num := lipgloss.NewStyle().Bold(true).Foreground(theme.Accent(i)).Render(fmt.Sprintf("%d", n))
	return num + " " + widget.Muted(label)
}

// View implements widget.Content.
func (w *Widget) View(width, height int) string {
	l := widget.NewLayout(width)
	l.Line(widget.Heading("Saved data"))
	l.Line(w.status.View())
	c := w.counts
	l.Line(stat(0, c.DailyNotes, "Daily Notes") + "   " + stat(1, c.Todos, "Todos"))
	l.Line(stat(2, c.HTTPRequests, "HTTP Requests") + "   " + stat(3, c.Passwords, "Passwords"))
	l.Blank()

	wipe := widget.DangerLabel("Clear")
	if w.confirm {
		wipe = widget.DangerLabel("Confirm clear")
	}
	l.Row(
		widget.Button("export", widget.ButtonLabel("Show data")), widget.Text(" "),
		widget.Button("clear", wipe), widget.Text(" "),
		widget.Button("copy", widget.ButtonLabel("Copy")), widget.Text(" "),
		widget.Button("import", widget.ButtonLabel("Apply import")),
	)
	l.Line(widget.Muted("Paste JSON below to import:"))

	if w.text == "" {
		l.Control("text", widget.Muted(importPlaceholder))
	} else {
		lines := strings.Split(w.text, "\n")
		w.scroll = max(0, min(w.scroll, len(lines)-1))
		for _, line := range lines[w.scroll:] {
			if l.Len() >= height {
				break
			}
			l.Control("text", line)
		}
	}

	w.layout = l
	return l.Render(height)
}

// ControlAt implements widget.Content.
func (w *Widget) ControlAt(x, y int) bool {
	_, ok := w.layout.Hit(x, y)
	return ok
}

// Click implements widget.Content.
func (w *Widget) Click(x, y int) tea.Cmd {
	id, ok := w.layout.Hit(x, y)
	if !ok {
		return nil
	}
	if id != "clear" {
		w.confirm = false
	}
	switch id {
	case "export":
		return w.export()
	case "clear":
		return w.clear()
	case "copy":
		return w.copy()
	case "import":
		return w.importText()
	}
	return nil
}
