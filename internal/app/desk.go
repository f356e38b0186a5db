// Package app implements the devspace desk: the Bubble Tea model that hosts
// floating cards, the dock that opens and closes widgets, and rendering.
//
// Card geometry lives in virtual pixels (see Metrics). The desk maps terminal
// cells to pixels on the way in and pixels back to cells when drawing, so the
// geometry engine works with the same numbers whatever the terminal size.
package app

import (
	"math/rand/v2"
	"slices"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"github.com/devspace-tui/devspace/internal/card"
	"github.com/devspace-tui/devspace/internal/config"
	"github.com/devspace-tui/devspace/internal/geom"
	"github.com/devspace-tui/devspace/internal/store"
	"github.com/devspace-tui/devspace/internal/widget"
	"github.com/devspace-tui/devspace/internal/widget/data"
	"github.com/devspace-tui/devspace/internal/widget/httpclient"
	"github.com/devspace-tui/devspace/internal/widget/notes"
	"github.com/devspace-tui/devspace/internal/widget/todo"
	"github.com/devspace-tui/devspace/internal/widget/vault"
)

// Window is an open card together with the widget it hosts.
type Window struct {
	Kind    widget.Kind
	Card    *card.Card
	Content widget.Content
}

// Options configures a Desk.
type Options struct {
	Store  store.Store
	Logger *log.Logger

	// Window holds card sizes, the cell to pixel ratio and the enabled
	// resize handles. Zero values fall back to the defaults.
	Window config.WindowConfig
	HTTP   httpclient.ClientConfig
	Cipher string

	// Width and Height are the initial terminal size in cells.
	Width, Height int

	Rand  geom.Rand
	Now   func() time.Time
	NewID func() string

	// SystemStats enables the CPU and memory readout in the dock.
	SystemStats bool
}

// Desk is the root model.
type Desk struct {
	// Width and Height are the terminal size in cells.
	Width  int
	Height int

	Windows  []*Window
	Focused  int
	ShowHelp bool

	Metrics  Metrics
	Captures *Captures

	env      widget.Env
	http     *httpclient.Client
	cipher   string
	cardSize geom.Size
	minSize  int
	handles  []geom.Handle
	rng      geom.Rand
	stats    bool
	sys      SysInfo
}

// New creates an empty desk.
func New(opts Options) (*Desk, error) {
	wc := opts.Window
	def := config.DefaultConfig().Window
	if wc.DefaultWidth == 0 {
		wc.DefaultWidth = def.DefaultWidth
	}
	if wc.DefaultHeight == 0 {
		wc.DefaultHeight = def.DefaultHeight
	}
	if wc.MinSize == 0 {
		wc.MinSize = def.MinSize
	}
	if wc.CellWidth == 0 {
		wc.CellWidth = def.CellWidth
	}
	if wc.CellHeight == 0 {
		wc.CellHeight = def.CellHeight
	}
	if len(wc.Handles) == 0 {
		wc.Handles = def.Handles
	}
	handles, err := wc.ParsedHandles()
	if err != nil {
		return nil, err
	}

	env := widget.Env{Store: opts.Store, Logger: opts.Logger, Now: opts.Now, NewID: opts.NewID}.WithDefaults()
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	cipher := opts.Cipher
	if cipher == "" {
		cipher = vault.CipherXOR
	}
	httpCfg := opts.HTTP
	if httpCfg.Timeout <= 0 {
		httpCfg.Timeout = config.DefaultHTTPTimeout
	}
	if httpCfg.UserAgent == "" {
		httpCfg.UserAgent = config.DefaultUserAgent
	}

	return &Desk{
		Width:    opts.Width,
		Height:   opts.Height,
		Focused:  -1,
		Metrics:  Metrics{CellWidth: wc.CellWidth, CellHeight: wc.CellHeight},
		Captures: &Captures{},
		env:      env,
		http:     httpclient.NewClient(httpCfg, env.Logger),
		cipher:   cipher,
		cardSize: wc.CardSize(),
		minSize:  wc.MinSize,
		handles:  handles,
		rng:      rng,
		stats:    opts.SystemStats,
	}, nil
}

// Logger returns the desk logger.
func (d *Desk) Logger() *log.Logger { return d.env.Logger }

// Viewport returns the card area in pixels. Cards sample it on every
// gesture step.
func (d *Desk) Viewport() geom.Size {
	return d.Metrics.Viewport(max(0, d.Width), d.UsableHeight())
}

// UsableHeight returns the rows available to cards.
func (d *Desk) UsableHeight() int {
	return max(0, d.Height-config.DockHeight)
}

// TopMargin returns the first row of the card area.
func (d *Desk) TopMargin() int {
	if config.DockPosition == "top" {
		return config.DockHeight
	}
	return 0
}

// DockRow returns the row the dock is drawn on.
func (d *Desk) DockRow() int {
	if config.DockPosition == "top" {
		return 0
	}
	return max(0, d.Height-config.DockHeight)
}

// FindKind returns the index of the open window hosting k, or -1.
func (d *Desk) FindKind(k widget.Kind) int {
	return slices.IndexFunc(d.Windows, func(w *Window) bool { return w.Kind == k })
}

// IsOpen reports whether a card for k is open.
func (d *Desk) IsOpen(k widget.Kind) bool { return d.FindKind(k) >= 0 }

// FocusedWindow returns the focused window, or nil.
func (d *Desk) FocusedWindow() *Window {
	if d.Focused < 0 || d.Focused >= len(d.Windows) {
		return nil
	}
	return d.Windows[d.Focused]
}

func (d *Desk) newContent(k widget.Kind) widget.Content {
	switch k {
	case widget.KindNotes:
		return notes.New(d.env)
	case widget.KindTodo:
		return todo.New(d.env)
	case widget.KindHTTP:
		return httpclient.New(d.env, d.http)
	case widget.KindVault:
		return vault.New(d.env, d.cipher)
	case widget.KindData:
		return data.New(d.env)
	}
	return nil
}

// Open opens a card for k and focuses it. Opening an already open widget
// only focuses it.
func (d *Desk) Open(k widget.Kind) tea.Cmd {
	if i := d.FindKind(k); i >= 0 {
		d.FocusWindow(i)
		return nil
	}
	content := d.newContent(k)
	if content == nil {
		return nil
	}
	c := card.New(content, d.cardSize, d.Viewport,
		card.WithTitle(content.Title()),
		card.WithMinSize(d.minSize),
		card.WithHandles(d.handles...),
		card.WithTracker(d.Captures),
		card.WithRand(d.rng),
	)
	d.Windows = append(d.Windows, &Window{Kind: k, Card: c, Content: content})
	d.Focused = len(d.Windows) - 1
	d.env.Logger.Debug("card opened", "kind", k, "rect", c.Rect())
	return content.Init()
}

// Close closes window i. An active gesture on it is cancelled first so its
// pointer capture is released.
func (d *Desk) Close(i int) {
	if i < 0 || i >= len(d.Windows) {
		return
	}
	w := d.Windows[i]
	w.Card.Cancel()
	d.Windows = slices.Delete(d.Windows, i, i+1)
	switch {
	case len(d.Windows) == 0:
		d.Focused = -1
	case d.Focused == i:
		d.Focused = min(i, len(d.Windows)-1)
	case d.Focused > i:
		d.Focused--
	}
	d.env.Logger.Debug("card closed", "kind", w.Kind)
}

// Toggle opens the widget k, or closes it when open, like the dock menu.
func (d *Desk) Toggle(k widget.Kind) tea.Cmd {
	if i := d.FindKind(k); i >= 0 {
		d.Close(i)
		return nil
	}
	return d.Open(k)
}

// FocusWindow focuses window i. Focus does not change the stacking order.
func (d *Desk) FocusWindow(i int) {
	if i >= 0 && i < len(d.Windows) {
		d.Focused = i
	}
}

// CycleFocus moves focus by step, wrapping around.
func (d *Desk) CycleFocus(step int) {
	n := len(d.Windows)
	if n == 0 {
		return
	}
	if d.Focused < 0 {
		d.Focused = 0
		return
	}
	d.Focused = ((d.Focused+step)%n + n) % n
}

// Resize records a new terminal size and pulls every card back inside the
// viewport.
func (d *Desk) Resize(width, height int) {
	d.Width, d.Height = width, height
	for _, w := range d.Windows {
		w.Card.Refit()
	}
}

// CancelGestures ends every active drag or resize.
func (d *Desk) CancelGestures() bool {
	cancelled := false
	for _, c := range d.Captures.Cards() {
		if c.Cancel() {
			cancelled = true
		}
	}
	return cancelled
}

// Broadcast delivers msg to every open widget.
func (d *Desk) Broadcast(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(d.Windows))
	for _, w := range d.Windows {
		cmds = append(cmds, w.Content.Update(msg))
	}
	return tea.Batch(cmds...)
}
