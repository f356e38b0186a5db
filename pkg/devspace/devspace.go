// Package devspace exposes the devspace desk as a library, so it can be
// embedded in another Bubble Tea program or served over a custom transport.
//
// Basic usage:
//
//	desk, err := devspace.New(devspace.WithInMemoryStore())
//	if err != nil {
//		return err
//	}
//	p := tea.NewProgram(desk, devspace.ProgramOptions()...)
//	_, err = p.Run()
package devspace

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"github.com/devspace-tui/devspace/internal/app"
	"github.com/devspace-tui/devspace/internal/config"
	"github.com/devspace-tui/devspace/internal/input"
	"github.com/devspace-tui/devspace/internal/store"
	"github.com/devspace-tui/devspace/internal/theme"
)

// Model is the desk model. It implements tea.Model.
type Model = app.Desk

// Store is the key/value persistence used by the widgets.
type Store = store.Store

// Options configures a desk.
type Options struct {
	// Theme is a bubbletint theme ID. Empty uses the terminal's colours.
	Theme string

	// ASCIIOnly uses ASCII characters instead of Nerd Font icons.
	ASCIIOnly bool

	// BorderStyle is the card border style.
	BorderStyle string

	// DockPosition is "bottom" or "top".
	DockPosition string

	// HideClock hides the clock in the dock.
	HideClock bool

	Width  int
	Height int

	// Store holds the widget data. Nil opens the store named by the user
	// configuration.
	Store Store

	Logger *log.Logger

	// UserConfig overrides the configuration file.
	UserConfig *config.UserConfig
}

// Option configures Options.
type Option func(*Options)

// WithTheme sets the color theme.
func WithTheme(name string) Option {
	return func(o *Options) {
		o.Theme = name
	}
}

// WithASCIIOnly enables ASCII-only mode (no Nerd Font icons).
func WithASCIIOnly(enabled bool) Option {
	return func(o *Options) {
		o.ASCIIOnly = enabled
	}
}

// WithBorderStyle sets the card border style.
func WithBorderStyle(style string) Option {
	return func(o *Options) {
		o.BorderStyle = style
	}
}

// WithDockPosition sets the dock position.
func WithDockPosition(position string) Option {
	return func(o *Options) {
		o.DockPosition = position
	}
}

// WithHideClock hides the dock clock.
func WithHideClock(hide bool) Option {
	return func(o *Options) {
		o.HideClock = hide
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(o *Options) {
		o.Width = width
		o.Height = height
	}
}

// WithStore sets the widget store.
func WithStore(s Store) Option {
	return func(o *Options) {
		o.Store = s
	}
}

// WithInMemoryStore keeps all data in memory.
func WithInMemoryStore() Option {
	return WithStore(store.NewMemory())
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithUserConfig sets a custom user configuration.
func WithUserConfig(cfg *config.UserConfig) Option {
	return func(o *Options) {
		o.UserConfig = cfg
	}
}

// New creates a desk with the given options. When no store is given, the
// store named by the user configuration is opened; closing it is the
// caller's job.
func New(opts ...Option) (*Model, error) {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}

	app.SetInputHandler(input.HandleInput)

	userConfig := options.UserConfig
	if userConfig == nil {
		var err error
		userConfig, err = config.LoadUserConfig()
		if err != nil {
			userConfig = config.DefaultConfig()
		}
	}

	config.ApplyOverrides(config.Overrides{
		ASCIIOnly:    options.ASCIIOnly,
		BorderStyle:  options.BorderStyle,
		DockPosition: options.DockPosition,
		HideClock:    options.HideClock,
		ThemeName:    options.Theme,
	}, userConfig)

	st := options.Store
	if st == nil {
		path, err := userConfig.Storage.DatabasePath()
		if err != nil {
			return nil, err
		}
		st, err = store.Open(userConfig.Storage.Driver, path)
		if err != nil {
			return nil, err
		}
	}

	deskOpts := app.OptionsFromConfig(userConfig)
	deskOpts.Store = st
	deskOpts.Logger = options.Logger
	deskOpts.Width = options.Width
	deskOpts.Height = options.Height
	return app.New(deskOpts)
}

// ProgramOptions returns recommended tea.ProgramOption values for running
// the desk:
//
//	p := tea.NewProgram(desk, devspace.ProgramOptions()...)
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithFPS(config.NormalFPS),
		tea.WithFilter(FilterMouseMotion),
	}
}

// FilterMouseMotion is a tea.WithFilter function that drops mouse motion
// unless a card is being dragged or resized.
func FilterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	return input.FilterMouseMotion(model, msg)
}

// ThemeIDs lists the available themes.
func ThemeIDs() []string {
	_ = theme.Initialize("default")
	return theme.IDs()
}

// Config re-exports the config package for customization.
var Config = struct {
	// LoadUserConfig loads the user's configuration file.
	LoadUserConfig func() (*config.UserConfig, error)
	// DefaultConfig returns the default configuration.
	DefaultConfig func() *config.UserConfig
	// GetConfigPath returns the path to the configuration file.
	GetConfigPath func() (string, error)
}{
	LoadUserConfig: config.LoadUserConfig,
	DefaultConfig:  config.DefaultConfig,
	GetConfigPath:  config.GetConfigPath,
}
