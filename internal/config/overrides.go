package config

import (
	"charm.land/log/v2"
	"github.com/devspace-tui/devspace/internal/theme"
)

// Overrides contains CLI flag values that can override user config.
// Zero values indicate the flag was not set and should use the user config default.
type Overrides struct {
	// ASCIIOnly uses ASCII characters instead of Nerd Font icons
	ASCIIOnly bool

	// BorderStyle overrides the card border style
	BorderStyle string

	// DockPosition overrides the dock position
	DockPosition string

	// HideClock overrides hiding the clock
	HideClock bool

	// HideStats hides the CPU and memory readout
	HideStats bool

	// ThemeName is the theme to load
	ThemeName string

	// StoragePath overrides the sqlite file
	StoragePath string

	// InMemory keeps all data in memory for this run
	InMemory bool

	// Debug forces the debug log level
	Debug bool
}

// ApplyOverrides applies CLI flag overrides on top of userConfig and sets the
// package-level appearance settings. userConfig is modified in place; if it is
// nil, only the flags are applied.
func ApplyOverrides(overrides Overrides, userConfig *UserConfig) {
	if userConfig == nil {
		userConfig = DefaultConfig()
	}

	UseASCIIOnly = overrides.ASCIIOnly || userConfig.Appearance.ASCIIOnly
	HideClock = overrides.HideClock || userConfig.Appearance.HideClock

	if overrides.BorderStyle != "" {
		BorderStyle = overrides.BorderStyle
	} else if userConfig.Appearance.BorderStyle != "" {
		BorderStyle = userConfig.Appearance.BorderStyle
	}

	if overrides.DockPosition != "" {
		DockPosition = overrides.DockPosition
	} else if userConfig.Appearance.DockPosition != "" {
		DockPosition = userConfig.Appearance.DockPosition
	}

	if overrides.HideStats {
		userConfig.Appearance.HideStats = true
	}

	if overrides.StoragePath != "" {
		userConfig.Storage.Driver = "sqlite"
		userConfig.Storage.Path = overrides.StoragePath
	}
	if overrides.InMemory {
		userConfig.Storage.Driver = "memory"
	}
	if overrides.Debug {
		userConfig.Log.Level = "debug"
	}

	themeName := overrides.ThemeName
	if themeName == "" {
		themeName = userConfig.Appearance.Theme
	}
	if err := theme.Initialize(themeName); err != nil {
		log.Warn("failed to load theme", "theme", themeName, "err", err)
	}
}
