package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"charm.land/log/v2"
	"github.com/adrg/xdg"
	"github.com/devspace-tui/devspace/internal/geom"
	"github.com/pelletier/go-toml/v2"
)

const configRelPath = "devspace/config.toml"

// UserConfig represents the user's custom configuration
type UserConfig struct {
	Appearance AppearanceConfig `toml:"appearance"`
	Window     WindowConfig     `toml:"window"`
	Storage    StorageConfig    `toml:"storage"`
	Vault      VaultConfig      `toml:"vault"`
	HTTP       HTTPConfig       `toml:"http"`
	Log        LogConfig        `toml:"log"`
}

// AppearanceConfig holds appearance-related settings
type AppearanceConfig struct {
	BorderStyle  string `toml:"border_style"`  // rounded, normal, thick, double, hidden, block, ascii
	Theme        string `toml:"theme"`         // bubbletint theme ID; empty uses terminal colours
	ASCIIOnly    bool   `toml:"ascii_only"`    // Use ASCII instead of Nerd Font icons
	HideClock    bool   `toml:"hide_clock"`    // Hide the clock in the dock
	HideStats    bool   `toml:"hide_stats"`    // Hide the CPU and memory readout in the dock
	DockPosition string `toml:"dock_position"` // bottom, top
}

// WindowConfig holds card geometry settings, in virtual pixels.
type WindowConfig struct {
	DefaultWidth  int      `toml:"default_width"`
	DefaultHeight int      `toml:"default_height"`
	MinSize       int      `toml:"min_size"`
	CellWidth     int      `toml:"cell_width"`  // Pixels per terminal column
	CellHeight    int      `toml:"cell_height"` // Pixels per terminal row
	Handles       []string `toml:"handles"`     // Enabled resize handles, e.g. right, bottom, bottom-right
}

// StorageConfig selects where widget data is persisted.
type StorageConfig struct {
	Driver string `toml:"driver"` // sqlite, memory
	Path   string `toml:"path"`   // sqlite file; empty means $XDG_DATA_HOME/devspace/devspace.db
}

// VaultConfig holds password vault settings.
type VaultConfig struct {
	Cipher string `toml:"cipher"` // xor (obfuscation, export compatible), secretbox
}

// HTTPConfig holds HTTP client widget settings.
type HTTPConfig struct {
	Timeout   string `toml:"timeout"` // Go duration, e.g. 30s
	UserAgent string `toml:"user_agent"`
	Retries   int    `toml:"retries"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
	File  string `toml:"file"`  // empty means $XDG_STATE_HOME/devspace/devspace.log
}

// DefaultConfig returns the default configuration
func DefaultConfig() *UserConfig {
	return &UserConfig{
		Appearance: AppearanceConfig{
			BorderStyle:  "rounded",
			DockPosition: "bottom",
		},
		Window: WindowConfig{
			DefaultWidth:  DefaultCardWidth,
			DefaultHeight: DefaultCardHeight,
			MinSize:       DefaultMinSize,
			CellWidth:     DefaultCellWidth,
			CellHeight:    DefaultCellHeight,
			Handles:       []string{"right", "bottom", "bottom-right"},
		},
		Storage: StorageConfig{
			Driver: "sqlite",
		},
		Vault: VaultConfig{
			Cipher: "xor",
		},
		HTTP: HTTPConfig{
			Timeout:   DefaultHTTPTimeout.String(),
			UserAgent: DefaultUserAgent,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// CardSize returns the configured default card size.
func (w WindowConfig) CardSize() geom.Size {
	return geom.Size{Width: w.DefaultWidth, Height: w.DefaultHeight}
}

// ParsedHandles converts the handle names into geom handles.
func (w WindowConfig) ParsedHandles() ([]geom.Handle, error) {
	handles := make([]geom.Handle, 0, len(w.Handles))
	for _, name := range w.Handles {
		h, err := geom.ParseHandle(name)
		if err != nil {
			return nil, err
		}
		handles = append(handles, h)
	}
	return handles, nil
}

// TimeoutDuration parses the configured timeout, falling back to the default.
func (h HTTPConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(h.Timeout)
	if err != nil || d <= 0 {
		return DefaultHTTPTimeout
	}
	return d
}

// DatabasePath returns the sqlite file, resolving the XDG default.
func (s StorageConfig) DatabasePath() (string, error) {
	if s.Path != "" {
		return s.Path, nil
	}
	path, err := xdg.DataFile("devspace/devspace.db")
	if err != nil {
		return "", fmt.Errorf("failed to get data path: %w", err)
	}
	return path, nil
}

// LogPath returns the log file, resolving the XDG default.
func (l LogConfig) LogPath() (string, error) {
	if l.File != "" {
		return l.File, nil
	}
	path, err := xdg.StateFile("devspace/devspace.log")
	if err != nil {
		return "", fmt.Errorf("failed to get log path: %w", err)
	}
	return path, nil
}

// LoadUserConfig loads the user configuration from the XDG config directory,
// writing the defaults there on first run.
func LoadUserConfig() (*UserConfig, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration at path, creating it with defaults if it
// does not exist.
func LoadFrom(path string) (*UserConfig, error) {
	// #nosec G304 - reading the user's own config file is intentional
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return createDefaultConfig(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, validation, err := Parse(data)
	if err != nil {
		return nil, err
	}
	for _, warn := range validation.Warnings {
		log.Warn("config", "section", warn.Field, "key", warn.Key, "msg", warn.Message)
	}
	if validation.HasErrors() {
		return nil, validation.Err()
	}
	return cfg, nil
}

// Parse decodes a TOML config, fills missing settings with defaults and
// validates the result.
func Parse(data []byte) (*UserConfig, *ValidationResult, error) {
	var cfg UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	defaultCfg := DefaultConfig()
	fillMissingAppearance(&cfg, defaultCfg)
	fillMissingWindow(&cfg, defaultCfg)
	fillMissingServices(&cfg, defaultCfg)

	return &cfg, ValidateConfig(&cfg), nil
}

// createDefaultConfig writes a commented default config file to path.
func createDefaultConfig(path string) (*UserConfig, error) {
	cfg := DefaultConfig()
	if err := writeConfig(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ResetConfig overwrites the config at path with the defaults.
func ResetConfig(path string) error {
	return writeConfig(path, DefaultConfig())
}

func writeConfig(path string, cfg *UserConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# devspace configuration file\n")
	sb.WriteString("#\n")
	sb.WriteString("# Configuration location: " + path + "\n")
	sb.WriteString("# Run `devspace config reset` to restore these defaults.\n\n")

	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# [appearance]\n")
	sb.WriteString("#   border_style: rounded, normal, thick, double, hidden, block, ascii\n")
	sb.WriteString("#   theme: bubbletint theme ID (e.g. dracula, nord). Custom themes live in\n")
	sb.WriteString("#          ~/.config/devspace/themes/*.json\n")
	sb.WriteString("#   dock_position: bottom, top\n")
	sb.WriteString("#\n")
	sb.WriteString("# [window]\n")
	sb.WriteString("#   Sizes are in virtual pixels. One terminal cell is cell_width x cell_height.\n")
	sb.WriteString("#   handles: any of top, bottom, left, right, top-left, top-right,\n")
	sb.WriteString("#            bottom-left, bottom-right\n")
	sb.WriteString("#\n")
	sb.WriteString("# [storage]\n")
	sb.WriteString("#   driver: sqlite, memory (memory loses everything on exit)\n")
	sb.WriteString("#\n")
	sb.WriteString("# [vault]\n")
	sb.WriteString("#   cipher: xor is obfuscation only and matches the export format.\n")
	sb.WriteString("#           secretbox encrypts with NaCl secretbox.\n")
	sb.WriteString("# ============================================================================\n\n")

	sb.Write(data)

	if err := os.WriteFile(path, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// fillMissingAppearance fills in any missing appearance settings with defaults
func fillMissingAppearance(cfg, defaultCfg *UserConfig) {
	if cfg.Appearance.BorderStyle == "" {
		cfg.Appearance.BorderStyle = defaultCfg.Appearance.BorderStyle
	}
	if cfg.Appearance.DockPosition == "" {
		cfg.Appearance.DockPosition = defaultCfg.Appearance.DockPosition
	}
}

// fillMissingWindow fills zero geometry settings with defaults.
func fillMissingWindow(cfg, defaultCfg *UserConfig) {
	w, d := &cfg.Window, defaultCfg.Window
	if w.DefaultWidth == 0 {
		w.DefaultWidth = d.DefaultWidth
	}
	if w.DefaultHeight == 0 {
		w.DefaultHeight = d.DefaultHeight
	}
	if w.MinSize == 0 {
		w.MinSize = d.MinSize
	}
	if w.CellWidth == 0 {
		w.CellWidth = d.CellWidth
	}
	if w.CellHeight == 0 {
		w.CellHeight = d.CellHeight
	}
	if len(w.Handles) == 0 {
		w.Handles = d.Handles
	}
}

// fillMissingServices fills storage, vault, http and log settings.
func fillMissingServices(cfg, defaultCfg *UserConfig) {
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = defaultCfg.Storage.Driver
	}
	if cfg.Vault.Cipher == "" {
		cfg.Vault.Cipher = defaultCfg.Vault.Cipher
	}
	if cfg.HTTP.Timeout == "" {
		cfg.HTTP.Timeout = defaultCfg.HTTP.Timeout
	}
	if cfg.HTTP.UserAgent == "" {
		cfg.HTTP.UserAgent = defaultCfg.HTTP.UserAgent
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaultCfg.Log.Level
	}
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	path, err := xdg.SearchConfigFile(configRelPath)
	if err != nil {
		// Return where it would be created
		return xdg.ConfigFile(configRelPath)
	}
	return path, nil
}
