package config

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"charm.land/log/v2"
	"github.com/devspace-tui/devspace/internal/geom"
)

// ValidationIssue is a single problem found in the config file.
type ValidationIssue struct {
	Field   string // section, e.g. "window"
	Key     string
	Message string
}

func (i ValidationIssue) String() string {
	return fmt.Sprintf("[%s] %s: %s", i.Field, i.Key, i.Message)
}

// ValidationResult collects errors, which prevent startup, and warnings,
// which are logged and corrected.
type ValidationResult struct {
	Errors   []ValidationIssue
	Warnings []ValidationIssue
}

// HasErrors reports whether any fatal issue was found.
func (v *ValidationResult) HasErrors() bool { return len(v.Errors) > 0 }

// HasWarnings reports whether any non-fatal issue was found.
func (v *ValidationResult) HasWarnings() bool { return len(v.Warnings) > 0 }

// Err joins every error into one.
func (v *ValidationResult) Err() error {
	if !v.HasErrors() {
		return nil
	}
	errs := make([]error, 0, len(v.Errors)+1)
	errs = append(errs, fmt.Errorf("configuration has %d error(s), please fix and restart", len(v.Errors)))
	for _, issue := range v.Errors {
		errs = append(errs, errors.New(issue.String()))
	}
	return errors.Join(errs...)
}

func (v *ValidationResult) errorf(field, key, format string, args ...any) {
	v.Errors = append(v.Errors, ValidationIssue{field, key, fmt.Sprintf(format, args...)})
}

func (v *ValidationResult) warnf(field, key, format string, args ...any) {
	v.Warnings = append(v.Warnings, ValidationIssue{field, key, fmt.Sprintf(format, args...)})
}

var (
	borderStyles  = []string{"rounded", "normal", "thick", "double", "hidden", "block", "ascii"}
	dockPositions = []string{"bottom", "top"}
	drivers       = []string{"sqlite", "memory"}
	ciphers       = []string{"xor", "secretbox"}
)

// ValidateConfig checks cfg. Recoverable values are reset to their defaults
// and reported as warnings.
func ValidateConfig(cfg *UserConfig) *ValidationResult {
	v := &ValidationResult{}
	def := DefaultConfig()

	if !slices.Contains(borderStyles, cfg.Appearance.BorderStyle) {
		v.warnf("appearance", "border_style", "unknown style %q, using %q", cfg.Appearance.BorderStyle, def.Appearance.BorderStyle)
		cfg.Appearance.BorderStyle = def.Appearance.BorderStyle
	}
	if !slices.Contains(dockPositions, cfg.Appearance.DockPosition) {
		v.warnf("appearance", "dock_position", "unknown position %q, using %q", cfg.Appearance.DockPosition, def.Appearance.DockPosition)
		cfg.Appearance.DockPosition = def.Appearance.DockPosition
	}

	w := &cfg.Window
	if w.MinSize < 1 {
		v.errorf("window", "min_size", "must be positive, got %d", w.MinSize)
	}
	if w.DefaultWidth < w.MinSize {
		v.warnf("window", "default_width", "%d is below min_size, using %d", w.DefaultWidth, w.MinSize)
		w.DefaultWidth = w.MinSize
	}
	if w.DefaultHeight < w.MinSize {
		v.warnf("window", "default_height", "%d is below min_size, using %d", w.DefaultHeight, w.MinSize)
		w.DefaultHeight = w.MinSize
	}
	if w.CellWidth < 1 || w.CellHeight < 1 {
		v.errorf("window", "cell_width/cell_height", "must be positive, got %dx%d", w.CellWidth, w.CellHeight)
	}
	for _, name := range w.Handles {
		if _, err := geom.ParseHandle(name); err != nil {
			v.errorf("window", "handles", "%v", err)
		}
	}

	if !slices.Contains(drivers, cfg.Storage.Driver) {
		v.errorf("storage", "driver", "unknown driver %q (want sqlite or memory)", cfg.Storage.Driver)
	}
	if !slices.Contains(ciphers, cfg.Vault.Cipher) {
		v.errorf("vault", "cipher", "unknown cipher %q (want xor or secretbox)", cfg.Vault.Cipher)
	}

	if d, err := time.ParseDuration(cfg.HTTP.Timeout); err != nil || d <= 0 {
		v.warnf("http", "timeout", "invalid duration %q, using %s", cfg.HTTP.Timeout, def.HTTP.Timeout)
		cfg.HTTP.Timeout = def.HTTP.Timeout
	}
	if cfg.HTTP.Retries < 0 {
		v.warnf("http", "retries", "negative retries %d, using 0", cfg.HTTP.Retries)
		cfg.HTTP.Retries = 0
	}

	if _, err := log.ParseLevel(cfg.Log.Level); err != nil {
		v.warnf("log", "level", "unknown level %q, using %q", cfg.Log.Level, def.Log.Level)
		cfg.Log.Level = def.Log.Level
	}
	return v
}
