package theme

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"charm.land/log/v2"
	"github.com/adrg/xdg"
	tint "github.com/lrstanley/bubbletint/v2"
)

// ThemesDir returns the custom themes directory
// ($XDG_CONFIG_HOME/devspace/themes), creating it if needed.
func ThemesDir() (string, error) {
	keep, err := xdg.ConfigFile("devspace/themes/.keep")
	if err != nil {
		return "", fmt.Errorf("failed to get themes directory: %w", err)
	}
	return filepath.Dir(keep), nil
}

// LoadDir registers every *.json theme in dir with bubbletint and returns
// the IDs that loaded. Broken files are skipped with a warning.
func LoadDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read themes directory: %w", err)
	}

	var loaded []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		t, err := LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			log.Warn("skipping custom theme", "file", entry.Name(), "err", err)
			continue
		}
		tint.Register(t)
		loaded = append(loaded, t.ID)
	}
	return loaded, nil
}

// LoadFile parses a bubbletint JSON theme. The ID defaults to the file name,
// the display name to the ID, and missing colours to the card palette.
func LoadFile(path string) (*tint.Tint, error) {
	// #nosec G304 - themes are read from the user's own config directory
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var t tint.Tint
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse theme JSON: %w", err)
	}

	if t.ID == "" {
		base := filepath.Base(path)
		t.ID = strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
	}
	if t.ID == "" {
		return nil, fmt.Errorf("theme has no ID")
	}
	if t.DisplayName == "" {
		t.DisplayName = t.ID
	}

	fillDefaults(&t)
	return &t, nil
}

// fillDefaults fills nil colours. Base colours come from fixed hex values,
// bright variants and the cursor copy the colour they brighten.
func fillDefaults(t *tint.Tint) {
	base := []struct {
		c   **tint.Color
		hex string
	}{
		{&t.Fg, "#cdd6f4"},
		{&t.Bg, "#1e1e2e"},
		{&t.Black, "#45475a"},
		{&t.Red, "#f38ba8"},
		{&t.Green, "#a6e3a1"},
		{&t.Yellow, "#f9e2af"},
		{&t.Blue, "#89b4fa"},
		{&t.Purple, "#f5c2e7"},
		{&t.Cyan, "#94e2d5"},
		{&t.White, "#bac2de"},
	}
	for _, b := range base {
		if *b.c == nil {
			*b.c = tint.FromHex(b.hex)
		}
	}

	derived := []struct {
		c, from **tint.Color
	}{
		{&t.Cursor, &t.Fg},
		{&t.BrightBlack, &t.Black},
		{&t.BrightRed, &t.Red},
		{&t.BrightGreen, &t.Green},
		{&t.BrightYellow, &t.Yellow},
		{&t.BrightBlue, &t.Blue},
		{&t.BrightPurple, &t.Purple},
		{&t.BrightCyan, &t.Cyan},
		{&t.BrightWhite, &t.White},
	}
	for _, d := range derived {
		if *d.c == nil && *d.from != nil {
			dup := **d.from
			*d.c = &dup
		}
	}
}
