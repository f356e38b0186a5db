// Package theme provides the colour palette for the devspace desk: card
// frames, the dock menu, widget accents and the welcome screen.
package theme

import (
	"fmt"
	"image/color"

	"charm.land/lipgloss/v2"
	"charm.land/log/v2"
	tint "github.com/lrstanley/bubbletint/v2"
)

var enabled bool

// Initialize sets up the theme registry with the specified theme name.
// An empty name disables theming and the terminal's own colours are used.
func Initialize(themeName string) error {
	if themeName == "" {
		enabled = false
		return nil
	}

	enabled = true
	tint.NewDefaultRegistry()

	if dir, err := ThemesDir(); err == nil {
		if _, err := LoadDir(dir); err != nil {
			log.Warn("loading custom themes", "dir", dir, "err", err)
		}
	}

	if !tint.SetTintID(themeName) {
		log.Warn("unknown theme, using default", "theme", themeName)
		tint.SetTintID("default")
	}
	return nil
}

// IDs lists the registered theme IDs, built-in and custom.
func IDs() []string {
	return tint.TintIDs()
}

// IsEnabled returns true if theming is enabled.
func IsEnabled() bool {
	return enabled
}

// Current returns the active theme, or nil when theming is disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// pick returns fallback when theming is off, otherwise the colour chosen
// from the active tint.
func pick(fallback string, from func(t *tint.Tint) color.Color) color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color(fallback)
	}
	return from(t)
}

// CardBorder returns the frame colour of an unfocused card.
func CardBorder() color.Color {
	return pick("#6c7086", func(t *tint.Tint) color.Color { return t.BrightBlack })
}

// CardBorderFocused returns the frame colour of the focused card.
func CardBorderFocused() color.Color {
	return pick("#89b4fa", func(t *tint.Tint) color.Color { return t.BrightBlue })
}

// CardBorderDragging returns the frame colour while a card is being moved.
func CardBorderDragging() color.Color {
	return pick("#f9e2af", func(t *tint.Tint) color.Color { return t.Yellow })
}

// CardBorderResizing returns the frame colour while a card is being resized.
func CardBorderResizing() color.Color {
	return pick("#a6e3a1", func(t *tint.Tint) color.Color { return t.BrightGreen })
}

// CardTitle returns the colour of the card title.
func CardTitle() color.Color {
	return pick("#cdd6f4", func(t *tint.Tint) color.Color { return t.Fg })
}

// CardFg returns the default text colour inside a card.
func CardFg() color.Color {
	return pick("#bac2de", func(t *tint.Tint) color.Color { return t.Fg })
}

// CardBg returns the background of a card body.
func CardBg() color.Color {
	return pick("#1e1e2e", func(t *tint.Tint) color.Color { return t.Bg })
}

// HandleColor returns the colour of resize handle markers.
func HandleColor() color.Color {
	return pick("#f5c2e7", func(t *tint.Tint) color.Color { return t.Purple })
}

// ButtonFg returns the foreground colour for buttons.
func ButtonFg() color.Color {
	return pick("#11111b", func(t *tint.Tint) color.Color { return t.Black })
}

// ButtonBg returns the background colour for primary buttons.
func ButtonBg() color.Color {
	return pick("#89b4fa", func(t *tint.Tint) color.Color { return t.Blue })
}

// DangerBg returns the background colour for destructive buttons.
func DangerBg() color.Color {
	return pick("#f38ba8", func(t *tint.Tint) color.Color { return t.Red })
}

// InputFocused returns the colour of the focused input underline.
func InputFocused() color.Color {
	return pick("#89dceb", func(t *tint.Tint) color.Color { return t.BrightCyan })
}

// Muted returns the colour for placeholders and secondary text.
func Muted() color.Color {
	return lipgloss.Color("8")
}

// StatusError returns the colour of error banners.
func StatusError() color.Color {
	return pick("#f38ba8", func(t *tint.Tint) color.Color { return t.BrightRed })
}

// StatusSuccess returns the colour of success banners.
func StatusSuccess() color.Color {
	return pick("#a6e3a1", func(t *tint.Tint) color.Color { return t.BrightGreen })
}

// Accent returns the accent used for the four data counters, in order:
// notes, todos, requests, passwords.
func Accent(i int) color.Color {
	t := Current()
	if t == nil {
		fallback := []string{"#89b4fa", "#a6e3a1", "#f9e2af", "#f38ba8"}
		return lipgloss.Color(fallback[i%len(fallback)])
	}
	accents := []color.Color{t.Blue, t.Green, t.Yellow, t.Red}
	return accents[i%len(accents)]
}

// DockBg returns the background colour for the dock.
func DockBg() color.Color {
	return lipgloss.Color("#2a2a3e")
}

// DockFg returns the foreground colour for the dock.
func DockFg() color.Color {
	return lipgloss.Color("#a0a0a8")
}

// DockActive returns the colour of dock items whose card is open.
func DockActive() color.Color {
	return pick("#00ff00", func(t *tint.Tint) color.Color { return t.BrightGreen })
}

// DockDimmed returns the dimmed colour for the dock status readout.
func DockDimmed() color.Color {
	return lipgloss.Color("#808090")
}

// WelcomeTitle returns the colour for the welcome title.
func WelcomeTitle() color.Color {
	return lipgloss.Color("14")
}

// WelcomeSubtitle returns the colour for the welcome subtitle.
func WelcomeSubtitle() color.Color {
	return lipgloss.Color("11")
}

// WelcomeText returns the colour for welcome body text.
func WelcomeText() color.Color {
	return lipgloss.Color("7")
}

// ColorToString converts a color.Color to a hex string.
func ColorToString(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
