// Package config provides configuration constants, keybinding help and user
// settings for devspace.
package config

import (
	"time"

	"charm.land/lipgloss/v2"
)

// =============================================================================
// Card Defaults (virtual pixels)
// =============================================================================

const (
	// DefaultCardWidth is the width a newly opened card starts with.
	DefaultCardWidth = 800

	// DefaultCardHeight is the height a newly opened card starts with.
	DefaultCardHeight = 600

	// DefaultMinSize is the smallest width or height a resize may produce.
	DefaultMinSize = 150

	// DefaultCellWidth is the pixel width mapped to one terminal column.
	DefaultCellWidth = 8

	// DefaultCellHeight is the pixel height mapped to one terminal row.
	DefaultCellHeight = 16
)

// =============================================================================
// Timeouts and Intervals
// =============================================================================

const (
	// StatusUpdateInterval is the interval between CPU/memory readouts in the dock.
	StatusUpdateInterval = 2 * time.Second

	// StatusMessageDuration is how long a widget banner stays visible.
	StatusMessageDuration = 3 * time.Second

	// DefaultHTTPTimeout is the request timeout of the HTTP client widget.
	DefaultHTTPTimeout = 30 * time.Second

	// NormalFPS is the refresh rate of the desk program.
	NormalFPS = 60
)

// =============================================================================
// Layout
// =============================================================================

const (
	// DockHeight is the number of rows reserved for the dock menu.
	DockHeight = 1

	// DockItemGap is the number of columns between dock items.
	DockItemGap = 2

	// TitleBarHeight is the number of rows of a card frame above its content.
	TitleBarHeight = 1

	// MaxStatusWidth is the maximum width of a widget status banner.
	MaxStatusWidth = 60
)

// =============================================================================
// Z-Index Layers
// =============================================================================

const (
	// ZIndexWelcome is the z-index of the welcome screen behind every card.
	ZIndexWelcome = 0

	// ZIndexCardBase is the z-index of the first card; later cards stack above.
	ZIndexCardBase = 10

	// ZIndexDock is the z-index for the dock.
	ZIndexDock = 1000

	// ZIndexHelp is the z-index for the help overlay.
	ZIndexHelp = 1001
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultSSHPort is the default SSH server port.
	DefaultSSHPort = "2222"

	// DefaultSSHHost is the default SSH server host.
	DefaultSSHHost = "localhost"

	// DefaultUserAgent is sent by the HTTP client widget unless overridden.
	DefaultUserAgent = "devspace"
)

// =============================================================================
// Dock Icons - Nerd Font (Default) and ASCII Fallback
// =============================================================================

const (
	// DockIconNotes is nf-md-notebook.
	DockIconNotes = string(rune(0xf082e))
	// DockIconTodo is nf-fa-list_ul.
	DockIconTodo = string(rune(0xf0ca))
	// DockIconHTTP is nf-md-web.
	DockIconHTTP = string(rune(0xf059f))
	// DockIconVault is nf-md-shield_lock.
	DockIconVault = string(rune(0xf099d))
	// DockIconData is nf-fa-database.
	DockIconData = string(rune(0xf1c0))
	// DockIconCPU is nf-oct-cpu.
	DockIconCPU = string(rune(0xf4bc))
	// DockIconMemory is nf-md-memory.
	DockIconMemory = string(rune(0xf035b))

	// DockPillLeftChar is the powerline left semicircle.
	DockPillLeftChar = string(rune(0xe0b6))
	// DockPillRightChar is the powerline right semicircle.
	DockPillRightChar = string(rune(0xe0b4))
)

// ASCII fallbacks, used when --ascii-only is set.
const (
	DockIconNotesASCII  = "N"
	DockIconTodoASCII   = "T"
	DockIconHTTPASCII   = "H"
	DockIconVaultASCII  = "P"
	DockIconDataASCII   = "D"
	DockIconCPUASCII    = "cpu"
	DockIconMemoryASCII = "mem"

	DockPillLeftCharASCII  = "["
	DockPillRightCharASCII = "]"
)

// =============================================================================
// Card Decoration Characters
// =============================================================================

const (
	// CardButtonClose is the close button in the card title bar.
	CardButtonClose = " ⤫ "
	// CardButtonCloseASCII is the ASCII fallback for the close button.
	CardButtonCloseASCII = " X "

	// HandleGlyphCorner marks the bottom-right resize handle.
	HandleGlyphCorner = "◢"
	// HandleGlyphCornerASCII is the ASCII fallback for corner handles.
	HandleGlyphCornerASCII = "+"
)

// =============================================================================
// Runtime Settings (set from user config and CLI flags)
// =============================================================================

// UseASCIIOnly replaces Nerd Font glyphs with ASCII.
var UseASCIIOnly = false

// BorderStyle is the card border style.
var BorderStyle = "rounded"

// DockPosition is where the dock menu is drawn: bottom, top.
var DockPosition = "bottom"

// HideClock hides the clock in the dock.
var HideClock = false

func pickGlyph(nerd, ascii string) string {
	if UseASCIIOnly {
		return ascii
	}
	return nerd
}

// GetDockIcon returns the dock icon for a widget kind.
func GetDockIcon(kind string) string {
	switch kind {
	case "notes":
		return pickGlyph(DockIconNotes, DockIconNotesASCII)
	case "todo":
		return pickGlyph(DockIconTodo, DockIconTodoASCII)
	case "http":
		return pickGlyph(DockIconHTTP, DockIconHTTPASCII)
	case "vault":
		return pickGlyph(DockIconVault, DockIconVaultASCII)
	case "data":
		return pickGlyph(DockIconData, DockIconDataASCII)
	default:
		return "?"
	}
}

// GetDockIconCPU returns the CPU readout icon.
func GetDockIconCPU() string { return pickGlyph(DockIconCPU, DockIconCPUASCII) }

// GetDockIconMemory returns the memory readout icon.
func GetDockIconMemory() string { return pickGlyph(DockIconMemory, DockIconMemoryASCII) }

// GetDockPillLeftChar returns the appropriate pill left character.
func GetDockPillLeftChar() string { return pickGlyph(DockPillLeftChar, DockPillLeftCharASCII) }

// GetDockPillRightChar returns the appropriate pill right character.
func GetDockPillRightChar() string { return pickGlyph(DockPillRightChar, DockPillRightCharASCII) }

// GetCardButtonClose returns the close button glyph.
func GetCardButtonClose() string { return pickGlyph(CardButtonClose, CardButtonCloseASCII) }

// GetHandleGlyph returns the resize corner glyph.
func GetHandleGlyph() string { return pickGlyph(HandleGlyphCorner, HandleGlyphCornerASCII) }

// GetBorderForStyle returns the lipgloss Border for the current style.
func GetBorderForStyle() lipgloss.Border {
	if UseASCIIOnly || BorderStyle == "ascii" {
		return lipgloss.ASCIIBorder()
	}
	switch BorderStyle {
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	case "block":
		return lipgloss.BlockBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}
