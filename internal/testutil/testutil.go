// Package testutil holds helpers for driving widgets in tests without a
// running program.
package testutil

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"github.com/devspace-tui/devspace/internal/store"
	"github.com/devspace-tui/devspace/internal/widget"
)

// Epoch is the first instant returned by Clock.
var Epoch = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

// Clock returns a clock that starts at Epoch and advances one second per
// call, so creation times are distinct and ordered.
func Clock() func() time.Time {
	now := Epoch
	return func() time.Time {
		t := now
		now = now.Add(time.Second)
		return t
	}
}

// Seq returns an ID generator yielding prefix-1, prefix-2, ...
func Seq(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// Env returns a widget environment on an in-memory store with a
// deterministic clock and IDs. Logging is discarded.
func Env() (widget.Env, *store.Memory) {
	mem := store.NewMemory()
	return widget.Env{
		Store:  mem,
		Logger: log.New(io.Discard),
		Now:    Clock(),
		NewID:  Seq("id"),
	}, mem
}

// Key builds a key press from its keystroke name, e.g. "enter",
// "shift+tab", "ctrl+d" or a single character.
func Key(name string) tea.KeyPressMsg {
	var mod tea.KeyMod
	for {
		switch {
		case strings.HasPrefix(name, "ctrl+"):
			mod |= tea.ModCtrl
			name = strings.TrimPrefix(name, "ctrl+")
			continue
		case strings.HasPrefix(name, "alt+"):
			mod |= tea.ModAlt
			name = strings.TrimPrefix(name, "alt+")
			continue
		case strings.HasPrefix(name, "shift+"):
			mod |= tea.ModShift
			name = strings.TrimPrefix(name, "shift+")
			continue
		}
		break
	}

	named := map[string]rune{
		"enter":     tea.KeyEnter,
		"tab":       tea.KeyTab,
		"esc":       tea.KeyEscape,
		"backspace": tea.KeyBackspace,
		"delete":    tea.KeyDelete,
		"up":        tea.KeyUp,
		"down":      tea.KeyDown,
		"left":      tea.KeyLeft,
		"right":     tea.KeyRight,
		"home":      tea.KeyHome,
		"end":       tea.KeyEnd,
		"f1":        tea.KeyF1,
	}
	if code, ok := named[name]; ok {
		return tea.KeyPressMsg{Code: code, Mod: mod}
	}
	if name == "space" {
		if mod == 0 {
			return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
		}
		return tea.KeyPressMsg{Code: tea.KeySpace, Mod: mod}
	}
	r, _ := utf8.DecodeRuneInString(name)
	if mod != 0 {
		return tea.KeyPressMsg{Code: r, Mod: mod}
	}
	return tea.KeyPressMsg{Code: r, Text: name}
}

// Press sends each named key to c.
func Press(c widget.Content, names ...string) {
	for _, n := range names {
		c.Update(Key(n))
	}
}

// Type sends s to c one rune at a time.
func Type(c widget.Content, s string) {
	for _, r := range s {
		c.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}
