package devspace

import (
	"io"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"github.com/devspace-tui/devspace/internal/config"
	"github.com/devspace-tui/devspace/internal/widget"
)

func TestNew(t *testing.T) {
	t.Cleanup(func() {
		config.UseASCIIOnly, config.DockPosition = false, "bottom"
	})

	desk, err := New(
		WithUserConfig(config.DefaultConfig()),
		WithInMemoryStore(),
		WithLogger(log.New(io.Discard)),
		WithASCIIOnly(true),
		WithDockPosition("top"),
		WithSize(100, 30),
	)
	if err != nil {
		t.Fatal(err)
	}
	if desk.Width != 100 || desk.Height != 30 {
		t.Errorf("size = %dx%d", desk.Width, desk.Height)
	}
	if !config.UseASCIIOnly || desk.DockRow() != 0 {
		t.Error("options were not applied")
	}

	desk.Open(widget.KindTodo)
	if !desk.IsOpen(widget.KindTodo) {
		t.Error("the desk should open widgets")
	}
}

func TestFilterMouseMotion(t *testing.T) {
	desk, err := New(WithUserConfig(config.DefaultConfig()), WithInMemoryStore(), WithLogger(log.New(io.Discard)))
	if err != nil {
		t.Fatal(err)
	}
	if FilterMouseMotion(desk, tea.MouseMotionMsg{}) != nil {
		t.Error("idle motion should be dropped")
	}
	if len(ProgramOptions()) != 2 {
		t.Error("program options should set the frame rate and filter")
	}
}
