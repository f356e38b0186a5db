package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/devspace-tui/devspace/internal/config"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// cpuHistorySize is the number of samples kept for the dock graph.
const cpuHistorySize = 10

// SysInfo is the host readout shown in the dock.
type SysInfo struct {
	CPUHistory []float64
	MemPercent float64
	Sampled    bool
}

// SysInfoMsg carries one sample.
type SysInfoMsg struct {
	CPU float64
	Mem float64
	Err error
}

// Add records a sample, keeping the last cpuHistorySize CPU readings.
func (s *SysInfo) Add(msg SysInfoMsg) {
	if len(s.CPUHistory) >= cpuHistorySize {
		s.CPUHistory = s.CPUHistory[1:]
	}
	s.CPUHistory = append(s.CPUHistory, msg.CPU)
	s.MemPercent = msg.Mem
	s.Sampled = true
}

// sampleSysInfo schedules the next sample.
func sampleSysInfo() tea.Cmd {
	return tea.Tick(config.StatusUpdateInterval, func(time.Time) tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		var msg SysInfoMsg
		pct, err := cpu.PercentWithContext(ctx, 0, false)
		if err != nil {
			msg.Err = err
		} else if len(pct) > 0 {
			msg.CPU = pct[0]
		}
		vm, err := mem.VirtualMemoryWithContext(ctx)
		if err != nil {
			msg.Err = err
		} else {
			msg.Mem = vm.UsedPercent
		}
		return msg
	})
}

var cpuBars = []rune("▁▂▃▄▅▆▇█")

// CPUGraph renders the CPU history as a fixed-width bar graph followed by
// the latest reading.
func (s SysInfo) CPUGraph() string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", cpuHistorySize-len(s.CPUHistory)))
	for _, usage := range s.CPUHistory {
		i := min(int(usage/12.5), len(cpuBars)-1)
		sb.WriteRune(cpuBars[max(0, i)])
	}
	current := 0.0
	if n := len(s.CPUHistory); n > 0 {
		current = s.CPUHistory[n-1]
	}
	return fmt.Sprintf("%s %s %3.0f%%", config.GetDockIconCPU(), sb.String(), current)
}

// MemoryText renders the memory readout.
func (s SysInfo) MemoryText() string {
	return fmt.Sprintf("%s %3.0f%%", config.GetDockIconMemory(), s.MemPercent)
}
