package taskbar

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/winnux/internal/config"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// ClockMsg carries the time for the taskbar clock.
type ClockMsg time.Time

// TrayMsg carries a fresh system reading.
type TrayMsg Tray

// Tray holds the host readings shown next to the clock.
type Tray struct {
	CPU float64 // percent
	RAM float64 // percent
	OK  bool
}

// String formats the reading for the taskbar.
func (t Tray) String() string {
	if !t.OK {
		return ""
	}
	return fmt.Sprintf("CPU %2.0f%%  RAM %2.0f%%", t.CPU, t.RAM)
}

// SampleTray reads CPU and memory usage from the host. Failures yield a
// reading with OK unset, which renders as nothing.
func SampleTray() Tray {
	pcts, err := cpu.Percent(0, false)
	if err != nil || len(pcts) == 0 {
		return Tray{}
	}
	vm, err := mem.VirtualMemory()
	if err != nil {
		return Tray{}
	}
	return Tray{CPU: pcts[0], RAM: vm.UsedPercent, OK: true}
}

// ClockTick schedules the next clock refresh.
func ClockTick() tea.Cmd {
	return tea.Tick(config.ClockInterval, func(t time.Time) tea.Msg {
		return ClockMsg(t)
	})
}

// TrayTick schedules the next tray sample.
func TrayTick() tea.Cmd {
	return tea.Tick(config.TrayInterval, func(time.Time) tea.Msg {
		return TrayMsg(SampleTray())
	})
}

// FormatClock renders the two clock lines.
func FormatClock(t time.Time) (clock, date string) {
	return t.Format("3:04 PM"), t.Format("Jan 2, 2006")
}
