package taskbar

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/winnux/internal/config"
	"github.com/Gaurav-Gosain/winnux/internal/registry"
	"github.com/Gaurav-Gosain/winnux/internal/theme"
	zone "github.com/lrstanley/bubblezone/v2"
)

const (
	startZoneID   = "taskbar:start"
	appZonePrefix = "taskbar:app:"
)

// Target is the taskbar element under a click.
type Target struct {
	Start bool
	App   registry.AppKind
}

// Bar renders the taskbar and owns its clock and tray readings.
type Bar struct {
	zones *zone.Manager
	now   time.Time
	tray  Tray
	kinds []registry.AppKind // kinds rendered in the last View, for hit testing
}

// New creates a bar that marks its buttons in zones.
func New(zones *zone.Manager) *Bar {
	return &Bar{zones: zones, now: time.Now()}
}

// Init starts the clock and the first tray sample.
func (b *Bar) Init() tea.Cmd {
	return tea.Batch(
		ClockTick(),
		func() tea.Msg { return TrayMsg(SampleTray()) },
	)
}

// Update consumes clock and tray messages. It reports whether msg was one.
func (b *Bar) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case ClockMsg:
		b.now = time.Time(msg)
		return ClockTick(), true
	case TrayMsg:
		b.tray = Tray(msg)
		return TrayTick(), true
	}
	return nil, false
}

// Now returns the time shown on the clock.
func (b *Bar) Now() time.Time { return b.now }

// Tray returns the last system reading.
func (b *Bar) Tray() Tray { return b.tray }

// Target resolves a mouse event against the zones marked by the last View.
func (b *Bar) Target(msg tea.MouseMsg) (Target, bool) {
	if zi := b.zones.Get(startZoneID); zi != nil && zi.InBounds(msg) {
		return Target{Start: true}, true
	}
	for _, kind := range b.kinds {
		if zi := b.zones.Get(appZonePrefix + string(kind)); zi != nil && zi.InBounds(msg) {
			return Target{App: kind}, true
		}
	}
	return Target{}, false
}

// View renders the taskbar, config.TaskbarHeight rows tall and width wide.
func (b *Bar) View(width int, items []Item, startOpen bool) string {
	bg := theme.TaskbarBg()
	base := lipgloss.NewStyle().Background(bg).Foreground(theme.TaskbarFg())

	startStyle := base.Foreground(theme.TaskbarAccent()).Bold(true)
	startIndicator := " "
	if startOpen {
		startIndicator = config.IndicatorActive
	}
	start := column(base,
		startStyle.Render(" "+config.Icon(config.StartIcon, config.StartIconASCII)+" Start "),
		base.Foreground(theme.TaskbarAccent()).Render(startIndicator))
	blocks := []string{b.zones.Mark(startZoneID, start)}

	b.kinds = b.kinds[:0]
	for _, it := range items {
		label := " " + it.Name + " "
		if it.Icon != "" && !config.UseASCIIOnly {
			label = " " + it.Icon + " " + it.Name + " "
		}
		labelStyle := base
		indicator := " "
		switch {
		case it.Active:
			labelStyle = labelStyle.Bold(true)
			indicator = base.Foreground(theme.TaskbarHighlight()).Render(config.IndicatorActive)
		case it.Running:
			indicator = base.Foreground(theme.TaskbarDimmed()).Render(config.IndicatorRunning)
		}
		blocks = append(blocks, b.zones.Mark(appZonePrefix+string(it.Kind), column(base, labelStyle.Render(label), indicator)))
		b.kinds = append(b.kinds, it.Kind)
	}
	left := lipgloss.JoinHorizontal(lipgloss.Top, blocks...)

	right := b.statusBlock(base)
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		right, gap = "", max(width-lipgloss.Width(left), 0)
	}
	spacer := base.Render(strings.Repeat(" ", gap))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, column(base, spacer, spacer), right)
}

// statusBlock renders the tray and clock on the right side.
func (b *Bar) statusBlock(base lipgloss.Style) string {
	var top, bottom []string
	if !config.HideTray {
		if s := b.tray.String(); s != "" {
			top = append(top, s)
			bottom = append(bottom, strings.Repeat(" ", len(s)))
		}
	}
	if !config.HideClock {
		clock, date := FormatClock(b.now)
		top = append(top, clock)
		bottom = append(bottom, date)
	}
	if len(top) == 0 {
		return ""
	}
	row1 := " " + strings.Join(top, "  ") + " "
	row2 := " " + strings.Join(bottom, "  ") + " "
	w := max(len([]rune(row1)), len([]rune(row2)))
	padLeft := func(s string) string {
		return base.Render(strings.Repeat(" ", w-len([]rune(s))) + s)
	}
	return padLeft(row1) + "\n" + padLeft(row2)
}

// column stacks a label over its indicator, centering the indicator and
// padding both rows to the same width in the bar's background.
func column(base lipgloss.Style, label, indicator string) string {
	w := max(lipgloss.Width(label), lipgloss.Width(indicator))
	pad := func(s string) string {
		free := w - lipgloss.Width(s)
		if free <= 0 {
			return s
		}
		l := free / 2
		return base.Render(strings.Repeat(" ", l)) + s + base.Render(strings.Repeat(" ", free-l))
	}
	return pad(label) + "\n" + pad(indicator)
}
