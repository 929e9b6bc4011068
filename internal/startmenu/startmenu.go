// Package startmenu implements the modal start menu: app search, the pinned
// list, recent documents and the power button.
package startmenu

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/winnux/internal/config"
	"github.com/Gaurav-Gosain/winnux/internal/desktop"
	"github.com/Gaurav-Gosain/winnux/internal/registry"
	"github.com/Gaurav-Gosain/winnux/internal/theme"
	"github.com/charmbracelet/x/ansi"
)

// Recent is an entry in the recommended section.
type Recent struct {
	Name string
	When string
}

// Recommended is the fixed list of recent documents.
var Recommended = []Recent{
	{Name: "Project_Proposal.docx", When: "10 min ago"},
	{Name: "mockup_v2.png", When: "2h ago"},
}

// UserName is shown in the footer.
const UserName = "Winnux User"

// ResultKind is what the desktop should do after the menu handled input.
type ResultKind int

const (
	ResultNone ResultKind = iota
	ResultOpen
	ResultQuit
	ResultDismissed
)

// Result is returned by Update and Click.
type Result struct {
	Kind ResultKind
	App  registry.AppKind
}

// Model is the start menu state.
type Model struct {
	reg      *registry.Registry
	open     bool
	search   textinput.Model
	selected int
}

// New creates a closed menu listing the apps in reg.
func New(reg *registry.Registry) *Model {
	ti := textinput.New()
	ti.Placeholder = "Search for apps, settings, and documents"
	ti.Prompt = config.Icon(config.IconSearch, config.IconSearchASCII) + " "
	ti.SetWidth(config.StartMenuWidth - 8)
	return &Model{reg: reg, search: ti}
}

// IsOpen reports whether the menu is shown.
func (m *Model) IsOpen() bool { return m.open }

// Toggle opens a closed menu with an empty search, or closes an open one.
func (m *Model) Toggle() tea.Cmd {
	if m.open {
		m.Dismiss()
		return nil
	}
	m.open = true
	m.selected = 0
	m.search.Reset()
	return m.search.Focus()
}

// Dismiss closes the menu.
func (m *Model) Dismiss() {
	m.open = false
	m.search.Blur()
}

// Query returns the current search text.
func (m *Model) Query() string { return m.search.Value() }

// SetQuery replaces the search text, as if typed.
func (m *Model) SetQuery(q string) {
	m.search.SetValue(q)
	m.clampSelection()
}

// Selected returns the index of the highlighted pinned entry.
func (m *Model) Selected() int { return m.selected }

// Filtered lists the apps whose name or kind contains the query, ignoring case.
func (m *Model) Filtered() []registry.AppDefinition {
	q := strings.ToLower(strings.TrimSpace(m.search.Value()))
	all := m.reg.All()
	if q == "" {
		return all
	}
	var out []registry.AppDefinition
	for _, def := range all {
		if strings.Contains(strings.ToLower(def.Name), q) || strings.Contains(string(def.Kind), q) {
			out = append(out, def)
		}
	}
	return out
}

// Update handles keyboard input while the menu is open.
func (m *Model) Update(msg tea.Msg) (Result, tea.Cmd) {
	if !m.open {
		return Result{}, nil
	}
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "esc":
			m.Dismiss()
			return Result{Kind: ResultDismissed}, nil
		case "up":
			if m.selected > 0 {
				m.selected--
			}
			return Result{}, nil
		case "down", "tab":
			if m.selected < len(m.Filtered())-1 {
				m.selected++
			}
			return Result{}, nil
		case "enter":
			return m.choose(m.selected), nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.clampSelection()
	return Result{}, cmd
}

// choose opens the i-th filtered app and closes the menu. It always opens a
// new window even if one of that kind already exists.
func (m *Model) choose(i int) Result {
	apps := m.Filtered()
	if i < 0 || i >= len(apps) {
		return Result{}
	}
	m.Dismiss()
	return Result{Kind: ResultOpen, App: apps[i].Kind}
}

func (m *Model) clampSelection() {
	n := len(m.Filtered())
	if m.selected >= n {
		m.selected = max(n-1, 0)
	}
}

// layout describes where things are inside the border, in rows from the top.
type layout struct {
	pinnedStart int
	pinnedCount int
	footerRow   int
	rows        int
}

func (m *Model) layout() layout {
	n := len(m.Filtered())
	shown := max(n, 1) // "No apps found" takes a row
	l := layout{pinnedStart: 3, pinnedCount: n}
	// search, blank, "Pinned", entries, blank, "Recommended", recents, blank, footer
	l.footerRow = 3 + shown + 1 + 1 + len(Recommended) + 1
	l.rows = l.footerRow + 1
	return l
}

// Rect is where the menu is drawn on a screen of the given size: anchored to
// the left edge, next to the taskbar.
func (m *Model) Rect(screenW, screenH int) desktop.Rect {
	h := min(m.layout().rows+2, config.StartMenuMaxHeight)
	w := min(config.StartMenuWidth, screenW)
	y := screenH - config.TaskbarHeight - h
	if config.TaskbarPosition == "top" {
		y = config.TaskbarHeight
	}
	return desktop.Rect{X: 0, Y: max(y, 0), Width: w, Height: h}
}

// Click handles a pointer-down at (x, y) while the menu is drawn at rect.
// Presses outside rect dismiss the menu.
func (m *Model) Click(x, y int, rect desktop.Rect) Result {
	if !m.open {
		return Result{}
	}
	if !rect.Contains(x, y) {
		m.Dismiss()
		return Result{Kind: ResultDismissed}
	}
	l := m.layout()
	row := y - rect.Y - 1
	switch {
	case row >= l.pinnedStart && row < l.pinnedStart+l.pinnedCount:
		return m.choose(row - l.pinnedStart)
	case row == l.footerRow && x >= rect.X+rect.Width-1-powerWidth()-1:
		m.Dismiss()
		return Result{Kind: ResultQuit}
	}
	return Result{}
}

func powerLabel() string {
	return config.Icon(config.IconPower, config.IconPowerASCII)
}

func powerWidth() int {
	return ansi.StringWidth(powerLabel()) + 2
}

// View renders the menu box.
func (m *Model) View() string {
	inner := config.StartMenuWidth - 2
	base := lipgloss.NewStyle().Background(theme.StartMenuBg()).Foreground(theme.StartMenuFg())
	dim := base.Foreground(theme.StartMenuDim())
	heading := base.Bold(true)

	row := func(style lipgloss.Style, s string) string {
		s = ansi.Truncate(s, inner, "…")
		return style.Render(s + strings.Repeat(" ", max(inner-ansi.StringWidth(s), 0)))
	}

	rows := []string{
		row(base, " "+m.search.View()),
		row(base, ""),
		row(heading, " Pinned"),
	}
	apps := m.Filtered()
	if len(apps) == 0 {
		rows = append(rows, row(dim, "   No apps found"))
	}
	for i, def := range apps {
		icon := def.IconASCII
		if !config.UseASCIIOnly && def.Icon != "" {
			icon = def.Icon
		}
		style := base
		marker := "  "
		if i == m.selected {
			style = base.Background(theme.StartMenuSelection()).Bold(true)
			marker = "> "
		}
		rows = append(rows, row(style, " "+marker+icon+" "+def.Name))
	}

	rows = append(rows, row(base, ""), row(heading, " Recommended"))
	file := config.Icon(config.IconFile, config.IconFileASCII)
	for _, r := range Recommended {
		left := "   " + file + " " + r.Name
		gap := max(inner-ansi.StringWidth(left)-ansi.StringWidth(r.When)-1, 1)
		rows = append(rows, row(base, left+strings.Repeat(" ", gap)+dim.Render(r.When)))
	}
	rows = append(rows, row(base, ""))

	user := " " + config.Icon(config.IconUser, config.IconUserASCII) + " " + UserName
	power := " " + powerLabel() + " "
	gap := max(inner-ansi.StringWidth(user)-ansi.StringWidth(power), 1)
	rows = append(rows, row(base, user+strings.Repeat(" ", gap)+power))

	border := config.GetBorderForStyle(config.BorderStyle)
	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(theme.BorderFocused()).
		BorderBackground(theme.StartMenuBg()).
		Render(strings.Join(rows, "\n"))
}
