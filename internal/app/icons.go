package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/winnux/internal/config"
	"github.com/Gaurav-Gosain/winnux/internal/desktop"
	"github.com/Gaurav-Gosain/winnux/internal/registry"
	"github.com/Gaurav-Gosain/winnux/internal/theme"
	"github.com/charmbracelet/x/ansi"
)

// IconRect is where desktop icon i is drawn, in desktop coordinates.
func IconRect(i int) desktop.Rect {
	return desktop.Rect{
		X:      2,
		Y:      1 + i*(config.DesktopIconHeight+1),
		Width:  config.DesktopIconWidth,
		Height: config.DesktopIconHeight,
	}
}

// IconAt returns the index of the desktop icon at (x, y).
func (d *Desktop) IconAt(x, y int) (int, bool) {
	for i := range d.reg.Desktop() {
		if IconRect(i).Contains(x, y) {
			return i, true
		}
	}
	return -1, false
}

// SelectedIcon returns the selected icon index, or -1.
func (d *Desktop) SelectedIcon() int { return d.selectedIcon }

// ClickIcon selects icon i. A second click on the same icon within the
// double-click window opens its app.
func (d *Desktop) ClickIcon(i int) tea.Cmd {
	icons := d.reg.Desktop()
	if i < 0 || i >= len(icons) {
		return nil
	}
	now := d.now()
	double := d.lastIconClick == i && now.Sub(d.lastIconTime) <= d.doubleClick
	d.selectedIcon = i

	if double {
		d.lastIconClick = -1
		d.lastIconTime = now
		_, cmd, _ := d.OpenApp(icons[i].Kind)
		return cmd
	}
	d.lastIconClick = i
	d.lastIconTime = now
	return nil
}

// ClearIconSelection deselects the desktop icons.
func (d *Desktop) ClearIconSelection() {
	d.selectedIcon = -1
	d.lastIconClick = -1
}

func (d *Desktop) renderIcon(i int, def registry.AppDefinition) string {
	style := lipgloss.NewStyle().
		Width(config.DesktopIconWidth).
		Align(lipgloss.Center).
		Foreground(theme.DesktopIconFg())
	if i == d.selectedIcon {
		style = style.Background(theme.DesktopIconSelected())
	}
	glyph := config.Icon(def.Icon, def.IconASCII)
	name := ansi.Truncate(def.Name, config.DesktopIconWidth, "…")
	rows := []string{glyph, name, ""}
	out := make([]string, len(rows))
	for j, r := range rows {
		out[j] = style.Render(r)
	}
	return strings.Join(out, "\n")
}
