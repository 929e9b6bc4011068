package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/winnux/internal/config"
	"github.com/Gaurav-Gosain/winnux/internal/desktop"
	"github.com/Gaurav-Gosain/winnux/internal/taskbar"
	"github.com/Gaurav-Gosain/winnux/internal/theme"
	"github.com/Gaurav-Gosain/winnux/internal/window"
	"github.com/charmbracelet/x/ansi"
)

// drawRect is where w is drawn: the viewport when maximized, its stored
// geometry otherwise, never below the minimum size.
func (d *Desktop) drawRect(w desktop.Window, viewport desktop.Rect) desktop.Rect {
	return window.Clamp(desktop.RenderRect(w, viewport))
}

// GetCanvas composes the desktop area: wallpaper, icons, windows and the
// overlays, each on its own layer.
func (d *Desktop) GetCanvas() *lipgloss.Canvas {
	vp := d.Viewport()
	canvas := lipgloss.NewCanvas(vp.Width, vp.Height)

	layers := []*lipgloss.Layer{
		lipgloss.NewLayer(d.renderWallpaper(vp.Width, vp.Height)).Z(config.ZIndexWallpaper).ID("wallpaper"),
	}

	for i, def := range d.reg.Desktop() {
		r := IconRect(i)
		if r.Y+r.Height > vp.Height {
			break
		}
		layers = append(layers, lipgloss.NewLayer(d.renderIcon(i, def)).
			X(r.X).Y(r.Y).Z(config.ZIndexIcons).ID("icon:"+string(def.Kind)))
	}

	active := d.mgr.Active()
	for _, w := range d.mgr.Visible() {
		rect := d.drawRect(w, vp)
		inner := window.ContentRect(rect)

		var body string
		if c, ok := d.contents[w.ID]; ok {
			body = c.View(inner.Width, inner.Height)
		}
		icon := ""
		if def, ok := d.reg.Lookup(w.Kind); ok {
			icon = config.Icon(def.Icon, def.IconASCII)
		}
		frame := window.Chrome{
			Title:     w.Title,
			Icon:      icon,
			Focused:   w.ID == active,
			Maximized: w.Maximized,
			Width:     rect.Width,
			Height:    rect.Height,
		}.Render(body)

		clipped, x, y := clipWindowContent(frame, rect.X, rect.Y, vp.Width, vp.Height)
		if clipped == "" {
			continue
		}
		layers = append(layers, lipgloss.NewLayer(clipped).X(x).Y(y).Z(w.Z).ID(w.ID))
	}

	layers = append(layers, d.renderOverlays(vp)...)

	canvas.Compose(lipgloss.NewCompositor(layers...))
	return canvas
}

// Render returns the full screen: the desktop canvas joined with the
// taskbar, with zone markers resolved.
func (d *Desktop) Render() string {
	if d.Width <= 0 || d.Height <= config.TaskbarHeight {
		return ""
	}
	desk := lipgloss.Sprint(d.GetCanvas().Render())
	bar := d.bar.View(d.Width, taskbar.Items(d.mgr), d.menu.IsOpen())

	var screen string
	if config.TaskbarPosition == "top" {
		screen = lipgloss.JoinVertical(lipgloss.Left, bar, desk)
	} else {
		screen = lipgloss.JoinVertical(lipgloss.Left, desk, bar)
	}
	return d.zones.Scan(screen)
}

// View implements tea.Model.
func (d *Desktop) View() tea.View {
	view := tea.NewView(d.Render())
	view.AltScreen = true
	// Cell motion reports motion only while a button is held, which is all
	// dragging needs.
	view.MouseMode = tea.MouseModeCellMotion
	view.ReportFocus = true
	return view
}

// renderWallpaper tiles the wallpaper character over the background.
func (d *Desktop) renderWallpaper(width, height int) string {
	bg := lipgloss.NewStyle().Background(theme.DesktopBg())
	if config.Wallpaper == "" || width <= 0 {
		return bg.Render(strings.TrimSuffix(strings.Repeat(strings.Repeat(" ", width)+"\n", height), "\n"))
	}
	pattern := bg.Foreground(theme.DesktopPattern())

	const stepX, stepY = 6, 3
	rows := make([]string, height)
	for y := range height {
		if y%stepY != 1 {
			rows[y] = bg.Render(strings.Repeat(" ", width))
			continue
		}
		offset := 2
		if (y/stepY)%2 == 1 {
			offset = 5
		}
		var sb strings.Builder
		for x := 0; x < width; x++ {
			if x%stepX == offset%stepX {
				sb.WriteString(config.Wallpaper)
			} else {
				sb.WriteByte(' ')
			}
		}
		rows[y] = pattern.Render(sb.String())
	}
	return strings.Join(rows, "\n")
}

// clipWindowContent cuts the parts of a window that fall outside the
// viewport and returns the visible part with its new origin.
func clipWindowContent(content string, x, y, viewportWidth, viewportHeight int) (string, int, int) {
	lines := strings.Split(content, "\n")
	windowHeight := len(lines)
	windowWidth := 0
	if len(lines) > 0 {
		windowWidth = ansi.StringWidth(lines[0])
	}

	if x+windowWidth <= 0 || x >= viewportWidth || y+windowHeight <= 0 || y >= viewportHeight {
		return "", max(x, 0), max(y, 0)
	}

	clipTop, clipLeft := max(-y, 0), max(-x, 0)
	finalX, finalY := max(x, 0), max(y, 0)

	visible := lines[clipTop:]
	if maxLines := viewportHeight - finalY; maxLines < len(visible) {
		visible = visible[:maxLines]
	}

	right := min(windowWidth, viewportWidth-x)
	if clipLeft == 0 && right == windowWidth {
		return strings.Join(visible, "\n"), finalX, finalY
	}
	out := make([]string, len(visible))
	for i, line := range visible {
		out[i] = ansi.Cut(line, clipLeft, right)
	}
	return strings.Join(out, "\n"), finalX, finalY
}
