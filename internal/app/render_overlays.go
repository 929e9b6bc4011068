package app

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/winnux/internal/config"
	"github.com/Gaurav-Gosain/winnux/internal/desktop"
	"github.com/Gaurav-Gosain/winnux/internal/theme"
	"github.com/charmbracelet/x/ansi"
)

func (d *Desktop) renderOverlays(vp desktop.Rect) []*lipgloss.Layer {
	var layers []*lipgloss.Layer

	if d.menu.IsOpen() {
		r := d.menu.Rect(d.Width, d.Height)
		_, y := d.ToDesktop(r.X, r.Y)
		layers = append(layers, lipgloss.NewLayer(d.menu.View()).
			X(r.X).Y(y).Z(config.ZIndexStartMenu).ID("startmenu"))
	}

	if d.ShowLogs {
		layers = append(layers, lipgloss.NewLayer(d.renderLogViewer(vp)).
			X(0).Y(0).Z(config.ZIndexLogs).ID("logs"))
	}

	d.CleanupNotifications()
	if len(d.Notifications) > 0 {
		layers = append(layers, d.renderNotifications(vp)...)
	}
	return layers
}

func (d *Desktop) renderLogViewer(vp desktop.Rect) string {
	title := lipgloss.NewStyle().
		Foreground(theme.LogViewerTitle()).
		Bold(true).
		Render("System Logs")

	perPage := d.logsPerPage()
	maxScroll := d.maxLogScroll()
	d.LogScrollOffset = max(0, min(d.LogScrollOffset, maxScroll))

	lines := []string{title, ""}
	start := d.LogScrollOffset
	shown := 0
	msgWidth := config.LogViewerWidth - 6 - len("15:04:05 [ERROR] ")
	for i := start; i < len(d.LogMessages) && shown < perPage; i++ {
		msg := d.LogMessages[i]
		levelColor := theme.LogViewerInfo()
		switch msg.Level {
		case "ERROR":
			levelColor = theme.LogViewerError()
		case "WARN":
			levelColor = theme.LogViewerWarn()
		case "DEBUG":
			levelColor = theme.LogViewerDebug()
		}
		level := lipgloss.NewStyle().Foreground(levelColor).Render(fmt.Sprintf("[%s]", msg.Level))
		lines = append(lines, fmt.Sprintf("%s %s %s",
			msg.Time.Format("15:04:05"), level, ansi.Truncate(msg.Message, msgWidth, "…")))
		shown++
	}

	hint := lipgloss.NewStyle().Foreground(theme.LogViewerDebug())
	if maxScroll > 0 {
		lines = append(lines, "", hint.Render(fmt.Sprintf("Showing %d-%d of %d logs (↑/↓ to scroll)",
			start+1, start+shown, len(d.LogMessages))))
	}
	lines = append(lines, "", hint.Render("Press 'q'/'esc' to exit, j/k or ↑/↓ to scroll"))

	box := lipgloss.NewStyle().
		Border(config.GetBorderForStyle(config.BorderStyle)).
		BorderForeground(theme.LogViewerTitle()).
		Padding(1, 2).
		Width(min(config.LogViewerWidth, vp.Width)).
		Background(theme.LogViewerBg()).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(vp.Width, vp.Height, lipgloss.Center, lipgloss.Center, box)
}

func (d *Desktop) renderNotifications(vp desktop.Rect) []*lipgloss.Layer {
	var layers []*lipgloss.Layer
	notifs := d.Notifications
	if len(notifs) > config.MaxVisibleNotifications {
		notifs = notifs[len(notifs)-config.MaxVisibleNotifications:]
	}

	y := 1
	for i, n := range notifs {
		bg, icon := theme.NotificationInfo(), config.NotificationIconInfo
		switch n.Type {
		case "error":
			bg, icon = theme.NotificationError(), config.NotificationIconError
		case "warning":
			bg, icon = theme.NotificationWarning(), config.NotificationIconWarning
		case "success":
			bg, icon = theme.NotificationSuccess(), config.NotificationIconSuccess
		}
		text := ansi.Truncate(icon+" "+n.Message, max(vp.Width/2, 10), "…")
		box := lipgloss.NewStyle().
			Background(bg).
			Foreground(theme.NotificationFg()).
			Padding(0, 1).
			Render(text)

		x := max(vp.Width-lipgloss.Width(box)-2, 0)
		layers = append(layers, lipgloss.NewLayer(box).
			X(x).Y(y).Z(config.ZIndexNotifications+i).ID("notification:"+n.ID))
		y += lipgloss.Height(box) + 1
	}
	return layers
}
