package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/winnux/internal/app"
	"github.com/Gaurav-Gosain/winnux/internal/config"
	"github.com/Gaurav-Gosain/winnux/internal/startmenu"
)

// handleLogViewerKey scrolls or closes the log viewer. The log and quit
// bindings still apply.
func handleLogViewerKey(msg tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		d.ShowLogs = false
		d.LogScrollOffset = 0
		return d, nil
	case "up", "k":
		d.ScrollLogs(-1)
		return d, nil
	case "down", "j":
		d.ScrollLogs(1)
		return d, nil
	case "pgup":
		d.ScrollLogs(-10)
		return d, nil
	case "pgdown":
		d.ScrollLogs(10)
		return d, nil
	}

	if action, ok := d.Keybinds().Match(msg); ok {
		switch action {
		case config.ActionToggleLogs, config.ActionQuit:
			return d, ExecuteAction(action, d)
		}
	}
	return d, nil
}

// applyMenuResult carries out what the start menu asked for.
func applyMenuResult(res startmenu.Result, d *app.Desktop) tea.Cmd {
	switch res.Kind {
	case startmenu.ResultOpen:
		_, cmd, ok := d.OpenApp(res.App)
		if !ok {
			d.LogWarn("cannot open unknown app %q", res.App)
		}
		return cmd
	case startmenu.ResultQuit:
		return ExecuteAction(config.ActionQuit, d)
	}
	return nil
}
