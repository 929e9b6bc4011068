// Package input implements Winnux input handling: keyboard shortcuts, key
// forwarding to the active window, and pointer routing for windows, icons,
// the taskbar and the start menu.
package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/winnux/internal/app"
	"github.com/Gaurav-Gosain/winnux/internal/config"
)

// globalActions keep working while the start menu is open.
var globalActions = map[string]bool{
	config.ActionToggleStartMenu: true,
	config.ActionToggleLogs:      true,
	config.ActionQuit:            true,
}

// HandleInput is the main input coordinator that routes messages to appropriate handlers
func HandleInput(msg tea.Msg, d *app.Desktop) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return HandleKeyPress(msg, d)
	case tea.MouseClickMsg:
		return handleMouseClick(msg, d)
	case tea.MouseMotionMsg:
		return handleMouseMotion(msg, d)
	case tea.MouseReleaseMsg:
		return handleMouseRelease(msg, d)
	case tea.MouseWheelMsg:
		return handleMouseWheel(msg, d)
	case tea.PasteMsg:
		if d.StartMenu().IsOpen() {
			_, cmd := d.StartMenu().Update(msg)
			return d, cmd
		}
		return d, d.SendToActive(msg)
	}

	// The start menu's search field is not a window, so its cursor messages
	// arrive unrouted.
	if d.StartMenu().IsOpen() {
		_, cmd := d.StartMenu().Update(msg)
		return d, cmd
	}
	return d, nil
}

// HandleKeyPress handles all keyboard input. The log viewer takes keys first,
// then the start menu (except global bindings), then keybindings; anything
// left goes to the active window.
func HandleKeyPress(msg tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	if d.ShowLogs {
		return handleLogViewerKey(msg, d)
	}
	if d.Drag().Active() && msg.String() == "esc" {
		d.CancelDrag()
		return d, nil
	}

	action, bound := d.Keybinds().Match(msg)

	if menu := d.StartMenu(); menu.IsOpen() {
		if bound && globalActions[action] {
			return d, ExecuteAction(action, d)
		}
		res, cmd := menu.Update(msg)
		return d, tea.Batch(cmd, applyMenuResult(res, d))
	}

	if bound {
		return d, ExecuteAction(action, d)
	}
	return d, d.SendToActive(msg)
}
