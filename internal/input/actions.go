package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/winnux/internal/app"
	"github.com/Gaurav-Gosain/winnux/internal/config"
)

// ActionHandler is a function that handles a specific action
type ActionHandler func(d *app.Desktop) tea.Cmd

// ActionDispatcher maps action names to handler functions
type ActionDispatcher struct {
	handlers map[string]ActionHandler
}

// NewActionDispatcher creates a new action dispatcher with all handlers registered
func NewActionDispatcher() *ActionDispatcher {
	d := &ActionDispatcher{
		handlers: make(map[string]ActionHandler),
	}
	d.registerHandlers()
	return d
}

func (d *ActionDispatcher) registerHandlers() {
	d.Register(config.ActionToggleStartMenu, handleToggleStartMenu)

	// Window management actions
	d.Register(config.ActionCloseWindow, handleCloseWindow)
	d.Register(config.ActionMinimizeWindow, handleMinimizeWindow)
	d.Register(config.ActionToggleMaximize, handleToggleMaximize)
	d.Register(config.ActionCycleWindows, handleCycleWindows)

	d.Register(config.ActionMoveLeft, makeMoveHandler(-1, 0))
	d.Register(config.ActionMoveRight, makeMoveHandler(1, 0))
	d.Register(config.ActionMoveUp, makeMoveHandler(0, -1))
	d.Register(config.ActionMoveDown, makeMoveHandler(0, 1))

	// System actions
	d.Register(config.ActionToggleLogs, handleToggleLogs)
	d.Register(config.ActionQuit, handleQuit)
}

// Register adds an action handler
func (d *ActionDispatcher) Register(action string, handler ActionHandler) {
	d.handlers[action] = handler
}

// Dispatch executes the handler for a given action
func (d *ActionDispatcher) Dispatch(action string, desk *app.Desktop) tea.Cmd {
	if handler, ok := d.handlers[action]; ok {
		return handler(desk)
	}
	return nil
}

// HasAction checks if an action is registered
func (d *ActionDispatcher) HasAction(action string) bool {
	_, ok := d.handlers[action]
	return ok
}

var globalDispatcher = NewActionDispatcher()

// GetDispatcher returns the global action dispatcher
func GetDispatcher() *ActionDispatcher {
	return globalDispatcher
}

// ExecuteAction runs action against d with the global dispatcher.
func ExecuteAction(action string, d *app.Desktop) tea.Cmd {
	return globalDispatcher.Dispatch(action, d)
}

func handleToggleStartMenu(d *app.Desktop) tea.Cmd {
	return d.ToggleStartMenu()
}

func handleCloseWindow(d *app.Desktop) tea.Cmd {
	if id := d.Manager().Active(); id != "" {
		d.CloseWindow(id)
	}
	return nil
}

func handleMinimizeWindow(d *app.Desktop) tea.Cmd {
	if id := d.Manager().Active(); id != "" {
		d.MinimizeWindow(id)
	}
	return nil
}

func handleToggleMaximize(d *app.Desktop) tea.Cmd {
	if id := d.Manager().Active(); id != "" {
		d.ToggleMaximizeWindow(id)
	}
	return nil
}

func handleCycleWindows(d *app.Desktop) tea.Cmd {
	d.Manager().CycleFocus()
	return nil
}

func makeMoveHandler(dx, dy int) ActionHandler {
	return func(d *app.Desktop) tea.Cmd {
		d.MoveActiveBy(dx, dy)
		return nil
	}
}

func handleToggleLogs(d *app.Desktop) tea.Cmd {
	wasShowing := d.ShowLogs
	if !wasShowing {
		d.LogInfo("Log viewer opened")
	}
	d.ToggleLogs()
	return nil
}

// handleQuit stops the program. The caller releases the desktop once the
// program has returned.
func handleQuit(d *app.Desktop) tea.Cmd {
	d.LogInfo("Shutting down")
	return tea.Quit
}
