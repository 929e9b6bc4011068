package app

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/winnux/internal/apps"
	"github.com/Gaurav-Gosain/winnux/internal/config"
	"github.com/Gaurav-Gosain/winnux/internal/desktop"
	"github.com/Gaurav-Gosain/winnux/internal/registry"
	"github.com/Gaurav-Gosain/winnux/internal/taskbar"
)

// OpenApp opens a new window of kind and creates its content. Every entry
// point (icons, start menu, taskbar, keys, scripts, MCP) goes through here.
// The returned command is the content's routed Init.
func (d *Desktop) OpenApp(kind registry.AppKind) (desktop.Window, tea.Cmd, bool) {
	def, ok := d.reg.Lookup(kind)
	if !ok {
		return desktop.Window{}, nil, false
	}
	w, ok := d.mgr.Open(kind)
	if !ok {
		return desktop.Window{}, nil, false
	}
	content := def.Factory(w.ID)
	d.contents[w.ID] = content
	d.LogInfo("opened %s (%s)", w.Title, shortID(w.ID))
	return w, apps.Route(w.ID, content.Init()), true
}

// CloseWindow closes id and discards its content. A drag on that window is
// cancelled.
func (d *Desktop) CloseWindow(id string) {
	w, ok := d.mgr.Get(id)
	if !ok {
		return
	}
	d.drag.CancelFor(id)
	d.mgr.Close(id)
	delete(d.contents, id)
	d.LogInfo("closed %s (%s)", w.Title, shortID(id))
}

// MinimizeWindow hides id.
func (d *Desktop) MinimizeWindow(id string) {
	d.drag.CancelFor(id)
	d.mgr.Minimize(id)
}

// ToggleMaximizeWindow maximizes or restores id.
func (d *Desktop) ToggleMaximizeWindow(id string) {
	d.drag.CancelFor(id)
	d.mgr.ToggleMaximize(id)
}

// FocusWindow activates id.
func (d *Desktop) FocusWindow(id string) {
	d.mgr.Focus(id)
}

// MoveWindow stores a new position for id.
func (d *Desktop) MoveWindow(id string, x, y int) {
	d.mgr.Move(id, x, y)
}

// MoveActiveBy nudges the active window. Maximized windows stay put.
func (d *Desktop) MoveActiveBy(dx, dy int) {
	w, ok := d.mgr.ActiveWindow()
	if !ok || w.Maximized {
		return
	}
	d.mgr.Move(w.ID, w.X+dx, w.Y+dy)
}

// TaskbarClick applies the taskbar policy for kind.
func (d *Desktop) TaskbarClick(kind registry.AppKind) tea.Cmd {
	action := taskbar.Click(kind, d.mgr)
	switch action.Kind {
	case taskbar.ActionFocus:
		d.FocusWindow(action.WindowID)
	case taskbar.ActionOpen:
		_, cmd, _ := d.OpenApp(action.App)
		return cmd
	}
	return nil
}

// ToggleStartMenu opens or closes the start menu.
func (d *Desktop) ToggleStartMenu() tea.Cmd {
	return d.menu.Toggle()
}

// SendToContent delivers msg to the content of window id. Messages for
// windows that no longer exist are dropped.
func (d *Desktop) SendToContent(id string, msg tea.Msg) tea.Cmd {
	c, ok := d.contents[id]
	if !ok {
		return nil
	}
	next, cmd := c.Update(msg)
	d.contents[id] = next
	return apps.Route(id, cmd)
}

// SendToActive delivers msg to the active window's content, if any.
func (d *Desktop) SendToActive(msg tea.Msg) tea.Cmd {
	id := d.mgr.Active()
	if id == "" {
		return nil
	}
	return d.SendToContent(id, msg)
}

// Viewport is the desktop area in canvas coordinates: the whole screen minus
// the taskbar rows. Maximized windows fill it.
func (d *Desktop) Viewport() desktop.Rect {
	return desktop.Rect{X: 0, Y: 0, Width: d.Width, Height: max(d.Height-config.TaskbarHeight, 0)}
}

// desktopTop is the screen row where the desktop area starts.
func (d *Desktop) desktopTop() int {
	if config.TaskbarPosition == "top" {
		return config.TaskbarHeight
	}
	return 0
}

// ToDesktop converts screen coordinates to desktop coordinates.
func (d *Desktop) ToDesktop(x, y int) (int, int) {
	return x, y - d.desktopTop()
}

// OnTaskbar reports whether screen row y belongs to the taskbar.
func (d *Desktop) OnTaskbar(y int) bool {
	if config.TaskbarPosition == "top" {
		return y < config.TaskbarHeight
	}
	return y >= d.Height-config.TaskbarHeight
}

// WindowAt returns the topmost visible window whose drawn rect contains the
// desktop point (x, y).
func (d *Desktop) WindowAt(x, y int) (desktop.Window, desktop.Rect, bool) {
	vis := d.mgr.Visible()
	vp := d.Viewport()
	for i := len(vis) - 1; i >= 0; i-- {
		r := d.drawRect(vis[i], vp)
		if r.Contains(x, y) {
			return vis[i], r, true
		}
	}
	return desktop.Window{}, desktop.Rect{}, false
}

// CancelDrag puts the dragged window back where the drag began.
func (d *Desktop) CancelDrag() {
	if !d.drag.Active() {
		return
	}
	x, y := d.drag.Origin()
	d.mgr.Move(d.drag.WindowID(), x, y)
	d.drag.Cancel()
}

// Resize updates the screen size. A drag in progress is cancelled.
func (d *Desktop) Resize(width, height int) {
	d.Width, d.Height = width, height
	d.drag.Cancel()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
