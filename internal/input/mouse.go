package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/winnux/internal/app"
	"github.com/Gaurav-Gosain/winnux/internal/desktop"
	"github.com/Gaurav-Gosain/winnux/internal/startmenu"
	"github.com/Gaurav-Gosain/winnux/internal/window"
)

// handleMouseClick routes a pointer-down. The start menu sees it first; a
// click outside the menu dismisses it and is then handled normally.
func handleMouseClick(msg tea.MouseClickMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	mouse := msg.Mouse()
	if mouse.Button != tea.MouseLeft {
		return d, nil
	}

	if menu := d.StartMenu(); menu.IsOpen() {
		// the start button toggles rather than dismissing and reopening
		if target, ok := d.Taskbar().Target(msg); ok && target.Start {
			return d, d.ToggleStartMenu()
		}
		res := menu.Click(mouse.X, mouse.Y, menu.Rect(d.Width, d.Height))
		if res.Kind != startmenu.ResultDismissed {
			return d, applyMenuResult(res, d)
		}
	}

	if d.OnTaskbar(mouse.Y) {
		return d, clickTaskbar(msg, d)
	}

	x, y := d.ToDesktop(mouse.X, mouse.Y)
	if w, rect, ok := d.WindowAt(x, y); ok {
		return d, clickWindow(d, w, rect, x, y)
	}
	if i, ok := d.IconAt(x, y); ok {
		return d, d.ClickIcon(i)
	}
	d.ClearIconSelection()
	return d, nil
}

func clickTaskbar(msg tea.MouseClickMsg, d *app.Desktop) tea.Cmd {
	target, ok := d.Taskbar().Target(msg)
	switch {
	case !ok:
		return nil
	case target.Start:
		return d.ToggleStartMenu()
	default:
		return d.TaskbarClick(target.App)
	}
}

// clickWindow handles a pointer-down at desktop point (x, y) inside w, drawn
// at rect. Every press focuses the window first. A control then issues its
// own request once; anything else may start a drag.
func clickWindow(d *app.Desktop, w desktop.Window, rect desktop.Rect, x, y int) tea.Cmd {
	d.FocusWindow(w.ID)

	switch region := window.HitTest(rect, x, y); region {
	case window.RegionClose:
		d.CloseWindow(w.ID)
	case window.RegionMinimize:
		d.MinimizeWindow(w.ID)
	case window.RegionMaximize:
		d.ToggleMaximizeWindow(w.ID)
	default:
		d.Drag().Begin(w.ID, region, w.Maximized, x, y, w.X, w.Y)
	}
	return nil
}

// handleMouseMotion moves the dragged window. Motion outside a drag is
// ignored.
func handleMouseMotion(msg tea.MouseMotionMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	drag := d.Drag()
	if !drag.Active() {
		return d, nil
	}
	mouse := msg.Mouse()
	x, y := d.ToDesktop(mouse.X, mouse.Y)
	if id, nx, ny, ok := drag.Motion(x, y); ok {
		d.MoveWindow(id, nx, ny)
	}
	return d, nil
}

// handleMouseRelease always ends the drag.
func handleMouseRelease(_ tea.MouseReleaseMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	d.Drag().End()
	return d, nil
}

// handleMouseWheel scrolls the log viewer.
func handleMouseWheel(msg tea.MouseWheelMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	if !d.ShowLogs {
		return d, nil
	}
	switch msg.Mouse().Button {
	case tea.MouseWheelUp:
		d.ScrollLogs(-1)
	case tea.MouseWheelDown:
		d.ScrollLogs(1)
	}
	return d, nil
}
