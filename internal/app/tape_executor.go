package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/winnux/internal/config"
	"github.com/Gaurav-Gosain/winnux/internal/desktop"
)

// The following methods implement the tape.Executor interface. Commands
// produced along the way are queued and returned by the next Update.

// resolve finds the window a script refers to; "" means the active window.
func (d *Desktop) resolve(ref string) (desktop.Window, error) {
	if ref == "" {
		w, ok := d.mgr.ActiveWindow()
		if !ok {
			return desktop.Window{}, fmt.Errorf("%w: no active window", desktop.ErrWindowNotFound)
		}
		return w, nil
	}
	return d.mgr.Resolve(ref)
}

func (d *Desktop) queue(cmd tea.Cmd) {
	if cmd != nil {
		d.pending = append(d.pending, cmd)
	}
}

// OpenAppByName opens an app by kind or display name.
func (d *Desktop) OpenAppByName(name string) error {
	kind, err := d.reg.ParseKind(name)
	if err != nil {
		return err
	}
	_, cmd, _ := d.OpenApp(kind)
	d.queue(cmd)
	return nil
}

// CloseWindowRef closes the referenced window.
func (d *Desktop) CloseWindowRef(ref string) error {
	w, err := d.resolve(ref)
	if err != nil {
		return err
	}
	d.CloseWindow(w.ID)
	return nil
}

// MinimizeWindowRef minimizes the referenced window.
func (d *Desktop) MinimizeWindowRef(ref string) error {
	w, err := d.resolve(ref)
	if err != nil {
		return err
	}
	d.MinimizeWindow(w.ID)
	return nil
}

// ToggleMaximizeRef maximizes or restores the referenced window.
func (d *Desktop) ToggleMaximizeRef(ref string) error {
	w, err := d.resolve(ref)
	if err != nil {
		return err
	}
	d.ToggleMaximizeWindow(w.ID)
	return nil
}

// FocusWindowRef focuses the referenced window.
func (d *Desktop) FocusWindowRef(ref string) error {
	w, err := d.resolve(ref)
	if err != nil {
		return err
	}
	d.FocusWindow(w.ID)
	return nil
}

// MoveWindowRef moves the referenced window.
func (d *Desktop) MoveWindowRef(ref string, x, y int) error {
	w, err := d.resolve(ref)
	if err != nil {
		return err
	}
	d.MoveWindow(w.ID, x, y)
	return nil
}

// ToggleStartMenuCmd toggles the start menu.
func (d *Desktop) ToggleStartMenuCmd() error {
	d.queue(d.ToggleStartMenu())
	return nil
}

// TypeText sends text to the active window one key at a time.
func (d *Desktop) TypeText(text string) error {
	if d.mgr.Active() == "" {
		return fmt.Errorf("%w: no active window to type into", desktop.ErrWindowNotFound)
	}
	for _, r := range text {
		d.queue(d.SendToActive(tea.KeyPressMsg{Code: r, Text: string(r)}))
	}
	return nil
}

// PressEnter sends enter to the active window.
func (d *Desktop) PressEnter() error {
	if d.mgr.Active() == "" {
		return fmt.Errorf("%w: no active window", desktop.ErrWindowNotFound)
	}
	d.queue(d.SendToActive(tea.KeyPressMsg{Code: tea.KeyEnter}))
	return nil
}

// NotifyCmd shows a notification.
func (d *Desktop) NotifyCmd(message string) error {
	d.ShowNotification(message, "info", config.NotificationDuration)
	return nil
}
