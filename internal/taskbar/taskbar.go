// Package taskbar derives the taskbar's app buttons from the window manager
// and decides what a click on one of them does.
package taskbar

import (
	"github.com/Gaurav-Gosain/winnux/internal/desktop"
	"github.com/Gaurav-Gosain/winnux/internal/registry"
)

// Item is one app button. There is one per registered app, not per window.
type Item struct {
	Kind    registry.AppKind
	Name    string
	Icon    string
	Running bool // at least one window of this kind exists, minimized or not
	Active  bool // the focused window is of this kind
}

// Items lists the buttons in registry order.
func Items(mgr *desktop.Manager) []Item {
	active, hasActive := mgr.ActiveWindow()
	defs := mgr.Registry().All()
	items := make([]Item, 0, len(defs))
	for _, def := range defs {
		items = append(items, Item{
			Kind:    def.Kind,
			Name:    def.Name,
			Icon:    def.Icon,
			Running: mgr.Running(def.Kind),
			Active:  hasActive && active.Kind == def.Kind,
		})
	}
	return items
}

// ActionKind is the outcome of a taskbar click.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionFocus
	ActionOpen
)

func (k ActionKind) String() string {
	switch k {
	case ActionFocus:
		return "focus"
	case ActionOpen:
		return "open"
	default:
		return "none"
	}
}

// Action is what the desktop should do in response to a click.
type Action struct {
	Kind     ActionKind
	WindowID string           // set for ActionFocus
	App      registry.AppKind // set for ActionOpen
}

// Click decides the response to a click on kind's button. The first visible
// window of that kind is the candidate: if it is already focused nothing
// happens, otherwise it is focused. With no visible window (none open, or
// all minimized) a new one is opened.
func Click(kind registry.AppKind, mgr *desktop.Manager) Action {
	win, ok := mgr.FindByKind(kind)
	switch {
	case ok && win.ID == mgr.Active():
		return Action{Kind: ActionNone}
	case ok:
		return Action{Kind: ActionFocus, WindowID: win.ID}
	default:
		return Action{Kind: ActionOpen, App: kind}
	}
}

// Apply performs a on mgr. It returns the window that was opened or focused.
func Apply(a Action, mgr *desktop.Manager) (desktop.Window, bool) {
	switch a.Kind {
	case ActionFocus:
		mgr.Focus(a.WindowID)
		return mgr.Get(a.WindowID)
	case ActionOpen:
		return mgr.Open(a.App)
	default:
		return desktop.Window{}, false
	}
}
