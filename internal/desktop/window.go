// Package desktop implements the window manager core: the collection of open
// windows, their lifecycle transitions, stacking order and position.
package desktop

import (
	"errors"

	"github.com/Gaurav-Gosain/winnux/internal/registry"
)

// ErrWindowNotFound is returned when a window reference resolves to nothing.
var ErrWindowNotFound = errors.New("window not found")

// ErrAmbiguousWindow is returned when a title matches more than one window.
var ErrAmbiguousWindow = errors.New("window reference is ambiguous")

// Window is the state of one open window.
type Window struct {
	ID        string           `yaml:"id" json:"id"`
	Kind      registry.AppKind `yaml:"kind" json:"kind"`
	Title     string           `yaml:"title" json:"title"`
	Minimized bool             `yaml:"minimized" json:"minimized"`
	Maximized bool             `yaml:"maximized" json:"maximized"`
	Z         int              `yaml:"z" json:"z"`
	X         int              `yaml:"x" json:"x"`
	Y         int              `yaml:"y" json:"y"`
	Width     int              `yaml:"width" json:"width"`
	Height    int              `yaml:"height" json:"height"`
}

// Rect returns the stored geometry. It ignores the maximized flag.
func (w Window) Rect() Rect {
	return Rect{X: w.X, Y: w.Y, Width: w.Width, Height: w.Height}
}

// Visible reports whether the window takes part in rendering.
func (w Window) Visible() bool {
	return !w.Minimized
}

// Rect is an axis-aligned rectangle in terminal cells.
type Rect struct {
	X, Y, Width, Height int
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// RenderRect is where w is drawn inside viewport. Maximized windows fill the
// viewport regardless of their stored geometry.
func RenderRect(w Window, viewport Rect) Rect {
	if w.Maximized {
		return viewport
	}
	return w.Rect()
}
