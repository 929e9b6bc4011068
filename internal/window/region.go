// Package window draws a window's chrome and turns pointer input on it into
// window manager requests.
package window

import (
	"github.com/Gaurav-Gosain/winnux/internal/config"
	"github.com/Gaurav-Gosain/winnux/internal/desktop"
)

// Region is the part of a window under a pointer.
type Region int

const (
	RegionNone Region = iota
	RegionBody
	RegionTitleBar
	RegionMinimize
	RegionMaximize
	RegionClose
)

func (r Region) String() string {
	switch r {
	case RegionBody:
		return "body"
	case RegionTitleBar:
		return "titlebar"
	case RegionMinimize:
		return "minimize"
	case RegionMaximize:
		return "maximize"
	case RegionClose:
		return "close"
	default:
		return "none"
	}
}

// IsControl reports whether r is one of the three title bar buttons.
func (r Region) IsControl() bool {
	return r == RegionMinimize || r == RegionMaximize || r == RegionClose
}

// buttonWidth is the cell width of one control label ("[x]" or " x ").
const buttonWidth = 3

// Clamp enforces the minimum drawable size on r.
func Clamp(r desktop.Rect) desktop.Rect {
	r.Width = max(r.Width, config.MinWindowWidth)
	r.Height = max(r.Height, config.MinWindowHeight)
	return r
}

// HitTest classifies the cell (x, y) against a window drawn at rect. The title
// bar is the top border row; controls sit at its right end, just inside the
// corner, and take precedence over the rest of the bar.
func HitTest(rect desktop.Rect, x, y int) Region {
	rect = Clamp(rect)
	if !rect.Contains(x, y) {
		return RegionNone
	}
	if y != rect.Y {
		return RegionBody
	}
	if config.HideWindowButtons {
		return RegionTitleBar
	}

	closeStart := rect.X + rect.Width - 1 - buttonWidth
	maxStart := closeStart - buttonWidth
	minStart := maxStart - buttonWidth
	switch {
	case x >= closeStart && x < closeStart+buttonWidth:
		return RegionClose
	case x >= maxStart && x < closeStart:
		return RegionMaximize
	case x >= minStart && x < maxStart:
		return RegionMinimize
	default:
		return RegionTitleBar
	}
}

// ContentRect is the area inside the border available to app content.
func ContentRect(rect desktop.Rect) desktop.Rect {
	rect = Clamp(rect)
	return desktop.Rect{
		X:      rect.X + 1,
		Y:      rect.Y + 1,
		Width:  max(rect.Width-2, 0),
		Height: max(rect.Height-2, 0),
	}
}
