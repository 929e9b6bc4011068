package window

// DragState is the state of the drag controller.
type DragState int

const (
	Idle DragState = iota
	Dragging
)

func (s DragState) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Drag tracks a title bar drag. The zero value is Idle.
type Drag struct {
	state    DragState
	windowID string
	offsetX  int
	offsetY  int
	originX  int
	originY  int
}

// Begin enters Dragging when the pointer went down on the title bar of a
// window that is not maximized, capturing the pointer offset from the
// window's top-left corner (wx, wy). It reports whether a drag started.
func (d *Drag) Begin(id string, region Region, maximized bool, px, py, wx, wy int) bool {
	if region != RegionTitleBar || maximized {
		return false
	}
	d.state = Dragging
	d.windowID = id
	d.offsetX = px - wx
	d.offsetY = py - wy
	d.originX, d.originY = wx, wy
	return true
}

// Motion returns the new top-left corner for the dragged window. The result
// is not clamped, so windows may leave the viewport.
func (d *Drag) Motion(px, py int) (id string, x, y int, ok bool) {
	if d.state != Dragging {
		return "", 0, 0, false
	}
	return d.windowID, px - d.offsetX, py - d.offsetY, true
}

// End finishes the gesture wherever the pointer was released.
func (d *Drag) End() {
	d.reset()
}

// Cancel abandons the gesture from any state.
func (d *Drag) Cancel() {
	d.reset()
}

// CancelFor cancels only if window id is the one being dragged.
func (d *Drag) CancelFor(id string) {
	if d.state == Dragging && d.windowID == id {
		d.reset()
	}
}

// Origin returns where the dragged window was when the drag began.
func (d *Drag) Origin() (x, y int) { return d.originX, d.originY }

// State returns the current state.
func (d *Drag) State() DragState { return d.state }

// Active reports whether a drag is in progress.
func (d *Drag) Active() bool { return d.state == Dragging }

// WindowID returns the dragged window, or "" when Idle.
func (d *Drag) WindowID() string { return d.windowID }

func (d *Drag) reset() {
	*d = Drag{}
}
