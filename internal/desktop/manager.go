package desktop

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Gaurav-Gosain/winnux/internal/registry"
	"github.com/google/uuid"
)

// Layout controls where new windows appear and where stacking starts.
type Layout struct {
	OriginX int
	OriginY int
	StepX   int
	StepY   int
	FirstZ  int
}

// DefaultLayout cascades windows diagonally from (4,2), one step per open window.
func DefaultLayout() Layout {
	return Layout{OriginX: 4, OriginY: 2, StepX: 2, StepY: 1, FirstZ: 10}
}

// Option configures a Manager.
type Option func(*Manager)

// WithLayout overrides the cascade layout.
func WithLayout(l Layout) Option {
	return func(m *Manager) {
		m.layout = l
	}
}

// WithIDGenerator replaces the uuid generator, mostly for tests.
func WithIDGenerator(gen func() string) Option {
	return func(m *Manager) {
		m.newID = gen
	}
}

// Manager owns the collection of open windows. It is not safe for concurrent
// use; callers serialize access the same way the event loop does.
type Manager struct {
	reg     *registry.Registry
	layout  Layout
	windows []*Window
	nextZ   int
	active  string
	newID   func() string
}

// NewManager creates an empty manager that resolves app kinds through reg.
func NewManager(reg *registry.Registry, opts ...Option) *Manager {
	m := &Manager{
		reg:    reg,
		layout: DefaultLayout(),
		newID:  func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(m)
	}
	m.nextZ = m.layout.FirstZ
	return m
}

// Registry returns the app registry the manager opens windows from.
func (m *Manager) Registry() *registry.Registry {
	return m.reg
}

// Open creates a window for kind and makes it active. Unknown kinds are ignored.
func (m *Manager) Open(kind registry.AppKind) (Window, bool) {
	def, ok := m.reg.Lookup(kind)
	if !ok {
		return Window{}, false
	}

	n := len(m.windows)
	w := &Window{
		ID:     m.newID(),
		Kind:   def.Kind,
		Title:  def.Name,
		Z:      m.nextZ,
		X:      m.layout.OriginX + n*m.layout.StepX,
		Y:      m.layout.OriginY + n*m.layout.StepY,
		Width:  def.DefaultWidth,
		Height: def.DefaultHeight,
	}
	m.windows = append(m.windows, w)
	m.active = w.ID
	m.nextZ++
	return *w, true
}

// Close removes the window. Focus is cleared if it was active.
func (m *Manager) Close(id string) {
	i := m.index(id)
	if i < 0 {
		return
	}
	m.windows = slices.Delete(m.windows, i, i+1)
	if m.active == id {
		m.active = ""
	}
}

// Minimize hides the window and always clears focus, whichever window had it
// and even when id matches no window.
func (m *Manager) Minimize(id string) {
	m.active = ""
	if w := m.find(id); w != nil {
		w.Minimized = true
	}
}

// ToggleMaximize flips the maximized flag and focuses the window.
func (m *Manager) ToggleMaximize(id string) {
	w := m.find(id)
	if w == nil {
		return
	}
	w.Maximized = !w.Maximized
	m.Focus(id)
}

// Focus activates the window, raises it to the top and restores it if minimized.
func (m *Manager) Focus(id string) {
	w := m.find(id)
	if w == nil {
		return
	}
	m.active = id
	w.Z = m.nextZ
	m.nextZ++
	w.Minimized = false
}

// Move stores a new position. Maximized windows are not exempt; the view
// decides whether moving makes sense.
func (m *Manager) Move(id string, x, y int) {
	w := m.find(id)
	if w == nil {
		return
	}
	w.X = x
	w.Y = y
}

// CycleFocus focuses the visible window lowest in the stack, rotating through
// every visible window on repeated calls.
func (m *Manager) CycleFocus() {
	vis := m.Visible()
	if len(vis) == 0 {
		return
	}
	if len(vis) == 1 && vis[0].ID == m.active {
		return
	}
	m.Focus(vis[0].ID)
}

// Windows returns a copy of every open window in open order.
func (m *Manager) Windows() []Window {
	out := make([]Window, len(m.windows))
	for i, w := range m.windows {
		out[i] = *w
	}
	return out
}

// Visible returns the non-minimized windows ordered bottom to top.
func (m *Manager) Visible() []Window {
	var out []Window
	for _, w := range m.windows {
		if w.Visible() {
			out = append(out, *w)
		}
	}
	slices.SortStableFunc(out, func(a, b Window) int { return a.Z - b.Z })
	return out
}

// Topmost returns the visible window with the highest stacking order.
func (m *Manager) Topmost() (Window, bool) {
	vis := m.Visible()
	if len(vis) == 0 {
		return Window{}, false
	}
	return vis[len(vis)-1], true
}

// Get returns the window with id.
func (m *Manager) Get(id string) (Window, bool) {
	if w := m.find(id); w != nil {
		return *w, true
	}
	return Window{}, false
}

// Active returns the active window id, or "" when nothing is focused.
func (m *Manager) Active() string {
	return m.active
}

// ActiveWindow returns the focused window.
func (m *Manager) ActiveWindow() (Window, bool) {
	if m.active == "" {
		return Window{}, false
	}
	return m.Get(m.active)
}

// FindByKind returns the first non-minimized window of kind in open order.
func (m *Manager) FindByKind(kind registry.AppKind) (Window, bool) {
	for _, w := range m.windows {
		if w.Kind == kind && !w.Minimized {
			return *w, true
		}
	}
	return Window{}, false
}

// Running reports whether any window of kind is open, minimized or not.
func (m *Manager) Running(kind registry.AppKind) bool {
	for _, w := range m.windows {
		if w.Kind == kind {
			return true
		}
	}
	return false
}

// Len returns the number of open windows.
func (m *Manager) Len() int {
	return len(m.windows)
}

// NextZ returns the stacking value the next focus or open will use.
func (m *Manager) NextZ() int {
	return m.nextZ
}

// Resolve finds a window by exact id, unique id prefix or unique title.
func (m *Manager) Resolve(ref string) (Window, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Window{}, ErrWindowNotFound
	}
	if w := m.find(ref); w != nil {
		return *w, nil
	}

	var matches []*Window
	for _, w := range m.windows {
		if strings.HasPrefix(w.ID, ref) || strings.EqualFold(w.Title, ref) {
			matches = append(matches, w)
		}
	}
	switch len(matches) {
	case 0:
		return Window{}, fmt.Errorf("%w: %q", ErrWindowNotFound, ref)
	case 1:
		return *matches[0], nil
	default:
		return Window{}, fmt.Errorf("%w: %q matches %d windows", ErrAmbiguousWindow, ref, len(matches))
	}
}

// Snapshot is a serializable view of the manager state.
type Snapshot struct {
	Active  string   `yaml:"active" json:"active"`
	NextZ   int      `yaml:"next_z" json:"next_z"`
	Windows []Window `yaml:"windows" json:"windows"`
}

// Snapshot captures the current state.
func (m *Manager) Snapshot() Snapshot {
	return Snapshot{Active: m.active, NextZ: m.nextZ, Windows: m.Windows()}
}

func (m *Manager) index(id string) int {
	return slices.IndexFunc(m.windows, func(w *Window) bool { return w.ID == id })
}

func (m *Manager) find(id string) *Window {
	if i := m.index(id); i >= 0 {
		return m.windows[i]
	}
	return nil
}
