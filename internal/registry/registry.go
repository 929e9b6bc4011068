// Package registry holds the static catalog of applications the desktop can open.
package registry

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
)

// AppKind identifies a category of application content.
type AppKind string

// Known application kinds.
const (
	KindTerminal   AppKind = "terminal"
	KindExplorer   AppKind = "explorer"
	KindBrowser    AppKind = "browser"
	KindEditor     AppKind = "editor"
	KindSettings   AppKind = "settings"
	KindCalculator AppKind = "calculator" // known but never registered
)

// DesktopIconCount is how many registered apps get a desktop shortcut.
const DesktopIconCount = 3

var (
	// ErrDuplicateKind is returned when a kind is registered twice.
	ErrDuplicateKind = errors.New("app kind already registered")
	// ErrInvalidDefinition is returned for definitions missing required fields.
	ErrInvalidDefinition = errors.New("invalid app definition")
	// ErrUnknownKind is returned when a name does not resolve to a registered app.
	ErrUnknownKind = errors.New("unknown app kind")
)

// Content is the interior of a window. The desktop treats it as opaque:
// it forwards messages and asks for a rendering of a given size.
type Content interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Content, tea.Cmd)
	View(width, height int) string
}

// Factory builds the content for a newly opened window.
// It receives only the owning window's identifier.
type Factory func(windowID string) Content

// AppDefinition describes one registered application. Immutable once registered.
type AppDefinition struct {
	Kind          AppKind
	Name          string
	Icon          string
	IconASCII     string
	DefaultWidth  int
	DefaultHeight int
	Factory       Factory
}

// Registry maps app kinds to their definitions, preserving registration order.
type Registry struct {
	defs  map[AppKind]AppDefinition
	order []AppKind
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{defs: make(map[AppKind]AppDefinition)}
}

// Register adds a definition.
func (r *Registry) Register(def AppDefinition) error {
	if def.Kind == "" || def.Name == "" {
		return fmt.Errorf("%w: kind and name are required", ErrInvalidDefinition)
	}
	if def.DefaultWidth <= 0 || def.DefaultHeight <= 0 {
		return fmt.Errorf("%w: %s has non-positive default size", ErrInvalidDefinition, def.Kind)
	}
	if _, exists := r.defs[def.Kind]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateKind, def.Kind)
	}
	r.defs[def.Kind] = def
	r.order = append(r.order, def.Kind)
	return nil
}

// MustRegister is Register for static catalogs built at startup.
func (r *Registry) MustRegister(defs ...AppDefinition) *Registry {
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			panic(err)
		}
	}
	return r
}

// Lookup returns the definition for kind.
func (r *Registry) Lookup(kind AppKind) (AppDefinition, bool) {
	def, ok := r.defs[kind]
	return def, ok
}

// All returns every definition in registration order.
func (r *Registry) All() []AppDefinition {
	out := make([]AppDefinition, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.defs[k])
	}
	return out
}

// Desktop returns the definitions that get desktop icons.
func (r *Registry) Desktop() []AppDefinition {
	all := r.All()
	if len(all) > DesktopIconCount {
		all = all[:DesktopIconCount]
	}
	return all
}

// Len returns the number of registered apps.
func (r *Registry) Len() int {
	return len(r.order)
}

// ParseKind resolves s against registered kinds and display names, case-insensitively.
func (r *Registry) ParseKind(s string) (AppKind, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, k := range r.order {
		def := r.defs[k]
		if string(k) == needle || strings.ToLower(def.Name) == needle {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}
