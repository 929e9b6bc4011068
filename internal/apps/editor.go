package apps

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/winnux/internal/registry"
)

// Editor is a placeholder window with no behaviour.
type Editor struct {
	id string
}

// NewEditor creates the placeholder.
func NewEditor(id string) *Editor { return &Editor{id: id} }

// Init implements registry.Content.
func (e *Editor) Init() tea.Cmd { return nil }

// Update implements registry.Content.
func (e *Editor) Update(tea.Msg) (registry.Content, tea.Cmd) { return e, nil }

// View implements registry.Content.
func (e *Editor) View(width, height int) string {
	return lipgloss.Place(max(width, 0), max(height, 0), lipgloss.Center, lipgloss.Center, "Placeholder for Editor")
}
