package apps

import (
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/winnux/internal/config"
	"github.com/Gaurav-Gosain/winnux/internal/registry"
	"github.com/Gaurav-Gosain/winnux/internal/theme"
)

// ThemeChangedMsg is emitted when the settings app switches themes.
type ThemeChangedMsg struct {
	Name string
}

// Settings shows the system information and lets the user cycle themes.
type Settings struct {
	id     string
	env    Env
	themes []string
}

// NewSettings creates the settings page.
func NewSettings(id string, env Env) *Settings {
	return &Settings{id: id, env: env.withDefaults()}
}

// Init implements registry.Content.
func (s *Settings) Init() tea.Cmd { return nil }

// Update implements registry.Content. Left and right step through the
// registered themes; the empty entry means the terminal's own colors.
func (s *Settings) Update(msg tea.Msg) (registry.Content, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	step := 0
	switch key.String() {
	case "left", "h":
		step = -1
	case "right", "l":
		step = 1
	default:
		return s, nil
	}

	if s.themes == nil {
		s.themes = append([]string{""}, theme.Available()...)
	}
	i := max(slices.Index(s.themes, theme.Name()), 0)
	i = (i + step + len(s.themes)) % len(s.themes)
	name := s.themes[i]
	if !theme.Set(name) {
		return s, nil
	}
	return s, func() tea.Msg { return ThemeChangedMsg{Name: name} }
}

// View implements registry.Content.
func (s *Settings) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	title := lipgloss.NewStyle().Bold(true).Render("Settings")
	label := lipgloss.NewStyle().Foreground(theme.StartMenuDim())

	themeName := theme.Name()
	if themeName == "" {
		themeName = "terminal default"
	}
	row := func(k, v string) string {
		return label.Render(fmt.Sprintf("%-12s", k)) + v
	}
	lines := []string{
		title,
		"",
		"Winnux Version " + Version,
		"",
		row("Theme", "< "+themeName+" >"),
		row("Borders", config.BorderStyle),
		row("Taskbar", config.TaskbarPosition),
		row("Assistant", s.env.Assistant.Name()),
		"",
		label.Render("←/→ change theme"),
	}
	return lipgloss.NewStyle().Padding(0, 2).Render(strings.Join(lines, "\n"))
}
