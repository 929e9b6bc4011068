package config

import (
	"fmt"
	"slices"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
)

// Action names accepted in the [keybindings] table.
const (
	ActionToggleStartMenu = "toggle_start_menu"
	ActionCloseWindow     = "close_window"
	ActionMinimizeWindow  = "minimize_window"
	ActionToggleMaximize  = "toggle_maximize"
	ActionCycleWindows    = "cycle_windows"
	ActionMoveLeft        = "move_left"
	ActionMoveRight       = "move_right"
	ActionMoveUp          = "move_up"
	ActionMoveDown        = "move_down"
	ActionToggleLogs      = "toggle_logs"
	ActionQuit            = "quit"
)

type actionInfo struct {
	action string
	desc   string
}

// actionDescriptions is the help text of every known action, in display order.
var actionDescriptions = []actionInfo{
	{ActionToggleStartMenu, "Open or close the start menu"},
	{ActionCloseWindow, "Close the focused window"},
	{ActionMinimizeWindow, "Minimize the focused window"},
	{ActionToggleMaximize, "Maximize or restore the focused window"},
	{ActionCycleWindows, "Focus the next window"},
	{ActionMoveLeft, "Move window left"},
	{ActionMoveRight, "Move window right"},
	{ActionMoveUp, "Move window up"},
	{ActionMoveDown, "Move window down"},
	{ActionToggleLogs, "Toggle log viewer"},
	{ActionQuit, "Quit Winnux"},
}

// IsValidAction reports whether action is a known keybinding action.
func IsValidAction(action string) bool {
	return slices.ContainsFunc(actionDescriptions, func(a actionInfo) bool { return a.action == action })
}

// DefaultKeybindings returns the built-in action to keys map.
func DefaultKeybindings() map[string][]string {
	return map[string][]string{
		ActionToggleStartMenu: {"ctrl+s", "f1"},
		ActionCloseWindow:     {"ctrl+w"},
		ActionMinimizeWindow:  {"ctrl+n"},
		ActionToggleMaximize:  {"ctrl+f"},
		ActionCycleWindows:    {"ctrl+tab", "f2"},
		ActionMoveLeft:        {"alt+left"},
		ActionMoveRight:       {"alt+right"},
		ActionMoveUp:          {"alt+up"},
		ActionMoveDown:        {"alt+down"},
		ActionToggleLogs:      {"f12"},
		ActionQuit:            {"ctrl+q"},
	}
}

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection represents a section of related keybindings
type KeybindingSection struct {
	Title    string
	Bindings []Keybinding
}

// KeybindRegistry resolves key presses to actions using bubbles key bindings.
type KeybindRegistry struct {
	bindings map[string]key.Binding
}

// NewKeybindRegistry builds bindings from cfg. A nil cfg uses the defaults.
// Actions bound to an empty list are disabled.
func NewKeybindRegistry(cfg *UserConfig) *KeybindRegistry {
	source := DefaultKeybindings()
	if cfg != nil && cfg.Keybindings != nil {
		source = cfg.Keybindings
	}

	r := &KeybindRegistry{bindings: make(map[string]key.Binding, len(actionDescriptions))}
	for _, a := range actionDescriptions {
		keys := source[a.action]
		if len(keys) == 0 {
			continue
		}
		r.bindings[a.action] = key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(strings.Join(keys, "/"), a.desc),
		)
	}
	return r
}

// Match returns the action bound to msg.
func (r *KeybindRegistry) Match(msg tea.KeyPressMsg) (string, bool) {
	for _, a := range actionDescriptions {
		b, ok := r.bindings[a.action]
		if ok && key.Matches(msg, b) {
			return a.action, true
		}
	}
	return "", false
}

// Binding returns the bubbles binding for action.
func (r *KeybindRegistry) Binding(action string) (key.Binding, bool) {
	b, ok := r.bindings[action]
	return b, ok
}

// GetKeysForDisplay returns the keys for action joined for help output.
func (r *KeybindRegistry) GetKeysForDisplay(action string) string {
	b, ok := r.bindings[action]
	if !ok {
		return ""
	}
	return b.Help().Key
}

// Conflicts lists keys that are bound to more than one action.
func (r *KeybindRegistry) Conflicts() []string {
	owners := make(map[string][]string)
	for _, a := range actionDescriptions {
		b, ok := r.bindings[a.action]
		if !ok {
			continue
		}
		for _, k := range b.Keys() {
			owners[k] = append(owners[k], a.action)
		}
	}
	var out []string
	for k, actions := range owners {
		if len(actions) > 1 {
			out = append(out, fmt.Sprintf("%s: %s", k, strings.Join(actions, ", ")))
		}
	}
	slices.Sort(out)
	return out
}

// GetKeybindings returns all keybinding sections for help output.
// A nil registry falls back to the defaults.
func GetKeybindings(registry *KeybindRegistry) []KeybindingSection {
	if registry == nil {
		registry = NewKeybindRegistry(nil)
	}

	windows := KeybindingSection{Title: "WINDOWS"}
	addBinding(&windows, registry, ActionCloseWindow, "Close window")
	addBinding(&windows, registry, ActionMinimizeWindow, "Minimize window")
	addBinding(&windows, registry, ActionToggleMaximize, "Maximize / restore")
	addBinding(&windows, registry, ActionCycleWindows, "Next window")

	moving := KeybindingSection{Title: "MOVING"}
	addBinding(&moving, registry, ActionMoveLeft, "Move left")
	addBinding(&moving, registry, ActionMoveRight, "Move right")
	addBinding(&moving, registry, ActionMoveUp, "Move up")
	addBinding(&moving, registry, ActionMoveDown, "Move down")

	system := KeybindingSection{Title: "SYSTEM"}
	addBinding(&system, registry, ActionToggleStartMenu, "Start menu")
	addBinding(&system, registry, ActionToggleLogs, "Log viewer")
	addBinding(&system, registry, ActionQuit, "Quit")

	var sections []KeybindingSection
	for _, s := range []KeybindingSection{windows, moving, system} {
		if len(s.Bindings) > 0 {
			sections = append(sections, s)
		}
	}
	return append(sections, getStaticHelpSections()...)
}

// addBinding adds a keybinding to a section if the action has keys configured
func addBinding(section *KeybindingSection, registry *KeybindRegistry, action, description string) {
	keys := registry.GetKeysForDisplay(action)
	if keys != "" {
		section.Bindings = append(section.Bindings, Keybinding{
			Key:         keys,
			Description: description,
		})
	}
}

// getStaticHelpSections returns mouse and in-menu bindings that are not configurable.
func getStaticHelpSections() []KeybindingSection {
	return []KeybindingSection{
		{
			Title: "MOUSE",
			Bindings: []Keybinding{
				{"Click title bar + drag", "Move window"},
				{"Click window", "Focus window"},
				{"Double-click icon", "Open app"},
				{"Click taskbar app", "Open or focus app"},
				{"Click desktop", "Close start menu"},
			},
		},
		{
			Title: "START MENU",
			Bindings: []Keybinding{
				{"Type", "Search apps"},
				{"↑/↓", "Select app"},
				{"Enter", "Open selected app"},
				{"Esc", "Close menu"},
			},
		},
		{
			Title: "DRAGGING",
			Bindings: []Keybinding{
				{"Esc", "Cancel drag"},
			},
		},
	}
}
