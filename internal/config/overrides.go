package config

import (
	"charm.land/log/v2"
	"github.com/Gaurav-Gosain/winnux/internal/theme"
)

// Overrides contains CLI flag values that can override user config.
// Zero values indicate the flag was not set and should use the user config default.
type Overrides struct {
	// ASCIIOnly uses ASCII characters instead of Nerd Font icons
	ASCIIOnly bool

	// BorderStyle overrides the window border style
	BorderStyle string

	// TaskbarPosition overrides the taskbar position
	TaskbarPosition string

	// HideWindowButtons overrides hiding window control buttons
	HideWindowButtons bool

	// HideClock overrides hiding the clock
	HideClock bool

	// HideTray overrides hiding the CPU/RAM readings
	HideTray bool

	// ThemeName is the theme to load
	ThemeName string

	// AssistantProvider overrides [assistant].provider
	AssistantProvider string
}

// ApplyOverrides applies CLI flag overrides to global config, falling back to user config defaults.
// If userConfig is nil, only CLI flag values (when set) are applied.
func ApplyOverrides(overrides Overrides, userConfig *UserConfig) {
	if overrides.ASCIIOnly {
		UseASCIIOnly = true
	}

	BorderStyle = pick(overrides.BorderStyle, userConfig, func(c *UserConfig) string { return c.Appearance.BorderStyle }, BorderStyle)
	TaskbarPosition = pick(overrides.TaskbarPosition, userConfig, func(c *UserConfig) string { return c.Appearance.TaskbarPosition }, TaskbarPosition)
	Wallpaper = pick("", userConfig, func(c *UserConfig) string { return c.Appearance.Wallpaper }, Wallpaper)

	// Boolean hides are the OR of flag and config
	HideWindowButtons = overrides.HideWindowButtons
	HideClock = overrides.HideClock
	HideTray = overrides.HideTray
	if userConfig != nil {
		HideWindowButtons = HideWindowButtons || userConfig.Appearance.HideWindowButtons
		HideClock = HideClock || userConfig.Appearance.HideClock
		HideTray = HideTray || userConfig.Appearance.HideTray
	}

	if userConfig != nil && overrides.AssistantProvider != "" {
		userConfig.Assistant.Provider = overrides.AssistantProvider
	}

	themeName := pick(overrides.ThemeName, userConfig, func(c *UserConfig) string { return c.Appearance.Theme }, "")
	if themeName != "" {
		if err := theme.Initialize(themeName); err != nil {
			log.Warn("Failed to load theme", "theme", themeName, "err", err)
		}
	}
}

// pick returns flag when set, then the config value when set, then fallback.
func pick(flag string, cfg *UserConfig, get func(*UserConfig) string, fallback string) string {
	if flag != "" {
		return flag
	}
	if cfg != nil {
		if v := get(cfg); v != "" {
			return v
		}
	}
	return fallback
}
