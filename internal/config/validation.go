package config

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// ValidationIssue describes one problem found in the user config.
type ValidationIssue struct {
	Field   string // section name, e.g. "appearance"
	Key     string
	Message string
}

// ValidationResult collects errors (fatal) and warnings (logged, then ignored).
type ValidationResult struct {
	Errors   []ValidationIssue
	Warnings []ValidationIssue
}

// HasErrors reports whether any fatal issue was found.
func (r ValidationResult) HasErrors() bool { return len(r.Errors) > 0 }

// HasWarnings reports whether any non-fatal issue was found.
func (r ValidationResult) HasWarnings() bool { return len(r.Warnings) > 0 }

func (r *ValidationResult) errorf(field, key, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationIssue{Field: field, Key: key, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warnf(field, key, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationIssue{Field: field, Key: key, Message: fmt.Sprintf(format, args...)})
}

// ValidateConfig checks cfg for values the desktop cannot use.
func ValidateConfig(cfg *UserConfig) ValidationResult {
	var res ValidationResult

	a := cfg.Appearance
	if !slices.Contains(ValidBorderStyles, a.BorderStyle) {
		res.errorf("appearance", "border_style", "must be one of %s, got %q", strings.Join(ValidBorderStyles, ", "), a.BorderStyle)
	}
	if !slices.Contains(ValidTaskbarPositions, a.TaskbarPosition) {
		res.errorf("appearance", "taskbar_position", "must be bottom or top, got %q", a.TaskbarPosition)
	}
	if utf8.RuneCountInString(a.Wallpaper) != 1 {
		res.warnf("appearance", "wallpaper", "should be a single character, only the first is used")
	}

	d := cfg.Desktop
	if d.CascadeOriginX < 0 || d.CascadeOriginY < 0 {
		res.errorf("desktop", "cascade_origin", "must not be negative")
	}
	if d.CascadeStepX < 0 || d.CascadeStepY < 0 {
		res.errorf("desktop", "cascade_step", "must not be negative")
	}
	if d.CascadeStepX == 0 && d.CascadeStepY == 0 {
		res.warnf("desktop", "cascade_step", "new windows will open exactly on top of each other")
	}
	if d.DoubleClickMS > 2000 {
		res.warnf("desktop", "double_click_ms", "%dms is unusually slow", d.DoubleClickMS)
	}

	as := cfg.Assistant
	if !slices.Contains(ValidAssistantProviders, as.Provider) {
		res.errorf("assistant", "provider", "must be one of %s, got %q", strings.Join(ValidAssistantProviders, ", "), as.Provider)
	}

	s := cfg.Server
	if s.MCPTransport != "stdio" && s.MCPTransport != "streamable-http" {
		res.errorf("server", "mcp_transport", "must be stdio or streamable-http, got %q", s.MCPTransport)
	}
	if s.MCPPort < 1 || s.MCPPort > 65535 {
		res.errorf("server", "mcp_port", "must be between 1 and 65535, got %d", s.MCPPort)
	}

	for action := range cfg.Keybindings {
		if !IsValidAction(action) {
			res.warnf("keybindings", action, "unknown action, ignored")
		}
	}
	for _, c := range NewKeybindRegistry(cfg).Conflicts() {
		res.warnf("keybindings", "conflict", "%s", c)
	}

	return res
}
