// Package theme provides color themes and styling for the Winnux desktop.
package theme

import (
	"fmt"
	"image/color"
	"slices"
	"sync"

	"charm.land/lipgloss/v2"
	"charm.land/log/v2"
	tint "github.com/lrstanley/bubbletint/v2"
)

var (
	mu       sync.RWMutex
	enabled  bool
	loadOnce sync.Once
)

// Initialize sets up the theme registry with the specified theme name.
// If themeName is empty, theming is disabled and standard terminal colors are used.
func Initialize(themeName string) error {
	if themeName == "" {
		mu.Lock()
		enabled = false
		mu.Unlock()
		return nil
	}
	ensureRegistry()
	if !Set(themeName) {
		tint.SetTintID("default")
		return fmt.Errorf("unknown theme %q", themeName)
	}
	return nil
}

// ensureRegistry builds the default registry and loads user themes once.
func ensureRegistry() {
	loadOnce.Do(func() {
		tint.NewDefaultRegistry()
		if themesDir, err := GetThemesDir(); err == nil {
			if _, err := LoadCustomThemes(themesDir); err != nil {
				log.Warn("Error loading custom themes", "err", err)
			}
		}
	})
}

// Set switches the active theme at runtime. The empty name disables theming.
func Set(themeName string) bool {
	if themeName == "" {
		mu.Lock()
		enabled = false
		mu.Unlock()
		return true
	}
	ensureRegistry()
	if !tint.SetTintID(themeName) {
		return false
	}
	mu.Lock()
	enabled = true
	mu.Unlock()
	return true
}

// Available lists every registered theme ID, sorted.
func Available() []string {
	ensureRegistry()
	ids := tint.TintIDs()
	slices.Sort(ids)
	return ids
}

// IsEnabled returns true if theming is enabled
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// Name returns the active theme ID, or "" when theming is off.
func Name() string {
	if t := Current(); t != nil {
		return t.ID
	}
	return ""
}

// Current returns the currently active theme.
// Returns nil if theming is disabled.
func Current() *tint.Tint {
	if !IsEnabled() {
		return nil
	}
	return tint.Current()
}

// DesktopBg returns the wallpaper background.
func DesktopBg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#0b1e3a")
	}
	return t.Bg
}

// DesktopPattern returns the wallpaper pattern color.
func DesktopPattern() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#1d3b66")
	}
	return t.BrightBlack
}

// DesktopIconFg returns the label color of desktop shortcuts.
func DesktopIconFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#e5e5e5")
	}
	return t.Fg
}

// DesktopIconSelected returns the background of a selected shortcut.
func DesktopIconSelected() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#2d5a9e")
	}
	return t.Blue
}

// BorderUnfocused returns the color for unfocused window borders.
func BorderUnfocused() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#5a5a6e")
	}
	return t.BrightBlack
}

// BorderFocused returns the color for the active window border.
func BorderFocused() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#60a5fa")
	}
	return t.BrightBlue
}

// TitleBarBg returns the title bar background of a window.
func TitleBarBg(focused bool) color.Color {
	t := Current()
	if t == nil {
		if focused {
			return lipgloss.Color("#1f2937")
		}
		return lipgloss.Color("#111827")
	}
	if focused {
		return t.Black
	}
	return t.Bg
}

// TitleBarFg returns the title text color of a window.
func TitleBarFg(focused bool) color.Color {
	t := Current()
	if t == nil {
		if focused {
			return lipgloss.Color("#f3f4f6")
		}
		return lipgloss.Color("#9ca3af")
	}
	if focused {
		return t.BrightWhite
	}
	return t.White
}

// ButtonFg returns the color of minimize and maximize buttons.
func ButtonFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#d1d5db")
	}
	return t.Fg
}

// ButtonCloseFg returns the color of the close button.
func ButtonCloseFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#f87171")
	}
	return t.BrightRed
}

// WindowBg returns the content area background.
func WindowBg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#0f172a")
	}
	return t.Bg
}

// WindowFg returns the content area foreground.
func WindowFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#e5e7eb")
	}
	return t.Fg
}

// TaskbarBg returns the background color for the taskbar.
func TaskbarBg() color.Color {
	return lipgloss.Color("#1e1e2e")
}

// TaskbarFg returns the foreground color for the taskbar.
func TaskbarFg() color.Color {
	return lipgloss.Color("#c0c0c8")
}

// TaskbarHighlight returns the indicator color of the active app.
func TaskbarHighlight() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#60a5fa")
	}
	return t.BrightBlue
}

// TaskbarDimmed returns the indicator color of background apps.
func TaskbarDimmed() color.Color {
	return lipgloss.Color("#808090")
}

// TaskbarAccent returns the start button color.
func TaskbarAccent() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#38bdf8")
	}
	return t.BrightCyan
}

// StartMenuBg returns the start menu background.
func StartMenuBg() color.Color {
	return lipgloss.Color("#25253a")
}

// StartMenuFg returns the start menu text color.
func StartMenuFg() color.Color {
	return lipgloss.Color("#e0e0e8")
}

// StartMenuSelection returns the highlight of the selected start menu entry.
func StartMenuSelection() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#3b82f6")
	}
	return t.Blue
}

// StartMenuDim returns the color of secondary start menu text.
func StartMenuDim() color.Color {
	return lipgloss.Color("#8a8aa0")
}

// PromptFg returns the color of the simulated shell prompt.
func PromptFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#4ade80")
	}
	return t.BrightGreen
}

// ErrorFg returns the color of inline errors in app content.
func ErrorFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#f87171")
	}
	return t.Red
}

// AccentFg returns the color used for links and selections inside apps.
func AccentFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#93c5fd")
	}
	return t.Cyan
}

// LogViewerTitle returns the title color for the log viewer.
func LogViewerTitle() color.Color {
	return lipgloss.Color("14")
}

// LogViewerError returns the error level color for the log viewer.
func LogViewerError() color.Color {
	return lipgloss.Color("9")
}

// LogViewerWarn returns the warning level color for the log viewer.
func LogViewerWarn() color.Color {
	return lipgloss.Color("11")
}

// LogViewerInfo returns the info level color for the log viewer.
func LogViewerInfo() color.Color {
	return lipgloss.Color("10")
}

// LogViewerDebug returns the debug level color for the log viewer.
func LogViewerDebug() color.Color {
	return lipgloss.Color("8")
}

// LogViewerBg returns the background color for the log viewer.
func LogViewerBg() color.Color {
	return lipgloss.Color("#1a1a2a")
}

// NotificationError returns the error notification color.
func NotificationError() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#dc3545")
	}
	return t.Red
}

// NotificationWarning returns the warning notification color.
func NotificationWarning() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#ffc107")
	}
	return t.Yellow
}

// NotificationSuccess returns the success notification color.
func NotificationSuccess() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#28a745")
	}
	return t.Green
}

// NotificationInfo returns the info notification color.
func NotificationInfo() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#007bff")
	}
	return t.Blue
}

// NotificationFg returns the notification text color.
func NotificationFg() color.Color {
	return lipgloss.Color("#ffffff")
}

// CLITableHeader returns the header color for CLI tables.
func CLITableHeader() color.Color {
	return lipgloss.Color("12")
}

// CLITableBorder returns the border color for CLI tables.
func CLITableBorder() color.Color {
	return lipgloss.Color("8")
}

// CLITableKey returns the key color for CLI tables.
func CLITableKey() color.Color {
	return lipgloss.Color("14")
}

// CLITableDim returns the dimmed color for CLI table elements.
func CLITableDim() color.Color {
	return lipgloss.Color("8")
}

// ColorToString converts a color.Color to a hex string
func ColorToString(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	r, g, b, _ := c.RGBA()
	r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)
	return fmt.Sprintf("#%02x%02x%02x", r8, g8, b8)
}
