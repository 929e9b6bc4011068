// Package config provides configuration constants, keybinding management, and user settings.
package config

import (
	"time"

	"charm.land/lipgloss/v2"
)

// =============================================================================
// Window Defaults
// =============================================================================

const (
	// MinWindowWidth is the narrowest a window is ever drawn
	MinWindowWidth = 16

	// MinWindowHeight is the shortest a window is ever drawn (title bar + border + one row)
	MinWindowHeight = 4

	// ButtonStripWidth is the width reserved on the title bar for the three control buttons
	ButtonStripWidth = 10
)

// =============================================================================
// Timeouts and Intervals
// =============================================================================

const (
	// ClockInterval is how often the taskbar clock refreshes
	ClockInterval = time.Second

	// TrayInterval is how often CPU and RAM are sampled for the system tray
	TrayInterval = 2 * time.Second

	// DoubleClickWindow is the maximum gap between two clicks on a desktop icon
	DoubleClickWindow = 400 * time.Millisecond

	// NotificationDuration is the default duration notifications remain visible
	NotificationDuration = 2 * time.Second

	// AssistantTimeout bounds a single assistant request
	AssistantTimeout = 30 * time.Second
)

// =============================================================================
// FPS and Refresh Rates
// =============================================================================

const (
	// NormalFPS is the renderer frame rate
	NormalFPS = 60
)

// =============================================================================
// UI Layout Dimensions
// =============================================================================

const (
	// TaskbarHeight is the number of rows reserved for the taskbar (buttons + indicators)
	TaskbarHeight = 2

	// StartMenuWidth is the width of the start menu overlay
	StartMenuWidth = 46

	// StartMenuMaxHeight caps the start menu height on tall terminals
	StartMenuMaxHeight = 24

	// DesktopIconWidth is the cell width of a desktop shortcut
	DesktopIconWidth = 12

	// DesktopIconHeight is the cell height of a desktop shortcut, label included
	DesktopIconHeight = 3

	// LogViewerWidth is the width of the log viewer overlay
	LogViewerWidth = 80

	// MaxLogMessages is the size of the in-app log ring
	MaxLogMessages = 500

	// MaxVisibleNotifications is how many toasts are stacked at once
	MaxVisibleNotifications = 3

	// MaxTitleLength truncates long window titles on the title bar
	MaxTitleLength = 32
)

// =============================================================================
// Z-Index Layers
// =============================================================================

const (
	// ZIndexWallpaper is the z-index of the tiled desktop background
	ZIndexWallpaper = 0

	// ZIndexIcons is the z-index of desktop shortcuts
	ZIndexIcons = 0

	// ZIndexStartMenu is above any window z the manager can hand out in practice
	ZIndexStartMenu = 1 << 20

	// ZIndexLogs is the z-index for log viewer overlay
	ZIndexLogs = ZIndexStartMenu + 1

	// ZIndexNotifications is the z-index for notifications
	ZIndexNotifications = ZIndexStartMenu + 2
)

// =============================================================================
// Icons (Nerd Font) and ASCII fallbacks
// =============================================================================

const (
	StartIcon      = string(rune(0xf17a)) //
	ButtonMinimize = " " + string(rune(0xf068)) + " "
	ButtonMaximize = " " + string(rune(0xf2d0)) + " "
	ButtonRestore  = " " + string(rune(0xf2d2)) + " "
	ButtonClose    = " " + string(rune(0xf00d)) + " "

	IconTerminal = string(rune(0xf120))
	IconFolder   = string(rune(0xf07b))
	IconGlobe    = string(rune(0xf0ac))
	IconCode     = string(rune(0xf121))
	IconSettings = string(rune(0xf013))
	IconFile     = string(rune(0xf15b))
	IconUser     = string(rune(0xf007))
	IconPower    = string(rune(0xf011))
	IconSearch   = string(rune(0xf002))
)

const (
	StartIconASCII      = "#"
	ButtonMinimizeASCII = "[_]"
	ButtonMaximizeASCII = "[ ]"
	ButtonRestoreASCII  = "[=]"
	ButtonCloseASCII    = "[x]"

	IconFolderASCII = "[D]"
	IconFileASCII   = "[F]"
	IconUserASCII   = "@"
	IconPowerASCII  = "(!)"
	IconSearchASCII = ">"
)

const (
	// IndicatorActive marks a running app that owns the focused window
	IndicatorActive = "━━━"
	// IndicatorRunning marks a running app in the background
	IndicatorRunning = "─"
)

// Notification type prefixes
const (
	NotificationIconError   = "[X]"
	NotificationIconWarning = "[!]"
	NotificationIconSuccess = "[OK]"
	NotificationIconInfo    = "[i]"
)

// =============================================================================
// Runtime settings (set from user config and CLI overrides)
// =============================================================================

// UseASCIIOnly replaces Nerd Font glyphs with ASCII
var UseASCIIOnly = false

// BorderStyle is the window border style name
var BorderStyle = "rounded"

// TaskbarPosition is "bottom" or "top"
var TaskbarPosition = "bottom"

// HideWindowButtons removes the minimize/maximize/close controls
var HideWindowButtons = false

// HideClock removes the clock from the taskbar
var HideClock = false

// HideTray removes CPU/RAM readings from the taskbar
var HideTray = false

// Wallpaper is the character tiled over the desktop background
var Wallpaper = "·"

// Icon returns glyph, or fallback in ASCII mode.
func Icon(glyph, fallback string) string {
	if UseASCIIOnly {
		return fallback
	}
	return glyph
}

// WindowButtons returns the minimize, maximize and close labels for the title bar.
func WindowButtons(maximized bool) (minimize, maximize, closeBtn string) {
	if UseASCIIOnly {
		if maximized {
			return ButtonMinimizeASCII, ButtonRestoreASCII, ButtonCloseASCII
		}
		return ButtonMinimizeASCII, ButtonMaximizeASCII, ButtonCloseASCII
	}
	if maximized {
		return ButtonMinimize, ButtonRestore, ButtonClose
	}
	return ButtonMinimize, ButtonMaximize, ButtonClose
}

// GetBorderForStyle maps a style name to a lipgloss border.
func GetBorderForStyle(style string) lipgloss.Border {
	if UseASCIIOnly && style != "hidden" {
		return lipgloss.ASCIIBorder()
	}
	switch style {
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	case "block":
		return lipgloss.BlockBorder()
	case "ascii":
		return lipgloss.ASCIIBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}

// ValidBorderStyles lists accepted border_style values.
var ValidBorderStyles = []string{"rounded", "normal", "thick", "double", "hidden", "block", "ascii"}

// ValidTaskbarPositions lists accepted taskbar_position values.
var ValidTaskbarPositions = []string{"bottom", "top"}

// ValidAssistantProviders lists accepted assistant.provider values.
var ValidAssistantProviders = []string{"offline", "gemini"}
