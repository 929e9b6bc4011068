// Package app provides the Winnux desktop model: it owns the window manager,
// the content of every window, the taskbar, the start menu and the desktop
// icons, and composes them into one Bubble Tea view.
package app

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/winnux/internal/apps"
	"github.com/Gaurav-Gosain/winnux/internal/config"
	"github.com/Gaurav-Gosain/winnux/internal/desktop"
	"github.com/Gaurav-Gosain/winnux/internal/registry"
	"github.com/Gaurav-Gosain/winnux/internal/startmenu"
	"github.com/Gaurav-Gosain/winnux/internal/tape"
	"github.com/Gaurav-Gosain/winnux/internal/taskbar"
	"github.com/Gaurav-Gosain/winnux/internal/window"
	"github.com/google/uuid"
	zone "github.com/lrstanley/bubblezone/v2"
)

// Notification represents a temporary notification message.
type Notification struct {
	ID        string
	Message   string
	Type      string // "info", "success", "warning", "error"
	StartTime time.Time
	Duration  time.Duration
}

// LogMessage represents a log entry with timestamp and level.
type LogMessage struct {
	Time    time.Time
	Level   string // INFO, WARN, ERROR
	Message string
}

// Options configures a Desktop.
type Options struct {
	Width, Height int
	// Registry defaults to the built-in app catalog with the offline assistant.
	Registry *registry.Registry
	Layout   desktop.Layout
	// DoubleClick is the maximum gap between two clicks on an icon.
	DoubleClick time.Duration
	Keybinds    *config.KeybindRegistry
	Now         func() time.Time
	IDGenerator func() string
	// Open lists apps to open before the first frame.
	Open []registry.AppKind
}

// Desktop is the top-level tea.Model.
type Desktop struct {
	Width  int
	Height int

	reg      *registry.Registry
	mgr      *desktop.Manager
	contents map[string]registry.Content
	drag     window.Drag
	zones    *zone.Manager
	bar      *taskbar.Bar
	menu     *startmenu.Model
	keys     *config.KeybindRegistry

	selectedIcon  int
	lastIconClick int
	lastIconTime  time.Time
	doubleClick   time.Duration
	now           func() time.Time

	ShowLogs        bool
	LogMessages     []LogMessage
	LogScrollOffset int
	Notifications   []Notification

	script     *tape.Player
	scriptExec *tape.CommandExecutor

	// pending collects commands produced outside Update, such as by tape
	// playback or construction, until the next Update or Init returns them.
	pending []tea.Cmd
}

// New creates a desktop. Apps listed in opts.Open are opened immediately;
// their init commands run from Init.
func New(opts Options) *Desktop {
	if opts.Registry == nil {
		opts.Registry = apps.NewRegistry(apps.Env{})
	}
	if opts.Layout == (desktop.Layout{}) {
		opts.Layout = desktop.DefaultLayout()
	}
	if opts.DoubleClick <= 0 {
		opts.DoubleClick = config.DoubleClickWindow
	}
	if opts.Keybinds == nil {
		opts.Keybinds = config.NewKeybindRegistry(nil)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	mgrOpts := []desktop.Option{desktop.WithLayout(opts.Layout)}
	if opts.IDGenerator != nil {
		mgrOpts = append(mgrOpts, desktop.WithIDGenerator(opts.IDGenerator))
	}

	zones := zone.New()
	d := &Desktop{
		Width:         opts.Width,
		Height:        opts.Height,
		reg:           opts.Registry,
		mgr:           desktop.NewManager(opts.Registry, mgrOpts...),
		contents:      make(map[string]registry.Content),
		zones:         zones,
		bar:           taskbar.New(zones),
		menu:          startmenu.New(opts.Registry),
		keys:          opts.Keybinds,
		selectedIcon:  -1,
		lastIconClick: -1,
		doubleClick:   opts.DoubleClick,
		now:           opts.Now,
	}
	d.scriptExec = tape.NewCommandExecutor(d)

	for _, kind := range opts.Open {
		if _, cmd, ok := d.OpenApp(kind); ok {
			d.pending = append(d.pending, cmd)
		} else {
			d.LogWarn("cannot open unknown app %q", kind)
		}
	}
	return d
}

// Manager returns the window manager.
func (d *Desktop) Manager() *desktop.Manager { return d.mgr }

// Registry returns the app registry.
func (d *Desktop) Registry() *registry.Registry { return d.reg }

// Drag returns the drag state machine.
func (d *Desktop) Drag() *window.Drag { return &d.drag }

// StartMenu returns the start menu state.
func (d *Desktop) StartMenu() *startmenu.Model { return d.menu }

// Taskbar returns the taskbar.
func (d *Desktop) Taskbar() *taskbar.Bar { return d.bar }

// Keybinds returns the keybinding registry.
func (d *Desktop) Keybinds() *config.KeybindRegistry { return d.keys }

// Content returns the content of window id.
func (d *Desktop) Content(id string) (registry.Content, bool) {
	c, ok := d.contents[id]
	return c, ok
}

// Now returns the desktop clock.
func (d *Desktop) Now() time.Time { return d.now() }

// DoubleClickWindow returns the icon double-click threshold.
func (d *Desktop) DoubleClickWindow() time.Duration { return d.doubleClick }

// Cleanup releases the zone manager's worker.
func (d *Desktop) Cleanup() {
	d.zones.Close()
}

// Log adds a new log message to the log buffer.
func (d *Desktop) Log(level, format string, args ...any) {
	wasAtBottom := d.LogScrollOffset >= d.maxLogScroll()-2

	d.LogMessages = append(d.LogMessages, LogMessage{
		Time:    d.now(),
		Level:   level,
		Message: fmt.Sprintf(format, args...),
	})
	if len(d.LogMessages) > config.MaxLogMessages {
		d.LogMessages = d.LogMessages[len(d.LogMessages)-config.MaxLogMessages:]
	}

	if d.ShowLogs && wasAtBottom {
		d.LogScrollOffset = d.maxLogScroll()
	}
}

// LogInfo logs an informational message.
func (d *Desktop) LogInfo(format string, args ...any) {
	d.Log("INFO", format, args...)
}

// LogWarn logs a warning message.
func (d *Desktop) LogWarn(format string, args ...any) {
	d.Log("WARN", format, args...)
}

// LogError logs an error message.
func (d *Desktop) LogError(format string, args ...any) {
	d.Log("ERROR", format, args...)
}

// ShowNotification displays a temporary notification and logs it.
func (d *Desktop) ShowNotification(message, notifType string, duration time.Duration) {
	d.Notifications = append(d.Notifications, Notification{
		ID:        uuid.New().String(),
		Message:   message,
		Type:      notifType,
		StartTime: d.now(),
		Duration:  duration,
	})

	switch notifType {
	case "error":
		d.LogError("%s", message)
	case "warning":
		d.LogWarn("%s", message)
	default:
		d.LogInfo("%s", message)
	}
}

// CleanupNotifications removes expired notifications.
func (d *Desktop) CleanupNotifications() {
	now := d.now()
	active := d.Notifications[:0]
	for _, n := range d.Notifications {
		if now.Sub(n.StartTime) < n.Duration {
			active = append(active, n)
		}
	}
	d.Notifications = active
}

// ToggleLogs shows or hides the log viewer, scrolled to the newest entry.
func (d *Desktop) ToggleLogs() {
	d.ShowLogs = !d.ShowLogs
	if d.ShowLogs {
		d.LogScrollOffset = d.maxLogScroll()
	}
}

// ScrollLogs moves the log viewer by delta lines.
func (d *Desktop) ScrollLogs(delta int) {
	d.LogScrollOffset = max(0, min(d.LogScrollOffset+delta, d.maxLogScroll()))
}

// logsPerPage is the number of entries that fit in the log viewer.
func (d *Desktop) logsPerPage() int {
	maxDisplayHeight := max(d.Height-8, 8)
	// title, blank, blank, hint; plus blank and indicator when scrollable
	fixed := 4
	if len(d.LogMessages) > maxDisplayHeight-fixed {
		fixed = 6
	}
	return max(maxDisplayHeight-fixed, 1)
}

func (d *Desktop) maxLogScroll() int {
	return max(len(d.LogMessages)-d.logsPerPage(), 0)
}
