// Package winnux provides the Winnux desktop simulator as a Bubble Tea model
// that can be run standalone or embedded in other programs.
//
// # Basic Usage
//
//	model := winnux.New()
//	p := tea.NewProgram(model, winnux.ProgramOptions()...)
//	if _, err := p.Run(); err != nil {
//		log.Fatal(err)
//	}
//	model.Cleanup()
//
// # Custom Configuration
//
//	model := winnux.New(
//		winnux.WithTheme("dracula"),
//		winnux.WithAssistant("gemini"),
//		winnux.WithOpen("terminal", "explorer"),
//	)
//
// # Using with sip (Web Terminal)
//
//	server := sip.NewServer(sip.DefaultConfig())
//	server.Serve(ctx, func(sess sip.Session) (tea.Model, []tea.ProgramOption) {
//		pty := sess.Pty()
//		return winnux.New(winnux.WithSize(pty.Width, pty.Height)), winnux.ProgramOptions()
//	})
package winnux

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"github.com/Gaurav-Gosain/winnux/internal/app"
	"github.com/Gaurav-Gosain/winnux/internal/apps"
	"github.com/Gaurav-Gosain/winnux/internal/assistant"
	"github.com/Gaurav-Gosain/winnux/internal/config"
	"github.com/Gaurav-Gosain/winnux/internal/desktop"
	"github.com/Gaurav-Gosain/winnux/internal/input"
	"github.com/Gaurav-Gosain/winnux/internal/registry"
)

// Model is the desktop model. It implements tea.Model.
type Model = app.Desktop

// Options configures a Winnux instance.
type Options struct {
	// Theme is the color theme name (e.g., "dracula", "nord").
	// Leave empty to use standard terminal colors.
	Theme string

	// Assistant selects the text generator: "offline" or "gemini".
	// Empty keeps the configured provider.
	Assistant string

	// ASCIIOnly uses ASCII characters instead of Nerd Font icons.
	ASCIIOnly bool

	// BorderStyle sets the window border style.
	BorderStyle string

	// TaskbarPosition is "bottom" or "top".
	TaskbarPosition string

	// HideWindowButtons hides the minimize/maximize/close buttons.
	HideWindowButtons bool

	// Width and Height are the initial size; a WindowSizeMsg replaces them.
	Width  int
	Height int

	// Open lists app kinds or names to open before the first frame.
	Open []string

	// UserConfig is a custom user configuration. If nil, the config file is
	// loaded, falling back to defaults.
	UserConfig *config.UserConfig

	// Logger receives setup warnings. Defaults to log.Default().
	Logger *log.Logger
}

// Option is a functional option for configuring Winnux.
type Option func(*Options)

// WithTheme sets the color theme.
func WithTheme(name string) Option {
	return func(o *Options) {
		o.Theme = name
	}
}

// WithAssistant selects the assistant provider.
func WithAssistant(provider string) Option {
	return func(o *Options) {
		o.Assistant = provider
	}
}

// WithASCIIOnly enables ASCII-only mode (no Nerd Font icons).
func WithASCIIOnly(enabled bool) Option {
	return func(o *Options) {
		o.ASCIIOnly = enabled
	}
}

// WithBorderStyle sets the window border style.
func WithBorderStyle(style string) Option {
	return func(o *Options) {
		o.BorderStyle = style
	}
}

// WithTaskbarPosition sets the taskbar position.
func WithTaskbarPosition(position string) Option {
	return func(o *Options) {
		o.TaskbarPosition = position
	}
}

// WithHideWindowButtons hides window control buttons.
func WithHideWindowButtons(hide bool) Option {
	return func(o *Options) {
		o.HideWindowButtons = hide
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(o *Options) {
		o.Width = width
		o.Height = height
	}
}

// WithOpen opens the given apps at startup.
func WithOpen(kinds ...string) Option {
	return func(o *Options) {
		o.Open = append(o.Open, kinds...)
	}
}

// WithUserConfig sets a custom user configuration.
func WithUserConfig(cfg *config.UserConfig) Option {
	return func(o *Options) {
		o.UserConfig = cfg
	}
}

// WithLogger sets the logger for setup warnings.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{}
}

// New creates a new desktop with the given options.
func New(opts ...Option) *Model {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return newModel(options)
}

// PTY is anything that knows its size, such as a web terminal session.
type PTY interface {
	Width() int
	Height() int
}

// NewForPTY creates a desktop sized for a PTY session.
func NewForPTY(pty PTY, opts ...Option) *Model {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	options.Width = pty.Width()
	options.Height = pty.Height()
	return newModel(options)
}

func newModel(options Options) *Model {
	logger := options.Logger
	if logger == nil {
		logger = log.Default()
	}

	app.SetInputHandler(input.HandleInput)

	userConfig := options.UserConfig
	if userConfig == nil {
		var err error
		userConfig, err = config.LoadUserConfig()
		if err != nil {
			logger.Warn("Failed to load config, using defaults", "err", err)
			userConfig = config.DefaultConfig()
		}
	}

	config.ApplyOverrides(config.Overrides{
		ASCIIOnly:         options.ASCIIOnly,
		BorderStyle:       options.BorderStyle,
		TaskbarPosition:   options.TaskbarPosition,
		HideWindowButtons: options.HideWindowButtons,
		ThemeName:         options.Theme,
		AssistantProvider: options.Assistant,
	}, userConfig)

	env := apps.Env{
		Timeout: time.Duration(userConfig.Assistant.TimeoutSeconds) * time.Second,
	}
	provider, err := assistant.New(userConfig.Assistant)
	if err != nil {
		logger.Warn("Assistant unavailable, using offline replies",
			"provider", userConfig.Assistant.Provider, "err", err)
	} else {
		env.Assistant = provider
	}
	reg := apps.NewRegistry(env)

	var open []registry.AppKind
	var unknown []string
	for _, name := range options.Open {
		kind, err := reg.ParseKind(name)
		if err != nil {
			unknown = append(unknown, name)
			continue
		}
		open = append(open, kind)
	}

	d := app.New(app.Options{
		Width:       options.Width,
		Height:      options.Height,
		Registry:    reg,
		Layout:      LayoutFromConfig(userConfig.Desktop),
		DoubleClick: time.Duration(userConfig.Desktop.DoubleClickMS) * time.Millisecond,
		Keybinds:    config.NewKeybindRegistry(userConfig),
		Open:        open,
	})
	for _, name := range unknown {
		d.LogWarn("cannot open unknown app %q", name)
	}
	return d
}

// LayoutFromConfig converts the [desktop] section to a cascade layout.
func LayoutFromConfig(c config.DesktopConfig) desktop.Layout {
	return desktop.Layout{
		OriginX: c.CascadeOriginX,
		OriginY: c.CascadeOriginY,
		StepX:   c.CascadeStepX,
		StepY:   c.CascadeStepY,
		FirstZ:  c.FirstZ,
	}
}

// ProgramOptions returns recommended tea.ProgramOption values for running
// Winnux:
//
//	p := tea.NewProgram(model, winnux.ProgramOptions()...)
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithFPS(config.NormalFPS),
		tea.WithFilter(FilterMouseMotion),
	}
}

// FilterMouseMotion is a tea.WithFilter function that drops mouse motion
// unless a window is being dragged.
func FilterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}
	d, ok := model.(*Model)
	if !ok {
		return msg
	}
	if d.Drag().Active() {
		return msg
	}
	return nil
}

// Config re-exports the config package for customization.
var Config = struct {
	// LoadUserConfig loads the user's configuration file.
	LoadUserConfig func() (*config.UserConfig, error)
	// DefaultConfig returns the default configuration.
	DefaultConfig func() *config.UserConfig
	// GetConfigPath returns the path to the configuration file.
	GetConfigPath func() (string, error)
}{
	LoadUserConfig: config.LoadUserConfig,
	DefaultConfig:  config.DefaultConfig,
	GetConfigPath:  config.GetConfigPath,
}
