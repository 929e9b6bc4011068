package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"charm.land/log/v2"
	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// configRelPath is the config file location relative to the XDG config home.
const configRelPath = "winnux/config.toml"

// UserConfig represents the user's custom configuration
type UserConfig struct {
	Appearance  AppearanceConfig    `toml:"appearance"`
	Desktop     DesktopConfig       `toml:"desktop"`
	Assistant   AssistantConfig     `toml:"assistant"`
	Server      ServerConfig        `toml:"server"`
	Keybindings map[string][]string `toml:"keybindings"`
}

// AppearanceConfig holds appearance-related settings
type AppearanceConfig struct {
	Theme             string `toml:"theme"`               // Color theme name (e.g., dracula, nord, my-custom-theme)
	BorderStyle       string `toml:"border_style"`        // rounded, normal, thick, double, hidden, block, ascii
	TaskbarPosition   string `toml:"taskbar_position"`    // bottom, top
	HideWindowButtons bool   `toml:"hide_window_buttons"` // Hide minimize, maximize, close
	HideClock         bool   `toml:"hide_clock"`          // Hide the taskbar clock
	HideTray          bool   `toml:"hide_tray"`           // Hide CPU/RAM readings
	Wallpaper         string `toml:"wallpaper"`           // Single character tiled over the desktop
}

// DesktopConfig controls window placement and pointer timing
type DesktopConfig struct {
	CascadeOriginX int `toml:"cascade_origin_x"` // Column of the first window
	CascadeOriginY int `toml:"cascade_origin_y"` // Row of the first window
	CascadeStepX   int `toml:"cascade_step_x"`   // Columns added per already-open window
	CascadeStepY   int `toml:"cascade_step_y"`   // Rows added per already-open window
	FirstZ         int `toml:"first_z"`          // Stacking value of the first window
	DoubleClickMS  int `toml:"double_click_ms"`  // Desktop icon double-click window
}

// AssistantConfig selects the text generator behind the terminal and browser apps
type AssistantConfig struct {
	Provider       string `toml:"provider"`        // offline, gemini
	Model          string `toml:"model"`           // Gemini model name
	APIKey         string `toml:"api_key"`         // Falls back to $GEMINI_API_KEY
	TimeoutSeconds int    `toml:"timeout_seconds"` // Per-request timeout
}

// ServerConfig holds defaults for the ssh and mcp subcommands
type ServerConfig struct {
	SSHHost      string `toml:"ssh_host"`
	SSHPort      string `toml:"ssh_port"`
	SSHKeyPath   string `toml:"ssh_key_path"`
	MCPTransport string `toml:"mcp_transport"` // stdio, streamable-http
	MCPPort      int    `toml:"mcp_port"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *UserConfig {
	return &UserConfig{
		Appearance: AppearanceConfig{
			BorderStyle:     "rounded",
			TaskbarPosition: "bottom",
			Wallpaper:       "·",
		},
		Desktop: DesktopConfig{
			CascadeOriginX: 4,
			CascadeOriginY: 2,
			CascadeStepX:   2,
			CascadeStepY:   1,
			FirstZ:         10,
			DoubleClickMS:  int(DoubleClickWindow.Milliseconds()),
		},
		Assistant: AssistantConfig{
			Provider:       "offline",
			Model:          "gemini-2.5-flash",
			TimeoutSeconds: int(AssistantTimeout.Seconds()),
		},
		Server: ServerConfig{
			SSHHost:      "localhost",
			SSHPort:      "2222",
			MCPTransport: "stdio",
			MCPPort:      8765,
		},
		Keybindings: DefaultKeybindings(),
	}
}

// LoadUserConfig loads the user configuration from XDG config directory,
// creating a default file on first run.
func LoadUserConfig() (*UserConfig, error) {
	configPath, err := xdg.SearchConfigFile(configRelPath)
	if err != nil {
		return createDefaultConfig()
	}
	return LoadUserConfigFrom(configPath)
}

// LoadUserConfigFrom reads, completes and validates the config at path.
func LoadUserConfigFrom(path string) (*UserConfig, error) {
	// #nosec G304 - path comes from XDG search or the caller, reading user config is intentional
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	defaults := DefaultConfig()
	fillMissingAppearance(&cfg, defaults)
	fillMissingDesktop(&cfg, defaults)
	fillMissingAssistant(&cfg, defaults)
	fillMissingServer(&cfg, defaults)
	fillMissingKeybinds(&cfg, defaults)

	validation := ValidateConfig(&cfg)
	if validation.HasErrors() {
		for _, issue := range validation.Errors {
			log.Error("Config error", "section", issue.Field, "key", issue.Key, "problem", issue.Message)
		}
		return nil, fmt.Errorf("configuration has %d error(s), please fix and restart", len(validation.Errors))
	}
	for _, issue := range validation.Warnings {
		log.Warn("Config warning", "section", issue.Field, "key", issue.Key, "problem", issue.Message)
	}

	return &cfg, nil
}

// createDefaultConfig writes the default config to the XDG config directory.
func createDefaultConfig() (*UserConfig, error) {
	configPath, err := xdg.ConfigFile(configRelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	cfg := DefaultConfig()
	if err := WriteConfig(configPath, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteConfig marshals cfg to path with the documented header.
func WriteConfig(path string, cfg *UserConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# Winnux Configuration File\n")
	sb.WriteString("#\n")
	sb.WriteString("# Configuration location: " + path + "\n")
	sb.WriteString("# For keybindings, run: winnux keybinds list\n\n")

	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# APPEARANCE\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# theme: Color theme name. Leave empty for standard terminal colors.\n")
	sb.WriteString("#   Custom themes: ~/.config/winnux/themes/*.json\n")
	sb.WriteString("# border_style: " + strings.Join(ValidBorderStyles, ", ") + " (default: rounded)\n")
	sb.WriteString("# taskbar_position: bottom, top (default: bottom)\n")
	sb.WriteString("#\n")
	sb.WriteString("# DESKTOP\n")
	sb.WriteString("# cascade_*: where new windows appear. Window n opens at origin + n*step.\n")
	sb.WriteString("# first_z: stacking value given to the first window (default: 10)\n")
	sb.WriteString("#\n")
	sb.WriteString("# ASSISTANT\n")
	sb.WriteString("# provider: offline (simulated, no network) or gemini (needs api_key or $GEMINI_API_KEY)\n")
	sb.WriteString("# ============================================================================\n\n")

	sb.Write(data)

	if err := os.WriteFile(path, []byte(sb.String()), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func fillMissingAppearance(cfg, defaults *UserConfig) {
	if cfg.Appearance.BorderStyle == "" {
		cfg.Appearance.BorderStyle = defaults.Appearance.BorderStyle
	}
	if cfg.Appearance.TaskbarPosition == "" {
		cfg.Appearance.TaskbarPosition = defaults.Appearance.TaskbarPosition
	}
	if cfg.Appearance.Wallpaper == "" {
		cfg.Appearance.Wallpaper = defaults.Appearance.Wallpaper
	}
}

// fillMissingDesktop only fills a section that was left out entirely; an explicit
// zero step is a valid choice (stack windows exactly on top of each other).
func fillMissingDesktop(cfg, defaults *UserConfig) {
	if cfg.Desktop == (DesktopConfig{}) {
		cfg.Desktop = defaults.Desktop
		return
	}
	if cfg.Desktop.DoubleClickMS <= 0 {
		cfg.Desktop.DoubleClickMS = defaults.Desktop.DoubleClickMS
	}
}

func fillMissingAssistant(cfg, defaults *UserConfig) {
	if cfg.Assistant.Provider == "" {
		cfg.Assistant.Provider = defaults.Assistant.Provider
	}
	if cfg.Assistant.Model == "" {
		cfg.Assistant.Model = defaults.Assistant.Model
	}
	if cfg.Assistant.TimeoutSeconds <= 0 {
		cfg.Assistant.TimeoutSeconds = defaults.Assistant.TimeoutSeconds
	}
}

func fillMissingServer(cfg, defaults *UserConfig) {
	if cfg.Server.SSHHost == "" {
		cfg.Server.SSHHost = defaults.Server.SSHHost
	}
	if cfg.Server.SSHPort == "" {
		cfg.Server.SSHPort = defaults.Server.SSHPort
	}
	if cfg.Server.MCPTransport == "" {
		cfg.Server.MCPTransport = defaults.Server.MCPTransport
	}
	if cfg.Server.MCPPort == 0 {
		cfg.Server.MCPPort = defaults.Server.MCPPort
	}
}

func fillMissingKeybinds(cfg, defaults *UserConfig) {
	if cfg.Keybindings == nil {
		cfg.Keybindings = make(map[string][]string)
	}
	for action, keys := range defaults.Keybindings {
		if _, exists := cfg.Keybindings[action]; !exists {
			cfg.Keybindings[action] = keys
		}
	}
}

// GetConfigPath returns the path to the config file, or where it would be created.
func GetConfigPath() (string, error) {
	path, err := xdg.SearchConfigFile(configRelPath)
	if err != nil {
		return xdg.ConfigFile(configRelPath)
	}
	return path, nil
}
