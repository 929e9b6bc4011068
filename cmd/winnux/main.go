// Package main implements Winnux, a desktop-environment simulator for the
// terminal: draggable, stackable app windows over a taskbar and a start menu.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode         bool
	asciiOnly         bool
	themeName         string
	listThemes        bool
	previewTheme      string
	borderStyle       string
	taskbarPosition   string
	hideWindowButtons bool
	assistantProvider string
	openApps          []string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "winnux",
		Short: "Desktop environment simulator for the terminal",
		Long: `Winnux - a desktop in your terminal

Open, drag, stack, minimize and maximize app windows with the mouse or the
keyboard. A taskbar and a start menu keep track of what is running. The same
desktop can be served over SSH, in the browser, or to MCP clients.`,
		Example: `  # Run Winnux
  winnux

  # Start with a terminal and the file browser open
  winnux --open terminal --open explorer

  # Run with a specific theme
  winnux --theme dracula

  # List all available themes
  winnux --list-themes

  # Use Gemini for the terminal and browser apps
  GEMINI_API_KEY=... winnux --assistant gemini

  # Serve over SSH
  winnux ssh --port 2222

  # Serve in the browser
  winnux web --port 7681

  # Let an MCP client drive a headless desktop
  winnux mcp`,
		Version: version,
		RunE: func(_ *cobra.Command, _ []string) error {
			if previewTheme != "" {
				return previewThemeColors(previewTheme)
			}
			if listThemes {
				for _, t := range listThemeNames() {
					fmt.Println(t)
				}
				return nil
			}
			return runLocal()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&asciiOnly, "ascii-only", false, "Use ASCII characters instead of Nerd Font icons")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Color theme to use (e.g., dracula, nord, tokyonight). Leave empty to use the built-in palette")
	rootCmd.PersistentFlags().BoolVar(&listThemes, "list-themes", false, "List all available themes and exit")
	rootCmd.PersistentFlags().StringVar(&previewTheme, "preview-theme", "", "Preview a theme's 16 ANSI colors")
	rootCmd.PersistentFlags().StringVar(&borderStyle, "border-style", "", "Window border style: rounded, normal, thick, double, hidden, block, ascii (default: from config or rounded)")
	rootCmd.PersistentFlags().StringVar(&taskbarPosition, "taskbar-position", "", "Taskbar position: bottom, top (default: from config or bottom)")
	rootCmd.PersistentFlags().BoolVar(&hideWindowButtons, "hide-window-buttons", false, "Hide window control buttons (minimize, maximize, close)")
	rootCmd.PersistentFlags().StringVar(&assistantProvider, "assistant", "", "Assistant behind the terminal and browser apps: offline, gemini (default: from config or offline)")
	rootCmd.PersistentFlags().StringArrayVar(&openApps, "open", nil, "Open an app at startup (repeatable), e.g. --open terminal")

	var sshPort, sshHost, sshKeyPath string

	sshCmd := &cobra.Command{
		Use:   "ssh",
		Short: "Run Winnux as an SSH server",
		Long: `Serve Winnux over SSH

Every connection gets its own desktop, sized to the client's terminal.
Host, port and key path default to the [server] section of the config.`,
		Example: `  # Start SSH server on the configured port
  winnux ssh

  # Custom port and host key
  winnux ssh --port 2222 --key-path /path/to/host_key

  # Connect
  ssh -p 2222 localhost`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSSHServer(sshHost, sshPort, sshKeyPath)
		},
	}
	sshCmd.Flags().StringVar(&sshPort, "port", "", "SSH server port (default: from config or 2222)")
	sshCmd.Flags().StringVar(&sshHost, "host", "", "SSH server host (default: from config or localhost)")
	sshCmd.Flags().StringVar(&sshKeyPath, "key-path", "", "Path to SSH host key (generated if missing)")

	var webPort, webHost string

	webCmd := &cobra.Command{
		Use:   "web",
		Short: "Serve Winnux in the browser",
		Long: `Serve Winnux through a web terminal

Every browser tab gets its own desktop, sized to the page.`,
		Example: `  winnux web
  winnux web --host 0.0.0.0 --port 8080`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runWebServer(webHost, webPort)
		},
	}
	webCmd.Flags().StringVar(&webPort, "port", "7681", "Web server port")
	webCmd.Flags().StringVar(&webHost, "host", "localhost", "Web server host")

	var mcpTransport string
	var mcpPort, mcpWidth, mcpHeight int

	mcpCmd := &cobra.Command{
		Use:   "mcp",
		Short: "Expose a headless desktop to MCP clients",
		Long: `Run an MCP server over a headless desktop

Tools: list_windows, list_apps, open_app, close_window, minimize_window,
toggle_maximize, focus_window, move_window, taskbar_click, screenshot.
Window state is returned as YAML.`,
		Example: `  # stdio transport, for MCP client configs
  winnux mcp

  # HTTP transport
  winnux mcp --transport streamable-http --port 8765`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runMCPServer(mcpTransport, mcpPort, mcpWidth, mcpHeight)
		},
	}
	mcpCmd.Flags().StringVar(&mcpTransport, "transport", "", "Transport: stdio, streamable-http (default: from config or stdio)")
	mcpCmd.Flags().IntVar(&mcpPort, "port", 0, "Port for streamable-http (default: from config or 8765)")
	mcpCmd.Flags().IntVar(&mcpWidth, "width", 120, "Width of the headless desktop")
	mcpCmd.Flags().IntVar(&mcpHeight, "height", 40, "Height of the headless desktop")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage Winnux configuration",
		Long:  `Manage Winnux configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		Long:  `Print the path to the Winnux configuration file`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return printConfigPath()
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the Winnux configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi, nano, and emacs in that order.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return editConfigFile()
		},
	}

	var resetYes bool
	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the Winnux configuration file to default settings

This will overwrite your existing configuration after confirmation.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return resetConfigToDefaults(resetYes)
		},
	}
	configResetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Skip the confirmation prompt")

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd)

	appsCmd := &cobra.Command{
		Use:   "apps",
		Short: "Inspect the app catalog",
	}

	var appsYAML bool
	appsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List the apps Winnux can open",
		Long:  `Display every registered app with its kind, default size and desktop shortcut`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return listApps(appsYAML)
		},
	}
	appsListCmd.Flags().BoolVar(&appsYAML, "yaml", false, "Output as YAML")

	appsCmd.AddCommand(appsListCmd)

	keybindsCmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "View keybinding configuration",
		Long:    `View and inspect Winnux keybinding configuration`,
	}

	keybindsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all keybindings",
		Long:  `Display all configured keybindings in a formatted table`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return listKeybindings()
		},
	}

	keybindsCmd.AddCommand(keybindsListCmd)

	tapeCmd := &cobra.Command{
		Use:   "tape",
		Short: "Run and check automation scripts",
		Long: `Run .tape automation scripts against a live desktop

A script opens, moves and arranges windows, types into apps and pauses
between steps. Files ending in .yaml or .yml are read as step lists.`,
		Example: `  # Watch a script play
  winnux tape play demo.tape

  # Check a script without running it
  winnux tape validate demo.tape`,
	}

	tapePlayCmd := &cobra.Command{
		Use:   "play <file.tape>",
		Short: "Run a tape file on a live desktop",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runTapeInteractive(args[0])
		},
	}

	tapeValidateCmd := &cobra.Command{
		Use:   "validate <file.tape>",
		Short: "Validate a tape file without running it",
		Long:  `Check if a tape file is syntactically correct`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return validateTapeFile(args[0])
		},
	}

	tapeCmd.AddCommand(tapePlayCmd, tapeValidateCmd)

	rootCmd.AddCommand(sshCmd, webCmd, mcpCmd, configCmd, appsCmd, keybindsCmd, tapeCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}
