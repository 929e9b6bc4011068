package main

import (
	"bufio"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"os/exec"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/Gaurav-Gosain/winnux/internal/apps"
	"github.com/Gaurav-Gosain/winnux/internal/config"
	"github.com/Gaurav-Gosain/winnux/internal/registry"
	"github.com/Gaurav-Gosain/winnux/internal/theme"
	"github.com/charmbracelet/colorprofile"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// stdout downsamples colors to what the terminal supports and strips them
// when output is redirected.
func stdout() io.Writer {
	return colorprofile.NewWriter(os.Stdout, os.Environ())
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) // #nosec G115 - fd fits in int
}

// newTable returns a table in the CLI style. Headers are highlighted and the
// first column uses the key color.
func newTable(headers ...string) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(theme.CLITableHeader()).Bold(true).Padding(0, 1)
	keyStyle := lipgloss.NewStyle().Foreground(theme.CLITableKey()).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.CLITableBorder())).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return keyStyle
			default:
				return cellStyle
			}
		})
}

// printRows writes a table on a terminal and tab-separated rows otherwise.
func printRows(w io.Writer, headers []string, rows [][]string) {
	if !isTerminal() {
		for _, row := range rows {
			_, _ = fmt.Fprintln(w, strings.Join(row, "\t"))
		}
		return
	}
	_, _ = fmt.Fprintln(w, newTable(headers...).Rows(rows...).Render())
}

func printConfigPath() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	fmt.Println(path)
	return nil
}

func editConfigFile() error {
	// creates the file on first run
	if _, err := config.LoadUserConfig(); err != nil {
		newLogger().Warn("Config has problems, opening it anyway", "err", err)
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	editor := findEditor()
	if editor == "" {
		return errors.New("no editor found, set $EDITOR")
	}

	// #nosec G204 - the editor comes from the user's environment
	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor failed: %w", err)
	}

	if _, err := config.LoadUserConfigFrom(path); err != nil {
		return fmt.Errorf("saved config is invalid: %w", err)
	}
	return nil
}

func findEditor() string {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if e := os.Getenv(env); e != "" {
			return e
		}
	}
	for _, e := range []string{"vim", "vi", "nano", "emacs"} {
		if p, err := exec.LookPath(e); err == nil {
			return p
		}
	}
	return ""
}

func resetConfigToDefaults(skipConfirm bool) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if !skipConfirm {
		fmt.Printf("Overwrite %s with defaults? [y/N] ", path)
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("Cancelled")
			return nil
		}
	}

	if err := config.WriteConfig(path, config.DefaultConfig()); err != nil {
		return fmt.Errorf("failed to reset config: %w", err)
	}
	fmt.Println("Configuration reset to defaults:", path)
	return nil
}

// appRow is one app in `apps list --yaml`.
type appRow struct {
	Kind     registry.AppKind `yaml:"kind"`
	Name     string           `yaml:"name"`
	Icon     string           `yaml:"icon"`
	Width    int              `yaml:"width"`
	Height   int              `yaml:"height"`
	Shortcut bool             `yaml:"desktop_shortcut"`
}

func appRows(reg *registry.Registry) []appRow {
	shortcuts := make(map[registry.AppKind]bool)
	for _, def := range reg.Desktop() {
		shortcuts[def.Kind] = true
	}
	var rows []appRow
	for _, def := range reg.All() {
		rows = append(rows, appRow{
			Kind:     def.Kind,
			Name:     def.Name,
			Icon:     def.IconASCII,
			Width:    def.DefaultWidth,
			Height:   def.DefaultHeight,
			Shortcut: shortcuts[def.Kind],
		})
	}
	return rows
}

func listApps(asYAML bool) error {
	rows := appRows(apps.NewRegistry(apps.Env{}))
	w := stdout()

	if asYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(map[string]any{"apps": rows}); err != nil {
			return fmt.Errorf("failed to encode apps: %w", err)
		}
		return enc.Close()
	}

	var cells [][]string
	for _, r := range rows {
		shortcut := ""
		if r.Shortcut {
			shortcut = "yes"
		}
		cells = append(cells, []string{
			string(r.Kind), r.Name, r.Icon,
			fmt.Sprintf("%dx%d", r.Width, r.Height),
			shortcut,
		})
	}
	printRows(w, []string{"Kind", "Name", "Icon", "Size", "Desktop"}, cells)
	return nil
}

func listKeybindings() error {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		newLogger().Warn("Failed to load config, showing defaults", "err", err)
		userConfig = config.DefaultConfig()
	}
	keys := config.NewKeybindRegistry(userConfig)

	w := stdout()
	title := lipgloss.NewStyle().Foreground(theme.CLITableHeader()).Bold(true)
	for i, section := range config.GetKeybindings(keys) {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		_, _ = fmt.Fprintln(w, title.Render(section.Title))
		var rows [][]string
		for _, b := range section.Bindings {
			rows = append(rows, []string{b.Key, b.Description})
		}
		printRows(w, []string{"Key", "Action"}, rows)
	}

	if conflicts := keys.Conflicts(); len(conflicts) > 0 {
		warn := lipgloss.NewStyle().Foreground(theme.NotificationWarning())
		_, _ = fmt.Fprintln(w)
		for _, c := range conflicts {
			_, _ = fmt.Fprintln(w, warn.Render("conflict: "+c))
		}
	}
	return nil
}

func listThemeNames() []string {
	return theme.Available()
}

func previewThemeColors(name string) error {
	if err := theme.Initialize(name); err != nil {
		return fmt.Errorf("failed to load theme: %w", err)
	}
	t := theme.Current()
	if t == nil {
		return fmt.Errorf("theme %q has no colors", name)
	}

	swatches := []struct {
		label string
		c     color.Color
	}{
		{"black", t.Black}, {"red", t.Red}, {"green", t.Green}, {"yellow", t.Yellow},
		{"blue", t.Blue}, {"purple", t.Purple}, {"cyan", t.Cyan}, {"white", t.White},
		{"bright black", t.BrightBlack}, {"bright red", t.BrightRed},
		{"bright green", t.BrightGreen}, {"bright yellow", t.BrightYellow},
		{"bright blue", t.BrightBlue}, {"bright purple", t.BrightPurple},
		{"bright cyan", t.BrightCyan}, {"bright white", t.BrightWhite},
	}

	w := stdout()
	dim := lipgloss.NewStyle().Foreground(theme.CLITableDim())
	_, _ = fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(t.ID))
	for _, s := range swatches {
		block := lipgloss.NewStyle().Background(s.c).Render("    ")
		_, _ = fmt.Fprintf(w, "%s %-14s %s\n", block, s.label, dim.Render(theme.ColorToString(s.c)))
	}
	return nil
}
