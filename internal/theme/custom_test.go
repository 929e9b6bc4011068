package theme

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"
)

func writeTheme(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCustomThemeFile(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		body        string
		wantID      string
		wantDisplay string
		wantErr     bool
	}{
		{
			name:        "explicit id and name",
			file:        "whatever.json",
			body:        `{"id": "winnux-night", "display_name": "Winnux Night", "dark": true, "fg": "#d4d4d4", "bg": "#1e1e2e"}`,
			wantID:      "winnux-night",
			wantDisplay: "Winnux Night",
		},
		{
			name:        "id from filename",
			file:        "Azure-Dawn.json",
			body:        `{"fg": "#ffffff", "bg": "#000000"}`,
			wantID:      "azure-dawn",
			wantDisplay: "azure-dawn",
		},
		{
			name:    "invalid json",
			file:    "bad.json",
			body:    "not valid json{{{",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTheme(t, t.TempDir(), tt.file, tt.body)
			got, err := LoadCustomThemeFile(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadCustomThemeFile failed: %v", err)
			}
			if got.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", got.ID, tt.wantID)
			}
			if got.DisplayName != tt.wantDisplay {
				t.Errorf("DisplayName = %q, want %q", got.DisplayName, tt.wantDisplay)
			}
		})
	}
}

func TestFillDefaultsDerivesFromBase(t *testing.T) {
	th := &tint.Tint{Fg: tint.FromHex("#c0c0c0"), Black: tint.FromHex("#101010")}
	fillDefaults(th)

	all := map[string]*tint.Color{
		"Fg": th.Fg, "Bg": th.Bg, "Cursor": th.Cursor,
		"Black": th.Black, "Red": th.Red, "Green": th.Green, "Yellow": th.Yellow,
		"Blue": th.Blue, "Purple": th.Purple, "Cyan": th.Cyan, "White": th.White,
		"BrightBlack": th.BrightBlack, "BrightRed": th.BrightRed, "BrightGreen": th.BrightGreen,
		"BrightYellow": th.BrightYellow, "BrightBlue": th.BrightBlue, "BrightPurple": th.BrightPurple,
		"BrightCyan": th.BrightCyan, "BrightWhite": th.BrightWhite,
	}
	for name, c := range all {
		if c == nil {
			t.Errorf("%s should be filled", name)
		}
	}

	if *th.Cursor != *th.Fg {
		t.Error("Cursor should default to Fg")
	}
	if th.Cursor == th.Fg {
		t.Error("Cursor should be a copy, not the same pointer")
	}
	if *th.BrightBlack != *th.Black {
		t.Error("BrightBlack should default to Black")
	}
}

func TestLoadCustomThemesSkipsNonJSON(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"readme.txt", "notes.md", ".hidden"} {
		writeTheme(t, dir, name, "not a theme")
	}
	writeTheme(t, dir, "broken.json", "{")

	loaded, err := LoadCustomThemes(dir)
	if err != nil {
		t.Fatalf("LoadCustomThemes should not error: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("expected 0 loaded themes, got %v", loaded)
	}
}

func TestLoadCustomThemesRegisters(t *testing.T) {
	dir := t.TempDir()
	writeTheme(t, dir, "winnux-registration-test.JSON", `{"fg": "#ffffff", "bg": "#000000"}`)

	tint.NewDefaultRegistry()
	loaded, err := LoadCustomThemes(dir)
	if err != nil {
		t.Fatalf("LoadCustomThemes failed: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("expected 1 loaded theme, got %d", len(loaded))
	}
	if !slices.Contains(tint.TintIDs(), "winnux-registration-test") {
		t.Error("custom theme not found in TintIDs()")
	}
}

func TestSetEmptyDisablesTheming(t *testing.T) {
	if !Set("") {
		t.Fatal("Set(\"\") should succeed")
	}
	if IsEnabled() {
		t.Error("theming should be disabled")
	}
	if Current() != nil {
		t.Error("Current should be nil when disabled")
	}
	if Name() != "" {
		t.Errorf("Name = %q, want empty", Name())
	}
	if ColorToString(DesktopBg()) != "#0b1e3a" {
		t.Errorf("fallback desktop background = %s", ColorToString(DesktopBg()))
	}
}

func TestColorToString(t *testing.T) {
	if got := ColorToString(nil); got != "#000000" {
		t.Errorf("ColorToString(nil) = %s", got)
	}
	if got := ColorToString(lipgloss.Color("#ff8000")); got != "#ff8000" {
		t.Errorf("ColorToString = %s, want #ff8000", got)
	}
}
