package input

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/winnux/internal/app"
	"github.com/Gaurav-Gosain/winnux/internal/apps"
	"github.com/Gaurav-Gosain/winnux/internal/config"
	"github.com/Gaurav-Gosain/winnux/internal/registry"
)

var (
	keyCtrlW  = tea.KeyPressMsg{Code: 'w', Mod: tea.ModCtrl}
	keyCtrlN  = tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl}
	keyCtrlF  = tea.KeyPressMsg{Code: 'f', Mod: tea.ModCtrl}
	keyCtrlQ  = tea.KeyPressMsg{Code: 'q', Mod: tea.ModCtrl}
	keyF1     = tea.KeyPressMsg{Code: tea.KeyF1}
	keyF2     = tea.KeyPressMsg{Code: tea.KeyF2}
	keyF12    = tea.KeyPressMsg{Code: tea.KeyF12}
	keyEsc    = tea.KeyPressMsg{Code: tea.KeyEscape}
	keyEnter  = tea.KeyPressMsg{Code: tea.KeyEnter}
	keyDown   = tea.KeyPressMsg{Code: tea.KeyDown}
	keyAltLft = tea.KeyPressMsg{Code: tea.KeyLeft, Mod: tea.ModAlt}
)

func press(d *app.Desktop, msg tea.KeyPressMsg) tea.Cmd {
	_, cmd := HandleInput(msg, d)
	return cmd
}

func TestEveryDefaultBindingHasHandler(t *testing.T) {
	for action := range config.DefaultKeybindings() {
		if !GetDispatcher().HasAction(action) {
			t.Errorf("no handler for %q", action)
		}
	}
}

func TestWindowBindings(t *testing.T) {
	tests := []struct {
		name  string
		key   tea.KeyPressMsg
		check func(t *testing.T, d *app.Desktop)
	}{
		{"close", keyCtrlW, func(t *testing.T, d *app.Desktop) {
			if d.Manager().Len() != 1 {
				t.Errorf("windows = %d, want 1", d.Manager().Len())
			}
			if _, ok := d.Content("win-2"); ok {
				t.Error("closed window content kept")
			}
		}},
		{"minimize", keyCtrlN, func(t *testing.T, d *app.Desktop) {
			if !mustGet(t, d, "win-2").Minimized || d.Manager().Active() != "" {
				t.Error("active window not minimized")
			}
		}},
		{"maximize", keyCtrlF, func(t *testing.T, d *app.Desktop) {
			if !mustGet(t, d, "win-2").Maximized {
				t.Error("active window not maximized")
			}
		}},
		{"cycle", keyF2, func(t *testing.T, d *app.Desktop) {
			if d.Manager().Active() != "win-1" {
				t.Errorf("active = %q, want win-1", d.Manager().Active())
			}
		}},
		{"move", keyAltLft, func(t *testing.T, d *app.Desktop) {
			if w := mustGet(t, d, "win-2"); w.X != 5 {
				t.Errorf("x = %d, want 5", w.X)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDesktop(t, registry.KindTerminal, registry.KindExplorer)
			press(d, tt.key)
			tt.check(t, d)
		})
	}
}

func TestBindingsWithoutWindows(t *testing.T) {
	d := newTestDesktop(t)
	for _, k := range []tea.KeyPressMsg{keyCtrlW, keyCtrlN, keyCtrlF, keyF2, keyAltLft, keyDown} {
		if cmd := press(d, k); cmd != nil {
			t.Errorf("%s with no windows returned a command", k)
		}
	}
}

func TestMoveSuppressedWhileMaximized(t *testing.T) {
	d := newTestDesktop(t, registry.KindTerminal)
	press(d, keyCtrlF)
	press(d, keyAltLft)
	if w := mustGet(t, d, "win-1"); w.X != 4 {
		t.Errorf("x = %d, want 4", w.X)
	}
}

func TestKeysReachActiveContent(t *testing.T) {
	d := newTestDesktop(t, registry.KindExplorer, registry.KindExplorer)
	press(d, keyDown)

	active, _ := d.Content("win-2")
	other, _ := d.Content("win-1")
	if got := active.(*apps.Explorer).Selected(); got != 1 {
		t.Errorf("active selection = %d, want 1", got)
	}
	if got := other.(*apps.Explorer).Selected(); got != 0 {
		t.Errorf("inactive selection = %d, want 0", got)
	}
}

func TestStartMenuKeys(t *testing.T) {
	t.Run("toggle", func(t *testing.T) {
		d := newTestDesktop(t)
		press(d, keyF1)
		if !d.StartMenu().IsOpen() {
			t.Fatal("f1 did not open the menu")
		}
		press(d, keyF1)
		if d.StartMenu().IsOpen() {
			t.Error("f1 did not close the menu")
		}
	})

	t.Run("typing filters and enter opens", func(t *testing.T) {
		d := newTestDesktop(t, registry.KindTerminal)
		press(d, keyF1)
		for _, r := range "set" {
			press(d, tea.KeyPressMsg{Code: r, Text: string(r)})
		}
		if got := d.StartMenu().Query(); got != "set" {
			t.Fatalf("query = %q, want set", got)
		}
		press(d, keyEnter)
		w, _ := d.Manager().ActiveWindow()
		if w.Kind != registry.KindSettings {
			t.Errorf("opened %q, want settings", w.Kind)
		}
		if d.StartMenu().IsOpen() {
			t.Error("menu still open")
		}
	})

	t.Run("menu swallows window bindings", func(t *testing.T) {
		d := newTestDesktop(t, registry.KindTerminal)
		press(d, keyF1)
		press(d, keyCtrlW)
		if d.Manager().Len() != 1 {
			t.Error("ctrl+w closed a window behind the menu")
		}
	})

	t.Run("esc dismisses", func(t *testing.T) {
		d := newTestDesktop(t)
		press(d, keyF1)
		press(d, keyEsc)
		if d.StartMenu().IsOpen() {
			t.Error("esc did not dismiss")
		}
	})

	t.Run("enter opens even when running", func(t *testing.T) {
		d := newTestDesktop(t, registry.KindTerminal)
		press(d, keyF1)
		press(d, keyEnter)
		if d.Manager().Len() != 2 {
			t.Errorf("windows = %d, want a second terminal", d.Manager().Len())
		}
	})
}

func TestLogViewerKeys(t *testing.T) {
	d := newTestDesktop(t, registry.KindExplorer)
	for i := range 80 {
		d.LogInfo("entry %d", i)
	}

	press(d, keyF12)
	if !d.ShowLogs {
		t.Fatal("f12 did not open the log viewer")
	}
	bottom := d.LogScrollOffset
	press(d, tea.KeyPressMsg{Code: 'k', Text: "k"})
	if d.LogScrollOffset != bottom-1 {
		t.Errorf("offset = %d, want %d", d.LogScrollOffset, bottom-1)
	}

	// keys do not leak to the window behind
	press(d, keyDown)
	c, _ := d.Content("win-1")
	if c.(*apps.Explorer).Selected() != 0 {
		t.Error("key reached the window behind the log viewer")
	}

	press(d, tea.KeyPressMsg{Code: 'q', Text: "q"})
	if d.ShowLogs {
		t.Error("q did not close the log viewer")
	}
}

func TestQuit(t *testing.T) {
	d := newTestDesktop(t)
	cmd := press(d, keyCtrlQ)
	if cmd == nil {
		t.Fatal("ctrl+q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+q did not quit")
	}
}
