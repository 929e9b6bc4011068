package app

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/winnux/internal/apps"
	"github.com/Gaurav-Gosain/winnux/internal/config"
	"github.com/Gaurav-Gosain/winnux/internal/desktop"
	"github.com/Gaurav-Gosain/winnux/internal/registry"
	"github.com/Gaurav-Gosain/winnux/internal/tape"
	"github.com/Gaurav-Gosain/winnux/internal/window"
	"github.com/charmbracelet/x/ansi"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestDesktop(t *testing.T, opts Options) (*Desktop, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)}
	if opts.Width == 0 {
		opts.Width, opts.Height = 120, 40
	}
	if opts.Now == nil {
		opts.Now = clock.Now
	}
	n := 0
	opts.IDGenerator = func() string {
		n++
		return fmt.Sprintf("win-%d", n)
	}
	d := New(opts)
	t.Cleanup(d.Cleanup)
	return d, clock
}

func TestNewOpensRequestedApps(t *testing.T) {
	d, _ := newTestDesktop(t, Options{Open: []registry.AppKind{registry.KindTerminal, "calculator"}})

	if got := d.Manager().Len(); got != 1 {
		t.Fatalf("open windows = %d, want 1", got)
	}
	if _, ok := d.Content("win-1"); !ok {
		t.Error("terminal content missing")
	}
	last := d.LogMessages[len(d.LogMessages)-1]
	if last.Level != "WARN" || !strings.Contains(last.Message, "calculator") {
		t.Errorf("last log = %+v, want warning about calculator", last)
	}
}

func TestOpenAndCloseWindow(t *testing.T) {
	d, _ := newTestDesktop(t, Options{})

	w, _, ok := d.OpenApp(registry.KindExplorer)
	if !ok {
		t.Fatal("OpenApp(explorer) failed")
	}
	if w.Title != "Files" {
		t.Errorf("title = %q, want Files", w.Title)
	}
	if d.Manager().Active() != w.ID {
		t.Errorf("active = %q, want %q", d.Manager().Active(), w.ID)
	}
	if _, _, ok := d.OpenApp("calculator"); ok {
		t.Error("OpenApp(calculator) succeeded, want failure")
	}

	d.CloseWindow(w.ID)
	if _, ok := d.Content(w.ID); ok {
		t.Error("content kept after close")
	}
	if d.Manager().Len() != 0 {
		t.Errorf("windows = %d, want 0", d.Manager().Len())
	}

	// closing again is a no-op
	d.CloseWindow(w.ID)
}

func TestWindowOperationsCancelDrag(t *testing.T) {
	tests := []struct {
		name string
		op   func(d *Desktop, id string)
	}{
		{"close", func(d *Desktop, id string) { d.CloseWindow(id) }},
		{"minimize", func(d *Desktop, id string) { d.MinimizeWindow(id) }},
		{"maximize", func(d *Desktop, id string) { d.ToggleMaximizeWindow(id) }},
		{"resize", func(d *Desktop, _ string) { d.Resize(100, 30) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := newTestDesktop(t, Options{})
			w, _, _ := d.OpenApp(registry.KindTerminal)
			d.Drag().Begin(w.ID, window.RegionTitleBar, false, w.X+3, w.Y, w.X, w.Y)
			if !d.Drag().Active() {
				t.Fatal("drag did not start")
			}
			tt.op(d, w.ID)
			if d.Drag().Active() {
				t.Errorf("drag still active after %s", tt.name)
			}
		})
	}
}

func TestMoveActiveBy(t *testing.T) {
	d, _ := newTestDesktop(t, Options{})
	w, _, _ := d.OpenApp(registry.KindTerminal)

	d.MoveActiveBy(3, -1)
	got, _ := d.Manager().Get(w.ID)
	if got.X != w.X+3 || got.Y != w.Y-1 {
		t.Errorf("position = (%d,%d), want (%d,%d)", got.X, got.Y, w.X+3, w.Y-1)
	}

	d.ToggleMaximizeWindow(w.ID)
	d.MoveActiveBy(5, 5)
	after, _ := d.Manager().Get(w.ID)
	if after.X != got.X || after.Y != got.Y {
		t.Error("maximized window moved")
	}
}

func TestContentMessagesReachOnlyTheirWindow(t *testing.T) {
	d, _ := newTestDesktop(t, Options{})
	a, _, _ := d.OpenApp(registry.KindExplorer)
	b, _, _ := d.OpenApp(registry.KindExplorer)

	d.Update(apps.Msg{WindowID: a.ID, Inner: tea.KeyPressMsg{Code: tea.KeyDown}})

	ca, _ := d.Content(a.ID)
	cb, _ := d.Content(b.ID)
	if got := ca.(*apps.Explorer).Selected(); got != 1 {
		t.Errorf("window a selected = %d, want 1", got)
	}
	if got := cb.(*apps.Explorer).Selected(); got != 0 {
		t.Errorf("window b selected = %d, want 0", got)
	}

	d.CloseWindow(a.ID)
	_, cmd := d.Update(apps.Msg{WindowID: a.ID, Inner: tea.KeyPressMsg{Code: tea.KeyDown}})
	if cmd != nil {
		t.Error("message for closed window produced a command")
	}
	if _, ok := d.Content(a.ID); ok {
		t.Error("closed window content came back")
	}
}

func TestSendToActiveWithoutWindows(t *testing.T) {
	d, _ := newTestDesktop(t, Options{})
	if cmd := d.SendToActive(tea.KeyPressMsg{Code: 'a', Text: "a"}); cmd != nil {
		t.Error("SendToActive with no windows returned a command")
	}
}

func TestTaskbarClick(t *testing.T) {
	d, _ := newTestDesktop(t, Options{})

	d.TaskbarClick(registry.KindTerminal)
	if d.Manager().Len() != 1 {
		t.Fatalf("windows = %d, want 1 after first click", d.Manager().Len())
	}
	term, _ := d.Manager().ActiveWindow()

	d.OpenApp(registry.KindExplorer)
	d.TaskbarClick(registry.KindTerminal)
	if d.Manager().Len() != 2 {
		t.Errorf("windows = %d, want 2: running app should be focused, not reopened", d.Manager().Len())
	}
	if d.Manager().Active() != term.ID {
		t.Errorf("active = %q, want terminal %q", d.Manager().Active(), term.ID)
	}
}

func TestIconDoubleClick(t *testing.T) {
	tests := []struct {
		name     string
		gap      time.Duration
		second   int
		wantOpen int
	}{
		{"double click opens", 200 * time.Millisecond, 0, 1},
		{"slow clicks select", 2 * time.Second, 0, 0},
		{"different icons select", 100 * time.Millisecond, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, clock := newTestDesktop(t, Options{DoubleClick: 500 * time.Millisecond})
			d.ClickIcon(0)
			if d.SelectedIcon() != 0 {
				t.Fatalf("selected = %d, want 0", d.SelectedIcon())
			}
			clock.Advance(tt.gap)
			d.ClickIcon(tt.second)

			if got := d.Manager().Len(); got != tt.wantOpen {
				t.Errorf("windows = %d, want %d", got, tt.wantOpen)
			}
			if d.SelectedIcon() != tt.second {
				t.Errorf("selected = %d, want %d", d.SelectedIcon(), tt.second)
			}
		})
	}
}

func TestIconTripleClickOpensOnce(t *testing.T) {
	d, clock := newTestDesktop(t, Options{DoubleClick: time.Second})
	for range 3 {
		d.ClickIcon(0)
		clock.Advance(100 * time.Millisecond)
	}
	if got := d.Manager().Len(); got != 1 {
		t.Errorf("windows = %d, want 1", got)
	}
}

func TestIconAt(t *testing.T) {
	d, _ := newTestDesktop(t, Options{})
	r := IconRect(1)
	if i, ok := d.IconAt(r.X, r.Y); !ok || i != 1 {
		t.Errorf("IconAt(icon 1 origin) = %d, %v", i, ok)
	}
	if _, ok := d.IconAt(r.X+r.Width, r.Y); ok {
		t.Error("IconAt right of icon hit")
	}
	d.ClickIcon(1)
	d.ClearIconSelection()
	if d.SelectedIcon() != -1 {
		t.Errorf("selected = %d after clear, want -1", d.SelectedIcon())
	}
}

func TestWindowAtPrefersTopmost(t *testing.T) {
	d, _ := newTestDesktop(t, Options{})
	a, _, _ := d.OpenApp(registry.KindTerminal)
	b, _, _ := d.OpenApp(registry.KindTerminal)

	// the cascade makes b overlap a at b's origin
	if w, _, ok := d.WindowAt(b.X, b.Y); !ok || w.ID != b.ID {
		t.Errorf("WindowAt(b origin) = %q, want %q", w.ID, b.ID)
	}
	if w, _, ok := d.WindowAt(a.X, a.Y); !ok || w.ID != a.ID {
		t.Errorf("WindowAt(a origin) = %q, want %q", w.ID, a.ID)
	}
	d.MinimizeWindow(b.ID)
	if w, _, _ := d.WindowAt(b.X, b.Y); w.ID != a.ID {
		t.Errorf("minimized window still hit: got %q", w.ID)
	}
	if _, _, ok := d.WindowAt(0, 0); ok {
		t.Error("WindowAt(0,0) hit a window")
	}
}

func TestLogRingIsCapped(t *testing.T) {
	d, _ := newTestDesktop(t, Options{})
	for i := range config.MaxLogMessages + 10 {
		d.LogInfo("entry %d", i)
	}
	if len(d.LogMessages) != config.MaxLogMessages {
		t.Fatalf("log length = %d, want %d", len(d.LogMessages), config.MaxLogMessages)
	}
	want := fmt.Sprintf("entry %d", config.MaxLogMessages+9)
	if got := d.LogMessages[len(d.LogMessages)-1].Message; got != want {
		t.Errorf("newest = %q, want %q", got, want)
	}
}

func TestLogScrolling(t *testing.T) {
	d, _ := newTestDesktop(t, Options{})
	for i := range 50 {
		d.LogInfo("entry %d", i)
	}
	d.ToggleLogs()
	if d.LogScrollOffset != d.maxLogScroll() {
		t.Errorf("offset = %d, want bottom %d", d.LogScrollOffset, d.maxLogScroll())
	}
	d.ScrollLogs(-1000)
	if d.LogScrollOffset != 0 {
		t.Errorf("offset = %d, want 0", d.LogScrollOffset)
	}
	d.ScrollLogs(1000)
	if d.LogScrollOffset != d.maxLogScroll() {
		t.Errorf("offset = %d, want %d", d.LogScrollOffset, d.maxLogScroll())
	}
}

func TestNotificationsExpire(t *testing.T) {
	d, clock := newTestDesktop(t, Options{})
	d.ShowNotification("first", "info", 2*time.Second)
	clock.Advance(time.Second)
	d.ShowNotification("second", "error", 2*time.Second)

	clock.Advance(1500 * time.Millisecond)
	d.CleanupNotifications()
	if len(d.Notifications) != 1 || d.Notifications[0].Message != "second" {
		t.Fatalf("notifications = %+v, want only second", d.Notifications)
	}

	var sawError bool
	for _, m := range d.LogMessages {
		if m.Level == "ERROR" && m.Message == "second" {
			sawError = true
		}
	}
	if !sawError {
		t.Error("error notification was not logged")
	}

	clock.Advance(time.Second)
	d.CleanupNotifications()
	if len(d.Notifications) != 0 {
		t.Errorf("notifications = %d, want 0", len(d.Notifications))
	}
}

// runScript plays commands to completion. Commands queued for window
// content are not run, so cursor blink ticks never block the test.
func runScript(t *testing.T, d *Desktop, commands []tape.Command) tape.FinishedMsg {
	t.Helper()
	d.PlayScript(commands)
	for range 100 {
		if d.script == nil {
			t.Fatal("script cleared before finishing")
		}
		if fin, ok := d.script.Step(d.scriptExec)().(tape.FinishedMsg); ok {
			d.Update(fin)
			return fin
		}
	}
	t.Fatal("script did not finish")
	return tape.FinishedMsg{}
}

func TestPlayScript(t *testing.T) {
	d, _ := newTestDesktop(t, Options{})
	commands, err := tape.Parse(strings.Join([]string{
		"Open terminal",
		"Open Files",
		"Move Files 30 6",
		"Minimize Terminal",
		"Notify \"all set\"",
	}, "\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	fin := runScript(t, d, commands)
	if len(fin.Errors) != 0 {
		t.Fatalf("script errors: %v", fin.Errors)
	}
	if d.ScriptRunning() {
		t.Error("script still running after finish")
	}

	files, err := d.Manager().Resolve("Files")
	if err != nil {
		t.Fatalf("Resolve(Files): %v", err)
	}
	if files.X != 30 || files.Y != 6 {
		t.Errorf("Files at (%d,%d), want (30,6)", files.X, files.Y)
	}
	term, _ := d.Manager().Resolve("Terminal")
	if !term.Minimized {
		t.Error("terminal not minimized")
	}
	if len(d.Notifications) != 1 || d.Notifications[0].Message != "all set" {
		t.Errorf("notifications = %+v", d.Notifications)
	}
}

func TestPlayScriptCollectsErrors(t *testing.T) {
	d, _ := newTestDesktop(t, Options{})
	commands := []tape.Command{
		{Type: tape.CommandTypeClose, Args: []string{"Nothing"}, Line: 1},
		{Type: tape.CommandTypeOpen, Args: []string{"calculator"}, Line: 2},
		{Type: tape.CommandTypeType, Args: []string{"ls"}, Line: 3},
		{Type: tape.CommandTypeOpen, Args: []string{"editor"}, Line: 4},
	}

	fin := runScript(t, d, commands)
	if len(fin.Errors) != 3 {
		t.Fatalf("errors = %v, want 3", fin.Errors)
	}
	if !errors.Is(fin.Errors[0], desktop.ErrWindowNotFound) {
		t.Errorf("first error = %v, want ErrWindowNotFound", fin.Errors[0])
	}
	if d.Manager().Len() != 1 {
		t.Errorf("windows = %d, want the editor only", d.Manager().Len())
	}
	if len(d.Notifications) == 0 || d.Notifications[len(d.Notifications)-1].Type != "warning" {
		t.Error("no warning notification after failed script")
	}
}

func TestStaleScriptStepIgnored(t *testing.T) {
	d, _ := newTestDesktop(t, Options{})
	stale := d.PlayScript([]tape.Command{{Type: tape.CommandTypeOpen, Args: []string{"terminal"}, Line: 1}})()
	current := d.PlayScript([]tape.Command{{Type: tape.CommandTypeOpen, Args: []string{"editor"}, Line: 1}})()

	if _, cmd := d.Update(stale); cmd != nil {
		t.Error("stale step produced a command")
	}
	if d.Manager().Len() != 0 {
		t.Fatalf("stale step ran %d commands", d.Manager().Len())
	}

	_, cmd := d.Update(current)
	if cmd == nil {
		t.Fatal("current step produced no command")
	}
	fin, ok := cmd().(tape.FinishedMsg)
	if !ok {
		t.Fatalf("step returned %T, want FinishedMsg", cmd())
	}
	d.Update(fin)
	if w, _ := d.Manager().ActiveWindow(); w.Kind != registry.KindEditor {
		t.Errorf("active kind = %q, want editor", w.Kind)
	}
	if d.ScriptRunning() {
		t.Error("script still running")
	}
}

func TestScriptTypesIntoTerminal(t *testing.T) {
	d, _ := newTestDesktop(t, Options{})
	fin := runScript(t, d, []tape.Command{
		{Type: tape.CommandTypeOpen, Args: []string{"terminal"}, Line: 1},
		{Type: tape.CommandTypeType, Args: []string{"help"}, Line: 2},
		{Type: tape.CommandTypeEnter, Line: 3},
	})
	if len(fin.Errors) != 0 {
		t.Fatalf("errors: %v", fin.Errors)
	}
	w, _ := d.Manager().ActiveWindow()
	c, _ := d.Content(w.ID)
	if view := c.View(60, 16); !strings.Contains(view, "help") {
		t.Errorf("terminal view does not show typed command:\n%s", view)
	}
}

func withASCII(t *testing.T) {
	t.Helper()
	prevASCII, prevPos := config.UseASCIIOnly, config.TaskbarPosition
	config.UseASCIIOnly = true
	t.Cleanup(func() {
		config.UseASCIIOnly = prevASCII
		config.TaskbarPosition = prevPos
	})
}

func TestRender(t *testing.T) {
	withASCII(t)
	d, _ := newTestDesktop(t, Options{Width: 100, Height: 30})
	d.OpenApp(registry.KindExplorer)
	d.OpenApp(registry.KindSettings)

	out := ansi.Strip(d.Render())
	for _, want := range []string{"Files", "Settings", "Start", "Terminal"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
	lines := strings.Split(out, "\n")
	if len(lines) != 30 {
		t.Errorf("render has %d lines, want 30", len(lines))
	}
	if !strings.Contains(lines[len(lines)-1], "Start") && !strings.Contains(lines[len(lines)-2], "Start") {
		t.Error("taskbar not at the bottom")
	}
}

func TestRenderTaskbarTop(t *testing.T) {
	withASCII(t)
	config.TaskbarPosition = "top"
	d, _ := newTestDesktop(t, Options{Width: 80, Height: 24})

	lines := strings.Split(ansi.Strip(d.Render()), "\n")
	var top string
	for _, l := range lines[:config.TaskbarHeight] {
		top += l
	}
	if !strings.Contains(top, "Start") {
		t.Errorf("taskbar not at the top:\n%s", top)
	}
	if x, y := d.ToDesktop(5, config.TaskbarHeight); x != 5 || y != 0 {
		t.Errorf("ToDesktop = (%d,%d), want (5,0)", x, y)
	}
	if !d.OnTaskbar(0) || d.OnTaskbar(config.TaskbarHeight) {
		t.Error("OnTaskbar disagrees with top position")
	}
}

func TestRenderMinimizedAndTinyScreen(t *testing.T) {
	withASCII(t)
	d, _ := newTestDesktop(t, Options{Width: 100, Height: 30})
	w, _, _ := d.OpenApp(registry.KindEditor)
	d.MinimizeWindow(w.ID)
	if out := ansi.Strip(d.GetCanvas().Render()); strings.Contains(out, "Placeholder for Editor") {
		t.Error("minimized window drawn")
	}

	d.Resize(10, config.TaskbarHeight)
	if out := d.Render(); out != "" {
		t.Errorf("render on tiny screen = %q, want empty", out)
	}
}

func TestRenderClipsOffscreenWindow(t *testing.T) {
	withASCII(t)
	d, _ := newTestDesktop(t, Options{Width: 80, Height: 24})
	w, _, _ := d.OpenApp(registry.KindEditor)
	d.MoveWindow(w.ID, 70, 20)

	lines := strings.Split(ansi.Strip(d.GetCanvas().Render()), "\n")
	for i, l := range lines {
		if width := ansi.StringWidth(l); width > 80 {
			t.Errorf("line %d width %d exceeds screen", i, width)
		}
	}
}

func TestClipWindowContent(t *testing.T) {
	content := "abcd\nefgh\nijkl"
	tests := []struct {
		name         string
		x, y         int
		want         string
		wantX, wantY int
	}{
		{"inside", 1, 1, content, 1, 1},
		{"left", -2, 0, "cd\ngh\nkl", 0, 0},
		{"top", 0, -1, "efgh\nijkl", 0, 0},
		{"right and bottom", 8, 8, "ab\nef", 8, 8},
		{"off screen", 20, 0, "", 20, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, x, y := clipWindowContent(content, tt.x, tt.y, 10, 10)
			if got != tt.want || x != tt.wantX || y != tt.wantY {
				t.Errorf("clip = %q (%d,%d), want %q (%d,%d)", got, x, y, tt.want, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestViewModes(t *testing.T) {
	d, _ := newTestDesktop(t, Options{})
	v := d.View()
	if !v.AltScreen || v.MouseMode != tea.MouseModeCellMotion || !v.ReportFocus {
		t.Errorf("view = %+v", v)
	}
}
