package window

import (
	"strings"
	"testing"

	"github.com/Gaurav-Gosain/winnux/internal/config"
	"github.com/Gaurav-Gosain/winnux/internal/desktop"
	"github.com/charmbracelet/x/ansi"
)

func TestHitTest(t *testing.T) {
	rect := desktop.Rect{X: 10, Y: 5, Width: 30, Height: 10}
	// right corner at x=39; close 36..38, maximize 33..35, minimize 30..32
	tests := []struct {
		name string
		x, y int
		want Region
	}{
		{"outside left", 9, 5, RegionNone},
		{"outside below", 20, 15, RegionNone},
		{"title start", 10, 5, RegionTitleBar},
		{"title middle", 20, 5, RegionTitleBar},
		{"just before minimize", 29, 5, RegionTitleBar},
		{"minimize", 30, 5, RegionMinimize},
		{"minimize end", 32, 5, RegionMinimize},
		{"maximize", 34, 5, RegionMaximize},
		{"close", 36, 5, RegionClose},
		{"close end", 38, 5, RegionClose},
		{"title right corner", 39, 5, RegionTitleBar},
		{"body", 20, 6, RegionBody},
		{"bottom border", 20, 14, RegionBody},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HitTest(rect, tt.x, tt.y); got != tt.want {
				t.Errorf("HitTest(%d,%d) = %s, want %s", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestHitTestHiddenButtons(t *testing.T) {
	t.Cleanup(func() { config.HideWindowButtons = false })
	config.HideWindowButtons = true

	rect := desktop.Rect{X: 0, Y: 0, Width: 30, Height: 10}
	if got := HitTest(rect, 27, 0); got != RegionTitleBar {
		t.Errorf("hidden close button should be title bar, got %s", got)
	}
}

func TestHitTestUsesMinimumSize(t *testing.T) {
	rect := desktop.Rect{X: 0, Y: 0, Width: 2, Height: 1}
	if got := HitTest(rect, config.MinWindowWidth-1, config.MinWindowHeight-1); got != RegionBody {
		t.Errorf("clamped window should cover minimum area, got %s", got)
	}
}

func TestContentRect(t *testing.T) {
	got := ContentRect(desktop.Rect{X: 4, Y: 2, Width: 60, Height: 18})
	want := desktop.Rect{X: 5, Y: 3, Width: 58, Height: 16}
	if got != want {
		t.Errorf("ContentRect = %+v, want %+v", got, want)
	}
}

func TestDragStateMachine(t *testing.T) {
	var d Drag
	if d.State() != Idle {
		t.Fatal("zero value should be Idle")
	}
	if _, _, _, ok := d.Motion(5, 5); ok {
		t.Error("Motion while Idle should be ignored")
	}

	if d.Begin("w1", RegionBody, false, 12, 7, 10, 5) {
		t.Error("body press must not start a drag")
	}
	if d.Begin("w1", RegionClose, false, 12, 5, 10, 5) {
		t.Error("control press must not start a drag")
	}
	if d.Begin("w1", RegionTitleBar, true, 12, 5, 10, 5) {
		t.Error("maximized window must not start a drag")
	}
	if d.Active() {
		t.Fatal("still Idle after rejected Begin calls")
	}

	if !d.Begin("w1", RegionTitleBar, false, 15, 5, 10, 5) {
		t.Fatal("title bar press should start a drag")
	}
	id, x, y, ok := d.Motion(40, 20)
	if !ok || id != "w1" || x != 35 || y != 20 {
		t.Errorf("Motion = (%s,%d,%d,%v), want (w1,35,20,true)", id, x, y, ok)
	}

	// no clamping: the window may leave the viewport
	_, x, y, _ = d.Motion(-3, -8)
	if x != -8 || y != -8 {
		t.Errorf("Motion off-screen = (%d,%d), want (-8,-8)", x, y)
	}

	d.End()
	if d.Active() || d.WindowID() != "" {
		t.Error("End should return to Idle")
	}
	if _, _, _, ok := d.Motion(1, 1); ok {
		t.Error("Motion after End should be ignored")
	}
}

func TestDragCancel(t *testing.T) {
	var d Drag
	d.Cancel()
	if d.Active() {
		t.Error("Cancel from Idle stays Idle")
	}

	d.Begin("w1", RegionTitleBar, false, 1, 1, 0, 0)
	d.CancelFor("w2")
	if !d.Active() {
		t.Error("CancelFor another window should not cancel")
	}
	d.CancelFor("w1")
	if d.Active() {
		t.Error("CancelFor dragged window should cancel")
	}
}

func TestChromeRenderSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantW, wantH  int
	}{
		{"normal", 40, 12, 40, 12},
		{"below minimum", 3, 2, config.MinWindowWidth, config.MinWindowHeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Chrome{Title: "Terminal", Width: tt.width, Height: tt.height, Focused: true}
			out := c.Render("line one\nline two is very long " + strings.Repeat("x", 80) + "\n")
			lines := strings.Split(out, "\n")
			if len(lines) != tt.wantH {
				t.Fatalf("rendered %d lines, want %d", len(lines), tt.wantH)
			}
			for i, l := range lines {
				if w := ansi.StringWidth(l); w != tt.wantW {
					t.Errorf("line %d width = %d, want %d: %q", i, w, tt.wantW, ansi.Strip(l))
				}
			}
		})
	}
}

func TestChromeTitleAndButtons(t *testing.T) {
	t.Cleanup(func() {
		config.UseASCIIOnly = false
		config.HideWindowButtons = false
	})
	config.UseASCIIOnly = true

	top := func(c Chrome) string {
		return ansi.Strip(strings.Split(c.Render(""), "\n")[0])
	}

	normal := top(Chrome{Title: "Files", Width: 40, Height: 8})
	if !strings.Contains(normal, "Files") || !strings.Contains(normal, "[_][ ][x]") {
		t.Errorf("title bar = %q", normal)
	}
	if !strings.HasSuffix(normal, "[_][ ][x]+") {
		t.Errorf("buttons should sit just inside the corner: %q", normal)
	}

	maxed := top(Chrome{Title: "Files", Width: 40, Height: 8, Maximized: true})
	if !strings.Contains(maxed, "[=]") {
		t.Errorf("maximized title bar should show restore: %q", maxed)
	}

	config.HideWindowButtons = true
	hidden := top(Chrome{Title: "Files", Width: 40, Height: 8})
	if strings.Contains(hidden, "[x]") {
		t.Errorf("buttons should be hidden: %q", hidden)
	}

	long := top(Chrome{Title: strings.Repeat("VeryLongTitle", 10), Width: 30, Height: 8})
	if !strings.Contains(long, "…") {
		t.Errorf("long title should be truncated: %q", long)
	}
}

func TestChromeClipsContent(t *testing.T) {
	c := Chrome{Title: "Editor", Width: 20, Height: 5}
	out := strings.Split(ansi.Strip(c.Render("a\nb\nc\nd\ne")), "\n")
	// 3 inner rows: a, b, c
	if !strings.Contains(out[3], "c") || strings.Contains(out[4], "d") {
		t.Errorf("content not clipped to inner height: %q", out)
	}
}
