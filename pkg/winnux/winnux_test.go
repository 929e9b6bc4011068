package winnux

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"github.com/Gaurav-Gosain/winnux/internal/config"
	"github.com/Gaurav-Gosain/winnux/internal/window"
)

type fakePTY struct{ w, h int }

func (p fakePTY) Width() int  { return p.w }
func (p fakePTY) Height() int { return p.h }

func newTestModel(t *testing.T, opts ...Option) *Model {
	t.Helper()
	opts = append([]Option{WithUserConfig(config.DefaultConfig()), WithSize(120, 40)}, opts...)
	m := New(opts...)
	t.Cleanup(m.Cleanup)
	return m
}

func TestNewOpensApps(t *testing.T) {
	m := newTestModel(t, WithOpen("terminal", "Files", "calculator"))

	wins := m.Manager().Windows()
	if len(wins) != 2 {
		t.Fatalf("windows = %d, want 2", len(wins))
	}
	if wins[0].Kind != "terminal" || wins[1].Kind != "explorer" {
		t.Errorf("kinds = %s, %s", wins[0].Kind, wins[1].Kind)
	}

	var warned bool
	for _, msg := range m.LogMessages {
		if msg.Level == "WARN" && strings.Contains(msg.Message, "calculator") {
			warned = true
		}
	}
	if !warned {
		t.Error("unknown app not logged")
	}
}

func TestNewUsesConfiguredLayout(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Desktop.CascadeOriginX = 10
	cfg.Desktop.CascadeOriginY = 4
	cfg.Desktop.FirstZ = 100

	m := New(WithUserConfig(cfg), WithSize(120, 40), WithOpen("terminal"))
	t.Cleanup(m.Cleanup)

	w, ok := m.Manager().ActiveWindow()
	if !ok {
		t.Fatal("no active window")
	}
	if w.X != 10 || w.Y != 4 || w.Z != 100 {
		t.Errorf("window at (%d,%d) z=%d, want (10,4) z=100", w.X, w.Y, w.Z)
	}
}

func TestNewForPTY(t *testing.T) {
	m := NewForPTY(fakePTY{w: 90, h: 30}, WithUserConfig(config.DefaultConfig()))
	t.Cleanup(m.Cleanup)
	if m.Width != 90 || m.Height != 30 {
		t.Errorf("size = %dx%d, want 90x30", m.Width, m.Height)
	}
}

func TestMissingAssistantKeyFallsBack(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	var buf strings.Builder

	m := newTestModel(t, WithAssistant("gemini"), WithLogger(log.New(&buf)), WithOpen("terminal"))
	if m.Manager().Len() != 1 {
		t.Error("desktop not usable without an assistant")
	}
	if !strings.Contains(buf.String(), "Assistant unavailable") {
		t.Errorf("missing warning, log = %q", buf.String())
	}
}

func TestFilterMouseMotion(t *testing.T) {
	m := newTestModel(t, WithOpen("terminal"))
	motion := tea.MouseMotionMsg{X: 20, Y: 5, Button: tea.MouseLeft}

	if got := FilterMouseMotion(m, motion); got != nil {
		t.Error("motion passed without a drag")
	}
	click := tea.MouseClickMsg{X: 10, Y: 2, Button: tea.MouseLeft}
	if got := FilterMouseMotion(m, click); got == nil {
		t.Error("click filtered")
	}

	w, _ := m.Manager().ActiveWindow()
	m.Drag().Begin(w.ID, window.RegionTitleBar, false, 10, 2, w.X, w.Y)
	if got := FilterMouseMotion(m, motion); got == nil {
		t.Error("motion dropped during a drag")
	}
}

func TestProgramOptions(t *testing.T) {
	if got := len(ProgramOptions()); got != 2 {
		t.Errorf("options = %d, want 2", got)
	}
}
