package apps

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/winnux/internal/assistant"
	"github.com/Gaurav-Gosain/winnux/internal/registry"
	"github.com/Gaurav-Gosain/winnux/internal/theme"
	"github.com/charmbracelet/x/ansi"
)

// ShellPrompt precedes every command line.
const ShellPrompt = "winnux@user:~$"

// ShellFailure replaces the output when the assistant call fails.
const ShellFailure = "Error: Shell process terminated unexpectedly."

type termLine struct {
	command bool
	text    string
}

type shellResultMsg struct {
	output string
	err    error
}

// Terminal is the simulated shell.
type Terminal struct {
	id    string
	env   Env
	input textinput.Model
	lines []termLine
	busy  bool
}

// NewTerminal creates a terminal showing the welcome banner.
func NewTerminal(id string, env Env) *Terminal {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Focus()
	return &Terminal{
		id:    id,
		env:   env.withDefaults(),
		input: ti,
		lines: []termLine{
			{text: "Welcome to Winnux OS v" + Version + " (GNU/Linux)"},
			{text: `Type "help" for a list of commands.`},
		},
	}
}

// Init implements registry.Content.
func (t *Terminal) Init() tea.Cmd { return nil }

// Busy reports whether a command is still running.
func (t *Terminal) Busy() bool { return t.busy }

// Update implements registry.Content.
func (t *Terminal) Update(msg tea.Msg) (registry.Content, tea.Cmd) {
	switch msg := msg.(type) {
	case shellResultMsg:
		t.busy = false
		out := msg.output
		if msg.err != nil {
			out = ShellFailure
		}
		t.lines = append(t.lines, termLine{text: out})
		return t, t.input.Focus()

	case tea.KeyPressMsg:
		if t.busy {
			return t, nil
		}
		if msg.String() == "enter" {
			return t, t.submit()
		}
	}

	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return t, cmd
}

// submit runs the typed command. History is taken from the visible log
// before the new line is added, so clearing the screen also forgets it.
func (t *Terminal) submit() tea.Cmd {
	command := strings.TrimSpace(t.input.Value())
	if command == "" {
		return nil
	}
	t.input.Reset()

	history := assistant.LastN(t.commands(), assistant.HistoryLimit)
	t.lines = append(t.lines, termLine{command: true, text: command})

	if command == "clear" {
		t.lines = nil
		return nil
	}

	t.busy = true
	t.input.Blur()
	provider, timeout := t.env.Assistant, t.env.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		out, err := provider.Generate(ctx, assistant.Request{
			Mode:    assistant.ModeShell,
			Prompt:  command,
			History: history,
		})
		return shellResultMsg{output: out, err: err}
	}
}

func (t *Terminal) commands() []string {
	var out []string
	for _, l := range t.lines {
		if l.command {
			out = append(out, l.text)
		}
	}
	return out
}

// View implements registry.Content. The log is scrolled to the bottom.
func (t *Terminal) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	promptStyle := lipgloss.NewStyle().Foreground(theme.AccentFg()).Bold(true)
	outStyle := lipgloss.NewStyle().Foreground(theme.PromptFg())

	var rows []string
	for _, l := range t.lines {
		if l.command {
			rows = append(rows, promptStyle.Render(ShellPrompt)+" "+l.text)
			continue
		}
		for _, r := range strings.Split(ansi.Wrap(l.text, width, ""), "\n") {
			rows = append(rows, outStyle.Render(r))
		}
	}
	if t.busy {
		rows = append(rows, outStyle.Render("_"))
	}

	in := t.input
	in.SetWidth(max(width-ansi.StringWidth(ShellPrompt)-2, 1))
	rows = append(rows, promptStyle.Render(ShellPrompt)+" "+in.View())

	if len(rows) > height {
		rows = rows[len(rows)-height:]
	}
	return strings.Join(rows, "\n")
}
