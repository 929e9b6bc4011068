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

// BrowserURL is the only page the browser knows.
const BrowserURL = "winnux://assistant"

const (
	// NetworkError replaces a failed reply.
	NetworkError = "Network error."
	// EmptyReply replaces a blank reply.
	EmptyReply = "I'm having trouble connecting to the network."
)

// Role identifies who wrote a chat entry.
type Role string

const (
	RoleUser Role = "user"
	RoleAI   Role = "ai"
)

// ChatEntry is one message in the conversation.
type ChatEntry struct {
	Role Role
	Text string
}

type chatReplyMsg struct {
	text string
	err  error
}

// Browser is the assistant chat page.
type Browser struct {
	id      string
	env     Env
	input   textinput.Model
	history []ChatEntry
	loading bool
}

// NewBrowser creates a browser on the assistant landing page.
func NewBrowser(id string, env Env) *Browser {
	ti := textinput.New()
	ti.Placeholder = "How do I unzip a tar.gz file?"
	ti.Prompt = "> "
	ti.Focus()
	return &Browser{id: id, env: env.withDefaults(), input: ti}
}

// Init implements registry.Content.
func (b *Browser) Init() tea.Cmd { return nil }

// History returns the conversation so far.
func (b *Browser) History() []ChatEntry { return b.history }

// Loading reports whether a reply is pending.
func (b *Browser) Loading() bool { return b.loading }

// Update implements registry.Content.
func (b *Browser) Update(msg tea.Msg) (registry.Content, tea.Cmd) {
	switch msg := msg.(type) {
	case chatReplyMsg:
		b.loading = false
		text := msg.text
		switch {
		case msg.err != nil:
			text = NetworkError
		case strings.TrimSpace(text) == "":
			text = EmptyReply
		}
		b.history = append(b.history, ChatEntry{Role: RoleAI, Text: text})
		return b, nil

	case tea.KeyPressMsg:
		if msg.String() == "enter" {
			return b, b.submit()
		}
	}

	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	return b, cmd
}

func (b *Browser) submit() tea.Cmd {
	query := b.input.Value()
	if strings.TrimSpace(query) == "" {
		return nil
	}
	b.input.Reset()
	b.input.Placeholder = "Ask follow up..."
	b.history = append(b.history, ChatEntry{Role: RoleUser, Text: query})
	b.loading = true

	provider, timeout := b.env.Assistant, b.env.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		text, err := provider.Generate(ctx, assistant.Request{
			Mode:   assistant.ModeChat,
			Prompt: query,
			System: assistant.CopilotInstruction,
		})
		return chatReplyMsg{text: text, err: err}
	}
}

// View implements registry.Content.
func (b *Browser) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	bar := lipgloss.NewStyle().Foreground(theme.AccentFg()).Render("🔒 " + BrowserURL)
	if ansi.StringWidth(bar) > width {
		bar = ansi.Truncate(BrowserURL, width, "…")
	}

	in := b.input
	in.SetWidth(max(width-4, 1))

	if len(b.history) == 0 {
		title := lipgloss.NewStyle().Bold(true).Render("Winnux Copilot")
		desc := ansi.Wrap("Ask me anything about Linux commands, React code, or general knowledge.", width, "")
		body := lipgloss.JoinVertical(lipgloss.Center, "", title, desc, "", in.View())
		return bar + "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
	}

	userStyle := lipgloss.NewStyle().Foreground(theme.NotificationFg()).Background(theme.NotificationInfo())
	aiStyle := lipgloss.NewStyle().Foreground(theme.WindowFg())
	bubbleW := max(width*4/5, 8)

	var rows []string
	for _, e := range b.history {
		text := ansi.Wrap(e.Text, bubbleW, "")
		for _, line := range strings.Split(text, "\n") {
			if e.Role == RoleUser {
				rows = append(rows, lipgloss.PlaceHorizontal(width, lipgloss.Right, userStyle.Render(line)))
			} else {
				rows = append(rows, aiStyle.Render(line))
			}
		}
		rows = append(rows, "")
	}
	if b.loading {
		rows = append(rows, aiStyle.Render("..."))
	}

	// keep the address bar and input pinned; scroll the conversation
	room := max(height-2, 0)
	if len(rows) > room {
		rows = rows[len(rows)-room:]
	}
	for len(rows) < room {
		rows = append(rows, "")
	}
	return bar + "\n" + strings.Join(rows, "\n") + "\n" + in.View()
}
