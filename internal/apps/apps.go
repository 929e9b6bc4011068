// Package apps holds the content shown inside windows and the catalog that
// registers it.
package apps

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/winnux/internal/assistant"
	"github.com/Gaurav-Gosain/winnux/internal/config"
	"github.com/Gaurav-Gosain/winnux/internal/registry"
)

// Version is reported by the settings app and the terminal banner.
const Version = "1.0.0"

// Msg delivers a content message to the window it belongs to.
type Msg struct {
	WindowID string
	Inner    tea.Msg
}

// Route tags every message produced by cmd with windowID, so replies reach
// only the window that asked for them. Batches are routed element-wise.
func Route(windowID string, cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		msg := cmd()
		switch m := msg.(type) {
		case nil:
			return nil
		case tea.BatchMsg:
			out := make(tea.BatchMsg, 0, len(m))
			for _, c := range m {
				if c != nil {
					out = append(out, Route(windowID, c))
				}
			}
			return out
		}
		return Msg{WindowID: windowID, Inner: msg}
	}
}

// Env is what content needs from the outside world.
type Env struct {
	Assistant assistant.Provider
	Timeout   time.Duration
	Now       func() time.Time
}

func (e Env) withDefaults() Env {
	if e.Assistant == nil {
		e.Assistant = assistant.NewOffline(e.Now)
	}
	if e.Timeout <= 0 {
		e.Timeout = config.AssistantTimeout
	}
	if e.Now == nil {
		e.Now = time.Now
	}
	return e
}

// Catalog returns the built-in app definitions in taskbar order.
func Catalog(env Env) []registry.AppDefinition {
	env = env.withDefaults()
	return []registry.AppDefinition{
		{
			Kind: registry.KindTerminal, Name: "Terminal",
			Icon: config.IconTerminal, IconASCII: ">_",
			DefaultWidth: 60, DefaultHeight: 18,
			Factory: func(id string) registry.Content { return NewTerminal(id, env) },
		},
		{
			Kind: registry.KindExplorer, Name: "Files",
			Icon: config.IconFolder, IconASCII: "[D]",
			DefaultWidth: 72, DefaultHeight: 20,
			Factory: func(id string) registry.Content { return NewExplorer(id) },
		},
		{
			Kind: registry.KindBrowser, Name: "Edge (AI)",
			Icon: config.IconGlobe, IconASCII: "(e)",
			DefaultWidth: 80, DefaultHeight: 22,
			Factory: func(id string) registry.Content { return NewBrowser(id, env) },
		},
		{
			Kind: registry.KindEditor, Name: "Code Editor",
			Icon: config.IconCode, IconASCII: "</>",
			DefaultWidth: 54, DefaultHeight: 14,
			Factory: func(id string) registry.Content { return NewEditor(id) },
		},
		{
			Kind: registry.KindSettings, Name: "Settings",
			Icon: config.IconSettings, IconASCII: "(*)",
			DefaultWidth: 54, DefaultHeight: 15,
			Factory: func(id string) registry.Content { return NewSettings(id, env) },
		},
	}
}

// NewRegistry registers the catalog.
func NewRegistry(env Env) *registry.Registry {
	return registry.New().MustRegister(Catalog(env)...)
}
