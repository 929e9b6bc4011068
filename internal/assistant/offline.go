package assistant

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"
)

// mockFiles is the content of /home/winnux in the simulated shell.
var mockFiles = map[string]string{
	"project_notes.txt": "TODO:\n- finish the taskbar clock\n- ship v1.0.0\n- water the plants",
	"readme.md":         "# Winnux\nA tiny desktop that lives in your terminal.",
	"hello.py":          "print(\"Hello from Winnux!\")",
}

var mockDirs = []string{"Desktop", "Documents", "Downloads", "Pictures", "projects"}

// Offline simulates the shell and the chat assistant without any network.
type Offline struct {
	now func() time.Time
}

// NewOffline creates the simulated provider. now supplies the clock for `date`.
func NewOffline(now func() time.Time) *Offline {
	if now == nil {
		now = time.Now
	}
	return &Offline{now: now}
}

// Name implements Provider.
func (o *Offline) Name() string { return "offline" }

// Generate implements Provider.
func (o *Offline) Generate(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if req.Mode == ModeShell {
		return o.shell(req.Prompt, req.History), nil
	}
	return o.chat(req.Prompt), nil
}

func (o *Offline) shell(line string, history []string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "help":
		return "Available commands: help, ls, pwd, whoami, date, uname, echo, cat, history, clear"
	case "ls":
		names := slices.Concat(mockDirs, slices.Sorted(maps.Keys(mockFiles)))
		return strings.Join(names, "  ")
	case "pwd":
		return "/home/winnux"
	case "whoami":
		return "root"
	case "date":
		return o.now().Format("Mon Jan _2 15:04:05 MST 2006")
	case "uname":
		if len(args) > 0 && args[0] == "-a" {
			return "Winnux 1.0.0 winnux x86_64 GNU/Linux"
		}
		return "Winnux"
	case "echo":
		return strings.Join(args, " ")
	case "history":
		var sb strings.Builder
		for i, h := range history {
			fmt.Fprintf(&sb, "%4d  %s\n", i+1, h)
		}
		return strings.TrimRight(sb.String(), "\n")
	case "cat":
		if len(args) == 0 {
			return ""
		}
		if body, ok := mockFiles[args[0]]; ok {
			return body
		}
		for _, d := range mockDirs {
			if d == args[0] {
				return "cat: " + d + ": Is a directory"
			}
		}
		return "cat: " + args[0] + ": No such file or directory"
	default:
		return "bash: " + cmd + ": command not found"
	}
}

func (o *Offline) chat(query string) string {
	q := strings.ToLower(query)
	switch {
	case strings.TrimSpace(q) == "":
		return "Ask me anything about Winnux."
	case strings.Contains(q, "hello") || strings.Contains(q, "hi "):
		return "Hello! I'm Winnux Copilot. How can I help you today?"
	case strings.Contains(q, "window"):
		return "Drag a window by its title bar. Use the buttons on the right of the title bar to minimize, maximize or close it."
	case strings.Contains(q, "terminal") || strings.Contains(q, "shell"):
		return "Open Terminal from the taskbar or the start menu and type \"help\" to see the commands it understands."
	case strings.Contains(q, "time") || strings.Contains(q, "date"):
		return "It is " + o.now().Format("3:04 PM on Jan 2, 2006") + "."
	default:
		return "I'm running in offline mode, so my answers are limited. Set [assistant] provider = \"gemini\" in your config for real answers."
	}
}
