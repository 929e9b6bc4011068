// Package assistant generates the text shown by the terminal and browser
// apps, either from a built-in simulation or from the Gemini API.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Gaurav-Gosain/winnux/internal/config"
)

// ErrNoAPIKey is returned when the gemini provider is selected without a key.
var ErrNoAPIKey = errors.New("gemini provider needs api_key or GEMINI_API_KEY")

// Mode selects how a request is interpreted.
type Mode int

const (
	// ModeChat is a free-form question to the browser assistant.
	ModeChat Mode = iota
	// ModeShell is a command typed into the simulated terminal.
	ModeShell
)

// Request is one generation call.
type Request struct {
	Mode    Mode
	Prompt  string   // the question, or the command line in ModeShell
	System  string   // system instruction, chat only
	History []string // earlier commands, shell only
}

// Provider produces text for a request.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
}

// CopilotInstruction is the system instruction of the browser assistant.
const CopilotInstruction = "You are Winnux Copilot, a helpful OS assistant embedded in the browser."

// HistoryLimit is how many earlier commands go into a shell prompt.
const HistoryLimit = 5

// TerminalPrompt builds the prompt that asks a model to act as the shell.
func TerminalPrompt(command string, history []string) string {
	var sb strings.Builder
	sb.WriteString("You are a simulated Linux terminal in an OS called Winnux.\n")
	sb.WriteString("The user acts as the root user.\n")
	sb.WriteString("Current directory: /home/winnux\n\n")
	sb.WriteString("History of previous commands:\n")
	sb.WriteString(strings.Join(history, "\n"))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "The user entered: %q\n\n", command)
	sb.WriteString("Rules:\n")
	sb.WriteString("1. Return ONLY the text output of the command. Do not add markdown code blocks.\n")
	sb.WriteString("2. If the command asks to list files (ls), invent a realistic file structure for a developer's machine (documents, downloads, projects folder, maybe a python script or two).\n")
	sb.WriteString("3. If the command is 'cat [file]', invent the content of the file.\n")
	sb.WriteString("4. If the command is unknown, simulate the standard bash error: \"command not found\".\n")
	sb.WriteString("5. Keep responses concise like a real terminal.\n")
	sb.WriteString("6. Do not explain what you are doing. Just output the result.\n")
	return sb.String()
}

// LastN returns at most the last n entries of history.
func LastN(history []string, n int) []string {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}

// New picks a provider from cfg. A missing key for gemini is an error so the
// caller can log it and fall back.
func New(cfg config.AssistantConfig) (Provider, error) {
	switch cfg.Provider {
	case "", "offline":
		return NewOffline(time.Now), nil
	case "gemini":
		key := cfg.APIKey
		if key == "" {
			key = os.Getenv("GEMINI_API_KEY")
		}
		if key == "" {
			return nil, ErrNoAPIKey
		}
		g, err := NewGemini(key,
			WithModel(cfg.Model),
			WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second),
		)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, fmt.Errorf("unknown assistant provider %q", cfg.Provider)
	}
}
