package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Gaurav-Gosain/winnux/internal/config"
)

func fixedNow() time.Time {
	return time.Date(2026, time.March, 7, 15, 4, 5, 0, time.UTC)
}

func TestOfflineShell(t *testing.T) {
	o := NewOffline(fixedNow)
	tests := []struct {
		line string
		want string
	}{
		{"pwd", "/home/winnux"},
		{"whoami", "root"},
		{"echo hello   world", "hello world"},
		{"uname -a", "Winnux 1.0.0 winnux x86_64 GNU/Linux"},
		{"date", "Sat Mar  7 15:04:05 UTC 2026"},
		{"cat hello.py", "print(\"Hello from Winnux!\")"},
		{"cat Documents", "cat: Documents: Is a directory"},
		{"cat nope.txt", "cat: nope.txt: No such file or directory"},
		{"frobnicate --now", "bash: frobnicate: command not found"},
		{"   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := o.Generate(context.Background(), Request{Mode: ModeShell, Prompt: tt.line})
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("shell(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestOfflineLsAndHistory(t *testing.T) {
	o := NewOffline(fixedNow)
	ls, _ := o.Generate(context.Background(), Request{Mode: ModeShell, Prompt: "ls"})
	for _, want := range []string{"Documents", "project_notes.txt", "readme.md"} {
		if !strings.Contains(ls, want) {
			t.Errorf("ls missing %q: %q", want, ls)
		}
	}

	hist, _ := o.Generate(context.Background(), Request{Mode: ModeShell, Prompt: "history", History: []string{"ls", "pwd"}})
	if !strings.Contains(hist, "1  ls") || !strings.Contains(hist, "2  pwd") {
		t.Errorf("history = %q", hist)
	}
}

func TestOfflineChat(t *testing.T) {
	o := NewOffline(fixedNow)
	got, err := o.Generate(context.Background(), Request{Prompt: "how do I move a window?", System: CopilotInstruction})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "title bar") {
		t.Errorf("chat reply = %q", got)
	}
}

func TestOfflineHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewOffline(nil).Generate(ctx, Request{Prompt: "hi"}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestTerminalPrompt(t *testing.T) {
	p := TerminalPrompt("ls -la", []string{"cd /tmp", "pwd"})
	for _, want := range []string{
		"simulated Linux terminal in an OS called Winnux",
		"Current directory: /home/winnux",
		"cd /tmp\npwd",
		`The user entered: "ls -la"`,
		"6. Do not explain what you are doing.",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestLastN(t *testing.T) {
	h := []string{"a", "b", "c", "d", "e", "f", "g"}
	if got := LastN(h, HistoryLimit); strings.Join(got, "") != "cdefg" {
		t.Errorf("LastN = %v", got)
	}
	if got := LastN(h[:2], HistoryLimit); len(got) != 2 {
		t.Errorf("short history trimmed: %v", got)
	}
}

// generateBody is the part of a generateContent request body the tests read.
type generateBody struct {
	Contents []struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
	SystemInstruction *struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"systemInstruction"`
	GenerationConfig *struct {
		ThinkingConfig *struct {
			ThinkingBudget *int `json:"thinkingBudget"`
		} `json:"thinkingConfig"`
	} `json:"generationConfig"`
}

func newTestGemini(t *testing.T, handler http.HandlerFunc, opts ...GeminiOption) *Gemini {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	g, err := NewGemini("secret", append([]GeminiOption{WithBaseURL(srv.URL)}, opts...)...)
	if err != nil {
		t.Fatalf("NewGemini: %v", err)
	}
	return g
}

func TestGeminiShellRequest(t *testing.T) {
	var got generateBody
	var path, key string
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		path, key = r.URL.Path, r.Header.Get("x-goog-api-key")
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"Documents  "},{"text":"notes.txt"}]}}]}`)
	})

	history := []string{"1", "2", "3", "4", "5", "6", "7"}
	out, err := g.Generate(context.Background(), Request{Mode: ModeShell, Prompt: "ls", History: history})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "Documents  notes.txt" {
		t.Errorf("output = %q", out)
	}
	if !strings.HasSuffix(path, "/models/gemini-2.5-flash:generateContent") || key != "secret" {
		t.Errorf("path = %q key = %q", path, key)
	}
	if got.GenerationConfig == nil || got.GenerationConfig.ThinkingConfig == nil ||
		got.GenerationConfig.ThinkingConfig.ThinkingBudget == nil || *got.GenerationConfig.ThinkingConfig.ThinkingBudget != 0 {
		t.Error("shell requests should disable thinking")
	}
	if len(got.Contents) == 0 || len(got.Contents[0].Parts) == 0 {
		t.Fatal("request has no prompt")
	}
	prompt := got.Contents[0].Parts[0].Text
	if !strings.Contains(prompt, "3\n4\n5\n6\n7") || strings.Contains(prompt, "2\n3") {
		t.Errorf("prompt should carry only the last %d commands: %q", HistoryLimit, prompt)
	}
}

func TestGeminiChatRequest(t *testing.T) {
	var got generateBody
	var path string
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"Hi!"}]}}]}`)
	}, WithModel("gemini-test"))

	out, err := g.Generate(context.Background(), Request{Prompt: "hello", System: CopilotInstruction})
	if err != nil || out != "Hi!" {
		t.Fatalf("Generate = %q, %v", out, err)
	}
	if !strings.HasSuffix(path, "/models/gemini-test:generateContent") {
		t.Errorf("path = %q", path)
	}
	if got.SystemInstruction == nil || len(got.SystemInstruction.Parts) == 0 || got.SystemInstruction.Parts[0].Text != CopilotInstruction {
		t.Error("system instruction not sent")
	}
	if got.GenerationConfig != nil && got.GenerationConfig.ThinkingConfig != nil {
		t.Error("chat requests should keep the default thinking budget")
	}
}

func TestGeminiErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"api error", http.StatusBadRequest, `{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`},
		{"bad status", http.StatusInternalServerError, `{}`},
		{"garbage", http.StatusOK, `<html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})
			if _, err := g.Generate(context.Background(), Request{Prompt: "x"}); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestGeminiEmptyCandidates(t *testing.T) {
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[]}`)
	})
	out, err := g.Generate(context.Background(), Request{Prompt: "x"})
	if err != nil || out != "" {
		t.Errorf("Generate = %q, %v; want empty reply without error", out, err)
	}
}

func TestNew(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	p, err := New(config.AssistantConfig{Provider: "offline"})
	if err != nil || p.Name() != "offline" {
		t.Errorf("offline: %v %v", p, err)
	}
	if _, err := New(config.AssistantConfig{Provider: "gemini"}); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("gemini without key: err = %v", err)
	}
	if _, err := New(config.AssistantConfig{Provider: "oracle"}); err == nil {
		t.Error("unknown provider should fail")
	}

	t.Setenv("GEMINI_API_KEY", "from-env")
	p, err = New(config.AssistantConfig{Provider: "gemini", TimeoutSeconds: 5})
	if err != nil || p.Name() != "gemini" {
		t.Fatalf("gemini with env key: %v %v", p, err)
	}
	g := p.(*Gemini)
	if key := g.client.ClientConfig().APIKey; key != "from-env" || g.timeout != 5*time.Second {
		t.Errorf("gemini = key %q timeout %v", key, g.timeout)
	}
}
