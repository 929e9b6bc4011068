package assistant

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.5-flash"

const defaultGeminiTimeout = 30 * time.Second

// GeminiOption configures a Gemini provider.
type GeminiOption func(*Gemini)

// WithModel selects the model. Empty keeps the default.
func WithModel(model string) GeminiOption {
	return func(g *Gemini) {
		if model != "" {
			g.model = model
		}
	}
}

// WithTimeout bounds each request. Zero keeps the default.
func WithTimeout(d time.Duration) GeminiOption {
	return func(g *Gemini) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithBaseURL points the provider at another endpoint, mostly for tests.
func WithBaseURL(u string) GeminiOption {
	return func(g *Gemini) {
		g.baseURL = u
	}
}

// Gemini generates replies with the Gemini API.
type Gemini struct {
	model   string
	baseURL string
	timeout time.Duration
	client  *genai.Client
}

// NewGemini creates a provider using apiKey.
func NewGemini(apiKey string, opts ...GeminiOption) (*Gemini, error) {
	g := &Gemini{
		model:   DefaultGeminiModel,
		timeout: defaultGeminiTimeout,
	}
	for _, opt := range opts {
		opt(g)
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: g.baseURL,
			Timeout: &g.timeout,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	g.client = client
	return g, nil
}

// Name implements Provider.
func (g *Gemini) Name() string { return "gemini" }

// Generate implements Provider. Shell requests are wrapped in TerminalPrompt
// and sent with thinking disabled for a quick reply.
func (g *Gemini) Generate(ctx context.Context, req Request) (string, error) {
	var (
		prompt = req.Prompt
		cfg    = &genai.GenerateContentConfig{}
	)
	if req.Mode == ModeShell {
		prompt = TerminalPrompt(req.Prompt, LastN(req.History, HistoryLimit))
		cfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](0)}
	} else if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	return resp.Text(), nil
}
