// Package provider fans a chat request out to exactly one upstream
// language-model service. Missing credentials surface as call-time errors,
// which the shim converts into fallback triggers.
package provider

import (
	"context"
	"fmt"
	"strings"

	"synth/app/config"

	"github.com/samber/do"
	"github.com/tmc/langchaingo/llms"
)

const (
	maxTokens   = 500
	temperature = 0.8
)

// Caller is a single upstream provider.
type Caller interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

type Registry struct {
	clients map[string]Caller
	def     string
}

func New(di *do.Injector) (*Registry, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return NewRegistry(map[string]Caller{
		"openai":    newOpenAI(cfg.Providers.OpenAI),
		"anthropic": newAnthropic(cfg.Providers.Anthropic),
		"gemini":    newGemini(cfg.Providers.Gemini),
	}, cfg.Gateway.Provider), nil
}

func NewRegistry(clients map[string]Caller, def string) *Registry {
	return &Registry{
		clients: clients,
		def:     def,
	}
}

// Get resolves a provider by name; unknown names fall back to the default.
func (r *Registry) Get(name string) Caller {
	if c, ok := r.clients[strings.ToLower(name)]; ok {
		return c
	}

	return r.clients[r.def]
}

func firstChoice(resp *llms.ContentResponse, err error) (string, error) {
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}

	return strings.TrimSpace(resp.Choices[0].Content), nil
}
