package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"synth/app/config"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

type geminiClient struct {
	cfg config.Gemini
}

func newGemini(cfg config.Gemini) *geminiClient {
	return &geminiClient{cfg: cfg}
}

func (c *geminiClient) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	if c.cfg.Token == "" {
		return "", errors.New("Gemini API key not configured")
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(c.cfg.Token),
		googleai.WithDefaultModel(c.cfg.Model),
	)
	if err != nil {
		return "", fmt.Errorf("failed to init gemini client: %w", err)
	}

	// Gemini takes the instructions inline rather than as a separate system
	// role.
	prompt := systemPrompt + "\n\nUser: " + userMessage

	out, err := llms.GenerateFromSinglePrompt(ctx, llm, prompt,
		llms.WithMaxTokens(maxTokens),
		llms.WithTemperature(temperature),
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return strings.TrimSpace(out), nil
}
