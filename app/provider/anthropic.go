package provider

import (
	"context"
	"errors"
	"fmt"

	"synth/app/config"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
)

type anthropicClient struct {
	cfg config.Anthropic
}

func newAnthropic(cfg config.Anthropic) *anthropicClient {
	return &anthropicClient{cfg: cfg}
}

func (c *anthropicClient) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	if c.cfg.Token == "" {
		return "", errors.New("Anthropic API key not configured")
	}

	llm, err := anthropic.New(
		anthropic.WithToken(c.cfg.Token),
		anthropic.WithModel(c.cfg.Model),
	)
	if err != nil {
		return "", fmt.Errorf("failed to init anthropic client: %w", err)
	}

	resp, err := llm.GenerateContent(ctx,
		[]llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
			llms.TextParts(llms.ChatMessageTypeHuman, userMessage),
		},
		llms.WithMaxTokens(maxTokens),
		llms.WithTemperature(temperature),
	)

	return firstChoice(resp, err)
}
