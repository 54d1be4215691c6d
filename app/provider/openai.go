package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"synth/app/config"

	"github.com/sashabaranov/go-openai"
)

type openAIClient struct {
	client *openai.Client
	model  string
	token  string
}

func newOpenAI(cfg config.OpenAI) *openAIClient {
	clientConfig := openai.DefaultConfig(cfg.Token)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{
		Timeout: 30 * time.Second,
	}

	return &openAIClient{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
		token:  cfg.Token,
	}
}

func (c *openAIClient) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	if c.token == "" {
		return "", errors.New("OpenAI API key not configured")
	}

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: userMessage,
				},
			},
			MaxTokens:   maxTokens,
			Temperature: temperature,
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no chat completion found")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
