package config

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultsSatisfyValidation(t *testing.T) {
	var cfg Config
	cfg.applyDefaults()

	validate := validator.New(validator.WithRequiredStructEnabled())
	require.NoError(t, validate.Struct(cfg))

	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, "data/synth.db", cfg.DB.Path)
	assert.Equal(t, "openai", cfg.Gateway.Provider)
	assert.Equal(t, 30, cfg.Gateway.TimeoutSeconds)
	assert.Equal(t, "gpt-4o-mini", cfg.Providers.OpenAI.Model)
}

func TestDefaultsKeepExplicitValues(t *testing.T) {
	raw := `
server:
  listen: ":9090"
gateway:
  provider: anthropic
  timeout_seconds: 5
providers:
  anthropic:
    token: sk-ant-test
    model: claude-3-5-sonnet-20241022
`

	var cfg Config
	require.NoError(t, yaml.Unmarshal([]byte(raw), &cfg))
	cfg.applyDefaults()

	assert.Equal(t, ":9090", cfg.Server.Listen)
	assert.Equal(t, "anthropic", cfg.Gateway.Provider)
	assert.Equal(t, 5, cfg.Gateway.TimeoutSeconds)
	assert.Equal(t, "sk-ant-test", cfg.Providers.Anthropic.Token)
	assert.Equal(t, "claude-3-5-sonnet-20241022", cfg.Providers.Anthropic.Model)
	assert.Equal(t, "gemini-1.5-flash", cfg.Providers.Gemini.Model)
}

func TestValidationRejectsUnknownProvider(t *testing.T) {
	var cfg Config
	cfg.applyDefaults()
	cfg.Gateway.Provider = "cohere"

	validate := validator.New(validator.WithRequiredStructEnabled())
	assert.Error(t, validate.Struct(cfg))
}
