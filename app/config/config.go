package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    Server    `yaml:"server"`
	Log       Log       `yaml:"log"`
	DB        DB        `yaml:"db"`
	Gateway   Gateway   `yaml:"gateway"`
	Providers Providers `yaml:"providers"`
}

type Server struct {
	// Address the HTTP API listens on
	Listen string `yaml:"listen" example:":8080" validate:"required"`
}

type Gateway struct {
	// Chat shim endpoint the resolver calls
	URL string `yaml:"url" example:"http://localhost:8080/api/chat" validate:"required"`
	// Default upstream provider
	Provider string `yaml:"provider" example:"openai" validate:"required,oneof=openai anthropic gemini"`
	// Live call budget before falling back to templates
	TimeoutSeconds int `yaml:"timeout_seconds" example:"30" validate:"required,min=1"`
}

type Providers struct {
	OpenAI    OpenAI    `yaml:"openai"`
	Anthropic Anthropic `yaml:"anthropic"`
	Gemini    Gemini    `yaml:"gemini"`
}

// Provider credentials are optional: a missing token surfaces as an
// upstream-unavailable error at call time, not at startup.
type OpenAI struct {
	// OpenAI-compatible base url
	BaseURL string `yaml:"base_url" example:"https://api.openai.com/v1"`
	// OpenAI token
	Token string `yaml:"token" example:"sk-proj-abc123456789DEF789ghi012JKL345mno678PQR901stu234VWX"`
	// OpenAI model
	Model string `yaml:"model" example:"gpt-4o-mini" validate:"required"`
}

type Anthropic struct {
	// Anthropic API key
	Token string `yaml:"token" example:"sk-ant-api03-abc123def456"`
	// Anthropic model
	Model string `yaml:"model" example:"claude-3-haiku-20240307" validate:"required"`
}

type Gemini struct {
	// Google AI Studio API key
	Token string `yaml:"token" example:"AIzaSyAbc123Def456Ghi789"`
	// Gemini model
	Model string `yaml:"model" example:"gemini-1.5-flash" validate:"required"`
}

type Log struct {
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890"`
}

type DB struct {
	// Sqlite database file path
	Path string `yaml:"path" example:"data/synth.db" validate:"required"`
}

func Load() (*Config, error) {
	var result Config

	data, err := os.ReadFile("config.yaml")
	if err != nil {
		return nil, oops.Errorf("failed to read config file: %w", err)
	}

	if err = yaml.Unmarshal(data, &result); err != nil {
		return nil, oops.Errorf("failed to parse YAML config: %w", err)
	}

	result.applyDefaults()

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.DB.Path == "" {
		c.DB.Path = "data/synth.db"
	}
	if c.Gateway.URL == "" {
		c.Gateway.URL = "http://localhost:8080/api/chat"
	}
	if c.Gateway.Provider == "" {
		c.Gateway.Provider = "openai"
	}
	if c.Gateway.TimeoutSeconds == 0 {
		c.Gateway.TimeoutSeconds = 30
	}
	if c.Providers.OpenAI.Model == "" {
		c.Providers.OpenAI.Model = "gpt-4o-mini"
	}
	if c.Providers.Anthropic.Model == "" {
		c.Providers.Anthropic.Model = "claude-3-haiku-20240307"
	}
	if c.Providers.Gemini.Model == "" {
		c.Providers.Gemini.Model = "gemini-1.5-flash"
	}
}
