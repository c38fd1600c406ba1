package llm

import (
	"fmt"
	"time"
)

// Config selects and configures a provider. It is decoded from the "llm"
// section of the quizline config.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini", "openrouter".
	Provider string `mapstructure:"provider"`

	Anthropic  VendorConfig `mapstructure:"anthropic"`
	OpenAI     VendorConfig `mapstructure:"openai"`
	Gemini     VendorConfig `mapstructure:"gemini"`
	OpenRouter VendorConfig `mapstructure:"openrouter"`

	Retry RetryConfig `mapstructure:"retry"`

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration `mapstructure:"timeout"`
}

// VendorConfig holds the credentials and model for one vendor.
type VendorConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier"`
}

func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Anthropic:  VendorConfig{Model: "claude-haiku"},
		OpenAI:     VendorConfig{Model: "gpt-4o-mini"},
		Gemini:     VendorConfig{Model: "gemini-flash"},
		OpenRouter: VendorConfig{Model: "google/gemini-2.0-flash-exp", BaseURL: defaultOpenRouterBaseURL},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 60 * time.Second,
	}
}

// Vendor returns the settings of the selected provider.
func (c Config) Vendor() VendorConfig {
	switch c.Provider {
	case "anthropic":
		return c.Anthropic
	case "openai":
		return c.OpenAI
	case "gemini":
		return c.Gemini
	case "openrouter":
		return c.OpenRouter
	}
	return VendorConfig{}
}

// Validate checks that the selected provider is known and has a key.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic", "openai", "gemini", "openrouter":
		if c.Vendor().APIKey == "" {
			return fmt.Errorf("an API key is required for the %s provider (set llm.%s.api_key)", c.Provider, c.Provider)
		}
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
}
