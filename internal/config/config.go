package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/quizline/internal/llm"
	"github.com/abhisek/quizline/internal/logging"
	"github.com/abhisek/quizline/internal/quiz"
)

// DefaultSource is the question document loaded when nothing else is configured.
const DefaultSource = "questions_game.json"

const envPrefix = "QUIZLINE"

type Config struct {
	Source        string         `mapstructure:"source"`
	Topic         string         `mapstructure:"topic"`
	FeedbackDelay time.Duration  `mapstructure:"feedback_delay"`
	HTTPTimeout   time.Duration  `mapstructure:"http_timeout"`
	Log           LogConfig      `mapstructure:"log"`
	LLM           llm.Config     `mapstructure:"llm"`
	Telegram      TelegramConfig `mapstructure:"telegram"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

type TelegramConfig struct {
	Token  string `mapstructure:"token"`
	ChatID int64  `mapstructure:"chat_id"`
	Debug  bool   `mapstructure:"debug"`
}

// flagKeys maps cobra flag names onto config keys.
var flagKeys = map[string]string{
	"source":    "source",
	"topic":     "topic",
	"delay":     "feedback_delay",
	"log-file":  "log.file",
	"log-level": "log.level",
	"provider":  "llm.provider",
	"chat":      "telegram.chat_id",
}

// Load reads configuration from (lowest to highest priority) defaults,
// the config file, QUIZLINE_* environment variables and flags. An empty
// file means search ./quizline.yaml and $XDG_CONFIG_HOME/quizline/.
func Load(file string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindProviderEnv(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("quizline")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values no component can run with.
func (c *Config) Validate() error {
	if c.FeedbackDelay < 0 {
		return fmt.Errorf("feedback_delay must not be negative, got %s", c.FeedbackDelay)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive, got %s", c.HTTPTimeout)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("source", DefaultSource)
	v.SetDefault("topic", "")
	v.SetDefault("feedback_delay", quiz.DefaultFeedbackDelay)
	v.SetDefault("http_timeout", 15*time.Second)

	logFile, err := logging.DefaultPath()
	if err != nil {
		logFile = ""
	}
	v.SetDefault("log.file", logFile)
	v.SetDefault("log.level", "info")

	d := llm.DefaultConfig()
	v.SetDefault("llm.provider", d.Provider)
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", d.Anthropic.Model)
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", d.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", d.Gemini.Model)
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", d.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", d.OpenRouter.BaseURL)
	v.SetDefault("llm.retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.Retry.Multiplier)
	v.SetDefault("llm.timeout", d.Timeout)

	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.chat_id", 0)
	v.SetDefault("telegram.debug", false)
}

// bindProviderEnv lets the vendors' conventional variables stand in for
// the prefixed ones.
func bindProviderEnv(v *viper.Viper) {
	_ = v.BindEnv("llm.anthropic.api_key", envPrefix+"_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
	_ = v.BindEnv("llm.openai.api_key", envPrefix+"_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("llm.gemini.api_key", envPrefix+"_GEMINI_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("llm.openrouter.api_key", envPrefix+"_OPENROUTER_API_KEY", "OPENROUTER_API_KEY")
	_ = v.BindEnv("telegram.token", envPrefix+"_TELEGRAM_TOKEN", "TELEGRAM_BOT_TOKEN")
}

func configDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "quizline"), nil
}
