package cmd

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/quizline/internal/config"
	"github.com/abhisek/quizline/internal/llm"
	"github.com/abhisek/quizline/internal/logging"
	"github.com/abhisek/quizline/internal/questions"
	"github.com/abhisek/quizline/internal/quiz"
)

var rootCmd = &cobra.Command{
	Use:   "quizline",
	Short: "Multiple-choice quizzes in the terminal",
	Long: "Quizline plays multiple-choice question sets from a file, a URL or an LLM,\n" +
		"in the terminal or in a Telegram chat.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// ExecuteContext runs the root command; ctx is cancelled on interrupt.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (default ./quizline.yaml or $XDG_CONFIG_HOME/quizline/quizline.yaml)")
	pf.String("log-file", "", "Log file (default $XDG_STATE_HOME/quizline/quizline.log)")
	pf.String("log-level", "", "Log level: debug, info, warn or error")

	addSourceFlags(rootCmd)
	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome screen")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(botCmd)
	rootCmd.AddCommand(versionCmd)
}

func addSourceFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("source", "", "Question file or http(s) URL (default "+config.DefaultSource+")")
	f.String("topic", "", "Generate questions on this topic with the configured LLM instead of reading --source")
	f.Duration("delay", 0, "Pause between answer feedback and the next question (default 2s)")
	f.String("provider", "", "LLM provider: anthropic, openai, gemini or openrouter")
}

// env is what every subcommand needs after startup.
type env struct {
	cfg *config.Config
	log *zap.Logger
}

// setup loads configuration and builds the session logger. console tees
// logs to stderr and must be off while the TUI owns the terminal.
func setup(cmd *cobra.Command, console bool) (*env, error) {
	file, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(file, cmd.Flags())
	if err != nil {
		return nil, err
	}

	log, err := logging.New(logging.Config{
		File:    cfg.Log.File,
		Level:   cfg.Log.Level,
		Console: console,
	})
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	log = log.With(
		zap.String("session", uuid.NewString()),
		zap.String("command", cmd.Name()),
	)
	if cfg.File != "" {
		log.Debug("config loaded", zap.String("file", cfg.File))
	}
	return &env{cfg: cfg, log: log}, nil
}

// source picks the question source: an LLM when a topic is set, otherwise
// the configured file or URL.
func (rt *env) source(ctx context.Context, count int) (quiz.Source, error) {
	if rt.cfg.Topic == "" {
		return questions.Open(rt.cfg.Source, questions.Options{Timeout: rt.cfg.HTTPTimeout})
	}

	provider, err := llm.New(ctx, rt.cfg.LLM, rt.log)
	if err != nil {
		return nil, err
	}
	return &questions.LLMSource{
		Provider: provider,
		Topic:    rt.cfg.Topic,
		Count:    count,
		Timeout:  rt.cfg.LLM.Timeout,
	}, nil
}
