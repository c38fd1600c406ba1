package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/quizline/internal/questions"
	"github.com/abhisek/quizline/internal/quiz"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write an LLM-generated question set to a file",
	Example: "  quizline generate --topic \"solar system\" --count 8 --out space.json\n" +
		"  quizline --source space.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd, true)
		if err != nil {
			return err
		}
		defer rt.log.Sync()

		if rt.cfg.Topic == "" {
			return errors.New("--topic is required")
		}
		count, _ := cmd.Flags().GetInt("count")
		src, err := rt.source(cmd.Context(), count)
		if err != nil {
			return err
		}
		set, err := src.Load(cmd.Context())
		if err != nil {
			return err
		}

		outPath, _ := cmd.Flags().GetString("out")
		if outPath == "" {
			err = questions.Encode(cmd.OutOrStdout(), set)
		} else {
			err = writeSet(outPath, set)
		}
		if err != nil {
			return fmt.Errorf("write questions: %w", err)
		}
		rt.log.Info("question set generated",
			zap.String("topic", rt.cfg.Topic),
			zap.Int("count", len(set)),
			zap.String("out", outPath),
		)
		return nil
	},
}

// writeSet encodes set into a new file at path, including any error from
// closing it.
func writeSet(path string, set []quiz.Question) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return questions.Encode(f, set)
}

func init() {
	f := generateCmd.Flags()
	f.String("topic", "", "Topic to write questions about")
	f.Int("count", questions.DefaultCount, "Number of questions")
	f.StringP("out", "o", "", "Output file (default stdout)")
	f.String("provider", "", "LLM provider: anthropic, openai, gemini or openrouter")
}
