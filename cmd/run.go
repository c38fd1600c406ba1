package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/quizline/internal/app"
	"github.com/abhisek/quizline/internal/screens/quiz"
)

// runApp builds the question source and launches the TUI.
func runApp(cmd *cobra.Command) error {
	rt, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer rt.log.Sync()

	ctx := cmd.Context()
	src, err := rt.source(ctx, 0)
	if err != nil {
		return fmt.Errorf("question source: %w", err)
	}
	rt.log.Info("starting quiz", zap.String("source", src.Name()))

	noSplash, _ := cmd.Flags().GetBool("no-splash")
	return app.Run(ctx, app.Options{
		Source: src,
		Splash: !noSplash,
		Quiz: quiz.Options{
			FeedbackDelay: rt.cfg.FeedbackDelay,
			Logger:        rt.log,
		},
	})
}
