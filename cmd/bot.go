package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/quizline/internal/telegram"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Serve the quiz to a Telegram chat",
	Long: "Runs the quiz as a Telegram bot. Send /quiz to start or restart,\n" +
		"/repeat to resend the current question.",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd, true)
		if err != nil {
			return err
		}
		defer rt.log.Sync()

		ctx := cmd.Context()
		src, err := rt.source(ctx, 0)
		if err != nil {
			return fmt.Errorf("question source: %w", err)
		}

		api, err := telegram.Connect(rt.cfg.Telegram.Token, rt.cfg.Telegram.Debug)
		if err != nil {
			return err
		}
		rt.log.Info("authorised", zap.String("account", api.Self.UserName), zap.String("source", src.Name()))

		b := telegram.New(api, src, telegram.Config{
			ChatID:        rt.cfg.Telegram.ChatID,
			FeedbackDelay: rt.cfg.FeedbackDelay,
			Logger:        rt.log,
		})
		if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	addSourceFlags(botCmd)
	botCmd.Flags().Int64("chat", 0, "Only serve this chat ID (default: first chat to send /quiz)")
}
