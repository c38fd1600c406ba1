package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizline/internal/questions"
)

var checkCmd = &cobra.Command{
	Use:   "check <file-or-url>",
	Short: "Validate a question document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer rt.log.Sync()

		src, err := questions.Open(args[0], questions.Options{Timeout: rt.cfg.HTTPTimeout})
		if err != nil {
			return err
		}
		set, err := src.Load(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		verbose, _ := cmd.Flags().GetBool("verbose")
		if verbose {
			for i, q := range set {
				fmt.Fprintf(out, "%2d. %s\n", i+1, q.Prompt)
				for _, c := range q.Choices() {
					marker := " "
					if c.Text == q.CorrectAnswer {
						marker = "*"
					}
					fmt.Fprintf(out, "     %s %s\n", marker, c.Label)
				}
			}
		}
		fmt.Fprintf(out, "ok: %d questions in %s\n", len(set), src.Name())
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolP("verbose", "v", false, "Print every question with its correct option starred")
}
