package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizline/internal/quiz"
	"github.com/abhisek/quizline/internal/ui/theme"
)

// Feedback is the one-line verdict shown under the options.
type Feedback struct {
	Text string
	Tone quiz.Tone
}

func (f Feedback) View(width int) string {
	if f.Text == "" {
		return ""
	}
	style := theme.Subtitle
	switch f.Tone {
	case quiz.TonePositive:
		style = theme.Correct
	case quiz.ToneEncouraging:
		style = theme.Encouraging
	}
	return style.Width(width).Align(lipgloss.Center).Render(f.Text)
}
