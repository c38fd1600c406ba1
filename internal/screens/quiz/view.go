package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	qz "github.com/abhisek/quizline/internal/quiz"
	"github.com/abhisek/quizline/internal/ui/components"
	"github.com/abhisek/quizline/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	snap := s.ctrl.Snapshot()
	switch snap.Phase {
	case qz.PhaseFailed:
		return s.renderError(width)
	case qz.PhasePresenting, qz.PhaseAnswered:
		return s.renderQuestion(width, snap)
	case qz.PhaseCompleted:
		return "\n\n" + theme.Title.Width(width).Render("Quiz Completed!")
	}
	return s.renderLoading(width)
}

func (s *QuizScreen) renderLoading(width int) string {
	line := s.spinner.View() + " " + theme.Dimmed.Render("Loading questions from "+s.source.Name()+"...")
	return "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
}

func (s *QuizScreen) renderError(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(theme.Incorrect.Width(width).Align(lipgloss.Center).Render("Could not start the quiz"))
	b.WriteString("\n\n")
	if s.err != nil {
		msg := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.TextDim).
			Render(s.err.Error())
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, msg))
	}
	return b.String()
}

func (s *QuizScreen) renderQuestion(width int, snap qz.Snapshot) string {
	var b strings.Builder

	bar := components.ProgressBar{
		Label:   fmt.Sprintf("Question %d of %d", snap.Index+1, snap.Total),
		Percent: s.progress,
		Width:   min(width-8, 70),
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	card := theme.Card.
		Width(min(width-8, 70)).
		Align(lipgloss.Center).
		Render(theme.Prompt.Render(s.prompt))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
	b.WriteString("\n\n")

	b.WriteString(s.options.View(width))
	b.WriteString("\n")
	b.WriteString(s.feedback.View(width))
	return b.String()
}
