package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizline/internal/router"
	"github.com/abhisek/quizline/internal/screen"
	"github.com/abhisek/quizline/internal/ui/components"
	"github.com/abhisek/quizline/internal/ui/layout"
	"github.com/abhisek/quizline/internal/ui/theme"
)

// SummaryScreen shows the final score of a finished quiz.
type SummaryScreen struct {
	score   int
	total   int
	restart func() screen.Screen
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.ScoreProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen. restart builds a fresh quiz screen for "r";
// when nil, replaying is not offered.
func New(score, total int, restart func() screen.Screen) *SummaryScreen {
	return &SummaryScreen{score: score, total: total, restart: restart}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) Score() (int, int) {
	return s.score, s.total
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Quit"}}
	if s.restart != nil {
		hints = append([]layout.KeyHint{{Key: "R", Description: "Play again"}}, hints...)
	}
	return hints
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "r", "R":
			if s.restart == nil {
				return s, nil
			}
			next := s.restart()
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		case "enter", "q", "esc":
			return s, tea.Quit
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	center := func(st lipgloss.Style, text string) string {
		return st.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(center(theme.Title, "Quiz Completed!"))
	b.WriteString("\n\n")
	b.WriteString(center(theme.Prompt, fmt.Sprintf("You scored %d out of %d", s.score, s.total)))
	b.WriteString("\n\n")

	if s.total > 0 {
		bar := components.ProgressBar{
			Label:   "Accuracy",
			Percent: float64(s.score) / float64(s.total),
			Width:   min(width-8, 60),
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n\n")
	}

	b.WriteString(center(theme.Hint, verdict(s.score, s.total)))
	return b.String()
}

func verdict(score, total int) string {
	switch {
	case total > 0 && score == total:
		return "Perfect score!"
	case score*2 >= total:
		return "Nicely done."
	default:
		return "Every round makes the next one easier."
	}
}
