package components

import (
	"fmt"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizline/internal/ui/theme"
)

// ProgressBar shows how far through the question set the player is.
// Percent is clamped to [0, 1].
type ProgressBar struct {
	Label   string
	Percent float64
	Width   int
}

func (p ProgressBar) View() string {
	label := ""
	if p.Label != "" {
		label = theme.Unselected.Render(p.Label) + "  "
	}
	pct := math.Min(math.Max(p.Percent, 0), 1)
	suffix := theme.Dimmed.Render(fmt.Sprintf("  %3d%%", int(math.Round(pct*100))))

	barWidth := max(p.Width-lipgloss.Width(label)-lipgloss.Width(suffix), 4)
	filled := int(float64(barWidth) * pct)

	return label +
		theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled)) +
		suffix
}
