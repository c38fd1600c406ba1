package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizline/internal/router"
	"github.com/abhisek/quizline/internal/screen"
	"github.com/abhisek/quizline/internal/ui/layout"
	"github.com/abhisek/quizline/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	bannerAt     = 300 * time.Millisecond
	readyAt      = 900 * time.Millisecond
)

// marks cycle under the banner while the splash plays.
var marks = []string{"?", "¿", "?", "!"}

type tickMsg time.Time

// WelcomeScreen is a short splash shown before the first quiz. Any key
// after the banner settles replaces it with the screen from next.
type WelcomeScreen struct {
	next         func() screen.Screen
	source       string
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen announcing source.
func New(source string, next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next, source: source}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	if w.elapsed < readyAt {
		return nil
	}
	return []layout.KeyHint{{Key: "any key", Description: "Start"}}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		w.elapsed += tickInterval
		w.tickCount++
		if w.elapsed >= readyAt {
			return w, nil
		}
		return w, tick()

	case tea.KeyPressMsg:
		if w.elapsed >= readyAt {
			return w, w.transition()
		}
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	mark := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true).
		Render(marks[w.tickCount%len(marks)])
	sections := []string{mark}

	if w.elapsed >= bannerAt {
		sections = append(sections, RenderBanner(width), "")
		sections = append(sections, theme.Subtitle.Render("questions from "+w.source))
	}
	if w.elapsed >= readyAt {
		sections = append(sections, "", theme.Hint.Render("press any key to start"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
