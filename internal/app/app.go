package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	qz "github.com/abhisek/quizline/internal/quiz"
	"github.com/abhisek/quizline/internal/router"
	"github.com/abhisek/quizline/internal/screen"
	"github.com/abhisek/quizline/internal/screens/quiz"
	"github.com/abhisek/quizline/internal/screens/welcome"
	"github.com/abhisek/quizline/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

func newAppModel(first screen.Screen) AppModel {
	return AppModel{router: router.New(first)}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	score, total := 0, 0
	footerHints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.ScoreProvider); ok {
			score, total = sp.Score()
		}
		if hp, ok := active.(screen.KeyHintProvider); ok {
			footerHints = hp.KeyHints()
		}
	}

	header := layout.RenderHeader(title, score, total, m.width)
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Options configures Run.
type Options struct {
	Source qz.Source
	Quiz   quiz.Options
	// Splash shows the welcome screen before the first question.
	Splash bool
}

func firstScreen(opts Options) screen.Screen {
	play := func() screen.Screen { return quiz.New(opts.Source, opts.Quiz) }
	if opts.Splash {
		return welcome.New(opts.Source.Name(), play)
	}
	return play()
}

// Run plays quizzes from opts.Source until the player quits or ctx ends.
func Run(ctx context.Context, opts Options) error {
	if opts.Quiz.Context == nil {
		opts.Quiz.Context = ctx
	}
	log := opts.Quiz.Logger
	if log == nil {
		log = zap.NewNop()
	}

	p := tea.NewProgram(newAppModel(firstScreen(opts)), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		log.Error("tui exited", zap.Error(err))
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
