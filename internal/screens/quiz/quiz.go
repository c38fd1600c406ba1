package quiz

import (
	"context"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	qz "github.com/abhisek/quizline/internal/quiz"
	"github.com/abhisek/quizline/internal/router"
	"github.com/abhisek/quizline/internal/screen"
	"github.com/abhisek/quizline/internal/screens/summary"
	"github.com/abhisek/quizline/internal/ui/components"
	"github.com/abhisek/quizline/internal/ui/layout"
	"github.com/abhisek/quizline/internal/ui/theme"
)

// Options configures a QuizScreen.
type Options struct {
	// Context bounds question fetches. Defaults to context.Background().
	Context       context.Context
	FeedbackDelay time.Duration
	Logger        *zap.Logger
}

// QuizScreen plays one question set. It is the quiz.Surface and quiz.Timer
// for its controller; commands produced while the controller runs are
// collected in pending and returned from Update.
type QuizScreen struct {
	ctrl   *qz.Controller
	source qz.Source
	opts   Options
	log    *zap.Logger

	spinner  spinner.Model
	prompt   string
	options  components.OptionList
	feedback components.Feedback
	progress float64
	err      error

	pending []tea.Cmd
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.ScoreProvider = (*QuizScreen)(nil)
var _ qz.Surface = (*QuizScreen)(nil)
var _ qz.Timer = (*QuizScreen)(nil)

// New creates a QuizScreen that loads its questions from src on Init.
func New(src qz.Source, opts Options) *QuizScreen {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	s := &QuizScreen{
		source: src,
		opts:   opts,
		log:    opts.Logger.With(zap.String("source", src.Name())),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(theme.Selected),
		),
	}

	ctrlOpts := []qz.ControllerOption{qz.WithLogger(s.log)}
	if opts.FeedbackDelay > 0 {
		ctrlOpts = append(ctrlOpts, qz.WithFeedbackDelay(opts.FeedbackDelay))
	}
	s.ctrl = qz.NewController(s, s, ctrlOpts...)
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	if err := s.ctrl.Begin(); err != nil {
		s.log.Warn("begin load", zap.Error(err))
		return nil
	}
	return tea.Batch(s.spinner.Tick, s.load())
}

func (s *QuizScreen) load() tea.Cmd {
	src, ctx := s.source, s.opts.Context
	return func() tea.Msg {
		questions, err := src.Load(ctx)
		return loadedMsg{questions: questions, err: err}
	}
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) Score() (int, int) {
	snap := s.ctrl.Snapshot()
	return snap.Score, snap.Total
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.ctrl.Snapshot().Phase {
	case qz.PhasePresenting:
		return []layout.KeyHint{
			{Key: "1-9", Description: "Answer"},
			{Key: "↑↓", Description: "Move"},
			{Key: "Enter", Description: "Select"},
			{Key: "Esc", Description: "Quit"},
		}
	case qz.PhaseFailed:
		return []layout.KeyHint{
			{Key: "any key", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		// Failures are rendered through ShowError.
		_ = s.ctrl.Loaded(msg.questions, msg.err)
		return s, s.flush()

	case spinner.TickMsg:
		if s.ctrl.Snapshot().Phase != qz.PhaseLoading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case advanceMsg:
		if err := s.ctrl.Advance(msg.question); err != nil {
			s.log.Debug("advance ignored", zap.Error(err))
		}
		return s, s.flush()

	case components.OptionChosenMsg:
		if _, err := s.ctrl.Submit(msg.Question, msg.Index); err != nil {
			s.log.Debug("answer ignored", zap.Error(err))
		}
		return s, s.flush()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	phase := s.ctrl.Snapshot().Phase
	if phase.Terminal() {
		return s, tea.Quit
	}

	switch msg.String() {
	case "esc", "q":
		return s, tea.Quit
	}

	if phase != qz.PhasePresenting {
		return s, nil
	}
	var cmd tea.Cmd
	s.options, cmd = s.options.Update(msg)
	return s, cmd
}

// flush hands over the commands queued by the controller callbacks.
func (s *QuizScreen) flush() tea.Cmd {
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

func (s *QuizScreen) restart() screen.Screen {
	return New(s.source, s.opts)
}

// quiz.Surface

func (s *QuizScreen) SetPrompt(text string) { s.prompt = text }

func (s *QuizScreen) SetOptions(choices []qz.Choice) {
	s.options = components.NewOptionList(s.ctrl.Snapshot().Index, choices)
}

func (s *QuizScreen) SetFeedback(text string, tone qz.Tone) {
	s.feedback = components.Feedback{Text: text, Tone: tone}
}

func (s *QuizScreen) MarkOption(index int, mark qz.Mark) {
	s.options.SetMark(index, mark)
}

func (s *QuizScreen) SetProgress(fraction float64) { s.progress = fraction }

func (s *QuizScreen) ShowCompletion(score, total int) {
	next := summary.New(score, total, s.restart)
	s.pending = append(s.pending, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	})
}

func (s *QuizScreen) ShowError(err error) { s.err = err }

// quiz.Timer

func (s *QuizScreen) AfterFeedback(delay time.Duration, question int) {
	s.pending = append(s.pending, tea.Tick(delay, func(time.Time) tea.Msg {
		return advanceMsg{question: question}
	}))
}
