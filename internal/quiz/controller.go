package quiz

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DefaultFeedbackDelay is the pause between answer feedback and the next question.
const DefaultFeedbackDelay = 2 * time.Second

const (
	FeedbackCorrect   = "Great job!"
	FeedbackIncorrect = "No sweat, you're still learning!"
)

// Tone is the visual tone of a feedback line.
type Tone int

const (
	ToneNeutral Tone = iota
	TonePositive
	ToneEncouraging
)

// Mark is the correctness style applied to a single option control.
type Mark int

const (
	MarkNone Mark = iota
	MarkCorrect
	MarkIncorrect
)

// Surface is the presentation layer the controller renders into.
type Surface interface {
	SetPrompt(text string)
	// SetOptions replaces every option control, dropping any marks.
	SetOptions(choices []Choice)
	SetFeedback(text string, tone Tone)
	MarkOption(index int, mark Mark)
	SetProgress(fraction float64)
	ShowCompletion(score, total int)
	ShowError(err error)
}

// Timer schedules the post-answer advance. Implementations must call
// Controller.Advance(question) from the same goroutine that drives the
// controller.
type Timer interface {
	AfterFeedback(delay time.Duration, question int)
}

// Source produces a question set.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]Question, error)
}

// Outcome describes an accepted answer.
type Outcome struct {
	Question int
	Option   int
	Correct  bool
}

// Controller drives one quiz session. It is not safe for concurrent use;
// every method must be called from a single event loop.
type Controller struct {
	session Session
	surface Surface
	timer   Timer
	delay   time.Duration
	log     *zap.Logger
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithFeedbackDelay overrides DefaultFeedbackDelay.
func WithFeedbackDelay(d time.Duration) ControllerOption {
	return func(c *Controller) { c.delay = d }
}

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) ControllerOption {
	return func(c *Controller) { c.log = l }
}

// NewController creates an idle controller rendering into surface.
func NewController(surface Surface, timer Timer, opts ...ControllerOption) *Controller {
	c := &Controller{
		surface: surface,
		timer:   timer,
		delay:   DefaultFeedbackDelay,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns the current session state.
func (c *Controller) Snapshot() Snapshot {
	return c.session.Snapshot()
}

// Begin moves an idle controller into the loading phase.
func (c *Controller) Begin() error {
	if c.session.phase != PhaseIdle {
		return fmt.Errorf("begin: %w (phase %s)", ErrInvalidPhase, c.session.phase)
	}
	c.session.phase = PhaseLoading
	c.log.Debug("loading questions")
	return nil
}

// Loaded completes the load started by Begin. A fetch error or an invalid
// set fails the session for good; the error is shown and returned.
func (c *Controller) Loaded(questions []Question, err error) error {
	if c.session.phase != PhaseLoading {
		return fmt.Errorf("loaded: %w (phase %s)", ErrInvalidPhase, c.session.phase)
	}
	if err == nil {
		err = ValidateSet(questions)
	}
	if err != nil {
		c.session.phase = PhaseFailed
		c.log.Error("question load failed", zap.Error(err))
		c.surface.ShowError(err)
		return err
	}

	c.session.questions = questions
	c.session.index = 0
	c.session.score = 0
	c.log.Info("questions loaded", zap.Int("count", len(questions)))
	c.present(0)
	return nil
}

// Load runs Begin, src.Load and Loaded in sequence on the calling goroutine.
func (c *Controller) Load(ctx context.Context, src Source) error {
	if err := c.Begin(); err != nil {
		return err
	}
	qs, err := src.Load(ctx)
	return c.Loaded(qs, err)
}

func (c *Controller) present(index int) {
	q := c.session.questions[index]
	c.session.index = index
	c.session.phase = PhasePresenting

	c.surface.SetPrompt(q.Prompt)
	c.surface.SetOptions(q.Choices())
	c.surface.SetFeedback("", ToneNeutral)
	c.surface.SetProgress(c.session.Progress())
}

// Redraw presents the active question again. Prior feedback and option
// marks are cleared; the question stays unanswered.
func (c *Controller) Redraw() error {
	if c.session.phase != PhasePresenting {
		return fmt.Errorf("redraw: %w (phase %s)", ErrInvalidPhase, c.session.phase)
	}
	c.present(c.session.index)
	return nil
}

// Submit answers the question at index question with the option at index
// option. Only the first selection for the active question is accepted.
func (c *Controller) Submit(question, option int) (Outcome, error) {
	switch phase := c.session.phase; {
	case phase == PhasePresenting:
	case phase == PhaseAnswered || phase.Terminal():
		return Outcome{}, ErrNotAccepting
	default:
		return Outcome{}, fmt.Errorf("submit: %w (phase %s)", ErrInvalidPhase, c.session.phase)
	}
	if question != c.session.index {
		return Outcome{}, ErrStaleSelection
	}

	q := c.session.Current()
	if option < 0 || option >= len(q.Options) {
		return Outcome{}, fmt.Errorf("%w: %d", ErrUnknownOption, option)
	}

	out := Outcome{
		Question: question,
		Option:   option,
		Correct:  q.Options[option] == q.CorrectAnswer,
	}

	if out.Correct {
		c.surface.MarkOption(option, MarkCorrect)
		c.surface.SetFeedback(FeedbackCorrect, TonePositive)
		c.session.score++
	} else {
		c.surface.MarkOption(option, MarkIncorrect)
		c.surface.SetFeedback(FeedbackIncorrect, ToneEncouraging)
		c.surface.MarkOption(q.CorrectIndex(), MarkCorrect)
	}

	c.session.phase = PhaseAnswered
	c.log.Debug("answer recorded",
		zap.Int("question", question),
		zap.Int("option", option),
		zap.Bool("correct", out.Correct),
		zap.Int("score", c.session.score),
	)
	c.timer.AfterFeedback(c.delay, question)
	return out, nil
}

// Advance moves past the answered question at index question, presenting
// the next one or finishing the quiz.
func (c *Controller) Advance(question int) error {
	if c.session.phase != PhaseAnswered || question != c.session.index {
		return ErrStaleAdvance
	}

	next := c.session.index + 1
	if next < c.session.Total() {
		c.present(next)
		return nil
	}
	c.session.index = next
	c.finish()
	return nil
}

func (c *Controller) finish() {
	c.session.phase = PhaseCompleted
	c.log.Info("quiz completed",
		zap.Int("score", c.session.score),
		zap.Int("total", c.session.Total()),
	)
	c.surface.ShowCompletion(c.session.score, c.session.Total())
}
