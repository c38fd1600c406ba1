package quiz

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"
)

// recordingSurface keeps the latest rendered state and a history of
// progress values.
type recordingSurface struct {
	prompt     string
	choices    []Choice
	marks      map[int]Mark
	feedback   string
	tone       Tone
	progress   []float64
	completed  bool
	score      int
	total      int
	err        error
	promptsSet []string
}

func newRecordingSurface() *recordingSurface {
	return &recordingSurface{marks: map[int]Mark{}}
}

func (s *recordingSurface) SetPrompt(text string) {
	s.prompt = text
	s.promptsSet = append(s.promptsSet, text)
}

func (s *recordingSurface) SetOptions(choices []Choice) {
	s.choices = choices
	s.marks = map[int]Mark{}
}

func (s *recordingSurface) SetFeedback(text string, tone Tone) {
	s.feedback = text
	s.tone = tone
}

func (s *recordingSurface) MarkOption(index int, mark Mark) { s.marks[index] = mark }
func (s *recordingSurface) SetProgress(f float64)          { s.progress = append(s.progress, f) }
func (s *recordingSurface) ShowError(err error)            { s.err = err }

func (s *recordingSurface) ShowCompletion(score, total int) {
	s.completed = true
	s.score = score
	s.total = total
}

// manualTimer records scheduled advances; tests fire them by hand.
type manualTimer struct {
	pending []int
	delays  []time.Duration
}

func (m *manualTimer) AfterFeedback(d time.Duration, question int) {
	m.pending = append(m.pending, question)
	m.delays = append(m.delays, d)
}

func (m *manualTimer) fire(t *testing.T, c *Controller) {
	t.Helper()
	if len(m.pending) == 0 {
		t.Fatal("no advance scheduled")
	}
	q := m.pending[0]
	m.pending = m.pending[1:]
	if err := c.Advance(q); err != nil {
		t.Fatalf("Advance(%d): %v", q, err)
	}
}

type staticSource struct {
	questions []Question
	err       error
}

func (s staticSource) Name() string { return "static" }
func (s staticSource) Load(context.Context) ([]Question, error) {
	return s.questions, s.err
}

func twoPlusTwo() Question {
	return Question{Prompt: "2+2?", Options: []string{"3", "4"}, CorrectAnswer: "4"}
}

func newLoaded(t *testing.T, qs ...Question) (*Controller, *recordingSurface, *manualTimer) {
	t.Helper()
	surface := newRecordingSurface()
	timer := &manualTimer{}
	c := NewController(surface, timer)
	if err := c.Load(context.Background(), staticSource{questions: qs}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return c, surface, timer
}

func checkInvariant(t *testing.T, c *Controller) {
	t.Helper()
	s := c.Snapshot()
	if s.Score < 0 || s.Score > s.Index || s.Index > s.Total {
		t.Fatalf("invariant violated: score=%d index=%d total=%d", s.Score, s.Index, s.Total)
	}
}

func TestScenarioA_CorrectSingle(t *testing.T) {
	c, surface, timer := newLoaded(t, twoPlusTwo())

	out, err := c.Submit(0, 1)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !out.Correct {
		t.Error("expected correct outcome")
	}
	if got := c.Snapshot().Score; got != 1 {
		t.Errorf("score = %d, want 1", got)
	}
	if surface.marks[1] != MarkCorrect {
		t.Errorf("option 1 mark = %v, want correct", surface.marks[1])
	}
	if len(surface.marks) != 1 {
		t.Errorf("expected exactly one marked option, got %v", surface.marks)
	}
	if surface.feedback != FeedbackCorrect || surface.tone != TonePositive {
		t.Errorf("feedback = %q/%v", surface.feedback, surface.tone)
	}

	timer.fire(t, c)
	if !surface.completed {
		t.Fatal("expected completion view")
	}
	if surface.score != 1 || surface.total != 1 {
		t.Errorf("completion = %d out of %d, want 1 out of 1", surface.score, surface.total)
	}
	if c.Snapshot().Phase != PhaseCompleted {
		t.Errorf("phase = %s", c.Snapshot().Phase)
	}
	checkInvariant(t, c)
}

func TestScenarioB_IncorrectSingle(t *testing.T) {
	c, surface, timer := newLoaded(t, twoPlusTwo())

	out, err := c.Submit(0, 0)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if out.Correct {
		t.Error("expected incorrect outcome")
	}
	if got := c.Snapshot().Score; got != 0 {
		t.Errorf("score = %d, want 0", got)
	}
	if surface.marks[0] != MarkIncorrect {
		t.Errorf("chosen mark = %v, want incorrect", surface.marks[0])
	}
	if surface.marks[1] != MarkCorrect {
		t.Errorf("answer %q not revealed", "4")
	}
	if surface.feedback != FeedbackIncorrect || surface.tone != ToneEncouraging {
		t.Errorf("feedback = %q/%v", surface.feedback, surface.tone)
	}

	timer.fire(t, c)
	if surface.score != 0 || surface.total != 1 {
		t.Errorf("completion = %d out of %d, want 0 out of 1", surface.score, surface.total)
	}
}

func TestScenarioC_TwoQuestionsInOrder(t *testing.T) {
	q2 := Question{Prompt: "Capital of France?", Options: []string{"Paris", "Rome", "Oslo"}, CorrectAnswer: "Paris"}
	c, surface, timer := newLoaded(t, twoPlusTwo(), q2)

	if _, err := c.Submit(0, 1); err != nil {
		t.Fatal(err)
	}
	checkInvariant(t, c)
	timer.fire(t, c)

	if surface.prompt != q2.Prompt {
		t.Fatalf("prompt = %q, want %q", surface.prompt, q2.Prompt)
	}
	if len(surface.marks) != 0 || surface.feedback != "" {
		t.Errorf("styling leaked into next question: marks=%v feedback=%q", surface.marks, surface.feedback)
	}

	if _, err := c.Submit(1, 2); err != nil {
		t.Fatal(err)
	}
	checkInvariant(t, c)
	timer.fire(t, c)

	if surface.score != 1 || surface.total != 2 {
		t.Errorf("completion = %d out of %d, want 1 out of 2", surface.score, surface.total)
	}
	want := []string{"2+2?", "Capital of France?"}
	if !reflect.DeepEqual(surface.promptsSet, want) {
		t.Errorf("presented = %v, want %v", surface.promptsSet, want)
	}
}

func TestScenarioD_LoadFailure(t *testing.T) {
	surface := newRecordingSurface()
	c := NewController(surface, &manualTimer{})

	loadErr := &LoadError{Source: "questions_game.json", Err: errors.New("connection refused")}
	err := c.Load(context.Background(), staticSource{err: loadErr})
	if err == nil {
		t.Fatal("expected error")
	}
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LoadError, got %T", err)
	}
	if surface.err == nil {
		t.Error("expected error to be surfaced")
	}
	if len(surface.promptsSet) != 0 {
		t.Errorf("no question should be presented, got %v", surface.promptsSet)
	}
	if c.Snapshot().Phase != PhaseFailed {
		t.Errorf("phase = %s, want failed", c.Snapshot().Phase)
	}
	if _, err := c.Submit(0, 0); !errors.Is(err, ErrNotAccepting) {
		t.Errorf("Submit after failure = %v, want ErrNotAccepting", err)
	}
}

func TestLoad_EmptySet(t *testing.T) {
	surface := newRecordingSurface()
	c := NewController(surface, &manualTimer{})

	err := c.Load(context.Background(), staticSource{questions: nil})
	if !errors.Is(err, ErrEmptyQuestionSet) {
		t.Fatalf("err = %v, want ErrEmptyQuestionSet", err)
	}
	if len(surface.progress) != 0 {
		t.Error("progress must not be rendered for an empty set")
	}
}

func TestLoad_MalformedRecord(t *testing.T) {
	bad := Question{Prompt: "?", Options: []string{"a", "b"}, CorrectAnswer: "c"}
	c := NewController(newRecordingSurface(), &manualTimer{})

	err := c.Load(context.Background(), staticSource{questions: []Question{twoPlusTwo(), bad}})
	var re *RecordError
	if !errors.As(err, &re) {
		t.Fatalf("err = %v, want *RecordError", err)
	}
	if re.Index != 1 {
		t.Errorf("record index = %d, want 1", re.Index)
	}
}

func TestPresent_LabelsAndProgress(t *testing.T) {
	q := Question{Prompt: "Pick", Options: []string{"alpha", "beta", "gamma"}, CorrectAnswer: "beta"}
	c, surface, timer := newLoaded(t, q, q, q, q)

	labels := make([]string, len(surface.choices))
	for i, ch := range surface.choices {
		labels[i] = ch.Label
	}
	want := []string{"1. alpha", "2. beta", "3. gamma"}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("labels = %v, want %v", labels, want)
	}

	for i := 0; i < 4; i++ {
		if _, err := c.Submit(i, 0); err != nil {
			t.Fatalf("Submit(%d): %v", i, err)
		}
		timer.fire(t, c)
		checkInvariant(t, c)
	}

	wantProgress := []float64{0.25, 0.5, 0.75, 1}
	if !reflect.DeepEqual(surface.progress, wantProgress) {
		t.Errorf("progress = %v, want %v", surface.progress, wantProgress)
	}
	for i := 1; i < len(surface.progress); i++ {
		if surface.progress[i] <= surface.progress[i-1] {
			t.Errorf("progress not increasing at %d", i)
		}
	}
}

func TestSubmit_RejectsSecondAnswer(t *testing.T) {
	c, surface, timer := newLoaded(t, twoPlusTwo())

	if _, err := c.Submit(0, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Submit(0, 1); !errors.Is(err, ErrNotAccepting) {
		t.Fatalf("second Submit = %v, want ErrNotAccepting", err)
	}
	if c.Snapshot().Score != 0 {
		t.Error("second answer must not change score")
	}
	if surface.marks[0] != MarkIncorrect {
		t.Error("marks changed by rejected answer")
	}
	if len(timer.pending) != 1 {
		t.Errorf("scheduled %d advances, want 1", len(timer.pending))
	}
}

func TestSubmit_StaleSelection(t *testing.T) {
	c, _, timer := newLoaded(t, twoPlusTwo(), twoPlusTwo())

	if _, err := c.Submit(0, 1); err != nil {
		t.Fatal(err)
	}
	timer.fire(t, c)

	// A click bound to question 0 arriving after question 1 is shown.
	if _, err := c.Submit(0, 1); !errors.Is(err, ErrStaleSelection) {
		t.Fatalf("stale Submit = %v, want ErrStaleSelection", err)
	}
	if got := c.Snapshot(); got.Score != 1 || got.Phase != PhasePresenting {
		t.Errorf("snapshot after stale click = %+v", got)
	}
}

func TestSubmit_UnknownOption(t *testing.T) {
	c, _, _ := newLoaded(t, twoPlusTwo())

	for _, opt := range []int{-1, 2} {
		if _, err := c.Submit(0, opt); !errors.Is(err, ErrUnknownOption) {
			t.Errorf("Submit(0, %d) = %v, want ErrUnknownOption", opt, err)
		}
	}
	if c.Snapshot().Phase != PhasePresenting {
		t.Error("unknown option must leave the question open")
	}
}

func TestAdvance_Stale(t *testing.T) {
	c, _, timer := newLoaded(t, twoPlusTwo(), twoPlusTwo())

	if err := c.Advance(0); !errors.Is(err, ErrStaleAdvance) {
		t.Fatalf("Advance before answer = %v, want ErrStaleAdvance", err)
	}
	if _, err := c.Submit(0, 1); err != nil {
		t.Fatal(err)
	}
	timer.fire(t, c)
	if err := c.Advance(0); !errors.Is(err, ErrStaleAdvance) {
		t.Fatalf("duplicate Advance = %v, want ErrStaleAdvance", err)
	}
	if c.Snapshot().Index != 1 {
		t.Errorf("index = %d, want 1", c.Snapshot().Index)
	}
}

func TestRedraw_Idempotent(t *testing.T) {
	q := Question{Prompt: "Pick", Options: []string{"x", "y"}, CorrectAnswer: "y"}
	c, surface, _ := newLoaded(t, q)

	first := surface.choices
	surface.SetFeedback("leftover", TonePositive)
	surface.MarkOption(0, MarkIncorrect)

	if err := c.Redraw(); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, surface.choices) {
		t.Errorf("choices changed: %v vs %v", first, surface.choices)
	}
	if surface.feedback != "" || surface.tone != ToneNeutral || len(surface.marks) != 0 {
		t.Errorf("redraw left styling: feedback=%q marks=%v", surface.feedback, surface.marks)
	}
}

func TestIncorrect_DuplicateAnswerMarksFirstOnly(t *testing.T) {
	c, surface, _ := newLoaded(t, Question{
		Prompt: "Pick yes", Options: []string{"no", "yes", "yes"}, CorrectAnswer: "yes",
	})

	if _, err := c.Submit(0, 0); err != nil {
		t.Fatal(err)
	}
	want := map[int]Mark{0: MarkIncorrect, 1: MarkCorrect}
	if !reflect.DeepEqual(surface.marks, want) {
		t.Errorf("marks = %v, want %v", surface.marks, want)
	}
}

func TestTerminal_NoFurtherInput(t *testing.T) {
	c, surface, timer := newLoaded(t, twoPlusTwo())
	if _, err := c.Submit(0, 1); err != nil {
		t.Fatal(err)
	}
	timer.fire(t, c)

	prompts := len(surface.promptsSet)
	if _, err := c.Submit(0, 1); !errors.Is(err, ErrNotAccepting) {
		t.Errorf("Submit after completion = %v", err)
	}
	if err := c.Advance(0); !errors.Is(err, ErrStaleAdvance) {
		t.Errorf("Advance after completion = %v", err)
	}
	if len(surface.promptsSet) != prompts {
		t.Error("no question may be presented after completion")
	}
	if got := c.Snapshot(); got.Index != got.Total {
		t.Errorf("index = %d, total = %d", got.Index, got.Total)
	}
}

func TestPhaseGuards(t *testing.T) {
	c := NewController(newRecordingSurface(), &manualTimer{})

	if err := c.Loaded(nil, nil); !errors.Is(err, ErrInvalidPhase) {
		t.Errorf("Loaded before Begin = %v", err)
	}
	if _, err := c.Submit(0, 0); !errors.Is(err, ErrInvalidPhase) {
		t.Errorf("Submit while idle = %v", err)
	}
	if err := c.Begin(); err != nil {
		t.Fatal(err)
	}
	if err := c.Begin(); !errors.Is(err, ErrInvalidPhase) {
		t.Errorf("second Begin = %v", err)
	}
	if _, err := c.Submit(0, 0); !errors.Is(err, ErrInvalidPhase) {
		t.Errorf("Submit while loading = %v", err)
	}
}

func TestFeedbackDelay(t *testing.T) {
	tests := []struct {
		name string
		opts []ControllerOption
		want time.Duration
	}{
		{"default", nil, DefaultFeedbackDelay},
		{"override", []ControllerOption{WithFeedbackDelay(500 * time.Millisecond)}, 500 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timer := &manualTimer{}
			c := NewController(newRecordingSurface(), timer, tt.opts...)
			if err := c.Load(context.Background(), staticSource{questions: []Question{twoPlusTwo()}}); err != nil {
				t.Fatal(err)
			}
			if _, err := c.Submit(0, 0); err != nil {
				t.Fatal(err)
			}
			if timer.delays[0] != tt.want {
				t.Errorf("delay = %v, want %v", timer.delays[0], tt.want)
			}
		})
	}
}

func TestScoreNeverExceedsAnswered(t *testing.T) {
	qs := make([]Question, 6)
	for i := range qs {
		qs[i] = Question{
			Prompt:        fmt.Sprintf("q%d", i),
			Options:       []string{"a", "b", "c"},
			CorrectAnswer: []string{"a", "b", "c"}[i%3],
		}
	}
	c, surface, timer := newLoaded(t, qs...)

	for i := range qs {
		if _, err := c.Submit(i, 1); err != nil {
			t.Fatal(err)
		}
		checkInvariant(t, c)
		timer.fire(t, c)
		checkInvariant(t, c)
	}
	if surface.score != 2 || surface.total != 6 {
		t.Errorf("completion = %d out of %d, want 2 out of 6", surface.score, surface.total)
	}
}

func TestPhaseTerminal(t *testing.T) {
	for _, p := range []Phase{PhaseIdle, PhaseLoading, PhasePresenting, PhaseAnswered, PhaseCompleted, PhaseFailed} {
		want := p == PhaseCompleted || p == PhaseFailed
		if got := p.Terminal(); got != want {
			t.Errorf("%s.Terminal() = %v, want %v", p, got, want)
		}
	}
}
