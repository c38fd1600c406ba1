package quiz

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	qz "github.com/abhisek/quizline/internal/quiz"
	"github.com/abhisek/quizline/internal/router"
	"github.com/abhisek/quizline/internal/screens/summary"
	"github.com/abhisek/quizline/internal/ui/components"
)

type staticSource struct {
	questions []qz.Question
	err       error
}

func (s staticSource) Name() string { return "static" }
func (s staticSource) Load(context.Context) ([]qz.Question, error) {
	return s.questions, s.err
}

func testQuestions() []qz.Question {
	return []qz.Question{
		{Prompt: "What is 2+2?", Options: []string{"3", "4"}, CorrectAnswer: "4"},
		{Prompt: "Capital of France?", Options: []string{"Paris", "Rome", "Oslo"}, CorrectAnswer: "Paris"},
	}
}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// loaded returns a screen that has finished loading testQuestions.
func loaded(t *testing.T) *QuizScreen {
	t.Helper()
	s := New(staticSource{questions: testQuestions()}, Options{FeedbackDelay: time.Millisecond})
	if cmd := s.Init(); cmd == nil {
		t.Fatal("expected Init to start loading")
	}
	if _, cmd := s.Update(loadedMsg{questions: testQuestions()}); cmd != nil {
		t.Fatalf("unexpected command after load: %T", cmd())
	}
	return s
}

// answer presses k and feeds the resulting choice back into the screen.
func answer(t *testing.T, s *QuizScreen, k rune) tea.Cmd {
	t.Helper()
	_, cmd := s.Update(key(k))
	if cmd == nil {
		t.Fatalf("expected a command for key %q", k)
	}
	msg, ok := cmd().(components.OptionChosenMsg)
	if !ok {
		t.Fatalf("expected OptionChosenMsg for key %q", k)
	}
	_, cmd = s.Update(msg)
	return cmd
}

func TestQuizScreen_LoadingView(t *testing.T) {
	s := New(staticSource{}, Options{})
	s.Init()
	if view := s.View(80, 20); !strings.Contains(view, "Loading questions from static") {
		t.Errorf("loading view = %q", view)
	}
	if got := s.ctrl.Snapshot().Phase; got != qz.PhaseLoading {
		t.Errorf("phase = %s, want loading", got)
	}
}

func TestQuizScreen_LoadCommandFetches(t *testing.T) {
	s := New(staticSource{questions: testQuestions()}, Options{})
	msg := s.load()()
	lm, ok := msg.(loadedMsg)
	if !ok || len(lm.questions) != 2 || lm.err != nil {
		t.Fatalf("unexpected load result: %#v", msg)
	}
}

func TestQuizScreen_PresentsFirstQuestion(t *testing.T) {
	s := loaded(t)
	view := s.View(80, 20)
	for _, want := range []string{"Question 1 of 2", "What is 2+2?", "1. 3", "2. 4", " 50%"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if score, total := s.Score(); score != 0 || total != 2 {
		t.Errorf("Score() = %d/%d, want 0/2", score, total)
	}
}

func TestQuizScreen_CorrectAnswer(t *testing.T) {
	s := loaded(t)
	if cmd := answer(t, s, '2'); cmd == nil {
		t.Fatal("expected the advance timer to be scheduled")
	}
	if !strings.Contains(s.View(80, 20), "Great job!") {
		t.Error("expected positive feedback")
	}
	if score, _ := s.Score(); score != 1 {
		t.Errorf("score = %d, want 1", score)
	}

	// Further input is ignored until the advance fires.
	if _, cmd := s.Update(key('1')); cmd != nil {
		t.Error("expected keys to be ignored while answered")
	}
}

func TestQuizScreen_IncorrectAnswerMarksBoth(t *testing.T) {
	s := loaded(t)
	answer(t, s, '1')

	view := s.View(80, 20)
	if !strings.Contains(view, "No sweat, you're still learning!") {
		t.Error("expected encouraging feedback")
	}
	if !strings.Contains(view, "1. 3  ✗") || !strings.Contains(view, "2. 4  ✓") {
		t.Errorf("expected chosen and correct options to be marked:\n%s", view)
	}
}

func TestQuizScreen_AdvanceAndComplete(t *testing.T) {
	s := loaded(t)
	answer(t, s, '2')

	s.Update(advanceMsg{question: 0})
	if !strings.Contains(s.View(80, 20), "Capital of France?") {
		t.Fatal("expected the second question")
	}

	// A stale timer for the first question is ignored.
	s.Update(advanceMsg{question: 0})
	if s.ctrl.Snapshot().Index != 1 {
		t.Fatal("stale advance moved the quiz")
	}

	answer(t, s, '3')
	_, cmd := s.Update(advanceMsg{question: 1})
	if cmd == nil {
		t.Fatal("expected a screen change on completion")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	sum, ok := msg.Screen.(*summary.SummaryScreen)
	if !ok {
		t.Fatalf("expected summary screen, got %T", msg.Screen)
	}
	if score, total := sum.Score(); score != 1 || total != 2 {
		t.Errorf("summary score = %d/%d, want 1/2", score, total)
	}
}

func TestQuizScreen_ChoiceForEarlierQuestionIgnored(t *testing.T) {
	s := loaded(t)
	answer(t, s, '2')
	s.Update(advanceMsg{question: 0})

	s.Update(components.OptionChosenMsg{Question: 0, Index: 0})
	snap := s.ctrl.Snapshot()
	if snap.Phase != qz.PhasePresenting || snap.Index != 1 || snap.Score != 1 {
		t.Errorf("stale choice changed state: %+v", snap)
	}

	s.Update(components.OptionChosenMsg{Question: 1, Index: 0})
	if got := s.ctrl.Snapshot().Score; got != 2 {
		t.Errorf("score = %d, want 2", got)
	}
}

func TestQuizScreen_ArrowSelection(t *testing.T) {
	s := loaded(t)
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	s.Update(cmd())
	if score, _ := s.Score(); score != 1 {
		t.Errorf("score = %d, want 1", score)
	}
}

func TestQuizScreen_LoadFailure(t *testing.T) {
	s := New(staticSource{}, Options{})
	s.Init()
	loadErr := &qz.LoadError{Source: "static", Err: errors.New("connection refused")}
	s.Update(loadedMsg{err: loadErr})

	view := s.View(80, 20)
	if !strings.Contains(view, "Could not start the quiz") || !strings.Contains(view, "connection refused") {
		t.Errorf("error view = %q", view)
	}

	_, cmd := s.Update(key('x'))
	if cmd == nil {
		t.Fatal("expected any key to quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestQuizScreen_EmptySetFails(t *testing.T) {
	s := New(staticSource{}, Options{})
	s.Init()
	s.Update(loadedMsg{})

	if got := s.ctrl.Snapshot().Phase; got != qz.PhaseFailed {
		t.Fatalf("phase = %s, want failed", got)
	}
	if !errors.Is(s.err, qz.ErrEmptyQuestionSet) {
		t.Errorf("err = %v", s.err)
	}
}

func TestQuizScreen_KeyHints(t *testing.T) {
	s := loaded(t)
	if len(s.KeyHints()) != 4 {
		t.Errorf("KeyHints length = %d, want 4", len(s.KeyHints()))
	}
}
