package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizline/internal/router"
	"github.com/abhisek/quizline/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "quiz" }
func (s *stubScreen) Title() string                           { return "Quiz" }

func newTestWelcome() (*WelcomeScreen, *int) {
	calls := 0
	return New("questions_game.json", func() screen.Screen {
		calls++
		return &stubScreen{}
	}), &calls
}

func sendTicks(w *WelcomeScreen, n int) tea.Cmd {
	var cmd tea.Cmd
	for range n {
		_, cmd = w.Update(tickMsg(time.Now()))
	}
	return cmd
}

func TestPhases(t *testing.T) {
	w, _ := newTestWelcome()

	if strings.Contains(w.View(100, 30), "questions from") {
		t.Error("source line should not be visible at start")
	}

	sendTicks(w, 3)
	view := w.View(100, 30)
	if !strings.Contains(view, "questions from questions_game.json") {
		t.Error("expected source line after the banner delay")
	}
	if strings.Contains(view, "press any key") {
		t.Error("start hint should wait until the splash settles")
	}

	if cmd := sendTicks(w, 6); cmd != nil {
		t.Error("expected ticking to stop once ready")
	}
	if !strings.Contains(w.View(100, 30), "press any key to start") {
		t.Error("expected start hint")
	}
}

func TestKeyIgnoredWhileAnimating(t *testing.T) {
	w, calls := newTestWelcome()
	sendTicks(w, 2)

	if _, cmd := w.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("expected no transition before the splash settles")
	}
	if *calls != 0 {
		t.Errorf("factory called %d times, want 0", *calls)
	}
	if len(w.KeyHints()) != 0 {
		t.Error("expected no hints while animating")
	}
}

func TestTransitionOnce(t *testing.T) {
	w, calls := newTestWelcome()
	sendTicks(w, 9)

	_, cmd := w.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if cmd == nil {
		t.Fatal("expected transition command")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if msg.Screen.Title() != "Quiz" {
		t.Errorf("replaced with %q", msg.Screen.Title())
	}

	if _, cmd := w.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("expected a single transition")
	}
	if *calls != 1 {
		t.Errorf("factory called %d times, want 1", *calls)
	}
}

func TestCompactBanner(t *testing.T) {
	if !strings.Contains(RenderBanner(40), "Q U I Z L I N E") {
		t.Error("expected compact banner on narrow terminals")
	}
}
