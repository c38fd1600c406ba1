package quiz

// Phase is the controller's position in the quiz flow.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhasePresenting
	PhaseAnswered
	PhaseCompleted
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhasePresenting:
		return "presenting"
	case PhaseAnswered:
		return "answered"
	case PhaseCompleted:
		return "completed"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition can leave p.
func (p Phase) Terminal() bool {
	return p == PhaseCompleted || p == PhaseFailed
}

// Session is the mutable state of one quiz run.
type Session struct {
	questions []Question
	index     int
	score     int
	phase     Phase
}

// Current returns the active question. It must only be called while a
// question is presented or answered.
func (s *Session) Current() Question {
	return s.questions[s.index]
}

// Total returns the number of questions in the set.
func (s *Session) Total() int {
	return len(s.questions)
}

// Progress returns the fraction of the quiz reached by the active question.
func (s *Session) Progress() float64 {
	if len(s.questions) == 0 {
		return 0
	}
	return float64(s.index+1) / float64(len(s.questions))
}

// Snapshot is a read-only view of a Session.
type Snapshot struct {
	Phase Phase
	Index int
	Score int
	Total int
}

// Snapshot copies the observable session state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Phase: s.phase,
		Index: s.index,
		Score: s.score,
		Total: len(s.questions),
	}
}
