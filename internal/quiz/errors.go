package quiz

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyQuestionSet = errors.New("question set is empty")
	ErrInvalidPhase     = errors.New("operation not allowed in current phase")
	ErrNotAccepting     = errors.New("not accepting answers")
	ErrStaleSelection   = errors.New("selection is for a question that is not active")
	ErrStaleAdvance     = errors.New("advance is for a question that is not answered")
	ErrUnknownOption    = errors.New("unknown option")
)

// LoadError reports that the question set could not be fetched or parsed.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load questions from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// RecordError reports a question whose shape makes the set unusable.
type RecordError struct {
	Index  int
	Reason string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("question %d: %s", e.Index+1, e.Reason)
}
