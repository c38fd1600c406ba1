package quiz

import (
	"fmt"
	"slices"
)

// Question is one quiz item. It is never modified after a set is loaded.
type Question struct {
	Prompt        string   `json:"question" yaml:"question"`
	Options       []string `json:"options" yaml:"options"`
	CorrectAnswer string   `json:"correctAnswer" yaml:"correctAnswer"`
}

// CorrectIndex returns the position of the option matching CorrectAnswer,
// or -1 when no option matches.
func (q Question) CorrectIndex() int {
	return slices.Index(q.Options, q.CorrectAnswer)
}

// Choice is one selectable option control as handed to a Surface.
type Choice struct {
	Index int
	Text  string
	Label string
}

// Choices builds the ordered option controls for q.
func (q Question) Choices() []Choice {
	out := make([]Choice, len(q.Options))
	for i, opt := range q.Options {
		out[i] = Choice{
			Index: i,
			Text:  opt,
			Label: fmt.Sprintf("%d. %s", i+1, opt),
		}
	}
	return out
}

// ValidateSet checks a freshly loaded question set. The whole set is
// rejected on the first bad record.
func ValidateSet(questions []Question) error {
	if len(questions) == 0 {
		return ErrEmptyQuestionSet
	}
	for i, q := range questions {
		switch {
		case q.Prompt == "":
			return &RecordError{Index: i, Reason: "empty question text"}
		case len(q.Options) < 2:
			return &RecordError{Index: i, Reason: fmt.Sprintf("need at least 2 options, got %d", len(q.Options))}
		case q.CorrectIndex() < 0:
			return &RecordError{Index: i, Reason: fmt.Sprintf("correct answer %q is not one of the options", q.CorrectAnswer)}
		}
	}
	return nil
}
