package quiz

import (
	qz "github.com/abhisek/quizline/internal/quiz"
)

// loadedMsg carries the result of the asynchronous question fetch.
type loadedMsg struct {
	questions []qz.Question
	err       error
}

// advanceMsg fires when the feedback pause for a question is over.
type advanceMsg struct {
	question int
}
