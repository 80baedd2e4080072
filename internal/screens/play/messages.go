package play

import "github.com/abhisek/lingiz/internal/quizgen"

// quizReadyMsg is sent when quiz generation and enhancement have finished.
type quizReadyMsg struct {
	Questions []quizgen.Question
	Shortfall int
	Err       error
}

// progressSavedMsg is sent after a finished session has been written to the
// progress store.
type progressSavedMsg struct {
	Err error
}
