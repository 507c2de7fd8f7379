package session

import "github.com/abhisek/grasp/internal/quiz"

// questionReadyMsg is sent when a question is ready to display. Generation
// never fails outright: the orchestrator degrades to a fallback question.
type questionReadyMsg struct {
	Question quiz.Question
}

// beginFailedMsg is sent when the session could not start at all.
type beginFailedMsg struct {
	Err error
}

// assessedMsg is sent when a submitted answer has been graded.
type assessedMsg struct {
	Result quiz.SubmitResult
	Err    error
}

// conceptDoneMsg is sent after the mastery-complete observation delay.
type conceptDoneMsg struct{}
