// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

// QuestionSubmitted is sent when the user submits a question.
type QuestionSubmitted struct {
	Question string
}

// AnswerReceived carries the generated answer back to the model.
type AnswerReceived struct {
	Question string
	Answer   *domain.Answer
	Err      error
}

// IngestCompleted carries the outcome of an /ingest command.
type IngestCompleted struct {
	Result *domain.IngestResult
	Err    error
}

// ModelChanged is sent when the /model command selects a model.
type ModelChanged struct {
	Model string
}

// ErrorOccurred is sent when an error occurs.
type ErrorOccurred struct {
	Err error
}
