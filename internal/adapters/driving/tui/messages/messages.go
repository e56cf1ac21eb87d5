// Package messages defines Bubbletea message types for the chat interface.
// Messages represent events and command results that flow through the Elm
// architecture.
package messages

import (
	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
)

// AnswerReceived carries the result of a question back to the model.
type AnswerReceived struct {
	// Question is the query the answer responds to.
	Question string

	// Answer is the grounded answer, nil on error.
	Answer *domain.Answer

	// Err is set when the query failed.
	Err error
}

// ClarificationsReceived carries clarifying questions for an ambiguous query.
type ClarificationsReceived struct {
	// Question is the original query that needs narrowing.
	Question string

	// Questions are the clarifying questions, possibly empty.
	Questions []string

	// Err is set when generation failed.
	Err error
}

// FeedbackSaved signals that an answer verdict was recorded.
type FeedbackSaved struct {
	Verdict domain.FeedbackVerdict
	Err     error
}

// IndexStatsLoaded carries knowledge-base statistics for the welcome line.
type IndexStatsLoaded struct {
	Stats *domain.IndexStats
	Err   error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
