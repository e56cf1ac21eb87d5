// Package tui provides the interactive chat interface for lifta.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driven"
	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driving"
)

// Ports aggregates the port interfaces the chat interface talks to.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query answers questions against the indexed documentation.
	Query driving.QueryOrchestrator

	// Feedback records answer verdicts. Optional; rating is disabled
	// when nil.
	Feedback driving.FeedbackService

	// Index reports knowledge-base statistics for the welcome line.
	// Optional.
	Index driving.IndexManager

	// Sessions persists chat transcripts. Optional; session logging is
	// disabled when nil.
	Sessions driven.SessionStore
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	query driving.QueryOrchestrator,
	feedback driving.FeedbackService,
	index driving.IndexManager,
) *Ports {
	return &Ports{
		Query:    query,
		Feedback: feedback,
		Index:    index,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryOrchestrator
	}
	return nil
}
