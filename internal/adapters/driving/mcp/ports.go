package mcp

import (
	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driving"
)

// Ports bundles the core services the MCP server exposes. Query is the
// only required one: a server without Index or Feedback still runs, and
// the tools and resources that need them report an error when invoked.
type Ports struct {
	// Query answers questions against the indexed documentation.
	Query driving.QueryOrchestrator

	// Index reports index state.
	Index driving.IndexManager

	// Feedback exposes recorded verdicts and the golden dataset.
	Feedback driving.FeedbackService
}

// Validate checks that the required ports are present.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryOrchestrator
	}
	return nil
}
