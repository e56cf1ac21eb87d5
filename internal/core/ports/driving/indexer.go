package driving

import (
	"context"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
)

// IndexManager runs document ingestion. Only one run may be active at a
// time; starting a second returns domain.ErrIndexingInProgress.
type IndexManager interface {
	// Run executes an indexing run to completion and returns its report.
	// The run honours Stop and context cancellation at file boundaries.
	Run(ctx context.Context, mode domain.IndexMode) (*domain.IndexReport, error)

	// Stop requests a cooperative stop. The active run finishes the file
	// in flight and returns. No-op when nothing is running.
	Stop()

	// IsIndexing reports whether a run is active.
	IsIndexing() bool

	// Status returns live progress of the active run.
	Status() domain.IndexStatus

	// Stats reports the persisted state of the index.
	Stats(ctx context.Context) (*domain.IndexStats, error)
}
