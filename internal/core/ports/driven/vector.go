package driven

import (
	"context"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
)

// VectorStore provides semantic similarity search over fragments.
// It owns the collection lifecycle: creation, dimension verification,
// clearing.
type VectorStore interface {
	// EnsureCollection creates the collection when absent and verifies the
	// dimensionality when present. A dimension conflict returns
	// domain.ErrDimensionMismatch; an unreachable backend returns
	// domain.ErrVectorStoreUnavailable.
	EnsureCollection(ctx context.Context, dimensions int) error

	// Add upserts fragments with their embeddings in bounded batches.
	// A failed batch is logged and skipped; Add only fails when the
	// backend is unreachable outright.
	Add(ctx context.Context, fragments []domain.Fragment) error

	// Search finds the limit nearest fragments to the query vector,
	// ordered by descending cosine similarity.
	Search(ctx context.Context, query []float32, limit int) ([]domain.RetrievalResult, error)

	// Clear removes every point from the collection.
	Clear(ctx context.Context) error

	// Stats reports the collection's point count and dimensionality.
	Stats(ctx context.Context) (*VectorStats, error)

	// Ping validates the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// VectorStats describes the state of the vector collection.
type VectorStats struct {
	// Points is the number of stored fragments.
	Points int

	// Dimensions is the collection's vector size.
	Dimensions int
}
