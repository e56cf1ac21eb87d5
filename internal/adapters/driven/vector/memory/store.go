// Package memory provides an in-memory vector store with brute-force
// cosine search. It backs tests and offline runs where no Qdrant
// instance is available.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Store is an in-memory implementation of driven.VectorStore.
type Store struct {
	mu         sync.RWMutex
	dimensions int
	fragments  []domain.Fragment
}

// New creates a new in-memory vector store.
func New() *Store {
	return &Store{}
}

// EnsureCollection fixes the dimensionality on first call and verifies
// it on later calls.
func (s *Store) EnsureCollection(_ context.Context, dimensions int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dimensions == 0 {
		s.dimensions = dimensions
		return nil
	}
	if s.dimensions != dimensions {
		return fmt.Errorf("%w: store holds %d-dimensional vectors, embedding model produces %d",
			domain.ErrDimensionMismatch, s.dimensions, dimensions)
	}
	return nil
}

// Add stores fragments. Later fragments with the same ID replace
// earlier ones, matching upsert semantics.
func (s *Store) Add(_ context.Context, fragments []domain.Fragment) error {
	if len(fragments) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range fragments {
		if f.ID == "" {
			f.ID = uuid.New().String()
		}
		if i := s.indexOf(f.ID); i >= 0 {
			s.fragments[i] = f
			continue
		}
		s.fragments = append(s.fragments, f)
	}
	return nil
}

// Search returns the limit nearest fragments by cosine similarity,
// highest score first.
func (s *Store) Search(_ context.Context, query []float32, limit int) ([]domain.RetrievalResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]domain.RetrievalResult, 0, len(s.fragments))
	for _, f := range s.fragments {
		results = append(results, domain.RetrievalResult{
			Fragment: f,
			Score:    cosineSimilarity(query, f.Embedding),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// Clear removes every fragment and resets the dimensionality.
func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fragments = nil
	s.dimensions = 0
	return nil
}

// Stats reports the stored point count and dimensionality.
func (s *Store) Stats(_ context.Context) (*driven.VectorStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &driven.VectorStats{
		Points:     len(s.fragments),
		Dimensions: s.dimensions,
	}, nil
}

// Ping always succeeds.
func (s *Store) Ping(_ context.Context) error {
	return nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

// indexOf returns the position of the fragment with the given ID, or -1.
// Callers must hold the lock.
func (s *Store) indexOf(id string) int {
	for i, f := range s.fragments {
		if f.ID == id {
			return i
		}
	}
	return -1
}

// cosineSimilarity computes the cosine similarity of two vectors.
// Mismatched or zero-length vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
