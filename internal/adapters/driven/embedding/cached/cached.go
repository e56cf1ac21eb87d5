// Package cached decorates an embedding service with a persistent cache.
// Cache hits fill their slots directly; only the misses reach the backend,
// in bounded batches, and the combined result preserves input order.
package cached

import (
	"context"
	"fmt"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driven"
	"github.com/NikolaykoSergey/lifta-cli/internal/logger"
)

// Ensure Service implements the interface.
var _ driven.EmbeddingService = (*Service)(nil)

// DefaultBatchSize bounds how many uncached texts go to the backend per
// call.
const DefaultBatchSize = 32

// Service wraps an embedding service with a cache.
type Service struct {
	inner     driven.EmbeddingService
	cache     driven.EmbeddingCache
	batchSize int
}

// New creates a cached embedding service around the given backend.
func New(inner driven.EmbeddingService, cache driven.EmbeddingCache) *Service {
	return &Service{
		inner:     inner,
		cache:     cache,
		batchSize: DefaultBatchSize,
	}
}

// Embed returns the cached vector when present, otherwise embeds and
// stores it. Cache write failures are logged, never fatal.
func (s *Service) Embed(ctx context.Context, text string) ([]float32, error) {
	if vector, ok := s.cache.Get(text); ok {
		return vector, nil
	}

	vector, err := s.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Put(text, vector); err != nil {
		logger.Debug("embedding cache write: %v", err)
	}
	return vector, nil
}

// EmbedBatch embeds the texts, serving hits from the cache and sending the
// misses to the backend in batches. Vectors come back in input order.
func (s *Service) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	result := make([][]float32, len(texts))
	var missIdx []int
	var missTexts []string
	for i, text := range texts {
		if vector, ok := s.cache.Get(text); ok {
			result[i] = vector
			continue
		}
		missIdx = append(missIdx, i)
		missTexts = append(missTexts, text)
	}

	for start := 0; start < len(missTexts); start += s.batchSize {
		end := start + s.batchSize
		if end > len(missTexts) {
			end = len(missTexts)
		}

		part, err := s.inner.EmbedBatch(ctx, missTexts[start:end])
		if err != nil {
			return nil, err
		}
		if len(part) != end-start {
			return nil, fmt.Errorf("embedding backend returned %d vectors for %d texts", len(part), end-start)
		}

		for j, vector := range part {
			idx := missIdx[start+j]
			result[idx] = vector
			if err := s.cache.Put(texts[idx], vector); err != nil {
				logger.Debug("embedding cache write: %v", err)
			}
		}
	}

	return result, nil
}

// Dimensions returns the backend's embedding vector size.
func (s *Service) Dimensions() int {
	return s.inner.Dimensions()
}

// ModelName returns the backend's model name.
func (s *Service) ModelName() string {
	return s.inner.ModelName()
}

// Ping validates the backend is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.inner.Ping(ctx)
}

// Close releases backend resources.
func (s *Service) Close() error {
	return s.inner.Close()
}
