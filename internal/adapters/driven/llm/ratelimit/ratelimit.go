// Package ratelimit decorates an LLM service with client-side request
// pacing. Indexing with cleanup enabled fires one generation per page;
// without pacing a large documents folder can trip cloud provider limits
// in seconds.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driven"
)

// Ensure Service implements the interface.
var _ driven.LLMService = (*Service)(nil)

// Default pacing values, conservative enough for free-tier cloud keys.
const (
	DefaultRequestsPerSecond = 2.0
	DefaultBurst             = 4
)

// Service wraps an LLM service with a token-bucket limiter.
type Service struct {
	inner   driven.LLMService
	limiter *rate.Limiter
}

// New creates a rate-limited LLM service. Non-positive values fall back
// to the defaults.
func New(inner driven.LLMService, requestsPerSecond float64, burst int) *Service {
	if requestsPerSecond <= 0 {
		requestsPerSecond = DefaultRequestsPerSecond
	}
	if burst <= 0 {
		burst = DefaultBurst
	}
	return &Service{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Generate waits for a limiter slot, then delegates. Cancellation while
// waiting returns the context's error.
func (s *Service) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return s.inner.Generate(ctx, prompt, opts)
}

// ModelName returns the backend's model name.
func (s *Service) ModelName() string {
	return s.inner.ModelName()
}

// Ping delegates without consuming a limiter slot; health checks should
// not compete with generation.
func (s *Service) Ping(ctx context.Context) error {
	return s.inner.Ping(ctx)
}

// Close releases backend resources.
func (s *Service) Close() error {
	return s.inner.Close()
}
