package driven

import "github.com/NikolaykoSergey/lifta-cli/internal/core/domain"

// AIConfigValidator checks provider settings against the live backend
// before they are saved, so a typo in a model name or a revoked API key
// surfaces at settings time instead of at the next index run.
type AIConfigValidator interface {
	// ValidateEmbedding probes the embedding backend for the given settings.
	// Unconfigured settings are valid.
	ValidateEmbedding(config *domain.EmbeddingSettings) error

	// ValidateLLM probes the LLM backend for the given settings.
	// Unconfigured settings are valid.
	ValidateLLM(config *domain.LLMSettings) error
}
