package ai

import (
	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driven"
)

var _ driven.AIConfigValidator = ConfigValidator{}

// ConfigValidator adapts the package-level config probes to the
// driven.AIConfigValidator port. The settings service uses it to reject a
// provider change whose backend never answers a ping.
type ConfigValidator struct{}

// NewConfigValidator creates an AI config validator.
func NewConfigValidator() ConfigValidator {
	return ConfigValidator{}
}

// ValidateEmbedding probes the embedding backend for the given settings.
// Unconfigured settings pass; there is nothing to probe.
func (ConfigValidator) ValidateEmbedding(config *domain.EmbeddingSettings) error {
	return ValidateEmbeddingConfig(config)
}

// ValidateLLM probes the LLM backend for the given settings.
// Unconfigured settings pass.
func (ConfigValidator) ValidateLLM(config *domain.LLMSettings) error {
	return ValidateLLMConfig(config)
}
