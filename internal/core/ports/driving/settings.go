package driving

import "github.com/NikolaykoSergey/lifta-cli/internal/core/domain"

// SettingsService manages the application settings: AI providers, the
// documents folder, chunking and chat parameters.
type SettingsService interface {
	// Get returns the current settings, with defaults filling any gap.
	Get() (*domain.AppSettings, error)

	// Save persists the settings after validating them.
	Save(settings *domain.AppSettings) error

	// SetEmbeddingProvider switches the embedding provider. A model
	// change invalidates the existing index.
	SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error

	// SetLLMProvider switches the LLM provider.
	SetLLMProvider(provider domain.AIProvider, model, apiKey string) error

	// SetDocsDir points lifta at a different documents folder.
	SetDocsDir(path string) error

	// Validate checks that the current settings are internally
	// consistent.
	Validate() error

	// GetDefaults returns the built-in default settings.
	GetDefaults() domain.AppSettings

	// ValidateEmbeddingConfig pings the configured embedding backend.
	ValidateEmbeddingConfig() error

	// ValidateLLMConfig pings the configured LLM backend.
	ValidateLLMConfig() error
}
