// Package ai builds the embedding and LLM backends from settings.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/NikolaykoSergey/lifta-cli/internal/adapters/driven/embedding/cached"
	ollamaembed "github.com/NikolaykoSergey/lifta-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/NikolaykoSergey/lifta-cli/internal/adapters/driven/embedding/openai"
	anthropicllm "github.com/NikolaykoSergey/lifta-cli/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/NikolaykoSergey/lifta-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/NikolaykoSergey/lifta-cli/internal/adapters/driven/llm/openai"
	"github.com/NikolaykoSergey/lifta-cli/internal/adapters/driven/llm/ratelimit"
	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driven"
)

// pingTimeout bounds each startup connectivity probe.
const pingTimeout = 5 * time.Second

// Fallback embedding model used when the configured backend is unreachable
// at startup. Small enough to be present on most Ollama installs.
const (
	FallbackEmbeddingModel      = "all-minilm"
	FallbackEmbeddingDimensions = 384
)

// InitResult is what InitServices managed to bring up.
type InitResult struct {
	EmbeddingService driven.EmbeddingService
	LLMService       driven.LLMService // Nil when the LLM backend is unavailable.
	Warnings         []string          // Non-fatal issues found during startup.
	FellBack         bool              // True if the fallback embedding model is in use.
}

// Close shuts down whichever services were built.
func (r *InitResult) Close() {
	if r.EmbeddingService != nil {
		r.EmbeddingService.Close()
	}
	if r.LLMService != nil {
		r.LLMService.Close()
	}
}

// InitServices builds the embedding and LLM services for the given settings.
//
// The embedding service is mandatory: when the configured backend fails
// creation or ping, a local fallback model is tried before giving up, and
// the switch is recorded in Warnings and FellBack. The fallback produces
// vectors of a different dimensionality, so an existing collection indexed
// with the primary model needs a full reindex before search works again.
//
// An unreachable LLM is a warning, not an error. Indexing without the
// cleanup pass works fine text-only; commands that generate answers check
// LLMService for nil themselves.
func InitServices(settings domain.AppSettings, cache driven.EmbeddingCache) (*InitResult, error) {
	result := &InitResult{}

	embedding, err := CreateAndValidateEmbeddingService(&settings.Embedding)
	if err == nil && embedding == nil {
		err = fmt.Errorf("%w: provider %s is missing an API key. Run 'lifta settings set-key' to fix",
			domain.ErrEmbeddingUnavailable, settings.Embedding.Provider)
	}
	if err != nil {
		fallback, fbErr := createFallbackEmbedding(settings.Embedding)
		if fbErr != nil {
			return nil, fmt.Errorf("%w (fallback %s also unreachable: %v)",
				err, FallbackEmbeddingModel, fbErr)
		}
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"embedding model %s is unreachable, using local %s (%d dimensions); run 'lifta index --full' before querying old collections",
			settings.Embedding.Model, FallbackEmbeddingModel, FallbackEmbeddingDimensions))
		result.FellBack = true
		embedding = fallback
	}
	if cache != nil {
		embedding = cached.New(embedding, cache)
	}
	result.EmbeddingService = embedding

	llm, llmErr := CreateAndValidateLLMService(&settings.LLM)
	switch {
	case llmErr != nil:
		result.Warnings = append(result.Warnings, llmErr.Error())
	case llm == nil:
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"LLM provider %s is missing an API key. Run 'lifta settings set-key' to fix",
			settings.LLM.Provider))
	default:
		result.LLMService = llm
	}

	return result, nil
}

// CreateAndValidateEmbeddingService builds the embedding service and
// confirms the backend answers. Unconfigured settings yield nil, nil.
func CreateAndValidateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'lifta doctor' to diagnose",
			domain.ErrEmbeddingUnavailable, err)
	}
	if svc == nil {
		return nil, nil
	}

	if err := pingWithTimeout(svc); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'lifta doctor' to diagnose",
			domain.ErrEmbeddingUnavailable, err)
	}
	return svc, nil
}

// CreateAndValidateLLMService builds the LLM service and confirms the
// backend answers. Unconfigured settings yield nil, nil.
func CreateAndValidateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	svc, err := CreateLLMService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'lifta doctor' to diagnose",
			domain.ErrLLMUnavailable, err)
	}
	if svc == nil {
		return nil, nil
	}

	if err := pingWithTimeout(svc); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'lifta doctor' to diagnose",
			domain.ErrLLMUnavailable, err)
	}
	return svc, nil
}

// ValidateEmbeddingConfig probes the backend an embedding configuration
// points at, without keeping the service. Used by the settings flow so bad
// credentials surface before they are saved.
func ValidateEmbeddingConfig(settings *domain.EmbeddingSettings) error {
	svc, err := CreateEmbeddingService(settings)
	if err != nil || svc == nil {
		return err
	}
	defer svc.Close()
	return pingWithTimeout(svc)
}

// ValidateLLMConfig probes the backend an LLM configuration points at,
// without keeping the service.
func ValidateLLMConfig(settings *domain.LLMSettings) error {
	svc, err := CreateLLMService(settings)
	if err != nil || svc == nil {
		return err
	}
	defer svc.Close()
	return pingWithTimeout(svc)
}

// CreateEmbeddingService builds the embedding adapter the settings name.
// Unconfigured settings yield nil, nil.
func CreateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return createOllamaEmbedding(settings), nil

	case domain.AIProviderOpenAI:
		return createOpenAIEmbedding(settings)

	case domain.AIProviderAnthropic:
		return nil, fmt.Errorf("anthropic does not support embeddings, use ollama or openai")

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", settings.Provider)
	}
}

// CreateLLMService builds the LLM adapter the settings name. Cloud
// providers come back wrapped in a client-side rate limiter; the cleanup
// pass during indexing fires one generation per page and would otherwise
// trip provider limits on a large documents folder.
// Unconfigured settings yield nil, nil.
func CreateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return createOllamaLLM(settings), nil

	case domain.AIProviderOpenAI:
		return createOpenAILLM(settings)

	case domain.AIProviderAnthropic:
		return createAnthropicLLM(settings)

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
}

// pingWithTimeout probes a backend within the startup budget.
func pingWithTimeout(svc interface{ Ping(context.Context) error }) error {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

// createFallbackEmbedding builds and pings the local fallback model. The
// configured base URL carries over only when the primary provider was
// already Ollama; a cloud URL means nothing to a local instance.
func createFallbackEmbedding(settings domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	baseURL := ""
	if settings.Provider == domain.AIProviderOllama {
		baseURL = settings.BaseURL
	}

	svc := ollamaembed.NewEmbeddingService(ollamaembed.Config{
		BaseURL:    baseURL,
		Model:      FallbackEmbeddingModel,
		Dimensions: FallbackEmbeddingDimensions,
	})

	if err := pingWithTimeout(svc); err != nil {
		svc.Close()
		return nil, err
	}
	return svc, nil
}

// createOllamaEmbedding knows the dimensions of the stock models; anything
// else gets the nomic-embed-text default.
func createOllamaEmbedding(settings *domain.EmbeddingSettings) driven.EmbeddingService {
	dimensions := domain.EmbeddingDimensions()[settings.Model]
	if dimensions == 0 {
		dimensions = ollamaembed.DefaultDimensions
	}

	return ollamaembed.NewEmbeddingService(ollamaembed.Config{
		BaseURL:    settings.BaseURL,
		Model:      settings.Model,
		Dimensions: dimensions,
	})
}

func createOpenAIEmbedding(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	dimensions := domain.EmbeddingDimensions()[settings.Model]

	return openaiembed.NewEmbeddingService(openaiembed.Config{
		APIKey:     settings.APIKey,
		BaseURL:    settings.BaseURL,
		Model:      settings.Model,
		Dimensions: dimensions,
	})
}

func createOllamaLLM(settings *domain.LLMSettings) driven.LLMService {
	return ollamallm.NewLLMService(ollamallm.LLMConfig{
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
}

func createOpenAILLM(settings *domain.LLMSettings) (driven.LLMService, error) {
	svc, err := openaillm.NewLLMService(openaillm.LLMConfig{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
	if err != nil {
		return nil, err
	}
	return ratelimit.New(svc, 0, 0), nil
}

func createAnthropicLLM(settings *domain.LLMSettings) (driven.LLMService, error) {
	svc, err := anthropicllm.NewLLMService(anthropicllm.Config{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
	if err != nil {
		return nil, err
	}
	return ratelimit.New(svc, 0, 0), nil
}
