// Package driven holds the secondary ports for infrastructure adapters.
package driven

import "context"

// LLMService is a text-generation backend. It serves three callers:
// answer generation, the extraction text cleaner, and the clarification
// round.
//
// Backends: Ollama (local models), OpenAI (GPT-4o family),
// Anthropic (Claude).
type LLMService interface {
	// Generate completes a prompt into text.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName identifies the configured model, for logs and doctor output.
	ModelName() string

	// Ping makes a lightweight request to confirm the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions tunes a single Generate call.
type GenerateOptions struct {
	// System is the system instruction prepended to the prompt.
	System string

	// MaxTokens caps the completion length.
	MaxTokens int

	// Temperature sets sampling randomness, 0 meaning deterministic.
	Temperature float64

	// StopWords end generation when produced.
	StopWords []string
}

// TextCleaner runs extracted page text through an LLM cleanup pass.
// Implementations must return the input unchanged on any failure; cleaning
// is an improvement, never a gate.
type TextCleaner interface {
	// Clean removes duplication and truncation artifacts from page text.
	// Technical identifiers, codes and standards references are preserved
	// verbatim.
	Clean(ctx context.Context, text, fileName string, page int) string
}
