package domain

import "fmt"

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string

	// Temperature controls generation randomness for answers.
	Temperature float64

	// MaxTokens bounds the generated answer length.
	MaxTokens int
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// VectorStoreSettings holds vector database configuration.
type VectorStoreSettings struct {
	// Host is the Qdrant host.
	Host string

	// Port is the Qdrant gRPC port.
	Port int

	// Collection is the collection name holding the fragments.
	Collection string
}

// ExtractionSettings holds document extraction configuration.
type ExtractionSettings struct {
	// MinTextLength is the quality gate's minimum trimmed length.
	// Shorter stage output triggers the next cascade stage.
	MinTextLength int

	// MinAlnumRatio is the quality gate's minimum ratio of alphanumeric
	// runes (Latin, Cyrillic, digits) to total trimmed length.
	MinAlnumRatio float64

	// EnableTables turns on the table extraction stage.
	EnableTables bool

	// EnableLayout turns on the structured-layout stage.
	EnableLayout bool

	// EnableOCR turns on the rasterise-and-OCR stage.
	EnableOCR bool

	// EnableCleaning runs winning page text through the LLM cleaner.
	EnableCleaning bool

	// OCRLanguages is the tesseract language spec (e.g. "eng+rus").
	OCRLanguages string

	// OCRResolution is the rasterisation DPI for the OCR stage.
	OCRResolution int

	// MaxLayoutPages caps how many pages the layout stage may process
	// per document. Zero disables the cap.
	MaxLayoutPages int
}

// ChunkingSettings holds fragment splitting configuration.
type ChunkingSettings struct {
	// Size is the sliding window length in characters.
	Size int

	// Overlap is how many characters consecutive chunks share.
	Overlap int
}

// Validate checks that the chunking parameters can terminate.
func (c ChunkingSettings) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidInput, c.Size)
	}
	if c.Overlap < 0 {
		return fmt.Errorf("%w: chunk overlap must be non-negative, got %d", ErrInvalidInput, c.Overlap)
	}
	if c.Overlap >= c.Size {
		return fmt.Errorf("%w: chunk overlap %d must be smaller than chunk size %d", ErrInvalidInput, c.Overlap, c.Size)
	}
	return nil
}

// IndexSettings holds document folder configuration.
type IndexSettings struct {
	// DocsDir is the folder scanned for source files.
	DocsDir string
}

// ChatSettings holds query behaviour configuration.
type ChatSettings struct {
	// TopK is how many fragments to retrieve per query.
	TopK int

	// MaxHistoryChars caps the conversation history included in prompts.
	MaxHistoryChars int

	// InitialDataFields lists the fields collected at chat start.
	InitialDataFields []string
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Embedding holds embedding provider settings.
	Embedding EmbeddingSettings

	// LLM holds LLM provider settings.
	LLM LLMSettings

	// VectorStore holds vector database settings.
	VectorStore VectorStoreSettings

	// Extraction holds document extraction settings.
	Extraction ExtractionSettings

	// Chunking holds fragment splitting settings.
	Chunking ChunkingSettings

	// Index holds document folder settings.
	Index IndexSettings

	// Chat holds query behaviour settings.
	Chat ChatSettings
}

// Validate checks cross-field constraints that would otherwise surface as
// runtime failures deep in the pipeline.
func (s AppSettings) Validate() error {
	if err := s.Chunking.Validate(); err != nil {
		return err
	}
	if s.Extraction.MinTextLength < 0 {
		return fmt.Errorf("%w: min text length must be non-negative, got %d", ErrInvalidInput, s.Extraction.MinTextLength)
	}
	if s.Extraction.MinAlnumRatio < 0 || s.Extraction.MinAlnumRatio > 1 {
		return fmt.Errorf("%w: min alnum ratio must be within [0, 1], got %g", ErrInvalidInput, s.Extraction.MinAlnumRatio)
	}
	if s.Chat.TopK <= 0 {
		return fmt.Errorf("%w: top_k must be positive, got %d", ErrInvalidInput, s.Chat.TopK)
	}
	if s.Chat.MaxHistoryChars < 0 {
		return fmt.Errorf("%w: max history chars must be non-negative, got %d", ErrInvalidInput, s.Chat.MaxHistoryChars)
	}
	return nil
}

// DefaultAppSettings returns settings with sensible defaults.
// Everything runs locally out of the box: Ollama for embeddings and LLM,
// Qdrant on its default gRPC port.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Embedding: EmbeddingSettings{
			Provider: AIProviderOllama,
			Model:    "nomic-embed-text",
			BaseURL:  "http://localhost:11434",
		},
		LLM: LLMSettings{
			Provider:    AIProviderOllama,
			Model:       "qwen2.5:3b",
			BaseURL:     "http://localhost:11434",
			Temperature: 0.1,
			MaxTokens:   512,
		},
		VectorStore: VectorStoreSettings{
			Host:       "localhost",
			Port:       6334,
			Collection: "tech_docs",
		},
		Extraction: ExtractionSettings{
			MinTextLength:  300,
			MinAlnumRatio:  0.2,
			EnableTables:   true,
			EnableLayout:   true,
			EnableOCR:      true,
			EnableCleaning: true,
			OCRLanguages:   "eng+rus",
			OCRResolution:  150,
			MaxLayoutPages: 20,
		},
		Chunking: ChunkingSettings{
			Size:    1000,
			Overlap: 150,
		},
		Index: IndexSettings{
			DocsDir: "documents",
		},
		Chat: ChatSettings{
			TopK:            5,
			MaxHistoryChars: 6000,
			InitialDataFields: []string{
				"Contract number",
				"Phone",
				"Lift model",
				"Speed",
				"Number of stops",
				"Load capacity",
				"City",
			},
		},
	}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "nomic-embed-text",
		AIProviderOpenAI: "text-embedding-3-small",
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "qwen2.5:3b",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Ollama models
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		"all-minilm":        384,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
	}
}
