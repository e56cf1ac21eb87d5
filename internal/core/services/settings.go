package services

import (
	"fmt"
	"strings"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driven"
	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyEmbedProvider = "embedding.provider"
	keyEmbedModel    = "embedding.model"
	keyEmbedBaseURL  = "embedding.base_url"
	keyEmbedAPIKey   = "embedding.api_key"

	keyLLMProvider    = "llm.provider"
	keyLLMModel       = "llm.model"
	keyLLMBaseURL     = "llm.base_url"
	keyLLMAPIKey      = "llm.api_key"
	keyLLMTemperature = "llm.temperature"
	keyLLMMaxTokens   = "llm.max_tokens"

	keyVectorHost       = "vector_store.host"
	keyVectorPort       = "vector_store.port"
	keyVectorCollection = "vector_store.collection"

	keyExtractMinTextLength  = "extraction.min_text_length"
	keyExtractMinAlnumRatio  = "extraction.min_alnum_ratio"
	keyExtractEnableTables   = "extraction.enable_tables"
	keyExtractEnableLayout   = "extraction.enable_layout"
	keyExtractEnableOCR      = "extraction.enable_ocr"
	keyExtractEnableCleaning = "extraction.enable_cleaning"
	keyExtractOCRLanguages   = "extraction.ocr_languages"
	keyExtractOCRResolution  = "extraction.ocr_resolution"
	keyExtractMaxLayoutPages = "extraction.max_layout_pages"

	keyChunkSize    = "chunking.size"
	keyChunkOverlap = "chunking.overlap"

	keyDocsDir = "index.docs_dir"

	keyChatTopK              = "chat.top_k"
	keyChatMaxHistoryChars   = "chat.max_history_chars"
	keyChatInitialDataFields = "chat.initial_data_fields"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings, filling gaps with defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	embedProvider := s.getProvider(keyEmbedProvider, defaults.Embedding.Provider)
	llmProvider := s.getProvider(keyLLMProvider, defaults.LLM.Provider)

	settings := &domain.AppSettings{
		Embedding: domain.EmbeddingSettings{
			Provider: embedProvider,
			Model:    s.getString(keyEmbedModel, defaults.Embedding.Model),
			BaseURL:  s.getBaseURL(keyEmbedBaseURL, embedProvider, defaults.Embedding.BaseURL),
			APIKey:   s.configStore.GetString(keyEmbedAPIKey),
		},
		LLM: domain.LLMSettings{
			Provider:    llmProvider,
			Model:       s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:     s.getBaseURL(keyLLMBaseURL, llmProvider, defaults.LLM.BaseURL),
			APIKey:      s.configStore.GetString(keyLLMAPIKey),
			Temperature: s.getFloat(keyLLMTemperature, defaults.LLM.Temperature),
			MaxTokens:   s.getInt(keyLLMMaxTokens, defaults.LLM.MaxTokens),
		},
		VectorStore: domain.VectorStoreSettings{
			Host:       s.getString(keyVectorHost, defaults.VectorStore.Host),
			Port:       s.getInt(keyVectorPort, defaults.VectorStore.Port),
			Collection: s.getString(keyVectorCollection, defaults.VectorStore.Collection),
		},
		Extraction: domain.ExtractionSettings{
			MinTextLength:  s.getInt(keyExtractMinTextLength, defaults.Extraction.MinTextLength),
			MinAlnumRatio:  s.getFloat(keyExtractMinAlnumRatio, defaults.Extraction.MinAlnumRatio),
			EnableTables:   s.getBool(keyExtractEnableTables, defaults.Extraction.EnableTables),
			EnableLayout:   s.getBool(keyExtractEnableLayout, defaults.Extraction.EnableLayout),
			EnableOCR:      s.getBool(keyExtractEnableOCR, defaults.Extraction.EnableOCR),
			EnableCleaning: s.getBool(keyExtractEnableCleaning, defaults.Extraction.EnableCleaning),
			OCRLanguages:   s.getString(keyExtractOCRLanguages, defaults.Extraction.OCRLanguages),
			OCRResolution:  s.getInt(keyExtractOCRResolution, defaults.Extraction.OCRResolution),
			MaxLayoutPages: s.getInt(keyExtractMaxLayoutPages, defaults.Extraction.MaxLayoutPages),
		},
		Chunking: domain.ChunkingSettings{
			Size:    s.getInt(keyChunkSize, defaults.Chunking.Size),
			Overlap: s.getInt(keyChunkOverlap, defaults.Chunking.Overlap),
		},
		Index: domain.IndexSettings{
			DocsDir: s.getString(keyDocsDir, defaults.Index.DocsDir),
		},
		Chat: domain.ChatSettings{
			TopK:              s.getInt(keyChatTopK, defaults.Chat.TopK),
			MaxHistoryChars:   s.getInt(keyChatMaxHistoryChars, defaults.Chat.MaxHistoryChars),
			InitialDataFields: s.getStringSlice(keyChatInitialDataFields, defaults.Chat.InitialDataFields),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	// Embedding settings
	if err := s.configStore.Set(keyEmbedProvider, settings.Embedding.Provider.String()); err != nil {
		return fmt.Errorf("save embedding provider: %w", err)
	}
	if err := s.configStore.Set(keyEmbedModel, settings.Embedding.Model); err != nil {
		return fmt.Errorf("save embedding model: %w", err)
	}
	if err := s.configStore.Set(keyEmbedBaseURL, settings.Embedding.BaseURL); err != nil {
		return fmt.Errorf("save embedding base_url: %w", err)
	}
	if settings.Embedding.APIKey != "" {
		if err := s.configStore.Set(keyEmbedAPIKey, settings.Embedding.APIKey); err != nil {
			return fmt.Errorf("save embedding api_key: %w", err)
		}
	}

	// LLM settings
	if err := s.configStore.Set(keyLLMProvider, settings.LLM.Provider.String()); err != nil {
		return fmt.Errorf("save llm provider: %w", err)
	}
	if err := s.configStore.Set(keyLLMModel, settings.LLM.Model); err != nil {
		return fmt.Errorf("save llm model: %w", err)
	}
	if err := s.configStore.Set(keyLLMBaseURL, settings.LLM.BaseURL); err != nil {
		return fmt.Errorf("save llm base_url: %w", err)
	}
	if settings.LLM.APIKey != "" {
		if err := s.configStore.Set(keyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}
	if err := s.configStore.Set(keyLLMTemperature, settings.LLM.Temperature); err != nil {
		return fmt.Errorf("save llm temperature: %w", err)
	}
	if err := s.configStore.Set(keyLLMMaxTokens, settings.LLM.MaxTokens); err != nil {
		return fmt.Errorf("save llm max_tokens: %w", err)
	}

	// Vector store settings
	if err := s.configStore.Set(keyVectorHost, settings.VectorStore.Host); err != nil {
		return fmt.Errorf("save vector host: %w", err)
	}
	if err := s.configStore.Set(keyVectorPort, settings.VectorStore.Port); err != nil {
		return fmt.Errorf("save vector port: %w", err)
	}
	if err := s.configStore.Set(keyVectorCollection, settings.VectorStore.Collection); err != nil {
		return fmt.Errorf("save vector collection: %w", err)
	}

	// Extraction settings
	if err := s.saveExtraction(settings.Extraction); err != nil {
		return err
	}

	// Chunking settings
	if err := s.configStore.Set(keyChunkSize, settings.Chunking.Size); err != nil {
		return fmt.Errorf("save chunk size: %w", err)
	}
	if err := s.configStore.Set(keyChunkOverlap, settings.Chunking.Overlap); err != nil {
		return fmt.Errorf("save chunk overlap: %w", err)
	}

	// Index settings
	if err := s.configStore.Set(keyDocsDir, settings.Index.DocsDir); err != nil {
		return fmt.Errorf("save docs dir: %w", err)
	}

	// Chat settings
	if err := s.configStore.Set(keyChatTopK, settings.Chat.TopK); err != nil {
		return fmt.Errorf("save chat top_k: %w", err)
	}
	if err := s.configStore.Set(keyChatMaxHistoryChars, settings.Chat.MaxHistoryChars); err != nil {
		return fmt.Errorf("save chat max_history_chars: %w", err)
	}
	if err := s.configStore.Set(keyChatInitialDataFields, settings.Chat.InitialDataFields); err != nil {
		return fmt.Errorf("save chat initial_data_fields: %w", err)
	}

	return nil
}

func (s *SettingsService) saveExtraction(extraction domain.ExtractionSettings) error {
	if err := s.configStore.Set(keyExtractMinTextLength, extraction.MinTextLength); err != nil {
		return fmt.Errorf("save extraction min_text_length: %w", err)
	}
	if err := s.configStore.Set(keyExtractMinAlnumRatio, extraction.MinAlnumRatio); err != nil {
		return fmt.Errorf("save extraction min_alnum_ratio: %w", err)
	}
	if err := s.configStore.Set(keyExtractEnableTables, extraction.EnableTables); err != nil {
		return fmt.Errorf("save extraction enable_tables: %w", err)
	}
	if err := s.configStore.Set(keyExtractEnableLayout, extraction.EnableLayout); err != nil {
		return fmt.Errorf("save extraction enable_layout: %w", err)
	}
	if err := s.configStore.Set(keyExtractEnableOCR, extraction.EnableOCR); err != nil {
		return fmt.Errorf("save extraction enable_ocr: %w", err)
	}
	if err := s.configStore.Set(keyExtractEnableCleaning, extraction.EnableCleaning); err != nil {
		return fmt.Errorf("save extraction enable_cleaning: %w", err)
	}
	if err := s.configStore.Set(keyExtractOCRLanguages, extraction.OCRLanguages); err != nil {
		return fmt.Errorf("save extraction ocr_languages: %w", err)
	}
	if err := s.configStore.Set(keyExtractOCRResolution, extraction.OCRResolution); err != nil {
		return fmt.Errorf("save extraction ocr_resolution: %w", err)
	}
	if err := s.configStore.Set(keyExtractMaxLayoutPages, extraction.MaxLayoutPages); err != nil {
		return fmt.Errorf("save extraction max_layout_pages: %w", err)
	}
	return nil
}

// SetEmbeddingProvider configures the embedding provider.
func (s *SettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: invalid embedding provider %q", domain.ErrInvalidInput, string(provider))
	}

	supported := false
	for _, p := range domain.AllEmbeddingProviders() {
		if p == provider {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("%w: provider %s does not support embeddings", domain.ErrInvalidInput, provider)
	}

	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("%w: API key required for %s", domain.ErrInvalidInput, provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Embedding.Provider = provider

	// Use the provided model or the provider default.
	if model != "" {
		settings.Embedding.Model = model
	} else if defaultModel, ok := domain.DefaultEmbeddingModels()[provider]; ok {
		settings.Embedding.Model = defaultModel
	}

	if provider.IsLocal() {
		if settings.Embedding.BaseURL == "" {
			settings.Embedding.BaseURL = domain.DefaultAppSettings().Embedding.BaseURL
		}
	} else {
		// Cloud providers use their own endpoints.
		settings.Embedding.BaseURL = ""
	}

	settings.Embedding.APIKey = apiKey

	return s.Save(settings)
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: invalid LLM provider %q", domain.ErrInvalidInput, string(provider))
	}

	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("%w: API key required for %s", domain.ErrInvalidInput, provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider

	// Use the provided model or the provider default.
	if model != "" {
		settings.LLM.Model = model
	} else if defaultModel, ok := domain.DefaultLLMModels()[provider]; ok {
		settings.LLM.Model = defaultModel
	}

	if provider.IsLocal() {
		if settings.LLM.BaseURL == "" {
			settings.LLM.BaseURL = domain.DefaultAppSettings().LLM.BaseURL
		}
	} else {
		// Cloud providers use their own endpoints.
		settings.LLM.BaseURL = ""
	}

	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// SetDocsDir updates the documents folder.
func (s *SettingsService) SetDocsDir(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("%w: empty documents folder", domain.ErrInvalidInput)
	}

	if err := s.configStore.Set(keyDocsDir, path); err != nil {
		return fmt.Errorf("save docs dir: %w", err)
	}
	return nil
}

// Validate checks that current settings are internally consistent and that
// the configured providers have the credentials they need.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if err := settings.Validate(); err != nil {
		return err
	}

	if !settings.Embedding.IsConfigured() {
		return fmt.Errorf("%w: embedding provider %s needs an API key", domain.ErrEmbeddingUnavailable, settings.Embedding.Provider)
	}
	if !settings.LLM.IsConfigured() {
		return fmt.Errorf("%w: LLM provider %s needs an API key", domain.ErrLLMUnavailable, settings.LLM.Provider)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateEmbeddingConfig validates the current embedding configuration by pinging the provider.
func (s *SettingsService) ValidateEmbeddingConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateEmbedding(&settings.Embedding)
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	if val := s.configStore.GetStringSlice(key); len(val) > 0 {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

// getBaseURL returns the stored endpoint. When the key is empty, local
// providers fall back to the default endpoint while cloud providers stay
// on their own.
func (s *SettingsService) getBaseURL(key string, provider domain.AIProvider, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	if provider.IsLocal() {
		return defaultVal
	}
	return ""
}
