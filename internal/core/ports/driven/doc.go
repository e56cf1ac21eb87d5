// Package driven holds the interfaces the core services call out through.
//
// In hexagonal terms these are the secondary (driven) ports: the services
// depend on them, the adapters under internal/adapters/driven implement
// them, and tests substitute fakes for them.
//
// # Required Interfaces
//
// The pipeline cannot run without these:
//
//   - DocumentSource: lists and watches the documents folder
//   - ExtractorRegistry: picks the extractor for a file
//   - EmbeddingService: turns text into vectors
//   - EmbeddingCache: content-addressed embedding memoization
//   - VectorStore: collection lifecycle, upsert and search
//   - IndexLedger: record of already-ingested files
//   - LLMService: answer generation, cleaning and clarification
//   - PromptStore: prompt templates and keyword lists
//   - ConfigStore: application configuration
//
// # Optional Interfaces
//
// A nil value degrades the feature instead of failing the application:
//
//   - TextCleaner: LLM cleanup of extracted page text. Without it, pages
//     are indexed as extracted.
//   - FeedbackStore / GoldenStore / SessionStore: the feedback loop and
//     session logging. Without them, answers are still served.
//   - AIConfigValidator: live probe of provider settings before saving.
//
// # Import Rules
//
// This package imports domain and nothing else. Adapter and extractor
// packages must never be imported here.
package driven
