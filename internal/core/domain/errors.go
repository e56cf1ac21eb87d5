package domain

import "errors"

// Sentinel errors for conditions the services branch on. Adapters wrap
// these with context; callers test them with errors.Is.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidInput  = errors.New("invalid input")

	// ErrUnsupportedType marks a file extension no extractor claims,
	// or an AI provider the factory does not know.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrIndexingInProgress rejects a second indexing run while one is
	// active. Runs are serialized per process.
	ErrIndexingInProgress = errors.New("indexing in progress")

	// ErrLLMUnavailable means no LLM backend is configured or reachable.
	// Answer generation, text cleaning and clarification are off.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable means no embedding backend is configured
	// or reachable. Neither indexing nor retrieval can run without one.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	ErrVectorStoreUnavailable = errors.New("vector store unavailable")

	// ErrDimensionMismatch means the collection was created for vectors
	// of a different width than the embedding backend now produces. A
	// schema conflict, not connectivity: clear the collection and
	// re-index with --full.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	ErrRateLimited = errors.New("rate limited")

	// ErrWatcherClosed is returned from watcher operations after Close.
	ErrWatcherClosed = errors.New("watcher closed")
)
