// Package driven holds the secondary ports for infrastructure adapters.
package driven

import "context"

// EmbeddingService turns text into vectors. Both indexing and retrieval
// depend on it; when the configured backend is unreachable at startup,
// the factory falls back to a smaller local model rather than disabling
// the service.
//
// Generation and storage are split: this service produces vectors, the
// VectorStore keeps and searches them.
//
// Backends: Ollama (nomic-embed-text, all-minilm), OpenAI
// (text-embedding-3-small, text-embedding-3-large).
type EmbeddingService interface {
	// Embed vectorizes a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch vectorizes several texts in one round trip.
	// Vectors are returned in input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions is the vector width the model produces (e.g. 384, 768,
	// 1536). The vector collection must be created with the same width.
	Dimensions() int

	// ModelName identifies the configured model, for logs and doctor output.
	ModelName() string

	// Ping makes a lightweight request to confirm the backend is reachable.
	// The factory calls it at startup to decide whether the fallback model
	// is needed.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// EmbeddingCache memoizes embedding vectors by text content.
// Implementations must treat any read or decode failure as a miss; the cache
// must never fail the embedding pipeline.
type EmbeddingCache interface {
	// Get returns the cached vector for the text, if present.
	Get(text string) ([]float32, bool)

	// Put stores the vector for the text. A repeated Put with the same
	// text leaves the stored value unchanged.
	Put(text string, embedding []float32) error

	// Count returns the number of cached entries.
	Count() (int, error)
}
