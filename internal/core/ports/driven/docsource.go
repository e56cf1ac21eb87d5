package driven

import (
	"context"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
)

// DocumentSource provides access to the documents folder.
type DocumentSource interface {
	// List returns the absolute paths of supported files, sorted by name.
	List(ctx context.Context) ([]string, error)

	// Watch emits change events for supported files until the context is
	// cancelled or the source is closed. The returned channel is closed
	// on shutdown.
	Watch(ctx context.Context) (<-chan domain.DocumentChange, error)

	// Root returns the folder being served.
	Root() string

	// Close releases resources. Safe to call multiple times.
	Close() error
}
