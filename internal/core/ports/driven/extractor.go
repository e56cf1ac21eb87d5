package driven

import (
	"context"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
)

// Extractor converts one source file into quality-gated per-page text.
// Each extractor handles specific file extensions (e.g., ".pdf", ".docx").
type Extractor interface {
	// Extensions returns the lower-case file extensions this extractor
	// handles, including the leading dot.
	Extensions() []string

	// Extract produces the file's pages in order. Pages whose text fails
	// the quality gate at every stage are omitted, not errored. An error
	// means the file itself could not be processed.
	Extract(ctx context.Context, path string) ([]domain.ExtractedPage, error)
}
