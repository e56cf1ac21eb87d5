package driven

import (
	"context"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
)

// ExtractorRegistry selects the appropriate extractor for a file.
// Dispatch is by file extension.
type ExtractorRegistry interface {
	// ExtractFile extracts a file using the registered extractor for its
	// extension. Returns domain.ErrUnsupportedType for unknown extensions.
	ExtractFile(ctx context.Context, path string) ([]domain.ExtractedPage, error)

	// Register adds an extractor to the registry.
	Register(extractor Extractor)

	// SupportedExtensions returns all extensions that can be extracted.
	SupportedExtensions() []string
}
