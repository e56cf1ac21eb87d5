// Package plaintext extracts text from plain text files as a single page.
package plaintext

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driven"
	"github.com/NikolaykoSergey/lifta-cli/internal/extractors/quality"
	"github.com/NikolaykoSergey/lifta-cli/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text documents.
type Extractor struct {
	gate *quality.Gate
}

// New creates a plain text extractor.
func New(gate *quality.Gate) *Extractor {
	return &Extractor{gate: gate}
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".txt"}
}

// Extract reads the file and returns it as a single page. An unusable
// body yields zero pages without error.
func (e *Extractor) Extract(_ context.Context, path string) ([]domain.ExtractedPage, error) {
	base := filepath.Base(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", base, err)
	}

	content := strings.TrimSpace(string(data))
	if !e.gate.Usable(content) {
		logger.Debug("plaintext %s: body failed the quality gate, skipping", base)
		return nil, nil
	}

	return []domain.ExtractedPage{{
		Number:  1,
		Content: content,
		Kind:    domain.ExtractionText,
	}}, nil
}
