package extractors

import (
	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driven"
	"github.com/NikolaykoSergey/lifta-cli/internal/extractors/docx"
	"github.com/NikolaykoSergey/lifta-cli/internal/extractors/markdown"
	"github.com/NikolaykoSergey/lifta-cli/internal/extractors/pdf"
	"github.com/NikolaykoSergey/lifta-cli/internal/extractors/plaintext"
	"github.com/NikolaykoSergey/lifta-cli/internal/extractors/quality"
)

// DefaultRegistry builds a registry with the standard set of extractors,
// sharing one quality gate built from the settings. cleaner may be nil to
// skip the LLM cleanup pass for PDF and DOCX.
func DefaultRegistry(settings domain.ExtractionSettings, cleaner driven.TextCleaner) *Registry {
	gate := quality.New(settings.MinTextLength, settings.MinAlnumRatio)

	registry := NewRegistry()
	registry.Register(pdf.New(gate, cleaner, settings))
	registry.Register(docx.New(gate, cleaner))
	registry.Register(markdown.New(gate))
	registry.Register(plaintext.New(gate))
	return registry
}
