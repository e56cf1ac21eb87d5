// Package docx extracts text from Word documents. DOCX carries no page
// boundaries in its main document part, so the whole body is treated as a
// single page.
package docx

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driven"
	"github.com/NikolaykoSergey/lifta-cli/internal/extractors/quality"
	"github.com/NikolaykoSergey/lifta-cli/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles DOCX documents.
type Extractor struct {
	gate    *quality.Gate
	cleaner driven.TextCleaner
}

// New creates a DOCX extractor. cleaner may be nil to skip the LLM
// cleanup pass.
func New(gate *quality.Gate, cleaner driven.TextCleaner) *Extractor {
	return &Extractor{gate: gate, cleaner: cleaner}
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".docx"}
}

// Extract reads the document body and returns it as a single page.
// A body that fails the quality gate yields zero pages without error.
func (e *Extractor) Extract(ctx context.Context, path string) ([]domain.ExtractedPage, error) {
	base := filepath.Base(path)

	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", base, err)
	}
	defer reader.Close()

	content, err := extractDocumentText(&reader.Reader)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", base, err)
	}

	if !e.gate.Usable(content) {
		logger.Debug("docx %s: body failed the quality gate, skipping", base)
		return nil, nil
	}

	if e.cleaner != nil {
		content = e.cleaner.Clean(ctx, content, base, 1)
	}

	return []domain.ExtractedPage{{
		Number:  1,
		Content: content,
		Kind:    domain.ExtractionText,
	}}, nil
}

// extractDocumentText extracts text from word/document.xml.
func extractDocumentText(reader *zip.Reader) (string, error) {
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", domain.ErrInvalidInput
		}

		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", domain.ErrInvalidInput
		}

		return parseDocumentXML(content), nil
	}
	return "", fmt.Errorf("%w: no word/document.xml in archive", domain.ErrInvalidInput)
}

// documentXML represents the structure of word/document.xml.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

// parseDocumentXML extracts text content from the document XML, one line
// per paragraph.
func parseDocumentXML(content []byte) string {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return ""
	}

	var result strings.Builder
	for i, para := range doc.Body.Paragraphs {
		if i > 0 {
			result.WriteString("\n")
		}
		for _, run := range para.Runs {
			for _, text := range run.Text {
				result.WriteString(text.Content)
			}
		}
	}

	return strings.TrimSpace(result.String())
}
