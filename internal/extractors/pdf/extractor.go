// Package pdf extracts per-page text from PDF files through a staged
// cascade: native text layer, table extraction, structured layout, and
// finally rasterised OCR. Each stage runs only when the previous output
// fails the quality gate.
//
// Extraction shells out to the poppler tools (pdftotext, pdftoppm, pdfinfo)
// and tesseract.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driven"
	"github.com/NikolaykoSergey/lifta-cli/internal/extractors/quality"
	"github.com/NikolaykoSergey/lifta-cli/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// ErrPDFToolNotFound indicates pdftotext is not installed.
var ErrPDFToolNotFound = errors.New("pdftotext not found in PATH")

// CommandRunner abstracts external process execution so tests can inject
// canned output without the poppler tools installed.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs real commands.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// pagesLine matches the page count row of pdfinfo output.
var pagesLine = regexp.MustCompile(`(?m)^Pages:\s+(\d+)\s*$`)

// multiSpace splits layout-preserved lines into columns.
var multiSpace = regexp.MustCompile(`\s{2,}`)

// Extractor handles PDF documents.
type Extractor struct {
	gate     *quality.Gate
	cleaner  driven.TextCleaner
	runner   CommandRunner
	settings domain.ExtractionSettings
}

// New creates a PDF extractor using the real poppler and tesseract binaries.
// cleaner may be nil to skip the LLM cleanup pass.
func New(gate *quality.Gate, cleaner driven.TextCleaner, settings domain.ExtractionSettings) *Extractor {
	return NewWithRunner(execRunner{}, gate, cleaner, settings)
}

// NewWithRunner creates a PDF extractor with a custom command runner.
func NewWithRunner(runner CommandRunner, gate *quality.Gate, cleaner driven.TextCleaner, settings domain.ExtractionSettings) *Extractor {
	return &Extractor{
		gate:     gate,
		cleaner:  cleaner,
		runner:   runner,
		settings: settings,
	}
}

// CheckAvailable verifies pdftotext is installed.
// The OCR tools are probed separately by the doctor; their absence only
// disables the OCR stage.
func CheckAvailable() error {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return ErrPDFToolNotFound
	}
	return nil
}

// InstallInstructions returns platform-specific installation guidance.
func InstallInstructions() string {
	return `PDF extraction requires pdftotext (poppler) and, for scanned
documents, pdftoppm and tesseract:

  macOS:          brew install poppler tesseract
  Debian/Ubuntu:  apt install poppler-utils tesseract-ocr
  Fedora:         dnf install poppler-utils tesseract`
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".pdf"}
}

// Extract runs the cascade for every page of the file. Pages that fail the
// gate at every stage are skipped; a page-count failure fails the file.
func (e *Extractor) Extract(ctx context.Context, path string) ([]domain.ExtractedPage, error) {
	base := filepath.Base(path)

	total, err := e.pageCount(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("pdfinfo %s: %w", base, err)
	}
	logger.Debug("pdf %s: %d pages", base, total)

	// The layout stage mirrors the original pipeline's document-level cap:
	// very long documents skip it entirely rather than per page.
	layoutAllowed := e.settings.EnableLayout &&
		(e.settings.MaxLayoutPages <= 0 || total <= e.settings.MaxLayoutPages)

	pages := make([]domain.ExtractedPage, 0, total)
	for num := 1; num <= total; num++ {
		if ctx.Err() != nil {
			return pages, ctx.Err()
		}

		content, kind, ok := e.extractPage(ctx, path, num, layoutAllowed)
		if !ok {
			logger.Debug("pdf %s page %d: no stage passed the gate, skipping", base, num)
			continue
		}

		if e.cleaner != nil && e.settings.EnableCleaning {
			content = e.cleaner.Clean(ctx, content, base, num)
		}

		pages = append(pages, domain.ExtractedPage{
			Number:  num,
			Content: content,
			Kind:    kind,
		})
	}

	return pages, nil
}

// extractPage runs the cascade for one page and reports the winning text,
// its extraction kind, and whether any stage passed the gate.
func (e *Extractor) extractPage(ctx context.Context, path string, num int, layoutAllowed bool) (string, domain.ExtractionKind, bool) {
	base := filepath.Base(path)

	// Stage 1: native text layer.
	text := e.nativeText(ctx, path, num)

	// Stage 2: flattened table rows, concatenated with stage 1.
	combined := text
	var tables string
	if e.settings.EnableTables {
		tables = e.tableText(ctx, path, num)
		combined = joinParts(text, tables)
	}
	if e.gate.Usable(combined) {
		kind := domain.ExtractionText
		if tables != "" && !e.gate.Usable(text) {
			// The table stage is what made the page usable.
			kind = domain.ExtractionTable
		}
		return combined, kind, true
	}

	// Stage 3: structured layout for scanned-but-structured pages.
	if layoutAllowed {
		if layout := e.layoutText(ctx, path, num); e.gate.Usable(layout) {
			return layout, domain.ExtractionLayout, true
		}
	}

	// Stage 4: rasterise and OCR. Accepted only when the output passes
	// the gate on its own.
	if e.settings.EnableOCR {
		logger.Debug("pdf %s page %d: falling back to OCR", base, num)
		if ocr := e.ocrText(ctx, path, num); e.gate.Usable(ocr) {
			return ocr, domain.ExtractionOCR, true
		}
	}

	return "", "", false
}

// nativeText extracts the page's text layer. Stage errors are absorbed.
func (e *Extractor) nativeText(ctx context.Context, path string, num int) string {
	out, err := e.runner.Run(ctx, "pdftotext",
		"-f", strconv.Itoa(num), "-l", strconv.Itoa(num), "-q", path, "-")
	if err != nil {
		logger.Debug("pdftotext %s page %d: %v", filepath.Base(path), num, err)
		return ""
	}
	return strings.TrimSpace(string(out))
}

// layoutText extracts the page with physical layout preserved.
func (e *Extractor) layoutText(ctx context.Context, path string, num int) string {
	out, err := e.runner.Run(ctx, "pdftotext",
		"-layout", "-f", strconv.Itoa(num), "-l", strconv.Itoa(num), "-q", path, "-")
	if err != nil {
		logger.Debug("pdftotext -layout %s page %d: %v", filepath.Base(path), num, err)
		return ""
	}
	return strings.TrimSpace(string(out))
}

// tableText flattens the page's aligned-column rows into pipe-delimited
// lines. Lines without at least two columns are not table rows.
func (e *Extractor) tableText(ctx context.Context, path string, num int) string {
	return formatTables(e.layoutText(ctx, path, num))
}

// formatTables converts layout-preserved text into pipe-delimited rows.
func formatTables(layout string) string {
	var rows []string
	for _, line := range strings.Split(layout, "\n") {
		cells := multiSpace.Split(strings.TrimSpace(line), -1)
		if len(cells) < 2 {
			continue
		}
		rows = append(rows, strings.Join(cells, " | "))
	}
	return strings.Join(rows, "\n")
}

// ocrText rasterises the page and runs tesseract over the image.
func (e *Extractor) ocrText(ctx context.Context, path string, num int) string {
	base := filepath.Base(path)

	tmpDir, err := os.MkdirTemp("", "lifta-ocr-")
	if err != nil {
		logger.Debug("ocr %s page %d: temp dir: %v", base, num, err)
		return ""
	}
	defer os.RemoveAll(tmpDir)

	dpi := e.settings.OCRResolution
	if dpi <= 0 {
		dpi = 150
	}

	prefix := filepath.Join(tmpDir, "page")
	if _, err := e.runner.Run(ctx, "pdftoppm",
		"-png", "-singlefile", "-r", strconv.Itoa(dpi),
		"-f", strconv.Itoa(num), "-l", strconv.Itoa(num), path, prefix); err != nil {
		logger.Debug("pdftoppm %s page %d: %v", base, num, err)
		return ""
	}

	args := []string{prefix + ".png", "stdout"}
	if e.settings.OCRLanguages != "" {
		args = append(args, "-l", e.settings.OCRLanguages)
	}
	out, err := e.runner.Run(ctx, "tesseract", args...)
	if err != nil {
		logger.Debug("tesseract %s page %d: %v", base, num, err)
		return ""
	}
	return strings.TrimSpace(string(out))
}

// pageCount reads the document's page count via pdfinfo.
func (e *Extractor) pageCount(ctx context.Context, path string) (int, error) {
	out, err := e.runner.Run(ctx, "pdfinfo", path)
	if err != nil {
		return 0, err
	}

	m := pagesLine.FindSubmatch(out)
	if m == nil {
		return 0, fmt.Errorf("%w: no page count in pdfinfo output", domain.ErrInvalidInput)
	}
	return strconv.Atoi(string(m[1]))
}

// joinParts concatenates non-empty parts with a blank line.
func joinParts(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n\n")
}
