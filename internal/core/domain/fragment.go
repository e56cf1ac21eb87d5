package domain

// ExtractionKind identifies which cascade stage produced a page's text.
type ExtractionKind string

// Available extraction kinds.
const (
	// ExtractionText is the native text layer of the document.
	ExtractionText ExtractionKind = "text"

	// ExtractionTable is native text combined with flattened table rows.
	ExtractionTable ExtractionKind = "table"

	// ExtractionLayout is the structured-layout pass for scanned-but-structured pages.
	ExtractionLayout ExtractionKind = "layout"

	// ExtractionOCR is rasterised-page optical character recognition.
	ExtractionOCR ExtractionKind = "ocr"
)

// IsValid returns true if the extraction kind is recognised.
func (k ExtractionKind) IsValid() bool {
	switch k {
	case ExtractionText, ExtractionTable, ExtractionLayout, ExtractionOCR:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k ExtractionKind) String() string {
	return string(k)
}

// Description returns a human-readable description of the kind.
func (k ExtractionKind) Description() string {
	switch k {
	case ExtractionText:
		return "Native text layer"
	case ExtractionTable:
		return "Text with extracted tables"
	case ExtractionLayout:
		return "Structured layout extraction"
	case ExtractionOCR:
		return "Optical character recognition"
	default:
		return unknownDescription
	}
}

// ExtractedPage is one page's worth of quality-gated text from a source file.
// Pages whose text fails the quality gate at every cascade stage are dropped
// before this type is ever constructed.
type ExtractedPage struct {
	// Number is the 1-based page number within the source file.
	Number int

	// Content is the extracted text after any cleaning pass.
	Content string

	// Kind records which extraction stage won for this page.
	Kind ExtractionKind
}

// Fragment represents one retrievable unit of indexed document text.
// Fragments are immutable once created; they are removed only when a full
// reindex clears the collection.
type Fragment struct {
	// ID is the unique identifier for the fragment.
	ID string

	// Content is the chunk text. Non-empty; its source page passed the
	// quality gate at ingestion time.
	Content string

	// SourceFile is the base name of the file the fragment came from.
	SourceFile string

	// Page is the 1-based page number the fragment belongs to.
	Page int

	// Kind records which extraction stage produced the page text.
	Kind ExtractionKind

	// Embedding is the vector representation for similarity search.
	Embedding []float32
}
