package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestExtractionKind_IsValid tests all valid and invalid extraction kinds
func TestExtractionKind_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		kind     ExtractionKind
		expected bool
	}{
		{
			name:     "text is valid",
			kind:     ExtractionText,
			expected: true,
		},
		{
			name:     "table is valid",
			kind:     ExtractionTable,
			expected: true,
		},
		{
			name:     "layout is valid",
			kind:     ExtractionLayout,
			expected: true,
		},
		{
			name:     "ocr is valid",
			kind:     ExtractionOCR,
			expected: true,
		},
		{
			name:     "empty string is invalid",
			kind:     ExtractionKind(""),
			expected: false,
		},
		{
			name:     "unknown kind is invalid",
			kind:     ExtractionKind("docling"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.kind.IsValid()
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestExtractionKind_Description tests human-readable descriptions
func TestExtractionKind_Description(t *testing.T) {
	assert.Equal(t, "Native text layer", ExtractionText.Description())
	assert.Equal(t, "Text with extracted tables", ExtractionTable.Description())
	assert.Equal(t, "Structured layout extraction", ExtractionLayout.Description())
	assert.Equal(t, "Optical character recognition", ExtractionOCR.Description())
	assert.Equal(t, unknownDescription, ExtractionKind("other").Description())
}

// TestExtractionKind_String tests string representation
func TestExtractionKind_String(t *testing.T) {
	assert.Equal(t, "text", ExtractionText.String())
	assert.Equal(t, "ocr", ExtractionOCR.String())
}
