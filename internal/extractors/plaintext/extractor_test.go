package plaintext

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driven"
	"github.com/NikolaykoSergey/lifta-cli/internal/extractors/quality"
)

func TestNew(t *testing.T) {
	extractor := New(quality.New(20, 0.2))
	require.NotNil(t, extractor)
	assert.IsType(t, &Extractor{}, extractor)
}

func TestExtensions(t *testing.T) {
	extractor := New(quality.New(20, 0.2))
	assert.Equal(t, []string{".txt"}, extractor.Extensions())
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Extractor = (*Extractor)(nil)
}

// TestExtract_SinglePage verifies the trimmed body comes back as one page.
func TestExtract_SinglePage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path,
		[]byte("  Check the governor rope tension every quarter.\n"), 0o644))

	extractor := New(quality.New(20, 0.2))
	pages, err := extractor.Extract(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, pages, 1)

	assert.Equal(t, 1, pages[0].Number)
	assert.Equal(t, domain.ExtractionText, pages[0].Kind)
	assert.Equal(t, "Check the governor rope tension every quarter.", pages[0].Content)
}

// TestExtract_GateRejects verifies an unusable body yields zero pages
// without failing the file.
func TestExtract_GateRejects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.txt")
	require.NoError(t, os.WriteFile(path, []byte("---\n"), 0o644))

	extractor := New(quality.New(20, 0.2))
	pages, err := extractor.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func TestExtract_MissingFile(t *testing.T) {
	extractor := New(quality.New(20, 0.2))

	pages, err := extractor.Extract(context.Background(), "/nonexistent/notes.txt")
	assert.Error(t, err)
	assert.Nil(t, pages)
}
