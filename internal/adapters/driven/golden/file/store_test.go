package file

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driven"
)

// testQuestion builds a dataset entry the way the feedback loop does.
func testQuestion() domain.GoldenQuestion {
	entry := domain.FeedbackEntry{
		UserID:   "user-7",
		Question: "What is the rated load of the PB-0601 cabin?",
		Answer:   "The rated load is 630 kg.",
		Sources: []domain.Source{
			{File: "passport.pdf", Page: 12},
		},
		Verdict: domain.VerdictHelpful,
	}
	return domain.NewGoldenQuestion(entry, time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC))
}

// TestInterfaceCompliance verifies Store implements driven.GoldenStore.
func TestInterfaceCompliance(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)
	var _ driven.GoldenStore = store
}

// TestLoad_NoFile verifies a missing file yields a fresh empty dataset.
func TestLoad_NoFile(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	dataset, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "1.0", dataset.Version)
	assert.False(t, dataset.CreatedAt.IsZero())
	assert.Empty(t, dataset.Questions)
}

// TestSaveAndLoad verifies a full round trip.
func TestSaveAndLoad(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	dataset := domain.NewGoldenDataset(time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC))
	require.NoError(t, dataset.Add(testQuestion()))
	require.NoError(t, store.Save(&dataset))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "1.0", loaded.Version)
	require.Len(t, loaded.Questions, 1)

	q := loaded.Questions[0]
	assert.Equal(t, 1, q.ID)
	assert.Equal(t, "What is the rated load of the PB-0601 cabin?", q.Question)
	assert.Equal(t, "The rated load is 630 kg.", q.ExpectedAnswer)
	assert.Equal(t, "passport.pdf", q.SourceFile)
	assert.Equal(t, 12, q.SourcePage)
	require.Len(t, q.Sources, 1)
	assert.Equal(t, domain.VerdictHelpful, q.Verdict)
	assert.Equal(t, domain.GoldenCategoryFeedback, q.Category)
	assert.NotEmpty(t, q.Keywords)
	assert.Equal(t, "user-7", q.UserID)
}

// TestSave_FileFormat verifies the on-disk JSON uses the expected keys.
func TestSave_FileFormat(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)

	dataset := domain.NewGoldenDataset(time.Now().UTC())
	require.NoError(t, dataset.Add(testQuestion()))
	require.NoError(t, store.Save(&dataset))

	raw, err := os.ReadFile(filepath.Join(dir, "golden_dataset.json"))
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(raw, &parsed))
	assert.Equal(t, "1.0", parsed["version"])
	assert.Contains(t, parsed, "created_at")

	questions, ok := parsed["questions"].([]any)
	require.True(t, ok)
	require.Len(t, questions, 1)

	question, ok := questions[0].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, question, "expected_answer")
	assert.Contains(t, question, "source_file")
	assert.Contains(t, question, "added_at")
}

// TestSave_Overwrite verifies saving twice keeps the latest state.
func TestSave_Overwrite(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	dataset := domain.NewGoldenDataset(time.Now().UTC())
	require.NoError(t, dataset.Add(testQuestion()))
	require.NoError(t, store.Save(&dataset))

	second := testQuestion()
	second.Question = "How wide is the landing door opening?"
	require.NoError(t, dataset.Add(second))
	require.NoError(t, store.Save(&dataset))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, loaded.Questions, 2)
}

// TestLoad_CorruptFile verifies a damaged dataset surfaces an error
// instead of silently wiping collected questions.
func TestLoad_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "golden_dataset.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0600))

	_, err = store.Load()
	assert.Error(t, err)
}

// TestPath verifies the reported location.
func TestPath(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "golden_dataset.json"), store.Path())
}
