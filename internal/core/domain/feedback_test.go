package domain

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFeedbackVerdict_IsValid tests verdict validation
func TestFeedbackVerdict_IsValid(t *testing.T) {
	assert.True(t, VerdictHelpful.IsValid())
	assert.True(t, VerdictNotHelpful.IsValid())
	assert.True(t, VerdictCorrected.IsValid())
	assert.False(t, FeedbackVerdict("").IsValid())
	assert.False(t, FeedbackVerdict("maybe").IsValid())
}

// TestExtractKeywords_Basic tests keyword derivation from a question
func TestExtractKeywords_Basic(t *testing.T) {
	keywords := ExtractKeywords("What is the rated load capacity of the NL-5000 cabin?")

	assert.Contains(t, keywords, "rated")
	assert.Contains(t, keywords, "load")
	assert.Contains(t, keywords, "capacity")
	assert.Contains(t, keywords, "nl-5000")
	assert.Contains(t, keywords, "cabin")
	assert.NotContains(t, keywords, "what", "stopword should be removed")
	assert.NotContains(t, keywords, "the", "short word should be removed")
}

// TestExtractKeywords_RussianStopwords tests the bilingual stopword list
func TestExtractKeywords_RussianStopwords(t *testing.T) {
	keywords := ExtractKeywords("Какая грузоподъёмность лифта для модели NL-5000?")

	assert.NotContains(t, keywords, "какая")
	assert.NotContains(t, keywords, "для")
	assert.Contains(t, keywords, "грузоподъёмность")
	assert.Contains(t, keywords, "лифта")
}

// TestExtractKeywords_StripsPunctuation tests trailing punctuation removal
func TestExtractKeywords_StripsPunctuation(t *testing.T) {
	keywords := ExtractKeywords("controller? cabinet! wiring:")

	assert.Equal(t, []string{"controller", "cabinet", "wiring"}, keywords)
}

// TestExtractKeywords_Deduplicates tests first-occurrence-wins behaviour
func TestExtractKeywords_Deduplicates(t *testing.T) {
	keywords := ExtractKeywords("brake brake BRAKE adjustment")

	assert.Equal(t, []string{"brake", "adjustment"}, keywords)
}

// TestExtractKeywords_CapsAtMax tests the keyword cap
func TestExtractKeywords_CapsAtMax(t *testing.T) {
	var words []string
	for i := 0; i < 20; i++ {
		words = append(words, fmt.Sprintf("keyword%02d", i))
	}

	keywords := ExtractKeywords(strings.Join(words, " "))

	assert.Len(t, keywords, GoldenMaxKeywords)
}

// TestExtractKeywords_ShortWordsDropped tests the length filter
func TestExtractKeywords_ShortWordsDropped(t *testing.T) {
	keywords := ExtractKeywords("oil cab pit hoistway")

	assert.Equal(t, []string{"hoistway"}, keywords)
}

// TestNewGoldenQuestion tests promotion from a feedback entry
func TestNewGoldenQuestion(t *testing.T) {
	added := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	entry := FeedbackEntry{
		UserID:   "42",
		Question: "How to adjust door closing speed?",
		Answer:   "Turn the regulator screw on the operator board.",
		Sources: []Source{
			{File: "door_operator.pdf", Page: 12},
			{File: "service_manual.pdf", Page: 3},
		},
		Verdict: VerdictHelpful,
	}

	q := NewGoldenQuestion(entry, added)

	assert.Equal(t, entry.Question, q.Question)
	assert.Equal(t, entry.Answer, q.ExpectedAnswer)
	assert.Equal(t, "door_operator.pdf", q.SourceFile)
	assert.Equal(t, 12, q.SourcePage)
	assert.Len(t, q.Sources, 2)
	assert.NotEmpty(t, q.Keywords)
	assert.Equal(t, GoldenDifficultyUnknown, q.Difficulty)
	assert.Equal(t, GoldenCategoryFeedback, q.Category)
	assert.Equal(t, VerdictHelpful, q.Verdict)
	assert.Equal(t, added, q.AddedAt)
}

// TestNewGoldenQuestion_NoSources tests the unknown-source fallback
func TestNewGoldenQuestion_NoSources(t *testing.T) {
	q := NewGoldenQuestion(FeedbackEntry{Question: "anything"}, time.Now())

	assert.Equal(t, "unknown", q.SourceFile)
	assert.Zero(t, q.SourcePage)
}

// TestGoldenDataset_Add tests ID assignment and appending
func TestGoldenDataset_Add(t *testing.T) {
	ds := NewGoldenDataset(time.Now())

	require.NoError(t, ds.Add(GoldenQuestion{Question: "first question"}))
	require.NoError(t, ds.Add(GoldenQuestion{Question: "second question"}))

	require.Len(t, ds.Questions, 2)
	assert.Equal(t, 1, ds.Questions[0].ID)
	assert.Equal(t, 2, ds.Questions[1].ID)
}

// TestGoldenDataset_AddDuplicate tests case-insensitive dedupe
func TestGoldenDataset_AddDuplicate(t *testing.T) {
	ds := NewGoldenDataset(time.Now())

	require.NoError(t, ds.Add(GoldenQuestion{Question: "How to adjust the brake?"}))

	err := ds.Add(GoldenQuestion{Question: "  how to ADJUST the brake?  "})

	assert.ErrorIs(t, err, ErrAlreadyExists)
	assert.Len(t, ds.Questions, 1)
}

// TestGoldenDataset_IDsSurviveGaps tests that IDs keep increasing past the
// largest existing entry
func TestGoldenDataset_IDsSurviveGaps(t *testing.T) {
	ds := NewGoldenDataset(time.Now())
	ds.Questions = []GoldenQuestion{{ID: 7, Question: "existing"}}

	require.NoError(t, ds.Add(GoldenQuestion{Question: "new one"}))

	assert.Equal(t, 8, ds.Questions[1].ID)
}

// TestGoldenDataset_Stats tests per-verdict and per-category counts
func TestGoldenDataset_Stats(t *testing.T) {
	ds := NewGoldenDataset(time.Now())
	require.NoError(t, ds.Add(GoldenQuestion{Question: "q1", Verdict: VerdictHelpful, Category: GoldenCategoryFeedback}))
	require.NoError(t, ds.Add(GoldenQuestion{Question: "q2", Verdict: VerdictHelpful, Category: GoldenCategoryFeedback}))
	require.NoError(t, ds.Add(GoldenQuestion{Question: "q3", Verdict: VerdictCorrected, Category: "manual"}))

	stats := ds.Stats()

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Helpful)
	assert.Equal(t, 0, stats.NotHelpful)
	assert.Equal(t, 1, stats.Corrected)
	assert.Equal(t, 2, stats.Categories[GoldenCategoryFeedback])
	assert.Equal(t, 1, stats.Categories["manual"])
}
