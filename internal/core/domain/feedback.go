package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// FeedbackVerdict is the user's judgement of an answer.
type FeedbackVerdict string

// Available verdicts.
const (
	// VerdictHelpful marks an answer the user confirmed.
	VerdictHelpful FeedbackVerdict = "helpful"

	// VerdictNotHelpful marks an answer the user rejected.
	VerdictNotHelpful FeedbackVerdict = "not_helpful"

	// VerdictCorrected marks an answer the user replaced with their own.
	VerdictCorrected FeedbackVerdict = "corrected"
)

// IsValid returns true if the verdict is recognised.
func (v FeedbackVerdict) IsValid() bool {
	switch v {
	case VerdictHelpful, VerdictNotHelpful, VerdictCorrected:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (v FeedbackVerdict) String() string {
	return string(v)
}

// FeedbackEntry records one user verdict on a generated answer.
type FeedbackEntry struct {
	// ID is assigned by the store.
	ID int64

	// At is when the verdict was recorded.
	At time.Time

	// UserID identifies the user.
	UserID string

	// Question is the query that produced the answer.
	Question string

	// Answer is the generated answer. For corrected verdicts this is the
	// user-supplied replacement.
	Answer string

	// Context holds the retrieved fragment texts the answer was grounded on.
	Context []string

	// Sources lists the document locations behind the answer.
	Sources []Source

	// Relevance is the answer's relevance score.
	Relevance float64

	// Verdict is the user's judgement.
	Verdict FeedbackVerdict
}

// FeedbackStats summarises stored feedback.
type FeedbackStats struct {
	// Total is the number of recorded verdicts.
	Total int

	// ByVerdict counts entries per verdict.
	ByVerdict map[FeedbackVerdict]int
}

// Golden dataset field defaults for entries promoted from user feedback.
const (
	// GoldenCategoryFeedback marks questions promoted from the feedback loop.
	GoldenCategoryFeedback = "user_feedback"

	// GoldenDifficultyUnknown is used until a reviewer grades the question.
	GoldenDifficultyUnknown = "unknown"

	// GoldenMaxKeywords caps derived keywords per question.
	GoldenMaxKeywords = 10
)

// GoldenQuestion is one entry of the evaluation dataset.
type GoldenQuestion struct {
	// ID is a monotonically increasing identifier within the dataset.
	ID int

	// Question is the user's query, verbatim.
	Question string

	// ExpectedAnswer is the answer the user confirmed or supplied.
	ExpectedAnswer string

	// SourceFile is the first source's file, or "unknown".
	SourceFile string

	// SourcePage is the first source's page, or 0.
	SourcePage int

	// Sources lists all document locations behind the answer.
	Sources []Source

	// Keywords are derived from the question for quick filtering.
	Keywords []string

	// Difficulty is a reviewer-assigned grade.
	Difficulty string

	// Category records how the question entered the dataset.
	Category string

	// Verdict is the feedback verdict that promoted this question.
	Verdict FeedbackVerdict

	// UserID identifies who asked.
	UserID string

	// AddedAt is when the question was promoted.
	AddedAt time.Time
}

// NewGoldenQuestion builds a dataset entry from a feedback record, deriving
// the primary source and keywords.
func NewGoldenQuestion(entry FeedbackEntry, addedAt time.Time) GoldenQuestion {
	q := GoldenQuestion{
		Question:       entry.Question,
		ExpectedAnswer: entry.Answer,
		SourceFile:     "unknown",
		Sources:        entry.Sources,
		Keywords:       ExtractKeywords(entry.Question),
		Difficulty:     GoldenDifficultyUnknown,
		Category:       GoldenCategoryFeedback,
		Verdict:        entry.Verdict,
		UserID:         entry.UserID,
		AddedAt:        addedAt,
	}
	if len(entry.Sources) > 0 {
		q.SourceFile = entry.Sources[0].File
		q.SourcePage = entry.Sources[0].Page
	}
	return q
}

// keywordStopwords are interrogatives and filler words excluded from derived
// keywords. The corpus is bilingual, so both English and Russian are listed.
var keywordStopwords = map[string]struct{}{
	"how": {}, "what": {}, "where": {}, "when": {}, "why": {}, "which": {},
	"does": {}, "this": {}, "that": {}, "with": {}, "from": {}, "have": {},
	"как": {}, "что": {}, "где": {}, "когда": {}, "почему": {}, "какой": {},
	"какая": {}, "какие": {}, "для": {}, "при": {}, "это": {}, "или": {},
}

// ExtractKeywords derives up to GoldenMaxKeywords search keywords from a
// question: lowercased words longer than three runes, punctuation stripped,
// stopwords removed, first occurrence wins.
func ExtractKeywords(question string) []string {
	var keywords []string
	seen := make(map[string]struct{})

	for _, word := range strings.Fields(strings.ToLower(question)) {
		word = strings.Trim(word, ".,?!:;")
		if utf8.RuneCountInString(word) <= 3 {
			continue
		}
		if _, stop := keywordStopwords[word]; stop {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		keywords = append(keywords, word)
		if len(keywords) == GoldenMaxKeywords {
			break
		}
	}
	return keywords
}

// GoldenDataset is the versioned evaluation question collection.
type GoldenDataset struct {
	// Version is the dataset format version.
	Version string

	// CreatedAt is when the dataset file was first created.
	CreatedAt time.Time

	// Questions is the ordered entry list.
	Questions []GoldenQuestion
}

// NewGoldenDataset returns an empty dataset at the current format version.
func NewGoldenDataset(createdAt time.Time) GoldenDataset {
	return GoldenDataset{
		Version:   "1.0",
		CreatedAt: createdAt,
	}
}

// Add appends a question unless an entry with the same trimmed,
// case-insensitive question text already exists. The entry's ID is assigned
// here. Returns ErrAlreadyExists for duplicates.
func (d *GoldenDataset) Add(q GoldenQuestion) error {
	needle := strings.ToLower(strings.TrimSpace(q.Question))
	for _, existing := range d.Questions {
		if strings.ToLower(strings.TrimSpace(existing.Question)) == needle {
			return ErrAlreadyExists
		}
	}

	maxID := 0
	for _, existing := range d.Questions {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	q.ID = maxID + 1
	d.Questions = append(d.Questions, q)
	return nil
}

// Stats summarises the dataset per verdict and category.
func (d *GoldenDataset) Stats() GoldenStats {
	stats := GoldenStats{
		Total:      len(d.Questions),
		Categories: make(map[string]int),
	}
	for _, q := range d.Questions {
		switch q.Verdict {
		case VerdictHelpful:
			stats.Helpful++
		case VerdictNotHelpful:
			stats.NotHelpful++
		case VerdictCorrected:
			stats.Corrected++
		}
		stats.Categories[q.Category]++
	}
	return stats
}

// GoldenStats summarises a golden dataset.
type GoldenStats struct {
	// Total is the number of questions.
	Total int

	// Helpful counts questions promoted from confirmed answers.
	Helpful int

	// NotHelpful counts questions kept from rejected answers.
	NotHelpful int

	// Corrected counts questions with user-supplied answers.
	Corrected int

	// Categories counts questions per category.
	Categories map[string]int
}
