// Package file provides a JSON-file implementation of the golden
// dataset store. The dataset is a versioned document of evaluation
// questions promoted from user feedback.
package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.GoldenStore = (*Store)(nil)

// datasetFile is the on-disk shape of the dataset.
type datasetFile struct {
	Version   string         `json:"version"`
	CreatedAt time.Time      `json:"created_at"`
	Questions []questionFile `json:"questions"`
}

// questionFile is the on-disk shape of one question.
type questionFile struct {
	ID             int          `json:"id"`
	Question       string       `json:"question"`
	ExpectedAnswer string       `json:"expected_answer"`
	SourceFile     string       `json:"source_file"`
	SourcePage     int          `json:"source_page"`
	Sources        []sourceFile `json:"sources,omitempty"`
	Keywords       []string     `json:"keywords,omitempty"`
	Difficulty     string       `json:"difficulty"`
	Category       string       `json:"category"`
	Verdict        string       `json:"verdict,omitempty"`
	UserID         string       `json:"user_id,omitempty"`
	AddedAt        time.Time    `json:"added_at"`
}

// sourceFile is the on-disk shape of one source location.
type sourceFile struct {
	File string `json:"file"`
	Page int    `json:"page"`
}

// Store is a file-based implementation of driven.GoldenStore.
type Store struct {
	mu       sync.Mutex
	filePath string
}

// New creates a golden store persisted under dataDir. If dataDir is
// empty, defaults to ~/.lifta.
func New(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dataDir = filepath.Join(home, ".lifta")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, err
	}

	return &Store{
		filePath: filepath.Join(dataDir, "golden_dataset.json"),
	}, nil
}

// Load reads the dataset, returning a fresh empty one when no file
// exists yet.
func (s *Store) Load() (*domain.GoldenDataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			dataset := domain.NewGoldenDataset(time.Now().UTC())
			return &dataset, nil
		}
		return nil, fmt.Errorf("read golden dataset: %w", err)
	}

	var parsed datasetFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse golden dataset %s: %w", s.filePath, err)
	}

	dataset := domain.GoldenDataset{
		Version:   parsed.Version,
		CreatedAt: parsed.CreatedAt,
		Questions: make([]domain.GoldenQuestion, len(parsed.Questions)),
	}
	for i, q := range parsed.Questions {
		dataset.Questions[i] = domain.GoldenQuestion{
			ID:             q.ID,
			Question:       q.Question,
			ExpectedAnswer: q.ExpectedAnswer,
			SourceFile:     q.SourceFile,
			SourcePage:     q.SourcePage,
			Sources:        fromSourceFiles(q.Sources),
			Keywords:       q.Keywords,
			Difficulty:     q.Difficulty,
			Category:       q.Category,
			Verdict:        domain.FeedbackVerdict(q.Verdict),
			UserID:         q.UserID,
			AddedAt:        q.AddedAt,
		}
	}
	return &dataset, nil
}

// Save writes the dataset.
func (s *Store) Save(dataset *domain.GoldenDataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := datasetFile{
		Version:   dataset.Version,
		CreatedAt: dataset.CreatedAt,
		Questions: make([]questionFile, len(dataset.Questions)),
	}
	for i, q := range dataset.Questions {
		out.Questions[i] = questionFile{
			ID:             q.ID,
			Question:       q.Question,
			ExpectedAnswer: q.ExpectedAnswer,
			SourceFile:     q.SourceFile,
			SourcePage:     q.SourcePage,
			Sources:        toSourceFiles(q.Sources),
			Keywords:       q.Keywords,
			Difficulty:     q.Difficulty,
			Category:       q.Category,
			Verdict:        q.Verdict.String(),
			UserID:         q.UserID,
			AddedAt:        q.AddedAt,
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal golden dataset: %w", err)
	}
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("write golden dataset: %w", err)
	}
	return nil
}

// Path returns the dataset file location.
func (s *Store) Path() string {
	return s.filePath
}

func toSourceFiles(sources []domain.Source) []sourceFile {
	if len(sources) == 0 {
		return nil
	}
	out := make([]sourceFile, len(sources))
	for i, src := range sources {
		out[i] = sourceFile{File: src.File, Page: src.Page}
	}
	return out
}

func fromSourceFiles(files []sourceFile) []domain.Source {
	if len(files) == 0 {
		return nil
	}
	out := make([]domain.Source, len(files))
	for i, f := range files {
		out[i] = domain.Source{File: f.File, Page: f.Page}
	}
	return out
}
