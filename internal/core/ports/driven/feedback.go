package driven

import (
	"context"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
)

// FeedbackStore persists user verdicts on generated answers.
type FeedbackStore interface {
	// Record stores a verdict and assigns the entry's ID.
	Record(ctx context.Context, entry *domain.FeedbackEntry) error

	// List returns the most recent entries, newest first.
	// A non-positive limit returns everything.
	List(ctx context.Context, limit int) ([]domain.FeedbackEntry, error)

	// Stats summarises stored verdicts.
	Stats(ctx context.Context) (*domain.FeedbackStats, error)

	// Close releases resources.
	Close() error
}

// GoldenStore persists the evaluation question dataset.
type GoldenStore interface {
	// Load reads the dataset, returning an empty one when no file exists.
	Load() (*domain.GoldenDataset, error)

	// Save writes the dataset.
	Save(dataset *domain.GoldenDataset) error

	// Path returns the dataset file location.
	Path() string
}

// SessionStore persists chat session transcripts.
type SessionStore interface {
	// Save writes the session's full state. Called after every mutation;
	// implementations should overwrite the session's file.
	Save(session domain.Session) error

	// Dir returns the folder session files are written to.
	Dir() string
}
