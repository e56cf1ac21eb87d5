package driving

import (
	"context"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
)

// FeedbackService records user verdicts on answers and grows the golden
// evaluation dataset from them.
type FeedbackService interface {
	// Record stores a verdict. Helpful and corrected verdicts are also
	// promoted into the golden dataset.
	Record(ctx context.Context, entry domain.FeedbackEntry) error

	// Stats summarises recorded verdicts.
	Stats(ctx context.Context) (*domain.FeedbackStats, error)

	// GoldenStats summarises the golden dataset.
	GoldenStats(ctx context.Context) (*domain.GoldenStats, error)

	// Export returns the most recent feedback entries, newest first.
	// A non-positive limit returns everything.
	Export(ctx context.Context, limit int) ([]domain.FeedbackEntry, error)
}
