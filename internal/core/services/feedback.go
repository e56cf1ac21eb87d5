package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driven"
	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driving"
	"github.com/NikolaykoSergey/lifta-cli/internal/logger"
)

// Ensure FeedbackService implements the interface.
var _ driving.FeedbackService = (*FeedbackService)(nil)

// FeedbackService records user verdicts on answers and grows the golden
// evaluation dataset from confirmed and corrected ones.
type FeedbackService struct {
	store  driven.FeedbackStore
	golden driven.GoldenStore
}

// NewFeedbackService creates a new feedback service.
func NewFeedbackService(store driven.FeedbackStore, golden driven.GoldenStore) *FeedbackService {
	return &FeedbackService{store: store, golden: golden}
}

// Record stores a verdict. Helpful and corrected verdicts are additionally
// promoted into the golden dataset; promotion failures are logged rather
// than returned, so a dataset problem never loses the verdict itself.
func (s *FeedbackService) Record(ctx context.Context, entry domain.FeedbackEntry) error {
	if !entry.Verdict.IsValid() {
		return fmt.Errorf("%w: unknown verdict %q", domain.ErrInvalidInput, string(entry.Verdict))
	}
	if strings.TrimSpace(entry.Question) == "" {
		return fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}
	if entry.Verdict == domain.VerdictCorrected && strings.TrimSpace(entry.Answer) == "" {
		return fmt.Errorf("%w: corrected verdict needs the corrected answer", domain.ErrInvalidInput)
	}
	if entry.At.IsZero() {
		entry.At = time.Now()
	}

	if err := s.store.Record(ctx, &entry); err != nil {
		return fmt.Errorf("record feedback: %w", err)
	}
	logger.Debug("Feedback %s recorded for: %s", entry.Verdict, entry.Question)

	if entry.Verdict == domain.VerdictHelpful || entry.Verdict == domain.VerdictCorrected {
		s.promote(entry)
	}
	return nil
}

// Stats summarises recorded verdicts.
func (s *FeedbackService) Stats(ctx context.Context) (*domain.FeedbackStats, error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("feedback stats: %w", err)
	}
	return stats, nil
}

// GoldenStats summarises the golden dataset.
func (s *FeedbackService) GoldenStats(ctx context.Context) (*domain.GoldenStats, error) {
	dataset, err := s.golden.Load()
	if err != nil {
		return nil, fmt.Errorf("load golden dataset: %w", err)
	}
	stats := dataset.Stats()
	return &stats, nil
}

// Export returns the most recent feedback entries, newest first.
func (s *FeedbackService) Export(ctx context.Context, limit int) ([]domain.FeedbackEntry, error) {
	entries, err := s.store.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return entries, nil
}

// promote appends the entry's question to the golden dataset. A question
// already present is left untouched.
func (s *FeedbackService) promote(entry domain.FeedbackEntry) {
	dataset, err := s.golden.Load()
	if err != nil {
		logger.Warn("Golden dataset unavailable, verdict not promoted: %v", err)
		return
	}

	if err := dataset.Add(domain.NewGoldenQuestion(entry, time.Now())); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			logger.Debug("Golden dataset already has: %s", entry.Question)
		} else {
			logger.Warn("Golden dataset rejected question: %v", err)
		}
		return
	}

	if err := s.golden.Save(dataset); err != nil {
		logger.Warn("Golden dataset save failed: %v", err)
		return
	}
	logger.Debug("Promoted to golden dataset: %s", entry.Question)
}
