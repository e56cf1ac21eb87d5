package mcp

import (
	"context"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
)

// mockQueryOrchestrator is a mock implementation of driving.QueryOrchestrator.
type mockQueryOrchestrator struct {
	answer         *domain.Answer
	clarifications []string
	err            error
	clarifyErr     error
}

func (m *mockQueryOrchestrator) Ask(
	_ context.Context,
	_ string,
	_ []domain.ConversationTurn,
) (*domain.Answer, error) {
	return m.answer, m.err
}

func (m *mockQueryOrchestrator) Clarifications(_ context.Context, _ string) ([]string, error) {
	return m.clarifications, m.clarifyErr
}

// mockIndexManager is a mock implementation of driving.IndexManager.
type mockIndexManager struct {
	report *domain.IndexReport
	status domain.IndexStatus
	stats  *domain.IndexStats
	err    error
}

func (m *mockIndexManager) Run(_ context.Context, _ domain.IndexMode) (*domain.IndexReport, error) {
	return m.report, m.err
}

func (m *mockIndexManager) Stop() {}

func (m *mockIndexManager) IsIndexing() bool {
	return m.status.Running
}

func (m *mockIndexManager) Status() domain.IndexStatus {
	return m.status
}

func (m *mockIndexManager) Stats(_ context.Context) (*domain.IndexStats, error) {
	return m.stats, m.err
}

// mockFeedbackService is a mock implementation of driving.FeedbackService.
type mockFeedbackService struct {
	stats   *domain.FeedbackStats
	golden  *domain.GoldenStats
	entries []domain.FeedbackEntry
	err     error
}

func (m *mockFeedbackService) Record(_ context.Context, _ domain.FeedbackEntry) error {
	return m.err
}

func (m *mockFeedbackService) Stats(_ context.Context) (*domain.FeedbackStats, error) {
	return m.stats, m.err
}

func (m *mockFeedbackService) GoldenStats(_ context.Context) (*domain.GoldenStats, error) {
	return m.golden, m.err
}

func (m *mockFeedbackService) Export(_ context.Context, limit int) ([]domain.FeedbackEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	if limit > 0 && limit < len(m.entries) {
		return m.entries[:limit], nil
	}
	return m.entries, nil
}
