package cli

import (
	"context"
	"testing"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driving"
)

// mockQueryOrchestrator implements driving.QueryOrchestrator for testing.
type mockQueryOrchestrator struct {
	answer         *domain.Answer
	clarifications []string
	err            error
}

func (m *mockQueryOrchestrator) Ask(
	_ context.Context,
	_ string,
	_ []domain.ConversationTurn,
) (*domain.Answer, error) {
	return m.answer, m.err
}

func (m *mockQueryOrchestrator) Clarifications(_ context.Context, _ string) ([]string, error) {
	return m.clarifications, nil
}

// mockIndexManager implements driving.IndexManager for testing.
type mockIndexManager struct {
	report *domain.IndexReport
	stats  *domain.IndexStats
	err    error
}

func (m *mockIndexManager) Run(_ context.Context, mode domain.IndexMode) (*domain.IndexReport, error) {
	if m.report != nil {
		m.report.Mode = mode
	}
	return m.report, m.err
}

func (m *mockIndexManager) Stop() {}

func (m *mockIndexManager) IsIndexing() bool { return false }

func (m *mockIndexManager) Status() domain.IndexStatus { return domain.IndexStatus{} }

func (m *mockIndexManager) Stats(_ context.Context) (*domain.IndexStats, error) {
	return m.stats, m.err
}

// mockFeedbackService implements driving.FeedbackService for testing.
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

// withMockApp installs pre-built app services for the duration of a test.
func withMockApp(t *testing.T, services *AppServices) {
	t.Helper()
	originalApp := app
	originalBuilder := appBuilder
	app = services
	t.Cleanup(func() {
		app = originalApp
		appBuilder = originalBuilder
	})
}

// withMockFeedback installs a feedback service for the duration of a test.
func withMockFeedback(t *testing.T, service driving.FeedbackService) {
	t.Helper()
	original := feedbackService
	feedbackService = service
	t.Cleanup(func() { feedbackService = original })
}
