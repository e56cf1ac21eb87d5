package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
)

// MockQueryOrchestrator implements driving.QueryOrchestrator for testing.
type MockQueryOrchestrator struct {
	AskFunc func(
		ctx context.Context, question string, history []domain.ConversationTurn,
	) (*domain.Answer, error)
	ClarificationsFunc func(ctx context.Context, question string) ([]string, error)
}

func (m *MockQueryOrchestrator) Ask(
	ctx context.Context, question string, history []domain.ConversationTurn,
) (*domain.Answer, error) {
	if m.AskFunc != nil {
		return m.AskFunc(ctx, question, history)
	}
	return &domain.Answer{Text: "mock answer"}, nil
}

func (m *MockQueryOrchestrator) Clarifications(ctx context.Context, question string) ([]string, error) {
	if m.ClarificationsFunc != nil {
		return m.ClarificationsFunc(ctx, question)
	}
	return nil, nil
}

// MockFeedbackService implements driving.FeedbackService for testing.
type MockFeedbackService struct {
	RecordFunc      func(ctx context.Context, entry domain.FeedbackEntry) error
	StatsFunc       func(ctx context.Context) (*domain.FeedbackStats, error)
	GoldenStatsFunc func(ctx context.Context) (*domain.GoldenStats, error)
	ExportFunc      func(ctx context.Context, limit int) ([]domain.FeedbackEntry, error)

	Recorded []domain.FeedbackEntry
}

func (m *MockFeedbackService) Record(ctx context.Context, entry domain.FeedbackEntry) error {
	m.Recorded = append(m.Recorded, entry)
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, entry)
	}
	return nil
}

func (m *MockFeedbackService) Stats(ctx context.Context) (*domain.FeedbackStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	return &domain.FeedbackStats{}, nil
}

func (m *MockFeedbackService) GoldenStats(ctx context.Context) (*domain.GoldenStats, error) {
	if m.GoldenStatsFunc != nil {
		return m.GoldenStatsFunc(ctx)
	}
	return &domain.GoldenStats{}, nil
}

func (m *MockFeedbackService) Export(ctx context.Context, limit int) ([]domain.FeedbackEntry, error) {
	if m.ExportFunc != nil {
		return m.ExportFunc(ctx, limit)
	}
	return nil, nil
}

// MockIndexManager implements driving.IndexManager for testing.
type MockIndexManager struct {
	RunFunc   func(ctx context.Context, mode domain.IndexMode) (*domain.IndexReport, error)
	StatsFunc func(ctx context.Context) (*domain.IndexStats, error)

	indexing bool
}

func (m *MockIndexManager) Run(ctx context.Context, mode domain.IndexMode) (*domain.IndexReport, error) {
	if m.RunFunc != nil {
		return m.RunFunc(ctx, mode)
	}
	return &domain.IndexReport{}, nil
}

func (m *MockIndexManager) Stop() {}

func (m *MockIndexManager) IsIndexing() bool {
	return m.indexing
}

func (m *MockIndexManager) Status() domain.IndexStatus {
	return domain.IndexStatus{}
}

func (m *MockIndexManager) Stats(ctx context.Context) (*domain.IndexStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	return &domain.IndexStats{}, nil
}

// MockSessionStore implements driven.SessionStore for testing.
type MockSessionStore struct {
	SaveFunc func(session domain.Session) error

	Saved []domain.Session
}

func (m *MockSessionStore) Save(session domain.Session) error {
	m.Saved = append(m.Saved, session)
	if m.SaveFunc != nil {
		return m.SaveFunc(session)
	}
	return nil
}

func (m *MockSessionStore) Dir() string {
	return "/tmp/sessions"
}

func TestNewPorts(t *testing.T) {
	query := &MockQueryOrchestrator{}
	feedback := &MockFeedbackService{}
	index := &MockIndexManager{}

	ports := NewPorts(query, feedback, index)

	require.NotNil(t, ports)
	assert.Equal(t, query, ports.Query)
	assert.Equal(t, feedback, ports.Feedback)
	assert.Equal(t, index, ports.Index)
	assert.Nil(t, ports.Sessions)
}

func TestPorts_Validate_Success(t *testing.T) {
	ports := &Ports{Query: &MockQueryOrchestrator{}}

	err := ports.Validate()

	assert.NoError(t, err)
}

func TestPorts_Validate_MissingQuery(t *testing.T) {
	ports := &Ports{
		Feedback: &MockFeedbackService{},
		Index:    &MockIndexManager{},
	}

	err := ports.Validate()

	assert.ErrorIs(t, err, ErrMissingQueryOrchestrator)
}

func TestPorts_Validate_OptionalPortsMayBeNil(t *testing.T) {
	ports := &Ports{
		Query:    &MockQueryOrchestrator{},
		Feedback: nil,
		Index:    nil,
		Sessions: nil,
	}

	err := ports.Validate()

	assert.NoError(t, err)
}
