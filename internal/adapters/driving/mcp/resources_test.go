package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
)

func TestExtractLimit(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected int
		ok       bool
	}{
		{
			name:     "valid entries URI",
			uri:      "lifta://feedback/entries/25",
			expected: 25,
			ok:       true,
		},
		{
			name:     "all maps to no limit",
			uri:      "lifta://feedback/entries/all",
			expected: 0,
			ok:       true,
		},
		{
			name: "invalid prefix",
			uri:  "file://feedback/entries/25",
		},
		{
			name: "non-numeric limit",
			uri:  "lifta://feedback/entries/lots",
		},
		{
			name: "negative limit",
			uri:  "lifta://feedback/entries/-5",
		},
		{
			name: "empty URI",
			uri:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, ok := extractLimit(tt.uri)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, limit)
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleIndexFilesResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil index manager returns empty list", func(t *testing.T) {
		ports := &Ports{Query: &mockQueryOrchestrator{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("lifta://index/files")
		result, err := server.handleIndexFilesResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns indexed files", func(t *testing.T) {
		mockIndex := &mockIndexManager{
			stats: &domain.IndexStats{
				IndexedFiles: []string{"manual.pdf", "wiring.docx"},
			},
		}

		ports := &Ports{Query: &mockQueryOrchestrator{}, Index: mockIndex}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("lifta://index/files")
		result, err := server.handleIndexFilesResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, "manual.pdf")
		assert.Contains(t, result.Contents[0].Text, "wiring.docx")
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
	})

	t.Run("empty index returns empty list", func(t *testing.T) {
		mockIndex := &mockIndexManager{
			stats: &domain.IndexStats{},
		}

		ports := &Ports{Query: &mockQueryOrchestrator{}, Index: mockIndex}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("lifta://index/files")
		result, err := server.handleIndexFilesResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns error on stats failure", func(t *testing.T) {
		mockIndex := &mockIndexManager{
			err: errors.New("qdrant unreachable"),
		}

		ports := &Ports{Query: &mockQueryOrchestrator{}, Index: mockIndex}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("lifta://index/files")
		_, err = server.handleIndexFilesResource(ctx, req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading index stats")
	})
}

func TestServer_handleFeedbackStatsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil feedback service returns not found", func(t *testing.T) {
		ports := &Ports{Query: &mockQueryOrchestrator{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("lifta://feedback/stats")
		_, err = server.handleFeedbackStatsResource(ctx, req)

		require.Error(t, err)
	})

	t.Run("returns verdict and golden counts", func(t *testing.T) {
		mockFeedback := &mockFeedbackService{
			stats: &domain.FeedbackStats{
				Total: 7,
				ByVerdict: map[domain.FeedbackVerdict]int{
					domain.VerdictHelpful:    4,
					domain.VerdictNotHelpful: 2,
					domain.VerdictCorrected:  1,
				},
			},
			golden: &domain.GoldenStats{
				Total:     5,
				Helpful:   4,
				Corrected: 1,
				Categories: map[string]int{
					domain.GoldenCategoryFeedback: 5,
				},
			},
		}

		ports := &Ports{Query: &mockQueryOrchestrator{}, Feedback: mockFeedback}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("lifta://feedback/stats")
		result, err := server.handleFeedbackStatsResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, `"total": 7`)
		assert.Contains(t, result.Contents[0].Text, `"helpful": 4`)
		assert.Contains(t, result.Contents[0].Text, `"user_feedback": 5`)
	})

	t.Run("returns error on stats failure", func(t *testing.T) {
		mockFeedback := &mockFeedbackService{
			err: errors.New("database locked"),
		}

		ports := &Ports{Query: &mockQueryOrchestrator{}, Feedback: mockFeedback}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("lifta://feedback/stats")
		_, err = server.handleFeedbackStatsResource(ctx, req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading feedback stats")
	})
}

func TestServer_handleFeedbackEntriesResource(t *testing.T) {
	ctx := context.Background()

	entries := []domain.FeedbackEntry{
		{
			ID:        2,
			At:        time.Date(2025, 6, 12, 14, 30, 0, 0, time.UTC),
			Question:  "how do I reset the controller",
			Answer:    "Hold RESET for five seconds.",
			Relevance: 71.4,
			Verdict:   domain.VerdictHelpful,
		},
		{
			ID:       1,
			At:       time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC),
			Question: "door fault",
			Answer:   "Check the door sensor wiring.",
			Verdict:  domain.VerdictCorrected,
		},
	}

	t.Run("nil feedback service returns not found", func(t *testing.T) {
		ports := &Ports{Query: &mockQueryOrchestrator{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("lifta://feedback/entries/10")
		_, err = server.handleFeedbackEntriesResource(ctx, req)

		require.Error(t, err)
	})

	t.Run("invalid URI returns not found", func(t *testing.T) {
		ports := &Ports{Query: &mockQueryOrchestrator{}, Feedback: &mockFeedbackService{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("lifta://feedback/entries/lots")
		_, err = server.handleFeedbackEntriesResource(ctx, req)

		require.Error(t, err)
	})

	t.Run("returns entries", func(t *testing.T) {
		mockFeedback := &mockFeedbackService{entries: entries}

		ports := &Ports{Query: &mockQueryOrchestrator{}, Feedback: mockFeedback}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("lifta://feedback/entries/10")
		result, err := server.handleFeedbackEntriesResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, "how do I reset the controller")
		assert.Contains(t, result.Contents[0].Text, "door fault")
		assert.Contains(t, result.Contents[0].Text, "2025-06-12 14:30:00")
		assert.Contains(t, result.Contents[0].Text, `"verdict": "corrected"`)
	})

	t.Run("limit trims the list", func(t *testing.T) {
		mockFeedback := &mockFeedbackService{entries: entries}

		ports := &Ports{Query: &mockQueryOrchestrator{}, Feedback: mockFeedback}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("lifta://feedback/entries/1")
		result, err := server.handleFeedbackEntriesResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, "how do I reset the controller")
		assert.NotContains(t, result.Contents[0].Text, "door fault")
	})

	t.Run("all returns everything", func(t *testing.T) {
		mockFeedback := &mockFeedbackService{entries: entries}

		ports := &Ports{Query: &mockQueryOrchestrator{}, Feedback: mockFeedback}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("lifta://feedback/entries/all")
		result, err := server.handleFeedbackEntriesResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, "how do I reset the controller")
		assert.Contains(t, result.Contents[0].Text, "door fault")
	})

	t.Run("returns error on export failure", func(t *testing.T) {
		mockFeedback := &mockFeedbackService{
			err: errors.New("database locked"),
		}

		ports := &Ports{Query: &mockQueryOrchestrator{}, Feedback: mockFeedback}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := makeReadResourceRequest("lifta://feedback/entries/10")
		_, err = server.handleFeedbackEntriesResource(ctx, req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "exporting feedback")
	})
}
