package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
)

func TestServer_handleAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("returns grounded answer", func(t *testing.T) {
		mockQuery := &mockQueryOrchestrator{
			answer: &domain.Answer{
				Text: "Hold RESET for five seconds.",
				Sources: []domain.Source{
					{File: "manual.pdf", Page: 12, Score: 0.71},
				},
				Relevance: 71.4,
			},
		}

		ports := &Ports{Query: mockQuery}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := AskInput{Question: "how do I reset the controller"}
		_, output, err := server.handleAsk(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "Hold RESET for five seconds.", output.Answer)
		require.Len(t, output.Sources, 1)
		assert.Equal(t, "manual.pdf", output.Sources[0].File)
		assert.Equal(t, 12, output.Sources[0].Page)
		assert.InDelta(t, 0.71, output.Sources[0].Score, 1e-9)
		assert.Equal(t, 71.4, output.Relevance)
		assert.False(t, output.NeedsClarification)
		assert.Empty(t, output.Clarifications)
	})

	t.Run("includes clarifications when the answer is uncertain", func(t *testing.T) {
		mockQuery := &mockQueryOrchestrator{
			answer: &domain.Answer{
				Text:               "I do not have enough information to answer that.",
				NeedsClarification: true,
			},
			clarifications: []string{
				"Which controller model do you have?",
				"Is the fault light on?",
			},
		}

		ports := &Ports{Query: mockQuery}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := AskInput{Question: "door fault"}
		_, output, err := server.handleAsk(ctx, nil, input)

		require.NoError(t, err)
		assert.True(t, output.NeedsClarification)
		require.Len(t, output.Clarifications, 2)
		assert.Equal(t, "Which controller model do you have?", output.Clarifications[0])
	})

	t.Run("clarification failure does not fail the answer", func(t *testing.T) {
		mockQuery := &mockQueryOrchestrator{
			answer: &domain.Answer{
				Text:               "I do not have enough information to answer that.",
				NeedsClarification: true,
			},
			clarifyErr: errors.New("llm unavailable"),
		}

		ports := &Ports{Query: mockQuery}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := AskInput{Question: "door fault"}
		_, output, err := server.handleAsk(ctx, nil, input)

		require.NoError(t, err)
		assert.True(t, output.NeedsClarification)
		assert.Empty(t, output.Clarifications)
	})

	t.Run("returns error on ask failure", func(t *testing.T) {
		mockQuery := &mockQueryOrchestrator{
			err: errors.New("llm unavailable"),
		}

		ports := &Ports{Query: mockQuery}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := AskInput{Question: "how do I reset the controller"}
		_, _, err = server.handleAsk(ctx, nil, input)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "llm unavailable")
	})
}

func TestServer_handleIndexStats(t *testing.T) {
	ctx := context.Background()

	t.Run("returns index stats", func(t *testing.T) {
		mockIndex := &mockIndexManager{
			stats: &domain.IndexStats{
				IndexedFiles:   []string{"manual.pdf", "wiring.docx"},
				Fragments:      412,
				Dimension:      1024,
				EmbeddingModel: "embed-large",
				CacheEntries:   398,
			},
		}

		ports := &Ports{Query: &mockQueryOrchestrator{}, Index: mockIndex}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleIndexStats(ctx, nil, IndexStatsInput{})

		require.NoError(t, err)
		assert.Equal(t, []string{"manual.pdf", "wiring.docx"}, output.Files)
		assert.Equal(t, 2, output.FileCount)
		assert.Equal(t, 412, output.Fragments)
		assert.Equal(t, 1024, output.Dimension)
		assert.Equal(t, "embed-large", output.EmbeddingModel)
		assert.Equal(t, 398, output.CacheEntries)
	})

	t.Run("empty index returns empty file list", func(t *testing.T) {
		mockIndex := &mockIndexManager{
			stats: &domain.IndexStats{},
		}

		ports := &Ports{Query: &mockQueryOrchestrator{}, Index: mockIndex}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleIndexStats(ctx, nil, IndexStatsInput{})

		require.NoError(t, err)
		assert.NotNil(t, output.Files)
		assert.Empty(t, output.Files)
		assert.Equal(t, 0, output.FileCount)
	})

	t.Run("nil index manager returns error", func(t *testing.T) {
		ports := &Ports{Query: &mockQueryOrchestrator{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleIndexStats(ctx, nil, IndexStatsInput{})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNoIndexManager)
	})

	t.Run("returns error on stats failure", func(t *testing.T) {
		mockIndex := &mockIndexManager{
			err: errors.New("qdrant unreachable"),
		}

		ports := &Ports{Query: &mockQueryOrchestrator{}, Index: mockIndex}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleIndexStats(ctx, nil, IndexStatsInput{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "qdrant unreachable")
	})
}
