package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ErrNoIndexManager is returned by index tools when indexing is not wired.
var ErrNoIndexManager = errors.New("mcp: index manager not configured")

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the indexed documentation"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer             string         `json:"answer"`
	Sources            []SourceOutput `json:"sources,omitempty"`
	Relevance          float64        `json:"relevance"`
	NeedsClarification bool           `json:"needs_clarification"`
	Clarifications     []string       `json:"clarifications,omitempty"`
}

// SourceOutput is a document location an answer is grounded on.
type SourceOutput struct {
	File  string  `json:"file"`
	Page  int     `json:"page,omitempty"`
	Score float64 `json:"score,omitempty"`
}

// IndexStatsInput is the input schema for the index_stats tool.
type IndexStatsInput struct{}

// IndexStatsOutput is the output schema for the index_stats tool.
type IndexStatsOutput struct {
	Files          []string `json:"files"`
	FileCount      int      `json:"file_count"`
	Fragments      int      `json:"fragments"`
	Dimension      int      `json:"dimension"`
	EmbeddingModel string   `json:"embedding_model"`
	CacheEntries   int      `json:"cache_entries"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Ask a question about the indexed documentation and get a grounded answer",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "index_stats",
		Description: "Report what is currently indexed: files, fragments and embedding model",
	}, s.handleIndexStats)
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	answer, err := s.ports.Query.Ask(ctx, input.Question, nil)
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Answer:             answer.Text,
		Relevance:          answer.Relevance,
		NeedsClarification: answer.NeedsClarification,
	}

	for _, src := range answer.Sources {
		output.Sources = append(output.Sources, SourceOutput{
			File:  src.File,
			Page:  src.Page,
			Score: src.Score,
		})
	}

	// MCP clients have no interactive round-trip, so ship the follow-up
	// questions alongside the answer instead of prompting.
	if answer.NeedsClarification {
		if questions, cerr := s.ports.Query.Clarifications(ctx, input.Question); cerr == nil {
			output.Clarifications = questions
		}
	}

	return nil, output, nil
}

// handleIndexStats handles the index_stats tool invocation.
func (s *Server) handleIndexStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ IndexStatsInput,
) (*mcp.CallToolResult, IndexStatsOutput, error) {
	if s.ports.Index == nil {
		return nil, IndexStatsOutput{}, ErrNoIndexManager
	}

	stats, err := s.ports.Index.Stats(ctx)
	if err != nil {
		return nil, IndexStatsOutput{}, err
	}

	files := stats.IndexedFiles
	if files == nil {
		files = []string{}
	}

	return nil, IndexStatsOutput{
		Files:          files,
		FileCount:      len(stats.IndexedFiles),
		Fragments:      stats.Fragments,
		Dimension:      stats.Dimension,
		EmbeddingModel: stats.EmbeddingModel,
		CacheEntries:   stats.CacheEntries,
	}, nil
}
