package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for lifta resources.
	uriScheme = "lifta://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the indexed file list.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "index/files",
		Name:        "index-files",
		Description: "List of files currently in the index",
		MIMEType:    "application/json",
	}, s.handleIndexFilesResource)

	// Static resource for feedback statistics.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "feedback/stats",
		Name:        "feedback-stats",
		Description: "Verdict counts and golden dataset summary",
		MIMEType:    "application/json",
	}, s.handleFeedbackStatsResource)

	// Template for recent feedback entries.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "feedback/entries/{limit}",
		Name:        "feedback-entries",
		Description: "Most recent feedback entries, newest first",
		MIMEType:    "application/json",
	}, s.handleFeedbackEntriesResource)
}

// handleIndexFilesResource returns the list of indexed files.
func (s *Server) handleIndexFilesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Index == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	stats, err := s.ports.Index.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading index stats: %w", err)
	}

	files := stats.IndexedFiles
	if files == nil {
		files = []string{}
	}

	data, err := json.MarshalIndent(files, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling file list: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleFeedbackStatsResource returns verdict counts and golden dataset totals.
func (s *Server) handleFeedbackStatsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Feedback == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	stats, err := s.ports.Feedback.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading feedback stats: %w", err)
	}

	golden, err := s.ports.Feedback.GoldenStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading golden stats: %w", err)
	}

	type goldenInfo struct {
		Total      int            `json:"total"`
		Helpful    int            `json:"helpful"`
		NotHelpful int            `json:"not_helpful"`
		Corrected  int            `json:"corrected"`
		Categories map[string]int `json:"categories,omitempty"`
	}

	type statsInfo struct {
		Total      int         `json:"total"`
		Helpful    int         `json:"helpful"`
		NotHelpful int         `json:"not_helpful"`
		Corrected  int         `json:"corrected"`
		Golden     *goldenInfo `json:"golden"`
	}

	info := statsInfo{
		Total:      stats.Total,
		Helpful:    stats.ByVerdict[domain.VerdictHelpful],
		NotHelpful: stats.ByVerdict[domain.VerdictNotHelpful],
		Corrected:  stats.ByVerdict[domain.VerdictCorrected],
		Golden: &goldenInfo{
			Total:      golden.Total,
			Helpful:    golden.Helpful,
			NotHelpful: golden.NotHelpful,
			Corrected:  golden.Corrected,
			Categories: golden.Categories,
		},
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling feedback stats: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleFeedbackEntriesResource returns the most recent feedback entries.
func (s *Server) handleFeedbackEntriesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Feedback == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract limit from URI: lifta://feedback/entries/{limit}
	limit, ok := extractLimit(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	entries, err := s.ports.Feedback.Export(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("exporting feedback: %w", err)
	}

	type entryInfo struct {
		ID        int64   `json:"id"`
		At        string  `json:"at"`
		Question  string  `json:"question"`
		Answer    string  `json:"answer"`
		Relevance float64 `json:"relevance"`
		Verdict   string  `json:"verdict"`
	}

	infos := make([]entryInfo, len(entries))
	for i := range entries {
		infos[i] = entryInfo{
			ID:        entries[i].ID,
			At:        entries[i].At.Format("2006-01-02 15:04:05"),
			Question:  entries[i].Question,
			Answer:    entries[i].Answer,
			Relevance: entries[i].Relevance,
			Verdict:   entries[i].Verdict.String(),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling feedback entries: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractLimit extracts the entry limit from a URI like lifta://feedback/entries/{limit}.
// The literal "all" maps to no limit.
func extractLimit(uri string) (int, bool) {
	const prefix = uriScheme + "feedback/entries/"

	if !strings.HasPrefix(uri, prefix) {
		return 0, false
	}

	raw := strings.TrimPrefix(uri, prefix)
	if raw == "all" {
		return 0, true
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, false
	}

	return limit, true
}
