// Package anthropic generates text through the Anthropic messages API.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driven"
)

var _ driven.LLMService = (*LLMService)(nil)

// Defaults applied when Config leaves a field zero.
const (
	DefaultBaseURL = "https://api.anthropic.com"
	DefaultModel   = "claude-3-5-sonnet-latest"
	DefaultTimeout = 120 * time.Second

	// anthropicVersion is the required API version header.
	anthropicVersion = "2023-06-01"

	// defaultMaxTokens applies when the caller sets none; the messages API
	// requires a positive max_tokens.
	defaultMaxTokens = 1024
)

// Config configures the Anthropic text-generation client.
type Config struct {
	// APIKey authenticates every request. Required.
	APIKey string

	// BaseURL of the API.
	BaseURL string

	// Model to generate with.
	Model string

	// Timeout per request.
	Timeout time.Duration
}

// LLMService generates text through the /v1/messages endpoint.
type LLMService struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// NewLLMService builds the client, filling unset fields from the package
// defaults. Only a missing API key fails construction.
func NewLLMService(cfg Config) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &LLMService{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}, nil
}

// Wire format of /v1/messages.
type messagesRequest struct {
	Model       string            `json:"model"`
	Messages    []messagesMessage `json:"messages"`
	MaxTokens   int               `json:"max_tokens"`
	System      string            `json:"system,omitempty"`
	Temperature float64           `json:"temperature,omitempty"`
	StopSeqs    []string          `json:"stop_sequences,omitempty"`
}

type messagesMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Error      *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Generate completes the prompt with the configured model. The system
// instruction maps onto the API's top-level system field.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	reqBody := messagesRequest{
		Model: s.model,
		Messages: []messagesMessage{
			{Role: "user", Content: prompt},
		},
		MaxTokens:   maxTokens,
		System:      opts.System,
		Temperature: opts.Temperature,
		StopSeqs:    opts.StopWords,
	}

	status, raw, err := s.post(ctx, reqBody)
	if err != nil {
		return "", err
	}

	var msgResp messagesResponse
	if err := json.Unmarshal(raw, &msgResp); err != nil {
		return "", fmt.Errorf("anthropic: decode response: %w", err)
	}

	if msgResp.Error != nil {
		return "", fmt.Errorf("anthropic: %s", msgResp.Error.Message)
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("anthropic: API returned status %d: %s", status, raw)
	}

	// The answer arrives as typed content blocks; stitch the text ones.
	var parts []string
	for _, block := range msgResp.Content {
		if block.Type == "text" {
			parts = append(parts, block.Text)
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("anthropic: no text content returned")
	}

	return strings.Join(parts, ""), nil
}

// ModelName identifies the configured model.
func (s *LLMService) ModelName() string {
	return s.model
}

// Ping validates the API key with a one-token request. Anthropic has no
// lightweight list endpoint usable for a health check.
func (s *LLMService) Ping(ctx context.Context) error {
	reqBody := messagesRequest{
		Model: s.model,
		Messages: []messagesMessage{
			{Role: "user", Content: "ping"},
		},
		MaxTokens: 1,
	}

	status, raw, err := s.post(ctx, reqBody)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("anthropic: API returned status %d: %s", status, raw)
	}
	return nil
}

// Close releases resources. The shared HTTP client needs none.
func (s *LLMService) Close() error {
	return nil
}

// post sends a messages request and returns the status and raw body.
// Anthropic puts its error envelope in the body of non-200 responses, so
// callers decode before checking the status.
func (s *LLMService) post(ctx context.Context, payload any) (int, []byte, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("anthropic: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/messages", bytes.NewReader(jsonBody))
	if err != nil {
		return 0, nil, fmt.Errorf("anthropic: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("anthropic: send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("anthropic: read response: %w", err)
	}
	return resp.StatusCode, raw, nil
}
