// Package cleaner runs extracted page text through an LLM cleanup pass to
// strip duplicated lines and truncation artifacts before chunking. Cleaning
// never gates a page: any failure returns the input text unchanged.
package cleaner

import (
	"context"
	"fmt"
	"strings"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driven"
	"github.com/NikolaykoSergey/lifta-cli/internal/logger"
)

// Ensure Cleaner implements the interface.
var _ driven.TextCleaner = (*Cleaner)(nil)

// Cleanup runs deterministic and short so it never dominates indexing time.
const (
	cleanTemperature = 0.1
	cleanMaxTokens   = 512
)

// Cleaner cleans page text via an LLM.
type Cleaner struct {
	llm     driven.LLMService
	prompts driven.PromptStore
}

// New creates a text cleaner backed by the given LLM.
func New(llm driven.LLMService, prompts driven.PromptStore) *Cleaner {
	return &Cleaner{llm: llm, prompts: prompts}
}

// Clean removes extraction noise from page text. Returns the input
// unchanged when the text is blank, the prompt cannot be loaded, or the
// model fails or produces nothing.
func (c *Cleaner) Clean(ctx context.Context, text, fileName string, page int) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	system, err := c.prompts.Load(driven.PromptCleanerSystem)
	if err != nil {
		logger.Debug("cleaner prompt unavailable: %v", err)
		return text
	}

	prompt := fmt.Sprintf("File: %s, page: %d\n\nText:\n%s", fileName, page, text)
	cleaned, err := c.llm.Generate(ctx, prompt, driven.GenerateOptions{
		System:      system,
		Temperature: cleanTemperature,
		MaxTokens:   cleanMaxTokens,
	})
	if err != nil {
		logger.Warn("text cleanup failed for %s page %d: %v", fileName, page, err)
		return text
	}

	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return text
	}
	return cleaned
}
