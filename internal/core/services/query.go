package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driven"
	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driving"
	"github.com/NikolaykoSergey/lifta-cli/internal/logger"
)

// Ensure QueryOrchestrator implements the interface.
var _ driving.QueryOrchestrator = (*QueryOrchestrator)(nil)

const (
	// historyWindow caps how many conversation turns are rendered into a
	// prompt after the character budget has been applied.
	historyWindow = 10

	// Clarification rounds run slightly warmer than answers and are
	// always short.
	clarifyTemperature  = 0.3
	clarifyMaxTokens    = 200
	maxClarifyWords     = 10
	maxClarifyQuestions = 3
)

// Fallback texts for when the prompt store cannot serve a template.
const (
	fallbackNotFoundAnswer = "No matching documents were found in the indexed documentation."
	fallbackClarifyPrompt  = "Write 2-3 short clarifying questions, each on its own line.\n\nUser question: %s\n\nClarifying questions:"
)

// QueryOrchestrator answers questions over the indexed documents. It
// classifies each question by keyword lists, retrieves grounding fragments
// for domain questions, and flags answers that warrant a clarification
// round.
type QueryOrchestrator struct {
	embedder driven.EmbeddingService
	store    driven.VectorStore
	llm      driven.LLMService
	prompts  driven.PromptStore
	chat     domain.ChatSettings
	answers  domain.LLMSettings
}

// NewQueryOrchestrator creates a new query orchestrator.
// The answers settings supply the generation temperature and token budget;
// provider and credential fields are ignored here.
func NewQueryOrchestrator(
	embedder driven.EmbeddingService,
	store driven.VectorStore,
	llm driven.LLMService,
	prompts driven.PromptStore,
	chat domain.ChatSettings,
	answers domain.LLMSettings,
) *QueryOrchestrator {
	return &QueryOrchestrator{
		embedder: embedder,
		store:    store,
		llm:      llm,
		prompts:  prompts,
		chat:     chat,
		answers:  answers,
	}
}

// Ask produces an answer for the question, using history for conversational
// context. Chit-chat and general-knowledge questions never reach the vector
// store.
func (o *QueryOrchestrator) Ask(ctx context.Context, question string, history []domain.ConversationTurn) (*domain.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}
	if o.llm == nil {
		return nil, fmt.Errorf("%w: configure a provider or start Ollama", domain.ErrLLMUnavailable)
	}

	topic := o.classify(question)
	logger.Debug("Question classified as %s: %s", topic, question)

	if !topic.RequiresRetrieval() {
		return o.answerDirect(ctx, question, history)
	}
	return o.answerGrounded(ctx, question, history)
}

// Clarifications generates short follow-up questions narrowing an ambiguous
// query. Lines that are too long to be a question are dropped.
func (o *QueryOrchestrator) Clarifications(ctx context.Context, question string) ([]string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}
	if o.llm == nil {
		return nil, fmt.Errorf("%w: configure a provider or start Ollama", domain.ErrLLMUnavailable)
	}

	prompt := fmt.Sprintf(o.loadPrompt(driven.PromptClarify, fallbackClarifyPrompt), question)
	response, err := o.llm.Generate(ctx, prompt, driven.GenerateOptions{
		Temperature: clarifyTemperature,
		MaxTokens:   clarifyMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate clarifications: %w", err)
	}

	return parseClarifications(response), nil
}

// classify buckets the question by the configurable keyword lists.
// Chit-chat wins over domain: a greeting that happens to mention a lift
// term is still a greeting.
func (o *QueryOrchestrator) classify(question string) domain.Topic {
	lowered := strings.ToLower(question)
	if matchesAnyKeyword(lowered, o.keywordList(driven.PromptChitChatKeywords)) {
		return domain.TopicChitChat
	}
	if matchesAnyKeyword(lowered, o.keywordList(driven.PromptDomainKeywords)) {
		return domain.TopicDomain
	}
	return domain.TopicNonDomain
}

// answerDirect answers straight from the model, without retrieval.
func (o *QueryOrchestrator) answerDirect(ctx context.Context, question string, history []domain.ConversationTurn) (*domain.Answer, error) {
	parts := make([]string, 0, 3)
	if rendered := o.renderHistory(history); rendered != "" {
		parts = append(parts, "Conversation history:\n"+rendered+"\n")
	}
	parts = append(parts, "Current user question:\n"+question+"\n", "Answer:")

	text, err := o.llm.Generate(ctx, strings.Join(parts, "\n"), driven.GenerateOptions{
		Temperature: o.answers.Temperature,
		MaxTokens:   o.answers.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	return &domain.Answer{Text: strings.TrimSpace(text)}, nil
}

// answerGrounded embeds the question, retrieves the nearest fragments and
// generates an answer constrained to them. An empty retrieval yields the
// fixed not-found answer with zero relevance instead of an error.
func (o *QueryOrchestrator) answerGrounded(ctx context.Context, question string, history []domain.ConversationTurn) (*domain.Answer, error) {
	vector, err := o.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	results, err := o.store.Search(ctx, vector, o.chat.TopK)
	if err != nil {
		return nil, fmt.Errorf("search fragments: %w", err)
	}
	if len(results) == 0 {
		logger.Debug("No fragments found for: %s", question)
		return &domain.Answer{
			Text:    o.loadPrompt(driven.PromptNotFound, fallbackNotFoundAnswer),
			Sources: []domain.Source{},
		}, nil
	}
	logger.Debug("Retrieved %d fragments, top score %.3f", len(results), results[0].Score)

	text, err := o.llm.Generate(ctx, o.buildGroundedPrompt(question, history, results), driven.GenerateOptions{
		System:      o.loadPrompt(driven.PromptAnswerSystem, ""),
		Temperature: o.answers.Temperature,
		MaxTokens:   o.answers.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	answer := &domain.Answer{
		Text:      strings.TrimSpace(text),
		Sources:   collectSources(results),
		Relevance: meanRelevance(results),
	}
	answer.NeedsClarification = o.needsClarification(answer.Text)
	return answer, nil
}

// buildGroundedPrompt lays out the prompt the answer instruction was tuned
// on: optional history, numbered context fragments separated by ---, then
// the question.
func (o *QueryOrchestrator) buildGroundedPrompt(question string, history []domain.ConversationTurn, results []domain.RetrievalResult) string {
	blocks := make([]string, 0, len(results))
	for i, result := range results {
		tag := fmt.Sprintf("[Source %d: %s, page %d]", i+1, result.Fragment.SourceFile, result.Fragment.Page)
		blocks = append(blocks, tag+"\n"+result.Fragment.Content)
	}

	parts := make([]string, 0, 4)
	if rendered := o.renderHistory(history); rendered != "" {
		parts = append(parts, "Conversation history:\n"+rendered+"\n")
	}
	parts = append(parts,
		"Documentation context:\n"+strings.Join(blocks, "\n\n---\n\n")+"\n",
		"Current user question:\n"+question+"\n",
		"Answer:")

	return strings.Join(parts, "\n")
}

// renderHistory formats recent turns as labelled lines, oldest first.
// Blank turns are skipped.
func (o *QueryOrchestrator) renderHistory(history []domain.ConversationTurn) string {
	turns := domain.TrimHistory(history, o.chat.MaxHistoryChars)
	if len(turns) > historyWindow {
		turns = turns[len(turns)-historyWindow:]
	}

	lines := make([]string, 0, len(turns))
	for _, turn := range turns {
		content := strings.TrimSpace(turn.Content)
		if content == "" {
			continue
		}
		lines = append(lines, turn.Role.Label()+": "+content)
	}

	return strings.Join(lines, "\n")
}

// needsClarification scans the answer for phrases that signal the model
// lacked sufficient context.
func (o *QueryOrchestrator) needsClarification(answer string) bool {
	lowered := strings.ToLower(answer)
	for _, phrase := range o.keywordList(driven.PromptInsufficientPhrases) {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}

// keywordList loads a one-entry-per-line list from the prompt store,
// lowercased and with blank lines dropped. An unavailable list matches
// nothing.
func (o *QueryOrchestrator) keywordList(name string) []string {
	content, err := o.prompts.Load(name)
	if err != nil {
		logger.Debug("Keyword list %s unavailable: %v", name, err)
		return nil
	}

	var keywords []string
	for _, line := range strings.Split(content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			keywords = append(keywords, strings.ToLower(line))
		}
	}
	return keywords
}

// loadPrompt returns the named template from the prompt store, or the
// fallback when the store cannot serve it.
func (o *QueryOrchestrator) loadPrompt(name, fallback string) string {
	content, err := o.prompts.Load(name)
	if err != nil || strings.TrimSpace(content) == "" {
		if err != nil {
			logger.Debug("Prompt %s unavailable, using built-in default: %v", name, err)
		}
		return fallback
	}
	return content
}

// parseClarifications extracts short questions from a model response,
// stripping list numbering.
func parseClarifications(response string) []string {
	questions := make([]string, 0, maxClarifyQuestions)
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimLeft(strings.TrimSpace(line), "0123456789.-) ")
		if line == "" || len(strings.Fields(line)) > maxClarifyWords {
			continue
		}
		questions = append(questions, line)
		if len(questions) == maxClarifyQuestions {
			break
		}
	}
	return questions
}

// collectSources maps retrieval results to source references, dropping
// duplicate file/page pairs while keeping rank order. Results arrive
// ranked, so the first hit for a location carries its best score.
func collectSources(results []domain.RetrievalResult) []domain.Source {
	type location struct {
		file string
		page int
	}
	seen := make(map[location]struct{}, len(results))
	sources := make([]domain.Source, 0, len(results))
	for _, result := range results {
		loc := location{result.Fragment.SourceFile, result.Fragment.Page}
		if _, ok := seen[loc]; ok {
			continue
		}
		seen[loc] = struct{}{}
		sources = append(sources, domain.Source{
			File:  result.Fragment.SourceFile,
			Page:  result.Fragment.Page,
			Score: result.Score,
		})
	}
	return sources
}

// meanRelevance is the average similarity score as a percentage, rounded
// to one decimal place.
func meanRelevance(results []domain.RetrievalResult) float64 {
	if len(results) == 0 {
		return 0
	}
	var sum float64
	for _, result := range results {
		sum += result.Score
	}
	return math.Round(sum/float64(len(results))*1000) / 10
}

// matchesAnyKeyword reports whether any keyword occurs in the lowercased
// text on a word boundary.
func matchesAnyKeyword(lowered string, keywords []string) bool {
	for _, keyword := range keywords {
		if containsPhrase(lowered, keyword) {
			return true
		}
	}
	return false
}

// containsPhrase reports whether phrase occurs in text delimited by
// non-letter, non-digit runes, so "hi" matches "hi there" but not "this".
// Boundaries are rune-aware to handle Cyrillic keywords.
func containsPhrase(text, phrase string) bool {
	for offset := 0; offset <= len(text)-len(phrase); {
		idx := strings.Index(text[offset:], phrase)
		if idx < 0 {
			return false
		}
		start := offset + idx
		if wordBoundary(text, start, start+len(phrase)) {
			return true
		}
		offset = start + 1
	}
	return false
}

func wordBoundary(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
