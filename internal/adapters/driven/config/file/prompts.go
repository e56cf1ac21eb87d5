package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driven"
)

var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore serves prompt templates and keyword lists from user-editable
// text files, one file per prompt name. On first use the directory is seeded
// with the embedded defaults so there is always a file to edit; a deleted
// file falls back to the embedded copy.
type PromptStore struct {
	mu       sync.RWMutex
	dir      string
	cache    map[string]string
	seedOnce sync.Once
	seedErr  error
}

// defaultPrompts holds the embedded prompt templates and keyword lists.
// The document corpus is bilingual, so the keyword and phrase lists carry
// both English and Russian entries.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptAnswerSystem: `You are an assistant for technical documentation on lifts and lift equipment.

HARD RULES:
- Answer ONLY from the document context supplied with the question.
- NEVER use general knowledge, the internet, or your own guesses.
- If the context has no precise information, say so directly:
  "The provided documentation fragments contain no precise information on this question."
- Do NOT substitute one device, board, or component for another.
- Answer briefly and to the point.
- If the context contains a table or an explicit procedure, reproduce it in words or as a structured list.
- When the context contains anything relevant, extract what it does say instead of refusing to answer.

CRITICAL:
- Do NOT invent and do NOT guess.
- An honest "the found fragments do not cover <term>" is always better than a made-up answer.`,

	driven.PromptCleanerSystem: `You are an assistant that cleans up extracted technical documentation text.

TASK:
- Remove repeated lines, scanning artifacts, and truncated fragments.
- Keep technical designations, standards references (GOST, EN 81), and schematic numbers intact.
- Do not shorten the meaning and do not rephrase heavily.
- Just make the text tidy for indexing.`,

	driven.PromptClarify: `You are a technical support assistant. The user asked an ambiguous question.
Write 2-3 short clarifying questions, each on its own line.
Questions must be VERY short (at most 5-7 words), with no explanations.

User question: %s

Clarifying questions:`,

	driven.PromptNotFound: `No matching documents were found in the indexed documentation.`,

	driven.PromptChitChatKeywords: `hello
hi there
thanks
thank you
good morning
good evening
how are you
привет
здравствуйте
добрый день
спасибо
пока
до свидания`,

	driven.PromptDomainKeywords: `lift
elevator
cabin
shaft
landing door
car door
controller
drive
frequency inverter
brake
rope
buffer
safety gear
limit switch
fault
error code
лифт
кабина
шахта
дверь
привод
лебёдка
тормоз
контроллер
частотник
ловители
концевой
ошибка
неисправность`,

	driven.PromptInsufficientPhrases: `no precise information
not found
not covered
do not cover
please specify
unclear
нет точной информации
не найдено
не представлена
не содержат
уточните`,
}

// NewPromptStore creates a prompt store rooted at promptDir. An empty
// promptDir defaults to ~/.lifta/prompts. The constructor performs no I/O;
// seeding happens on the first Load.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		promptDir = filepath.Join(home, ".lifta", "prompts")
	}

	return &PromptStore{
		dir:   promptDir,
		cache: make(map[string]string),
	}, nil
}

// Load returns the prompt text for name, preferring the user's file over the
// embedded default. Results are cached until Reload.
func (s *PromptStore) Load(name string) (string, error) {
	s.seedOnce.Do(s.seed)

	s.mu.RLock()
	text, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return text, nil
	}

	text, err := s.read(name)
	if err != nil {
		if def, ok := defaultPrompts[name]; ok {
			return def, nil
		}
		if s.seedErr != nil {
			return "", fmt.Errorf("prompt store init: %w", s.seedErr)
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	s.mu.Lock()
	if prior, ok := s.cache[name]; ok {
		// Lost the race; keep the first loader's copy.
		text = prior
	} else {
		s.cache[name] = text
	}
	s.mu.Unlock()

	return text, nil
}

// Reload drops the cache so the next Load re-reads the files on disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the directory holding the prompt files.
func (s *PromptStore) Dir() string {
	return s.dir
}

// seed creates the prompt directory and writes any default file that does
// not exist yet. Runs once per process.
func (s *PromptStore) seed() {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		s.seedErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	for name, content := range defaultPrompts {
		if err := writeIfAbsent(filepath.Join(s.dir, name+".txt"), content); err != nil {
			s.seedErr = fmt.Errorf("seed prompt %q: %w", name, err)
			return
		}
	}

	if err := writeIfAbsent(filepath.Join(s.dir, "README.md"), promptsReadme); err != nil {
		s.seedErr = fmt.Errorf("seed prompts README: %w", err)
	}
}

func (s *PromptStore) read(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name+".txt"))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// writeIfAbsent never touches an existing file, so user edits survive
// seeding.
func writeIfAbsent(path, content string) error {
	if _, err := os.Stat(path); err == nil || !os.IsNotExist(err) {
		return nil
	}
	return os.WriteFile(path, []byte(content), 0600)
}

const promptsReadme = `# Lifta Prompts

This directory contains customisable prompts and keyword lists used by
Lifta's LLM features.

## Files

- ` + "`answer_system.txt`" + ` - System instruction for grounded answers
- ` + "`cleaner_system.txt`" + ` - System instruction for extraction cleanup
- ` + "`clarify.txt`" + ` - Template for clarification questions
- ` + "`not_found.txt`" + ` - Fixed answer when retrieval finds nothing
- ` + "`chitchat_keywords.txt`" + ` - Small-talk trigger words, one per line
- ` + "`domain_keywords.txt`" + ` - Documentation trigger words, one per line
- ` + "`insufficient_phrases.txt`" + ` - Answer phrases that trigger clarification

## Customisation

Edit any file to customise behaviour. Changes take effect on the next
command or after restarting the chat.

## Format Placeholders

Some prompts use Go fmt placeholders:
- ` + "`%s`" + ` - String (e.g., the user's question)

Ensure customised prompts maintain placeholders in the correct positions.
`
