package driven

// PromptStore provides access to LLM prompt templates and keyword lists.
// Implementations may load them from files, embed them in the binary, or
// fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the template or list for the given name.
	// Returns the content and any error encountered.
	// If the name is not found, implementations should return a sensible
	// default or an error, depending on whether the entry is required.
	Load(name string) (string, error)

	// Reload clears any cached entries, forcing fresh loads on next access.
	// This is useful when files may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and providers.
const (
	// PromptAnswerSystem is the system instruction for grounded answers.
	// It forbids outside knowledge and cross-document conflation while
	// demanding partial answers when relevant material exists.
	// No format placeholders.
	PromptAnswerSystem = "answer_system"

	// PromptCleanerSystem instructs the extraction text cleaner.
	// No format placeholders.
	PromptCleanerSystem = "cleaner_system"

	// PromptClarify asks the model for 2-3 short clarification questions.
	// The template expects a %s placeholder for the user's question.
	PromptClarify = "clarify"

	// PromptNotFound is the fixed answer returned when retrieval finds
	// nothing. No format placeholders.
	PromptNotFound = "not_found"

	// PromptChitChatKeywords lists small-talk trigger words, one per line.
	PromptChitChatKeywords = "chitchat_keywords"

	// PromptDomainKeywords lists document-domain trigger words, one per line.
	PromptDomainKeywords = "domain_keywords"

	// PromptInsufficientPhrases lists answer phrases that signal the model
	// lacked sufficient context, one per line.
	PromptInsufficientPhrases = "insufficient_phrases"
)

// PromptStoreAware is an optional interface for services that can use custom prompts.
// Services implementing this interface can have their prompt templates customised
// by injecting a PromptStore after construction.
type PromptStoreAware interface {
	// SetPromptStore sets the prompt store for loading customisable prompts.
	// If not set, the service should use hardcoded default prompts.
	SetPromptStore(store PromptStore)
}
