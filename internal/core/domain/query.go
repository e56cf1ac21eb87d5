package domain

// Topic classifies a user query to decide whether retrieval is needed.
type Topic string

// Available topics.
const (
	// TopicChitChat is small talk answered directly, without retrieval.
	TopicChitChat Topic = "chit_chat"

	// TopicNonDomain is a general-knowledge question outside the document
	// corpus, answered without retrieval.
	TopicNonDomain Topic = "non_domain"

	// TopicDomain is a question about the indexed documents.
	TopicDomain Topic = "domain"
)

// IsValid returns true if the topic is recognised.
func (t Topic) IsValid() bool {
	switch t {
	case TopicChitChat, TopicNonDomain, TopicDomain:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t Topic) String() string {
	return string(t)
}

// RequiresRetrieval returns true if answering this topic needs a vector search.
func (t Topic) RequiresRetrieval() bool {
	return t == TopicDomain
}

// Role identifies the speaker of a conversation turn.
type Role string

// Available roles.
const (
	// RoleUser is the human asking questions.
	RoleUser Role = "user"

	// RoleAssistant is the system's answer.
	RoleAssistant Role = "assistant"
)

// IsValid returns true if the role is recognised.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAssistant:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (r Role) String() string {
	return string(r)
}

// Label returns the prompt-facing speaker label.
func (r Role) Label() string {
	switch r {
	case RoleUser:
		return "User"
	case RoleAssistant:
		return "Assistant"
	default:
		return unknownDescription
	}
}

// ConversationTurn is one exchange in the chat history.
type ConversationTurn struct {
	// Role is who spoke.
	Role Role

	// Content is what was said.
	Content string
}

// TrimHistory returns the newest turns whose combined content length fits
// within maxChars. The most recent turn is always kept, even when it alone
// exceeds the budget. Order is preserved.
func TrimHistory(turns []ConversationTurn, maxChars int) []ConversationTurn {
	if len(turns) == 0 {
		return nil
	}

	var trimmed []ConversationTurn
	total := 0
	for i := len(turns) - 1; i >= 0; i-- {
		length := len([]rune(turns[i].Content))
		if total+length > maxChars && len(trimmed) > 0 {
			break
		}
		trimmed = append([]ConversationTurn{turns[i]}, trimmed...)
		total += length
	}
	return trimmed
}

// RetrievalResult is a single similarity-search hit.
type RetrievalResult struct {
	// Fragment is the matched fragment.
	Fragment Fragment

	// Score is the cosine similarity score in [0, 1].
	Score float64
}

// Source points at the document location a fragment came from.
type Source struct {
	// File is the base name of the source file.
	File string

	// Page is the 1-based page number.
	Page int

	// Score is the similarity of the strongest fragment retrieved from
	// this location, in [0, 1].
	Score float64
}

// Answer is the result of a grounded query.
type Answer struct {
	// Text is the generated answer.
	Text string

	// Sources lists the document locations the answer is grounded on.
	// Empty when retrieval found nothing or was skipped.
	Sources []Source

	// Relevance is the mean similarity score of the retrieved fragments,
	// as a percentage rounded to one decimal. Zero when retrieval found
	// nothing or was skipped.
	Relevance float64

	// NeedsClarification indicates the answer matched an
	// insufficient-information phrase and a clarification round may help.
	NeedsClarification bool
}
