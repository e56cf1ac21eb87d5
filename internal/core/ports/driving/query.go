package driving

import (
	"context"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
)

// QueryOrchestrator answers user questions over the indexed documents.
// It classifies the query, retrieves grounding fragments when needed, and
// decides whether the answer warrants a clarification round.
type QueryOrchestrator interface {
	// Ask produces a grounded answer for the question, using history for
	// conversational context. Chit-chat and general-knowledge questions
	// are answered without retrieval.
	Ask(ctx context.Context, question string, history []domain.ConversationTurn) (*domain.Answer, error)

	// Clarifications generates 2-3 short follow-up questions narrowing an
	// ambiguous query.
	Clarifications(ctx context.Context, question string) ([]string, error)
}
