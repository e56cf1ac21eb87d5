package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTopic_RequiresRetrieval tests which topics trigger a vector search
func TestTopic_RequiresRetrieval(t *testing.T) {
	tests := []struct {
		name     string
		topic    Topic
		expected bool
	}{
		{
			name:     "chit-chat skips retrieval",
			topic:    TopicChitChat,
			expected: false,
		},
		{
			name:     "non-domain skips retrieval",
			topic:    TopicNonDomain,
			expected: false,
		},
		{
			name:     "domain requires retrieval",
			topic:    TopicDomain,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.topic.RequiresRetrieval())
		})
	}
}

// TestTopic_IsValid tests topic validation
func TestTopic_IsValid(t *testing.T) {
	assert.True(t, TopicChitChat.IsValid())
	assert.True(t, TopicNonDomain.IsValid())
	assert.True(t, TopicDomain.IsValid())
	assert.False(t, Topic("").IsValid())
	assert.False(t, Topic("smalltalk").IsValid())
}

// TestRole_Label tests prompt-facing speaker labels
func TestRole_Label(t *testing.T) {
	assert.Equal(t, "User", RoleUser.Label())
	assert.Equal(t, "Assistant", RoleAssistant.Label())
	assert.Equal(t, unknownDescription, Role("system").Label())
}

// TestTrimHistory_Empty tests trimming an empty history
func TestTrimHistory_Empty(t *testing.T) {
	assert.Nil(t, TrimHistory(nil, 100))
	assert.Nil(t, TrimHistory([]ConversationTurn{}, 100))
}

// TestTrimHistory_UnderBudget tests that a short history survives intact
func TestTrimHistory_UnderBudget(t *testing.T) {
	turns := []ConversationTurn{
		{Role: RoleUser, Content: "how do I reset the controller"},
		{Role: RoleAssistant, Content: "hold the service button for five seconds"},
	}

	trimmed := TrimHistory(turns, 1000)

	require.Len(t, trimmed, 2)
	assert.Equal(t, turns, trimmed)
}

// TestTrimHistory_DropsOldest tests that trimming evicts from the front
func TestTrimHistory_DropsOldest(t *testing.T) {
	turns := []ConversationTurn{
		{Role: RoleUser, Content: strings.Repeat("a", 50)},
		{Role: RoleAssistant, Content: strings.Repeat("b", 50)},
		{Role: RoleUser, Content: strings.Repeat("c", 50)},
	}

	trimmed := TrimHistory(turns, 100)

	require.Len(t, trimmed, 2)
	assert.Equal(t, strings.Repeat("b", 50), trimmed[0].Content)
	assert.Equal(t, strings.Repeat("c", 50), trimmed[1].Content)
}

// TestTrimHistory_AlwaysKeepsNewest tests that the most recent turn survives
// even when it alone exceeds the budget
func TestTrimHistory_AlwaysKeepsNewest(t *testing.T) {
	turns := []ConversationTurn{
		{Role: RoleUser, Content: "short"},
		{Role: RoleAssistant, Content: strings.Repeat("x", 500)},
	}

	trimmed := TrimHistory(turns, 100)

	require.Len(t, trimmed, 1)
	assert.Equal(t, RoleAssistant, trimmed[0].Role)
	assert.Equal(t, strings.Repeat("x", 500), trimmed[0].Content)
}

// TestTrimHistory_ExactBudget tests the boundary where history just fits
func TestTrimHistory_ExactBudget(t *testing.T) {
	turns := []ConversationTurn{
		{Role: RoleUser, Content: strings.Repeat("a", 40)},
		{Role: RoleAssistant, Content: strings.Repeat("b", 60)},
	}

	trimmed := TrimHistory(turns, 100)

	assert.Len(t, trimmed, 2)
}

// TestTrimHistory_CountsRunes tests that the budget counts characters,
// not bytes
func TestTrimHistory_CountsRunes(t *testing.T) {
	// Ten Cyrillic runes occupy twenty bytes.
	turns := []ConversationTurn{
		{Role: RoleUser, Content: strings.Repeat("л", 10)},
		{Role: RoleAssistant, Content: strings.Repeat("д", 10)},
	}

	trimmed := TrimHistory(turns, 20)

	assert.Len(t, trimmed, 2)
}

// TestAnswer_ZeroValue tests the not-found shape of an answer
func TestAnswer_ZeroValue(t *testing.T) {
	var a Answer

	assert.Empty(t, a.Sources)
	assert.Zero(t, a.Relevance)
	assert.False(t, a.NeedsClarification)
}
