package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
)

func TestAskCmd_Use(t *testing.T) {
	assert.Equal(t, "ask [question]", askCmd.Use)
}

func TestAskCmd_Short(t *testing.T) {
	assert.Equal(t, "Ask a question about the indexed documentation", askCmd.Short)
}

func TestAskCmd_PrintsAnswerWithSources(t *testing.T) {
	withMockApp(t, &AppServices{
		Query: &mockQueryOrchestrator{
			answer: &domain.Answer{
				Text: "Hold RESET for five seconds.",
				Sources: []domain.Source{
					{File: "manual.pdf", Page: 12},
					{File: "quickstart.md"},
				},
				Relevance: 71.4,
			},
		},
	})

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "how do I reset the controller"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Hold RESET for five seconds.")
	assert.Contains(t, buf.String(), "manual.pdf, p.12")
	assert.Contains(t, buf.String(), "quickstart.md")
	assert.Contains(t, buf.String(), "Relevance: 71.4%")
}

func TestAskCmd_PrintsClarifications(t *testing.T) {
	withMockApp(t, &AppServices{
		Query: &mockQueryOrchestrator{
			answer: &domain.Answer{
				Text:               "I do not have enough information to answer that.",
				NeedsClarification: true,
			},
			clarifications: []string{
				"Which controller model do you have?",
				"Is the fault light on?",
			},
		},
	})

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "door fault"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "To narrow this down")
	assert.Contains(t, buf.String(), "1. Which controller model do you have?")
	assert.Contains(t, buf.String(), "2. Is the fault light on?")
}

func TestAskCmd_JSONOutput(t *testing.T) {
	withMockApp(t, &AppServices{
		Query: &mockQueryOrchestrator{
			answer: &domain.Answer{
				Text:      "Hold RESET for five seconds.",
				Sources:   []domain.Source{{File: "manual.pdf", Page: 12}},
				Relevance: 71.4,
			},
		},
	})

	originalJSON := askJSON
	defer func() { askJSON = originalJSON }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "--json", "how do I reset the controller"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"answer": "Hold RESET for five seconds."`)
	assert.Contains(t, buf.String(), `"file": "manual.pdf"`)
	assert.Contains(t, buf.String(), `"page": 12`)
	assert.Contains(t, buf.String(), `"relevance": 71.4`)
}

func TestAskCmd_QueryError(t *testing.T) {
	withMockApp(t, &AppServices{
		Query: &mockQueryOrchestrator{
			err: errors.New("llm unavailable"),
		},
	})

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask", "how do I reset the controller"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ask failed")
}

func TestAskCmd_ServicesNotConfigured(t *testing.T) {
	withMockApp(t, nil)
	appBuilder = nil

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask", "anything"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestFormatSource(t *testing.T) {
	t.Run("with page", func(t *testing.T) {
		assert.Equal(t, "manual.pdf, p.12", formatSource(domain.Source{File: "manual.pdf", Page: 12}))
	})

	t.Run("without page", func(t *testing.T) {
		assert.Equal(t, "notes.md", formatSource(domain.Source{File: "notes.md"}))
	})
}
