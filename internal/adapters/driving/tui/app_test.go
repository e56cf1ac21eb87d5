package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikolaykoSergey/lifta-cli/internal/adapters/driving/tui/messages"
	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
)

func newTestPorts() *Ports {
	return &Ports{
		Query:    &MockQueryOrchestrator{},
		Feedback: &MockFeedbackService{},
		Index:    &MockIndexManager{},
		Sessions: &MockSessionStore{},
	}
}

// typeString feeds the characters of s into the app one key at a time.
func typeString(app *App, s string) {
	for _, r := range s {
		app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNewApp_Success(t *testing.T) {
	ports := newTestPorts()

	app, err := NewApp(ports, Config{})

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.False(t, app.Chat().CollectingIntro())
}

func TestNewApp_WithInitialFields(t *testing.T) {
	ports := newTestPorts()

	app, err := NewApp(ports, Config{
		InitialFields: []string{"Contract number", "Phone", "Lift model"},
	})

	require.NoError(t, err)
	assert.True(t, app.Chat().CollectingIntro())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	t.Run("nil ports", func(t *testing.T) {
		app, err := NewApp(nil, Config{})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidPorts)
		assert.Nil(t, app)
	})

	t.Run("missing query orchestrator", func(t *testing.T) {
		ports := &Ports{
			Feedback: &MockFeedbackService{},
			Index:    &MockIndexManager{},
		}

		app, err := NewApp(ports, Config{})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingQueryOrchestrator)
		assert.Nil(t, app)
	})
}

func TestApp_WithContext(t *testing.T) {
	app, _ := NewApp(newTestPorts(), Config{})

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")
	result := app.WithContext(ctx)

	assert.Equal(t, app, result)
}

func TestApp_Init(t *testing.T) {
	app, _ := NewApp(newTestPorts(), Config{})

	cmd := app.Init()

	// Init returns a batch command
	assert.NotNil(t, cmd)
}

func TestApp_Update_WindowSize(t *testing.T) {
	app, _ := NewApp(newTestPorts(), Config{})

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Equal(t, app, model)
	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
}

func TestApp_Update_CtrlC_Quits(t *testing.T) {
	app, _ := NewApp(newTestPorts(), Config{})

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_Update_QuitMessage(t *testing.T) {
	app, _ := NewApp(newTestPorts(), Config{})

	_, cmd := app.Update(messages.Quit{})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_Update_TypingReachesInput(t *testing.T) {
	app, _ := NewApp(newTestPorts(), Config{})
	app.SetDimensions(80, 24)

	typeString(app, "test")

	assert.Equal(t, "test", app.Chat().InputValue())
}

func TestApp_QuestionRoundTrip(t *testing.T) {
	answer := &domain.Answer{
		Text:      "Check the controller cabinet.",
		Sources:   []domain.Source{{File: "manual.pdf", Page: 12}},
		Relevance: 83.4,
	}
	ports := newTestPorts()
	ports.Query = &MockQueryOrchestrator{
		AskFunc: func(ctx context.Context, question string, history []domain.ConversationTurn) (*domain.Answer, error) {
			assert.Equal(t, "where is the reset", question)
			return answer, nil
		},
	}
	app, _ := NewApp(ports, Config{})
	app.SetDimensions(80, 24)

	typeString(app, "where is the reset")
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.True(t, app.Chat().Waiting())

	// Run the command and feed the result back, as the Bubbletea runtime would.
	msg := cmd()
	app.Update(msg)

	assert.False(t, app.Chat().Waiting())
	assert.Contains(t, app.Chat().Transcript(), "Check the controller cabinet.")
	assert.Len(t, app.Chat().History(), 2)
}

func TestApp_QuestionError_Surfaces(t *testing.T) {
	ports := newTestPorts()
	ports.Query = &MockQueryOrchestrator{
		AskFunc: func(ctx context.Context, question string, history []domain.ConversationTurn) (*domain.Answer, error) {
			return nil, errors.New("llm unavailable")
		},
	}
	app, _ := NewApp(ports, Config{})
	app.SetDimensions(80, 24)

	typeString(app, "anything")
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Error(t, app.Err())
	assert.Contains(t, app.Chat().Transcript(), "llm unavailable")
}

func TestApp_View_BeforeReady(t *testing.T) {
	app, _ := NewApp(newTestPorts(), Config{})

	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_View_RendersHeader(t *testing.T) {
	app, _ := NewApp(newTestPorts(), Config{})
	app.SetDimensions(80, 24)

	view := app.View()

	assert.Contains(t, view, "lifta")
}
