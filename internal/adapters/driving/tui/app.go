package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/NikolaykoSergey/lifta-cli/internal/adapters/driving/tui/keymap"
	"github.com/NikolaykoSergey/lifta-cli/internal/adapters/driving/tui/messages"
	"github.com/NikolaykoSergey/lifta-cli/internal/adapters/driving/tui/styles"
	"github.com/NikolaykoSergey/lifta-cli/internal/adapters/driving/tui/views/chat"
)

// Config carries the chat session parameters.
type Config struct {
	// UserID identifies the user in session and feedback records.
	UserID string

	// UserName is the display name, when known.
	UserName string

	// InitialFields lists the equipment fields collected before the
	// first question. Empty skips the collection step.
	InitialFields []string

	// MaxHistoryChars caps the conversation history passed to the
	// orchestrator.
	MaxHistoryChars int
}

// App is the chat application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the active keybindings.
	keymap *keymap.KeyMap

	// chatView is the conversation view.
	chatView *chat.View

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new chat application with the given ports.
func NewApp(ports *Ports, cfg Config) (*App, error) {
	if ports == nil {
		return nil, fmt.Errorf("%w: ports is nil", ErrInvalidPorts)
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	chatView := chat.NewView(s, km,
		chat.Deps{
			Query:    ports.Query,
			Feedback: ports.Feedback,
			Index:    ports.Index,
			Sessions: ports.Sessions,
		},
		chat.Config{
			UserID:          cfg.UserID,
			UserName:        cfg.UserName,
			InitialFields:   cfg.InitialFields,
			MaxHistoryChars: cfg.MaxHistoryChars,
		})

	return &App{
		ports:    ports,
		ctx:      context.Background(),
		styles:   s,
		keymap:   km,
		chatView: chatView,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.chatView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("lifta - document chat"),
		a.chatView.Init(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.chatView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Quit works everywhere, whatever the view is doing.
		if key.Matches(msg, a.keymap.Quit) {
			return a, tea.Quit
		}
		a.chatView, cmd = a.chatView.Update(msg)
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	a.chatView, cmd = a.chatView.Update(msg)
	return a, cmd
}

// View implements tea.Model.
// It renders the chat view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	return a.chatView.View()
}

// Run starts the chat application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Chat returns the conversation view.
func (a *App) Chat() *chat.View {
	return a.chatView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.chatView.Err()
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.chatView.SetDimensions(width, height)
}
