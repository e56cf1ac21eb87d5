package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/user"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/NikolaykoSergey/lifta-cli/internal/adapters/driving/tui"
	"github.com/NikolaykoSergey/lifta-cli/internal/logger"
)

var chatNoWatch bool

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat over your documentation",
	Long: `Opens the interactive terminal chat. Answers cite the source file and
page, conversation history carries across questions, and answers can be
rated to improve the assistant over time.

Controls:
  Enter   - Send
  Ctrl+R  - Rate the last answer
  ↑/↓     - Scroll the transcript
  Esc     - Quit`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().BoolVar(&chatNoWatch, "no-watch", false,
		"do not watch the documents folder while chatting")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	// A panic inside bubbletea leaves the terminal in the alternate
	// screen; print the stack so the failure is diagnosable.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in chat: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	services, err := buildApp(cmd)
	if err != nil {
		return err
	}

	cfg := tui.Config{
		UserID:   currentUserID(),
		UserName: currentUserName(),
	}
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			cfg.InitialFields = settings.Chat.InitialDataFields
			cfg.MaxHistoryChars = settings.Chat.MaxHistoryChars
		}
	}

	ports := tui.NewPorts(services.Query, feedbackService, services.Index)
	ports.Sessions = sessionStore

	// The chat session is long-running, so keep the index fresh while it
	// is open.
	if !chatNoWatch && services.Watch != nil {
		watchCtx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		go func() {
			if err := services.Watch.Watch(watchCtx); err != nil && !errors.Is(err, context.Canceled) {
				fmt.Fprintf(os.Stderr, "watcher stopped: %v\n", err)
			}
		}()
	}

	app, err := tui.NewApp(ports, cfg)
	if err != nil {
		return fmt.Errorf("failed to create chat: %w", err)
	}
	app.WithContext(cmd.Context())

	// The watcher keeps logging while bubbletea holds the alternate
	// screen; stray stderr lines would tear the chat view.
	logger.SetOutput(io.Discard)
	defer logger.SetOutput(os.Stderr)

	if err := app.Run(); err != nil {
		return fmt.Errorf("chat error: %w", err)
	}
	return nil
}

// currentUserID resolves a stable identifier for session and feedback
// records.
func currentUserID() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "local"
}

// currentUserName resolves a display name, when the OS knows one.
func currentUserName() string {
	if u, err := user.Current(); err == nil && u.Name != "" {
		return u.Name
	}
	return ""
}
