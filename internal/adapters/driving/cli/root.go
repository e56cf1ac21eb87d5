// Package cli wires the cobra command tree to the core services.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driven"
	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driving"
	"github.com/NikolaykoSergey/lifta-cli/internal/logger"
)

// version is stamped by main at startup.
var version = "dev"

// verbose toggles debug logging for every command.
var verbose bool

// Eagerly wired collaborators. Commands check for nil so a partially
// configured binary still runs the commands that do not need them.
var (
	settingsService driving.SettingsService
	feedbackService driving.FeedbackService
	sessionStore    driven.SessionStore
	configPath      string
)

// AppServices is the AI-backed service set. It is built lazily because
// construction probes the embedding and vector backends; commands like
// version and settings must not pay for that.
type AppServices struct {
	Index    driving.IndexManager
	Query    driving.QueryOrchestrator
	Watch    driving.WatchService
	Warnings []string
	Close    func() error
}

var (
	appBuilder    func() (*AppServices, error)
	app           *AppServices
	doctorBuilder func() (driving.Doctor, error)
)

var rootCmd = &cobra.Command{
	Use:   "lifta",
	Short: "Question answering over your technical documentation",
	Long: `Lifta indexes a folder of technical manuals (PDF, DOCX, Markdown,
plain text) into a local vector store and answers questions about them,
citing the source file and page for every answer.

All processing runs locally by default: Ollama for embeddings and
answers, Qdrant for vector search. Cloud providers (OpenAI, Anthropic)
can be configured with 'lifta settings'.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetVersion stamps the build version shown by the version command.
func SetVersion(v string) {
	version = v
}

// SetSettingsService installs the settings service.
func SetSettingsService(s driving.SettingsService) {
	settingsService = s
}

// SetFeedbackService installs the feedback service.
func SetFeedbackService(s driving.FeedbackService) {
	feedbackService = s
}

// SetSessionStore installs the chat session log store.
func SetSessionStore(s driven.SessionStore) {
	sessionStore = s
}

// SetConfigPath records the config file location for 'settings path'.
func SetConfigPath(p string) {
	configPath = p
}

// SetAppBuilder installs the lazy constructor for the AI-backed services.
func SetAppBuilder(fn func() (*AppServices, error)) {
	appBuilder = fn
}

// SetDoctorBuilder installs the lazy constructor for the doctor. The
// doctor builds its collaborators without startup validation so it can
// report on the configured backends rather than any fallback.
func SetDoctorBuilder(fn func() (driving.Doctor, error)) {
	doctorBuilder = fn
}

// buildApp returns the AI-backed services, constructing them on first
// use and printing any startup warnings (embedding fallback, LLM down).
func buildApp(cmd *cobra.Command) (*AppServices, error) {
	if app != nil {
		return app, nil
	}
	if appBuilder == nil {
		return nil, errors.New("application services not configured")
	}

	built, err := appBuilder()
	if err != nil {
		return nil, err
	}
	for _, warning := range built.Warnings {
		cmd.PrintErrf("Warning: %s\n", warning)
	}
	app = built
	return app, nil
}

// Shutdown releases lazily built services. Main calls this on exit.
func Shutdown() {
	if app != nil && app.Close != nil {
		if err := app.Close(); err != nil {
			logger.Warn("shutdown: %v", err)
		}
	}
	app = nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
