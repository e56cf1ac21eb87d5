// Command lifta answers questions about a folder of technical manuals.
// It indexes PDF, DOCX, Markdown and plain-text documents into a local
// vector store and grounds every answer in the indexed fragments.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/NikolaykoSergey/lifta-cli/internal/adapters/driven/ai"
	fscache "github.com/NikolaykoSergey/lifta-cli/internal/adapters/driven/cache/fs"
	"github.com/NikolaykoSergey/lifta-cli/internal/adapters/driven/cleaner"
	configfile "github.com/NikolaykoSergey/lifta-cli/internal/adapters/driven/config/file"
	"github.com/NikolaykoSergey/lifta-cli/internal/adapters/driven/docsource/filesystem"
	goldenfile "github.com/NikolaykoSergey/lifta-cli/internal/adapters/driven/golden/file"
	ledgerfile "github.com/NikolaykoSergey/lifta-cli/internal/adapters/driven/ledger/file"
	sessionfile "github.com/NikolaykoSergey/lifta-cli/internal/adapters/driven/sessions/file"
	"github.com/NikolaykoSergey/lifta-cli/internal/adapters/driven/storage/sqlite"
	"github.com/NikolaykoSergey/lifta-cli/internal/adapters/driven/vector/qdrant"
	"github.com/NikolaykoSergey/lifta-cli/internal/adapters/driving/cli"
	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driven"
	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driving"
	"github.com/NikolaykoSergey/lifta-cli/internal/core/services"
	"github.com/NikolaykoSergey/lifta-cli/internal/extractors"
	"github.com/NikolaykoSergey/lifta-cli/internal/logger"
	"github.com/NikolaykoSergey/lifta-cli/internal/postprocessors/chunker"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	defer cli.Shutdown()

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolving home directory: %w", err)
	}
	liftaDir := filepath.Join(home, ".lifta")
	dataDir := filepath.Join(liftaDir, "data")

	configStore, err := configfile.NewConfigStore(liftaDir)
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}

	promptStore, err := configfile.NewPromptStore(filepath.Join(liftaDir, "prompts"))
	if err != nil {
		return fmt.Errorf("opening prompt store: %w", err)
	}

	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())

	cli.SetVersion(version)
	cli.SetConfigPath(filepath.Join(liftaDir, "config.toml"))
	cli.SetSettingsService(settingsService)

	// Feedback and session logging are best effort: a locked database
	// must not take down commands that never touch it.
	if feedbackStore, err := sqlite.NewStore(dataDir); err != nil {
		logger.Warn("feedback store unavailable: %v", err)
	} else if goldenStore, err := goldenfile.New(dataDir); err != nil {
		logger.Warn("golden dataset unavailable: %v", err)
	} else {
		cli.SetFeedbackService(services.NewFeedbackService(feedbackStore, goldenStore))
	}

	if sessionStore, err := sessionfile.New(dataDir); err != nil {
		logger.Warn("session log unavailable: %v", err)
	} else {
		cli.SetSessionStore(sessionStore)
	}

	cli.SetAppBuilder(func() (*cli.AppServices, error) {
		return buildAppServices(settingsService, promptStore, dataDir)
	})
	cli.SetDoctorBuilder(func() (driving.Doctor, error) {
		return buildDoctor(settingsService)
	})

	return cli.Execute()
}

// buildAppServices assembles the AI-backed service set: embedding (with
// its content-addressed cache), LLM, vector store, extraction cascade,
// and the indexing, query and watch services on top of them.
func buildAppServices(
	settingsService driving.SettingsService,
	promptStore driven.PromptStore,
	dataDir string,
) (*cli.AppServices, error) {
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	embedCache, err := fscache.New(filepath.Join(dataDir, "embeddings"))
	if err != nil {
		return nil, fmt.Errorf("opening embedding cache: %w", err)
	}

	aiServices, err := ai.InitServices(*settings, embedCache)
	if err != nil {
		return nil, err
	}

	store, err := qdrant.New(qdrant.Config{
		Host:       settings.VectorStore.Host,
		Port:       settings.VectorStore.Port,
		Collection: settings.VectorStore.Collection,
	})
	if err != nil {
		aiServices.Close()
		return nil, fmt.Errorf("connecting to vector store: %w", err)
	}

	ledger, err := ledgerfile.New(dataDir)
	if err != nil {
		aiServices.Close()
		return nil, fmt.Errorf("opening index ledger: %w", err)
	}

	var textCleaner driven.TextCleaner
	if settings.Extraction.EnableCleaning && aiServices.LLMService != nil {
		textCleaner = cleaner.New(aiServices.LLMService, promptStore)
	}
	registry := extractors.DefaultRegistry(settings.Extraction, textCleaner)

	// First run: the folder must exist before the source can serve it.
	if err := os.MkdirAll(settings.Index.DocsDir, 0750); err != nil {
		aiServices.Close()
		return nil, fmt.Errorf("creating documents folder: %w", err)
	}

	source, err := filesystem.New(settings.Index.DocsDir, registry.SupportedExtensions())
	if err != nil {
		aiServices.Close()
		return nil, err
	}

	splitter := chunker.New(
		chunker.WithChunkSize(settings.Chunking.Size),
		chunker.WithOverlap(settings.Chunking.Overlap),
	)

	indexManager := services.NewIndexManager(
		source, registry, splitter,
		aiServices.EmbeddingService, store, ledger, embedCache,
	)
	queryOrchestrator := services.NewQueryOrchestrator(
		aiServices.EmbeddingService, store, aiServices.LLMService,
		promptStore, settings.Chat, settings.LLM,
	)
	watchService := services.NewWatchService(source, indexManager)

	return &cli.AppServices{
		Index:    indexManager,
		Query:    queryOrchestrator,
		Watch:    watchService,
		Warnings: aiServices.Warnings,
		Close: func() error {
			aiServices.Close()
			source.Close()
			return store.Close()
		},
	}, nil
}

// buildDoctor assembles the connectivity checker. Unlike the app
// builder it skips startup validation and fallbacks, so the probes
// report on the configured backends themselves.
func buildDoctor(settingsService driving.SettingsService) (driving.Doctor, error) {
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	embedder, err := ai.CreateEmbeddingService(&settings.Embedding)
	if err != nil {
		logger.Debug("doctor: embedding service not created: %v", err)
	}
	llm, err := ai.CreateLLMService(&settings.LLM)
	if err != nil {
		logger.Debug("doctor: LLM service not created: %v", err)
	}

	var store driven.VectorStore
	qdrantStore, err := qdrant.New(qdrant.Config{
		Host:       settings.VectorStore.Host,
		Port:       settings.VectorStore.Port,
		Collection: settings.VectorStore.Collection,
	})
	if err != nil {
		logger.Debug("doctor: vector store not created: %v", err)
	} else {
		store = qdrantStore
	}

	return services.NewDoctorService(embedder, llm, store), nil
}
