package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driven"
	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driving"
	"github.com/NikolaykoSergey/lifta-cli/internal/logger"
	"github.com/NikolaykoSergey/lifta-cli/internal/postprocessors/chunker"
)

// Ensure IndexManager implements the interface.
var _ driving.IndexManager = (*IndexManager)(nil)

// IndexManager coordinates document ingestion: extraction, chunking,
// embedding and vector storage, with a ledger tracking which files have
// been ingested.
type IndexManager struct {
	source    driven.DocumentSource
	registry  driven.ExtractorRegistry
	splitter  *chunker.Splitter
	embedder  driven.EmbeddingService
	store     driven.VectorStore
	ledger    driven.IndexLedger
	cache     driven.EmbeddingCache

	// Run state. One run at a time; Stop is a request the loop honours
	// at the next file boundary.
	mu       sync.RWMutex
	running  bool
	stopping bool
	status   domain.IndexStatus
}

// NewIndexManager creates a new index manager.
// The cache is optional and only feeds the stats report; pass nil when the
// embedding service is not cache-wrapped.
func NewIndexManager(
	source driven.DocumentSource,
	registry driven.ExtractorRegistry,
	splitter *chunker.Splitter,
	embedder driven.EmbeddingService,
	store driven.VectorStore,
	ledger driven.IndexLedger,
	cache driven.EmbeddingCache,
) *IndexManager {
	return &IndexManager{
		source:   source,
		registry: registry,
		splitter: splitter,
		embedder: embedder,
		store:    store,
		ledger:   ledger,
		cache:    cache,
	}
}

// Run executes an indexing run to completion and returns its report.
// A stop request or context cancellation ends the run at the next file
// boundary; the report then covers the files that did complete.
func (m *IndexManager) Run(ctx context.Context, mode domain.IndexMode) (*domain.IndexReport, error) {
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: unknown index mode %q", domain.ErrInvalidInput, mode)
	}
	if err := m.begin(); err != nil {
		return nil, err
	}
	defer m.finish()

	logger.Section("Index Run")
	started := time.Now()
	report := &domain.IndexReport{Mode: mode}

	if mode == domain.IndexFull {
		logger.Info("Full reindex: clearing collection and ledger")
		if err := m.store.Clear(ctx); err != nil {
			return nil, fmt.Errorf("clear collection: %w", err)
		}
		if err := m.ledger.Clear(); err != nil {
			return nil, fmt.Errorf("clear ledger: %w", err)
		}
	}

	// The collection must exist with the embedder's dimensionality before
	// the first upsert. On an existing collection this doubles as the
	// dimension check.
	if err := m.store.EnsureCollection(ctx, m.embedder.Dimensions()); err != nil {
		return nil, err
	}

	files, err := m.source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	logger.Info("Indexing %d files from %s (%s)", len(files), m.source.Root(), mode)

	for _, path := range files {
		if ctx.Err() != nil || m.stopRequested() {
			report.Stopped = true
			break
		}

		name := filepath.Base(path)
		if mode == domain.IndexIncremental && m.ledger.Contains(name) {
			report.FilesSkipped++
			continue
		}

		m.setCurrentFile(name)
		logger.Debug("Processing: %s", name)

		count, err := m.indexFile(ctx, path)
		if err != nil {
			logger.Warn("Failed to index %s: %v", name, err)
			report.Failures = append(report.Failures, domain.FileFailure{
				File:   name,
				Reason: err.Error(),
			})
			continue
		}

		// Persisted per file, so a crash mid-run loses at most the file
		// in flight.
		if err := m.ledger.Add(name); err != nil {
			logger.Warn("Failed to record %s in the ledger: %v", name, err)
		}

		report.FilesProcessed++
		report.Fragments += count
		m.recordProgress(count)
	}

	report.Duration = time.Since(started)
	logger.Info("Indexing complete: %d files, %d skipped, %d failed, %d fragments in %s",
		report.FilesProcessed, report.FilesSkipped, len(report.Failures),
		report.Fragments, report.Duration.Round(time.Millisecond))
	return report, nil
}

// Stop requests a cooperative stop of the active run. No-op when nothing
// is running.
func (m *IndexManager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		m.stopping = true
	}
}

// IsIndexing reports whether a run is active.
func (m *IndexManager) IsIndexing() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.running
}

// Status returns live progress of the active run.
func (m *IndexManager) Status() domain.IndexStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Stats reports the persisted state of the index.
func (m *IndexManager) Stats(ctx context.Context) (*domain.IndexStats, error) {
	vectorStats, err := m.store.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("collection stats: %w", err)
	}

	stats := &domain.IndexStats{
		IndexedFiles:   m.ledger.Files(),
		Fragments:      vectorStats.Points,
		Dimension:      vectorStats.Dimensions,
		EmbeddingModel: m.embedder.ModelName(),
	}

	if m.cache != nil {
		count, err := m.cache.Count()
		if err != nil {
			logger.Debug("Cache count: %v", err)
		} else {
			stats.CacheEntries = count
		}
	}

	return stats, nil
}

// indexFile runs one file through the extract, chunk, embed, store
// pipeline and returns how many fragments landed.
func (m *IndexManager) indexFile(ctx context.Context, path string) (int, error) {
	pages, err := m.registry.ExtractFile(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("extract: %w", err)
	}

	name := filepath.Base(path)
	var fragments []domain.Fragment
	var texts []string
	for _, page := range pages {
		for _, chunk := range m.splitter.Split(page.Content) {
			fragments = append(fragments, domain.Fragment{
				ID:         uuid.NewString(),
				Content:    chunk,
				SourceFile: name,
				Page:       page.Number,
				Kind:       page.Kind,
			})
			texts = append(texts, chunk)
		}
	}

	// A scanned file whose every page failed the quality gate produces no
	// fragments. That still counts as processed.
	if len(fragments) == 0 {
		return 0, nil
	}

	embeddings, err := m.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed: %w", err)
	}
	if len(embeddings) != len(fragments) {
		return 0, fmt.Errorf("embed: got %d vectors for %d fragments", len(embeddings), len(fragments))
	}
	for i := range fragments {
		fragments[i].Embedding = embeddings[i]
	}

	if err := m.store.Add(ctx, fragments); err != nil {
		return 0, fmt.Errorf("store fragments: %w", err)
	}
	return len(fragments), nil
}

// begin claims the single run slot.
func (m *IndexManager) begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return domain.ErrIndexingInProgress
	}
	m.running = true
	m.stopping = false
	m.status = domain.IndexStatus{Running: true}
	return nil
}

// finish releases the run slot and resets status.
func (m *IndexManager) finish() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.running = false
	m.stopping = false
	m.status = domain.IndexStatus{}
}

func (m *IndexManager) stopRequested() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stopping
}

func (m *IndexManager) setCurrentFile(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status.CurrentFile = name
}

func (m *IndexManager) recordProgress(fragments int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status.FilesProcessed++
	m.status.Fragments += fragments
}
