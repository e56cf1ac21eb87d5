package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driven"
	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driving"
	"github.com/NikolaykoSergey/lifta-cli/internal/logger"
)

// watchDebounce is how long the watcher waits after the last change
// before starting an index run. Editors and downloads touch a file
// several times in quick succession.
const watchDebounce = 2 * time.Second

// Ensure WatchService implements the interface.
var _ driving.WatchService = (*WatchService)(nil)

// WatchService keeps the index in sync with the documents folder.
// Change events debounce into a single incremental index run.
type WatchService struct {
	source   driven.DocumentSource
	indexer  driving.IndexManager
	debounce time.Duration
}

// NewWatchService creates a watch service over the documents folder.
func NewWatchService(source driven.DocumentSource, indexer driving.IndexManager) *WatchService {
	return &WatchService{
		source:   source,
		indexer:  indexer,
		debounce: watchDebounce,
	}
}

// Watch blocks until the context is cancelled, triggering incremental
// runs as documents change. Returns domain.ErrWatcherClosed when the
// change stream ends while the context is still live.
func (s *WatchService) Watch(ctx context.Context) error {
	changes, err := s.source.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch documents folder: %w", err)
	}

	logger.Info("Watching %s for document changes", s.source.Root())

	var timer *time.Timer
	var due <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case change, ok := <-changes:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return domain.ErrWatcherClosed
			}
			if !s.noteChange(change) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(s.debounce)
				due = timer.C
			} else {
				if !timer.Stop() {
					<-timer.C
				}
				timer.Reset(s.debounce)
			}

		case <-due:
			timer = nil
			due = nil
			s.runIncremental(ctx)
		}
	}
}

// noteChange logs the event and reports whether it should schedule an
// index run. Deletions do not: the incremental run only adds content,
// stale fragments stay searchable until the next full reindex.
func (s *WatchService) noteChange(change domain.DocumentChange) bool {
	name := filepath.Base(change.Path)
	if change.Type == domain.ChangeDeleted {
		logger.Info("Document removed: %s (reindex with --full to drop its fragments)", name)
		return false
	}
	logger.Debug("document %s: %s", change.Type, name)
	return true
}

// runIncremental executes one incremental index run, skipping quietly
// when a run is already active.
func (s *WatchService) runIncremental(ctx context.Context) {
	if s.indexer.IsIndexing() {
		logger.Debug("indexing already in progress, skipping watcher run")
		return
	}

	report, err := s.indexer.Run(ctx, domain.IndexIncremental)
	if err != nil {
		if errors.Is(err, domain.ErrIndexingInProgress) {
			logger.Debug("indexing already in progress, skipping watcher run")
			return
		}
		logger.Warn("watcher index run failed: %v", err)
		return
	}

	logger.Info("Watcher indexed %d file(s), %d fragment(s), %d failure(s)",
		report.FilesProcessed, report.Fragments, len(report.Failures))
}
