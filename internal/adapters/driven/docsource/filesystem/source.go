// Package filesystem provides a document source over a local folder.
// Listing is flat: documents live directly in the folder, the layout
// technical archives are usually kept in.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driven"
	"github.com/NikolaykoSergey/lifta-cli/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.DocumentSource = (*Source)(nil)

// Source serves documents from a local folder.
type Source struct {
	root       string
	extensions map[string]struct{}

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	closed  bool
}

// New creates a document source over root, serving only files with the
// given extensions (lowercase, with leading dot).
func New(root string, extensions []string) (*Source, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("documents folder %s: %w", root, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("documents folder %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("documents folder %s: not a directory", abs)
	}

	exts := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		exts[strings.ToLower(ext)] = struct{}{}
	}

	return &Source{
		root:       abs,
		extensions: exts,
	}, nil
}

// List returns the absolute paths of supported files, sorted by name.
func (s *Source) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("read documents folder %s: %w", s.root, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !s.supported(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(s.root, entry.Name()))
	}

	sort.Strings(paths)
	return paths, nil
}

// Watch emits change events for supported files until the context is
// cancelled or the source is closed.
func (s *Source) Watch(ctx context.Context) (<-chan domain.DocumentChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, fmt.Errorf("document source is closed")
	}
	if s.watcher != nil {
		return nil, fmt.Errorf("documents folder %s is already being watched", s.root)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(s.root); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch documents folder %s: %w", s.root, err)
	}
	s.watcher = watcher

	changes := make(chan domain.DocumentChange)
	go s.forward(ctx, watcher, changes)
	return changes, nil
}

// forward pumps fsnotify events into the changes channel until the
// watcher or context stops.
func (s *Source) forward(ctx context.Context, watcher *fsnotify.Watcher, changes chan<- domain.DocumentChange) {
	defer close(changes)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			change := s.handleEvent(event)
			if change == nil {
				continue
			}
			select {
			case changes <- *change:
			case <-ctx.Done():
				return
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher error on %s: %v", s.root, err)
		}
	}
}

// handleEvent maps an fsnotify event to a document change, or nil when
// the event is not about a supported document.
func (s *Source) handleEvent(event fsnotify.Event) *domain.DocumentChange {
	if !s.supported(filepath.Base(event.Name)) {
		return nil
	}

	switch {
	case event.Op.Has(fsnotify.Create):
		if isDirectory(event.Name) {
			return nil
		}
		return &domain.DocumentChange{Type: domain.ChangeCreated, Path: event.Name}
	case event.Op.Has(fsnotify.Write):
		if isDirectory(event.Name) {
			return nil
		}
		return &domain.DocumentChange{Type: domain.ChangeUpdated, Path: event.Name}
	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		return &domain.DocumentChange{Type: domain.ChangeDeleted, Path: event.Name}
	default:
		// Chmod and friends carry no content change.
		return nil
	}
}

// Root returns the folder being served.
func (s *Source) Root() string {
	return s.root
}

// Close releases the watcher. Safe to call multiple times.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if s.watcher != nil {
		err := s.watcher.Close()
		s.watcher = nil
		return err
	}
	return nil
}

// supported reports whether the base name is a visible document with a
// supported extension.
func (s *Source) supported(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	_, ok := s.extensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// isDirectory reports whether the path exists and is a directory.
func isDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
