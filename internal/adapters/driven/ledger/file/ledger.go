// Package file provides a JSON-file implementation of the index ledger.
// The ledger records which files have been ingested so later runs can
// index incrementally.
package file

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driven"
	"github.com/NikolaykoSergey/lifta-cli/internal/logger"
)

// Ensure Ledger implements the interface.
var _ driven.IndexLedger = (*Ledger)(nil)

// ledgerFile is the on-disk shape of the ledger.
type ledgerFile struct {
	IndexedFiles []string `json:"indexed_files"`
}

// Ledger is a file-based implementation of driven.IndexLedger.
type Ledger struct {
	mu       sync.RWMutex
	filePath string
	files    map[string]struct{}
}

// New creates a ledger persisted under dataDir. If dataDir is empty,
// defaults to ~/.lifta.
func New(dataDir string) (*Ledger, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dataDir = filepath.Join(home, ".lifta")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, err
	}

	l := &Ledger{
		filePath: filepath.Join(dataDir, "indexed_files.json"),
		files:    make(map[string]struct{}),
	}

	if err := l.load(); err != nil {
		return nil, err
	}
	return l, nil
}

// Contains reports whether the file name is already recorded.
func (l *Ledger) Contains(file string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.files[file]
	return ok
}

// Add records a file and persists immediately.
func (l *Ledger) Add(file string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.files[file]; ok {
		return nil
	}
	l.files[file] = struct{}{}
	return l.save()
}

// Files returns every recorded file name, sorted.
func (l *Ledger) Files() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	files := make([]string, 0, len(l.files))
	for f := range l.files {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// Clear empties the ledger and persists the empty state.
func (l *Ledger) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.files = make(map[string]struct{})
	return l.save()
}

// Path returns the ledger file path.
func (l *Ledger) Path() string {
	return l.filePath
}

// load reads the ledger file. A missing file starts empty; a corrupt
// file is logged and starts empty, since a full index rebuilds it.
func (l *Ledger) load() error {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var parsed ledgerFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		logger.Warn("ledger %s is corrupt, starting empty: %v", l.filePath, err)
		return nil
	}

	for _, f := range parsed.IndexedFiles {
		l.files[f] = struct{}{}
	}
	return nil
}

// save writes the ledger to disk (caller must hold lock).
func (l *Ledger) save() error {
	files := make([]string, 0, len(l.files))
	for f := range l.files {
		files = append(files, f)
	}
	sort.Strings(files)

	data, err := json.MarshalIndent(ledgerFile{IndexedFiles: files}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(l.filePath, data, 0600)
}
