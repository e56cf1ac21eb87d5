// Package fs provides a filesystem-backed embedding cache. Each entry is
// one JSON file named by the MD5 hex digest of the exact chunk text, so
// cached vectors survive restarts and re-indexing the same content never
// re-embeds it.
package fs

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var _ driven.EmbeddingCache = (*Cache)(nil)

// Cache stores one embedding per file under a directory.
type Cache struct {
	dir string
}

// entry is the on-disk JSON format.
type entry struct {
	Model     string    `json:"model,omitempty"`
	Embedding []float32 `json:"embedding"`
}

// New creates the cache directory if needed and returns the cache.
func New(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

// Get returns the cached vector for the text. Missing, unreadable, or
// corrupt entries are all misses.
func (c *Cache) Get(text string) ([]float32, bool) {
	data, err := os.ReadFile(c.path(text))
	if err != nil {
		return nil, false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, false
	}
	if len(e.Embedding) == 0 {
		return nil, false
	}
	return e.Embedding, true
}

// Put stores the vector for the text, overwriting any previous entry.
// The same text always maps to the same file, so repeated puts are
// idempotent.
func (c *Cache) Put(text string, embedding []float32) error {
	data, err := json.Marshal(entry{Embedding: embedding})
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}
	if err := os.WriteFile(c.path(text), data, 0o644); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

// Count returns the number of cached entries.
func (c *Cache) Count() (int, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return 0, fmt.Errorf("read cache dir: %w", err)
	}

	count := 0
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			count++
		}
	}
	return count, nil
}

// path maps text to its entry file.
func (c *Cache) path(text string) string {
	sum := md5.Sum([]byte(text))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:])+".json")
}
