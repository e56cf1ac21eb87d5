// Package file provides a JSON-file implementation of the session
// store. Each chat session is one file, overwritten after every
// mutation so the transcript survives crashes.
package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.SessionStore = (*Store)(nil)

// sessionFile is the on-disk shape of a session.
type sessionFile struct {
	ID            string            `json:"id"`
	StartedAt     time.Time         `json:"started_at"`
	UserID        string            `json:"user_id"`
	UserName      string            `json:"user_name,omitempty"`
	InitialData   map[string]string `json:"initial_data,omitempty"`
	InitialDataAt *time.Time        `json:"initial_data_at,omitempty"`
	Messages      []messageFile     `json:"messages"`
}

// messageFile is the on-disk shape of one transcript entry.
type messageFile struct {
	At      time.Time `json:"at"`
	Role    string    `json:"role"`
	Content string    `json:"content"`
}

// Store is a file-based implementation of driven.SessionStore.
type Store struct {
	mu  sync.Mutex
	dir string
}

// New creates a session store writing under dataDir/sessions. If
// dataDir is empty, defaults to ~/.lifta.
func New(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dataDir = filepath.Join(home, ".lifta")
	}

	dir := filepath.Join(dataDir, "sessions")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	return &Store{dir: dir}, nil
}

// Save writes the session's full state, overwriting its file.
func (s *Store) Save(session domain.Session) error {
	if session.ID == "" {
		return fmt.Errorf("%w: session has no ID", domain.ErrInvalidInput)
	}

	out := sessionFile{
		ID:          session.ID,
		StartedAt:   session.StartedAt,
		UserID:      session.UserID,
		UserName:    session.UserName,
		InitialData: session.InitialData,
		Messages:    make([]messageFile, len(session.Messages)),
	}
	if !session.InitialDataAt.IsZero() {
		at := session.InitialDataAt
		out.InitialDataAt = &at
	}
	for i, msg := range session.Messages {
		out.Messages[i] = messageFile{
			At:      msg.At,
			Role:    msg.Role.String(),
			Content: msg.Content,
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", session.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	path := filepath.Join(s.dir, session.ID+".json")
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write session %s: %w", session.ID, err)
	}
	return nil
}

// Dir returns the folder session files are written to.
func (s *Store) Dir() string {
	return s.dir
}
