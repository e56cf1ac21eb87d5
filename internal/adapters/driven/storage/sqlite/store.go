package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/NikolaykoSergey/lifta-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driven"
)

// Store keeps feedback entries in a single SQLite file.
type Store struct {
	db   *sql.DB
	path string
}

var _ driven.FeedbackStore = (*Store)(nil)

// NewStore opens the feedback database under dataDir, creating the
// directory and the schema as needed. An empty dataDir means
// ~/.lifta/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".lifta", "data")
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	// WAL keeps readers unblocked during writes; the busy timeout covers
	// the chat TUI and the MCP server touching the file at the same time.
	dbPath := filepath.Join(dataDir, "feedback.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path reports where the database file lives.
func (s *Store) Path() string {
	return s.path
}

// Record stores a verdict and assigns the entry's ID.
func (s *Store) Record(ctx context.Context, entry *domain.FeedbackEntry) error {
	if !entry.Verdict.IsValid() {
		return fmt.Errorf("%w: verdict %q", domain.ErrInvalidInput, entry.Verdict)
	}
	if entry.At.IsZero() {
		entry.At = time.Now().UTC()
	}

	contextJSON, err := json.Marshal(entry.Context)
	if err != nil {
		return fmt.Errorf("marshalling context: %w", err)
	}
	sourcesJSON, err := json.Marshal(sourcesToRows(entry.Sources))
	if err != nil {
		return fmt.Errorf("marshalling sources: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO feedback (at, user_id, question, answer, context, sources, relevance, verdict)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.At, entry.UserID, entry.Question, entry.Answer,
		string(contextJSON), string(sourcesJSON), entry.Relevance, entry.Verdict.String())
	if err != nil {
		return fmt.Errorf("recording feedback: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading feedback id: %w", err)
	}
	entry.ID = id
	return nil
}

// List returns the most recent entries, newest first. A non-positive
// limit returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]domain.FeedbackEntry, error) {
	query := `
		SELECT id, at, user_id, question, answer, context, sources, relevance, verdict
		FROM feedback
		ORDER BY at DESC, id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing feedback: %w", err)
	}
	defer rows.Close()

	var entries []domain.FeedbackEntry
	for rows.Next() {
		var entry domain.FeedbackEntry
		var contextJSON, sourcesJSON, verdict string
		if err := rows.Scan(&entry.ID, &entry.At, &entry.UserID, &entry.Question,
			&entry.Answer, &contextJSON, &sourcesJSON, &entry.Relevance, &verdict); err != nil {
			return nil, fmt.Errorf("scanning feedback row: %w", err)
		}

		if err := json.Unmarshal([]byte(contextJSON), &entry.Context); err != nil {
			return nil, fmt.Errorf("unmarshalling context: %w", err)
		}
		var srcRows []sourceRow
		if err := json.Unmarshal([]byte(sourcesJSON), &srcRows); err != nil {
			return nil, fmt.Errorf("unmarshalling sources: %w", err)
		}
		entry.Sources = rowsToSources(srcRows)
		entry.Verdict = domain.FeedbackVerdict(verdict)

		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Stats summarises stored verdicts.
func (s *Store) Stats(ctx context.Context) (*domain.FeedbackStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT verdict, COUNT(*) FROM feedback GROUP BY verdict
	`)
	if err != nil {
		return nil, fmt.Errorf("reading feedback stats: %w", err)
	}
	defer rows.Close()

	stats := &domain.FeedbackStats{
		ByVerdict: make(map[domain.FeedbackVerdict]int),
	}
	for rows.Next() {
		var verdict string
		var count int
		if err := rows.Scan(&verdict, &count); err != nil {
			return nil, fmt.Errorf("scanning stats row: %w", err)
		}
		stats.ByVerdict[domain.FeedbackVerdict(verdict)] = count
		stats.Total += count
	}
	return stats, rows.Err()
}

// migrate applies the embedded up scripts newer than the version
// recorded in schema_migrations. Each script inserts its own version
// row, so a reopened database skips everything already applied.
func (s *Store) migrate(fsys embed.FS) error {
	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var current int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&current); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	pending, err := pendingMigrations(fsys, current)
	if err != nil {
		return err
	}
	for _, name := range pending {
		script, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(script)); err != nil {
			return fmt.Errorf("applying migration %s: %w", name, err)
		}
	}
	return nil
}

// pendingMigrations lists the up scripts with a version above current,
// in apply order. Scripts are named NNN_description.up.sql; files that
// do not match are ignored.
func pendingMigrations(fsys embed.FS, current int) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading migrations directory: %w", err)
	}

	byVersion := make(map[int]string)
	var versions []int
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".up.sql") {
			continue
		}
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version > current {
			byVersion[version] = name
			versions = append(versions, version)
		}
	}
	sort.Ints(versions)

	names := make([]string, 0, len(versions))
	for _, v := range versions {
		names = append(names, byVersion[v])
	}
	return names, nil
}

// sourceRow is the JSON shape sources are stored in.
type sourceRow struct {
	File  string  `json:"file"`
	Page  int     `json:"page"`
	Score float64 `json:"score,omitempty"`
}

// sourcesToRows converts domain sources to their storage shape.
func sourcesToRows(sources []domain.Source) []sourceRow {
	rows := make([]sourceRow, len(sources))
	for i, src := range sources {
		rows[i] = sourceRow{File: src.File, Page: src.Page, Score: src.Score}
	}
	return rows
}

// rowsToSources converts stored rows back to domain sources.
func rowsToSources(rows []sourceRow) []domain.Source {
	if len(rows) == 0 {
		return nil
	}
	sources := make([]domain.Source, len(rows))
	for i, row := range rows {
		sources[i] = domain.Source{File: row.File, Page: row.Page, Score: row.Score}
	}
	return sources
}
