// Package store persists repository records. Each project is one row holding
// the JSON-serialized record, written wholesale on every mutation.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"gitlite.dev/gitlite/internal/repo"
)

const schema = `
CREATE TABLE IF NOT EXISTS repositories (
    project_id  TEXT PRIMARY KEY,
    state       TEXT NOT NULL,
    updated_at  TEXT NOT NULL DEFAULT (datetime('now'))
);
`

// SQLite implements repo.Store on a local sqlite database.
type SQLite struct {
	db *sql.DB
}

// DefaultPath returns the default database location under the user's home
// directory, creating the parent directory if needed.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	dir := filepath.Join(home, ".gitlite")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating .gitlite directory: %w", err)
	}
	return filepath.Join(dir, "gitlite.db"), nil
}

// Open opens (and if needed creates) the database at path.
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("running schema migration: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Load reads the record for a project. Returns (nil, nil) when absent.
func (s *SQLite) Load(ctx context.Context, projectID string) (*repo.State, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT state FROM repositories WHERE project_id = ?`, projectID,
	).Scan(&raw)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading repository state: %w", err)
	}

	var state repo.State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("parsing repository state: %w", err)
	}
	return &state, nil
}

// Save writes the full record for a project in a single upsert.
func (s *SQLite) Save(ctx context.Context, state *repo.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("serializing repository state: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO repositories (project_id, state) VALUES (?, ?)
		 ON CONFLICT(project_id) DO UPDATE SET state = excluded.state, updated_at = datetime('now')`,
		state.ProjectID, string(raw),
	)
	if err != nil {
		return fmt.Errorf("saving repository state: %w", err)
	}
	return nil
}
