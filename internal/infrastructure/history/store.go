// Package history keeps a local sqlite ledger of saved stage artifacts so
// past runs can be listed without crawling the output tree.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/transcriptlab/insights/internal/domain/entities"
)

const schema = `
CREATE TABLE IF NOT EXISTS analysis_runs (
	id TEXT PRIMARY KEY,
	transcript TEXT NOT NULL,
	stage TEXT NOT NULL,
	path TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_analysis_runs_transcript ON analysis_runs(transcript);
`

// Store records analysis runs in a sqlite file.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the ledger at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts one run record.
func (s *Store) Record(ctx context.Context, run *entities.AnalysisRun) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO analysis_runs (id, transcript, stage, path, created_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID.String(), run.Transcript, run.Stage, run.Path, run.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]*entities.AnalysisRun, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, transcript, stage, path, created_at FROM analysis_runs ORDER BY created_at DESC, id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*entities.AnalysisRun
	for rows.Next() {
		var (
			id        string
			run       entities.AnalysisRun
			createdAt time.Time
		)
		if err := rows.Scan(&id, &run.Transcript, &run.Stage, &run.Path, &createdAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parse run id %q: %w", id, err)
		}
		run.ID = parsed
		run.CreatedAt = createdAt
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}
