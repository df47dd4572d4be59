// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a SQLite ledger of split runs: what was split, into
// which files, whether the source was archived, and how the run ended.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdfsp/pkg/types"
)

// defaultLimit caps List when the caller passes a non-positive limit.
const defaultLimit = 20

// Store manages the history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path, creating parent directories
// and the schema as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			source TEXT NOT NULL,
			pages TEXT NOT NULL,
			total_pages INTEGER,
			outputs TEXT NOT NULL,
			archive TEXT,
			status TEXT NOT NULL,
			exit_code INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_source ON runs(source)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts rec and returns its row id. StartedAt defaults to now.
func (s *Store) Record(ctx context.Context, rec types.RunRecord) (int64, error) {
	if rec.StartedAt.IsZero() {
		rec.StartedAt = time.Now()
	}
	pagesJSON, err := json.Marshal(nonNilInts(rec.Pages))
	if err != nil {
		return 0, fmt.Errorf("encoding pages: %w", err)
	}
	outputsJSON, err := json.Marshal(nonNilStrings(rec.Outputs))
	if err != nil {
		return 0, fmt.Errorf("encoding outputs: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (started_at, source, pages, total_pages, outputs, archive, status, exit_code)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.StartedAt.UTC().Format(time.RFC3339Nano), rec.Source, string(pagesJSON),
		rec.TotalPages, string(outputsJSON), string(rec.Archive), rec.Status, rec.ExitCode,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	return res.LastInsertId()
}

// List returns up to limit runs, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]types.RunRecord, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, source, pages, total_pages, outputs, archive, status, exit_code
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var records []types.RunRecord
	for rows.Next() {
		var (
			rec                   types.RunRecord
			startedAt, pagesJSON  string
			outputsJSON, archived string
		)
		if err := rows.Scan(&rec.ID, &startedAt, &rec.Source, &pagesJSON, &rec.TotalPages,
			&outputsJSON, &archived, &rec.Status, &rec.ExitCode); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		rec.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, fmt.Errorf("run %d: parsing started_at: %w", rec.ID, err)
		}
		if err := json.Unmarshal([]byte(pagesJSON), &rec.Pages); err != nil {
			return nil, fmt.Errorf("run %d: decoding pages: %w", rec.ID, err)
		}
		if err := json.Unmarshal([]byte(outputsJSON), &rec.Outputs); err != nil {
			return nil, fmt.Errorf("run %d: decoding outputs: %w", rec.ID, err)
		}
		rec.Archive = types.ArchiveOutcome(archived)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ExportYAML writes up to limit runs, newest first, to w as YAML.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer, limit int) error {
	records, err := s.List(ctx, limit)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// ExportJSON writes up to limit runs, newest first, to w as indented JSON.
func (s *Store) ExportJSON(ctx context.Context, w io.Writer, limit int) error {
	records, err := s.List(ctx, limit)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func nonNilInts(v []int) []int {
	if v == nil {
		return []int{}
	}
	return v
}

func nonNilStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
