// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog keeps a searchable SQLite index of emitted epistle files.
// It reads what the emitter wrote (manifest plus files) and never changes
// the files themselves.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/epistolarum/internal/emit"
	"github.com/pdiddy/epistolarum/pkg/types"
)

const dbFile = "register.db"

// Store manages the catalog SQLite database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
}

// NewStore opens or creates the catalog database at cfg.Dir/register.db
// and creates the schema if it does not exist.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = types.DefaultMaxResults
	}

	s := &Store{db: db, dir: cfg.Dir, maxResults: maxResults}
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
		`CREATE TABLE IF NOT EXISTS epistles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			book INTEGER NOT NULL,
			epistle INTEGER NOT NULL,
			file TEXT NOT NULL,
			heading TEXT,
			body TEXT NOT NULL,
			digest TEXT NOT NULL,
			UNIQUE(book, epistle)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_epistles_book ON epistles(book)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='epistles_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}
	if ftsExists > 0 {
		return nil
	}

	// External-content FTS4; the default go-sqlite3 build ships FTS3/4.
	ftsStatements := []string{
		`CREATE VIRTUAL TABLE epistles_fts USING fts4(content="epistles", body)`,
		`CREATE TRIGGER epistles_bu BEFORE UPDATE ON epistles BEGIN
			DELETE FROM epistles_fts WHERE docid = old.id;
		END`,
		`CREATE TRIGGER epistles_bd BEFORE DELETE ON epistles BEGIN
			DELETE FROM epistles_fts WHERE docid = old.id;
		END`,
		`CREATE TRIGGER epistles_au AFTER UPDATE ON epistles BEGIN
			INSERT INTO epistles_fts(docid, body) VALUES (new.id, new.body);
		END`,
		`CREATE TRIGGER epistles_ai AFTER INSERT ON epistles BEGIN
			INSERT INTO epistles_fts(docid, body) VALUES (new.id, new.body);
		END`,
	}
	for _, stmt := range ftsStatements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("creating FTS infrastructure: %w", err)
		}
	}
	return nil
}

// IndexSummary holds counts from one indexing run.
type IndexSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of manifest entries processed.
func (s IndexSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Index reads the manifest in outputDir and upserts every listed epistle.
// Entries whose digest matches the stored one are skipped; changed ones are
// updated. A file that cannot be read or whose contents no longer match
// its manifest digest is counted as failed and left out.
func (s *Store) Index(ctx context.Context, outputDir string, w io.Writer) (IndexSummary, error) {
	m, err := emit.ReadManifest(outputDir)
	if err != nil {
		return IndexSummary{}, err
	}

	var summary IndexSummary
	for _, entry := range m.Epistles {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		var stored string
		err := s.db.QueryRowContext(ctx,
			`SELECT digest FROM epistles WHERE book = ? AND epistle = ?`, entry.Book, entry.Epistle,
		).Scan(&stored)
		switch {
		case err == nil && stored == entry.Digest:
			fmt.Fprintf(w, "skipped  %s\n", entry.File)
			summary.Skipped++
			continue
		case err != nil && !errors.Is(err, sql.ErrNoRows):
			fmt.Fprintf(w, "failed   %s: %v\n", entry.File, err)
			summary.Failed++
			continue
		}
		isUpdate := err == nil

		data, err := os.ReadFile(filepath.Join(outputDir, entry.File))
		if err != nil {
			fmt.Fprintf(w, "failed   %s: %v\n", entry.File, err)
			summary.Failed++
			continue
		}
		if got := emit.Digest(data); got != entry.Digest {
			fmt.Fprintf(w, "failed   %s: digest mismatch (file changed since emit)\n", entry.File)
			summary.Failed++
			continue
		}

		if err := s.upsert(ctx, entry, string(data)); err != nil {
			fmt.Fprintf(w, "failed   %s: %v\n", entry.File, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated  %s\n", entry.File)
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexed  %s\n", entry.File)
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)
	return summary, nil
}

func (s *Store) upsert(ctx context.Context, entry types.ManifestEntry, body string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO epistles (book, epistle, file, heading, body, digest)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(book, epistle) DO UPDATE SET
			file=excluded.file, heading=excluded.heading,
			body=excluded.body, digest=excluded.digest`,
		entry.Book, entry.Epistle, entry.File, entry.Heading, body, entry.Digest,
	)
	if err != nil {
		return fmt.Errorf("upserting epistle %d/%d: %w", entry.Book, entry.Epistle, err)
	}
	return nil
}
