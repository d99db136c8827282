// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library persists saved papers and their summaries in a local
// SQLite database with a full-text index over titles, abstracts, and
// summaries.
package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/paperfinder/pkg/types"
)

const dbFile = "library.db"

// Store manages the library SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Entry is a saved paper with its stored summary, if any.
type Entry struct {
	types.Paper `yaml:",inline"`
	Summary     string    `json:"summary,omitempty" yaml:"summary,omitempty"`
	SummaryType string    `json:"summary_type,omitempty" yaml:"summary_type,omitempty"`
	SavedAt     time.Time `json:"saved_at" yaml:"saved_at"`
}

// NewStore opens or creates the library database at dir/library.db and
// creates the schema if it does not exist.
func NewStore(cfg types.LibraryConfig) (*Store, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("library directory not configured")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating library directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
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
		`CREATE TABLE IF NOT EXISTS papers (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			arxiv_id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			authors TEXT,
			abstract TEXT,
			pdf_url TEXT,
			published TEXT,
			categories TEXT,
			summary TEXT,
			summary_type TEXT,
			saved_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_saved_at ON papers(saved_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='papers_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE papers_fts USING fts5(title, abstract, summary, content=papers, content_rowid=rowid)`,
			`CREATE TRIGGER papers_ai AFTER INSERT ON papers BEGIN
				INSERT INTO papers_fts(rowid, title, abstract, summary) VALUES (new.rowid, new.title, new.abstract, new.summary);
			END`,
			`CREATE TRIGGER papers_ad AFTER DELETE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, title, abstract, summary) VALUES('delete', old.rowid, old.title, old.abstract, old.summary);
			END`,
			`CREATE TRIGGER papers_au AFTER UPDATE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, title, abstract, summary) VALUES('delete', old.rowid, old.title, old.abstract, old.summary);
				INSERT INTO papers_fts(rowid, title, abstract, summary) VALUES (new.rowid, new.title, new.abstract, new.summary);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Save upserts papers and their summaries, keyed by arXiv ID. summaries
// and summaryType may be empty when only metadata is stored. Saving a
// paper again refreshes its metadata; an empty summary does not
// overwrite a stored one.
func (s *Store) Save(ctx context.Context, papers []types.Paper, summaries map[string]string, summaryType string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO papers (arxiv_id, title, authors, abstract, pdf_url, published, categories, summary, summary_type, saved_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(arxiv_id) DO UPDATE SET
			title=excluded.title, authors=excluded.authors, abstract=excluded.abstract,
			pdf_url=excluded.pdf_url, published=excluded.published, categories=excluded.categories,
			summary=CASE WHEN excluded.summary != '' THEN excluded.summary ELSE papers.summary END,
			summary_type=CASE WHEN excluded.summary != '' THEN excluded.summary_type ELSE papers.summary_type END,
			saved_at=excluded.saved_at`)
	if err != nil {
		return fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	savedAt := time.Now().UTC().Format(time.RFC3339)

	for _, p := range papers {
		authorsJSON, _ := json.Marshal(p.Authors)
		categoriesJSON, _ := json.Marshal(p.Categories)
		publishedStr := ""
		if !p.Published.IsZero() {
			publishedStr = p.Published.UTC().Format(time.RFC3339)
		}
		summary := summaries[p.ArxivID]
		st := summaryType
		if summary == "" {
			st = ""
		}

		_, err := stmt.ExecContext(ctx,
			p.ArxivID, p.Title, string(authorsJSON), p.Abstract, p.PDFURL,
			publishedStr, string(categoriesJSON), summary, st, savedAt,
		)
		if err != nil {
			return fmt.Errorf("upserting paper %s: %w", p.ArxivID, err)
		}
	}

	return tx.Commit()
}

// Remove deletes a paper by arXiv ID. Removing an unknown ID is an
// error.
func (s *Store) Remove(ctx context.Context, arxivID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM papers WHERE arxiv_id = ?`, arxivID)
	if err != nil {
		return fmt.Errorf("deleting paper: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("paper %s not in library", arxivID)
	}
	return nil
}

// Search runs a full-text query over titles, abstracts, and summaries,
// ranked by relevance. maxResults of zero uses the store default.
func (s *Store) Search(ctx context.Context, query string, maxResults int) ([]Entry, error) {
	if query == "" {
		return nil, fmt.Errorf("empty search query")
	}
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT p.arxiv_id, p.title, p.authors, p.abstract, p.pdf_url,
			p.published, p.categories, p.summary, p.summary_type, p.saved_at
		FROM papers_fts
		JOIN papers p ON p.rowid = papers_fts.rowid
		WHERE papers_fts MATCH ?
		ORDER BY papers_fts.rank
		LIMIT ?`, query, maxResults)
	if err != nil {
		return nil, fmt.Errorf("querying library: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// List returns saved papers, most recently saved first. maxResults of
// zero uses the store default.
func (s *Store) List(ctx context.Context, maxResults int) ([]Entry, error) {
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT arxiv_id, title, authors, abstract, pdf_url,
			published, categories, summary, summary_type, saved_at
		FROM papers
		ORDER BY saved_at DESC, arxiv_id
		LIMIT ?`, maxResults)
	if err != nil {
		return nil, fmt.Errorf("listing library: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var (
			e              Entry
			authorsJSON    sql.NullString
			categoriesJSON sql.NullString
			publishedStr   sql.NullString
			summary        sql.NullString
			summaryType    sql.NullString
			savedAtStr     string
		)

		if err := rows.Scan(
			&e.ArxivID, &e.Title, &authorsJSON, &e.Abstract, &e.PDFURL,
			&publishedStr, &categoriesJSON, &summary, &summaryType, &savedAtStr,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		if authorsJSON.Valid {
			json.Unmarshal([]byte(authorsJSON.String), &e.Authors)
		}
		if categoriesJSON.Valid {
			json.Unmarshal([]byte(categoriesJSON.String), &e.Categories)
		}
		if publishedStr.Valid && publishedStr.String != "" {
			if t, err := time.Parse(time.RFC3339, publishedStr.String); err == nil {
				e.Published = t
			}
		}
		if summary.Valid {
			e.Summary = summary.String
		}
		if summaryType.Valid {
			e.SummaryType = summaryType.String
		}
		if t, err := time.Parse(time.RFC3339, savedAtStr); err == nil {
			e.SavedAt = t
		}

		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of saved papers.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM papers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting papers: %w", err)
	}
	return n, nil
}

// EscapeQuery quotes each term of a user query so FTS5 operators in the
// input cannot break the MATCH expression.
func EscapeQuery(query string) string {
	terms := strings.Fields(query)
	for i, term := range terms {
		terms[i] = `"` + strings.ReplaceAll(term, `"`, `""`) + `"`
	}
	return strings.Join(terms, " ")
}
