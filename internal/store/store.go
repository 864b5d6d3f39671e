// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists extracted assignments in a local SQLite database
// with full-text search over titles and descriptions.
// Implements: prd003-store (R1-R4); docs/ARCHITECTURE § Assignment Store.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/syllabus-engine/internal/dates"
	"github.com/pdiddy/syllabus-engine/pkg/types"
)

const (
	extractedDir = "extracted"
	indexDir     = "index"
	dbFile       = "planner.db"
)

// Store manages the assignment SQLite database.
type Store struct {
	db         *sql.DB
	plannerDir string
	maxResults int
}

// New opens or creates the database at plannerDir/index/planner.db,
// creating the schema if needed.
func New(cfg types.StoreConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.PlannerDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 50
	}

	s := &Store{
		db:         db,
		plannerDir: cfg.PlannerDir,
		maxResults: maxResults,
	}

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
		// due_unix mirrors due_date as a sortable integer; the UNIQUE
		// constraint enforces the (title, due date, course) identity at
		// the persistence layer as well.
		`CREATE TABLE IF NOT EXISTS assignments (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			due_date TEXT NOT NULL,
			due_unix INTEGER NOT NULL,
			course TEXT NOT NULL,
			description TEXT,
			type TEXT,
			source_file TEXT,
			UNIQUE(title, due_date, course)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_assignments_due ON assignments(due_unix)`,
		`CREATE INDEX IF NOT EXISTS idx_assignments_course ON assignments(course)`,
		`CREATE TABLE IF NOT EXISTS indexing_status (
			source_file TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='assignments_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE assignments_fts USING fts5(title, description, content=assignments, content_rowid=rowid)`,
			`CREATE TRIGGER assignments_ai AFTER INSERT ON assignments BEGIN
				INSERT INTO assignments_fts(rowid, title, description) VALUES (new.rowid, new.title, new.description);
			END`,
			`CREATE TRIGGER assignments_ad AFTER DELETE ON assignments BEGIN
				INSERT INTO assignments_fts(assignments_fts, rowid, title, description) VALUES('delete', old.rowid, old.title, old.description);
			END`,
			`CREATE TRIGGER assignments_au AFTER UPDATE ON assignments BEGIN
				INSERT INTO assignments_fts(assignments_fts, rowid, title, description) VALUES('delete', old.rowid, old.title, old.description);
				INSERT INTO assignments_fts(rowid, title, description) VALUES (new.rowid, new.title, new.description);
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

// IngestSummary holds counts from a store indexing run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of result files processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Ingest reads extraction result files from plannerDir/extracted/ and
// populates the database. Unchanged files are skipped by modification
// time, so re-running after a new extraction only touches what changed.
func (s *Store) Ingest(ctx context.Context, w io.Writer) (IngestSummary, error) {
	extractDir := filepath.Join(s.plannerDir, extractedDir)

	entries, err := os.ReadDir(extractDir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading extraction directory %s: %w", extractDir, err)
	}

	var summary IngestSummary

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "-assignments.yaml") {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		name := entry.Name()
		filePath := filepath.Join(extractDir, name)

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM indexing_status WHERE source_file = ?`, name,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", name)
			summary.Skipped++
			continue
		}
		isUpdate := err == nil

		data, err := os.ReadFile(filePath)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		var result types.ExtractionResult
		if err := yaml.Unmarshal(data, &result); err != nil {
			fmt.Fprintf(w, "failed  %s: parse error: %v\n", name, err)
			summary.Failed++
			continue
		}

		if err := s.ingestResult(ctx, name, &result, modTime, isUpdate); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d assignments)\n", name, len(result.Assignments))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexed %s (%d assignments)\n", name, len(result.Assignments))
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	return summary, nil
}

func (s *Store) ingestResult(ctx context.Context, fileName string, result *types.ExtractionResult, modTime string, isUpdate bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Remove a re-extracted file's old rows before re-inserting.
	if isUpdate && result.SourceFile != "" {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM assignments WHERE source_file = ?`, result.SourceFile); err != nil {
			return fmt.Errorf("deleting old assignments: %w", err)
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO assignments (title, due_date, due_unix, course, description, type, source_file)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range result.Assignments {
		due, ok := dates.Parse(a.DueDate, 0, 0)
		if !ok {
			// A malformed row is dropped, never fatal.
			continue
		}
		_, err := stmt.ExecContext(ctx,
			a.Title, a.DueDate, due.Unix(), a.Course, a.Description, a.Type, a.SourceFile,
		)
		if err != nil {
			return fmt.Errorf("inserting assignment %q: %w", a.Title, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO indexing_status (source_file, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(source_file) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
		fileName, modTime,
	)
	if err != nil {
		return fmt.Errorf("updating indexing status: %w", err)
	}

	return tx.Commit()
}

// QueryOptions narrows List and Search results.
type QueryOptions struct {
	// Course filters by exact course name.
	Course string

	// Type filters by exact assignment type.
	Type string

	// MaxResults caps the result count; zero uses the store default.
	MaxResults int

	// DueOnOrAfter drops assignments due before the start of its calendar
	// day. The zero value disables the filter.
	DueOnOrAfter time.Time
}

const selectColumns = `title, due_date, course, description, type, source_file`

// List returns stored assignments sorted by ascending due date.
func (s *Store) List(ctx context.Context, opts QueryOptions) ([]types.Assignment, error) {
	query := `SELECT ` + selectColumns + ` FROM assignments`
	var conds []string
	var args []any

	if opts.Course != "" {
		conds = append(conds, "course = ?")
		args = append(args, opts.Course)
	}
	if opts.Type != "" {
		conds = append(conds, "type = ?")
		args = append(args, opts.Type)
	}
	if !opts.DueOnOrAfter.IsZero() {
		conds = append(conds, "due_unix >= ?")
		args = append(args, dates.StartOfDay(opts.DueOnOrAfter).Unix())
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY due_unix ASC, rowid ASC LIMIT ?"
	args = append(args, s.limit(opts))

	return s.queryAssignments(ctx, query, args...)
}

// Search runs an FTS5 full-text query over titles and descriptions,
// ranked by relevance.
func (s *Store) Search(ctx context.Context, text string, opts QueryOptions) ([]types.Assignment, error) {
	query := `SELECT ` + prefixColumns("a") + `
		FROM assignments_fts f
		JOIN assignments a ON a.rowid = f.rowid
		WHERE assignments_fts MATCH ?`
	args := []any{ftsQuote(text)}

	if opts.Course != "" {
		query += " AND a.course = ?"
		args = append(args, opts.Course)
	}
	if opts.Type != "" {
		query += " AND a.type = ?"
		args = append(args, opts.Type)
	}
	query += " ORDER BY rank LIMIT ?"
	args = append(args, s.limit(opts))

	return s.queryAssignments(ctx, query, args...)
}

// Clear removes every stored assignment and all indexing state.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM assignments`); err != nil {
		return fmt.Errorf("clearing assignments: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM indexing_status`); err != nil {
		return fmt.Errorf("clearing indexing status: %w", err)
	}
	return nil
}

func (s *Store) limit(opts QueryOptions) int {
	if opts.MaxResults > 0 {
		return opts.MaxResults
	}
	return s.maxResults
}

func (s *Store) queryAssignments(ctx context.Context, query string, args ...any) ([]types.Assignment, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying assignments: %w", err)
	}
	defer rows.Close()

	var out []types.Assignment
	for rows.Next() {
		var a types.Assignment
		var description, typ, sourceFile sql.NullString
		if err := rows.Scan(&a.Title, &a.DueDate, &a.Course, &description, &typ, &sourceFile); err != nil {
			return nil, fmt.Errorf("scanning assignment: %w", err)
		}
		a.Description = description.String
		a.Type = typ.String
		a.SourceFile = sourceFile.String
		out = append(out, a)
	}
	return out, rows.Err()
}

func prefixColumns(alias string) string {
	cols := strings.Split(selectColumns, ", ")
	for i, c := range cols {
		cols[i] = alias + "." + c
	}
	return strings.Join(cols, ", ")
}

// ftsQuote wraps each term in double quotes so user text with punctuation
// cannot break the FTS5 query syntax.
func ftsQuote(text string) string {
	terms := strings.Fields(text)
	for i, t := range terms {
		terms[i] = `"` + strings.ReplaceAll(t, `"`, ``) + `"`
	}
	return strings.Join(terms, " ")
}
