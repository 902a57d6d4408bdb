// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger keeps a SQLite history of completed folder exports.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const defaultLimit = 20

// timeLayout is fixed width so created_at sorts chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Entry is one recorded export.
type Entry struct {
	ID             string    `json:"id" yaml:"id"`
	Source         string    `json:"source" yaml:"source"`
	LibraryID      string    `json:"library_id" yaml:"library_id"`
	FolderID       string    `json:"folder_id" yaml:"folder_id"`
	Subdirectories bool      `json:"subdirectories" yaml:"subdirectories"`
	Folders        int       `json:"folders" yaml:"folders"`
	Content        int       `json:"content" yaml:"content"`
	Output         string    `json:"output" yaml:"output"`
	CreatedAt      time.Time `json:"created_at" yaml:"created_at"`
}

// Ledger manages the export history database.
type Ledger struct {
	db *sql.DB
}

// Open opens or creates the history database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	l := &Ledger{db: db}
	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return l, nil
}

// Close releases the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS exports (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			library_id TEXT,
			folder_id TEXT NOT NULL,
			subdirectories INTEGER NOT NULL,
			folders INTEGER NOT NULL,
			content INTEGER NOT NULL,
			output TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_exports_folder_id ON exports(folder_id)`,
		`CREATE INDEX IF NOT EXISTS idx_exports_created_at ON exports(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := l.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores e. A missing ID is filled with a new UUID and a zero
// CreatedAt with the current time. The stored entry is returned.
func (l *Ledger) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	e.CreatedAt = e.CreatedAt.UTC()

	_, err := l.db.ExecContext(ctx,
		`INSERT INTO exports (id, source, library_id, folder_id, subdirectories, folders, content, output, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Source, e.LibraryID, e.FolderID, e.Subdirectories,
		e.Folders, e.Content, e.Output, e.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("recording export %s: %w", e.ID, err)
	}
	return e, nil
}

// ListOptions filters List.
type ListOptions struct {
	// FolderID restricts results to exports of one folder.
	FolderID string

	// Limit caps the number of entries (default 20).
	Limit int
}

// List returns recorded exports, newest first.
func (l *Ledger) List(ctx context.Context, opts ListOptions) ([]Entry, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	query := `SELECT id, source, library_id, folder_id, subdirectories, folders, content, output, created_at
		FROM exports`
	var args []any
	if opts.FolderID != "" {
		query += ` WHERE folder_id = ?`
		args = append(args, opts.FolderID)
	}
	query += ` ORDER BY created_at DESC, rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying exports: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			libraryID sql.NullString
			created   string
		)
		if err := rows.Scan(&e.ID, &e.Source, &libraryID, &e.FolderID, &e.Subdirectories,
			&e.Folders, &e.Content, &e.Output, &created); err != nil {
			return nil, fmt.Errorf("scanning export: %w", err)
		}
		e.LibraryID = libraryID.String
		e.CreatedAt, err = time.Parse(timeLayout, created)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at of %s: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
