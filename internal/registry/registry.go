// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package registry records completed conversions in a SQLite database so the
// CLI can show where a source was converted to and when. The engine itself
// never touches the registry; recording is a collaborator-layer concern.
package registry

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/postforge/pkg/types"
)

// Conversion is one recorded conversion.
type Conversion struct {
	SourcePath string
	OutputPath string
	AssetPath  string
	Kind       types.SourceKind
	Title      string
	PostDate   time.Time
	RecordedAt time.Time
}

// Store manages the conversion history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path, creating the schema
// and any missing parent directories.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating registry directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening registry database: %w", err)
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
	const stmt = `CREATE TABLE IF NOT EXISTS conversions (
		rowid INTEGER PRIMARY KEY AUTOINCREMENT,
		source_path TEXT NOT NULL,
		output_path TEXT NOT NULL,
		asset_path TEXT,
		kind TEXT NOT NULL,
		title TEXT NOT NULL,
		post_date TEXT NOT NULL,
		recorded_at TEXT NOT NULL
	)`
	if _, err := s.db.Exec(stmt); err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Record inserts one conversion. A zero RecordedAt is filled with the
// current time.
func (s *Store) Record(c Conversion) error {
	if c.RecordedAt.IsZero() {
		c.RecordedAt = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO conversions (source_path, output_path, asset_path, kind, title, post_date, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.SourcePath, c.OutputPath, c.AssetPath, string(c.Kind), c.Title,
		c.PostDate.Format(time.RFC3339), c.RecordedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording conversion: %w", err)
	}
	return nil
}

// Recent returns the most recent conversions, newest first.
func (s *Store) Recent(limit int) ([]Conversion, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT source_path, output_path, asset_path, kind, title, post_date, recorded_at
		 FROM conversions ORDER BY rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying conversions: %w", err)
	}
	defer rows.Close()

	var out []Conversion
	for rows.Next() {
		var c Conversion
		var asset sql.NullString
		var postDate, recordedAt string
		if err := rows.Scan(&c.SourcePath, &c.OutputPath, &asset, (*string)(&c.Kind), &c.Title, &postDate, &recordedAt); err != nil {
			return nil, fmt.Errorf("scanning conversion row: %w", err)
		}
		c.AssetPath = asset.String
		if t, err := time.Parse(time.RFC3339, postDate); err == nil {
			c.PostDate = t
		}
		if t, err := time.Parse(time.RFC3339, recordedAt); err == nil {
			c.RecordedAt = t
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating conversion rows: %w", err)
	}
	return out, nil
}
