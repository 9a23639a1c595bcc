package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"weekly-rollover/internal/note/repository"
	pkgLog "weekly-rollover/pkg/log"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

const schema = `
CREATE TABLE IF NOT EXISTS notes (
	id          TEXT PRIMARY KEY,
	content     TEXT NOT NULL,
	tags_json   TEXT NOT NULL DEFAULT '[]',
	pinned      INTEGER NOT NULL DEFAULT 0,
	archived    INTEGER NOT NULL DEFAULT 0,
	deleted     INTEGER NOT NULL DEFAULT 0,
	created_at  INTEGER NOT NULL,
	modified_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notes_created_at ON notes(created_at);
`

type implRepository struct {
	db  *sql.DB
	l   pkgLog.Logger
	now func() time.Time
}

// Open opens (and creates if needed) the SQLite note database at path.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serialises writes.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create notes table: %w", err)
	}

	return db, nil
}

// New creates a SQLite-backed note repository.
func New(db *sql.DB, l pkgLog.Logger) repository.NoteRepository {
	return &implRepository{
		db:  db,
		l:   l,
		now: time.Now,
	}
}
