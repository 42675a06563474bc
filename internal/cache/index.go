package cache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jmagar/giphy-launchbar/internal/model"
)

// Index records every file the Store has downloaded.
type Index struct {
	db *sql.DB
}

// OpenIndex opens the SQLite index at path and ensures the schema exists.
func OpenIndex(path string) (*Index, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index tables: %w", err)
	}
	return &Index{db: db}, nil
}

func createTables(db *sql.DB) error {
	// Launcher invocations can overlap; wait for a competing writer.
	_, err := db.Exec(`
    PRAGMA busy_timeout = 2000;
    CREATE TABLE IF NOT EXISTS entries (
        id TEXT NOT NULL, filename TEXT NOT NULL, path TEXT NOT NULL,
        source_url TEXT, size INTEGER, fetched_at INTEGER,
        PRIMARY KEY (id, filename)
    );`)
	return err
}

// Close closes the database.
func (ix *Index) Close() error {
	return ix.db.Close()
}

// Record inserts or replaces the row for e.
func (ix *Index) Record(ctx context.Context, e model.CacheEntry) error {
	_, err := ix.db.ExecContext(ctx, `
        INSERT OR REPLACE INTO entries (id, filename, path, source_url, size, fetched_at)
        VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Filename, e.Path, e.SourceURL, e.Size, e.FetchedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to record cache entry: %w", err)
	}
	return nil
}

// Lookup returns the row for (id, filename), or nil if there is none.
func (ix *Index) Lookup(ctx context.Context, id, filename string) (*model.CacheEntry, error) {
	var e model.CacheEntry
	var sourceURL sql.NullString
	var size, fetchedAt sql.NullInt64
	err := ix.db.QueryRowContext(ctx,
		`SELECT id, filename, path, source_url, size, fetched_at FROM entries WHERE id = ? AND filename = ?`,
		id, filename).Scan(&e.ID, &e.Filename, &e.Path, &sourceURL, &size, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query cache entry: %w", err)
	}
	e.SourceURL = sourceURL.String
	e.Size = size.Int64
	if fetchedAt.Valid {
		e.FetchedAt = time.Unix(fetchedAt.Int64, 0)
	}
	return &e, nil
}

// Stats returns the entry count, total size and latest fetch time.
func (ix *Index) Stats(ctx context.Context) (Info, error) {
	var info Info
	var total, last sql.NullInt64
	err := ix.db.QueryRowContext(ctx,
		`SELECT COUNT(*), SUM(size), MAX(fetched_at) FROM entries`).Scan(&info.Entries, &total, &last)
	if err != nil {
		return Info{}, fmt.Errorf("failed to read cache stats: %w", err)
	}
	info.Bytes = total.Int64
	if last.Valid {
		info.LastFetched = time.Unix(last.Int64, 0)
	}
	return info, nil
}

// Reset deletes every row.
func (ix *Index) Reset(ctx context.Context) error {
	if _, err := ix.db.ExecContext(ctx, `DELETE FROM entries`); err != nil {
		return fmt.Errorf("failed to reset index: %w", err)
	}
	return nil
}
