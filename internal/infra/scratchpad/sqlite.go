package scratchpad

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"meetroom/internal/pkg/clock"
	"meetroom/internal/pkg/errs"

	_ "modernc.org/sqlite"
)

// SQLiteKV stores scratchpad entries in a single SQLite table.
type SQLiteKV struct {
	db    *sql.DB
	clock clock.Clock
}

// OpenSQLite opens (and creates) the database at path. ":memory:" keeps
// everything in process.
func OpenSQLite(ctx context.Context, path string, clk clock.Clock) (*SQLiteKV, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, errs.Wrap(err, "failed to create scratchpad directory")
		}
		dsn = fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errs.Wrap(err, "failed to open sqlite")
	}

	// One connection: SQLite serializes writers anyway, and ":memory:" is per connection.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	kv := NewSQLiteKV(db, clk)
	if err := kv.InitSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return kv, nil
}

// NewSQLiteKV wraps an already opened handle.
func NewSQLiteKV(db *sql.DB, clk clock.Clock) *SQLiteKV {
	return &SQLiteKV{db: db, clock: clk}
}

func (s *SQLiteKV) InitSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS scratchpad (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`)
	if err != nil {
		return errs.Wrap(err, "failed to init scratchpad schema")
	}
	return nil
}

func (s *SQLiteKV) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM scratchpad WHERE key = ?`, key).Scan(&value)
	if errs.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", errs.Wrapf(err, "failed to read scratchpad key %s", key)
	}
	return value, nil
}

func (s *SQLiteKV) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scratchpad (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, s.clock.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return errs.Wrapf(err, "failed to write scratchpad key %s", key)
	}
	return nil
}

func (s *SQLiteKV) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM scratchpad WHERE key = ?`, key); err != nil {
		return errs.Wrapf(err, "failed to delete scratchpad key %s", key)
	}
	return nil
}

func (s *SQLiteKV) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
