package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS kv (
	key INTEGER PRIMARY KEY,
	value BLOB NOT NULL
);
`

// SQLite is a Persist backed by a single kv table.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Exists(ctx context.Context, key uint32) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM kv WHERE key = ?`, int64(key)).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("exists %#04x: %w", key, err)
	}
	return n > 0, nil
}

func (s *SQLite) ReadData(ctx context.Context, key uint32) ([]byte, error) {
	var v []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, int64(key)).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoKey
	}
	if err != nil {
		return nil, fmt.Errorf("read %#04x: %w", key, err)
	}
	return v, nil
}

func (s *SQLite) WriteData(ctx context.Context, key uint32, data []byte) (int, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		int64(key), data,
	)
	if err != nil {
		return 0, fmt.Errorf("write %#04x: %w", key, err)
	}

	var n int
	err = s.db.QueryRowContext(ctx, `SELECT length(value) FROM kv WHERE key = ?`, int64(key)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("verify %#04x: %w", key, err)
	}
	return n, nil
}

func (s *SQLite) Delete(ctx context.Context, key uint32) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, int64(key)); err != nil {
		return fmt.Errorf("delete %#04x: %w", key, err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
