package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ziadkadry99/docsite/internal/db"
)

// SQLiteBackend persists entries in the kv_entries table.
type SQLiteBackend struct {
	db *db.DB
}

// NewSQLiteBackend creates a SQLiteBackend backed by the given database.
func NewSQLiteBackend(database *db.DB) *SQLiteBackend {
	return &SQLiteBackend{db: database}
}

func (s *SQLiteBackend) Get(ctx context.Context, scope, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM kv_entries WHERE scope = ? AND key = ?", scope, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %s/%s: %w", scope, key, err)
	}
	return value, true, nil
}

func (s *SQLiteBackend) Set(ctx context.Context, scope, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_entries (scope, key, value, updated_at)
		VALUES (?, ?, ?, datetime('now'))
		ON CONFLICT(scope, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		scope, key, value,
	)
	if err != nil {
		return fmt.Errorf("writing %s/%s: %w", scope, key, err)
	}
	return nil
}

func (s *SQLiteBackend) Remove(ctx context.Context, scope, key string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM kv_entries WHERE scope = ? AND key = ?", scope, key,
	)
	if err != nil {
		return fmt.Errorf("removing %s/%s: %w", scope, key, err)
	}
	return nil
}
