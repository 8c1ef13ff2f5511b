// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mjec/tipcalc/internal/models"
	"github.com/mjec/tipcalc/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// LoadPreferences reads every stored preference row.
func (s *SQLiteStore) LoadPreferences(ctx context.Context) (storage.Values, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name, value FROM preferences")
	if err != nil {
		return nil, fmt.Errorf("failed to query preferences: %w", err)
	}
	defer rows.Close()

	values := make(storage.Values)
	for rows.Next() {
		var (
			name  string
			value any
		)
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("failed to scan preference: %w", err)
		}
		values[models.Name(name)] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate preferences: %w", err)
	}

	return values, nil
}

// SavePreferences upserts the given preferences in a single transaction.
func (s *SQLiteStore) SavePreferences(ctx context.Context, values storage.Values) error {
	if len(values) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	updatedAt := s.now().Unix()
	for name, value := range values {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO preferences (name, value, updated_at) VALUES (?, ?, ?)
			 ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			string(name), value, updatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to save preference %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
