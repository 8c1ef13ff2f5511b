// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mjec/tipcalc/internal/models"
)

// Values is a flat snapshot of stored preferences keyed by name.
// Stored values are primitives: string, int64, float64, []byte or bool.
// Callers must not assume a key holds any particular type.
type Values map[models.Name]any

// Store defines the interface for preference storage operations.
// This abstraction allows swapping storage backends (SQLite, in-memory)
// without changing the preference layer.
type Store interface {
	// LoadPreferences returns every stored preference.
	// Missing keys are simply absent from the result.
	LoadPreferences(ctx context.Context) (Values, error)

	// SavePreferences writes the given keys atomically, replacing existing values.
	// Keys not present in values are left untouched.
	SavePreferences(ctx context.Context, values Values) error

	// Close releases any resources held by the store.
	Close() error
}
