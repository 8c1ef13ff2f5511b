// Package memory provides an in-memory implementation of the storage.Store interface.
// Values survive only as long as the Store does.
package memory

import (
	"context"
	"maps"

	"github.com/mjec/tipcalc/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps preferences in a map.
type Store struct {
	values storage.Values
	saves  int
}

// New returns an empty Store, optionally seeded with values.
func New(seed storage.Values) *Store {
	values := make(storage.Values, len(seed))
	maps.Copy(values, seed)
	return &Store{values: values}
}

// LoadPreferences returns a copy of the stored values.
func (s *Store) LoadPreferences(ctx context.Context) (storage.Values, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return maps.Clone(s.values), nil
}

// SavePreferences merges values into the store.
func (s *Store) SavePreferences(ctx context.Context, values storage.Values) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(values) == 0 {
		return nil
	}
	maps.Copy(s.values, values)
	s.saves++
	return nil
}

// Saves reports how many non-empty saves have been applied.
func (s *Store) Saves() int {
	return s.saves
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}
