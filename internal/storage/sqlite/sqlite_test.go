package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mjec/tipcalc/internal/models"
	"github.com/mjec/tipcalc/internal/storage"
)

func TestSQLiteStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "prefs.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	t.Run("New creates parent directories", func(t *testing.T) {
		if _, err := os.Stat(dbPath); err != nil {
			t.Fatalf("Expected database file to exist: %v", err)
		}
	})

	t.Run("LoadPreferences on empty database", func(t *testing.T) {
		values, err := store.LoadPreferences(ctx)
		if err != nil {
			t.Fatalf("LoadPreferences failed: %v", err)
		}
		if len(values) != 0 {
			t.Errorf("Expected no preferences, got %d", len(values))
		}
	})

	t.Run("SavePreferences preserves value types", func(t *testing.T) {
		err := store.SavePreferences(ctx, storage.Values{
			models.NameDefaultTipPercentage: "0.2",
			models.NameRoundingRule:         int64(2),
			models.NameBillTotal:            float64(19.37),
		})
		if err != nil {
			t.Fatalf("SavePreferences failed: %v", err)
		}

		values, err := store.LoadPreferences(ctx)
		if err != nil {
			t.Fatalf("LoadPreferences failed: %v", err)
		}
		if got, ok := values[models.NameDefaultTipPercentage].(string); !ok || got != "0.2" {
			t.Errorf("defaultTipPercentage = %#v, want \"0.2\"", values[models.NameDefaultTipPercentage])
		}
		if got, ok := values[models.NameRoundingRule].(int64); !ok || got != 2 {
			t.Errorf("roundingRule = %#v, want int64(2)", values[models.NameRoundingRule])
		}
		if got, ok := values[models.NameBillTotal].(float64); !ok || got != 19.37 {
			t.Errorf("billTotal = %#v, want float64(19.37)", values[models.NameBillTotal])
		}
	})

	t.Run("SavePreferences overwrites and leaves other keys alone", func(t *testing.T) {
		err := store.SavePreferences(ctx, storage.Values{
			models.NameDefaultTipPercentage: "0.15",
		})
		if err != nil {
			t.Fatalf("SavePreferences failed: %v", err)
		}

		values, err := store.LoadPreferences(ctx)
		if err != nil {
			t.Fatalf("LoadPreferences failed: %v", err)
		}
		if got := values[models.NameDefaultTipPercentage]; got != "0.15" {
			t.Errorf("defaultTipPercentage = %#v, want \"0.15\"", got)
		}
		if _, ok := values[models.NameRoundingRule]; !ok {
			t.Error("Expected roundingRule to survive an unrelated save")
		}
	})

	t.Run("SavePreferences with nothing to save", func(t *testing.T) {
		if err := store.SavePreferences(ctx, nil); err != nil {
			t.Fatalf("SavePreferences(nil) failed: %v", err)
		}
	})
}

func TestSQLiteStore_Reopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "prefs.db")
	ctx := context.Background()

	first, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if err := first.SavePreferences(ctx, storage.Values{models.NameRoundToNearest: "1.00"}); err != nil {
		t.Fatalf("SavePreferences failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	second, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer second.Close()

	values, err := second.LoadPreferences(ctx)
	if err != nil {
		t.Fatalf("LoadPreferences failed: %v", err)
	}
	if got := values[models.NameRoundToNearest]; got != "1.00" {
		t.Errorf("roundToNearestIncrement = %#v, want \"1.00\"", got)
	}
}
