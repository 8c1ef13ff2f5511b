package memory

import (
	"context"
	"testing"

	"github.com/mjec/tipcalc/internal/models"
	"github.com/mjec/tipcalc/internal/storage"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	seed := storage.Values{models.NameBillTotal: "12.00"}
	store := New(seed)

	seed[models.NameBillTotal] = "99.00"
	values, err := store.LoadPreferences(ctx)
	if err != nil {
		t.Fatalf("LoadPreferences failed: %v", err)
	}
	if got := values[models.NameBillTotal]; got != "12.00" {
		t.Errorf("seed was not copied: got %#v", got)
	}

	values[models.NameBillTotal] = "mutated"
	if err := store.SavePreferences(ctx, storage.Values{models.NameTipPercentage: "0.2"}); err != nil {
		t.Fatalf("SavePreferences failed: %v", err)
	}
	values, _ = store.LoadPreferences(ctx)
	if got := values[models.NameBillTotal]; got != "12.00" {
		t.Errorf("loaded snapshot aliased the store: got %#v", got)
	}
	if got := values[models.NameTipPercentage]; got != "0.2" {
		t.Errorf("tipPercentage = %#v, want \"0.2\"", got)
	}
	if store.Saves() != 1 {
		t.Errorf("Saves() = %d, want 1", store.Saves())
	}

	if err := store.SavePreferences(ctx, storage.Values{}); err != nil {
		t.Fatalf("SavePreferences failed: %v", err)
	}
	if store.Saves() != 1 {
		t.Errorf("empty save counted: Saves() = %d", store.Saves())
	}
}

func TestStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := New(nil)
	if _, err := store.LoadPreferences(ctx); err == nil {
		t.Error("Expected error from canceled context")
	}
	if err := store.SavePreferences(ctx, storage.Values{models.NameBillTotal: "1"}); err == nil {
		t.Error("Expected error from canceled context")
	}
}
