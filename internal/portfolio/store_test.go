package portfolio

import (
	"context"
	"testing"
	"time"

	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/common"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/models"
	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/storage/memory"
)

func newTestStore() (*Store, *memory.KVStorage) {
	kv := memory.NewKVStorage()
	return NewStore(kv, common.NewSilentLogger()), kv
}

func position(symbol string, qty int64, purchase, current float64) models.Position {
	return models.Position{
		Symbol:        symbol,
		Quantity:      qty,
		PurchasePrice: purchase,
		CurrentPrice:  current,
		PurchaseDate:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestStorePutAndList(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	if _, err := store.Put(ctx, position("PKN", 100, 50, 60)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if _, err := store.Put(ctx, position("CDR", 10, 200, 180)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	positions := store.List(ctx)
	if len(positions) != 2 {
		t.Fatalf("expected 2 positions, got %d", len(positions))
	}
	// Sorted by symbol
	if positions[0].Symbol != "CDR" || positions[1].Symbol != "PKN" {
		t.Errorf("expected CDR, PKN order, got %s, %s", positions[0].Symbol, positions[1].Symbol)
	}
}

func TestStorePutMergesDuplicateSymbol(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	if _, err := store.Put(ctx, position("PKN", 100, 50, 55)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	merged, err := store.Put(ctx, position("PKN", 100, 60, 58))
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if merged.Quantity != 200 {
		t.Errorf("expected merged quantity 200, got %d", merged.Quantity)
	}
	if merged.PurchasePrice != 55 {
		t.Errorf("expected weighted purchase price 55, got %v", merged.PurchasePrice)
	}
	if merged.CurrentPrice != 58 {
		t.Errorf("expected incoming current price 58, got %v", merged.CurrentPrice)
	}

	if got := len(store.List(ctx)); got != 1 {
		t.Errorf("expected single stored position, got %d", got)
	}
}

func TestStorePutRejectsInvalid(t *testing.T) {
	store, _ := newTestStore()

	if _, err := store.Put(context.Background(), position("pk", 100, 50, 60)); err == nil {
		t.Error("expected validation error for bad symbol")
	}
}

func TestStoreRemove(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	store.Put(ctx, position("PKN", 100, 50, 60))

	if !store.Remove(ctx, "PKN") {
		t.Error("expected Remove to report true for held symbol")
	}
	if store.Remove(ctx, "PKN") {
		t.Error("expected Remove to report false for absent symbol")
	}
	if got := len(store.List(ctx)); got != 0 {
		t.Errorf("expected empty portfolio, got %d positions", got)
	}
}

func TestStoreListCorruptedData(t *testing.T) {
	store, kv := newTestStore()
	ctx := context.Background()

	kv.Set(ctx, "portfel:portfolio-positions", "{not json")

	if got := store.List(ctx); len(got) != 0 {
		t.Errorf("expected empty list for corrupted data, got %d", len(got))
	}
}
