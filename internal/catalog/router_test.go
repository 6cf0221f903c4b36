package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/docstore"
	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/models"
	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/utils"
)

func newTestCatalog(t *testing.T) (*Catalog, docstore.Store) {
	t.Helper()
	store := docstore.NewMemoryStore().Collection("products")
	return New("products", store, staticFixture()), store
}

func TestCreateAssignsStoreIdentity(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCatalog(t)

	created, err := c.Create(ctx, &models.CatalogItem{
		Code: "B-1", DisplayName: "Yangi filtr", CompanyName: "Mann", Price: "30000", Stock: 4,
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created item has no id")
	}
	if created.IsStatic {
		t.Error("created item must not be static")
	}
	if created.MinStock != models.DefaultMinStock || created.MaxStock != models.DefaultMaxStock {
		t.Errorf("stock bounds not defaulted: min=%d max=%d", created.MinStock, created.MaxStock)
	}

	got, err := c.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.DisplayName != "Yangi filtr" {
		t.Errorf("DisplayName = %q", got.DisplayName)
	}
}

func TestUpdateBundledItemCreatesOverride(t *testing.T) {
	ctx := context.Background()
	c, store := newTestCatalog(t)

	updated, err := c.Update(ctx, "static-1", map[string]any{"price": "12000"})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if updated.Price != "12000" {
		t.Errorf("Price = %q, want 12000", updated.Price)
	}
	if updated.ID != "static-1" {
		t.Errorf("override must keep the bundled id, got %q", updated.ID)
	}

	docs, _ := store.QueryAll(ctx)
	if len(docs) != 1 {
		t.Fatalf("got %d documents, want 1 override", len(docs))
	}
	if !docs[0].Bool("isStatic") || docs[0].Bool("isDeleted") {
		t.Errorf("override flags wrong: %+v", docs[0].Fields)
	}

	// A second mutation reuses the same override instead of stacking a new one.
	if _, err := c.Update(ctx, "static-1", map[string]any{"stock": 50}); err != nil {
		t.Fatalf("second Update() error: %v", err)
	}
	docs, _ = store.QueryAll(ctx)
	if len(docs) != 1 {
		t.Fatalf("second mutation created a new document, got %d", len(docs))
	}

	items, _ := c.Items(ctx)
	if len(items) != 3 {
		t.Errorf("resolved catalog has %d items, want 3", len(items))
	}
}

func TestUpdateUnknownItem(t *testing.T) {
	c, _ := newTestCatalog(t)
	_, err := c.Update(context.Background(), "nope", map[string]any{"price": "1"})
	if !errors.Is(err, utils.ErrItemNotFound) {
		t.Errorf("err = %v, want ErrItemNotFound", err)
	}
}

func TestDeleteUntouchedBundledItemWritesTombstone(t *testing.T) {
	ctx := context.Background()
	c, store := newTestCatalog(t)

	if err := c.Delete(ctx, "static-2"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}

	docs, _ := store.QueryAll(ctx)
	if len(docs) != 1 {
		t.Fatalf("got %d documents, want 1 tombstone", len(docs))
	}
	tomb := docs[0]
	if !tomb.Bool("isStatic") || !tomb.Bool("isDeleted") {
		t.Errorf("tombstone flags wrong: %+v", tomb.Fields)
	}
	if tomb.LogicalID() != "static-2" {
		t.Errorf("tombstone id = %q", tomb.LogicalID())
	}
	// A tombstone is minimal: no catalog payload is copied onto it.
	if _, ok := tomb.Fields["displayName"]; ok {
		t.Error("tombstone should not carry item fields")
	}

	items, _ := c.Items(ctx)
	if len(items) != 2 {
		t.Fatalf("resolved catalog has %d items, want 2", len(items))
	}
	if _, err := c.Get(ctx, "static-2"); !errors.Is(err, utils.ErrItemNotFound) {
		t.Errorf("deleted item still resolvable: %v", err)
	}
}

func TestDeleteOverriddenBundledItemSoftDeletesOverride(t *testing.T) {
	ctx := context.Background()
	c, store := newTestCatalog(t)

	if _, err := c.Update(ctx, "static-1", map[string]any{"price": "99"}); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if err := c.Delete(ctx, "static-1"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}

	docs, _ := store.QueryAll(ctx)
	if len(docs) != 1 {
		t.Fatalf("delete should reuse the override document, got %d docs", len(docs))
	}
	if !docs[0].Bool("isDeleted") {
		t.Error("override not marked deleted")
	}
	items, _ := c.Items(ctx)
	if len(items) != 2 {
		t.Errorf("resolved catalog has %d items, want 2", len(items))
	}
}

func TestDeleteLiveItemSoftDeletes(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCatalog(t)

	created, err := c.Create(ctx, &models.CatalogItem{Code: "C-1", DisplayName: "X", CompanyName: "Y", Price: "1"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if err := c.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := c.Get(ctx, created.ID); !errors.Is(err, utils.ErrItemNotFound) {
		t.Errorf("deleted item still resolvable: %v", err)
	}
}

func TestSellClampsStockAndCountsFullQuantity(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCatalog(t)

	// static-3 starts with stock 3; selling 5 oversells.
	item, err := c.Sell(ctx, "static-3", 5)
	if err != nil {
		t.Fatalf("Sell() error: %v", err)
	}
	if item.Stock != 0 {
		t.Errorf("Stock = %d, want 0 (clamped)", item.Stock)
	}
	if item.Sold != 5 {
		t.Errorf("Sold = %d, want 5 (full quantity)", item.Sold)
	}
	if item.LastSold == nil {
		t.Error("LastSold not stamped")
	}

	got, _ := c.Get(ctx, "static-3")
	if got.Stock != 0 || got.Sold != 5 {
		t.Errorf("persisted state stock=%d sold=%d", got.Stock, got.Sold)
	}
}

func TestAddStock(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCatalog(t)

	item, err := c.AddStock(ctx, "static-1", 10)
	if err != nil {
		t.Fatalf("AddStock() error: %v", err)
	}
	if item.Stock != 15 {
		t.Errorf("Stock = %d, want 15", item.Stock)
	}
	if item.LastRestocked == nil {
		t.Error("LastRestocked not stamped")
	}
}

func TestRemoveStockClampsAtZero(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCatalog(t)

	item, err := c.RemoveStock(ctx, "static-1", 100)
	if err != nil {
		t.Fatalf("RemoveStock() error: %v", err)
	}
	if item.Stock != 0 {
		t.Errorf("Stock = %d, want 0", item.Stock)
	}
}

func TestBulkUpdateStock(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCatalog(t)

	applied, skipped, err := c.BulkUpdateStock(ctx, []StockUpdate{
		{ID: "static-1", Stock: 40},
		{ID: "static-2", Stock: -3},
		{ID: "missing", Stock: 10},
	})
	if err != nil {
		t.Fatalf("BulkUpdateStock() error: %v", err)
	}
	if applied != 2 || skipped != 1 {
		t.Errorf("applied=%d skipped=%d, want 2/1", applied, skipped)
	}

	one, _ := c.Get(ctx, "static-1")
	if one.Stock != 40 {
		t.Errorf("static-1 stock = %d, want 40", one.Stock)
	}
	two, _ := c.Get(ctx, "static-2")
	if two.Stock != 0 {
		t.Errorf("static-2 stock = %d, want 0 (clamped)", two.Stock)
	}
}
