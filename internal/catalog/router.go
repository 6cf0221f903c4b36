package catalog

import (
	"context"
	"time"

	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/models"
	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/utils"
)

// Every mutation below follows the same routing rule: resolve the
// current effective item, then write to wherever that item actually
// lives. Items created in the store are updated in place; bundled items
// get an override document on their first mutation and that override is
// updated from then on. Deleting a bundled item that was never touched
// writes a minimal tombstone.
//
// Each mutation is a full collection read followed by one write. That
// pair is not atomic: two admins mutating the same id concurrently race
// and the last write wins. This mirrors how the shop has always
// operated; do not rely on it as a consistency guarantee.

// Create inserts a brand-new item into the collection. The store
// assigns its identity.
func (c *Catalog) Create(ctx context.Context, item *models.CatalogItem) (*models.CatalogItem, error) {
	now := time.Now().UTC()
	item.IsStatic = false
	item.IsDeleted = false
	if item.Status == "" {
		item.Status = models.ItemStatusActive
	}
	if item.MinStock == 0 {
		item.MinStock = models.DefaultMinStock
	}
	if item.MaxStock == 0 {
		item.MaxStock = models.DefaultMaxStock
	}
	item.CreatedAt = &now
	item.UpdatedAt = &now

	fields, err := item.Fields()
	if err != nil {
		return nil, err
	}
	delete(fields, "id")

	docID, err := c.store.Insert(ctx, fields)
	if err != nil {
		return nil, err
	}
	item.ID = docID
	return item, nil
}

// Update shallow-merges the provided fields into the effective item for
// id and stamps updatedAt.
func (c *Catalog) Update(ctx context.Context, id string, changes map[string]any) (*models.CatalogItem, error) {
	return c.mutate(ctx, id, func(*models.CatalogItem) map[string]any {
		return changes
	})
}

// Delete soft-deletes the effective item for id. Nothing is ever hard
// deleted; bundled items are suppressed by a tombstone document.
func (c *Catalog) Delete(ctx context.Context, id string) error {
	docs, err := c.store.QueryAll(ctx)
	if err != nil {
		return err
	}
	item := findByID(Resolve(c.static, docs), id)
	if item == nil {
		return utils.ErrItemNotFound
	}

	now := time.Now().UTC()
	tombstone := map[string]any{
		"isDeleted": true,
		"deletedAt": now,
		"updatedAt": now,
	}

	if !item.IsStatic {
		if doc := findLiveDoc(docs, id); doc != nil {
			return c.store.Update(ctx, doc.DocID, tombstone)
		}
		return utils.ErrItemNotFound
	}
	if doc := findOverrideDoc(docs, id); doc != nil {
		return c.store.Update(ctx, doc.DocID, tombstone)
	}

	// Untouched bundled item: a minimal tombstone is enough, resolution
	// only looks at the flags.
	_, err = c.store.Insert(ctx, map[string]any{
		"id":        id,
		"isStatic":  true,
		"isDeleted": true,
		"deletedAt": now,
		"createdAt": now,
		"updatedAt": now,
	})
	return err
}

// Sell records qty units sold: the sold counter grows by the full
// requested quantity while stock clamps at zero. Overselling does not
// fail — the shop has always recorded it this way.
func (c *Catalog) Sell(ctx context.Context, id string, qty int) (*models.CatalogItem, error) {
	return c.mutate(ctx, id, func(item *models.CatalogItem) map[string]any {
		return map[string]any{
			"sold":     item.Sold + qty,
			"stock":    clampStock(item.Stock - qty),
			"lastSold": time.Now().UTC(),
		}
	})
}

// AddStock increases stock by qty and stamps lastRestocked.
func (c *Catalog) AddStock(ctx context.Context, id string, qty int) (*models.CatalogItem, error) {
	return c.mutate(ctx, id, func(item *models.CatalogItem) map[string]any {
		return map[string]any{
			"stock":         item.Stock + qty,
			"lastRestocked": time.Now().UTC(),
		}
	})
}

// RemoveStock decreases stock by qty, clamping at zero.
func (c *Catalog) RemoveStock(ctx context.Context, id string, qty int) (*models.CatalogItem, error) {
	return c.mutate(ctx, id, func(item *models.CatalogItem) map[string]any {
		return map[string]any{
			"stock": clampStock(item.Stock - qty),
		}
	})
}

// StockUpdate sets an item's stock to an absolute value.
type StockUpdate struct {
	ID    string `json:"id"`
	Stock int    `json:"stock"`
}

// BulkUpdateStock applies absolute stock levels to many items in one
// pass over the collection. Entries referencing unknown ids are skipped
// and counted, not failed.
func (c *Catalog) BulkUpdateStock(ctx context.Context, updates []StockUpdate) (applied, skipped int, err error) {
	docs, err := c.store.QueryAll(ctx)
	if err != nil {
		return 0, 0, err
	}
	items := Resolve(c.static, docs)

	now := time.Now().UTC()
	for _, u := range updates {
		item := findByID(items, u.ID)
		if item == nil {
			skipped++
			continue
		}
		changes := map[string]any{
			"stock":     clampStock(u.Stock),
			"updatedAt": now,
		}
		if err := c.applyChange(ctx, docs, item, changes); err != nil {
			return applied, skipped, err
		}
		applied++
	}
	return applied, skipped, nil
}

// mutate resolves the effective item for id, builds the field changes
// from it, stamps updatedAt, routes the write, and returns the item as
// it will read back.
func (c *Catalog) mutate(ctx context.Context, id string, build func(*models.CatalogItem) map[string]any) (*models.CatalogItem, error) {
	docs, err := c.store.QueryAll(ctx)
	if err != nil {
		return nil, err
	}
	item := findByID(Resolve(c.static, docs), id)
	if item == nil {
		return nil, utils.ErrItemNotFound
	}

	changes := build(item)
	changes["updatedAt"] = time.Now().UTC()

	if err := c.applyChange(ctx, docs, item, changes); err != nil {
		return nil, err
	}

	merged, err := item.Fields()
	if err != nil {
		return nil, err
	}
	for k, v := range changes {
		merged[k] = v
	}
	return models.ItemFromFields(merged)
}

// applyChange routes a field-change write to the correct document.
func (c *Catalog) applyChange(ctx context.Context, docs []models.Document, item *models.CatalogItem, changes map[string]any) error {
	if !item.IsStatic {
		if doc := findLiveDoc(docs, item.ID); doc != nil {
			return c.store.Update(ctx, doc.DocID, changes)
		}
		return utils.ErrItemNotFound
	}

	if doc := findOverrideDoc(docs, item.ID); doc != nil {
		return c.store.Update(ctx, doc.DocID, changes)
	}

	// First mutation of a bundled item: clone it into the store. The
	// clone keeps the bundled id and becomes the override from now on.
	fields, err := item.Fields()
	if err != nil {
		return err
	}
	for k, v := range changes {
		fields[k] = v
	}
	fields["isStatic"] = true
	fields["isDeleted"] = false
	fields["createdAt"] = time.Now().UTC()

	_, err = c.store.Insert(ctx, fields)
	return err
}

// findLiveDoc returns the newest non-deleted document for a logical id.
func findLiveDoc(docs []models.Document, id string) *models.Document {
	for i := range docs {
		if docs[i].LogicalID() == id && !docs[i].Bool("isDeleted") {
			return &docs[i]
		}
	}
	return nil
}

// findOverrideDoc returns the newest live override document for a
// bundled item's id.
func findOverrideDoc(docs []models.Document, id string) *models.Document {
	for i := range docs {
		if docs[i].LogicalID() == id && docs[i].Bool("isStatic") && !docs[i].Bool("isDeleted") {
			return &docs[i]
		}
	}
	return nil
}

func clampStock(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
