package catalog

import (
	"context"

	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/docstore"
	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/models"
	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/utils"
)

// Catalog is one catalog kind: a read-only bundled dataset plus the
// document-store collection holding everything that ever changed about
// it. Both shop catalogs (spare parts and GM parts) are instances of
// this one type bound to different collections and bundles.
type Catalog struct {
	kind   string
	store  docstore.Store
	static []models.CatalogItem
}

// New creates a Catalog over the given collection and bundled dataset.
func New(kind string, store docstore.Store, static []models.CatalogItem) *Catalog {
	return &Catalog{kind: kind, store: store, static: static}
}

// Kind returns the catalog's kind tag ("products" or "gms").
func (c *Catalog) Kind() string {
	return c.kind
}

// Items returns the effective catalog: the full remote collection merged
// over the bundle. A remote fetch failure fails the whole read — there
// is no stale fallback.
func (c *Catalog) Items(ctx context.Context) ([]models.CatalogItem, error) {
	docs, err := c.store.QueryAll(ctx)
	if err != nil {
		return nil, err
	}
	return Resolve(c.static, docs), nil
}

// Get returns the effective item for id.
func (c *Catalog) Get(ctx context.Context, id string) (*models.CatalogItem, error) {
	items, err := c.Items(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, utils.ErrItemNotFound
}

func findByID(items []models.CatalogItem, id string) *models.CatalogItem {
	for i := range items {
		if items[i].ID == id {
			return &items[i]
		}
	}
	return nil
}
