package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/models"
)

// The bundled datasets ship inside the binary. They are read-only seed
// catalogs; every edit to a bundled item lives in the document store as
// an override or tombstone, never here.
var (
	//go:embed data/products.json
	productsBundle []byte

	//go:embed data/gms.json
	gmsBundle []byte
)

// ProductsBundle loads the bundled spare-parts dataset.
func ProductsBundle() []models.CatalogItem {
	return LoadBundle(productsBundle)
}

// GMsBundle loads the bundled GM-parts dataset.
func GMsBundle() []models.CatalogItem {
	return LoadBundle(gmsBundle)
}

// LoadBundle normalizes a raw bundled dataset into catalog items. The
// datasets were produced by hand over years and are sloppy about key
// casing (kodi/KODI/Kodi), so field lookup is case-insensitive. A parse
// failure returns an empty list: the catalog then degrades to a
// remote-only view instead of refusing to start.
func LoadBundle(raw []byte) []models.CatalogItem {
	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		log.Warn().Err(err).Msg("Failed to parse bundled dataset, continuing with remote-only catalog")
		return nil
	}

	items := make([]models.CatalogItem, 0, len(records))
	for i, rec := range records {
		norm := lowercaseKeys(rec)

		item := models.CatalogItem{
			ID:          stringField(norm, "id"),
			Code:        stringField(norm, "kodi", "code"),
			DisplayName: stringField(norm, "nomi", "name"),
			CompanyName: stringField(norm, "firma", "company"),
			Price:       stringField(norm, "narxi", "price"),
			Stock:       intField(norm, 0, "stock", "soni"),
			MinStock:    intField(norm, models.DefaultMinStock, "minstock"),
			MaxStock:    intField(norm, models.DefaultMaxStock, "maxstock"),
			Sold:        intField(norm, 0, "sold"),
			Category:    stringField(norm, "category"),
			Supplier:    stringField(norm, "supplier"),
			Location:    stringField(norm, "location"),
			Cost:        stringField(norm, "cost"),
			Barcode:     stringField(norm, "barcode"),
			Weight:      stringField(norm, "weight"),
			Dimensions:  stringField(norm, "dimensions"),
			Description: stringField(norm, "description"),
			Status:      models.ItemStatusActive,
			IsStatic:    true,
		}
		if item.ID == "" {
			// Positional ids are stable because the bundle itself is immutable.
			item.ID = fmt.Sprintf("static-%d", i+1)
		}
		items = append(items, item)
	}
	return items
}

// lowercaseKeys rewrites a record with lowercase keys. Later duplicates
// win, which matches how the datasets were maintained (the most recent
// casing variant carries the current value).
func lowercaseKeys(rec map[string]any) map[string]any {
	norm := make(map[string]any, len(rec))
	for k, v := range rec {
		norm[strings.ToLower(k)] = v
	}
	return norm
}

// stringField returns the first present key as a string. Numeric values
// are formatted; prices in particular appear both as strings and bare
// numbers in the bundles.
func stringField(rec map[string]any, keys ...string) string {
	for _, k := range keys {
		switch v := rec[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

// intField returns the first present key as an int, or def when absent
// or unparseable.
func intField(rec map[string]any, def int, keys ...string) int {
	for _, k := range keys {
		switch v := rec[k].(type) {
		case float64:
			return int(v)
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return n
			}
		}
	}
	return def
}
