package catalog

import (
	"github.com/rs/zerolog/log"

	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/models"
)

// Resolve combines the bundled items with every document in the remote
// collection into the effective, de-duplicated catalog.
//
// Remote documents fall into three buckets:
//   - static + deleted: a tombstone suppressing the bundled item with
//     the same id.
//   - static + not deleted: an override superseding the bundled item
//     with the same id.
//   - not static + not deleted: an item created directly in the store.
//
// (not static + deleted never surfaces.)
//
// Overridden/remote items come first, then untouched bundled items.
// Documents arrive newest first, so when several documents claim the
// same id the newest one wins. The result carries each id at most once.
func Resolve(static []models.CatalogItem, remoteDocs []models.Document) []models.CatalogItem {
	deletedStaticIDs := make(map[string]bool)
	overrides := make(map[string]models.CatalogItem)
	overrideOrder := make([]string, 0, len(remoteDocs))

	for _, doc := range remoteDocs {
		isStatic := doc.Bool("isStatic")
		isDeleted := doc.Bool("isDeleted")

		if isDeleted {
			if isStatic {
				deletedStaticIDs[doc.LogicalID()] = true
			}
			continue
		}

		item, err := models.ItemFromFields(doc.Fields)
		if err != nil {
			log.Warn().Err(err).Str("docId", doc.DocID).Msg("Skipping malformed catalog document")
			continue
		}
		if item.ID == "" {
			item.ID = doc.DocID
		}
		if _, seen := overrides[item.ID]; seen {
			continue
		}
		overrides[item.ID] = *item
		overrideOrder = append(overrideOrder, item.ID)
	}

	resolved := make([]models.CatalogItem, 0, len(overrideOrder)+len(static))
	for _, id := range overrideOrder {
		resolved = append(resolved, overrides[id])
	}
	for _, item := range static {
		if deletedStaticIDs[item.ID] {
			continue
		}
		if _, overridden := overrides[item.ID]; overridden {
			continue
		}
		resolved = append(resolved, item)
	}
	return resolved
}
