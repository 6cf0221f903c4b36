package docstore

import (
	"context"
	"errors"

	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/models"
)

// ErrDocumentNotFound is returned when an update targets a document id
// that does not exist in the collection.
var ErrDocumentNotFound = errors.New("DOCUMENT_NOT_FOUND")

// Store is the contract this codebase has with the remote document
// store, scoped to one named collection. Three primitives cover every
// access: documents are inserted, partially updated, or read in bulk.
// There is no hard delete — removal is expressed as an isDeleted flag
// written through Update.
type Store interface {
	// Insert persists a new document and returns its store-assigned id.
	Insert(ctx context.Context, fields map[string]any) (string, error)

	// Update shallow-merges the given fields into an existing document.
	Update(ctx context.Context, docID string, fields map[string]any) error

	// QueryAll returns every document in the collection, newest first.
	QueryAll(ctx context.Context) ([]models.Document, error)
}

// StripNilFields removes nil-valued entries from a field map before it
// is persisted. The store mishandles explicit nulls, so absent and null
// must collapse to the same thing: not written.
func StripNilFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if v == nil {
			continue
		}
		out[k] = v
	}
	return out
}
