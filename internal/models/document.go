package models

// Document is one record in the document store: a store-assigned id plus
// an arbitrary string-keyed field map. The store enforces no schema;
// this codebase is the only schema authority.
type Document struct {
	DocID  string         `json:"docId"`
	Fields map[string]any `json:"fields"`
}

// LogicalID returns the catalog identity the document speaks for. An
// override or tombstone carries the bundled item's id in its "id" field;
// a document without one is identified by its store id.
func (d Document) LogicalID() string {
	if v, ok := d.Fields["id"].(string); ok && v != "" {
		return v
	}
	return d.DocID
}

// Bool reads a boolean field, treating a missing or mistyped value as false.
func (d Document) Bool(key string) bool {
	v, ok := d.Fields[key].(bool)
	return ok && v
}
