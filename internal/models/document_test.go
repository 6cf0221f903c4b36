package models

import "testing"

func TestDocumentLogicalID(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want string
	}{
		{"id field wins", Document{DocID: "doc-1", Fields: map[string]any{"id": "static-5"}}, "static-5"},
		{"falls back to doc id", Document{DocID: "doc-2", Fields: map[string]any{}}, "doc-2"},
		{"empty id field falls back", Document{DocID: "doc-3", Fields: map[string]any{"id": ""}}, "doc-3"},
		{"non-string id falls back", Document{DocID: "doc-4", Fields: map[string]any{"id": 7}}, "doc-4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.doc.LogicalID(); got != tt.want {
				t.Errorf("LogicalID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDocumentBool(t *testing.T) {
	doc := Document{Fields: map[string]any{
		"isStatic":  true,
		"isDeleted": false,
		"count":     1,
	}}
	if !doc.Bool("isStatic") {
		t.Error("isStatic should be true")
	}
	if doc.Bool("isDeleted") {
		t.Error("isDeleted should be false")
	}
	if doc.Bool("count") {
		t.Error("non-bool value should read as false")
	}
	if doc.Bool("missing") {
		t.Error("missing key should read as false")
	}
}
