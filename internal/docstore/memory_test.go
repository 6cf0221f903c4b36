package docstore

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStoreInsertAndQueryAll(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore().Collection("things")

	first, err := store.Insert(ctx, map[string]any{"name": "first"})
	if err != nil {
		t.Fatalf("Insert() error: %v", err)
	}
	second, err := store.Insert(ctx, map[string]any{"name": "second"})
	if err != nil {
		t.Fatalf("Insert() error: %v", err)
	}
	if first == second {
		t.Fatal("doc ids must be unique")
	}

	docs, err := store.QueryAll(ctx)
	if err != nil {
		t.Fatalf("QueryAll() error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d docs, want 2", len(docs))
	}
	// Newest first.
	if docs[0].DocID != second || docs[1].DocID != first {
		t.Errorf("ordering wrong: %q, %q", docs[0].DocID, docs[1].DocID)
	}
}

func TestMemoryStoreUpdateMergesShallowly(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore().Collection("things")

	id, _ := store.Insert(ctx, map[string]any{"name": "part", "stock": 5})
	if err := store.Update(ctx, id, map[string]any{"stock": 9}); err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	docs, _ := store.QueryAll(ctx)
	if docs[0].Fields["name"] != "part" {
		t.Error("untouched field must survive an update")
	}
	if docs[0].Fields["stock"] != float64(9) {
		t.Errorf("stock = %v, want 9", docs[0].Fields["stock"])
	}
}

func TestMemoryStoreUpdateMissingDocument(t *testing.T) {
	store := NewMemoryStore().Collection("things")
	err := store.Update(context.Background(), "no-such-doc", map[string]any{"a": 1})
	if !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("err = %v, want ErrDocumentNotFound", err)
	}
}

func TestMemoryStoreCallersNeverAliasState(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore().Collection("things")

	fields := map[string]any{"name": "original"}
	if _, err := store.Insert(ctx, fields); err != nil {
		t.Fatalf("Insert() error: %v", err)
	}
	fields["name"] = "mutated by caller"

	docs, _ := store.QueryAll(ctx)
	if docs[0].Fields["name"] != "original" {
		t.Error("store state aliased caller's map")
	}

	docs[0].Fields["name"] = "mutated result"
	again, _ := store.QueryAll(ctx)
	if again[0].Fields["name"] != "original" {
		t.Error("query result aliased store state")
	}
}

func TestStripNilFields(t *testing.T) {
	got := StripNilFields(map[string]any{
		"keep":    "value",
		"dropped": nil,
		"zero":    0,
	})
	if _, ok := got["dropped"]; ok {
		t.Error("nil field not stripped")
	}
	if got["keep"] != "value" || got["zero"] != 0 {
		t.Errorf("non-nil fields altered: %v", got)
	}
}

func TestCollectionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	a := store.Collection("a")
	b := store.Collection("b")

	if _, err := a.Insert(ctx, map[string]any{"x": 1}); err != nil {
		t.Fatalf("Insert() error: %v", err)
	}
	docs, _ := b.QueryAll(ctx)
	if len(docs) != 0 {
		t.Errorf("collection b has %d docs, want 0", len(docs))
	}
}
