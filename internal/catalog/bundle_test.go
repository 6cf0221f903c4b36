package catalog

import "testing"

func TestLoadBundleNormalizesKeyCasing(t *testing.T) {
	raw := []byte(`[
		{"KODI": "A-1", "NOMI": "Filtr", "FIRMA": "Mann", "NARXI": "45,000"},
		{"kodi": "A-2", "nomi": "Svecha", "firma": "NGK", "narxi": 38000},
		{"Kodi": "A-3", "Nomi": "Remen", "Firma": "Gates", "Narxi": "12 000"}
	]`)

	items := LoadBundle(raw)
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}

	tests := []struct {
		code, name, company, price string
	}{
		{"A-1", "Filtr", "Mann", "45,000"},
		{"A-2", "Svecha", "NGK", "38000"},
		{"A-3", "Remen", "Gates", "12 000"},
	}
	for i, want := range tests {
		got := items[i]
		if got.Code != want.code || got.DisplayName != want.name ||
			got.CompanyName != want.company || got.Price != want.price {
			t.Errorf("items[%d] = %+v, want %+v", i, got, want)
		}
		if !got.IsStatic {
			t.Errorf("items[%d] must be static", i)
		}
	}
}

func TestLoadBundleAssignsPositionalIDs(t *testing.T) {
	raw := []byte(`[
		{"kodi": "A-1", "nomi": "X", "firma": "Y", "narxi": "1"},
		{"id": "custom", "kodi": "A-2", "nomi": "X", "firma": "Y", "narxi": "1"}
	]`)
	items := LoadBundle(raw)
	if len(items) != 2 {
		t.Fatalf("got %d items", len(items))
	}
	if items[0].ID != "static-1" {
		t.Errorf("items[0].ID = %q, want static-1", items[0].ID)
	}
	if items[1].ID != "custom" {
		t.Errorf("items[1].ID = %q, want custom", items[1].ID)
	}
}

func TestLoadBundleDefaultsStockBounds(t *testing.T) {
	raw := []byte(`[{"kodi": "A-1", "nomi": "X", "firma": "Y", "narxi": "1", "soni": 7}]`)
	items := LoadBundle(raw)
	if len(items) != 1 {
		t.Fatalf("got %d items", len(items))
	}
	if items[0].Stock != 7 {
		t.Errorf("Stock = %d, want 7", items[0].Stock)
	}
	if items[0].MinStock != 10 || items[0].MaxStock != 1000 {
		t.Errorf("bounds = %d/%d, want defaults", items[0].MinStock, items[0].MaxStock)
	}
}

func TestLoadBundleMalformedReturnsEmpty(t *testing.T) {
	if items := LoadBundle([]byte(`{"not": "an array"}`)); items != nil {
		t.Errorf("got %d items, want nil", len(items))
	}
}

func TestEmbeddedBundlesLoad(t *testing.T) {
	products := ProductsBundle()
	if len(products) == 0 {
		t.Fatal("products bundle is empty")
	}
	gms := GMsBundle()
	if len(gms) == 0 {
		t.Fatal("gms bundle is empty")
	}

	seen := make(map[string]bool)
	for _, item := range products {
		if item.ID == "" || item.Code == "" || item.DisplayName == "" {
			t.Errorf("incomplete bundled item: %+v", item)
		}
		if seen[item.ID] {
			t.Errorf("duplicate bundled id %q", item.ID)
		}
		seen[item.ID] = true
	}
}
