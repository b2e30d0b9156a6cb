package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/SvAkshayKumar/SmartCart-GenAI/pkg/config"
	"github.com/shopspring/decimal"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleProducts() []Product {
	return []Product{
		{ID: 1, Name: "Wireless Earbuds Pro", Category: "Audio", Price: price("129.99"), Description: "Noise cancelling earbuds", Featured: true},
		{ID: 2, Name: "Smart Watch X", Category: "Wearables", Price: price("249.00"), Description: "Fitness tracking watch"},
		{ID: 3, Name: "Studio Headphones", Category: "Audio", Price: price("349.50"), Description: "Over-ear wireless headphones", Featured: true},
	}
}

func TestStoreAccessors(t *testing.T) {
	store := New(sampleProducts())

	if store.Len() != 3 {
		t.Fatalf("expected 3 products, got %d", store.Len())
	}

	p, ok := store.Get(2)
	if !ok || p.Name != "Smart Watch X" {
		t.Fatalf("Get(2) returned %v %v", p, ok)
	}
	if _, ok := store.Get(99); ok {
		t.Fatalf("Get(99) should miss")
	}

	featured := store.Featured(1)
	if len(featured) != 1 || featured[0].ID != 1 {
		t.Fatalf("Featured(1) = %v", featured)
	}
	if got := store.Featured(0); len(got) != 2 {
		t.Fatalf("Featured(0) should return all featured, got %d", len(got))
	}

	cats := store.Categories()
	if len(cats) != 2 || cats[0] != "Audio" || cats[1] != "Wearables" {
		t.Fatalf("unexpected categories %v", cats)
	}
}

func TestParseProductsSkipsInvalidRecords(t *testing.T) {
	raw := []byte(`[
		{"id":1,"name":"Good","category":"Audio","price":10,"description":"ok"},
		{"id":0,"name":"BadID","category":"Audio","price":10},
		{"id":2,"name":"","category":"Audio","price":10},
		{"id":3,"name":"NegPrice","category":"Audio","price":-1},
		{"id":4,"name":"AlsoGood","category":"Hubs","price":25.50}
	]`)

	products, issues := parseProducts(raw)
	if len(products) != 2 {
		t.Fatalf("expected 2 valid products, got %d", len(products))
	}
	if products[0].ID != 1 || products[1].ID != 4 {
		t.Fatalf("unexpected survivors %v", products)
	}
	if issues == nil {
		t.Fatalf("expected aggregated issues for 3 dropped records")
	}
}

func TestParseProductsMalformedJSON(t *testing.T) {
	if _, err := parseProducts([]byte(`{"not":"an array"`)); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "products.json")
	payload := `[{"id":7,"name":"USB-C Hub","category":"Accessories","price":49.99,"description":"7-in-1 hub"}]`
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	store := Load(context.Background(), config.CatalogConfig{Path: path}, nil)
	if store.Len() != 1 {
		t.Fatalf("expected 1 product, got %d", store.Len())
	}
	p, _ := store.Get(7)
	if !p.Price.Equal(price("49.99")) {
		t.Fatalf("unexpected price %s", p.Price)
	}
}

func TestLoadMissingFileDegradesToEmpty(t *testing.T) {
	store := Load(context.Background(), config.CatalogConfig{Path: "does/not/exist.json"}, nil)
	if store.Len() != 0 {
		t.Fatalf("expected empty catalog, got %d", store.Len())
	}
	if len(store.Categories()) != 0 {
		t.Fatalf("empty catalog should have no categories")
	}
}
