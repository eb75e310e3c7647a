package catalog_test

import (
	"sort"
	"testing"

	"github.com/wortquiz/progression/data"
	"github.com/wortquiz/progression/internal/catalog"
)

// TestLoadEmbeddedCatalog loads the seed catalog shipped with the binary
func TestLoadEmbeddedCatalog(t *testing.T) {
	cat, err := catalog.Load(data.CatalogFS, data.CatalogDir, "A1")
	if err != nil {
		t.Fatalf("Failed to load embedded catalog: %v", err)
	}

	if cat.Len() == 0 {
		t.Fatal("Expected a non-empty catalog")
	}

	// Seed word lists and their lengths
	expected := map[string]int{
		"A1_animals":   6,
		"A1_colors":    10,
		"A1_family":    8,
		"A2_weather":   7,
		"B1_work_jobs": 5,
	}
	for key, size := range expected {
		got, ok := cat.Size(key)
		if !ok {
			t.Errorf("Expected category %q in catalog", key)
			continue
		}
		if got != size {
			t.Errorf("Size(%q) = %d, want %d", key, got, size)
		}
	}
}

// TestKeysSorted verifies deterministic key iteration order
func TestKeysSorted(t *testing.T) {
	cat := catalog.New(map[string]int{
		"B1_work_jobs": 5,
		"A1_colors":    10,
		"A2_weather":   7,
	}, "A1")

	keys := cat.Keys()
	if !sort.StringsAreSorted(keys) {
		t.Errorf("Keys() = %v, want sorted order", keys)
	}
	if len(keys) != cat.Len() {
		t.Errorf("Len() = %d, want %d", cat.Len(), len(keys))
	}
}

// TestCatalogResolve tests resolution through a loaded catalog
func TestCatalogResolve(t *testing.T) {
	cat := catalog.New(map[string]int{"A1_colors": 10}, "A1")

	if key, ok := cat.Resolve("colors"); !ok || key != "A1_colors" {
		t.Errorf("Resolve(colors) = %q, %v, want A1_colors", key, ok)
	}
	if _, ok := cat.Resolve("nope"); ok {
		t.Error("Resolve(nope) should not resolve")
	}
}
