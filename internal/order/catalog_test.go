package order

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	if c.Len() == 0 {
		t.Fatal("default catalog is empty")
	}

	price, ok := c.Lookup("sugar")
	if !ok {
		t.Fatal("sugar missing from default catalog")
	}
	if !price.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("sugar price=%s want 40", price)
	}
}

func TestNewCatalog_RejectsBadEntries(t *testing.T) {
	if _, err := NewCatalog(map[string]decimal.Decimal{
		"sugar": decimal.NewFromInt(0),
	}); err == nil {
		t.Fatal("zero price accepted")
	}

	if _, err := NewCatalog(map[string]decimal.Decimal{
		"sugar": decimal.NewFromInt(-5),
	}); err == nil {
		t.Fatal("negative price accepted")
	}

	if _, err := NewCatalog(map[string]decimal.Decimal{
		"": decimal.NewFromInt(10),
	}); err == nil {
		t.Fatal("empty name accepted")
	}

	// same entry under two spellings collapses to one key
	if _, err := NewCatalog(map[string]decimal.Decimal{
		"Sugar": decimal.NewFromInt(40),
		"sugar": decimal.NewFromInt(45),
	}); err == nil {
		t.Fatal("case-folded duplicate accepted")
	}
}

func TestLoadCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	data := `{"Sugar": "40", "oil": "120.50"}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadCatalogFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("len=%d want 2", c.Len())
	}

	// keys are folded on load
	if _, ok := c.Lookup("SUGAR"); !ok {
		t.Fatal("SUGAR not found")
	}
	price, ok := c.Lookup("oil")
	if !ok {
		t.Fatal("oil not found")
	}
	want, _ := decimal.NewFromString("120.50")
	if !price.Equal(want) {
		t.Fatalf("oil price=%s want 120.50", price)
	}
}

func TestLoadCatalogFile_Errors(t *testing.T) {
	if _, err := LoadCatalogFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("missing file accepted")
	}

	path := filepath.Join(t.TempDir(), "catalog.json")
	os.WriteFile(path, []byte(`{"sugar": "cheap"}`), 0o644)
	if _, err := LoadCatalogFile(path); err == nil {
		t.Fatal("non-numeric price accepted")
	}

	os.WriteFile(path, []byte(`not json`), 0o644)
	if _, err := LoadCatalogFile(path); err == nil {
		t.Fatal("malformed file accepted")
	}
}
