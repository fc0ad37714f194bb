package order

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

// Catalog is the read-only product → unit price table. It is built once at
// startup and never mutated, so concurrent reads need no locking. Keys are
// case-folded: "Sugar", "sugar" and "SUGAR" are the same entry.
type Catalog struct {
	prices map[string]decimal.Decimal
}

func NewCatalog(prices map[string]decimal.Decimal) (*Catalog, error) {
	c := &Catalog{prices: make(map[string]decimal.Decimal, len(prices))}
	for name, price := range prices {
		if err := c.add(name, price); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// DefaultCatalog is the built-in price list used when neither a catalog
// file nor a database source is configured.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(map[string]decimal.Decimal{
		"sugar": decimal.NewFromInt(40),
		"oil":   decimal.NewFromInt(120),
		"rice":  decimal.NewFromInt(55),
		"milk":  decimal.NewFromInt(60),
		"salt":  decimal.NewFromInt(25),
	})
	if err != nil {
		panic(err) // static data, cannot fail
	}
	return c
}

// LoadCatalogFile reads a JSON object of {"name": "price"} pairs. Prices
// are decimal strings so the file round-trips without float noise.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", path, err)
	}

	c := &Catalog{prices: make(map[string]decimal.Decimal, len(raw))}
	for name, priceStr := range raw {
		price, err := decimal.NewFromString(priceStr)
		if err != nil {
			return nil, fmt.Errorf("catalog: price for %q: %w", name, err)
		}
		if err := c.add(name, price); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) add(name string, price decimal.Decimal) error {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return fmt.Errorf("catalog: empty product name")
	}
	if !price.IsPositive() {
		return fmt.Errorf("catalog: non-positive price %s for %q", price, name)
	}
	if _, dup := c.prices[key]; dup {
		return fmt.Errorf("catalog: duplicate entry %q", key)
	}
	c.prices[key] = price
	return nil
}

// Lookup resolves a product name case-insensitively.
func (c *Catalog) Lookup(name string) (decimal.Decimal, bool) {
	price, ok := c.prices[strings.ToLower(strings.TrimSpace(name))]
	return price, ok
}

func (c *Catalog) Len() int {
	return len(c.prices)
}
