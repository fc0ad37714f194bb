package order

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
)

// LoadCatalogDB reads the full price list from Postgres. It runs once at
// startup; the returned Catalog is the usual immutable in-memory table and
// the connection is not used afterwards.
func LoadCatalogDB(ctx context.Context, db *sql.DB) (*Catalog, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT name, unit_price
		FROM catalog
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("catalog: query: %w", err)
	}
	defer rows.Close()

	c := &Catalog{prices: make(map[string]decimal.Decimal)}
	for rows.Next() {
		var (
			name     string
			priceStr string
		)
		if err := rows.Scan(&name, &priceStr); err != nil {
			return nil, fmt.Errorf("catalog: scan: %w", err)
		}
		price, err := decimal.NewFromString(priceStr)
		if err != nil {
			return nil, fmt.Errorf("catalog: price for %q: %w", name, err)
		}
		if err := c.add(name, price); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: rows: %w", err)
	}
	if c.Len() == 0 {
		return nil, fmt.Errorf("catalog: table is empty")
	}

	return c, nil
}
