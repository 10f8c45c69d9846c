// Package catalog loads the built-in product catalog shipped with the
// service. Farm-defined products extend it at runtime (see service.Catalog).
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/shopspring/decimal"
)

// Product is one built-in catalog entry. ProductID is the stable key stock
// entries reference (e.g. "milk", "liquid_fertilizer").
type Product struct {
	ProductID              string          `json:"id"`
	Name                   string          `json:"name"`
	Icon                   string          `json:"icon"`
	DefaultMaxPricePer1000 decimal.Decimal `json:"default_max_price_per_1000"`
}

// Catalog is the immutable set of built-in products, loaded once at startup.
type Catalog struct {
	byID map[string]Product
}

type catalogFile struct {
	Products []Product `json:"products"`
}

// Load reads the catalog JSON file at path.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}

	var file catalogFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", path, err)
	}

	byID := make(map[string]Product, len(file.Products))
	for _, p := range file.Products {
		if p.ProductID == "" {
			return nil, fmt.Errorf("catalog: product with empty id in %s", path)
		}
		if _, dup := byID[p.ProductID]; dup {
			return nil, fmt.Errorf("catalog: duplicate product id %q in %s", p.ProductID, path)
		}
		byID[p.ProductID] = p
	}
	return &Catalog{byID: byID}, nil
}

// Get returns the built-in product with the given id.
func (c *Catalog) Get(id string) (Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// All returns every built-in product sorted by id.
func (c *Catalog) All() []Product {
	out := make([]Product, 0, len(c.byID))
	for _, p := range c.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

// Len reports the number of built-in products.
func (c *Catalog) Len() int { return len(c.byID) }
