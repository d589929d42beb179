package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const defaultSearchLimit = 10

// Product is an immutable catalog record. The core never mutates products.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock"`
	ImageURL    string          `json:"image_url,omitempty"`
}

// Filter fields are optional and conjunctive. Query matches name or
// description, case-insensitive substring. Price bounds are inclusive.
type Filter struct {
	Query    string
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Limit    int
}

// SearchResult distinguishes the pre-limit match count from the returned
// slice, so a caller can report "found N, showing K".
type SearchResult struct {
	Products     []Product `json:"products"`
	TotalMatches int       `json:"total_matches"`
}

// Catalog is a read-only product lookup.
type Catalog struct {
	products []Product
	byID     map[string]Product
}

func New(products []Product) *Catalog {
	byID := make(map[string]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &Catalog{products: products, byID: byID}
}

// Load builds a catalog from a JSON file. An empty path selects the embedded
// default catalog. An unreadable or malformed source degrades to an empty
// catalog with a warning; lookups then simply find nothing.
func Load(path string) *Catalog {
	raw := defaultCatalogRaw
	if strings.TrimSpace(path) != "" {
		fileRaw, err := os.ReadFile(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("catalog source unavailable, using empty catalog")
			return New(nil)
		}
		raw = fileRaw
	}

	products, err := parseProducts(raw)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("catalog source malformed, using empty catalog")
		return New(nil)
	}
	return New(products)
}

func parseProducts(raw []byte) ([]Product, error) {
	var products []Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	for _, p := range products {
		if p.ID == "" {
			return nil, fmt.Errorf("catalog product with empty id")
		}
		if p.Price.IsNegative() {
			return nil, fmt.Errorf("catalog product %s has negative price", p.ID)
		}
		if p.Stock < 0 {
			return nil, fmt.Errorf("catalog product %s has negative stock", p.ID)
		}
	}
	return products, nil
}

func (c *Catalog) FindByID(id string) (Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

func (c *Catalog) Len() int {
	return len(c.products)
}

// Search applies the filter conjunctively, keeps only in-stock products, and
// truncates to the limit after counting all matches.
func (c *Catalog) Search(f Filter) SearchResult {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	query := strings.ToLower(strings.TrimSpace(f.Query))
	category := strings.ToLower(strings.TrimSpace(f.Category))

	var matches []Product
	for _, p := range c.products {
		if p.Stock <= 0 {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		if category != "" && strings.ToLower(p.Category) != category {
			continue
		}
		if f.MinPrice != nil && p.Price.Cmp(*f.MinPrice) < 0 {
			continue
		}
		if f.MaxPrice != nil && p.Price.Cmp(*f.MaxPrice) > 0 {
			continue
		}
		matches = append(matches, p)
	}

	total := len(matches)
	if len(matches) > limit {
		matches = matches[:limit]
	}
	if matches == nil {
		matches = []Product{}
	}
	return SearchResult{Products: matches, TotalMatches: total}
}
